package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yin-nadie/zebu/internal/sexpr"
	"github.com/yin-nadie/zebu/pkg/ast"
	"github.com/yin-nadie/zebu/pkg/diag"
	"github.com/yin-nadie/zebu/pkg/safeconv"
)

func printCmd() *cobra.Command {
	var (
		showStats bool
		noColor   bool
	)

	cmd := &cobra.Command{
		Use:   "print file",
		Short: "Rebuild a tree from bracketed notation and print its canonical form",
		Long: `Rebuild a tree from bracketed notation and print its canonical form.

Examples:
  zebu print expr.zz           # Print the canonical tree form
  zebu print --stats expr.zz   # Also show arena usage per size class`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("stats") {
				showStats = viper.GetBool("stats")
			}

			if !cmd.Flags().Changed("no-color") {
				noColor = !viper.GetBool("color")
			}

			return runPrint(cmd.OutOrStdout(), args[0], showStats, noColor)
		},
	}

	cmd.Flags().BoolVar(&showStats, "stats", false, "print arena statistics after the tree")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")

	return cmd
}

func runPrint(out io.Writer, path string, showStats, noColor bool) error {
	tree, root, err := loadTree(path, noColor)
	if err != nil {
		return err
	}
	defer tree.Destroy()

	err = ast.Fprint(out, root)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)

	if showStats {
		renderStats(out, tree)
	}

	return nil
}

// loadTree reads a bracketed-notation file and rebuilds its tree. Parse
// failures are rendered as caret diagnostics before the error returns.
func loadTree(path string, noColor bool) (*ast.Tree, *ast.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	tree, err := ast.NewTree(0)
	if err != nil {
		return nil, nil, fmt.Errorf("create tree: %w", err)
	}

	root, err := sexpr.Parse(tree, data)
	if err != nil {
		reportParseError(err, path, noColor)
		tree.Destroy()

		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}

	slog.Debug("parsed tree", "path", path, "interned", tree.Interned(),
		"arena_bytes", tree.Stats().TotalReserved())

	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		tree.WalkStrings(func(s string) bool {
			slog.Debug("interned", "string", s)

			return true
		})
	}

	return tree, root, nil
}

func reportParseError(err error, path string, noColor bool) {
	var perr *sexpr.Error
	if !errors.As(err, &perr) {
		return
	}

	r := &diag.Reporter{Out: os.Stderr, Color: !noColor}
	r.Report(perr.Msg, path, diag.Span{
		FirstLine: perr.Line,
		FirstCol:  perr.Col,
		LastLine:  perr.Line,
		LastCol:   perr.Col,
	})
}

func renderStats(out io.Writer, tree *ast.Tree) {
	st := tree.Stats()

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Class", "Chunks", "Used", "Reserved"})

	for _, cls := range st.Classes {
		if cls.Chunks == 0 {
			continue
		}

		label := "oversized"
		if cls.Size > 0 {
			label = strconv.Itoa(cls.Size)
		}

		tbl.AppendRow(table.Row{
			label,
			cls.Chunks,
			humanize.IBytes(safeconv.MustIntToUint64(cls.Used)),
			humanize.IBytes(safeconv.MustIntToUint64(cls.Reserved)),
		})
	}

	tbl.AppendFooter(table.Row{
		"total", "",
		humanize.IBytes(safeconv.MustIntToUint64(st.TotalUsed())),
		humanize.IBytes(safeconv.MustIntToUint64(st.TotalReserved())),
	})

	fmt.Fprintln(out, tbl.Render())
	fmt.Fprintf(out, "interned strings: %d\n", tree.Interned())
}
