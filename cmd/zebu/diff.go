package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// diffArgCount is the number of arguments expected by the diff command.
const diffArgCount = 2

func diffCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "diff file1 file2",
		Short: "Compare the canonical forms of two trees",
		Long: `Compare the canonical forms of two trees.

Both files are rebuilt into trees and printed canonically, so formatting
differences in the input do not show up as changes.`,
		Args: cobra.ExactArgs(diffArgCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("no-color") {
				noColor = !viper.GetBool("color")
			}

			return runDiff(cmd.OutOrStdout(), args[0], args[1], noColor)
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	return cmd
}

func runDiff(out io.Writer, path1, path2 string, noColor bool) error {
	text1, err := canonicalForm(path1, noColor)
	if err != nil {
		return err
	}

	text2, err := canonicalForm(path2, noColor)
	if err != nil {
		return err
	}

	if text1 == text2 {
		fmt.Fprintln(out, "trees are identical")

		return nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(text1, text2, false)

	renderDiffs(out, diffs, noColor)

	return nil
}

// canonicalForm rebuilds the tree in path and prints it back, giving both
// sides of the diff one canonical rendering.
func canonicalForm(path string, noColor bool) (string, error) {
	tree, root, err := loadTree(path, noColor)
	if err != nil {
		return "", err
	}
	defer tree.Destroy()

	return root.String(), nil
}

func renderDiffs(out io.Writer, diffs []diffmatchpatch.Diff, noColor bool) {
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)

	for _, edit := range diffs {
		switch edit.Type {
		case diffmatchpatch.DiffEqual:
			fmt.Fprint(out, edit.Text)
		case diffmatchpatch.DiffInsert:
			writeMarked(out, added, "+", edit.Text, noColor)
		case diffmatchpatch.DiffDelete:
			writeMarked(out, removed, "-", edit.Text, noColor)
		}
	}

	fmt.Fprintln(out)
}

// writeMarked always emits the {+...}/{-...} markers so edits stay
// distinguishable when color is stripped on non-TTY output; color only
// decorates the marked form.
func writeMarked(out io.Writer, c *color.Color, mark, text string, noColor bool) {
	marked := fmt.Sprintf("{%s%s}", mark, text)
	if noColor {
		fmt.Fprint(out, marked)

		return
	}

	c.Fprint(out, marked)
}
