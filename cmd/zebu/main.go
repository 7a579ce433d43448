// Package main provides the zebu CLI entry point.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yin-nadie/zebu/pkg/version"
)

var (
	cfgFile string //nolint:gochecknoglobals // CLI flag variable
	verbose bool   //nolint:gochecknoglobals // CLI flag variable
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "zebu",
		Short: "AST substrate toolkit",
		Long: `zebu rebuilds, prints and compares abstract syntax trees written in
the bracketed tree notation: [token payload child child ...].`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			configureLogging(verbose)

			return initConfig()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.zebu.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(printCmd())
	rootCmd.AddCommand(diffCmd())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initConfig loads defaults for the print/diff commands from the config
// file and ZEBU_* environment variables. A missing config file is fine.
func initConfig() error {
	viper.SetDefault("color", true)
	viper.SetDefault("stats", false)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".zebu")
			viper.SetConfigType("yaml")
		}
	}

	viper.SetEnvPrefix("ZEBU")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			return nil
		}

		if cfgFile == "" {
			return nil
		}

		return fmt.Errorf("read config: %w", err)
	}

	slog.Debug("loaded config", "file", viper.ConfigFileUsed())

	return nil
}

func configureLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "zebu %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
