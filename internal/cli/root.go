// Package cli provides the command-line interface for chisel.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/chisellabs/chisel/internal/cli/commands"
	"github.com/chisellabs/chisel/internal/cli/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chisel",
		Short: "Chisel - Script Rewriting Engine",
		Long: `Chisel rewrites and formats .chl script files by running a pipeline
of tree transformation passes over each file.

Built-in passes simplify arithmetic, boolean logic, naming, and block
structure; additional passes can be loaded as Starlark plugins.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			cfg, err = config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			// Logger goes to stderr so formatted output stays clean.
			// Commands pick the config and renderer up through
			// config.GetCurrentConfig and their own streams.
			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			cmd.SetContext(context.WithValue(cmd.Context(), config.LoggerKey(), logger))

			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					fmt.Fprintf(os.Stderr, "Using config file: %s\n", configFile)
				}
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./chisel.yaml)")
	rootCmd.PersistentFlags().String("policy", "", "Failure policy: log or raise")
	rootCmd.PersistentFlags().Int("width", 0, "Target line width for formatted output")
	rootCmd.PersistentFlags().String("plugins-dir", "", "Directory of Starlark pass plugins")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|plain)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "plain"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("policy", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"log", "raise"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewFmtCommand())
	rootCmd.AddCommand(commands.NewPassesCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
