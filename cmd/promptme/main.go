// Package main is the promptme entry point. Without arguments it starts the
// interactive TUI; the subcommands expose the same prompt pipeline to scripts.
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sant0-9/promptme/internal/config"
	"github.com/sant0-9/promptme/internal/logging"
)

var version = "dev"

var (
	// Global flags
	verbose bool
	offline bool
	timeout time.Duration

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "promptme",
	Short: "Build better prompts for chat models",
	Long: `promptme turns a content template and a few answers into a structured
CRAFT prompt (Context, Role, Audience, Format, Tone, Task), optionally polishes
it through a completion service and formats it for the target chat model.

Run without arguments to start the interactive interface.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Resolve()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		opts := logging.Options{Level: cfg.LogLevel, Development: true}
		if verbose {
			opts.Level = "debug"
		}
		// The TUI owns the terminal, so it logs to a file.
		if cmd == cmd.Root() {
			path, err := config.LogPath()
			if err != nil {
				return err
			}
			opts.File = path
			opts.Development = false
		}
		logger, err = logging.New(opts)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runTUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "promptme %s (%s/%s)\n", version, runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "Never call the completion service")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Completion service timeout")

	rootCmd.AddCommand(
		versionCmd,
		templatesCmd,
		buildCmd,
		advancedCmd,
		quickCmd,
		enhanceCmd,
		analyzeCmd,
		formatCmd,
		modelsCmd,
		suggestCmd,
		libraryCmd,
		tasksCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
