package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/jsplit/internal/constants"
	"github.com/ludo-technologies/jsplit/internal/logging"
	"github.com/ludo-technologies/jsplit/internal/version"
)

var (
	verbose bool
	quiet   bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		// Handle custom exit codes from check command
		var exitErr *CheckExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintf(os.Stderr, "Error: %s\n", exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(constants.ExitCodeViolations)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jsplit",
		Short: "jsplit - complexity analysis and extraction hints for JavaScript/TypeScript",
		Long: `jsplit scores every JavaScript/TypeScript function for cyclomatic and
cognitive complexity and, for functions that are too complex, points at
blocks that can be extracted together with the inputs and outputs the new
function would need.`,
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

// newLogger writes structured logs to stderr at the level chosen by the
// global flags
func newLogger() *slog.Logger {
	return logging.NewLogger(os.Stderr, logging.LevelFromFlags(verbose, quiet))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if verbose {
				fmt.Fprintln(out, version.GetFullVersion())
			} else {
				fmt.Fprintf(out, "jsplit version %s\n", version.GetVersion())
			}
		},
	}
}
