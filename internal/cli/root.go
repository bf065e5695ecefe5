package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/rfielding/ontime/internal/ctxlog"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	jsonOutput bool
	verbose    bool

	headerColor = color.New(color.FgCyan, color.Bold)
	winColor    = color.New(color.FgGreen)
	faintColor  = color.New(color.Faint)
)

// rootCmd is the root command for ontime.
var rootCmd = &cobra.Command{
	Use:     "ontime",
	Version: "dev",
	Short:   "Reachability games on temporal graphs",
	Long: `ontime decides two-player reachability games played on temporal graphs:
graphs whose edges are only usable at scheduled time instants.

Given a graph description, a target set and a deadline, it computes by
backward induction the set of vertices from which the controlling player
can force a visit to the target in time.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		cmd.SetContext(ctxlog.Into(cmd.Context(), logger))
	},
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
