// Command seatmap normalizes venue documents, generates sample venues and
// mints development tokens.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iliyamo/venue-seatmap/internal/logger"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var level string
	cmd := &cobra.Command{
		Use:           "seatmap",
		Short:         "Venue seat-map tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cfg := logger.DefaultConfig()
			cfg.Level = logger.LogLevel(level)
			cfg.Output = cmd.ErrOrStderr()
			logger.Init(cfg)
		},
	}
	cmd.PersistentFlags().StringVar(&level, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.AddCommand(newNormalizeCommand())
	cmd.AddCommand(newGenerateCommand())
	cmd.AddCommand(newTokenCommand())
	return cmd
}
