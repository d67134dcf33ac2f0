package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"random-pairs-service/internal/app"
	"random-pairs-service/internal/logging"
)

// newSender подменяется в тестах.
var newSender = app.NewSender

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "pairs",
		Short: "Round-robin pairing of a roster",
		Long: `Round-robin pairing of a roster.

Each full cycle of N-1 rounds pairs every participant with every other
participant exactly once. An odd roster is padded with an empty slot, and
whoever lands on it sits the round out.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Install(cmd.ErrOrStderr(), logging.ParseLevel(logLevel, slog.LevelWarn))
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newNotifyCmd())
	return root
}
