package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"random-pairs-service/internal/config"
	"random-pairs-service/internal/logging"
	"random-pairs-service/internal/notifier"
	"random-pairs-service/internal/sink"
)

func newNotifyCmd() *cobra.Command {
	var (
		dir           string
		round         int
		myName        string
		myEmail       string
		subjectPrefix string
		dryRun        bool
	)

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Send messages for one saved round",
		Long: `Send messages for one saved round.

Reads pairing_{round}.csv from --dir and sends one message per pair.
If the round contains a malformed record or a repeated address, nothing
is sent. With --dry-run (the default) messages are only logged.

Examples:
  pairs notify --dir pairings --round 1
  SMTP_HOST=smtp.example.com MAIL_FROM=me@example.com \
    pairs notify --dir pairings --round 1 --my-name Me --my-email me@example.com --dry-run=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if round < 1 {
				return fmt.Errorf("--round must be >= 1, got %d", round)
			}
			ctx := logging.WithLogCommand(cmd.Context(), "notify")
			ctx = logging.WithLogRoundNumber(ctx, round)

			cfg, err := config.LoadEnv()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("dry-run") {
				cfg.Mail.DryRun = dryRun
			}
			if myName != "" {
				cfg.Mail.OperatorName = myName
			}
			if myEmail != "" {
				cfg.Mail.OperatorEmail = myEmail
			}
			if subjectPrefix != "" {
				cfg.Mail.SubjectPrefix = subjectPrefix
			}

			records, err := sink.LoadRound(dir, round)
			if err != nil {
				return err
			}
			sender, err := newSender(cfg.Mail)
			if err != nil {
				return err
			}

			result, err := notifier.New(sender).Notify(ctx, records, notifier.Options{
				Operator:      notifier.Operator{Name: cfg.Mail.OperatorName, Email: cfg.Mail.OperatorEmail},
				SubjectPrefix: cfg.Mail.SubjectPrefix,
				RoundNumber:   round,
			})
			if err != nil {
				return err
			}
			slog.InfoContext(ctx, "round notified", "sent", result.Sent, "failed", len(result.Failed))

			fmt.Fprintf(cmd.OutOrStdout(), "Sent %d messages for round %d\n", result.Sent, round)
			for to, reason := range result.Failed {
				fmt.Fprintf(cmd.ErrOrStderr(), "failed: %s: %s\n", to, reason)
			}
			if len(result.Failed) > 0 {
				return fmt.Errorf("%d messages failed", len(result.Failed))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "pairings", "Directory with pairing_{k}.csv files")
	cmd.Flags().IntVar(&round, "round", 0, "Round number to notify (starting at 1)")
	cmd.Flags().StringVar(&myName, "my-name", "", "Your name, used as the signature")
	cmd.Flags().StringVar(&myEmail, "my-email", "", "Your address; your partner gets a personal message")
	cmd.Flags().StringVar(&subjectPrefix, "subject-prefix", "", "Subject prefix (default from MAIL_SUBJECT_PREFIX or \"Pairing\")")
	cmd.Flags().BoolVar(&dryRun, "dry-run", true, "Only log messages instead of sending them (default from MAIL_DRY_RUN)")
	_ = cmd.MarkFlagRequired("round")
	return cmd
}
