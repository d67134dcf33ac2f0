package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"random-pairs-service/internal/infrastructure/randomizer"
	"random-pairs-service/internal/logging"
	"random-pairs-service/internal/pairing"
	"random-pairs-service/internal/roster"
	"random-pairs-service/internal/sink"
)

func newGenerateCmd() *cobra.Command {
	var (
		rosterPath  string
		outDir      string
		rounds      int
		seed        int64
		nameColumn  string
		emailColumn string
		printTable  bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate pairing rounds from a roster file",
		Long: `Generate pairing rounds from a roster file.

The roster is either a CSV file with a header row (columns set by
--name-column and --email-column) or a plain text file with one
participant per line written as "Name" or "Name <email>".

Rounds are written as pairing_1.csv, pairing_2.csv, ... into --out.
Nothing is written if the roster is invalid.

Examples:
  pairs generate --roster people.csv --out pairings
  pairs generate --roster people.txt --out pairings --rounds 12 --seed 42 --print`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithLogCommand(cmd.Context(), "generate")

			entries, err := roster.LoadFile(rosterPath, roster.Columns{Name: nameColumn, Email: emailColumn})
			if err != nil {
				return err
			}
			people, err := roster.Normalize(entries)
			if err != nil {
				return err
			}

			count := pairing.CycleLength(len(people))
			if cmd.Flags().Changed("rounds") {
				count = rounds
			}
			var seedPtr *int64
			if cmd.Flags().Changed("seed") {
				seedPtr = &seed
			}
			ctx = logging.WithLogRosterSize(ctx, len(people))
			ctx = logging.WithLogRoundsRequested(ctx, count)

			generated, err := pairing.Generate(people, count, randomizer.ForSeed(seedPtr))
			if err != nil {
				return err
			}
			paths, err := sink.WriteRun(outDir, generated)
			if err != nil {
				return err
			}
			slog.InfoContext(ctx, "pairings written", "dir", outDir, "files", len(paths))

			if printTable {
				sink.RenderTable(cmd.OutOrStdout(), generated)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rounds for %d participants to %s\n", len(generated), len(people), outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&rosterPath, "roster", "", "Roster file (.csv or one participant per line)")
	cmd.Flags().StringVar(&outDir, "out", "pairings", "Directory for pairing_{k}.csv files")
	cmd.Flags().IntVar(&rounds, "rounds", 0, "Number of rounds (default: one full cycle)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for a reproducible schedule")
	cmd.Flags().StringVar(&nameColumn, "name-column", roster.DefaultNameColumn, "CSV column with participant names")
	cmd.Flags().StringVar(&emailColumn, "email-column", roster.DefaultEmailColumn, "CSV column with contact addresses")
	cmd.Flags().BoolVar(&printTable, "print", false, "Print the generated rounds as a table")
	_ = cmd.MarkFlagRequired("roster")
	return cmd
}
