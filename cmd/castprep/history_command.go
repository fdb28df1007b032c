package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"castprep/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent transcode jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg.Paths.HistoryDB)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			records, err := store.Recent(cmd.Context(), limitFlag)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No transcode history yet")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{
					rec.StartedAt.Local().Format("2006-01-02 15:04"),
					filepath.Base(rec.Input),
					filepath.Base(rec.Output),
					rec.Status,
					formatElapsed(rec),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Started", "Input", "Output", "Status", "Elapsed"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limitFlag, "limit", 20, "Maximum number of jobs to show")
	return cmd
}

func formatElapsed(rec history.Record) string {
	if rec.FinishedAt.IsZero() || rec.StartedAt.IsZero() {
		return ""
	}
	return rec.FinishedAt.Sub(rec.StartedAt).Round(time.Second).String()
}
