package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pqsoccerboy17/downloads-organizer/internal/history"
)

func newHistoryCommand(cc *commandContext) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently relocated files from the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cc.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg.HistoryDBPath())
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			relocations, err := store.RecentRelocations(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(relocations) == 0 {
				fmt.Fprintln(out, "no relocations recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(relocations))
			for _, rel := range relocations {
				detail := rel.Destination
				if detail == "" {
					detail = rel.Reason
				}
				rows = append(rows, []string{
					rel.RecordedAt.Local().Format("2006-01-02 15:04"),
					rel.Disposition,
					filepath.Base(rel.Source),
					detail,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"When", "Outcome", "File", "Destination / Reason"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 25, "Maximum entries to show")
	return cmd
}
