package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pqsoccerboy17/downloads-organizer/internal/history"
	"github.com/pqsoccerboy17/downloads-organizer/internal/intent"
	"github.com/pqsoccerboy17/downloads-organizer/internal/organize"
	"github.com/pqsoccerboy17/downloads-organizer/internal/runlock"
)

func newDocsCommand(cc *commandContext) *cobra.Command {
	var dryRun, audit bool
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Classify and file PDF documents from the source folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, cc, intent.Document, organize.Options{DryRun: dryRun, Audit: audit})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan moves without touching any files")
	cmd.Flags().BoolVar(&audit, "audit", false, "Walk the archive and relocate misfiled entries")
	return cmd
}

func newMediaCommand(cc *commandContext) *cobra.Command {
	var dryRun, audit bool
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Date and file photos, videos, and audio from the source folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, cc, intent.Media, organize.Options{DryRun: dryRun, Audit: audit})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan moves without touching any files")
	cmd.Flags().BoolVar(&audit, "audit", false, "Walk the archive and relocate misfiled entries")
	return cmd
}

func runPipeline(cmd *cobra.Command, cc *commandContext, kind intent.Kind, opts organize.Options) error {
	cfg, err := cc.ensureConfig()
	if err != nil {
		return err
	}
	log, err := cc.ensureLogger()
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.HistoryDBPath())
	if err != nil {
		// The ledger is advisory; run without it rather than refuse.
		log.Warn("history ledger unavailable", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	pipeline := organize.New(cfg, log, opts, store, nil)

	var summary organize.Summary
	lock := runlock.New(cfg.LockFilePath(), cfg.LockTimeout())
	err = lock.WithLock(cmd.Context(), func() error {
		var runErr error
		switch kind {
		case intent.Media:
			summary, runErr = pipeline.RunMedia(cmd.Context())
		default:
			summary, runErr = pipeline.RunDocuments(cmd.Context())
		}
		return runErr
	})
	if errors.Is(err, runlock.ErrTimeout) {
		return fmt.Errorf("another organizer run is in progress: %w", err)
	}
	if err != nil {
		return err
	}

	printSummary(cmd, summary)
	return nil
}

func printSummary(cmd *cobra.Command, summary organize.Summary) {
	mode := ""
	if summary.DryRun {
		mode = " (dry run)"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s run%s: %d moved, %d skipped, %d errored in %s\n",
		summary.Kind, mode, summary.Moved, summary.Skipped, summary.Errored,
		summary.Duration().Round(time.Second))

	if len(summary.Plans) == 0 {
		return
	}

	rows := make([][]string, 0, len(summary.Plans))
	for _, plan := range summary.Plans {
		detail := plan.Destination
		if detail == "" {
			detail = plan.Reason
		}
		rows = append(rows, []string{string(plan.Disposition), plan.Source, detail})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Outcome", "Source", "Destination / Reason"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	))
}
