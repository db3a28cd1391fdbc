package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pqsoccerboy17/downloads-organizer/internal/history"
	"github.com/pqsoccerboy17/downloads-organizer/internal/intent"
	"github.com/pqsoccerboy17/downloads-organizer/internal/organize"
	"github.com/pqsoccerboy17/downloads-organizer/internal/runlock"
	"github.com/pqsoccerboy17/downloads-organizer/internal/watcher"
)

func newWatchCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the source folders and organize downloads as they settle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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
				log.Warn("history ledger unavailable", "error", err)
				store = nil
			}
			if store != nil {
				defer store.Close()
			}

			dispatch := func(ctx context.Context, kind intent.Kind) error {
				pipeline := organize.New(cfg, log, organize.Options{}, store, nil)
				var runErr error
				switch kind {
				case intent.Media:
					_, runErr = pipeline.RunMedia(ctx)
				default:
					_, runErr = pipeline.RunDocuments(ctx)
				}
				return runErr
			}

			lock := runlock.New(cfg.LockFilePath(), cfg.LockTimeout())
			w := watcher.New(cfg, log, dispatch, lock)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info("watching source folders", "dirs", cfg.Paths.SourceDirs)
			return w.Run(ctx)
		},
	}
}
