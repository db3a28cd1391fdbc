package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/pqsoccerboy17/downloads-organizer/internal/deps"
	"github.com/pqsoccerboy17/downloads-organizer/internal/history"
	"github.com/pqsoccerboy17/downloads-organizer/internal/intent"
	"github.com/pqsoccerboy17/downloads-organizer/internal/preflight"
)

const recentRunLimit = 10

func newStatusCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show tool availability, directory access, and recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cc.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			printSection(out, "Dependencies", colorize)
			requirements := append(deps.DocumentRequirements(cfg), deps.MediaRequirements(cfg)...)
			for _, status := range deps.CheckBinaries(requirements) {
				kind := statusOK
				detail := status.Command
				if !status.Available {
					kind = statusError
					if status.Optional {
						kind = statusWarn
					}
					detail = status.Detail
				}
				fmt.Fprintln(out, renderStatusLine(status.Name, kind, detail, colorize))
			}

			fmt.Fprintln(out)
			printSection(out, "Directories", colorize)
			for _, result := range preflight.CheckPaths(cfg) {
				kind := statusOK
				if !result.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}

			fmt.Fprintln(out)
			printSection(out, "Pending", colorize)
			printPendingCounts(out, cfg.Paths.SourceDirs, colorize)

			fmt.Fprintln(out)
			printSection(out, "Recent runs", colorize)
			printRecentRuns(cmd, cfg.HistoryDBPath())
			return nil
		},
	}
}

// printPendingCounts reports how many unorganized documents and media files
// currently sit in each source folder.
func printPendingCounts(out io.Writer, sourceDirs []string, colorize bool) {
	for _, dir := range sourceDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			fmt.Fprintln(out, renderStatusLine(dir, statusWarn, fmt.Sprintf("unreadable: %v", err), colorize))
			continue
		}
		var docs, media int
		for _, entry := range entries {
			if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			switch intent.ForPath(entry.Name()) {
			case intent.Document:
				docs++
			case intent.Media:
				media++
			}
		}
		kind := statusOK
		if docs+media > 0 {
			kind = statusWarn
		}
		detail := fmt.Sprintf("%d documents, %d media pending", docs, media)
		fmt.Fprintln(out, renderStatusLine(dir, kind, detail, colorize))
	}
}

func printRecentRuns(cmd *cobra.Command, dbPath string) {
	out := cmd.OutOrStdout()

	store, err := history.Open(dbPath)
	if err != nil {
		fmt.Fprintf(out, "  history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	runs, err := store.RecentRuns(cmd.Context(), recentRunLimit)
	if err != nil {
		fmt.Fprintf(out, "  history unavailable: %v\n", err)
		return
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "  no runs recorded yet")
		return
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		mode := "live"
		if run.DryRun {
			mode = "dry run"
		}
		rows = append(rows, []string{
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Kind,
			mode,
			fmt.Sprintf("%d", run.Moved),
			fmt.Sprintf("%d", run.Skipped),
			fmt.Sprintf("%d", run.Errored),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Started", "Kind", "Mode", "Moved", "Skipped", "Errored"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
	))
}

type statusKind int

const (
	statusOK statusKind = iota
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const statusLabelWidth = 16

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := fmt.Sprintf("[%s]", statusKindLabel(kind))
	if message != "" {
		statusText += " " + message
	}
	line := fmt.Sprintf("  %-*s %s", statusLabelWidth, label+":", statusText)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + line + ansiReset
		}
	}
	return line
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "OK"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	default:
		return ansiGreen
	}
}

func printSection(out io.Writer, title string, colorize bool) {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	if colorize {
		line = ansiBlue + line + ansiReset
	}
	fmt.Fprintln(out, line)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
