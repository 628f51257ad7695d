package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"hamremix/internal/history"
)

type historyRow struct {
	ID         string   `json:"id"`
	Mode       string   `json:"mode"`
	Source     string   `json:"source"`
	Transcript string   `json:"transcript,omitempty"`
	Output     string   `json:"output,omitempty"`
	Speakers   []string `json:"speakers,omitempty"`
	Seed       uint64   `json:"seed"`
	Segments   int      `json:"segments"`
	Duration   float64  `json:"duration_seconds"`
	Error      string   `json:"error,omitempty"`
	StartedAt  string   `json:"started_at"`
	FinishedAt string   `json:"finished_at,omitempty"`
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(store *history.Store) error {
				runs, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if asJSON {
					rows := make([]historyRow, 0, len(runs))
					for _, run := range runs {
						rows = append(rows, newHistoryRow(run))
					}
					return writeJSON(cmd, rows)
				}
				printHistory(cmd, runs)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print runs as JSON")
	return cmd
}

func newHistoryRow(run *history.Run) historyRow {
	row := historyRow{
		ID:         run.ID,
		Mode:       string(run.Mode),
		Source:     run.SourcePath,
		Transcript: run.TranscriptPath,
		Output:     run.OutputPath,
		Speakers:   run.Speakers,
		Seed:       run.Seed,
		Segments:   run.Segments,
		Duration:   run.DurationSeconds,
		Error:      run.ErrorMessage,
		StartedAt:  run.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if !run.FinishedAt.IsZero() {
		row.FinishedAt = run.FinishedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return row
}

func printHistory(cmd *cobra.Command, runs []*history.Run) {
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded")
		return
	}
	const stampLayout = "2006-01-02 15:04"
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		result := "ok"
		if !run.Succeeded() {
			result = truncate(run.ErrorMessage, 40)
		}
		output := "-"
		if run.OutputPath != "" {
			output = filepath.Base(run.OutputPath)
		}
		speakers := strings.Join(run.Speakers, ",")
		if speakers == "" {
			speakers = "-"
		}
		rows = append(rows, []string{
			run.StartedAt.Local().Format(stampLayout),
			string(run.Mode),
			speakers,
			fmt.Sprintf("%d", run.Seed),
			fmt.Sprintf("%d", run.Segments),
			output,
			result,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Started", "Mode", "Speakers", "Seed", "Segments", "Output", "Result"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
	))
}
