package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"speakersplit/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent isolation runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			store, err := ctx.openHistory()
			defer ctx.close()
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			if store == nil {
				fmt.Fprintln(out, "Run history is disabled (history.enabled = false)")
				return nil
			}
			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"When", "Speaker", "Status", "Intervals", "Elapsed", "Result"},
				historyRows(runs, time.Now()),
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	return cmd
}

func historyRows(runs []history.Run, now time.Time) [][]string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		result := run.OutputPath
		if run.Status != history.StatusCompleted {
			result = run.ErrorMessage
		}
		rows = append(rows, []string{
			humanize.RelTime(run.CreatedAt, now, "ago", "from now"),
			strconv.Itoa(run.SpeakerID),
			string(run.Status),
			strconv.Itoa(run.IntervalCount),
			run.Elapsed.Round(time.Millisecond).String(),
			result,
		})
	}
	return rows
}
