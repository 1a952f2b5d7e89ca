package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"speakersplit/internal/timeline"
)

func newSpeakersCommand(ctx *commandContext) *cobra.Command {
	var dialectFlag string

	cmd := &cobra.Command{
		Use:   "speakers <annotation>",
		Short: "Summarise the speakers in an annotation file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			effective := *cfg
			if cmd.Flags().Changed("dialect") {
				effective.Annotation.Dialect = strings.ToLower(strings.TrimSpace(dialectFlag))
			}
			dialect, err := effective.Dialect()
			if err != nil {
				return err
			}
			parser, err := timeline.NewParser(dialect)
			if err != nil {
				return err
			}
			timelines, err := parser.Load(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(timelines) == 0 {
				fmt.Fprintln(out, "No speech found")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Speaker", "Intervals", "Speech (s)", "First start", "Last end"},
				speakerRows(timelines),
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&dialectFlag, "dialect", "", "Annotation dialect: rttm, nemo, or custom")
	return cmd
}

func speakerRows(timelines timeline.Timelines) [][]string {
	rows := make([][]string, 0, len(timelines))
	for _, id := range timelines.SpeakerIDs() {
		tl := timelines[id]
		span, _ := tl.Span()
		rows = append(rows, []string{
			strconv.Itoa(id),
			strconv.Itoa(tl.Len()),
			formatSeconds(tl.SpeechDuration()),
			formatSeconds(span.Start),
			formatSeconds(span.End),
		})
	}
	return rows
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
