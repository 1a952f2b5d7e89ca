package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"speakersplit/internal/config"
	"speakersplit/internal/logging"
	"speakersplit/internal/reconstruct"
)

type isolateFlags struct {
	speakers []int
	all      bool
	dialect  string
	fade     float64
	sort     bool
	workers  int
}

func newIsolateCommand(ctx *commandContext) *cobra.Command {
	var flags isolateFlags

	cmd := &cobra.Command{
		Use:   "isolate <audio> <annotation>",
		Short: "Write one WAV per speaker containing only that speaker's speech",
		Long: "Reconstructs each selected speaker as a WAV file the same length as the input,\n" +
			"silent except where the speaker talks, with short fades at every cut.\n" +
			"Outputs are written next to the input as <name>_speaker_<id>.wav.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			effective := applyIsolateFlags(cmd, *cfg, flags)
			if err := effective.Validate(); err != nil {
				return err
			}
			dialect, err := effective.Dialect()
			if err != nil {
				return err
			}
			if !flags.all && len(flags.speakers) == 0 {
				return errors.New("select speakers with --speaker or use --all")
			}

			logger := ctx.loggerValue()
			options := []reconstruct.RunnerOption{
				reconstruct.WithWorkers(effective.Reconstruction.Workers),
				reconstruct.WithFreeSpaceCheck(effective.Reconstruction.CheckFreeSpace),
				reconstruct.WithLogger(logger),
			}
			store, err := ctx.openHistory()
			defer ctx.close()
			if err != nil {
				logging.WarnWithContext(logger, "run history unavailable", "history_open_failed",
					logging.String(logging.FieldErrorHint, "check paths.state_dir"),
					logging.String(logging.FieldImpact, "this run will not be recorded"),
					logging.Error(err),
				)
			} else if store != nil {
				options = append(options, reconstruct.WithRecorder(store))
			}

			runner, err := reconstruct.NewRunner(dialect, reconstruct.Options{
				FadeSeconds:   effective.Reconstruction.FadeSeconds,
				SortIntervals: effective.Reconstruction.SortIntervals,
			}, options...)
			if err != nil {
				return err
			}

			result, runErr := runner.Run(cmd.Context(), reconstruct.Request{
				AudioPath:      args[0],
				AnnotationPath: args[1],
				Speakers:       flags.speakers,
				AllSpeakers:    flags.all,
			})
			if result != nil {
				printIsolateResult(cmd, result)
			}
			return runErr
		},
	}

	cmd.Flags().IntSliceVarP(&flags.speakers, "speaker", "s", nil, "Speaker id to isolate (repeatable)")
	cmd.Flags().BoolVar(&flags.all, "all", false, "Isolate every speaker in the annotation")
	cmd.Flags().StringVar(&flags.dialect, "dialect", "", "Annotation dialect: rttm, nemo, or custom")
	cmd.Flags().Float64Var(&flags.fade, "fade", 0, "Fade length in seconds at each cut")
	cmd.Flags().BoolVar(&flags.sort, "sort", false, "Process intervals in start-time order")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "Speakers reconstructed in parallel")
	return cmd
}

// applyIsolateFlags returns a copy of cfg with explicitly set flags applied.
func applyIsolateFlags(cmd *cobra.Command, cfg config.Config, flags isolateFlags) config.Config {
	if cmd.Flags().Changed("dialect") {
		cfg.Annotation.Dialect = strings.ToLower(strings.TrimSpace(flags.dialect))
	}
	if cmd.Flags().Changed("fade") {
		cfg.Reconstruction.FadeSeconds = flags.fade
	}
	if cmd.Flags().Changed("sort") {
		cfg.Reconstruction.SortIntervals = flags.sort
	}
	if cmd.Flags().Changed("workers") {
		cfg.Reconstruction.Workers = flags.workers
	}
	return cfg
}

func printIsolateResult(cmd *cobra.Command, result *reconstruct.Result) {
	status := newStatusPrinter(cmd.OutOrStdout())
	status.heading("Isolated speakers")
	if len(result.Speakers) == 0 {
		status.item("Speakers", statusWarn, "none written")
		return
	}
	for _, sr := range result.Speakers {
		msg := fmt.Sprintf("%s (%d intervals, %.2fs speech)", sr.OutputPath, sr.Intervals, sr.Speech)
		status.item(fmt.Sprintf("Speaker %d", sr.Speaker), statusOK, msg)
	}
}
