package reconstruct

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"speakersplit/internal/history"
	"speakersplit/internal/logging"
	"speakersplit/internal/preflight"
	"speakersplit/internal/timeline"
	"speakersplit/internal/waveform"
)

// ErrNoSpeakers is returned when a request selects no speakers.
var ErrNoSpeakers = errors.New("no speakers selected")

// Recorder stores the outcome of each speaker reconstruction.
type Recorder interface {
	Record(ctx context.Context, run history.Run) error
}

// Request names the inputs of one isolation run.
type Request struct {
	AudioPath      string
	AnnotationPath string
	// Speakers lists the speaker ids to isolate. Duplicates are ignored.
	Speakers []int
	// AllSpeakers isolates every speaker in the annotation and ignores
	// Speakers.
	AllSpeakers bool
}

// SpeakerResult describes one written speaker file.
type SpeakerResult struct {
	RunID      string
	Speaker    int
	OutputPath string
	Intervals  int
	Frames     int
	Speech     float64
	Elapsed    time.Duration
}

// Result summarises an isolation run. Speakers are ordered as requested.
type Result struct {
	SampleRate int
	Channels   int
	Frames     int
	Encoding   waveform.Encoding
	Speakers   []SpeakerResult
}

// Runner decodes a recording once and reconstructs the requested speakers in
// parallel. A Runner may be reused across runs.
type Runner struct {
	dialect        timeline.Dialect
	opts           Options
	workers        int
	checkFreeSpace bool
	recorder       Recorder
	logger         *slog.Logger
	newID          func() string
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithWorkers limits how many speakers are reconstructed at once.
func WithWorkers(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithRecorder stores every speaker outcome in rec.
func WithRecorder(rec Recorder) RunnerOption {
	return func(r *Runner) {
		r.recorder = rec
	}
}

// WithLogger sets the logger used for progress messages.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithFreeSpaceCheck toggles the output free-space preflight.
func WithFreeSpaceCheck(enabled bool) RunnerOption {
	return func(r *Runner) {
		r.checkFreeSpace = enabled
	}
}

// NewRunner returns a runner that reads annotations with d.
func NewRunner(d timeline.Dialect, opts Options, options ...RunnerOption) (*Runner, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("dialect %s: %w", d.Name, err)
	}
	r := &Runner{
		dialect:        d,
		opts:           opts,
		workers:        1,
		checkFreeSpace: true,
		newID:          uuid.NewString,
	}
	for _, opt := range options {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "reconstruct")
	return r, nil
}

// Run isolates the requested speakers and writes one file per speaker next to
// the audio input. The returned Result lists the speakers that were written;
// on error it may be partial.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	inputs := preflight.RunInputs(req.AudioPath, req.AnnotationPath)
	if err := preflight.Err(inputs); err != nil {
		if !inputs[0].Passed {
			return nil, fmt.Errorf("%w: preflight: %w", waveform.ErrUnreadableAudio, err)
		}
		return nil, fmt.Errorf("preflight: %w", err)
	}

	src, err := waveform.Decode(req.AudioPath)
	if err != nil {
		return nil, err
	}
	parser, err := timeline.NewParser(r.dialect)
	if err != nil {
		return nil, err
	}
	timelines, err := parser.Load(req.AnnotationPath)
	if err != nil {
		return nil, err
	}
	r.logger.Info("inputs loaded",
		logging.String("audio", req.AudioPath),
		logging.String("encoding", src.Encoding.String()),
		logging.Int("sample_rate", src.SampleRate),
		logging.Int("channels", src.Channels),
		logging.Duration("duration", src.Duration()),
		logging.Int("speakers", len(timelines)),
		logging.Float64("fade_seconds", r.opts.FadeSeconds),
		logging.Bool("sort_intervals", r.opts.SortIntervals),
	)

	speakers, err := r.selectSpeakers(ctx, req, timelines)
	if err != nil {
		return nil, err
	}

	outDir := filepath.Dir(OutputPath(req.AudioPath, 0))
	need := int64(0)
	if r.checkFreeSpace {
		need = src.EncodedSize() * int64(len(speakers))
	}
	if err := preflight.Err(preflight.RunOutput(preflight.Output{Dir: outDir, Bytes: need})); err != nil {
		return nil, fmt.Errorf("%w: preflight: %w", waveform.ErrUnwritableAudio, err)
	}

	result := &Result{
		SampleRate: src.SampleRate,
		Channels:   src.Channels,
		Frames:     src.FrameCount,
		Encoding:   src.Encoding,
		Speakers:   make([]SpeakerResult, len(speakers)),
	}
	done := make([]bool, len(speakers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, speaker := range speakers {
		g.Go(func() error {
			res, err := r.isolate(gctx, req, src, timelines[speaker])
			if err != nil {
				return fmt.Errorf("speaker %d: %w", speaker, err)
			}
			result.Speakers[i] = res
			done[i] = true
			return nil
		})
	}
	waitErr := g.Wait()

	written := result.Speakers[:0]
	for i, ok := range done {
		if ok {
			written = append(written, result.Speakers[i])
		}
	}
	result.Speakers = written
	return result, waitErr
}

// selectSpeakers resolves the request to speaker ids. Unknown ids are
// recorded as rejected runs before the error is returned.
func (r *Runner) selectSpeakers(ctx context.Context, req Request, timelines timeline.Timelines) ([]int, error) {
	available := timelines.SpeakerIDs()
	if req.AllSpeakers {
		if len(available) == 0 {
			return nil, fmt.Errorf("%w: annotation %s has no speech", ErrNoSpeakers, req.AnnotationPath)
		}
		return available, nil
	}
	if len(req.Speakers) == 0 {
		return nil, ErrNoSpeakers
	}

	speakers := make([]int, 0, len(req.Speakers))
	var errs []error
	for _, id := range req.Speakers {
		if slices.Contains(speakers, id) {
			continue
		}
		if _, ok := timelines[id]; !ok {
			err := &unknownSpeakerError{speaker: id, available: available}
			r.record(ctx, history.Run{
				ID:             r.newID(),
				AudioPath:      req.AudioPath,
				AnnotationPath: req.AnnotationPath,
				SpeakerID:      id,
				Status:         history.FailureStatus(err),
				ErrorMessage:   err.Error(),
			})
			errs = append(errs, err)
			continue
		}
		speakers = append(speakers, id)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return speakers, nil
}

func (r *Runner) isolate(ctx context.Context, req Request, src *waveform.Buffer, tl timeline.Timeline) (SpeakerResult, error) {
	runID := r.newID()
	ctx = logging.WithSpeaker(logging.WithRunID(ctx, runID), tl.SpeakerID)
	logger := logging.WithContext(ctx, r.logger)
	started := time.Now()

	res := SpeakerResult{
		RunID:      runID,
		Speaker:    tl.SpeakerID,
		OutputPath: OutputPath(req.AudioPath, tl.SpeakerID),
		Intervals:  tl.Len(),
		Speech:     tl.SpeechDuration(),
	}
	run := history.Run{
		ID:             runID,
		AudioPath:      req.AudioPath,
		AnnotationPath: req.AnnotationPath,
		SpeakerID:      tl.SpeakerID,
		OutputPath:     res.OutputPath,
		IntervalCount:  res.Intervals,
		CreatedAt:      started,
	}

	err := ctx.Err()
	var out *waveform.Buffer
	if err == nil {
		out, err = Reconstruct(src, tl, r.opts)
	}
	if err == nil {
		res.Frames = out.FrameCount
		err = waveform.Encode(res.OutputPath, out)
	}
	res.Elapsed = time.Since(started)
	run.FrameCount = res.Frames
	run.Elapsed = res.Elapsed

	if err != nil {
		run.Status = history.FailureStatus(err)
		run.ErrorMessage = err.Error()
		r.record(ctx, run)
		logging.ErrorWithContext(logger, "speaker isolation failed", "speaker_failed",
			logging.String("status", string(run.Status)),
			logging.Error(err),
		)
		return res, err
	}

	run.Status = history.StatusCompleted
	r.record(ctx, run)
	logger.Info("speaker isolated",
		logging.String("output", res.OutputPath),
		logging.Int("intervals", res.Intervals),
		logging.Float64("speech_seconds", res.Speech),
		logging.String("size", humanize.IBytes(uint64(out.EncodedSize()))),
		logging.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

// record stores run when a recorder is configured. History is best effort: a
// failed write is logged and never fails the reconstruction.
func (r *Runner) record(ctx context.Context, run history.Run) {
	if r.recorder == nil {
		return
	}
	if err := r.recorder.Record(context.WithoutCancel(ctx), run); err != nil {
		logging.WarnWithContext(r.logger, "run history not recorded", "history_write_failed",
			logging.String(logging.FieldRunID, run.ID),
			logging.String(logging.FieldErrorHint, "check state_dir permissions"),
			logging.String(logging.FieldImpact, "run is missing from history"),
			logging.Error(err),
		)
	}
}
