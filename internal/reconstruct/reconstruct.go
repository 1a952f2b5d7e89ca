package reconstruct

import (
	"fmt"

	"speakersplit/internal/timeline"
	"speakersplit/internal/waveform"
)

// Options tunes a single-speaker reconstruction.
type Options struct {
	// FadeSeconds is the length of the fade applied at every cut.
	FadeSeconds float64
	// SortIntervals orders intervals by start time before compositing and
	// fading. When false, intervals are processed as declared.
	SortIntervals bool
}

// DefaultOptions returns the standard reconstruction settings.
func DefaultOptions() Options {
	return Options{FadeSeconds: DefaultFadeSeconds}
}

// Reconstruct builds a new buffer holding only tl's speech from src, silence
// elsewhere, and fades at every cut. src is not modified.
func Reconstruct(src *waveform.Buffer, tl timeline.Timeline, opts Options) (*waveform.Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("source waveform: %w", err)
	}
	if opts.SortIntervals {
		tl = tl.Sorted()
	}
	segments := Extract(src, tl)
	canvas := src.Silence()
	if err := Composite(canvas, segments, tl); err != nil {
		return nil, err
	}
	NewFade(src.SampleRate, opts.FadeSeconds).Apply(canvas, tl)
	return canvas, nil
}
