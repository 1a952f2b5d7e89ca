package reconstruct

import (
	"fmt"

	"speakersplit/internal/timeline"
	"speakersplit/internal/waveform"
)

// Composite writes each segment onto canvas over frames
// [round(start*rate), round(end*rate)) of its interval. Exactly end-start
// frames are taken from the start of the segment; if the segment is shorter,
// the remaining frames stay silent.
//
// Every interval is checked before anything is written, so on error the
// canvas is left untouched.
func Composite(canvas *waveform.Buffer, segments []Segment, tl timeline.Timeline) error {
	if len(segments) != len(tl.Intervals) {
		return fmt.Errorf("composite: %d segments for %d intervals", len(segments), len(tl.Intervals))
	}

	type span struct{ start, end int }
	spans := make([]span, len(tl.Intervals))
	for i, iv := range tl.Intervals {
		start := roundFrame(iv.Start, canvas.SampleRate)
		end := roundFrame(iv.End, canvas.SampleRate)
		ivErr := &IntervalError{
			Speaker:     tl.SpeakerID,
			Index:       i,
			Interval:    iv,
			StartSample: start,
			EndSample:   end,
			FrameCount:  canvas.FrameCount,
		}
		switch {
		case start < 0 || start >= end:
			ivErr.Err = ErrInvalidInterval
			return ivErr
		case end > canvas.FrameCount:
			ivErr.Err = ErrIntervalOutOfBounds
			return ivErr
		}
		if segments[i].Channels != canvas.Channels {
			return fmt.Errorf("composite: segment %d has %d channels, canvas has %d", i, segments[i].Channels, canvas.Channels)
		}
		spans[i] = span{start: start, end: end}
	}

	for i := range spans {
		dst := canvas.Span(spans[i].start, spans[i].end)
		src := segments[i].Samples
		n := min(len(dst), len(src))
		copy(dst[:n], src[:n])
	}
	return nil
}
