package reconstruct

import (
	"speakersplit/internal/timeline"
	"speakersplit/internal/waveform"
)

// Segment is the source audio for one interval. Samples alias the source
// buffer and must not be written to.
type Segment struct {
	Interval timeline.Interval
	Samples  []float64
	Channels int
}

// Frames returns the number of frames in the segment.
func (s Segment) Frames() int {
	if s.Channels <= 0 {
		return 0
	}
	return len(s.Samples) / s.Channels
}

// Extract slices src into one segment per interval of tl, in interval order.
// Each segment covers frames [floor(rate*start), floor(rate*end)), clamped to
// the recording.
func Extract(src *waveform.Buffer, tl timeline.Timeline) []Segment {
	segments := make([]Segment, len(tl.Intervals))
	for i, iv := range tl.Intervals {
		from := floorFrame(iv.Start, src.SampleRate)
		to := floorFrame(iv.End, src.SampleRate)
		segments[i] = Segment{
			Interval: iv,
			Samples:  src.Span(from, to),
			Channels: src.Channels,
		}
	}
	return segments
}
