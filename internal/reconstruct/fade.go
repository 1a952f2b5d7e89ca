package reconstruct

import (
	"math"

	"speakersplit/internal/timeline"
	"speakersplit/internal/waveform"
)

// DefaultFadeSeconds is the fade length applied at every cut.
const DefaultFadeSeconds = 0.2

// Fade applies linear gain ramps at the edges of composited intervals. The
// ramp is computed once and shared by every interval.
type Fade struct {
	ramp []float64
}

// NewFade builds a fade of round(seconds*sampleRate) frames. A non-positive
// length yields a fade that leaves audio untouched.
func NewFade(sampleRate int, seconds float64) Fade {
	n := int(math.Round(seconds * float64(sampleRate)))
	return Fade{ramp: linearRamp(n)}
}

// linearRamp returns n evenly spaced gains from 0 to 1 inclusive.
func linearRamp(n int) []float64 {
	if n <= 0 {
		return nil
	}
	ramp := make([]float64, n)
	if n == 1 {
		return ramp
	}
	step := 1 / float64(n-1)
	for i := range ramp {
		ramp[i] = float64(i) * step
	}
	ramp[n-1] = 1
	return ramp
}

// Len returns the fade length in frames.
func (f Fade) Len() int {
	return len(f.ramp)
}

// Gains returns a copy of the fade-in ramp.
func (f Fade) Gains() []float64 {
	return append([]float64(nil), f.ramp...)
}

// Apply fades in the first frames and fades out the last frames of every
// interval of tl on canvas. Windows are clamped to the interval and to the
// canvas, so short or out-of-range intervals never fail; an interval shorter
// than the fade uses the leading part of the ramp.
func (f Fade) Apply(canvas *waveform.Buffer, tl timeline.Timeline) {
	if len(f.ramp) == 0 {
		return
	}
	for _, iv := range tl.Intervals {
		start := clampFrame(roundFrame(iv.Start, canvas.SampleRate), canvas.FrameCount)
		end := clampFrame(roundFrame(iv.End, canvas.SampleRate), canvas.FrameCount)
		if end <= start {
			continue
		}
		f.fadeIn(canvas, start, end)
		f.fadeOut(canvas, start, end)
	}
}

func (f Fade) fadeIn(canvas *waveform.Buffer, start, end int) {
	w := min(len(f.ramp), end-start)
	for j := range w {
		scaleFrame(canvas, start+j, f.ramp[j])
	}
}

func (f Fade) fadeOut(canvas *waveform.Buffer, start, end int) {
	w := min(len(f.ramp), end-start)
	for j := range w {
		scaleFrame(canvas, end-w+j, f.ramp[w-1-j])
	}
}

func scaleFrame(canvas *waveform.Buffer, frame int, gain float64) {
	base := frame * canvas.Channels
	for c := range canvas.Channels {
		canvas.Samples[base+c] *= gain
	}
}

func clampFrame(frame, frames int) int {
	return min(max(frame, 0), frames)
}
