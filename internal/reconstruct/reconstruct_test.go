package reconstruct_test

import (
	"errors"
	"math"
	"testing"

	"speakersplit/internal/reconstruct"
	"speakersplit/internal/timeline"
	"speakersplit/internal/waveform"
)

const rate = 16000

// rampSource returns a mono buffer whose sample i is a distinct non-zero value.
func rampSource(frames, channels int) *waveform.Buffer {
	buf := waveform.New(frames, channels, rate, waveform.PCM16)
	for i := range buf.Samples {
		buf.Samples[i] = 0.1 + 0.8*float64(i%997)/997
	}
	return buf
}

func speaker(id int, ivs ...timeline.Interval) timeline.Timeline {
	return timeline.Timeline{SpeakerID: id, Intervals: ivs}
}

func iv(start, end float64) timeline.Interval {
	return timeline.Interval{Start: start, End: end}
}

func noFade() reconstruct.Options {
	return reconstruct.Options{FadeSeconds: 0}
}

func TestExtractUsesFloorAndClamps(t *testing.T) {
	src := rampSource(rate, 1)
	segs := reconstruct.Extract(src, speaker(0, iv(0.0625, 0.5), iv(0.75, 2.0)))

	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if got := segs[0].Frames(); got != 7000 {
		t.Fatalf("expected 7000 frames, got %d", got)
	}
	if segs[0].Samples[0] != src.Samples[1000] {
		t.Fatal("expected first segment to start at frame 1000")
	}
	if got := segs[1].Frames(); got != 4000 {
		t.Fatalf("expected clamped segment of 4000 frames, got %d", got)
	}
}

func TestExtractStereoKeepsFrames(t *testing.T) {
	src := rampSource(rate, 2)
	segs := reconstruct.Extract(src, speaker(0, iv(0.25, 0.5)))
	if segs[0].Channels != 2 || segs[0].Frames() != 4000 || len(segs[0].Samples) != 8000 {
		t.Fatalf("unexpected stereo segment: channels=%d frames=%d", segs[0].Channels, segs[0].Frames())
	}
	if segs[0].Samples[1] != src.Samples[4000*2+1] {
		t.Fatal("expected interleaved samples from frame 4000")
	}
}

func TestReconstructKeepsSpeechAndSilencesRest(t *testing.T) {
	src := rampSource(rate, 1)
	tl := speaker(1, iv(0.0625, 0.25), iv(0.5, 0.6875))

	out, err := reconstruct.Reconstruct(src, tl, noFade())
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if out.FrameCount != src.FrameCount || out.SampleRate != src.SampleRate || out.Encoding != src.Encoding {
		t.Fatalf("output layout differs from source: %+v", out)
	}

	inside := func(frame int) bool {
		return (frame >= 1000 && frame < 4000) || (frame >= 8000 && frame < 11000)
	}
	for i, v := range out.Samples {
		if inside(i) {
			if v != src.Samples[i] {
				t.Fatalf("frame %d: got %v want source %v", i, v, src.Samples[i])
			}
		} else if v != 0 {
			t.Fatalf("frame %d: expected silence, got %v", i, v)
		}
	}
}

func TestReconstructDoesNotMutateSource(t *testing.T) {
	src := rampSource(rate, 2)
	before := rampSource(rate, 2)

	if _, err := reconstruct.Reconstruct(src, speaker(0, iv(0.25, 0.75)), reconstruct.DefaultOptions()); err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if !src.Equal(before) {
		t.Fatal("source buffer was modified")
	}
}

func TestReconstructEmptyTimelineIsSilence(t *testing.T) {
	src := rampSource(rate, 1)
	out, err := reconstruct.Reconstruct(src, speaker(0), reconstruct.DefaultOptions())
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if !out.Equal(src.Silence()) {
		t.Fatal("expected all-silent output")
	}
}

func TestCompositeRejectsBadIntervals(t *testing.T) {
	src := rampSource(rate, 1)

	cases := []struct {
		name string
		tl   timeline.Timeline
		want error
	}{
		{"past end", speaker(2, iv(0.5, 1.5)), reconstruct.ErrIntervalOutOfBounds},
		{"empty", speaker(2, iv(0.5, 0.5)), reconstruct.ErrInvalidInterval},
		{"reversed", speaker(2, iv(0.75, 0.5)), reconstruct.ErrInvalidInterval},
		{"negative", speaker(2, iv(-0.25, 0.5)), reconstruct.ErrInvalidInterval},
		{"later interval", speaker(2, iv(0.0, 0.25), iv(0.5, 2)), reconstruct.ErrIntervalOutOfBounds},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			canvas := src.Silence()
			err := reconstruct.Composite(canvas, reconstruct.Extract(src, tc.tl), tc.tl)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			var ivErr *reconstruct.IntervalError
			if !errors.As(err, &ivErr) {
				t.Fatalf("expected *IntervalError, got %T", err)
			}
			if ivErr.Speaker != 2 || ivErr.FrameCount != rate || ivErr.ErrorKind() != "validation" {
				t.Fatalf("unexpected error details: %+v", ivErr)
			}
			if !canvas.Equal(src.Silence()) {
				t.Fatal("canvas modified despite validation failure")
			}
		})
	}
}

func TestCompositeOutOfBoundsReportsOffsets(t *testing.T) {
	src := rampSource(rate, 1)
	tl := speaker(0, iv(0.5, 1.5))

	_, err := reconstruct.Reconstruct(src, tl, reconstruct.DefaultOptions())
	var ivErr *reconstruct.IntervalError
	if !errors.As(err, &ivErr) {
		t.Fatalf("expected *IntervalError, got %v", err)
	}
	if ivErr.StartSample != 8000 || ivErr.EndSample != 24000 || ivErr.Index != 0 {
		t.Fatalf("unexpected offsets: %+v", ivErr)
	}
}

func TestCompositeSegmentCountMismatch(t *testing.T) {
	src := rampSource(rate, 1)
	tl := speaker(0, iv(0.25, 0.5))
	if err := reconstruct.Composite(src.Silence(), nil, tl); err == nil {
		t.Fatal("expected error for missing segments")
	}
}

func TestCompositeSegmentLengthMismatch(t *testing.T) {
	canvas := waveform.New(100, 1, 100, waveform.PCM16)
	tl := speaker(0, iv(0.1, 0.2), iv(0.5, 0.6))
	ones := func(n int) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = 1
		}
		return out
	}
	segs := []reconstruct.Segment{
		{Interval: tl.Intervals[0], Samples: ones(6), Channels: 1},
		{Interval: tl.Intervals[1], Samples: ones(14), Channels: 1},
	}
	if err := reconstruct.Composite(canvas, segs, tl); err != nil {
		t.Fatalf("Composite: %v", err)
	}
	for i, v := range canvas.Samples {
		want := 0.0
		if (i >= 10 && i < 16) || (i >= 50 && i < 60) {
			want = 1
		}
		if v != want {
			t.Fatalf("frame %d: got %v want %v", i, v, want)
		}
	}
}

func TestReconstructExactFrames(t *testing.T) {
	src := rampSource(83200, 1)
	out, err := reconstruct.Reconstruct(src, speaker(2, iv(0.07, 2.695)), noFade())
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if out.FrameCount != 83200 {
		t.Fatalf("expected 83200 frames, got %d", out.FrameCount)
	}
	for i, v := range out.Samples {
		want := 0.0
		if i >= 1120 && i < 43120 {
			want = src.Samples[i]
		}
		if v != want {
			t.Fatalf("frame %d: got %v want %v", i, v, want)
		}
	}
}

func TestSortIntervalsOption(t *testing.T) {
	src := rampSource(rate, 1)
	tl := speaker(0, iv(0.5, 0.75), iv(0.0625, 0.25))

	declared, err := reconstruct.Reconstruct(src, tl, noFade())
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	sorted, err := reconstruct.Reconstruct(src, tl, reconstruct.Options{SortIntervals: true})
	if err != nil {
		t.Fatalf("Reconstruct sorted: %v", err)
	}
	if !declared.Equal(sorted) {
		t.Fatal("non-overlapping intervals should reconstruct identically in either order")
	}
	if tl.Intervals[0].Start != 0.5 {
		t.Fatal("sorting must not reorder the caller's timeline")
	}
}

func TestFadeRamp(t *testing.T) {
	fade := reconstruct.NewFade(rate, reconstruct.DefaultFadeSeconds)
	if fade.Len() != 3200 {
		t.Fatalf("expected 3200-frame fade, got %d", fade.Len())
	}
	gains := fade.Gains()
	if gains[0] != 0 || gains[len(gains)-1] != 1 {
		t.Fatalf("ramp endpoints = %v, %v", gains[0], gains[len(gains)-1])
	}
	for i := 1; i < len(gains); i++ {
		if gains[i] <= gains[i-1] {
			t.Fatalf("ramp not increasing at %d", i)
		}
	}
	if math.Abs(gains[1]-1.0/3199) > 1e-12 {
		t.Fatalf("unexpected ramp step %v", gains[1])
	}

	if reconstruct.NewFade(rate, 0).Len() != 0 {
		t.Fatal("expected empty fade for zero seconds")
	}
	if g := reconstruct.NewFade(1, 1).Gains(); len(g) != 1 || g[0] != 0 {
		t.Fatalf("single-frame fade = %v", g)
	}
}

func TestFadeShapesIntervalEdges(t *testing.T) {
	canvas := waveform.New(rate, 1, rate, waveform.PCM16)
	for i := range canvas.Samples {
		canvas.Samples[i] = 1
	}
	tl := speaker(0, iv(0.0625, 0.6875)) // frames [1000, 11000)
	fade := reconstruct.NewFade(rate, reconstruct.DefaultFadeSeconds)
	fade.Apply(canvas, tl)
	gains := fade.Gains()

	if canvas.Samples[1000] != 0 {
		t.Fatalf("expected zero gain at interval start, got %v", canvas.Samples[1000])
	}
	if canvas.Samples[1000+1600] != gains[1600] {
		t.Fatalf("fade-in mismatch: %v vs %v", canvas.Samples[2600], gains[1600])
	}
	if canvas.Samples[6000] != 1 {
		t.Fatalf("expected untouched middle, got %v", canvas.Samples[6000])
	}
	if canvas.Samples[10999] != 0 {
		t.Fatalf("expected zero gain at last frame, got %v", canvas.Samples[10999])
	}
	if canvas.Samples[11000-3200] != 1 {
		t.Fatalf("expected full gain at fade-out start, got %v", canvas.Samples[7800])
	}
	for i := 1000 + 1; i < 1000+3200; i++ {
		if canvas.Samples[i] < canvas.Samples[i-1] {
			t.Fatalf("fade-in not monotonic at frame %d", i)
		}
	}
	for i := 7800 + 1; i < 11000; i++ {
		if canvas.Samples[i] > canvas.Samples[i-1] {
			t.Fatalf("fade-out not monotonic at frame %d", i)
		}
	}
	if canvas.Samples[999] != 1 || canvas.Samples[11000] != 1 {
		t.Fatal("fade touched frames outside the interval")
	}
}

func TestFadeShortIntervalUsesLeadingRamp(t *testing.T) {
	canvas := waveform.New(rate, 2, rate, waveform.PCM16)
	for i := range canvas.Samples {
		canvas.Samples[i] = 1
	}
	tl := speaker(0, iv(0.25, 0.25625)) // frames [4000, 4100)
	fade := reconstruct.NewFade(rate, reconstruct.DefaultFadeSeconds)
	fade.Apply(canvas, tl)
	gains := fade.Gains()

	for j := range 100 {
		want := gains[j] * gains[99-j]
		for c := range 2 {
			if got := canvas.Samples[(4000+j)*2+c]; math.Abs(got-want) > 1e-15 {
				t.Fatalf("frame %d ch %d: got %v want %v", 4000+j, c, got, want)
			}
		}
	}
}

func TestFadeClampsToCanvas(t *testing.T) {
	canvas := waveform.New(1000, 1, rate, waveform.PCM16)
	for i := range canvas.Samples {
		canvas.Samples[i] = 1
	}
	fade := reconstruct.NewFade(rate, 0.01)
	fade.Apply(canvas, speaker(0, iv(0.03125, 5)))

	if canvas.Samples[999] != 0 {
		t.Fatalf("expected fade-out at canvas end, got %v", canvas.Samples[999])
	}
	if canvas.Samples[500] != 0 {
		t.Fatalf("expected fade-in at frame 500, got %v", canvas.Samples[500])
	}
}

func TestScenarioFromRTTM(t *testing.T) {
	src := waveform.New(83200, 1, rate, waveform.PCM16)
	for i := range src.Samples {
		src.Samples[i] = 0.5
	}
	tls, err := timeline.Parse(timeline.RTTM, []string{
		"SPEAKER meeting 1 0.220 2.875 <NA> <NA> speaker_1 <NA> <NA>",
		"SPEAKER meeting 1 3.095 2.105 <NA> <NA> speaker_0 <NA> <NA>",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	one, err := reconstruct.Reconstruct(src, tls[1], reconstruct.DefaultOptions())
	if err != nil {
		t.Fatalf("Reconstruct speaker 1: %v", err)
	}
	zero, err := reconstruct.Reconstruct(src, tls[0], reconstruct.DefaultOptions())
	if err != nil {
		t.Fatalf("Reconstruct speaker 0: %v", err)
	}

	if one.FrameCount != 83200 || zero.FrameCount != 83200 {
		t.Fatalf("unexpected lengths %d, %d", one.FrameCount, zero.FrameCount)
	}
	checks := []struct {
		buf   *waveform.Buffer
		frame int
		want  float64
	}{
		{one, 0, 0},
		{one, 3000, 0},
		{one, 20000, 0.5},
		{one, 70000, 0},
		{zero, 20000, 0},
		{zero, 70000, 0.5},
		{zero, 83199, 0},
	}
	for _, c := range checks {
		if got := c.buf.Samples[c.frame]; got != c.want {
			t.Fatalf("frame %d: got %v want %v", c.frame, got, c.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	cases := []struct {
		in      string
		speaker int
		want    string
	}{
		{"/this/is/a/test.wav", 3, "/this/is/a/test_speaker_3.wav"},
		{"meeting.wav", 0, "meeting_speaker_0.wav"},
		{"/data/take.2.wav", 12, "/data/take.2_speaker_12.wav"},
		{"/data/noext", 1, "/data/noext_speaker_1"},
		{"/a/.wav", 3, "/a/.wav_speaker_3"},
		{"/a/..wav", 2, "/a/._speaker_2.wav"},
		{"/a/rec.", 1, "/a/rec._speaker_1"},
	}
	for _, tc := range cases {
		if got := reconstruct.OutputPath(tc.in, tc.speaker); got != tc.want {
			t.Fatalf("OutputPath(%q, %d) = %q, want %q", tc.in, tc.speaker, got, tc.want)
		}
	}
}
