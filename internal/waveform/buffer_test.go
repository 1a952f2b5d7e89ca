package waveform_test

import (
	"testing"
	"time"

	"speakersplit/internal/waveform"
)

func TestSilenceMatchesLayout(t *testing.T) {
	src := rampBuffer(500, 2, 44100, waveform.Encoding{BitDepth: 24})
	canvas := src.Silence()
	if canvas.FrameCount != src.FrameCount || canvas.Channels != src.Channels ||
		canvas.SampleRate != src.SampleRate || canvas.Encoding != src.Encoding {
		t.Fatalf("canvas layout differs: %+v vs %+v", canvas, src)
	}
	if len(canvas.Samples) != len(src.Samples) {
		t.Fatalf("canvas has %d samples, want %d", len(canvas.Samples), len(src.Samples))
	}
	for i, v := range canvas.Samples {
		if v != 0 {
			t.Fatalf("canvas sample %d = %v, want 0", i, v)
		}
	}
	canvas.Samples[0] = 1
	if src.Samples[0] == 1 {
		t.Fatal("canvas shares storage with source")
	}
}

func TestSpanAliasesAndClamps(t *testing.T) {
	buf := waveform.New(10, 2, 10, waveform.PCM16)
	for i := range buf.Samples {
		buf.Samples[i] = float64(i)
	}
	span := buf.Span(2, 4)
	if len(span) != 4 || span[0] != 4 || span[3] != 7 {
		t.Fatalf("unexpected span %v", span)
	}
	if got := buf.Span(8, 50); len(got) != 4 {
		t.Fatalf("expected clamp at end, got %d samples", len(got))
	}
	if got := buf.Span(-3, 1); len(got) != 2 {
		t.Fatalf("expected clamp at start, got %d samples", len(got))
	}
	if got := buf.Span(6, 2); len(got) != 0 {
		t.Fatalf("expected empty span for reversed bounds, got %d samples", len(got))
	}
}

func TestBufferMetadata(t *testing.T) {
	mono := waveform.New(83200, 1, 16000, waveform.PCM16)
	if mono.ChannelShape() != nil {
		t.Fatalf("mono channel shape = %v, want empty", mono.ChannelShape())
	}
	if mono.Duration() != 5200*time.Millisecond {
		t.Fatalf("duration = %v", mono.Duration())
	}
	if mono.EncodedSize() != 44+83200*2 {
		t.Fatalf("encoded size = %d", mono.EncodedSize())
	}
	if mono.Encoding.String() != "PCM_16" {
		t.Fatalf("encoding tag = %s", mono.Encoding)
	}
	stereo := waveform.New(1, 2, 8000, waveform.PCM16)
	if shape := stereo.ChannelShape(); len(shape) != 1 || shape[0] != 2 {
		t.Fatalf("stereo channel shape = %v", shape)
	}
	if err := mono.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	bad := &waveform.Buffer{SampleRate: 0, Channels: 1}
	if err := bad.Validate(); err == nil {
		t.Fatal("expected validation error for zero sample rate")
	}
}
