package waveform

import (
	"errors"
	"fmt"
	"time"
)

// wavHeaderBytes is the size of a canonical RIFF/WAVE header.
const wavHeaderBytes = 44

// Encoding is the on-disk sample representation. Only integer PCM is
// supported.
type Encoding struct {
	BitDepth int
}

// PCM16 is 16-bit signed integer PCM, the common diarization input.
var PCM16 = Encoding{BitDepth: 16}

// String renders the encoding the way soundfile names subtypes ("PCM_16").
func (e Encoding) String() string {
	return fmt.Sprintf("PCM_%d", e.BitDepth)
}

// Supported reports whether the encoding can be decoded and re-encoded.
func (e Encoding) Supported() bool {
	switch e.BitDepth {
	case 16, 24, 32:
		return true
	default:
		return false
	}
}

// BytesPerSample returns the encoded width of one sample.
func (e Encoding) BytesPerSample() int {
	return e.BitDepth / 8
}

// fullScale is the magnitude that maps to 1.0.
func (e Encoding) fullScale() float64 {
	return float64(int64(1) << (e.BitDepth - 1))
}

// Buffer is a fully materialised waveform. Samples are interleaved: frame i,
// channel c lives at Samples[i*Channels+c].
type Buffer struct {
	Samples    []float64
	FrameCount int
	Channels   int
	SampleRate int
	Encoding   Encoding
}

// New allocates a zeroed buffer.
func New(frames, channels, sampleRate int, enc Encoding) *Buffer {
	return &Buffer{
		Samples:    make([]float64, frames*channels),
		FrameCount: frames,
		Channels:   channels,
		SampleRate: sampleRate,
		Encoding:   enc,
	}
}

// Silence returns an all-zero buffer with the same frame count, channel layout,
// sample rate, and encoding as b. It is the canvas speech gets composited onto.
func (b *Buffer) Silence() *Buffer {
	return New(b.FrameCount, b.Channels, b.SampleRate, b.Encoding)
}

// Validate checks the structural invariants of the buffer.
func (b *Buffer) Validate() error {
	switch {
	case b == nil:
		return errors.New("nil buffer")
	case b.SampleRate <= 0:
		return fmt.Errorf("sample rate %d must be positive", b.SampleRate)
	case b.Channels <= 0:
		return fmt.Errorf("channel count %d must be positive", b.Channels)
	case b.FrameCount < 0:
		return fmt.Errorf("frame count %d must be non-negative", b.FrameCount)
	case len(b.Samples) != b.FrameCount*b.Channels:
		return fmt.Errorf("sample count %d does not match %d frames x %d channels", len(b.Samples), b.FrameCount, b.Channels)
	}
	return nil
}

// Span returns the samples of frames [from, to) as a slice aliasing b's
// storage. Bounds are clamped to the buffer.
func (b *Buffer) Span(from, to int) []float64 {
	from = min(max(from, 0), b.FrameCount)
	to = min(max(to, from), b.FrameCount)
	return b.Samples[from*b.Channels : to*b.Channels]
}

// ChannelShape mirrors the trailing array dimensions beyond the frame axis:
// empty for mono, [channels] otherwise.
func (b *Buffer) ChannelShape() []int {
	if b.Channels == 1 {
		return nil
	}
	return []int{b.Channels}
}

// Duration is the playback length of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.FrameCount) * time.Second / time.Duration(b.SampleRate)
}

// EncodedSize estimates the size of b written as a WAV file.
func (b *Buffer) EncodedSize() int64 {
	return wavHeaderBytes + int64(b.FrameCount)*int64(b.Channels)*int64(b.Encoding.BytesPerSample())
}

// Equal reports whether two buffers have identical layout and samples.
func (b *Buffer) Equal(other *Buffer) bool {
	if b.FrameCount != other.FrameCount || b.Channels != other.Channels ||
		b.SampleRate != other.SampleRate || b.Encoding != other.Encoding ||
		len(b.Samples) != len(other.Samples) {
		return false
	}
	for i, v := range b.Samples {
		if v != other.Samples[i] {
			return false
		}
	}
	return true
}
