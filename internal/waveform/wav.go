package waveform

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"speakersplit/internal/fileutil"
)

// wavFormatPCM is the WAVE_FORMAT_PCM tag.
const wavFormatPCM = 1

// Decode reads the WAV file at path into memory.
func Decode(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newUnreadable(path, err)
	}
	defer f.Close()

	buf, err := decode(f)
	if err != nil {
		return nil, newUnreadable(path, err)
	}
	return buf, nil
}

func decode(r io.ReadSeeker) (*Buffer, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("not a valid WAV file")
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: wav format tag %d", ErrUnsupportedEncoding, dec.WavAudioFormat)
	}
	enc := Encoding{BitDepth: int(dec.BitDepth)}
	if !enc.Supported() {
		return nil, fmt.Errorf("%w: %d-bit samples", ErrUnsupportedEncoding, dec.BitDepth)
	}
	channels := int(dec.NumChans)
	if channels <= 0 {
		return nil, errors.New("no audio channels")
	}
	if dec.SampleRate == 0 {
		return nil, errors.New("zero sample rate")
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("read pcm: %w", err)
	}
	frames := len(pcm.Data) / channels

	out := New(frames, channels, int(dec.SampleRate), enc)
	scale := enc.fullScale()
	for i := range out.Samples {
		out.Samples[i] = float64(pcm.Data[i]) / scale
	}
	return out, nil
}

// Encode writes buf to path as WAV using the buffer's sample rate, channel
// count, and encoding. The file is replaced atomically.
func Encode(path string, buf *Buffer) error {
	if err := checkEncodable(buf); err != nil {
		return newUnwritable(path, err)
	}
	err := fileutil.WriteAtomic(path, 0o644, func(f *os.File) error {
		return encode(f, buf)
	})
	if err != nil {
		return newUnwritable(path, err)
	}
	return nil
}

func checkEncodable(buf *Buffer) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	if !buf.Encoding.Supported() {
		return fmt.Errorf("%w: %s", ErrUnsupportedEncoding, buf.Encoding)
	}
	return nil
}

func encode(w io.WriteSeeker, buf *Buffer) error {
	enc := wav.NewEncoder(w, buf.SampleRate, buf.Encoding.BitDepth, buf.Channels, wavFormatPCM)
	pcm := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: buf.Channels, SampleRate: buf.SampleRate},
		Data:           quantize(buf.Samples, buf.Encoding),
		SourceBitDepth: buf.Encoding.BitDepth,
	}
	if err := enc.Write(pcm); err != nil {
		return fmt.Errorf("write pcm: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}
	return nil
}

// quantize maps normalised samples back to integers, clamping to the
// encoding's range.
func quantize(samples []float64, enc Encoding) []int {
	scale := enc.fullScale()
	lo, hi := -scale, scale-1
	out := make([]int, len(samples))
	for i, v := range samples {
		q := math.Round(v * scale)
		switch {
		case math.IsNaN(q):
			q = 0
		case q < lo:
			q = lo
		case q > hi:
			q = hi
		}
		out[i] = int(q)
	}
	return out
}
