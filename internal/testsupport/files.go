package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"speakersplit/internal/waveform"
)

// WriteWAV encodes buf to path, creating parent directories.
func WriteWAV(t testing.TB, path string, buf *waveform.Buffer) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := waveform.Encode(path, buf); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

// ReadWAV decodes the WAV file at path.
func ReadWAV(t testing.TB, path string) *waveform.Buffer {
	t.Helper()

	buf, err := waveform.Decode(path)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return buf
}

// ConstantBuffer returns a buffer whose every sample equals value.
func ConstantBuffer(frames, channels, sampleRate int, value float64) *waveform.Buffer {
	buf := waveform.New(frames, channels, sampleRate, waveform.PCM16)
	for i := range buf.Samples {
		buf.Samples[i] = value
	}
	return buf
}

// WriteAnnotation writes lines to path, one per line.
func WriteAnnotation(t testing.TB, path string, lines ...string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	body := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
