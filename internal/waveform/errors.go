package waveform

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreadableAudio marks inputs that could not be opened or decoded.
	ErrUnreadableAudio = errors.New("unreadable audio")
	// ErrUnwritableAudio marks outputs that could not be encoded or written.
	ErrUnwritableAudio = errors.New("unwritable audio")
	// ErrUnsupportedEncoding is wrapped by decode and encode failures caused by
	// a sample format outside integer PCM 16/24/32.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
)

// AudioError carries the operation and path of a codec failure.
type AudioError struct {
	Op     string
	Path   string
	Err    error
	marker error
}

func newUnreadable(path string, err error) error {
	return &AudioError{Op: "decode", Path: path, Err: err, marker: ErrUnreadableAudio}
}

func newUnwritable(path string, err error) error {
	return &AudioError{Op: "encode", Path: path, Err: err, marker: ErrUnwritableAudio}
}

func (e *AudioError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s: %v", e.marker, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s %s: %v", e.marker, e.Op, e.Path, e.Err)
}

func (e *AudioError) Unwrap() []error { return []error{e.marker, e.Err} }

// ErrorKind classifies codec failures as I/O problems.
func (e *AudioError) ErrorKind() string { return "io" }
