package reconstruct

import (
	"errors"
	"fmt"

	"speakersplit/internal/timeline"
)

var (
	// ErrInvalidInterval marks an interval that is empty or reversed once
	// converted to sample offsets.
	ErrInvalidInterval = errors.New("invalid interval")
	// ErrIntervalOutOfBounds marks an interval that ends past the recording.
	ErrIntervalOutOfBounds = errors.New("interval out of bounds")
	// ErrUnknownSpeaker marks a requested speaker missing from the annotation.
	ErrUnknownSpeaker = errors.New("unknown speaker")
)

// IntervalError describes the interval that stopped a reconstruction.
type IntervalError struct {
	Speaker     int
	Index       int
	Interval    timeline.Interval
	StartSample int
	EndSample   int
	FrameCount  int
	Err         error
}

func (e *IntervalError) Error() string {
	return fmt.Sprintf("%v: speaker %d interval %d (%.3fs-%.3fs): samples [%d, %d) of %d frames",
		e.Err, e.Speaker, e.Index, e.Interval.Start, e.Interval.End, e.StartSample, e.EndSample, e.FrameCount)
}

func (e *IntervalError) Unwrap() error { return e.Err }

// ErrorKind classifies interval failures as input validation problems.
func (e *IntervalError) ErrorKind() string { return "validation" }

type unknownSpeakerError struct {
	speaker   int
	available []int
}

func (e *unknownSpeakerError) Error() string {
	return fmt.Sprintf("%v %d (annotation has %v)", ErrUnknownSpeaker, e.speaker, e.available)
}

func (e *unknownSpeakerError) Unwrap() error { return ErrUnknownSpeaker }

func (e *unknownSpeakerError) ErrorKind() string { return "validation" }
