package history

import "time"

// Status is the outcome of a single-speaker reconstruction.
type Status string

const (
	// StatusCompleted means the speaker's file was written.
	StatusCompleted Status = "completed"
	// StatusFailed means reconstruction or encoding failed for reasons
	// outside the inputs (I/O, disk space).
	StatusFailed Status = "failed"
	// StatusRejected means the inputs were invalid and must be fixed before
	// retrying.
	StatusRejected Status = "rejected"
)

// Run is one recorded reconstruction of one speaker.
type Run struct {
	ID             string
	AudioPath      string
	AnnotationPath string
	SpeakerID      int
	OutputPath     string
	IntervalCount  int
	FrameCount     int
	Status         Status
	ErrorMessage   string
	Elapsed        time.Duration
	CreatedAt      time.Time
}
