package history

import "errors"

// ErrorClassifier allows errors to declare their classification for status mapping.
type ErrorClassifier interface {
	// ErrorKind returns a string classification of the error. The kind
	// "validation" maps to StatusRejected; all others map to StatusFailed.
	ErrorKind() string
}

// FailureStatus maps a reconstruction error to the status recorded for the run.
func FailureStatus(err error) Status {
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		switch classifier.ErrorKind() {
		case "validation":
			return StatusRejected
		}
	}
	return StatusFailed
}
