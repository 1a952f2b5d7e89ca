package timeline

import (
	"errors"
	"fmt"
)

// ErrMalformedAnnotation marks annotation input that could not be parsed.
var ErrMalformedAnnotation = errors.New("malformed annotation")

// AnnotationError reports the annotation line that failed to parse.
type AnnotationError struct {
	Line   int
	Text   string
	Field  string
	Reason string
	Err    error
}

func (e *AnnotationError) Error() string {
	msg := fmt.Sprintf("%s: line %d", ErrMalformedAnnotation, e.Line)
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Text != "" {
		msg += fmt.Sprintf(" (%q)", e.Text)
	}
	return msg
}

func (e *AnnotationError) Unwrap() error { return e.Err }

func (e *AnnotationError) Is(target error) bool { return target == ErrMalformedAnnotation }

// ErrorKind classifies annotation failures as input validation problems.
func (e *AnnotationError) ErrorKind() string { return "validation" }
