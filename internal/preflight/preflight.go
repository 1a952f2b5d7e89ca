package preflight

import (
	"errors"
	"strings"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Output describes where reconstructed audio will be written.
type Output struct {
	Dir string
	// Bytes is the total size of all files about to be written. Zero skips
	// the free-space check.
	Bytes int64
}

// RunInputs checks the audio and annotation inputs, in that order.
func RunInputs(audioPath, annotationPath string) []Result {
	return []Result{
		CheckReadableFile("Audio input", audioPath),
		CheckReadableFile("Annotation", annotationPath),
	}
}

// RunOutput checks the output directory and, when requested, free space.
func RunOutput(out Output) []Result {
	results := []Result{CheckDirectoryAccess("Output directory", out.Dir)}
	if out.Bytes > 0 {
		results = append(results, CheckFreeSpace("Output free space", out.Dir, out.Bytes))
	}
	return results
}

// Err folds failed results into a single error, or returns nil when all passed.
func Err(results []Result) error {
	var failed []string
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r.Name+": "+r.Detail)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return errors.New(strings.Join(failed, "; "))
}
