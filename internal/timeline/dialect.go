package timeline

import (
	"errors"
	"fmt"
	"strings"
)

// NoField marks an unused field position.
const NoField = -1

// Dialect describes where the interval fields live on an annotation line.
// Positions are zero-based indexes into the whitespace-separated fields.
// Exactly one of DurationField and EndField is set.
type Dialect struct {
	Name string
	// RecordType, when set, restricts parsing to lines whose first field
	// matches it. Other lines are skipped.
	RecordType string
	// StrictRecordTypes rejects lines whose first field is not a known RTTM
	// record type instead of skipping them.
	StrictRecordTypes bool
	StartField        int
	DurationField     int
	EndField          int
	LabelField        int
	// LabelPrefix, when set, must match the label text before the final
	// underscore (compared case-insensitively).
	LabelPrefix string
}

// RTTM is the NIST Rich Transcription Time Marked layout produced by pyannote
// and NeMo diarizers. Only SPEAKER records carry intervals; the other standard
// record types are skipped and anything else is rejected as malformed.
var RTTM = Dialect{
	Name:              "rttm",
	RecordType:        "SPEAKER",
	StrictRecordTypes: true,
	StartField:        3,
	DurationField:     4,
	EndField:          NoField,
	LabelField:        7,
}

var rttmRecordTypes = map[string]struct{}{
	"SPEAKER":        {},
	"SPKR-INFO":      {},
	"SEGMENT":        {},
	"NOSCORE":        {},
	"NO_RT_METADATA": {},
	"LEXEME":         {},
	"NON-LEX":        {},
	"NON-SPEECH":     {},
	"FILLER":         {},
	"IP":             {},
	"SU":             {},
	"CB":             {},
	"A/P":            {},
}

// NeMo is the "<start> <end> <label>" layout of NeMo diarization labels.
var NeMo = Dialect{
	Name:          "nemo",
	StartField:    0,
	DurationField: NoField,
	EndField:      1,
	LabelField:    2,
}

// Lookup returns the built-in dialect with the given name.
func Lookup(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rttm", "":
		return RTTM, nil
	case "nemo":
		return NeMo, nil
	default:
		return Dialect{}, fmt.Errorf("unknown annotation dialect %q (want rttm or nemo)", name)
	}
}

// Validate checks that the field layout is usable.
func (d Dialect) Validate() error {
	if d.StartField < 0 {
		return errors.New("start field must be non-negative")
	}
	if d.LabelField < 0 {
		return errors.New("label field must be non-negative")
	}
	hasDuration := d.DurationField >= 0
	hasEnd := d.EndField >= 0
	if hasDuration == hasEnd {
		return errors.New("exactly one of duration field and end field must be set")
	}
	seen := map[int]string{}
	for name, pos := range map[string]int{"start": d.StartField, "duration": d.DurationField, "end": d.EndField, "label": d.LabelField} {
		if pos < 0 {
			continue
		}
		if other, dup := seen[pos]; dup {
			return fmt.Errorf("%s and %s fields share position %d", other, name, pos)
		}
		seen[pos] = name
	}
	return nil
}

// minFields is the number of fields a line needs to reach every position.
func (d Dialect) minFields() int {
	return max(d.StartField, d.DurationField, d.EndField, d.LabelField) + 1
}
