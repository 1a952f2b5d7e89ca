package timeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Parser turns annotation lines into per-speaker timelines. A Parser is not
// safe for concurrent use.
type Parser struct {
	dialect Dialect
	fold    cases.Caser
}

// NewParser validates the dialect and returns a parser for it.
func NewParser(d Dialect) (*Parser, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("dialect %s: %w", d.Name, err)
	}
	return &Parser{dialect: d, fold: cases.Fold()}, nil
}

// Dialect returns the layout the parser was built with.
func (p *Parser) Dialect() Dialect {
	return p.dialect
}

// Parse builds timelines from the given lines. Line numbers in errors are
// 1-based positions in lines.
func (p *Parser) Parse(lines []string) (Timelines, error) {
	out := Timelines{}
	for i, line := range lines {
		if err := p.parseLine(out, i+1, line); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ParseReader reads annotation lines from r until EOF.
func (p *Parser) ParseReader(r io.Reader) (Timelines, error) {
	out := Timelines{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := p.parseLine(out, lineNo, scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &AnnotationError{Line: lineNo + 1, Reason: "read failed", Err: err}
	}
	return out, nil
}

// Load parses the annotation file at path.
func (p *Parser) Load(path string) (Timelines, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open annotation: %w", err)
	}
	defer f.Close()
	return p.ParseReader(f)
}

func (p *Parser) parseLine(out Timelines, lineNo int, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	d := p.dialect
	fail := func(field, reason string, err error) error {
		return &AnnotationError{Line: lineNo, Text: strings.TrimSpace(line), Field: field, Reason: reason, Err: err}
	}
	if d.RecordType != "" && fields[0] != d.RecordType {
		if _, known := rttmRecordTypes[fields[0]]; d.StrictRecordTypes && !known {
			return fail("type", fmt.Sprintf("unknown record type %q", fields[0]), nil)
		}
		return nil
	}
	if need := d.minFields(); len(fields) < need {
		return fail("", fmt.Sprintf("expected at least %d fields, got %d", need, len(fields)), nil)
	}

	start, err := parseSeconds(fields[d.StartField])
	if err != nil {
		return fail("start", "", err)
	}
	var end float64
	if d.DurationField >= 0 {
		dur, err := parseSeconds(fields[d.DurationField])
		if err != nil {
			return fail("duration", "", err)
		}
		end = start + dur
	} else {
		end, err = parseSeconds(fields[d.EndField])
		if err != nil {
			return fail("end", "", err)
		}
	}
	if start < 0 {
		return fail("start", "must be non-negative", nil)
	}
	if end <= start {
		return fail("end", fmt.Sprintf("end %.3f does not follow start %.3f", end, start), nil)
	}

	speaker, err := p.parseLabel(fields[d.LabelField])
	if err != nil {
		return fail("label", "", err)
	}
	out.add(speaker, Interval{Start: start, End: end})
	return nil
}

func parseSeconds(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", raw)
	}
	return v, nil
}

// parseLabel extracts the speaker id from labels like "speaker_3" or
// "SPEAKER_00".
func (p *Parser) parseLabel(label string) (int, error) {
	idx := strings.LastIndexByte(label, '_')
	if idx <= 0 || idx == len(label)-1 {
		return 0, fmt.Errorf("label %q is not <prefix>_<number>", label)
	}
	prefix, digits := label[:idx], label[idx+1:]
	if want := p.dialect.LabelPrefix; want != "" && p.fold.String(prefix) != p.fold.String(want) {
		return 0, fmt.Errorf("label %q does not start with %q", label, want)
	}
	id, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("label %q has non-numeric speaker number", label)
	}
	if id < 0 {
		return 0, errors.New("speaker number must be non-negative")
	}
	return id, nil
}

// Parse is a convenience wrapper around NewParser(d).Parse(lines).
func Parse(d Dialect, lines []string) (Timelines, error) {
	p, err := NewParser(d)
	if err != nil {
		return nil, err
	}
	return p.Parse(lines)
}
