package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-isatty"
)

type status string

const (
	statusOK   status = "OK"
	statusNote status = "INFO"
	statusWarn status = "WARN"
)

const (
	ansiReset = "\x1b[0m"
	ansiBlue  = "\x1b[34m"
)

var statusColors = map[status]string{
	statusOK:   "\x1b[32m",
	statusNote: ansiBlue,
	statusWarn: "\x1b[33m",
}

// statusPrinter writes aligned "label: [STATE] detail" lines. The state token
// is coloured only when the writer is a terminal.
type statusPrinter struct {
	w     io.Writer
	color bool
}

func newStatusPrinter(w io.Writer) *statusPrinter {
	p := &statusPrinter{w: w}
	if f, ok := w.(*os.File); ok {
		p.color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return p
}

func (p *statusPrinter) paint(code, text string) string {
	if !p.color || code == "" {
		return text
	}
	return code + text + ansiReset
}

func (p *statusPrinter) heading(title string) {
	title = strings.TrimSpace(title)
	fmt.Fprintln(p.w, p.paint(ansiBlue, title))
	fmt.Fprintln(p.w, p.paint(ansiBlue, strings.Repeat("=", utf8.RuneCountInString(title))))
}

func (p *statusPrinter) item(label string, s status, detail string) {
	state := p.paint(statusColors[s], "["+string(s)+"]")
	if detail != "" {
		state += " " + detail
	}
	fmt.Fprintf(p.w, "  %-20s %s\n", label+":", state)
}
