// Package preflight provides readiness checks for the filesystem paths a
// reconstruction reads from and writes to.
//
// The reconstruction runner calls RunInputs before decoding and RunOutput
// before writing any speaker file, so a run fails fast instead of after the
// audio has been decoded and composited. Each check returns a Result rather
// than an error so callers can render every failure at once.
package preflight
