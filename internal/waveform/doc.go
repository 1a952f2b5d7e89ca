// Package waveform holds decoded audio in memory and moves it to and from WAV
// files.
//
// A Buffer stores frames interleaved by channel as float64 samples normalised
// to [-1, 1), the same representation soundfile-style decoders hand out. The
// on-disk sample encoding is kept alongside so an output written from a Buffer
// matches its input bit for bit in layout, rate, and depth.
//
// Decoded buffers are treated as read-only. Silence allocates the mutable
// canvas that reconstruction writes into.
package waveform
