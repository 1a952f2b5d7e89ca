// Package reconstruct isolates one speaker's voice from a multi-speaker
// recording.
//
// Reconstruction for a speaker runs in four steps over a decoded waveform:
//
//  1. Extract slices the source samples for each of the speaker's intervals.
//  2. Silence (waveform.Buffer.Silence) allocates an all-zero canvas.
//  3. Composite writes every slice onto the canvas at its original offset.
//  4. Fade applies linear fade-in/fade-out ramps at every cut.
//
// Extraction converts seconds to frames with floor; compositing and fading use
// round. Composite writes round(end)-round(start) frames per interval, taken
// from the start of the extracted slice. When the slice is shorter than that
// span, the frames past its end stay silent; when it is longer, its tail is
// dropped.
//
// The source buffer is never mutated, so reconstructions for different
// speakers of the same recording may run in parallel. Runner does exactly that
// and also handles decoding, annotation parsing, output naming, preflight, and
// run history.
package reconstruct
