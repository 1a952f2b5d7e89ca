// Package timeline parses speaker diarization annotations into per-speaker
// speech timelines.
//
// An annotation is line oriented: each line carries one speech interval and a
// speaker label. Where the start time, duration or end time, and label sit on a
// line depends on the tool that produced it, so parsing is driven by a Dialect.
// Two dialects ship built in:
//
//   - RTTM: "SPEAKER <file> <chan> <start> <dur> <NA> <NA> <label> <NA> <NA>"
//   - NeMo: "<start> <end> <label>"
//
// Custom dialects are assembled from field positions (see config).
//
// Intervals keep the order in which the annotation declared them. Callers that
// need time order ask for it explicitly with Timeline.Sorted.
package timeline
