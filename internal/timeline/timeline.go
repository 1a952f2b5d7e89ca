package timeline

import (
	"slices"
	"sort"
)

// Interval is one contiguous speech region, in seconds from the start of the
// recording.
type Interval struct {
	Start float64
	End   float64
}

// Duration returns the interval length in seconds.
func (i Interval) Duration() float64 {
	return i.End - i.Start
}

// Timeline holds the speech intervals attributed to one speaker.
type Timeline struct {
	SpeakerID int
	Intervals []Interval
}

// Len reports the number of intervals.
func (t Timeline) Len() int {
	return len(t.Intervals)
}

// SpeechDuration sums the interval lengths in seconds.
func (t Timeline) SpeechDuration() float64 {
	var total float64
	for _, iv := range t.Intervals {
		total += iv.Duration()
	}
	return total
}

// Sorted returns a copy ordered by start time. Intervals with equal starts keep
// their declared order.
func (t Timeline) Sorted() Timeline {
	out := Timeline{SpeakerID: t.SpeakerID, Intervals: slices.Clone(t.Intervals)}
	sort.SliceStable(out.Intervals, func(a, b int) bool {
		return out.Intervals[a].Start < out.Intervals[b].Start
	})
	return out
}

// Span returns the earliest start and latest end across all intervals.
func (t Timeline) Span() (Interval, bool) {
	if len(t.Intervals) == 0 {
		return Interval{}, false
	}
	span := t.Intervals[0]
	for _, iv := range t.Intervals[1:] {
		span.Start = min(span.Start, iv.Start)
		span.End = max(span.End, iv.End)
	}
	return span, true
}

// Timelines maps speaker ids to their timelines for one diarization run.
type Timelines map[int]Timeline

// SpeakerIDs returns the speaker ids in ascending order.
func (ts Timelines) SpeakerIDs() []int {
	ids := make([]int, 0, len(ts))
	for id := range ts {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (ts Timelines) add(speaker int, iv Interval) {
	tl, ok := ts[speaker]
	if !ok {
		tl = Timeline{SpeakerID: speaker}
	}
	tl.Intervals = append(tl.Intervals, iv)
	ts[speaker] = tl
}
