package history_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"speakersplit/internal/history"
	"speakersplit/internal/testsupport"
)

type kindError string

func (k kindError) Error() string     { return string(k) }
func (k kindError) ErrorKind() string { return string(k) }

func TestOpenCreatesDatabase(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)

	if store.Path() != cfg.HistoryPath() {
		t.Fatalf("unexpected path %q", store.Path())
	}
	if _, err := os.Stat(store.Path()); err != nil {
		t.Fatalf("expected database file: %v", err)
	}

	runs, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected empty history, got %d runs", len(runs))
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	first, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := first.Record(ctx, history.Run{ID: "a", AudioPath: "in.wav", AnnotationPath: "in.rttm", Status: history.StatusCompleted}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second := testsupport.MustOpenHistory(t, cfg)
	runs, err := second.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != "a" {
		t.Fatalf("expected run to survive reopen, got %+v", runs)
	}
}

func TestRecordAndList(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := range 3 {
		run := history.Run{
			ID:             fmt.Sprintf("run-%d", i),
			AudioPath:      "/data/meeting.wav",
			AnnotationPath: "/data/meeting.rttm",
			SpeakerID:      i,
			OutputPath:     fmt.Sprintf("/data/meeting_speaker_%d.wav", i),
			IntervalCount:  i + 1,
			FrameCount:     83200,
			Status:         history.StatusCompleted,
			Elapsed:        1500 * time.Millisecond,
			CreatedAt:      base.Add(time.Duration(i) * time.Second),
		}
		if err := store.Record(ctx, run); err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
	}

	runs, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected limit to apply, got %d runs", len(runs))
	}
	if runs[0].ID != "run-2" || runs[1].ID != "run-1" {
		t.Fatalf("expected newest first, got %s, %s", runs[0].ID, runs[1].ID)
	}
	got := runs[0]
	if got.SpeakerID != 2 || got.IntervalCount != 3 || got.FrameCount != 83200 {
		t.Fatalf("unexpected run fields: %+v", got)
	}
	if got.Elapsed != 1500*time.Millisecond {
		t.Fatalf("unexpected elapsed %v", got.Elapsed)
	}
	if !got.CreatedAt.Equal(base.Add(2 * time.Second)) {
		t.Fatalf("unexpected created_at %v", got.CreatedAt)
	}
	if got.OutputPath != "/data/meeting_speaker_2.wav" {
		t.Fatalf("unexpected output path %q", got.OutputPath)
	}
}

func TestRecordRequiresIDAndStatus(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	if err := store.Record(ctx, history.Run{Status: history.StatusFailed}); err == nil {
		t.Fatal("expected error for missing id")
	}
	if err := store.Record(ctx, history.Run{ID: "x"}); err == nil {
		t.Fatal("expected error for missing status")
	}
	if err := store.Record(ctx, history.Run{ID: "dup", Status: history.StatusFailed}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Record(ctx, history.Run{ID: "dup", Status: history.StatusFailed}); err == nil {
		t.Fatal("expected duplicate id to be rejected")
	}
}

func TestFailureStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want history.Status
	}{
		{"plain", errors.New("boom"), history.StatusFailed},
		{"validation", kindError("validation"), history.StatusRejected},
		{"wrapped validation", fmt.Errorf("speaker 1: %w", kindError("validation")), history.StatusRejected},
		{"io", kindError("io"), history.StatusFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := history.FailureStatus(tc.err); got != tc.want {
				t.Fatalf("FailureStatus = %q, want %q", got, tc.want)
			}
		})
	}
}
