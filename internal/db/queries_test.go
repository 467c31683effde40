package db

import (
	"context"
	"testing"
	"time"

	"github.com/j-veylop/llm-analytics-tui/internal/models"
)

func TestInsertLoadEvent(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	event := &models.LoadEvent{
		LoadID:   "4f1c2a7e-0000-4000-8000-000000000001",
		Seq:      3,
		Source:   "https://example.com/gviz",
		Duration: 1250 * time.Millisecond,
		RowCount: 42,
		Status:   models.LoadStatusOK,
	}

	if err := db.InsertLoadEvent(context.Background(), event); err != nil {
		t.Fatalf("InsertLoadEvent() failed: %v", err)
	}
	if event.ID == 0 {
		t.Error("InsertLoadEvent() should set ID")
	}
}

func TestGetRecentLoadEvents(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		event := &models.LoadEvent{
			LoadID:    "load",
			Seq:       uint64(i + 1),
			Source:    "file",
			StartedAt: base.Add(time.Duration(i) * time.Minute),
			Duration:  time.Duration(i*100) * time.Millisecond,
			RowCount:  i * 10,
			Status:    models.LoadStatusOK,
		}
		if i == 4 {
			event.Status = models.LoadStatusError
			event.Error = "query failed: Access denied"
		}
		if err := db.InsertLoadEvent(ctx, event); err != nil {
			t.Fatalf("InsertLoadEvent() failed: %v", err)
		}
	}

	events, err := db.GetRecentLoadEvents(ctx, 3)
	if err != nil {
		t.Fatalf("GetRecentLoadEvents() failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("GetRecentLoadEvents() returned %d events, want 3", len(events))
	}

	newest := events[0]
	if newest.Seq != 5 {
		t.Errorf("newest seq = %d, want 5", newest.Seq)
	}
	if !newest.Failed() || newest.Error != "query failed: Access denied" {
		t.Errorf("newest = %+v, want failed with error text", newest)
	}
	if !newest.StartedAt.Equal(base.Add(4 * time.Minute)) {
		t.Errorf("StartedAt = %v, want %v", newest.StartedAt, base.Add(4*time.Minute))
	}
	if events[1].Duration != 300*time.Millisecond {
		t.Errorf("Duration = %v, want 300ms", events[1].Duration)
	}
	if events[1].Error != "" {
		t.Errorf("Error = %q, want empty", events[1].Error)
	}
}

func TestGetLoadStats(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()

	stats, err := db.GetLoadStats(ctx)
	if err != nil {
		t.Fatalf("GetLoadStats() on empty log failed: %v", err)
	}
	if stats.Total != 0 || !stats.LastSuccess.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	okAt := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	failAt := okAt.Add(time.Hour)
	events := []*models.LoadEvent{
		{LoadID: "a", Source: "s", StartedAt: okAt.Add(-time.Hour), Duration: 100 * time.Millisecond, Status: models.LoadStatusOK},
		{LoadID: "b", Source: "s", StartedAt: okAt, Duration: 300 * time.Millisecond, Status: models.LoadStatusOK},
		{LoadID: "c", Source: "s", StartedAt: failAt, Duration: 200 * time.Millisecond, Status: models.LoadStatusError, Error: "timeout"},
	}
	for _, e := range events {
		if err := db.InsertLoadEvent(ctx, e); err != nil {
			t.Fatalf("InsertLoadEvent() failed: %v", err)
		}
	}

	stats, err = db.GetLoadStats(ctx)
	if err != nil {
		t.Fatalf("GetLoadStats() failed: %v", err)
	}
	if stats.Total != 3 || stats.Failures != 1 {
		t.Errorf("Total/Failures = %d/%d, want 3/1", stats.Total, stats.Failures)
	}
	if stats.AvgDuration != 200*time.Millisecond {
		t.Errorf("AvgDuration = %v, want 200ms", stats.AvgDuration)
	}
	if !stats.LastSuccess.Equal(okAt) {
		t.Errorf("LastSuccess = %v, want %v", stats.LastSuccess, okAt)
	}
	if !stats.LastFailure.Equal(failAt) {
		t.Errorf("LastFailure = %v, want %v", stats.LastFailure, failAt)
	}
}

func TestPruneLoadEvents(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()

	old := &models.LoadEvent{LoadID: "old", Source: "s", StartedAt: time.Now().Add(-48 * time.Hour)}
	recent := &models.LoadEvent{LoadID: "recent", Source: "s", StartedAt: time.Now()}
	for _, e := range []*models.LoadEvent{old, recent} {
		if err := db.InsertLoadEvent(ctx, e); err != nil {
			t.Fatalf("InsertLoadEvent() failed: %v", err)
		}
	}

	n, err := db.PruneLoadEvents(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("PruneLoadEvents() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("PruneLoadEvents() removed %d, want 1", n)
	}

	events, err := db.GetRecentLoadEvents(ctx, 10)
	if err != nil {
		t.Fatalf("GetRecentLoadEvents() failed: %v", err)
	}
	if len(events) != 1 || events[0].LoadID != "recent" {
		t.Errorf("remaining events = %+v, want only recent", events)
	}
}

func TestMarkCostAlert_OncePerDay(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()

	first, err := db.MarkCostAlert(ctx, "2024-03-01", 12.5, 10)
	if err != nil {
		t.Fatalf("MarkCostAlert() failed: %v", err)
	}
	if !first {
		t.Error("first alert for a day should be recorded")
	}

	again, err := db.MarkCostAlert(ctx, "2024-03-01", 20, 10)
	if err != nil {
		t.Fatalf("MarkCostAlert() failed: %v", err)
	}
	if again {
		t.Error("second alert for the same day should be suppressed")
	}

	next, err := db.MarkCostAlert(ctx, "2024-03-02", 11, 10)
	if err != nil {
		t.Fatalf("MarkCostAlert() failed: %v", err)
	}
	if !next {
		t.Error("alert for a new day should be recorded")
	}
}
