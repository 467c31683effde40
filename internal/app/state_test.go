package app

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/j-veylop/llm-analytics-tui/internal/models"
	"github.com/j-veylop/llm-analytics-tui/internal/services"
)

func sampleRows() models.Dataset {
	return models.Dataset{
		{Timestamp: "2024-01-10 09:00:00", WorkflowName: "etl", LLMModel: "gpt-4o", InputTokens: 100, CompletionTokens: 50, TotalCost: 1},
		{Timestamp: "2024-01-11 09:00:00", WorkflowName: "chat", LLMModel: "claude", InputTokens: 10, CompletionTokens: 5, TotalCost: 0.5},
		{Timestamp: "2024-01-12 09:00:00", WorkflowName: "etl", LLMModel: "claude", InputTokens: 20, CompletionTokens: 10, TotalCost: 0.25},
	}
}

func loadedState(t *testing.T, rows models.Dataset) *State {
	t.Helper()
	s := NewState()
	s.UseViews(nil, time.UTC)
	seq := s.BeginLoad()
	if !s.ApplyLoad(services.LoadResult{Seq: seq, Rows: rows, Source: "test", FinishedAt: time.Now()}) {
		t.Fatal("ApplyLoad rejected the latest load")
	}
	return s
}

func TestNewState(t *testing.T) {
	s := NewState()
	if s == nil {
		t.Fatal("NewState returned nil")
	}
	if s.Dataset().Len() != 0 {
		t.Error("Dataset should be empty")
	}
	if !s.IsInitialLoading() {
		t.Error("Initial loading should be true")
	}
	if !s.Filter().IsZero() {
		t.Error("Filter should be empty")
	}
	if s.Query().Page != 1 || s.Query().PageSize != models.DefaultPageSize {
		t.Errorf("Query = %+v", s.Query())
	}
}

func TestState_ApplyLoad_DiscardsStale(t *testing.T) {
	s := NewState()

	first := s.BeginLoad()
	second := s.BeginLoad()
	if second <= first {
		t.Fatalf("sequence did not advance: %d then %d", first, second)
	}

	if s.ApplyLoad(services.LoadResult{Seq: first, Rows: sampleRows()}) {
		t.Error("stale load should be discarded")
	}
	if !s.IsLoading() {
		t.Error("latest load is still outstanding")
	}
	if s.Dataset().Len() != 0 {
		t.Error("stale rows must not be displayed")
	}

	if !s.ApplyLoad(services.LoadResult{Seq: second, Rows: sampleRows()[:1], Source: "file"}) {
		t.Fatal("latest load should be applied")
	}
	if s.IsLoading() || s.IsInitialLoading() {
		t.Error("loading flags should clear")
	}
	if s.Dataset().Len() != 1 || s.Generation() != second || s.SourceName() != "file" {
		t.Errorf("dataset=%d generation=%d source=%q", s.Dataset().Len(), s.Generation(), s.SourceName())
	}
}

func TestState_ApplyLoad_Failure(t *testing.T) {
	s := loadedState(t, sampleRows())
	updated := s.GetLastUpdated()

	seq := s.BeginLoad()
	s.ApplyLoad(services.LoadResult{Seq: seq, Err: errors.New("boom")})

	if s.LastError() == nil {
		t.Error("LastError should be set")
	}
	if s.Dataset() == nil || s.Dataset().Len() != 0 {
		t.Error("failed load should display an empty dataset")
	}
	if !s.GetLastUpdated().Equal(updated) {
		t.Error("failed load should not move the last updated time")
	}
}

func TestState_Views(t *testing.T) {
	s := loadedState(t, sampleRows())

	v := s.Views()
	if v.Summary.Rows != 3 {
		t.Errorf("Rows = %d, want 3", v.Summary.Rows)
	}
	if len(v.TokensByModel) != 2 {
		t.Errorf("TokensByModel = %v", v.TokensByModel)
	}

	s.SetFilter(s.Filter().WithWorkflow("etl"))
	if got := s.Views().Summary.Rows; got != 2 {
		t.Errorf("filtered Rows = %d, want 2", got)
	}
}

func TestState_CycleWorkflow(t *testing.T) {
	s := loadedState(t, sampleRows())

	want := s.Workflows()
	if want[0] != models.AllWorkflows || len(want) != 3 {
		t.Fatalf("Workflows = %v", want)
	}

	if got := s.CycleWorkflow(1); got != want[1] {
		t.Errorf("next = %q, want %q", got, want[1])
	}
	if got := s.CycleWorkflow(-1); got != models.AllWorkflows {
		t.Errorf("prev = %q, want all", got)
	}
	if got := s.CycleWorkflow(-1); got != want[len(want)-1] {
		t.Errorf("wrap = %q, want %q", got, want[len(want)-1])
	}
}

func TestState_FilterResetsPage(t *testing.T) {
	rows := make(models.Dataset, 30)
	for i := range rows {
		rows[i] = models.Row{Timestamp: fmt.Sprintf("2024-01-%02d 10:00:00", i+1), WorkflowName: "etl"}
	}
	s := loadedState(t, rows)

	if got := s.MovePage(2); got != 3 {
		t.Fatalf("MovePage = %d, want 3", got)
	}
	s.SetFilter(s.Filter().WithWorkflow("etl"))
	if s.Query().Page != 1 {
		t.Errorf("Page = %d after filter change, want 1", s.Query().Page)
	}
}

func TestState_MovePageClamps(t *testing.T) {
	s := loadedState(t, sampleRows())

	if got := s.MovePage(5); got != 1 {
		t.Errorf("MovePage(5) = %d, want 1", got)
	}
	if got := s.MovePage(-5); got != 1 {
		t.Errorf("MovePage(-5) = %d, want 1", got)
	}
}

func TestState_TableControls(t *testing.T) {
	s := loadedState(t, sampleRows())

	if got := s.ToggleSortOrder(); got != models.SortOldest {
		t.Errorf("ToggleSortOrder = %v", got)
	}
	if first := s.TablePage().Rows[0]; first.Timestamp != "2024-01-10 09:00:00" {
		t.Errorf("oldest first row = %q", first.Timestamp)
	}

	if got := s.CyclePageSize(); got != 25 {
		t.Errorf("CyclePageSize = %d, want 25", got)
	}

	s.SetSearch("chat")
	if page := s.TablePage(); page.TotalCount != 1 {
		t.Errorf("search TotalCount = %d, want 1", page.TotalCount)
	}
}

func TestState_TimeRange(t *testing.T) {
	s := NewState()
	s.UseViews(nil, time.UTC)
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	if got := s.CycleTimeRange(now); got != models.TimeRangeToday {
		t.Fatalf("CycleTimeRange = %v", got)
	}
	if !s.Filter().HasStart() || !s.Filter().HasEnd() {
		t.Error("Today should bound both sides")
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.SetDateRange(start, time.Time{})
	if s.RangeLabel() != "Custom" {
		t.Errorf("RangeLabel = %q, want Custom", s.RangeLabel())
	}
	if !s.Filter().Start.Equal(start) || s.Filter().HasEnd() {
		t.Errorf("Filter = %+v", s.Filter())
	}

	s.SetSearch("x")
	s.ClearFilters()
	if !s.Filter().IsZero() || s.Query().Search != "" {
		t.Error("ClearFilters should reset filter and search")
	}
	if r, custom := s.TimeRange(); r != models.TimeRangeAll || custom {
		t.Errorf("TimeRange = %v, %v", r, custom)
	}
}

func TestState_SetPageSize(t *testing.T) {
	s := NewState()
	s.SetPageSize(30)
	if s.Query().PageSize != 25 {
		t.Errorf("PageSize = %d, want 25", s.Query().PageSize)
	}
}

func TestState_LoadLog(t *testing.T) {
	s := NewState()
	events := []models.LoadEvent{{LoadID: "a"}}
	s.SetLoadLog(events, models.LoadStats{Total: 1})

	got, stats := s.LoadLog()
	if len(got) != 1 || stats.Total != 1 {
		t.Errorf("LoadLog = %v, %+v", got, stats)
	}
	got[0].LoadID = "changed"
	if again, _ := s.LoadLog(); again[0].LoadID != "a" {
		t.Error("LoadLog should return a copy")
	}
}

func TestState_Notifications(t *testing.T) {
	s := NewState()

	id := s.AddNotification(NotificationInfo, "test", time.Minute)
	if len(s.GetNotifications()) != 1 {
		t.Error("Should have 1 notification")
	}

	s.RemoveNotification(id)
	if len(s.GetNotifications()) != 0 {
		t.Error("Should have 0 notifications")
	}

	s.AddNotification(NotificationInfo, "expired", time.Nanosecond)
	time.Sleep(time.Millisecond)
	s.ClearExpiredNotifications()
	if len(s.GetNotifications()) != 0 {
		t.Error("Expired notification should be cleared")
	}

	for i := range maxNotifications + 5 {
		s.AddNotification(NotificationInfo, fmt.Sprintf("n%d", i), time.Minute)
	}
	if len(s.GetNotifications()) != maxNotifications {
		t.Errorf("notifications = %d, want %d", len(s.GetNotifications()), maxNotifications)
	}

	s.ClearAllNotifications()
	if len(s.GetNotifications()) != 0 {
		t.Error("ClearAllNotifications should remove everything")
	}
}

func TestState_LoadingNotification(t *testing.T) {
	s := NewState()

	s.SetLoadingNotification("Loading...")
	s.SetLoadingNotification("Refreshing...")

	notifications := s.GetNotifications()
	if len(notifications) != 1 || notifications[0].Message != "Refreshing..." {
		t.Errorf("notifications = %+v", notifications)
	}

	s.ClearLoadingNotification()
	if len(s.GetNotifications()) != 0 {
		t.Error("loading notification should be cleared")
	}
}

func TestNotificationType_String(t *testing.T) {
	tests := []struct {
		want string
		typ  NotificationType
	}{
		{"success", NotificationSuccess},
		{"error", NotificationError},
		{"warning", NotificationWarning},
		{"info", NotificationInfo},
		{"loading", NotificationLoading},
		{"unknown", NotificationType(99)},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
