package info

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/llm-analytics-tui/internal/app"
	"github.com/j-veylop/llm-analytics-tui/internal/config"
	"github.com/j-veylop/llm-analytics-tui/internal/models"
)

func TestNew(t *testing.T) {
	m := New(app.NewState(), &config.Config{})
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.Init() != nil {
		t.Error("Init should return nil")
	}
}

func TestModel_Update(t *testing.T) {
	m := New(app.NewState(), &config.Config{})

	updated, _ := m.Update(nil)
	if updated == nil {
		t.Error("Update returned nil model")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
}

func TestModel_View_Source(t *testing.T) {
	cfg := &config.Config{
		SourceFile:         "/data/usage.json",
		DatabasePath:       "/tmp/lat.db",
		Location:           time.UTC,
		RefreshInterval:    5 * time.Minute,
		CostAlertThreshold: 25,
	}
	m := New(app.NewState(), cfg)
	m.SetSize(100, 200)

	view := ansi.Strip(m.View())
	for _, want := range []string{"Source", "file", "/data/usage.json", "UTC", "5m0s", "$25.00 / day", "/tmp/lat.db", "No loads recorded yet", "Keys"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}
}

func TestModel_View_NoSource(t *testing.T) {
	m := New(app.NewState(), &config.Config{})
	m.SetSize(100, 200)

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "No source configured") {
		t.Error("View should warn about a missing source")
	}
	if !strings.Contains(view, "off") {
		t.Error("disabled refresh should read off")
	}
}

func TestModel_View_LoadLog(t *testing.T) {
	state := app.NewState()
	started := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	state.SetLoadLog([]models.LoadEvent{
		{StartedAt: started, Status: models.LoadStatusOK, RowCount: 42, Duration: 1500 * time.Millisecond},
		{StartedAt: started, Status: models.LoadStatusError, Error: "status 404"},
	}, models.LoadStats{Total: 2, Failures: 1, LastSuccess: started})

	m := New(state, nil)
	m.SetSize(100, 200)

	view := ansi.Strip(m.View())
	for _, want := range []string{"2 (1 failed, 50% ok)", "42 rows", "status 404", "never", "Configuration not loaded"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}
}

func TestRenderHelp_Cached(t *testing.T) {
	m := New(app.NewState(), nil)

	first := m.renderHelp(60)
	if !strings.Contains(first, "Keys") {
		t.Errorf("help missing heading:\n%s", first)
	}
	if m.helpWidth != 60 {
		t.Errorf("helpWidth = %d, want 60", m.helpWidth)
	}
	if again := m.renderHelp(60); again != first {
		t.Error("same width should reuse the rendered help")
	}
}

func TestHelp(t *testing.T) {
	m := New(app.NewState(), nil)
	if len(m.ShortHelp()) == 0 || len(m.FullHelp()) == 0 {
		t.Error("help bindings should not be empty")
	}
}
