package workflows

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/llm-analytics-tui/internal/app"
	"github.com/j-veylop/llm-analytics-tui/internal/models"
	"github.com/j-veylop/llm-analytics-tui/internal/services"
)

func loadedState(rows models.Dataset) *app.State {
	state := app.NewState()
	state.UseViews(nil, time.UTC)
	seq := state.BeginLoad()
	state.ApplyLoad(services.LoadResult{Seq: seq, Rows: rows, FinishedAt: time.Now()})
	return state
}

func sampleRows() models.Dataset {
	return models.Dataset{
		{Timestamp: "2024-01-10 09:00:00", WorkflowName: "etl", LLMModel: "gpt-4o", InputTokens: 300, CompletionTokens: 100, TotalCost: 2},
		{Timestamp: "2024-01-11 09:00:00", WorkflowName: "etl", LLMModel: "claude", InputTokens: 100},
		{Timestamp: "2024-01-11 10:00:00", WorkflowName: "chat", LLMModel: "claude", InputTokens: 50, TotalCost: 0.5},
		{Timestamp: "2024-01-12 10:00:00", LLMModel: "claude", InputTokens: 10},
	}
}

func TestNew(t *testing.T) {
	m := New(app.NewState())
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.Init() == nil {
		t.Error("Init returned nil")
	}
}

func TestModel_ToggleMetric(t *testing.T) {
	m := New(loadedState(sampleRows()))
	m.SetSize(120, 300)

	view := ansi.Strip(m.View())
	if strings.Index(view, "Tokens by Workflow") > strings.Index(view, "Cost by Workflow") {
		t.Error("tokens should come first by default")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	view = ansi.Strip(m.View())
	if strings.Index(view, "Cost by Workflow") > strings.Index(view, "Tokens by Workflow") {
		t.Error("c should put cost first")
	}
}

func TestModel_View_WithData(t *testing.T) {
	m := New(loadedState(sampleRows()))
	m.SetSize(120, 300)

	view := ansi.Strip(m.View())
	for _, want := range []string{"Workflows", "etl", "chat", models.UnknownWorkflow, "Models per Workflow", "Workflow Tokens Over Time"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}
}

func TestModel_View_Empty(t *testing.T) {
	m := New(loadedState(nil))
	m.SetSize(100, 30)

	if !strings.Contains(m.View(), "No workflow activity") {
		t.Error("View should show the empty message")
	}
}

func TestRenderCrossTab(t *testing.T) {
	ct := models.CrossTab{
		{Workflow: "etl", Total: 500, Models: models.Series{{Label: "gpt-4o", Value: 400}, {Label: "claude", Value: 100}}},
	}
	out := ansi.Strip(renderCrossTab(ct, 60))
	if !strings.Contains(out, "etl  500 tokens") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "80%") || !strings.Contains(out, "20%") {
		t.Errorf("missing shares:\n%s", out)
	}
	if renderCrossTab(nil, 60) == "" {
		t.Error("empty cross tab should render a placeholder")
	}
}

func TestModel_Update(t *testing.T) {
	m := New(app.NewState())
	if updated, _ := m.Update(app.DataChangedMsg{}); updated == nil {
		t.Error("Update returned nil model")
	}
	if len(m.ShortHelp()) == 0 || len(m.FullHelp()) == 0 {
		t.Error("help bindings should not be empty")
	}
}
