package app_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/llm-analytics-tui/internal/app"
	"github.com/j-veylop/llm-analytics-tui/internal/models"
	"github.com/j-veylop/llm-analytics-tui/internal/services"
	"github.com/j-veylop/llm-analytics-tui/internal/ui/tabs/data"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// dataTabModel shows the Data tab, whose view is shorter than the terminal.
func dataTabModel(t *testing.T, height int) *app.Model {
	t.Helper()
	model := app.NewModel(nil)
	state := model.GetState()
	state.UseViews(nil, time.UTC)

	rows := make(models.Dataset, 30)
	for i := range rows {
		rows[i] = models.Row{
			ExecutionID:  fmt.Sprintf("exec-%02d", i),
			Timestamp:    fmt.Sprintf("2024-01-%02d 10:00:00", i%28+1),
			WorkflowName: "etl",
			LLMModel:     "gpt-4o",
			InputTokens:  int64(i),
		}
	}
	seq := state.BeginLoad()
	if !state.ApplyLoad(services.LoadResult{Seq: seq, Rows: rows, FinishedAt: time.Now()}) {
		t.Fatal("ApplyLoad rejected the latest load")
	}

	model.SetTabs([]app.Tab{nil, nil, data.New(state), nil})
	model.Update(tea.WindowSizeMsg{Width: 120, Height: height})
	model.Update(key("3"))
	if model.GetActiveTab() != app.TabData {
		t.Fatalf("active tab = %v, want Data", model.GetActiveTab())
	}
	return model
}

func TestModel_OverlaysOnShortTab(t *testing.T) {
	for _, height := range []int{24, 40, 60} {
		t.Run(fmt.Sprintf("height %d", height), func(t *testing.T) {
			model := dataTabModel(t, height)

			model.Update(key("d"))
			if !strings.Contains(model.View(), "Date Range") {
				t.Error("date input should be visible")
			}
			model.Update(tea.KeyMsg{Type: tea.KeyEsc})

			model.Update(key("?"))
			if !strings.Contains(model.View(), "Keyboard Shortcuts") {
				t.Error("help should be visible")
			}
		})
	}
}
