// Package workflows provides the per-workflow breakdown tab.
package workflows

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/llm-analytics-tui/internal/app"
	"github.com/j-veylop/llm-analytics-tui/internal/ui/components"
)

// keyMap defines the key bindings specific to the workflows tab.
type keyMap struct {
	ToggleMetric key.Binding
	Up           key.Binding
	Down         key.Binding
}

// defaultKeyMap returns the default key bindings for the workflows tab.
func defaultKeyMap() keyMap {
	return keyMap{
		ToggleMetric: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "tokens/cost first"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
	}
}

// Model represents the workflows tab state.
type Model struct {
	state     *app.State
	spinner   components.LoadSpinner
	keys      keyMap
	viewport  viewport.Model
	width     int
	height    int
	costFirst bool
}

// New creates a new workflows model.
func New(state *app.State) *Model {
	return &Model{
		state:    state,
		spinner:  components.NewLoadSpinner("workflows"),
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the workflows tab.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick()
}

// Update handles messages for the workflows tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case app.DataChangedMsg:
		m.viewport.GotoTop()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ToggleMetric) {
			m.costFirst = !m.costFirst
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// SetSize sets the available size for the tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-6, 0)
	m.viewport.Height = max(height-2, 0)
}

// ShortHelp returns key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.ToggleMetric, m.keys.Up, m.keys.Down}
}

// FullHelp returns key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.ToggleMetric},
		{m.keys.Up, m.keys.Down},
	}
}
