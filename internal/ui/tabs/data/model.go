// Package data provides the paged row table tab.
package data

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/llm-analytics-tui/internal/app"
	"github.com/j-veylop/llm-analytics-tui/internal/models"
	"github.com/j-veylop/llm-analytics-tui/internal/ui/components"
	"github.com/j-veylop/llm-analytics-tui/internal/ui/styles"
)

// chrome is the rows used by the title, search line, footer and detail.
const chrome = 12

// keyMap defines the key bindings specific to the data tab.
type keyMap struct {
	Search   key.Binding
	Sort     key.Binding
	PageSize key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Apply    key.Binding
	Escape   key.Binding
}

// defaultKeyMap returns the default key bindings for the data tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle sort"),
		),
		PageSize: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "page size"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "n"),
			key.WithHelp("→/n", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "p"),
			key.WithHelp("←/p", "prev page"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply search"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear search"),
		),
	}
}

// Model represents the data tab state.
type Model struct {
	state     *app.State
	table     table.Model
	search    textinput.Model
	spinner   components.LoadSpinner
	keys      keyMap
	page      models.TablePage
	width     int
	height    int
	searching bool
}

// New creates a new data model.
func New(state *app.State) *Model {
	search := textinput.New()
	search.Placeholder = "workflow, model, execution or user"
	search.Prompt = "/ "
	search.CharLimit = 100
	search.Width = 40

	columns := make([]table.Column, len(components.RowColumns))
	for i, c := range components.RowColumns {
		columns[i] = table.Column{Title: c.Title, Width: c.Width}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(models.DefaultPageSize),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Subtle).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Primary)
	s.Selected = s.Selected.
		Foreground(styles.TextPrimary).
		Background(styles.BgLight).
		Bold(true)
	t.SetStyles(s)

	m := &Model{
		state:   state,
		table:   t,
		search:  search,
		spinner: components.NewLoadSpinner("rows"),
		keys:    defaultKeyMap(),
	}
	m.refreshRows()
	return m
}

// Init initializes the data tab.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick()
}

// CapturingInput reports whether the search box owns the keyboard.
func (m *Model) CapturingInput() bool {
	return m.searching
}

// Update handles messages for the data tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case app.DataChangedMsg:
		m.search.SetValue(m.state.Query().Search)
		m.refreshRows()

	case tea.KeyMsg:
		if m.searching {
			return m, m.handleSearchKey(msg)
		}
		return m, m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.CursorEnd()
		return m.search.Focus()

	case key.Matches(msg, m.keys.Sort):
		m.state.ToggleSortOrder()
		m.refreshRows()

	case key.Matches(msg, m.keys.PageSize):
		m.state.CyclePageSize()
		m.refreshRows()

	case key.Matches(msg, m.keys.NextPage):
		m.state.MovePage(1)
		m.refreshRows()

	case key.Matches(msg, m.keys.PrevPage):
		m.state.MovePage(-1)
		m.refreshRows()

	case key.Matches(msg, m.keys.Escape):
		if m.state.Query().Search != "" {
			m.search.SetValue("")
			m.state.SetSearch("")
			m.refreshRows()
		}

	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return cmd
	}
	return nil
}

// handleSearchKey filters live as the term is typed.
func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Apply):
		m.searching = false
		m.search.Blur()
		return nil

	case key.Matches(msg, m.keys.Escape):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.state.SetSearch("")
		m.refreshRows()
		return nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.state.SetSearch(m.search.Value())
	m.refreshRows()
	return cmd
}

// refreshRows reloads the visible page from the shared state.
func (m *Model) refreshRows() {
	m.page = m.state.TablePage()

	rows := make([]table.Row, len(m.page.Rows))
	for i, r := range m.page.Rows {
		rows[i] = table.Row(components.RowCells(r))
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// selected returns the row under the cursor.
func (m *Model) selected() (models.Row, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.page.Rows) {
		return models.Row{}, false
	}
	return m.page.Rows[i], true
}

// SetSize sets the available size for the tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(height-chrome, 3))
	m.table.SetWidth(max(width-6, 20))
}

// ShortHelp returns key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Search, m.keys.Sort, m.keys.PageSize, m.keys.NextPage, m.keys.PrevPage}
}

// FullHelp returns key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Search, m.keys.Apply, m.keys.Escape},
		{m.keys.Sort, m.keys.PageSize},
		{m.keys.NextPage, m.keys.PrevPage},
	}
}
