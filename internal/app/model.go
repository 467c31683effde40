// Package app implements the main Bubble Tea application with tab-based navigation.
package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/llm-analytics-tui/internal/logger"
	"github.com/j-veylop/llm-analytics-tui/internal/models"
	"github.com/j-veylop/llm-analytics-tui/internal/services"
	"github.com/j-veylop/llm-analytics-tui/internal/ui/styles"
)

// TabID represents the identifier for a tab in the application.
type TabID int

const (
	// TabOverview is the ID for the overview tab.
	TabOverview TabID = iota
	// TabWorkflows is the ID for the workflows tab.
	TabWorkflows
	// TabData is the ID for the data table tab.
	TabData
	// TabInfo is the ID for the info tab.
	TabInfo
)

// String returns the string representation of the TabID.
func (t TabID) String() string {
	switch t {
	case TabOverview:
		return "Overview"
	case TabWorkflows:
		return "Workflows"
	case TabData:
		return "Data"
	case TabInfo:
		return "Info"
	default:
		return "Unknown"
	}
}

// Tab defines the interface that all tabs must implement.
type Tab interface {
	// Init initializes the tab and returns any initial commands.
	Init() tea.Cmd

	// Update handles messages and returns the updated tab and any commands.
	Update(msg tea.Msg) (Tab, tea.Cmd)

	// View renders the tab content.
	View() string

	// SetSize sets the available size for the tab.
	SetSize(width, height int)

	// ShortHelp returns key bindings for the short help view.
	ShortHelp() []key.Binding

	// FullHelp returns key bindings for the full help view.
	FullHelp() [][]key.Binding
}

// InputCapturer is implemented by tabs that own a text input. While
// CapturingInput is true, global keys other than ctrl+c go to the tab.
type InputCapturer interface {
	CapturingInput() bool
}

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Tab1         key.Binding
	Tab2         key.Binding
	Tab3         key.Binding
	Tab4         key.Binding
	NextTab      key.Binding
	PrevTab      key.Binding
	NextWorkflow key.Binding
	PrevWorkflow key.Binding
	TimeRange    key.Binding
	DateRange    key.Binding
	ClearFilters key.Binding
	Refresh      key.Binding
	Help         key.Binding
	Quit         key.Binding
	ForceQuit    key.Binding
	Enter        key.Binding
	Escape       key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	km := KeyMap{}
	km = setTabKeys(km)
	km = setFilterKeys(km)
	km = setActionKeys(km)
	return km
}

func setTabKeys(k KeyMap) KeyMap {
	k.Tab1 = key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "overview"))
	k.Tab2 = key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "workflows"))
	k.Tab3 = key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "data"))
	k.Tab4 = key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "info"))
	k.NextTab = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab"))
	k.PrevTab = key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab"))
	return k
}

func setFilterKeys(k KeyMap) KeyMap {
	k.NextWorkflow = key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "next workflow"))
	k.PrevWorkflow = key.NewBinding(key.WithKeys("W"), key.WithHelp("W", "prev workflow"))
	k.TimeRange = key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "time range"))
	k.DateRange = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "date range"))
	k.ClearFilters = key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear filters"))
	return k
}

func setActionKeys(k KeyMap) KeyMap {
	k.Refresh = key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "refresh"))
	k.Help = key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help"))
	k.Quit = key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))
	k.ForceQuit = key.NewBinding(key.WithKeys("ctrl+c"))
	k.Enter = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply"))
	k.Escape = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))
	return k
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab1, k.Tab2, k.Tab3, k.Tab4},
		{k.NextTab, k.PrevTab},
		{k.NextWorkflow, k.PrevWorkflow, k.TimeRange, k.DateRange, k.ClearFilters},
		{k.Refresh, k.Help, k.Quit},
	}
}

// Styles defines the application styles.
type Styles struct {
	// Tab bar styles
	TabBar      lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style

	// Notification styles
	NotificationSuccess lipgloss.Style
	NotificationError   lipgloss.Style
	NotificationWarning lipgloss.Style
	NotificationInfo    lipgloss.Style

	// Content styles
	Content   lipgloss.Style
	FilterBar lipgloss.Style
	Spinner   lipgloss.Style
	Toast     lipgloss.Style

	// Common styles
	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Highlight lipgloss.Style
	Error     lipgloss.Style
}

// DefaultStyles returns the application styles for the active palette.
func DefaultStyles() Styles {
	s := Styles{}
	s.TabBar = lipgloss.NewStyle().Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).BorderForeground(styles.Subtle)
	s.ActiveTab = lipgloss.NewStyle().Bold(true).Foreground(styles.Primary).Padding(0, 2)
	s.InactiveTab = lipgloss.NewStyle().Foreground(styles.Subtle).Padding(0, 2)

	s.NotificationSuccess = lipgloss.NewStyle().Foreground(styles.Success).Padding(0, 1)
	s.NotificationError = lipgloss.NewStyle().Foreground(styles.Error).Bold(true).Padding(0, 1)
	s.NotificationWarning = lipgloss.NewStyle().Foreground(styles.Warning).Padding(0, 1)
	s.NotificationInfo = lipgloss.NewStyle().Foreground(styles.Info).Padding(0, 1)

	s.Content = lipgloss.NewStyle().Padding(1, 2)
	s.FilterBar = styles.FilterBarStyle
	s.Spinner = lipgloss.NewStyle().Foreground(styles.Primary)
	s.Toast = styles.ToastStyle

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(styles.Primary)
	s.Subtle = lipgloss.NewStyle().Foreground(styles.Subtle)
	s.Highlight = lipgloss.NewStyle().Foreground(styles.Primary)
	s.Error = lipgloss.NewStyle().Foreground(styles.Error)

	return s
}

// chromeHeight is the rows taken by the tab bar and the filter line.
const chromeHeight = 5

// Model is the main application model.
type Model struct {
	// Tab management
	activeTab TabID
	tabs      []Tab
	tabNames  []string

	// Shared state
	state    *State
	services *services.Manager
	keymap   KeyMap
	styles   Styles
	now      func() time.Time

	// UI components
	spinner   spinner.Model
	dateInput textinput.Model

	// Window dimensions
	width  int
	height int

	// UI state
	showHelp    bool
	editingDate bool
	ready       bool

	// Service subscription
	eventChannel chan services.ServiceEvent
}

// NewModel initializes a new application model.
func NewModel(mgr *services.Manager) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD..YYYY-MM-DD"
	ti.Prompt = "Dates: "
	ti.CharLimit = 32
	ti.Width = 24

	state := NewState()
	if mgr != nil {
		state.UseViews(mgr.Views(), mgr.Location())
		state.SetSourceName(mgr.SourceName())
	}

	return &Model{
		activeTab: TabOverview,
		tabNames:  []string{"Overview", "Workflows", "Data", "Info"},
		tabs:      make([]Tab, 4), // Placeholder - tabs will be set externally
		state:     state,
		services:  mgr,
		keymap:    DefaultKeyMap(),
		styles:    DefaultStyles(),
		now:       time.Now,
		spinner:   s,
		dateInput: ti,
	}
}

// SetTabs sets the tabs for the model.
func (m *Model) SetTabs(tabs []Tab) {
	m.tabs = tabs
	if m.width > 0 && m.height > 0 {
		m.updateTabSizes()
	}
}

// GetState returns the application state.
func (m *Model) GetState() *State {
	return m.state
}

// GetKeyMap returns the key bindings.
func (m *Model) GetKeyMap() KeyMap {
	return m.keymap
}

// GetActiveTab returns the currently active tab ID.
func (m *Model) GetActiveTab() TabID {
	return m.activeTab
}

// IsReady returns true if the model is ready (window size received).
func (m *Model) IsReady() bool {
	return m.ready
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		defaultTickCmd(),
	}

	if m.services != nil {
		cmds = append(cmds, subscribeToServicesCmd(m.services))
		cmds = append(cmds, m.startLoad("Loading..."))
	}

	for _, tab := range m.tabs {
		if tab != nil {
			cmds = append(cmds, tab.Init())
		}
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg, spinner.TickMsg:
		if cmd := m.handleTeaMsg(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		cmd, consumed := m.handleKeyMsg(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if consumed {
			return m, tea.Batch(cmds...)
		}

	default:
		if appCmds := m.handleAppMsg(msg); len(appCmds) > 0 {
			cmds = append(cmds, appCmds...)
		}
	}

	if cmd := m.updateTabs(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleTeaMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	}
	return nil
}

func (m *Model) handleAppMsg(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case TickMsg:
		m.state.ClearExpiredNotifications()
		cmds = append(cmds, defaultTickCmd())
	case SubscriptionEventMsg:
		m.eventChannel = msg.Channel
		cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
	case ServiceEventMsg:
		cmds = append(cmds, m.handleServiceEventMsg(msg)...)
	case RefreshMsg:
		cmds = append(cmds, m.handleRefresh(msg))
	case LoadFinishedMsg:
		cmds = append(cmds, m.handleLoadFinished(msg)...)
	case LoadLogMsg:
		if msg.Err != nil {
			logger.Warn("failed to read load log", "error", msg.Err)
		}
		if msg.Events != nil || msg.Err == nil {
			m.state.SetLoadLog(msg.Events, msg.Stats)
		}
	case AddNotificationMsg:
		cmds = append(cmds, m.handleAddNotification(msg)...)
	case RemoveNotificationMsg:
		m.state.RemoveNotification(msg.ID)
	case ClearExpiredNotificationsMsg:
		m.state.ClearExpiredNotifications()
	case ErrorMsg:
		cmds = append(cmds, notifyErrorCmd(errorText(msg)))
	case TabSwitchMsg:
		m.activeTab = msg.Tab
		m.updateTabSizes()
	case ToggleHelpMsg:
		m.showHelp = !m.showHelp
	}
	return cmds
}

func errorText(msg ErrorMsg) string {
	if msg.Context == "" {
		return msg.Error.Error()
	}
	return fmt.Sprintf("%s: %v", msg.Context, msg.Error)
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.updateTabSizes()
}

func (m *Model) handleSpinnerTick(msg spinner.TickMsg) tea.Cmd {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

func (m *Model) handleServiceEventMsg(msg ServiceEventMsg) []tea.Cmd {
	var cmds []tea.Cmd
	if cmd := m.handleServiceEvent(msg.Event); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.eventChannel != nil {
		cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
	}
	return cmds
}

func (m *Model) handleServiceEvent(event services.ServiceEvent) tea.Cmd {
	switch e := event.(type) {
	case services.SourceChangedEvent:
		return tea.Batch(
			notifyInfoCmd("Source file changed, reloading"),
			m.startLoad("Reloading..."),
		)

	case services.AutoRefreshEvent:
		return m.startLoad("Refreshing...")

	case services.ErrorEvent:
		return notifyErrorCmd(fmt.Sprintf("[%s] %v", e.Service, e.Error))
	}

	return nil
}

// startLoad issues a new sequence number and runs a load tagged with it.
func (m *Model) startLoad(label string) tea.Cmd {
	if m.services == nil {
		return nil
	}
	seq := m.state.BeginLoad()
	m.state.SetLoadingNotification(label)
	return loadCmd(m.services, seq)
}

func (m *Model) handleRefresh(msg RefreshMsg) tea.Cmd {
	if m.services == nil {
		return nil
	}
	if msg.Manual && !m.services.AllowRefresh() {
		return notifyWarningCmd("Refresh throttled, try again in a moment")
	}
	return m.startLoad("Refreshing...")
}

func (m *Model) handleLoadFinished(msg LoadFinishedMsg) []tea.Cmd {
	var cmds []tea.Cmd
	if m.services != nil {
		cmds = append(cmds, loadLogCmd(m.services))
	}

	if !m.state.ApplyLoad(msg.Result) {
		return cmds
	}
	m.state.ClearLoadingNotification()

	if msg.Result.Err != nil {
		cmds = append(cmds, notifyErrorCmd(fmt.Sprintf("Load failed: %v", msg.Result.Err)))
	} else {
		cmds = append(cmds, notifySuccessCmd(fmt.Sprintf("Loaded %d rows", len(msg.Result.Rows))))
	}
	cmds = append(cmds, dataChangedCmd())
	return cmds
}

func (m *Model) handleAddNotification(msg AddNotificationMsg) []tea.Cmd {
	var cmds []tea.Cmd
	id := m.state.AddNotification(msg.Type, msg.Message, msg.Duration)
	if msg.Duration > 0 {
		cmds = append(cmds, clearNotificationCmd(id, msg.Duration))
	}
	return cmds
}

// updateTabs sends data changes to every tab and everything else to the
// active tab only.
func (m *Model) updateTabs(msg tea.Msg) tea.Cmd {
	switch msg.(type) {
	case DataChangedMsg, LoadLogMsg:
		var cmds []tea.Cmd
		for i, tab := range m.tabs {
			if tab == nil {
				continue
			}
			var cmd tea.Cmd
			m.tabs[i], cmd = tab.Update(msg)
			cmds = append(cmds, cmd)
		}
		return tea.Batch(cmds...)
	}

	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		var cmd tea.Cmd
		m.tabs[m.activeTab], cmd = m.tabs[m.activeTab].Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) updateTabSizes() {
	contentHeight := max(0, m.height-chromeHeight)

	for _, tab := range m.tabs {
		if tab != nil {
			tab.SetSize(m.width, contentHeight)
		}
	}
}

func (m *Model) activeTabCapturing() bool {
	if int(m.activeTab) >= len(m.tabs) || m.tabs[m.activeTab] == nil {
		return false
	}
	c, ok := m.tabs[m.activeTab].(InputCapturer)
	return ok && c.CapturingInput()
}

func (m *Model) switchTab(id TabID) {
	if int(id) >= len(m.tabs) {
		return
	}
	m.activeTab = id
	m.updateTabSizes()
}

// handleKeyMsg handles keyboard input. consumed reports whether the key
// must not reach the active tab.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (cmd tea.Cmd, consumed bool) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		return tea.Quit, true
	}
	if m.editingDate {
		return m.handleDateInput(msg), true
	}
	if m.activeTabCapturing() {
		return nil, false
	}

	if m.showHelp {
		if key.Matches(msg, m.keymap.Help, m.keymap.Escape) {
			m.showHelp = false
			return nil, true
		}
		if key.Matches(msg, m.keymap.Quit) {
			return tea.Quit, true
		}
		return nil, true
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return tea.Quit, true

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true
		return nil, true

	case key.Matches(msg, m.keymap.Tab1):
		m.switchTab(TabOverview)
		return nil, true

	case key.Matches(msg, m.keymap.Tab2):
		m.switchTab(TabWorkflows)
		return nil, true

	case key.Matches(msg, m.keymap.Tab3):
		m.switchTab(TabData)
		return nil, true

	case key.Matches(msg, m.keymap.Tab4):
		m.switchTab(TabInfo)
		return nil, true

	case key.Matches(msg, m.keymap.NextTab):
		m.switchTab(TabID((int(m.activeTab) + 1) % len(m.tabs)))
		return nil, true

	case key.Matches(msg, m.keymap.PrevTab):
		m.switchTab(TabID((int(m.activeTab) - 1 + len(m.tabs)) % len(m.tabs)))
		return nil, true

	case key.Matches(msg, m.keymap.Refresh):
		return m.handleRefresh(RefreshMsg{Manual: true}), true

	case key.Matches(msg, m.keymap.NextWorkflow):
		return m.filterChanged("Workflow: " + m.state.CycleWorkflow(1)), true

	case key.Matches(msg, m.keymap.PrevWorkflow):
		return m.filterChanged("Workflow: " + m.state.CycleWorkflow(-1)), true

	case key.Matches(msg, m.keymap.TimeRange):
		return m.filterChanged("Range: " + m.state.CycleTimeRange(m.now()).String()), true

	case key.Matches(msg, m.keymap.DateRange):
		m.openDateInput()
		return textinput.Blink, true

	case key.Matches(msg, m.keymap.ClearFilters):
		m.state.ClearFilters()
		return m.filterChanged("Filters cleared"), true
	}

	// Let the tab handle other keys
	return nil, false
}

func (m *Model) filterChanged(message string) tea.Cmd {
	return tea.Batch(dataChangedCmd(), notifyInfoCmd(message))
}

func (m *Model) openDateInput() {
	f := m.state.Filter()
	value := ""
	if f.HasStart() || f.HasEnd() {
		value = formatBound(f.Start) + ".." + formatBound(f.End)
	}
	m.dateInput.SetValue(value)
	m.dateInput.CursorEnd()
	m.dateInput.Focus()
	m.editingDate = true
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(models.DateLayout)
}

func (m *Model) handleDateInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Escape):
		m.closeDateInput()
		return nil

	case key.Matches(msg, m.keymap.Enter):
		start, end, err := models.ParseDateRange(m.dateInput.Value(), m.state.Location())
		if err != nil {
			return notifyErrorCmd(err.Error())
		}
		m.closeDateInput()
		m.state.SetDateRange(start, end)
		return m.filterChanged("Range: " + m.state.Filter().String())
	}

	var cmd tea.Cmd
	m.dateInput, cmd = m.dateInput.Update(msg)
	return cmd
}

func (m *Model) closeDateInput() {
	m.editingDate = false
	m.dateInput.Blur()
}

// View renders the application UI.
func (m *Model) View() string {
	var b strings.Builder

	if m.width > 0 {
		b.WriteString(m.renderNavbar())
		b.WriteString("\n")
		b.WriteString(m.renderFilterBar())
		b.WriteString("\n")
	}

	if !m.ready {
		b.WriteString(m.styles.Content.Render(fmt.Sprintf("%s Loading...", m.spinner.View())))
		return b.String()
	}

	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		b.WriteString(m.tabs[m.activeTab].View())
	} else {
		b.WriteString(m.renderPlaceholder())
	}

	mainView := b.String()

	if m.editingDate {
		mainView = m.overlayCentered(mainView, m.renderDateInput())
	}

	if m.showHelp {
		mainView = m.overlayCentered(mainView, m.renderHelp())
	}

	notifications := m.renderNotifications()

	if len(notifications) > 0 {
		return m.overlayToasts(mainView, notifications)
	}

	return mainView
}

func (m *Model) overlayCentered(mainView string, overlay string) string {
	mainLines := strings.Split(mainView, "\n")
	overlayLines := strings.Split(overlay, "\n")

	overlayHeight := len(overlayLines)
	overlayWidth := lipgloss.Width(overlay)

	// Calculate center position
	y := max((m.height-overlayHeight)/2, 0)
	x := max((m.width-overlayWidth)/2, 0)

	// Short tab views still get the overlay at the screen center.
	for len(mainLines) < max(m.height, y+overlayHeight) {
		mainLines = append(mainLines, "")
	}

	for i, overlayLine := range overlayLines {
		mainY := y + i
		mainLine := mainLines[mainY]

		// Truncate main line to the start of the overlay
		left := ansi.Truncate(mainLine, x, "")

		// Skip x + overlayWidth cells for the right part
		right := ansi.TruncateLeft(mainLine, x+overlayWidth, "")

		// If the line was shorter than the overlay start, pad it
		if lipgloss.Width(left) < x {
			left += strings.Repeat(" ", x-lipgloss.Width(left))
		}

		mainLines[mainY] = left + overlayLine + right
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderNavbar() string {
	var tabs []string

	for i, name := range m.tabNames {
		if TabID(i) == m.activeTab {
			tabs = append(tabs, m.styles.ActiveTab.Render(fmt.Sprintf("[%d] %s", i+1, name)))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(fmt.Sprintf(" %d  %s", i+1, name)))
		}
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	return m.styles.TabBar.Width(m.width).Render(tabBar)
}

// renderFilterBar shows the active filter, row counts and freshness.
func (m *Model) renderFilterBar() string {
	f := m.state.Filter()
	workflow := models.AllWorkflows
	if !f.AnyWorkflow() {
		workflow = f.Workflow
	}
	dates := m.state.RangeLabel()
	if f.HasStart() || f.HasEnd() {
		dates += " " + formatBound(f.Start) + ".." + formatBound(f.End)
	}

	parts := []string{
		"workflow: " + m.styles.Highlight.Render(workflow),
		"range: " + m.styles.Highlight.Render(dates),
		fmt.Sprintf("rows: %d", m.state.Views().Summary.Rows),
	}

	switch {
	case m.state.IsLoading():
		parts = append(parts, m.spinner.View()+" loading")
	case m.state.LastError() != nil:
		parts = append(parts, m.styles.Error.Render("last load failed"))
	case !m.state.GetLastUpdated().IsZero():
		parts = append(parts, "updated "+m.state.GetLastUpdated().Format("15:04:05"))
	}

	return m.styles.FilterBar.Width(m.width).Render(strings.Join(parts, m.styles.Subtle.Render("  │  ")))
}

func (m *Model) renderDateInput() string {
	lines := []string{
		m.styles.Title.Render("Date Range"),
		"",
		m.dateInput.View(),
		"",
		m.styles.Subtle.Render("Either side may be empty. Enter applies, Esc cancels."),
	}
	return styles.ModalContentStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderNotifications() []string {
	notifications := m.state.GetNotifications()
	if len(notifications) == 0 {
		return nil
	}

	var toasts []string
	for _, n := range notifications {
		var style lipgloss.Style
		var prefix string

		switch n.Type {
		case NotificationSuccess:
			style = m.styles.NotificationSuccess
			prefix = "[OK]"
		case NotificationError:
			style = m.styles.NotificationError
			prefix = "[ERR]"
		case NotificationWarning:
			style = m.styles.NotificationWarning
			prefix = "[WARN]"
		case NotificationInfo:
			style = m.styles.NotificationInfo
			prefix = "[INFO]"
		case NotificationLoading:
			style = m.styles.NotificationInfo
			prefix = m.spinner.View()
		}

		content := style.Render(fmt.Sprintf("%s %s", prefix, n.Message))
		toasts = append(toasts, m.styles.Toast.Render(content))
	}

	return toasts
}

func (m *Model) overlayToasts(mainView string, toasts []string) string {
	if len(toasts) == 0 {
		return mainView
	}

	toastStack := lipgloss.JoinVertical(lipgloss.Right, toasts...)
	toastLines := strings.Split(toastStack, "\n")
	mainLines := strings.Split(mainView, "\n")

	toastWidth := lipgloss.Width(toastStack)
	startX := max(m.width-toastWidth-2, 0)

	startY := 3

	for i, toastLine := range toastLines {
		lineIdx := startY + i
		if lineIdx >= len(mainLines) {
			break
		}

		mainLine := mainLines[lineIdx]
		mainLineWidth := lipgloss.Width(mainLine)

		if mainLineWidth < startX {
			padding := strings.Repeat(" ", startX-mainLineWidth)
			mainLines[lineIdx] = mainLine + padding + toastLine
		} else {
			truncated := ansi.Truncate(mainLine, startX, "")
			mainLines[lineIdx] = truncated + toastLine
		}
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderHelp() string {
	var lines []string

	lines = append(lines, m.styles.Title.Render("Keyboard Shortcuts"))
	lines = append(lines, "")

	lines = append(lines, m.styles.Highlight.Render("Navigation"))
	lines = append(lines, "  1-4        Switch tabs")
	lines = append(lines, "  Tab        Next tab")
	lines = append(lines, "  Shift+Tab  Previous tab")
	lines = append(lines, "")

	lines = append(lines, m.styles.Highlight.Render("Filters"))
	lines = append(lines, "  w / W      Next / previous workflow")
	lines = append(lines, "  t          Cycle time range")
	lines = append(lines, "  d          Edit date range")
	lines = append(lines, "  x          Clear filters")
	lines = append(lines, "")

	lines = append(lines, m.styles.Highlight.Render("Actions"))
	lines = append(lines, "  r          Refresh data")
	lines = append(lines, "  ?          Toggle help")
	lines = append(lines, "  q/Ctrl+C   Quit")
	lines = append(lines, "")

	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		tabHelp := m.tabs[m.activeTab].ShortHelp()
		if len(tabHelp) > 0 {
			lines = append(lines, m.styles.Highlight.Render(fmt.Sprintf("%s Tab", m.tabNames[m.activeTab])))
			for _, binding := range tabHelp {
				lines = append(lines, fmt.Sprintf("  %-10s %s", binding.Help().Key, binding.Help().Desc))
			}
		}
	}

	lines = append(lines, "")
	lines = append(lines, m.styles.Subtle.Render("Press ? or Esc to close"))

	return styles.HelpPanelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderPlaceholder() string {
	content := fmt.Sprintf(
		"Tab %d: %s\n\n%s",
		m.activeTab+1,
		m.tabNames[m.activeTab],
		m.styles.Subtle.Render("This tab is not yet implemented."),
	)
	return m.styles.Content.Render(content)
}
