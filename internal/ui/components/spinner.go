package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/llm-analytics-tui/internal/ui/styles"
)

// LoadSpinner is the placeholder a tab shows until the first load lands.
type LoadSpinner struct {
	spinner spinner.Model
	subject string
}

// NewLoadSpinner creates a spinner announcing that subject is loading.
func NewLoadSpinner(subject string) LoadSpinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return LoadSpinner{spinner: s, subject: subject}
}

// Tick returns the command that starts the animation.
func (l LoadSpinner) Tick() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the animation on spinner ticks.
func (l LoadSpinner) Update(msg tea.Msg) (LoadSpinner, tea.Cmd) {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return l, cmd
}

// Label names what is loading and, once known, the source it comes from.
func (l LoadSpinner) Label(source string) string {
	if source == "" || source == "none" {
		return "Loading " + l.subject + "..."
	}
	return "Loading " + l.subject + " from " + TruncateLabel(source, 48) + "..."
}

// Render centers the spinner and its label in a width × height box.
func (l LoadSpinner) Render(source string, width, height int) string {
	label := lipgloss.NewStyle().Foreground(styles.TextSecondary).Render(l.Label(source))
	return styles.CenterBoth(l.spinner.View()+" "+label, width, height)
}
