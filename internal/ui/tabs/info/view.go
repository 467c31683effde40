package info

import (
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/llm-analytics-tui/internal/config"
	"github.com/j-veylop/llm-analytics-tui/internal/models"
	"github.com/j-veylop/llm-analytics-tui/internal/ui/components"
	"github.com/j-veylop/llm-analytics-tui/internal/ui/styles"
	"github.com/j-veylop/llm-analytics-tui/internal/version"
)

const (
	minCardWidth = 50
	maxCardWidth = 100
	maxLogRows   = 10
)

const helpMarkdown = `# Keys

| Key | Action |
| --- | --- |
| 1-4, Tab | Switch tabs |
| w / W | Next / previous workflow |
| t | Cycle Today, 7 Days, 30 Days, All Time |
| d | Edit the date range |
| x | Clear filters and search |
| r | Reload the source |
| ? | Toggle help |
| q | Quit |

## Data tab

| Key | Action |
| --- | --- |
| / | Search workflow, model, execution or user |
| s | Newest or oldest first |
| z | Cycle 10, 25, 50 rows per page |
| ← → or p n | Previous / next page |

Dates are ` + "`YYYY-MM-DD..YYYY-MM-DD`" + `; either side may be left empty.
Days are bucketed in the configured TIMEZONE.
`

// View renders the info tab.
func (m *Model) View() string {
	cardWidth := min(max(m.width-6, minCardWidth), maxCardWidth)

	sections := []string{
		m.renderTitle(),
		m.renderSourceCard(cardWidth),
		m.renderLoadLogCard(cardWidth),
		m.renderAboutCard(cardWidth),
		m.renderHelp(cardWidth - 4),
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderTitle renders the info tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Data source, load history and application information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderSourceCard(width int) string {
	rows := []string{styles.CardTitleStyle.Render("Source"), ""}

	if m.config == nil {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
		return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	kind, location := m.config.Source()
	if kind == config.SourceNone {
		rows = append(rows, styles.WarningTextStyle.Render("No source configured. Set SOURCE_FILE, SOURCE_URL or SHEET_ID."))
	} else {
		rows = append(rows,
			renderRow("Kind", string(kind)),
			renderRow("Location", components.TruncateLabel(location, width-24)),
		)
	}

	zone := "Local"
	if m.config.Location != nil {
		zone = m.config.Location.String()
	}
	rows = append(rows,
		renderRow("Timezone", zone),
		renderRow("Auto Refresh", valueOrOff(m.config.RefreshInterval.String(), m.config.RefreshInterval > 0)),
		renderRow("Cost Alert", valueOrOff(components.FormatCost(m.config.CostAlertThreshold)+" / day", m.config.CostAlertThreshold > 0)),
		renderRow("Database", m.config.DatabasePath),
		renderRow("Log File", m.config.LogPath),
	)
	if m.config.ThemePath != "" {
		rows = append(rows, renderRow("Theme", m.config.ThemePath))
	}

	return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func valueOrOff(value string, on bool) string {
	if !on {
		return "off"
	}
	return value
}

func (m *Model) renderLoadLogCard(width int) string {
	events, stats := m.state.LoadLog()

	rows := []string{styles.CardTitleStyle.Render("Load Log"), ""}

	if stats.Total == 0 && len(events) == 0 {
		rows = append(rows, styles.HelpStyle.Render("No loads recorded yet"))
		return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	rows = append(rows,
		renderRow("Loads", fmt.Sprintf("%d (%d failed, %.0f%% ok)", stats.Total, stats.Failures, stats.SuccessRate())),
		renderRow("Avg Duration", stats.AvgDuration.Round(time.Millisecond).String()),
		renderRow("Last Success", formatTime(stats.LastSuccess)),
		renderRow("Last Failure", formatTime(stats.LastFailure)),
		"",
	)

	if len(events) > maxLogRows {
		events = events[:maxLogRows]
	}
	for _, e := range events {
		rows = append(rows, renderEvent(e, width-4))
	}

	return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderEvent(e models.LoadEvent, width int) string {
	status := styles.SuccessTextStyle.Render("ok ")
	detail := strconv.Itoa(e.RowCount) + " rows"
	if e.Failed() {
		status = styles.ErrorTextStyle.Render("err")
		detail = e.Error
	}
	line := fmt.Sprintf("%s %s %6s  ", e.StartedAt.Format("01-02 15:04:05"), status, e.Duration.Round(time.Millisecond))
	return line + components.TruncateLabel(detail, max(width-lipgloss.Width(line), 10))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format("2006-01-02 15:04:05")
}

// renderRow renders a key-value row.
func renderRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

// renderAboutCard renders the about/version information card.
func (m *Model) renderAboutCard(width int) string {
	rows := []string{
		styles.CardTitleStyle.Render("About LLM Analytics TUI"),
		"",
		renderRow("Version", version.GetVersion()),
		renderRow("Build Date", version.GetDate()),
		renderRow("Git Commit", version.GetCommit()),
		renderRow("Go Version", runtime.Version()),
		renderRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
		"",
		fmt.Sprintf("Rows loaded: %s", styles.InfoTextStyle.Render(strconv.Itoa(m.state.Dataset().Len()))),
	}

	return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
