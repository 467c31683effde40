package overview

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/llm-analytics-tui/internal/analytics"
	"github.com/j-veylop/llm-analytics-tui/internal/models"
	"github.com/j-veylop/llm-analytics-tui/internal/services/views"
	"github.com/j-veylop/llm-analytics-tui/internal/ui/components"
	"github.com/j-veylop/llm-analytics-tui/internal/ui/styles"
)

const (
	maxBarRows   = 10
	chartHeight  = 8
	sparkWidth   = 30
	twoColumnMin = 100
)

// View renders the overview tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return m.spinner.Render(m.state.SourceName(), m.width, m.height)
	}

	m.viewport.SetContent(m.renderContent())

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderContent() string {
	v := m.state.Views()
	width := m.contentWidth()

	sections := []string{m.renderTitle()}

	if err := m.state.LastError(); err != nil {
		sections = append(sections, styles.ErrorTextStyle.Render("Last load failed: "+err.Error()), "")
	}

	if !v.Summary.HasData() {
		sections = append(sections, m.renderEmpty(width))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	sections = append(sections,
		m.renderSummaryCards(v.Summary, width),
		m.renderModelCards(v, width),
		m.renderCard("Tokens Over Time", m.renderTimeline(v.TokensOverTime, width), width),
		m.renderCard("Tokens by Tool", components.BarChart{
			Format:      components.FormatTokens,
			MaxRows:     maxBarRows,
			ShowPercent: true,
		}.RenderSeries(v.TokensByTool, width-4, 0), width),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) contentWidth() int {
	return max(m.viewport.Width-2, 40)
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Usage Overview")
	source := m.state.SourceName()
	if source == "" {
		source = "no source"
	}
	subtitle := styles.HelpStyle.Render(fmt.Sprintf("%s · %s", source, m.state.Filter().String()))
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderEmpty(width int) string {
	rows := []string{
		styles.CardTitleStyle.Render("No Data"),
		"",
		styles.HelpStyle.Render("No rows match the current filters."),
		styles.InfoTextStyle.Render("  ╰─▶ Press x to clear filters or r to reload"),
	}
	return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderSummaryCards lays out the headline metrics as a row of cards, or a
// column when the terminal is narrow.
func (m *Model) renderSummaryCards(s models.Summary, width int) string {
	metrics := []struct {
		title string
		value string
		note  string
	}{
		{"Total Tokens", components.FormatTokens(float64(s.TotalTokens)),
			fmt.Sprintf("in %s · out %s", components.FormatTokens(float64(s.InputTokens)), components.FormatTokens(float64(s.OutputTokens)))},
		{"Total Cost", components.FormatCost(s.TotalCost),
			"avg " + components.FormatCost(s.AvgCostPerRow()) + " / run"},
		{"Runs", strconv.Itoa(s.Rows), latestNote(s)},
		{"Users · Models", fmt.Sprintf("%d · %d", s.UniqueUsers, s.UniqueModels), topNote(s)},
	}

	perRow := len(metrics)
	if width < twoColumnMin {
		perRow = 2
	}
	cardWidth := max(width/perRow-2, 18)

	var rows, cards []string
	for i, metric := range metrics {
		body := lipgloss.JoinVertical(lipgloss.Left,
			styles.HelpStyle.Render(metric.title),
			styles.StatValueStyle.Render(metric.value),
			styles.HelpStyle.Render(components.TruncateLabel(metric.note, cardWidth-4)),
		)
		cards = append(cards, styles.CardStyle.Width(cardWidth).Render(body))
		if len(cards) == perRow || i == len(metrics)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
			cards = nil
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func latestNote(s models.Summary) string {
	if s.LatestRecord.IsZero() {
		return "latest: unknown"
	}
	return "latest " + s.LatestRecord.Format("2006-01-02 15:04")
}

func topNote(s models.Summary) string {
	if s.TopModel.Label == "" {
		return ""
	}
	return fmt.Sprintf("top %s %.0f%%", s.TopModel.Label, s.TopModel.Percent)
}

// renderModelCards shows tokens and cost by model side by side on wide
// terminals.
func (m *Model) renderModelCards(v views.Set, width int) string {
	half := width
	if width >= twoColumnMin {
		half = width/2 - 1
	}

	tokens := components.BarChart{Format: components.FormatTokens, MaxRows: maxBarRows, ShowPercent: true}.
		RenderSeries(v.TokensByModel, half-4, 0)
	mix := components.StackedShareBar(analytics.Shares(v.TokensByModel), max(half-4, 10))
	tokensCard := m.renderCard("Tokens by Model", lipgloss.JoinVertical(lipgloss.Left, tokens, "", mix), half)

	cost := components.BarChart{Format: components.FormatCost, MaxRows: maxBarRows, ShowPercent: true}.
		RenderSeries(v.CostByModel, half-4, 0)
	costCard := m.renderCard("Cost by Model", cost, half)

	if half == width {
		return lipgloss.JoinVertical(lipgloss.Left, tokensCard, costCard)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tokensCard, " ", costCard)
}

func (m *Model) renderTimeline(s models.Series, width int) string {
	chart := components.LineChart{Caption: "Tokens per day"}.RenderSeries(s, width-14, chartHeight)
	if len(s) == 0 {
		return chart
	}
	trend := styles.HelpStyle.Render("trend ") + components.RenderSparkline(s.Values(), sparkWidth)
	return lipgloss.JoinVertical(lipgloss.Left, chart, "", trend)
}

func (m *Model) renderCard(title, body string, width int) string {
	icon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◈")
	header := fmt.Sprintf("%s %s", icon, styles.CardTitleStyle.Render(title))
	return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, header, "", body))
}
