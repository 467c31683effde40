package workflows

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/llm-analytics-tui/internal/analytics"
	"github.com/j-veylop/llm-analytics-tui/internal/models"
	"github.com/j-veylop/llm-analytics-tui/internal/ui/components"
	"github.com/j-veylop/llm-analytics-tui/internal/ui/styles"
)

const (
	maxBarRows  = 12
	chartHeight = 10
)

// View renders the workflows tab.
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
	width := max(m.viewport.Width-2, 40)

	title := styles.TitleStyle.Render("Workflows")
	subtitle := styles.HelpStyle.Render(fmt.Sprintf("%d workflows · %s", len(v.TokensByWorkflow), m.state.Filter().String()))
	sections := []string{lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")}

	if !v.Summary.HasData() {
		sections = append(sections, styles.CardStyle.Width(width).Render(
			styles.HelpStyle.Render("No workflow activity for the current filters."),
		))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	tokens := renderCard("Tokens by Workflow", components.BarChart{
		Format: components.FormatTokens, MaxRows: maxBarRows, ShowPercent: true,
	}.RenderSeries(v.TokensByWorkflow, width-4, 0), width)

	cost := renderCard("Cost by Workflow", components.BarChart{
		Format: components.FormatCost, MaxRows: maxBarRows, ShowPercent: true,
	}.RenderSeries(v.CostByWorkflow, width-4, 0), width)

	if m.costFirst {
		sections = append(sections, cost, tokens)
	} else {
		sections = append(sections, tokens, cost)
	}

	sections = append(sections,
		renderCard("Models per Workflow", renderCrossTab(v.CrossTab, width-4), width),
		renderCard("Workflow Tokens Over Time", components.MultiLineChart{Caption: "Tokens per day"}.
			RenderMultiSeries(v.WorkflowOverTime, width-14, chartHeight), width),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderCrossTab shows each top workflow with its per-model token shares.
func renderCrossTab(ct models.CrossTab, width int) string {
	if len(ct) == 0 {
		return styles.HelpStyle.Render("No data")
	}

	var lines []string
	for i, group := range ct {
		if i > 0 {
			lines = append(lines, "")
		}
		header := fmt.Sprintf("%s  %s",
			lipgloss.NewStyle().Bold(true).Foreground(styles.SeriesColor(i)).
				Render(components.TruncateLabel(group.Workflow, styles.LabelWidth)),
			styles.HelpStyle.Render(components.FormatTokens(group.Total)+" tokens"),
		)
		lines = append(lines, header)
		for j, share := range analytics.Shares(group.Models) {
			lines = append(lines, "  "+components.ShareBar(share, width-2, styles.SeriesColor(j)))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderCard(title, body string, width int) string {
	icon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◈")
	header := fmt.Sprintf("%s %s", icon, styles.CardTitleStyle.Render(title))
	return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, header, "", body))
}
