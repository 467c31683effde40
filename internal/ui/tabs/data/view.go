package data

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/llm-analytics-tui/internal/models"
	"github.com/j-veylop/llm-analytics-tui/internal/ui/components"
	"github.com/j-veylop/llm-analytics-tui/internal/ui/styles"
)

// View renders the data tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return m.spinner.Render(m.state.SourceName(), m.width, m.height)
	}

	sections := []string{
		styles.TitleStyle.Render("Rows"),
		m.renderSearch(),
		"",
		m.renderTable(),
		m.renderFooter(),
		"",
		m.renderDetail(),
	}

	return styles.DocStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderSearch() string {
	if m.searching || m.search.Value() != "" {
		return m.search.View()
	}
	return styles.HelpStyle.Render("Press / to search")
}

func (m *Model) renderTable() string {
	if m.page.TotalCount == 0 {
		msg := "No rows match the current filters."
		if m.state.Query().Search != "" {
			msg = fmt.Sprintf("No rows match %q.", m.state.Query().Search)
		}
		return styles.CardStyle.Render(styles.HelpStyle.Render(msg))
	}
	return styles.CardStyle.Render(m.table.View())
}

func (m *Model) renderFooter() string {
	q := m.state.Query()
	p := m.page
	parts := []string{
		fmt.Sprintf("Page %d/%d", p.Page, p.TotalPages),
		fmt.Sprintf("rows %d–%d of %d", p.FirstIndex(), p.LastIndex(), p.TotalCount),
		q.Order.String(),
		fmt.Sprintf("%d per page", q.PageSize),
	}
	footer := styles.HelpStyle.Render(strings.Join(parts, " · "))

	var nav []string
	if p.HasPrev() {
		nav = append(nav, styles.HelpKeyStyle.Render("←")+" "+styles.HelpDescStyle.Render("prev"))
	}
	if p.HasNext() {
		nav = append(nav, styles.HelpKeyStyle.Render("→")+" "+styles.HelpDescStyle.Render("next"))
	}
	if len(nav) > 0 {
		footer += "   " + strings.Join(nav, "  ")
	}
	return footer
}

// renderDetail shows every field of the selected row, untruncated.
func (m *Model) renderDetail() string {
	r, ok := m.selected()
	if !ok {
		return ""
	}
	return renderRowDetail(r)
}

func renderRowDetail(r models.Row) string {
	field := func(name, value string) string {
		if value == "" {
			value = "-"
		}
		return styles.HelpStyle.Render(fmt.Sprintf("%-10s", name)) + value
	}

	left := []string{
		field("Execution", r.ExecutionID),
		field("Workflow", r.WorkflowKey()+" "+styles.HelpStyle.Render(r.WorkflowID)),
		field("Model", r.LLMModel),
		field("Tool", r.Tool),
		field("User", r.UserID),
	}
	right := []string{
		field("Tokens", fmt.Sprintf("%s in · %s out",
			components.FormatTokens(float64(r.InputTokens)), components.FormatTokens(float64(r.CompletionTokens)))),
		field("Prices", fmt.Sprintf("%s in · %s out",
			components.FormatCost(r.InputPrice), components.FormatCost(r.OutputPrice))),
		field("Costs", fmt.Sprintf("%s in · %s out",
			components.FormatCost(r.InputCost), components.FormatCost(r.OutputCost))),
		field("Total", styles.StatValueStyle.Render(components.FormatCost(r.TotalCost))),
		field("Time", r.Time),
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, left...),
		"    ",
		lipgloss.JoinVertical(lipgloss.Left, right...),
	)
}
