package components

import "github.com/j-veylop/llm-analytics-tui/internal/models"

// RowColumn is one column of the row table, shared by the Data tab and
// report output.
type RowColumn struct {
	Title string
	Width int
}

// RowColumns lists the row table columns in display order.
var RowColumns = []RowColumn{
	{Title: "Timestamp", Width: 19},
	{Title: "Workflow", Width: 20},
	{Title: "Model", Width: 18},
	{Title: "Input", Width: 9},
	{Title: "Output", Width: 9},
	{Title: "Cost", Width: 9},
	{Title: "User", Width: 20},
	{Title: "Execution", Width: 12},
}

// RowTitles returns the column titles.
func RowTitles() []string {
	titles := make([]string, len(RowColumns))
	for i, c := range RowColumns {
		titles[i] = c.Title
	}
	return titles
}

// RowCells formats r as one table line. Only the workflow and model names
// are truncated; identifiers are shown in full so they can be copied.
func RowCells(r models.Row) []string {
	return []string{
		r.Timestamp,
		TruncateLabel(r.WorkflowKey(), RowColumns[1].Width),
		TruncateLabel(r.LLMModel, RowColumns[2].Width),
		FormatTokens(float64(r.InputTokens)),
		FormatTokens(float64(r.CompletionTokens)),
		FormatCost(r.TotalCost),
		r.UserID,
		r.ExecutionID,
	}
}
