// Package report prints the dashboard views as plain tables for non-interactive
// output.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"

	"github.com/j-veylop/llm-analytics-tui/internal/analytics"
	"github.com/j-veylop/llm-analytics-tui/internal/models"
	"github.com/j-veylop/llm-analytics-tui/internal/services/views"
	"github.com/j-veylop/llm-analytics-tui/internal/ui/components"
)

// wideWidth is the terminal width from which the row table shows every column.
const wideWidth = 120

// Report is everything printed for one load.
type Report struct {
	LoadErr error
	Source  string
	Filter  models.Filter
	Query   models.TableQuery
	Views   views.Set
	Page    models.TablePage
	// Width is the output width in cells; 0 means unknown (not a terminal).
	Width int
}

// New derives the views and the requested table page from b.
func New(b *views.Builder, f models.Filter, q models.TableQuery) Report {
	return Report{
		Filter: f,
		Query:  q,
		Views:  b.Views(f),
		Page:   b.Table(f, q),
	}
}

// TerminalWidth returns the width of stdout, or 0 if it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// Write renders the report to w.
func (r Report) Write(w io.Writer) error {
	fmt.Fprintf(w, "LLM usage report · source: %s · filter: %s\n", orDash(r.Source), r.Filter.String())
	if r.LoadErr != nil {
		fmt.Fprintf(w, "load failed: %v\n", r.LoadErr)
	}

	steps := []func(io.Writer) error{
		r.writeSummary,
		r.series("Tokens by model", r.Views.TokensByModel, components.FormatTokens),
		r.series("Cost by model", r.Views.CostByModel, components.FormatCost),
		r.series("Tokens by workflow", r.Views.TokensByWorkflow, components.FormatTokens),
		r.series("Cost by workflow", r.Views.CostByWorkflow, components.FormatCost),
		r.series("Tokens by tool", r.Views.TokensByTool, components.FormatTokens),
		r.writeTimeline,
		r.writeCrossTab,
		r.writeWorkflowTimeline,
		r.writeRows,
	}
	for _, step := range steps {
		if err := step(w); err != nil {
			return err
		}
	}
	return nil
}

func newTable(w io.Writer, headers []string, labelColumns int) *tablewriter.Table {
	table := tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.Off}},
		})))
	table.Header(headers)

	// Labels left, metrics right.
	alignments := make([]tw.Align, len(headers))
	for i := range alignments {
		if i < labelColumns {
			alignments[i] = tw.AlignLeft
		} else {
			alignments[i] = tw.AlignRight
		}
	}
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.PerColumn = alignments
		c.Footer.Alignment.PerColumn = alignments
	})
	return table
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", title)
}

func noData(w io.Writer) error {
	_, err := fmt.Fprintln(w, "(no data)")
	return err
}

func (r Report) writeSummary(w io.Writer) error {
	s := r.Views.Summary
	section(w, "Summary")

	table := newTable(w, []string{"Metric", "Value"}, 1)
	latest := "-"
	if !s.LatestRecord.IsZero() {
		latest = s.LatestRecord.Format("2006-01-02 15:04:05")
	}
	rows := [][]string{
		{"Runs", strconv.Itoa(s.Rows)},
		{"Total tokens", components.FormatTokens(float64(s.TotalTokens))},
		{"Input tokens", components.FormatTokens(float64(s.InputTokens))},
		{"Output tokens", components.FormatTokens(float64(s.OutputTokens))},
		{"Total cost", components.FormatCost(s.TotalCost)},
		{"Avg cost per run", components.FormatCost(s.AvgCostPerRow())},
		{"Unique users", strconv.Itoa(s.UniqueUsers)},
		{"Unique models", strconv.Itoa(s.UniqueModels)},
		{"Top model", shareLabel(s.TopModel)},
		{"Top workflow", shareLabel(s.TopWorkflow)},
		{"Latest record", latest},
	}
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to append summary row: %w", err)
		}
	}
	return table.Render()
}

func shareLabel(s models.Share) string {
	if s.Label == "" {
		return "-"
	}
	return fmt.Sprintf("%s (%.1f%%)", s.Label, s.Percent)
}

// series returns a step printing one ranked series with each share.
func (r Report) series(title string, s models.Series, format components.ValueFormat) func(io.Writer) error {
	return func(w io.Writer) error {
		section(w, title)
		if len(s) == 0 {
			return noData(w)
		}

		table := newTable(w, []string{"Name", "Value", "Share"}, 1)
		for _, sh := range analytics.Shares(s) {
			row := []string{orDash(sh.Label), format(sh.Value), fmt.Sprintf("%.1f%%", sh.Percent)}
			if err := table.Append(row); err != nil {
				return fmt.Errorf("failed to append %s row: %w", title, err)
			}
		}
		total := s.Total()
		table.Footer([]string{"Total", format(total), fmt.Sprintf("%.1f%%", analytics.Percent(total, total))})
		return table.Render()
	}
}

func (r Report) writeTimeline(w io.Writer) error {
	section(w, "Tokens per day")
	s := r.Views.TokensOverTime
	if len(s) == 0 {
		return noData(w)
	}

	table := newTable(w, []string{"Date", "Tokens"}, 1)
	for _, p := range s {
		if err := table.Append([]string{p.Label, components.FormatTokens(p.Value)}); err != nil {
			return fmt.Errorf("failed to append timeline row: %w", err)
		}
	}
	table.Footer([]string{"Total", components.FormatTokens(s.Total())})
	return table.Render()
}

func (r Report) writeCrossTab(w io.Writer) error {
	section(w, "Models per workflow")
	if len(r.Views.CrossTab) == 0 {
		return noData(w)
	}

	table := newTable(w, []string{"Workflow", "Model", "Tokens", "Share"}, 2)
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Formatting = tw.CellFormatting{MergeMode: tw.MergeHierarchical}
	})
	for _, group := range r.Views.CrossTab {
		for _, sh := range analytics.Shares(group.Models) {
			row := []string{group.Workflow, orDash(sh.Label), components.FormatTokens(sh.Value), fmt.Sprintf("%.1f%%", sh.Percent)}
			if err := table.Append(row); err != nil {
				return fmt.Errorf("failed to append cross tab row: %w", err)
			}
		}
	}
	return table.Render()
}

func (r Report) writeWorkflowTimeline(w io.Writer) error {
	section(w, "Workflow tokens per day")
	ms := r.Views.WorkflowOverTime
	if ms.IsEmpty() {
		return noData(w)
	}

	headers := []string{"Date"}
	for _, s := range ms.Series {
		headers = append(headers, components.TruncateLabel(s.Name, 16))
	}
	table := newTable(w, headers, 1)
	for i, label := range ms.Labels {
		row := []string{label}
		for _, s := range ms.Series {
			v := 0.0
			if i < len(s.Values) {
				v = s.Values[i]
			}
			row = append(row, components.FormatTokens(v))
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to append workflow timeline row: %w", err)
		}
	}
	return table.Render()
}

// writeRows prints one table page. Narrow terminals get the short column set.
func (r Report) writeRows(w io.Writer) error {
	p := r.Page
	section(w, fmt.Sprintf("Rows (page %d/%d, %d per page, %s)", p.Page, p.TotalPages, p.PageSize, r.Query.Order))
	if search := r.Query.Search; search != "" {
		fmt.Fprintf(w, "search: %q\n", search)
	}
	if len(p.Rows) == 0 {
		return noData(w)
	}

	wide := r.Width == 0 || r.Width >= wideWidth
	headers := []string{"Timestamp", "Workflow", "Model", "Tokens", "Cost"}
	if wide {
		headers = components.RowTitles()
	}

	table := newTable(w, headers, 3)
	if wide {
		table.Configure(func(c *tablewriter.Config) {
			c.Row.Alignment.PerColumn = rowAlignments()
		})
	}
	for _, row := range p.Rows {
		cells := components.RowCells(row)
		if !wide {
			cells = []string{cells[0], cells[1], cells[2], components.FormatTokens(float64(row.TotalTokens())), cells[5]}
		}
		if err := table.Append(cells); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "rows %d-%d of %d\n", p.FirstIndex(), p.LastIndex(), p.TotalCount)
	return err
}

// rowAlignments right-aligns the numeric columns of the full row table.
func rowAlignments() []tw.Align {
	alignments := make([]tw.Align, len(components.RowColumns))
	for i, c := range components.RowColumns {
		switch c.Title {
		case "Input", "Output", "Cost":
			alignments[i] = tw.AlignRight
		default:
			alignments[i] = tw.AlignLeft
		}
	}
	return alignments
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
