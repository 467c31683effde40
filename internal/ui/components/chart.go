// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/llm-analytics-tui/internal/analytics"
	"github.com/j-veylop/llm-analytics-tui/internal/models"
	"github.com/j-veylop/llm-analytics-tui/internal/ui/styles"
)

const (
	minChartWidth  = 20
	minChartHeight = 3
	noData         = "No data available"
)

// SeriesRenderer draws one labeled series into a width × height cell box.
type SeriesRenderer interface {
	RenderSeries(s models.Series, width, height int) string
}

// MultiSeriesRenderer draws several named series sharing one label axis.
type MultiSeriesRenderer interface {
	RenderMultiSeries(ms models.MultiSeries, width, height int) string
}

// ValueFormat formats a series value for display.
type ValueFormat func(float64) string

// FormatTokens formats token counts with thousands separators.
func FormatTokens(v float64) string {
	n := int64(v)
	sign := ""
	if n < 0 {
		sign, n = "-", -n
	}
	s := strconv.FormatInt(n, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return sign + s
}

// FormatCost formats a dollar amount.
func FormatCost(v float64) string {
	if v != 0 && v < 0.01 && v > -0.01 {
		return fmt.Sprintf("$%.4f", v)
	}
	return fmt.Sprintf("$%.2f", v)
}

// BarChart renders a series as horizontal bars, one row per point, with
// each bar's share of the series total.
type BarChart struct {
	Format      ValueFormat
	MaxRows     int
	ShowPercent bool
}

// RenderSeries implements SeriesRenderer. Height is ignored in favor of
// MaxRows; rows beyond it are summarized on one line.
func (b BarChart) RenderSeries(s models.Series, width, _ int) string {
	if len(s) == 0 {
		return styles.HelpStyle.Render(noData)
	}
	format := b.Format
	if format == nil {
		format = func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }
	}

	shares := analytics.Shares(s)
	shown := shares
	if b.MaxRows > 0 && len(shown) > b.MaxRows {
		shown = shown[:b.MaxRows]
	}

	maxVal := 0.0
	labelWidth := 0
	valueWidth := 0
	for _, sh := range shown {
		maxVal = max(maxVal, sh.Value)
		labelWidth = max(labelWidth, LabelWidth(TruncateLabel(sh.Label, styles.LabelWidth)))
		valueWidth = max(valueWidth, len(format(sh.Value)))
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	extra := valueWidth + 3
	if b.ShowPercent {
		extra += 7
	}
	barWidth := max(width-labelWidth-extra, 10)

	var lines []string
	for i, sh := range shown {
		label := PadLabel(TruncateLabel(sh.Label, styles.LabelWidth), labelWidth)
		barLen := max(int(sh.Value/maxVal*float64(barWidth)), 0)
		bar := lipgloss.NewStyle().Foreground(styles.SeriesColor(i)).Render(strings.Repeat("█", barLen))

		line := fmt.Sprintf("%s │%s %s", label, bar, format(sh.Value))
		if b.ShowPercent {
			line += styles.ShareStyle(sh.Percent).Render(fmt.Sprintf(" %5.1f%%", sh.Percent))
		}
		lines = append(lines, line)
	}
	if hidden := len(shares) - len(shown); hidden > 0 {
		lines = append(lines, styles.HelpStyle.Render(fmt.Sprintf("… and %d more", hidden)))
	}

	return strings.Join(lines, "\n")
}

// LineChart renders a series as an ASCII line chart over its labels.
type LineChart struct {
	Caption string
}

// RenderSeries implements SeriesRenderer.
func (l LineChart) RenderSeries(s models.Series, width, height int) string {
	if len(s) == 0 {
		return styles.HelpStyle.Render(noData)
	}
	width, height = chartSize(width, height)

	graph := asciigraph.Plot(s.Values(),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(axisCaption(l.Caption, s.Labels())),
		asciigraph.SeriesColors(AnsiColor(styles.SeriesColor(0))),
	)

	return graph
}

// MultiLineChart renders several series as overlaid ASCII lines with a legend.
type MultiLineChart struct {
	Caption string
}

// RenderMultiSeries implements MultiSeriesRenderer.
func (m MultiLineChart) RenderMultiSeries(ms models.MultiSeries, width, height int) string {
	if ms.IsEmpty() {
		return styles.HelpStyle.Render(noData)
	}
	width, height = chartSize(width, height)

	data := make([][]float64, 0, len(ms.Series))
	colors := make([]asciigraph.AnsiColor, 0, len(ms.Series))
	legend := make([]LegendItem, 0, len(ms.Series))
	for i, series := range ms.Series {
		// Pad short series so every line spans the shared label axis.
		values := make([]float64, len(ms.Labels))
		copy(values, series.Values)
		data = append(data, values)
		colors = append(colors, AnsiColor(styles.SeriesColor(i)))
		legend = append(legend, LegendItem{
			Label: TruncateLabel(series.Name, styles.LabelWidth),
			Color: styles.SeriesColor(i),
		})
	}

	graph := asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(axisCaption(m.Caption, ms.Labels)),
		asciigraph.SeriesColors(colors...),
	)

	return graph + "\n" + RenderLegend(legend)
}

func chartSize(width, height int) (int, int) {
	return max(width, minChartWidth), max(height, minChartHeight)
}

// axisCaption names the first and last labels under a chart.
func axisCaption(caption string, labels []string) string {
	if len(labels) == 0 {
		return caption
	}
	span := labels[0]
	if len(labels) > 1 {
		span += " → " + labels[len(labels)-1]
	}
	if caption == "" {
		return span
	}
	return caption + " (" + span + ")"
}

// AnsiColor maps a palette color to the nearest asciigraph color. Only
// 256-color palette indexes map exactly; hex colors fall back to the
// terminal default.
func AnsiColor(c lipgloss.Color) asciigraph.AnsiColor {
	n, err := strconv.Atoi(string(c))
	if err != nil || n < 0 || n > 255 {
		return asciigraph.Default
	}
	return asciigraph.AnsiColor(n)
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	var parts []string
	for _, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, item.Label))
	}
	return strings.Join(parts, "  ")
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	sparkChars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Sample values to fit width
	var result strings.Builder
	step := max(float64(len(values))/float64(width), 1)

	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		val := values[int(float64(i)*step)]
		normalized := int((val / maxVal) * float64(len(sparkChars)-1))
		normalized = min(max(normalized, 0), len(sparkChars)-1)
		result.WriteRune(sparkChars[normalized])
	}

	return result.String()
}
