package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/llm-analytics-tui/internal/logger"
	"github.com/j-veylop/llm-analytics-tui/internal/models"
	"github.com/j-veylop/llm-analytics-tui/internal/ui/styles"
)

// RenderGradientBar renders a bar filled to percent. Hex endpoints blend
// across the filled cells; anything else fills solid with from.
func RenderGradientBar(percent float64, width int, from, to lipgloss.Color) string {
	if width < 1 {
		return ""
	}

	filled := min(max(int(float64(width)*percent/100), 0), width)
	gradient := isHex(string(from)) && isHex(string(to))

	var b strings.Builder
	for i := range width {
		if i >= filled {
			b.WriteString(lipgloss.NewStyle().Foreground(styles.Subtle).Render("░"))
			continue
		}
		color := from
		if gradient {
			t := float64(i) / float64(max(1, width-1))
			color = lipgloss.Color(interpolateColor(string(from), string(to), t))
		}
		b.WriteString(lipgloss.NewStyle().Foreground(color).Render("█"))
	}

	return b.String()
}

// ShareBar renders "label [████░░░░] 42%" for one share of a total.
func ShareBar(share models.Share, width int, color lipgloss.Color) string {
	label := TruncateLabel(share.Label, styles.LabelWidth)
	labelWidth := LabelWidth(label) + 1
	percentWidth := 6
	barWidth := max(width-labelWidth-percentWidth-4, 5)

	bar := RenderGradientBar(share.Percent, barWidth, color, color)

	labelStr := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Render(label)

	percentStr := styles.ShareStyle(share.Percent).
		Width(percentWidth).
		Align(lipgloss.Right).
		Render(fmt.Sprintf("%.0f%%", share.Percent))

	return fmt.Sprintf("%s [%s] %s", labelStr, bar, percentStr)
}

// StackedShareBar renders every share as one proportional segment of a
// single bar, colored by position.
func StackedShareBar(shares []models.Share, width int) string {
	if width < 1 || len(shares) == 0 {
		return ""
	}

	var b strings.Builder
	used := 0
	for i, sh := range shares {
		cells := int(float64(width) * sh.Percent / 100)
		if i == len(shares)-1 && sh.Percent > 0 {
			cells = width - used
		}
		cells = min(max(cells, 0), width-used)
		if cells == 0 {
			continue
		}
		b.WriteString(lipgloss.NewStyle().Foreground(styles.SeriesColor(i)).Render(strings.Repeat("█", cells)))
		used += cells
	}
	if used < width {
		b.WriteString(lipgloss.NewStyle().Foreground(styles.Subtle).Render(strings.Repeat("░", width-used)))
	}
	return b.String()
}

func isHex(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

func interpolateColor(fromHex, toHex string, t float64) string {
	from := hexToRGB(fromHex)
	to := hexToRGB(toHex)

	r := int(float64(from[0]) + t*(float64(to[0])-float64(from[0])))
	g := int(float64(from[1]) + t*(float64(to[1])-float64(from[1])))
	b := int(float64(from[2]) + t*(float64(to[2])-float64(from[2])))

	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func hexToRGB(hex string) [3]int {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		logger.Error("failed to parse hex color", "hex", hex, "error", err)
		return [3]int{0, 0, 0}
	}
	return [3]int{r, g, b}
}
