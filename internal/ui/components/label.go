package components

import "github.com/mattn/go-runewidth"

// Ellipsis marks a truncated label.
const Ellipsis = "…"

// TruncateLabel shortens s to at most width display cells, ending in an
// ellipsis when cut. Wide runes count as two cells. Display only: grouping
// keys are never truncated.
func TruncateLabel(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, Ellipsis)
}

// PadLabel right-pads s with spaces to width display cells.
func PadLabel(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// LabelWidth returns the display width of s.
func LabelWidth(s string) int {
	return runewidth.StringWidth(s)
}
