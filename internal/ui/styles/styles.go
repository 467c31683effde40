// Package styles defines the visual styling for the application.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/llm-analytics-tui/internal/ui/theme"
)

// Palette colors. Set by Apply.
var (
	// Primary colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Subtle    lipgloss.Color

	// Status colors
	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color
	Info    lipgloss.Color

	// Background colors
	BgDark  lipgloss.Color
	BgLight lipgloss.Color

	// Text colors
	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color

	// SeriesColors color successive chart series.
	SeriesColors []lipgloss.Color

	// LabelWidth is the display width chart labels are truncated to.
	LabelWidth = theme.DefaultLabelWidth
)

// Styles built from the palette. Set by Apply.
var (
	// ToastStyle for floating notifications.
	ToastStyle lipgloss.Style
	// TitleStyle is used for main headings.
	TitleStyle lipgloss.Style
	// SubTitleStyle is used for section headings.
	SubTitleStyle lipgloss.Style
	// DocStyle provides consistent document margins.
	DocStyle lipgloss.Style
	// ActiveTabStyle styles the currently selected tab.
	ActiveTabStyle lipgloss.Style
	// InactiveTabStyle styles non-selected tabs.
	InactiveTabStyle lipgloss.Style
	// CardStyle creates a bordered card container.
	CardStyle lipgloss.Style
	// CardTitleStyle styles card headers.
	CardTitleStyle lipgloss.Style
	// StatValueStyle styles the headline number of a metric card.
	StatValueStyle lipgloss.Style
	// FocusedBorderStyle creates a focused border.
	FocusedBorderStyle lipgloss.Style
	// BlurredBorderStyle creates an unfocused border.
	BlurredBorderStyle lipgloss.Style
	// FilterBarStyle styles the active filter line under the tabs.
	FilterBarStyle lipgloss.Style
	// HelpStyle is the base style for help text.
	HelpStyle lipgloss.Style
	// HelpKeyStyle styles keyboard shortcut keys.
	HelpKeyStyle lipgloss.Style
	// HelpDescStyle styles help descriptions.
	HelpDescStyle lipgloss.Style
	// HelpPanelStyle creates the help overlay panel.
	HelpPanelStyle lipgloss.Style
	// TableHeaderStyle styles table headers.
	TableHeaderStyle lipgloss.Style
	// TableCellStyle styles table cells.
	TableCellStyle lipgloss.Style
	// TableSelectedStyle styles the selected table row.
	TableSelectedStyle lipgloss.Style
	// ErrorTextStyle for error messages.
	ErrorTextStyle lipgloss.Style
	// SuccessTextStyle for success messages.
	SuccessTextStyle lipgloss.Style
	// WarningTextStyle for warning messages.
	WarningTextStyle lipgloss.Style
	// InfoTextStyle for info messages.
	InfoTextStyle lipgloss.Style
	// ModalContentStyle styles modal content.
	ModalContentStyle lipgloss.Style
)

func init() {
	Apply(theme.Default())
}

// Apply rebuilds every color and style from t. Call it once at startup,
// before the program renders.
func Apply(t theme.Theme) {
	Primary = lipgloss.Color(t.Primary)
	Secondary = lipgloss.Color(t.Secondary)
	Subtle = lipgloss.Color(t.Subtle)
	Success = lipgloss.Color(t.Success)
	Error = lipgloss.Color(t.Error)
	Warning = lipgloss.Color(t.Warning)
	Info = lipgloss.Color(t.Info)
	BgDark = lipgloss.Color(t.Background)
	BgLight = lipgloss.Color(t.BackgroundAlt)
	TextPrimary = lipgloss.Color(t.Text)
	TextSecondary = lipgloss.Color(t.TextSecondary)
	TextMuted = lipgloss.Color(t.TextMuted)

	SeriesColors = make([]lipgloss.Color, 0, len(t.Series))
	for _, c := range t.Series {
		SeriesColors = append(SeriesColors, lipgloss.Color(c))
	}
	LabelWidth = t.LabelWidth
	if LabelWidth <= 0 {
		LabelWidth = theme.DefaultLabelWidth
	}

	build()
}

func build() {
	ToastStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(0, 1).
		MarginBottom(1)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	SubTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary).
		MarginBottom(1)

	DocStyle = lipgloss.NewStyle().
		Margin(1, 2).
		Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(Primary).
		Padding(0, 2).
		MarginRight(1)

	InactiveTabStyle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(BgLight).
		Padding(0, 2).
		MarginRight(1)

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Subtle).
		Padding(0, 1)

	CardTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	StatValueStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	FocusedBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(0, 1)

	BlurredBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Subtle).
		Padding(0, 1)

	FilterBarStyle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
		Foreground(TextMuted)

	HelpKeyStyle = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
		Foreground(TextSecondary)

	HelpPanelStyle = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(Primary).
		Padding(1, 3).
		Background(BgDark)

	TableHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Subtle)

	TableCellStyle = lipgloss.NewStyle().
		Padding(0, 1)

	TableSelectedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("229")).
		Background(Secondary).
		Bold(false)

	ErrorTextStyle = lipgloss.NewStyle().
		Foreground(Error)

	SuccessTextStyle = lipgloss.NewStyle().
		Foreground(Success)

	WarningTextStyle = lipgloss.NewStyle().
		Foreground(Warning)

	InfoTextStyle = lipgloss.NewStyle().
		Foreground(Info)

	ModalContentStyle = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(Primary).
		Padding(1, 2).
		Background(BgDark)
}

// SeriesColor returns the color of the i-th series.
func SeriesColor(i int) lipgloss.Color {
	if len(SeriesColors) == 0 {
		return Primary
	}
	return SeriesColors[i%len(SeriesColors)]
}

// ShareStyle returns the style for a share of a total, in percent.
func ShareStyle(percent float64) lipgloss.Style {
	switch {
	case percent >= 50:
		return lipgloss.NewStyle().Foreground(Primary).Bold(true)
	case percent >= 20:
		return lipgloss.NewStyle().Foreground(Secondary)
	default:
		return lipgloss.NewStyle().Foreground(TextSecondary)
	}
}

// CenterHorizontal centers content horizontally within a given width.
func CenterHorizontal(content string, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(content)
}

// CenterBoth centers content both horizontally and vertically.
func CenterBoth(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(content)
}
