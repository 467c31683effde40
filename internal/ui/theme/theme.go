// Package theme loads the presentation palette. A theme is read once at
// startup and handed to the styles package; nothing reads it afterwards.
package theme

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultLabelWidth is the display width chart labels are truncated to.
const DefaultLabelWidth = 20

const minLabelWidth = 4

// Theme is the user-adjustable palette. Colors are lipgloss color strings:
// ANSI numbers ("205") or hex ("#7D56F4").
type Theme struct {
	Primary       string   `toml:"primary"`
	Secondary     string   `toml:"secondary"`
	Subtle        string   `toml:"subtle"`
	Success       string   `toml:"success"`
	Error         string   `toml:"error"`
	Warning       string   `toml:"warning"`
	Info          string   `toml:"info"`
	Text          string   `toml:"text"`
	TextSecondary string   `toml:"text_secondary"`
	TextMuted     string   `toml:"text_muted"`
	Background    string   `toml:"background"`
	BackgroundAlt string   `toml:"background_alt"`
	Series        []string `toml:"series"`
	LabelWidth    int      `toml:"label_width"`
}

// Default returns the built-in palette.
func Default() Theme {
	return Theme{
		Primary:       "205",
		Secondary:     "63",
		Subtle:        "240",
		Success:       "42",
		Error:         "196",
		Warning:       "220",
		Info:          "39",
		Text:          "252",
		TextSecondary: "245",
		TextMuted:     "240",
		Background:    "235",
		BackgroundAlt: "237",
		Series:        []string{"205", "39", "208", "42", "220", "63"},
		LabelWidth:    DefaultLabelWidth,
	}
}

// Load reads a TOML theme from path over the defaults. An empty path or a
// missing file yields the defaults.
func Load(path string) (Theme, error) {
	t := Default()
	if path == "" {
		return t, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return t, nil
	}

	if _, err := toml.DecodeFile(path, &t); err != nil {
		return Default(), fmt.Errorf("failed to read theme %s: %w", path, err)
	}
	return t.normalized(), nil
}

func (t Theme) normalized() Theme {
	def := Default()
	if len(t.Series) == 0 {
		t.Series = def.Series
	}
	if t.LabelWidth < minLabelWidth {
		t.LabelWidth = def.LabelWidth
	}
	return t
}

// SeriesColor returns the color for the i-th series, cycling the palette.
func (t Theme) SeriesColor(i int) string {
	if len(t.Series) == 0 {
		return t.Primary
	}
	return t.Series[i%len(t.Series)]
}
