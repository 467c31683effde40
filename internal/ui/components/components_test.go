package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/llm-analytics-tui/internal/models"
)

func TestLoadSpinner_Label(t *testing.T) {
	s := NewLoadSpinner("usage data")

	tests := []struct {
		source string
		want   string
	}{
		{"", "Loading usage data..."},
		{"none", "Loading usage data..."},
		{"sheet abc", "Loading usage data from sheet abc..."},
	}
	for _, tt := range tests {
		if got := s.Label(tt.source); got != tt.want {
			t.Errorf("Label(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}

	long := s.Label(strings.Repeat("x", 100))
	if LabelWidth(long) > len("Loading usage data from ...")+48 {
		t.Errorf("long source should be truncated, got %q", long)
	}
}

func TestLoadSpinner_Tick(t *testing.T) {
	s := NewLoadSpinner("rows")
	if s.Tick() == nil {
		t.Fatal("Tick should return command")
	}

	_, cmd := s.Update(s.Tick()().(spinner.TickMsg))
	if cmd == nil {
		t.Error("Update should return command for tick")
	}
}

func TestLoadSpinner_Render(t *testing.T) {
	s := NewLoadSpinner("rows")
	view := s.Render("file usage.json", 60, 5)
	if lipgloss.Height(view) != 5 {
		t.Errorf("height = %d, want 5", lipgloss.Height(view))
	}
	if !strings.Contains(ansi.Strip(view), "Loading rows from file usage.json...") {
		t.Errorf("view missing label:\n%s", view)
	}
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 20, "short"},
		{"exactly-twenty-chars", 20, "exactly-twenty-chars"},
		{"a-workflow-name-that-is-long", 20, "a-workflow-name-tha…"},
		{"日本語のワークフロー名です", 10, "日本語の…"},
		{"anything", 0, ""},
	}

	for _, tt := range tests {
		got := TruncateLabel(tt.in, tt.width)
		if got != tt.want {
			t.Errorf("TruncateLabel(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
		if LabelWidth(got) > tt.width {
			t.Errorf("TruncateLabel(%q, %d) width = %d", tt.in, tt.width, LabelWidth(got))
		}
	}
}

func TestPadLabel(t *testing.T) {
	if got := PadLabel("ab", 5); got != "ab   " {
		t.Errorf("PadLabel = %q", got)
	}
	if got := LabelWidth(PadLabel("日本", 6)); got != 6 {
		t.Errorf("padded wide label width = %d, want 6", got)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{FormatTokens(0), "0"},
		{FormatTokens(999), "999"},
		{FormatTokens(1234567), "1,234,567"},
		{FormatTokens(-1500), "-1,500"},
		{FormatCost(0), "$0.00"},
		{FormatCost(12.346), "$12.35"},
		{FormatCost(0.0042), "$0.0042"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestBarChart(t *testing.T) {
	s := models.Series{
		{Label: "gpt-4o", Value: 300},
		{Label: "a-model-with-a-very-long-name", Value: 100},
	}

	out := ansi.Strip(BarChart{Format: FormatTokens, ShowPercent: true}.RenderSeries(s, 60, 0))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "gpt-4o") || !strings.Contains(lines[0], "75.0%") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "a-model-with-a-very…") || !strings.Contains(lines[1], "25.0%") {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestBarChart_MaxRows(t *testing.T) {
	s := models.Series{{Label: "a", Value: 3}, {Label: "b", Value: 2}, {Label: "c", Value: 1}}
	out := ansi.Strip(BarChart{MaxRows: 2}.RenderSeries(s, 40, 0))
	if !strings.Contains(out, "and 1 more") {
		t.Errorf("missing overflow line:\n%s", out)
	}
}

func TestBarChart_ZeroTotal(t *testing.T) {
	s := models.Series{{Label: "a", Value: 0}}
	out := ansi.Strip(BarChart{ShowPercent: true}.RenderSeries(s, 40, 0))
	if !strings.Contains(out, "0.0%") {
		t.Errorf("zero total should show 0%%:\n%s", out)
	}
}

func TestCharts_Empty(t *testing.T) {
	renderers := []SeriesRenderer{BarChart{}, LineChart{}}
	for _, r := range renderers {
		if got := ansi.Strip(r.RenderSeries(models.Series{}, 40, 5)); got != noData {
			t.Errorf("%T empty = %q", r, got)
		}
	}
	if got := ansi.Strip(MultiLineChart{}.RenderMultiSeries(models.MultiSeries{}, 40, 5)); got != noData {
		t.Errorf("MultiLineChart empty = %q", got)
	}
}

func TestLineChart(t *testing.T) {
	s := models.Series{
		{Label: "2024-01-01", Value: 1},
		{Label: "2024-01-02", Value: 5},
		{Label: "2024-01-03", Value: 2},
	}
	out := ansi.Strip(LineChart{Caption: "Tokens"}.RenderSeries(s, 30, 5))
	if !strings.Contains(out, "Tokens (2024-01-01 → 2024-01-03)") {
		t.Errorf("missing caption:\n%s", out)
	}
}

func TestMultiLineChart(t *testing.T) {
	ms := models.MultiSeries{
		Labels: []string{"2024-01-01", "2024-01-02"},
		Series: []models.NamedSeries{
			{Name: "etl", Values: []float64{1, 2}},
			{Name: "chat", Values: []float64{3}},
		},
	}
	out := ansi.Strip(MultiLineChart{}.RenderMultiSeries(ms, 30, 5))
	if !strings.Contains(out, "■ etl") || !strings.Contains(out, "■ chat") {
		t.Errorf("missing legend:\n%s", out)
	}
}

func TestAxisCaption(t *testing.T) {
	if got := axisCaption("", []string{"a"}); got != "a" {
		t.Errorf("single label = %q", got)
	}
	if got := axisCaption("x", nil); got != "x" {
		t.Errorf("no labels = %q", got)
	}
}

func TestAnsiColor(t *testing.T) {
	if got := AnsiColor(lipgloss.Color("205")); got != asciigraph.AnsiColor(205) {
		t.Errorf("AnsiColor(205) = %v", got)
	}
	if got := AnsiColor(lipgloss.Color("#ff00ff")); got != asciigraph.Default {
		t.Errorf("hex should map to default, got %v", got)
	}
}

func TestShareBar(t *testing.T) {
	out := ansi.Strip(ShareBar(models.Share{Label: "gpt-4o", Percent: 50}, 41, lipgloss.Color("205")))
	if !strings.HasPrefix(out, "gpt-4o [") || !strings.HasSuffix(out, "50%") {
		t.Errorf("ShareBar = %q", out)
	}
	if strings.Count(out, "█") != strings.Count(out, "░") {
		t.Errorf("half share should fill half the bar: %q", out)
	}
}

func TestRenderGradientBar(t *testing.T) {
	if RenderGradientBar(50, 0, "#000000", "#ffffff") != "" {
		t.Error("zero width should be empty")
	}
	out := ansi.Strip(RenderGradientBar(150, 8, "#000000", "#ffffff"))
	if out != strings.Repeat("█", 8) {
		t.Errorf("overfull bar = %q", out)
	}
}

func TestStackedShareBar(t *testing.T) {
	shares := []models.Share{{Percent: 50}, {Percent: 30}, {Percent: 20}}
	out := ansi.Strip(StackedShareBar(shares, 10))
	if lipgloss.Width(out) != 10 || strings.Contains(out, "░") {
		t.Errorf("StackedShareBar = %q", out)
	}

	empty := ansi.Strip(StackedShareBar([]models.Share{{Percent: 0}}, 4))
	if empty != "░░░░" {
		t.Errorf("zero shares = %q", empty)
	}
}

func TestInterpolateColor(t *testing.T) {
	if got := interpolateColor("#000000", "#ffffff", 0.5); got != "#7f7f7f" {
		t.Errorf("interpolateColor = %q", got)
	}
	if isHex("205") || !isHex("#a0B1c2") {
		t.Error("isHex misclassified")
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 1}, 10); got != "▁█" {
		t.Errorf("RenderSparkline = %q", got)
	}
	if RenderSparkline(nil, 10) != "" {
		t.Error("empty sparkline should be empty")
	}
}

func TestRenderLegend(t *testing.T) {
	items := []LegendItem{
		{Label: "A", Color: lipgloss.Color("#ffffff")},
		{Label: "B", Color: lipgloss.Color("1")},
	}
	if got := ansi.Strip(RenderLegend(items)); got != "■ A  ■ B" {
		t.Errorf("RenderLegend = %q", got)
	}
}

func TestRowCells(t *testing.T) {
	r := models.Row{
		Timestamp:        "2024-01-15 10:00:00",
		LLMModel:         "gpt-4o",
		InputTokens:      1200,
		CompletionTokens: 30,
		TotalCost:        0.5,
		UserID:           "9007199254740993",
		ExecutionID:      "exec-1",
	}
	cells := RowCells(r)
	if len(cells) != len(RowColumns) || len(RowTitles()) != len(RowColumns) {
		t.Fatalf("cells = %d, columns = %d", len(cells), len(RowColumns))
	}
	want := []string{"2024-01-15 10:00:00", "Unknown", "gpt-4o", "1,200", "30", "$0.50", "9007199254740993", "exec-1"}
	for i := range want {
		if cells[i] != want[i] {
			t.Errorf("cell %d = %q, want %q", i, cells[i], want[i])
		}
	}
}
