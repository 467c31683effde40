package sheets

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/j-veylop/llm-analytics-tui/internal/models"
)

// Column positions in the usage sheet.
const (
	colExecutionID = iota
	colTimestamp
	colWorkflowID
	colWorkflowName
	colLLMModel
	colInputTokens
	colCompletionTokens
	colInputPrice
	colOutputPrice
	colInputCost
	colOutputCost
	colTotalCost
	colUserID
	colTime
	colTool
)

// Normalize converts a decoded response into rows. A nil response or a
// response without a table yields an empty dataset.
func Normalize(resp *Response) models.Dataset {
	if resp == nil || resp.Table == nil {
		return models.Dataset{}
	}
	return NormalizeTable(resp.Table)
}

// NormalizeTable converts a cell grid into rows. Row 0 is the header and is
// skipped, as is any row without a cell array. Missing or malformed cells
// resolve to "" or 0.
func NormalizeTable(t *Table) models.Dataset {
	if t == nil || len(t.Rows) < 2 {
		return models.Dataset{}
	}

	rows := make(models.Dataset, 0, len(t.Rows)-1)
	for _, gr := range t.Rows[1:] {
		if gr.C == nil {
			continue
		}
		rows = append(rows, normalizeRow(gr.C))
	}
	return rows
}

// Parse decodes body and normalizes it in one step.
func Parse(body []byte) (models.Dataset, error) {
	resp, err := Decode(body)
	if err != nil {
		return nil, err
	}
	return Normalize(resp), nil
}

func normalizeRow(cells []*Cell) models.Row {
	at := func(i int) *Cell {
		if i < len(cells) {
			return cells[i]
		}
		return nil
	}

	return models.Row{
		ExecutionID:      cellString(at(colExecutionID)),
		Timestamp:        cellString(at(colTimestamp)),
		WorkflowID:       cellString(at(colWorkflowID)),
		WorkflowName:     cellString(at(colWorkflowName)),
		LLMModel:         cellString(at(colLLMModel)),
		InputTokens:      cellTokens(at(colInputTokens)),
		CompletionTokens: cellTokens(at(colCompletionTokens)),
		InputPrice:       cellNumber(at(colInputPrice)),
		OutputPrice:      cellNumber(at(colOutputPrice)),
		InputCost:        cellNumber(at(colInputCost)),
		OutputCost:       cellNumber(at(colOutputCost)),
		TotalCost:        cellNumber(at(colTotalCost)),
		UserID:           cellUserID(at(colUserID)),
		Time:             cellString(at(colTime)),
		Tool:             cellString(at(colTool)),
	}
}

// cellString prefers the formatted value, then the raw value.
func cellString(c *Cell) string {
	if c == nil {
		return ""
	}
	if f := strings.TrimSpace(literalText(c.F)); f != "" {
		return f
	}
	return strings.TrimSpace(literalText(c.V))
}

// cellUserID never goes through a numeric type: a raw number is kept as
// its literal digits.
func cellUserID(c *Cell) string {
	id := cellString(c)
	switch id {
	case "undefined", "null", "NaN":
		return ""
	}
	return id
}

// cellNumber tries the formatted value, then the raw value, defaulting to 0.
func cellNumber(c *Cell) float64 {
	if c == nil {
		return 0
	}
	if n, ok := parseNumber(literalText(c.F)); ok {
		return n
	}
	if n, ok := parseNumber(literalText(c.V)); ok {
		return n
	}
	return 0
}

// cellTokens truncates toward zero and clamps negatives to 0.
func cellTokens(c *Cell) int64 {
	n := math.Trunc(cellNumber(c))
	if n <= 0 {
		return 0
	}
	if n >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(n)
}

var numberReplacer = strings.NewReplacer(",", "", "$", "", " ", "", "\u00a0", "")

func parseNumber(s string) (float64, bool) {
	s = numberReplacer.Replace(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// literalText renders a JSON scalar as text. Strings are unquoted, numbers
// and booleans keep their literal form, null and composites become "".
func literalText(v jsontext.Value) string {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return ""
	}
	switch v[0] {
	case 'n', '{', '[':
		return ""
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return ""
		}
		return s
	default:
		return string(v)
	}
}
