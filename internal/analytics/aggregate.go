package analytics

import (
	"cmp"
	"slices"
	"time"

	"github.com/j-veylop/llm-analytics-tui/internal/models"
)

// TopWorkflows is the number of workflows kept by the top-N aggregators.
const TopWorkflows = 3

// keyFunc extracts a group key; ok=false drops the row.
type keyFunc func(models.Row) (key string, ok bool)

type metricFunc func(models.Row) float64

func tokens(r models.Row) float64 { return float64(r.TotalTokens()) }
func cost(r models.Row) float64   { return r.TotalCost }

func byModel(r models.Row) (string, bool)    { return r.LLMModel, true }
func byWorkflow(r models.Row) (string, bool) { return r.WorkflowKey(), true }
func byTool(r models.Row) (string, bool)     { return r.Tool, r.Tool != "" }

func byDate(loc *time.Location) keyFunc {
	return func(r models.Row) (string, bool) {
		ts, ok := ParseTimestamp(r.Timestamp, loc)
		if !ok {
			return "", false
		}
		return DateKey(ts, loc), true
	}
}

// groupSum sums metric per key, keeping groups in first-seen order.
func groupSum(d models.Dataset, key keyFunc, metric metricFunc) models.Series {
	index := make(map[string]int)
	out := models.Series{}
	for _, r := range d {
		k, ok := key(r)
		if !ok {
			continue
		}
		i, seen := index[k]
		if !seen {
			i = len(out)
			index[k] = i
			out = append(out, models.Point{Label: k})
		}
		out[i].Value += metric(r)
	}
	return out
}

// rankDesc sorts by value descending. Ties keep first-seen order.
func rankDesc(s models.Series) models.Series {
	slices.SortStableFunc(s, func(a, b models.Point) int {
		return cmp.Compare(b.Value, a.Value)
	})
	return s
}

func chronological(s models.Series) models.Series {
	slices.SortFunc(s, func(a, b models.Point) int {
		return cmp.Compare(a.Label, b.Label)
	})
	return s
}

// TokensByModel sums tokens per model name. An empty model name is its own group.
func TokensByModel(d models.Dataset) models.Series {
	return rankDesc(groupSum(d, byModel, tokens))
}

// CostByModel sums total cost per model name.
func CostByModel(d models.Dataset) models.Series {
	return rankDesc(groupSum(d, byModel, cost))
}

// TokensByWorkflow sums tokens per workflow, with empty names under "Unknown".
func TokensByWorkflow(d models.Dataset) models.Series {
	return rankDesc(groupSum(d, byWorkflow, tokens))
}

// CostByWorkflow sums total cost per workflow, with empty names under "Unknown".
func CostByWorkflow(d models.Dataset) models.Series {
	return rankDesc(groupSum(d, byWorkflow, cost))
}

// TokensByTool sums tokens per tool. Rows without a tool are skipped.
func TokensByTool(d models.Dataset) models.Series {
	return rankDesc(groupSum(d, byTool, tokens))
}

// TokensOverTime sums tokens per calendar date in loc, ascending by date.
// Rows with unparseable timestamps are dropped.
func TokensOverTime(d models.Dataset, loc *time.Location) models.Series {
	return chronological(groupSum(d, byDate(loc), tokens))
}

// CostOverTime sums total cost per calendar date in loc, ascending by date.
func CostOverTime(d models.Dataset, loc *time.Location) models.Series {
	return chronological(groupSum(d, byDate(loc), cost))
}

// TopWorkflowNames returns up to n workflow keys with the highest token
// totals. Ties are broken by first-seen order.
func TopWorkflowNames(d models.Dataset, n int) []string {
	ranked := TokensByWorkflow(d)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked.Labels()
}

// WorkflowModelCrossTab breaks the top workflows down by model. Workflows
// keep their rank order and models their first-seen order. An empty model
// name groups under "Unknown".
func WorkflowModelCrossTab(d models.Dataset, n int) models.CrossTab {
	top := TopWorkflowNames(d, n)
	out := make(models.CrossTab, 0, len(top))
	for _, name := range top {
		rows := rowsForWorkflow(d, name)
		crossModel := func(r models.Row) (string, bool) {
			if r.LLMModel == "" {
				return models.UnknownModel, true
			}
			return r.LLMModel, true
		}
		bd := groupSum(rows, crossModel, tokens)
		out = append(out, models.CrossTabGroup{
			Workflow: name,
			Total:    bd.Total(),
			Models:   bd,
		})
	}
	return out
}

// WorkflowTokensOverTime returns one token series per top workflow over the
// union of their dates, ascending. A workflow with no rows on a date gets 0.
func WorkflowTokensOverTime(d models.Dataset, n int, loc *time.Location) models.MultiSeries {
	top := TopWorkflowNames(d, n)
	key := byDate(loc)

	perWorkflow := make([]map[string]float64, len(top))
	dates := make(map[string]struct{})
	for i, name := range top {
		perWorkflow[i] = make(map[string]float64)
		for _, r := range rowsForWorkflow(d, name) {
			day, ok := key(r)
			if !ok {
				continue
			}
			dates[day] = struct{}{}
			perWorkflow[i][day] += tokens(r)
		}
	}

	labels := make([]string, 0, len(dates))
	for day := range dates {
		labels = append(labels, day)
	}
	slices.Sort(labels)

	out := models.MultiSeries{Labels: labels, Series: make([]models.NamedSeries, len(top))}
	for i, name := range top {
		values := make([]float64, len(labels))
		for j, day := range labels {
			values[j] = perWorkflow[i][day]
		}
		out.Series[i] = models.NamedSeries{Name: name, Values: values}
	}
	return out
}

func rowsForWorkflow(d models.Dataset, key string) models.Dataset {
	var out models.Dataset
	for _, r := range d {
		if r.WorkflowKey() == key {
			out = append(out, r)
		}
	}
	return out
}

// Workflows returns the sorted unique non-empty workflow names.
func Workflows(d models.Dataset) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range d {
		if r.WorkflowName == "" {
			continue
		}
		if _, ok := seen[r.WorkflowName]; ok {
			continue
		}
		seen[r.WorkflowName] = struct{}{}
		out = append(out, r.WorkflowName)
	}
	slices.Sort(out)
	return out
}

// Percent returns value as a percentage of total, or 0 when total is 0.
func Percent(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return value / total * 100
}

// Shares annotates every point with its percentage of the series total.
func Shares(s models.Series) []models.Share {
	total := s.Total()
	out := make([]models.Share, len(s))
	for i, p := range s {
		out[i] = models.Share{Label: p.Label, Value: p.Value, Percent: Percent(p.Value, total)}
	}
	return out
}
