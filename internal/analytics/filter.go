package analytics

import (
	"time"

	"github.com/j-veylop/llm-analytics-tui/internal/models"
)

// Filter returns the rows of d that pass every bound of f, in input order.
// Bounds are conjunctive and an unset bound always passes. A row whose
// timestamp does not parse passes both date bounds; the time-series
// aggregators drop such rows instead. d is never modified.
func Filter(d models.Dataset, f models.Filter, loc *time.Location) models.Dataset {
	if f.IsZero() {
		return clone(d)
	}

	var start, end time.Time
	if f.HasStart() {
		start = StartOfDay(f.Start, loc)
	}
	if f.HasEnd() {
		end = EndOfDay(f.End, loc)
	}

	out := make(models.Dataset, 0, len(d))
	for _, r := range d {
		if !f.AnyWorkflow() && r.WorkflowName != f.Workflow {
			continue
		}
		if f.HasStart() || f.HasEnd() {
			if ts, ok := ParseTimestamp(r.Timestamp, loc); ok {
				if f.HasStart() && ts.Before(start) {
					continue
				}
				if f.HasEnd() && ts.After(end) {
					continue
				}
			}
		}
		out = append(out, r)
	}
	return out
}

func clone(d models.Dataset) models.Dataset {
	out := make(models.Dataset, len(d))
	copy(out, d)
	return out
}
