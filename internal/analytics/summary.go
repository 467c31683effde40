package analytics

import (
	"time"

	"github.com/j-veylop/llm-analytics-tui/internal/models"
)

// Summarize computes the headline metrics for d.
func Summarize(d models.Dataset, loc *time.Location) models.Summary {
	s := models.Summary{Rows: len(d)}

	users := make(map[string]struct{})
	modelNames := make(map[string]struct{})
	for _, r := range d {
		s.InputTokens += r.InputTokens
		s.OutputTokens += r.CompletionTokens
		s.TotalCost += r.TotalCost
		if r.UserID != "" {
			users[r.UserID] = struct{}{}
		}
		modelNames[r.LLMModel] = struct{}{}
		if ts, ok := ParseTimestamp(r.Timestamp, loc); ok && ts.After(s.LatestRecord) {
			s.LatestRecord = ts
		}
	}
	s.TotalTokens = s.InputTokens + s.OutputTokens
	s.UniqueUsers = len(users)
	s.UniqueModels = len(modelNames)

	total := float64(s.TotalTokens)
	s.TopModel = topShare(TokensByModel(d), total)
	s.TopWorkflow = topShare(TokensByWorkflow(d), total)
	return s
}

func topShare(ranked models.Series, total float64) models.Share {
	if len(ranked) == 0 {
		return models.Share{}
	}
	return models.Share{Label: ranked[0].Label, Value: ranked[0].Value, Percent: Percent(ranked[0].Value, total)}
}

// DailyCost returns the total cost of the calendar day containing now.
func DailyCost(d models.Dataset, now time.Time, loc *time.Location) float64 {
	today := DateKey(now, loc)
	for _, p := range CostOverTime(d, loc) {
		if p.Label == today {
			return p.Value
		}
	}
	return 0
}
