package models

import "time"

// Summary holds the headline metrics for a filtered dataset.
type Summary struct {
	LatestRecord time.Time
	TopModel     Share
	TopWorkflow  Share
	TotalTokens  int64
	TotalCost    float64
	Rows         int
	UniqueUsers  int
	UniqueModels int
	InputTokens  int64
	OutputTokens int64
}

// HasData returns true if the summary covers at least one row.
func (s Summary) HasData() bool {
	return s.Rows > 0
}

// AvgCostPerRow returns the mean total cost per row.
func (s Summary) AvgCostPerRow() float64 {
	if s.Rows == 0 {
		return 0
	}
	return s.TotalCost / float64(s.Rows)
}
