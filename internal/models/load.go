package models

import "time"

// LoadStatus is the outcome of a load attempt.
type LoadStatus string

const (
	// LoadStatusOK marks a load that produced a dataset.
	LoadStatusOK LoadStatus = "ok"
	// LoadStatusError marks a load that failed and resolved to an empty dataset.
	LoadStatusError LoadStatus = "error"
)

// LoadEvent is one recorded load attempt.
type LoadEvent struct {
	StartedAt time.Time
	LoadID    string
	Source    string
	Status    LoadStatus
	Error     string
	ID        int64
	Seq       uint64
	Duration  time.Duration
	RowCount  int
}

// Failed reports whether the load failed.
func (e LoadEvent) Failed() bool {
	return e.Status == LoadStatusError
}

// LoadStats aggregates the recorded load log.
type LoadStats struct {
	LastSuccess time.Time
	LastFailure time.Time
	AvgDuration time.Duration
	Total       int
	Failures    int
}

// SuccessRate returns the percentage of successful loads.
func (s LoadStats) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Total-s.Failures) / float64(s.Total) * 100
}
