package models

import "time"

// TimeRange is a date-bound preset relative to the current day.
type TimeRange int

const (
	// TimeRangeAll applies no date bounds.
	TimeRangeAll TimeRange = iota
	// TimeRangeToday limits rows to the current calendar day.
	TimeRangeToday
	// TimeRange7Days limits rows to the last 7 calendar days, today included.
	TimeRange7Days
	// TimeRange30Days limits rows to the last 30 calendar days, today included.
	TimeRange30Days

	timeRangeCount
)

// String returns the display name for a time range.
func (t TimeRange) String() string {
	switch t {
	case TimeRangeAll:
		return "All Time"
	case TimeRangeToday:
		return "Today"
	case TimeRange7Days:
		return "7 Days"
	case TimeRange30Days:
		return "30 Days"
	default:
		return "Unknown"
	}
}

// Days returns the number of calendar days covered (0 = unlimited).
func (t TimeRange) Days() int {
	switch t {
	case TimeRangeToday:
		return 1
	case TimeRange7Days:
		return 7
	case TimeRange30Days:
		return 30
	default:
		return 0
	}
}

// Next cycles to the next time range.
func (t TimeRange) Next() TimeRange {
	return (t + 1) % timeRangeCount
}

// Bounds returns the start and end dates for the preset, evaluated at now.
// TimeRangeAll returns zero times.
func (t TimeRange) Bounds(now time.Time) (start, end time.Time) {
	days := t.Days()
	if days == 0 {
		return time.Time{}, time.Time{}
	}
	y, m, d := now.Date()
	end = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	start = end.AddDate(0, 0, -(days - 1))
	return start, end
}

// Apply returns f with its date bounds set from the preset.
func (t TimeRange) Apply(f Filter, now time.Time) Filter {
	start, end := t.Bounds(now)
	return f.WithDates(start, end)
}
