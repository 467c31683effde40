package models

import (
	"fmt"
	"strings"
	"time"
)

// AllWorkflows is the workflow selector value that matches every row.
const AllWorkflows = "all"

// DateLayout is the calendar-date format used for filter bounds and series keys.
const DateLayout = "2006-01-02"

// Filter holds the date range and workflow selection applied to a dataset.
// A zero Start or End means the bound is unset.
type Filter struct {
	Start    time.Time
	End      time.Time
	Workflow string
}

// NewFilter returns a filter that passes every row.
func NewFilter() Filter {
	return Filter{Workflow: AllWorkflows}
}

// HasStart reports whether the start bound is set.
func (f Filter) HasStart() bool { return !f.Start.IsZero() }

// HasEnd reports whether the end bound is set.
func (f Filter) HasEnd() bool { return !f.End.IsZero() }

// AnyWorkflow reports whether the workflow bound is unset.
func (f Filter) AnyWorkflow() bool {
	return f.Workflow == "" || f.Workflow == AllWorkflows
}

// IsZero reports whether the filter passes every row.
func (f Filter) IsZero() bool {
	return !f.HasStart() && !f.HasEnd() && f.AnyWorkflow()
}

// WithWorkflow returns a copy with the workflow bound replaced.
func (f Filter) WithWorkflow(name string) Filter {
	if name == "" {
		name = AllWorkflows
	}
	f.Workflow = name
	return f
}

// WithDates returns a copy with both date bounds replaced.
func (f Filter) WithDates(start, end time.Time) Filter {
	f.Start = start
	f.End = end
	return f
}

// Key returns a stable string identifying the filter, for memoization.
func (f Filter) Key() string {
	return fmt.Sprintf("%s|%s|%s", formatBound(f.Start), formatBound(f.End), f.workflowOrAll())
}

// String returns a short description for status lines.
func (f Filter) String() string {
	if f.IsZero() {
		return "all data"
	}
	var parts []string
	if f.HasStart() || f.HasEnd() {
		parts = append(parts, formatDate(f.Start)+".."+formatDate(f.End))
	}
	if !f.AnyWorkflow() {
		parts = append(parts, "workflow="+f.Workflow)
	}
	return strings.Join(parts, " ")
}

func (f Filter) workflowOrAll() string {
	if f.AnyWorkflow() {
		return AllWorkflows
	}
	return f.Workflow
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(DateLayout) + "@" + t.Location().String()
}

// ParseDateRange parses "YYYY-MM-DD..YYYY-MM-DD" with either side optional.
// A single date without ".." sets both bounds to that day.
func ParseDateRange(s string, loc *time.Location) (start, end time.Time, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, time.Time{}, nil
	}
	from, to, found := strings.Cut(s, "..")
	if !found {
		to = from
	}
	if start, err = parseBound(from, loc); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end, err = parseBound(to, loc); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %s is before start date %s",
			end.Format(DateLayout), start.Format(DateLayout))
	}
	return start, end, nil
}

func parseBound(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}
