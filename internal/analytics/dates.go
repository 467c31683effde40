// Package analytics holds the pure data-shaping functions behind every chart
// and table: the filter pipeline, the aggregators and the table view.
package analytics

import (
	"strconv"
	"strings"
	"time"

	"github.com/j-veylop/llm-analytics-tui/internal/models"
)

// Zone-less layouts are interpreted in the caller's location.
var localLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
}

var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05 -0700",
}

// ParseTimestamp parses a row timestamp. It accepts ISO-8601 variants,
// US-style sheet formatting and gviz Date(y,m,d,...) literals with a
// zero-based month. ok is false when nothing matches.
func ParseTimestamp(s string, loc *time.Location) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	if strings.HasPrefix(s, "Date(") {
		return parseDateLiteral(s, loc)
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseDateLiteral(s string, loc *time.Location) (time.Time, bool) {
	inner, ok := strings.CutPrefix(s, "Date(")
	if !ok {
		return time.Time{}, false
	}
	inner, ok = strings.CutSuffix(inner, ")")
	if !ok {
		return time.Time{}, false
	}

	parts := strings.Split(inner, ",")
	if len(parts) < 3 || len(parts) > 7 {
		return time.Time{}, false
	}
	// year, month (0-based), day, hour, minute, second, millisecond
	var f [7]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, false
		}
		f[i] = n
	}
	if f[1] < 0 || f[1] > 11 || f[2] < 1 || f[2] > 31 {
		return time.Time{}, false
	}
	return time.Date(f[0], time.Month(f[1]+1), f[2], f[3], f[4], f[5], f[6]*int(time.Millisecond), loc), true
}

// DateKey returns the calendar date of t in loc as YYYY-MM-DD.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(models.DateLayout)
}

// StartOfDay returns 00:00:00 of t's calendar date in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// EndOfDay returns 23:59:59.999 of t's calendar date in loc.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	return StartOfDay(t, loc).AddDate(0, 0, 1).Add(-time.Millisecond)
}
