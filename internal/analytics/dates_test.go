package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)

	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"rfc3339", "2024-01-15T10:30:00Z", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), true},
		{"rfc3339 nano", "2024-01-15T10:30:00.123Z", time.Date(2024, 1, 15, 10, 30, 0, 123e6, time.UTC), true},
		{"sheet datetime", "2024-01-15 10:30:00", time.Date(2024, 1, 15, 10, 30, 0, 0, loc), true},
		{"iso no zone", "2024-01-15T10:30:00", time.Date(2024, 1, 15, 10, 30, 0, 0, loc), true},
		{"date only", "2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, loc), true},
		{"us format", "1/15/2024 10:30:00", time.Date(2024, 1, 15, 10, 30, 0, 0, loc), true},
		{"us date", "12/31/2023", time.Date(2023, 12, 31, 0, 0, 0, 0, loc), true},
		{"gviz date", "Date(2024,0,15)", time.Date(2024, 1, 15, 0, 0, 0, 0, loc), true},
		{"gviz datetime", "Date(2024,11,31,23,59,59)", time.Date(2024, 12, 31, 23, 59, 59, 0, loc), true},
		{"gviz millis", "Date(2024,0,1,0,0,0,250)", time.Date(2024, 1, 1, 0, 0, 0, 250e6, loc), true},
		{"padded", "  2024-01-15  ", time.Date(2024, 1, 15, 0, 0, 0, 0, loc), true},
		{"garbage", "not-a-date", time.Time{}, false},
		{"empty", "", time.Time{}, false},
		{"gviz bad month", "Date(2024,12,1)", time.Time{}, false},
		{"gviz short", "Date(2024,1)", time.Time{}, false},
		{"gviz text", "Date(a,b,c)", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.input, loc)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateKey_UsesLocation(t *testing.T) {
	ts := time.Date(2024, 1, 15, 2, 0, 0, 0, time.UTC)
	west := time.FixedZone("UTC-5", -5*60*60)

	assert.Equal(t, "2024-01-15", DateKey(ts, time.UTC))
	assert.Equal(t, "2024-01-14", DateKey(ts, west))
}

func TestDayBounds(t *testing.T) {
	day := time.Date(2024, 3, 10, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), StartOfDay(day, time.UTC))
	assert.Equal(t, time.Date(2024, 3, 10, 23, 59, 59, 999e6, time.UTC), EndOfDay(day, time.UTC))
}
