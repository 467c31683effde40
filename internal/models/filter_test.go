package models

import (
	"testing"
	"time"
)

func TestFilter_IsZero(t *testing.T) {
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"new filter", NewFilter(), true},
		{"empty workflow", Filter{}, true},
		{"workflow set", NewFilter().WithWorkflow("etl"), false},
		{"start set", Filter{Start: day, Workflow: AllWorkflows}, false},
		{"end set", Filter{End: day, Workflow: AllWorkflows}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.IsZero(); got != tt.want {
				t.Errorf("IsZero() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_Key(t *testing.T) {
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	if NewFilter().Key() != (Filter{}).Key() {
		t.Error("unset workflow and \"all\" should share a key")
	}
	a := NewFilter().WithDates(day, time.Time{})
	b := NewFilter().WithDates(time.Time{}, day)
	if a.Key() == b.Key() {
		t.Errorf("start-only and end-only filters share key %q", a.Key())
	}
	if NewFilter().WithWorkflow("a").Key() == NewFilter().WithWorkflow("A").Key() {
		t.Error("workflow keys must be case-sensitive")
	}
}

func TestFilter_String(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	f := NewFilter().WithDates(start, time.Time{}).WithWorkflow("etl")

	if got, want := f.String(), "2024-01-02.. workflow=etl"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := NewFilter().String(); got != "all data" {
		t.Errorf("String() = %q, want %q", got, "all data")
	}
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantStart string
		wantEnd   string
		wantErr   bool
	}{
		{"empty", "", "", "", false},
		{"both", "2024-01-01..2024-01-31", "2024-01-01", "2024-01-31", false},
		{"open end", "2024-01-01..", "2024-01-01", "", false},
		{"open start", "..2024-01-31", "", "2024-01-31", false},
		{"single day", "2024-02-29", "2024-02-29", "2024-02-29", false},
		{"spaces", " 2024-01-01 .. 2024-01-02 ", "2024-01-01", "2024-01-02", false},
		{"reversed", "2024-02-01..2024-01-01", "", "", true},
		{"bad date", "2024-13-01..", "", "", true},
		{"wrong layout", "01/02/2024", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := ParseDateRange(tt.input, time.UTC)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDateRange() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := formatDate(start); got != tt.wantStart {
				t.Errorf("start = %q, want %q", got, tt.wantStart)
			}
			if got := formatDate(end); got != tt.wantEnd {
				t.Errorf("end = %q, want %q", got, tt.wantEnd)
			}
		})
	}
}
