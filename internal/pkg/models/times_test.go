package models

import (
	"testing"
	"time"
)

func TestParseStartTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		ok       bool
		expected time.Time
	}{
		{
			name:     "iso style date",
			input:    "2024-01-01 18:30",
			ok:       true,
			expected: time.Date(2024, 1, 1, 18, 30, 0, 0, time.Local),
		},
		{
			name:     "day first date",
			input:    "01-01-2024 20:15",
			ok:       true,
			expected: time.Date(2024, 1, 1, 20, 15, 0, 0, time.Local),
		},
		{
			name:     "two digit year",
			input:    "15-06-24 12:00",
			ok:       true,
			expected: time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local),
		},
		{name: "empty", input: "", ok: false},
		{name: "garbage", input: "tbd", ok: false},
		{name: "missing clock", input: "2024-01-01", ok: false},
		{name: "hour out of range", input: "2024-01-01 25:00", ok: false},
		{name: "minute out of range", input: "2024-01-01 10:61", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseStartTime(tt.input)
			if got.OK != tt.ok {
				t.Fatalf("ParseStartTime(%q).OK = %v, want %v", tt.input, got.OK, tt.ok)
			}
			if tt.ok && !got.Time.Equal(tt.expected) {
				t.Errorf("ParseStartTime(%q) = %v, want %v", tt.input, got.Time, tt.expected)
			}
		})
	}
}

func TestParseStartTimeBareClock(t *testing.T) {
	got := ParseStartTime("18:30")
	if !got.OK {
		t.Fatal("bare clock should parse")
	}
	now := time.Now()
	if got.Time.Year() != now.Year() || got.Time.Month() != now.Month() || got.Time.Day() != now.Day() {
		t.Errorf("bare clock should fall on today, got %v", got.Time)
	}
	if got.Time.Hour() != 18 || got.Time.Minute() != 30 {
		t.Errorf("clock wrong: %v", got.Time)
	}
}

func TestSortValueSentinel(t *testing.T) {
	bad := ParseStartTime("tbd").SortValue()
	good := ParseStartTime("2030-12-31 23:59").SortValue()
	if !good.Before(bad) {
		t.Errorf("unparseable time must sort after any real time: %v vs %v", good, bad)
	}
}

func TestClockTime(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2024-01-01 18:30", "18:30"},
		{"01-01-2024 08:05", "08:05"},
		{"18:30", "18:30"},
		{"", "--:--"},
		{"sin hora", "--:--"},
		{"a las ocho", "--:--"},
		{"2024-01-01 25:99", "--:--"},
	}

	for _, tt := range tests {
		if got := ClockTime(tt.input); got != tt.expected {
			t.Errorf("ClockTime(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestShiftUTC5ToUTC3(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain shift",
			input:    "2024-03-10 18:30",
			expected: "10-03-2024 20:30",
		},
		{
			name:     "rolls over midnight",
			input:    "2024-03-10 23:30",
			expected: "11-03-2024 01:30",
		},
		{
			name:     "unparseable passes through",
			input:    "directo",
			expected: "directo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShiftUTC5ToUTC3(tt.input); got != tt.expected {
				t.Errorf("ShiftUTC5ToUTC3(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
