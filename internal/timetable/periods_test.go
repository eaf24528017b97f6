package timetable

import (
	"testing"
	"time"
)

func TestPeriodTime(t *testing.T) {
	tests := []struct {
		period int
		start  string
		end    string
	}{
		{1, "07:00", "07:50"},
		{5, "11:00", "11:50"},
		{6, "12:30", "13:20"},
		{10, "16:30", "17:20"},
		{0, "", ""},
		{11, "", ""},
	}

	for _, tc := range tests {
		start, end := PeriodTime(tc.period)
		if start != tc.start || end != tc.end {
			t.Errorf("PeriodTime(%d) = (%q, %q), expected (%q, %q)", tc.period, start, end, tc.start, tc.end)
		}
	}
}

func TestClassEndTime(t *testing.T) {
	tests := []struct {
		period   int
		expected string
	}{
		{2, "09:00"},  // start of period 3
		{5, "12:30"},  // start of period 6, across the lunch gap
		{10, "17:20"}, // last period has no successor
	}

	for _, tc := range tests {
		if got := ClassEndTime(tc.period); got != tc.expected {
			t.Errorf("ClassEndTime(%d) = %q, expected %q", tc.period, got, tc.expected)
		}
	}
}

func TestDayName(t *testing.T) {
	if got := DayName(2); got != "Thứ 2" {
		t.Errorf("DayName(2) = %q", got)
	}
	if got := DayName(7); got != "Thứ 7" {
		t.Errorf("DayName(7) = %q", got)
	}
	if got := DayName(1); got != "" {
		t.Errorf("DayName(1) = %q, expected empty", got)
	}
}

func TestDayFromWeekday(t *testing.T) {
	tests := []struct {
		weekday time.Weekday
		day     int
		ok      bool
	}{
		{time.Monday, 2, true},
		{time.Wednesday, 4, true},
		{time.Saturday, 7, true},
		{time.Sunday, 0, false},
	}

	for _, tc := range tests {
		day, ok := DayFromWeekday(tc.weekday)
		if day != tc.day || ok != tc.ok {
			t.Errorf("DayFromWeekday(%v) = (%d, %v), expected (%d, %v)", tc.weekday, day, ok, tc.day, tc.ok)
		}
	}
}
