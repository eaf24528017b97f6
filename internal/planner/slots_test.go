package planner

import (
	"testing"

	"studyflow-backend/internal/models"
)

func TestComputeSlots_NoClasses(t *testing.T) {
	slots := ComputeSlots(nil)

	if slots.HasClassToday {
		t.Error("Expected HasClassToday=false")
	}
	if slots.Morning.StartTime != "05:00" || slots.Morning.EndTime != "12:00" {
		t.Errorf("Morning = %s-%s, expected 05:00-12:00", slots.Morning.StartTime, slots.Morning.EndTime)
	}
	if slots.Morning.DurationMinutes != 420 {
		t.Errorf("Morning duration = %d, expected 420", slots.Morning.DurationMinutes)
	}
	if slots.Afternoon.StartTime != "12:00" || slots.Afternoon.EndTime != "23:00" {
		t.Errorf("Afternoon = %s-%s, expected 12:00-23:00", slots.Afternoon.StartTime, slots.Afternoon.EndTime)
	}
	if slots.Afternoon.DurationMinutes != 660 {
		t.Errorf("Afternoon duration = %d, expected 660", slots.Afternoon.DurationMinutes)
	}
}

func TestComputeSlots_OneClass(t *testing.T) {
	slots := ComputeSlots([]ClassOccurrence{
		{CourseID: "c1", StartTime: "08:00", EndTime: "09:50"},
	})

	if !slots.HasClassToday {
		t.Error("Expected HasClassToday=true")
	}
	if slots.Morning.EndTime != "07:30" {
		t.Errorf("Morning end = %s, expected 07:30", slots.Morning.EndTime)
	}
	if slots.Afternoon.StartTime != "10:20" {
		t.Errorf("Afternoon start = %s, expected 10:20", slots.Afternoon.StartTime)
	}
	if slots.Morning.DurationMinutes != 150 {
		t.Errorf("Morning duration = %d, expected 150", slots.Morning.DurationMinutes)
	}
}

func TestComputeSlots_MultipleClasses(t *testing.T) {
	slots := ComputeSlots([]ClassOccurrence{
		{CourseID: "c1", StartTime: "09:00", EndTime: "10:50"},
		{CourseID: "c2", StartTime: "07:00", EndTime: "08:50"},
		{CourseID: "c3", StartTime: "13:30", EndTime: "15:20"},
	})

	// Earliest start 07:00 and latest end 15:20 bound the class block.
	if slots.Morning.EndTime != "06:30" {
		t.Errorf("Morning end = %s, expected 06:30", slots.Morning.EndTime)
	}
	if slots.Afternoon.StartTime != "15:50" {
		t.Errorf("Afternoon start = %s, expected 15:50", slots.Afternoon.StartTime)
	}
}

func TestComputeSlots_NegativeDurationIsValid(t *testing.T) {
	// A class at the wake bound squeezes the morning below zero; that must
	// come back as a non-positive duration, not a panic or an error.
	slots := ComputeSlots([]ClassOccurrence{
		{CourseID: "c1", StartTime: "05:10", EndTime: "06:00"},
	})

	if slots.Morning.DurationMinutes > 0 {
		t.Errorf("Expected non-positive morning duration, got %d", slots.Morning.DurationMinutes)
	}
}

func TestOccurrencesOn(t *testing.T) {
	courses := []models.Course{
		{
			ID:   "c1",
			Name: "Giải tích 1",
			ScheduleEntries: []models.ScheduleEntry{
				{Day: 4, Periods: []int{1, 2}, Room: "E2.403"},
				{Day: 4, Periods: []int{4}, Room: "E2.403"},
				{Day: 5, Periods: []int{6, 7}, Room: "A141"},
			},
		},
		{
			ID:   "c2",
			Name: "Triết học",
			ScheduleEntries: []models.ScheduleEntry{
				{Day: 2, Periods: []int{6, 7}},
			},
		},
	}

	occurrences := OccurrencesOn(courses, 4)
	if len(occurrences) != 1 {
		t.Fatalf("Expected 1 occurrence on day 4, got %d", len(occurrences))
	}

	occ := occurrences[0]
	if occ.CourseID != "c1" {
		t.Errorf("Expected course c1, got %s", occ.CourseID)
	}
	// Min period 1 starts 07:00; max period 4 ends at the start of period 5.
	if occ.StartTime != "07:00" {
		t.Errorf("Start = %s, expected 07:00", occ.StartTime)
	}
	if occ.EndTime != "11:00" {
		t.Errorf("End = %s, expected 11:00", occ.EndTime)
	}
	if occ.Room != "E2.403" {
		t.Errorf("Room = %s, expected E2.403", occ.Room)
	}

	if got := OccurrencesOn(courses, 6); len(got) != 0 {
		t.Errorf("Expected no occurrences on day 6, got %d", len(got))
	}
}

func TestMinutesOf(t *testing.T) {
	tests := []struct {
		clock    string
		expected int
	}{
		{"05:00", 300},
		{"23:00", 1380},
		{"00:00", 0},
		{"12:30", 750},
		{"garbage", -1},
		{"25:00", -1},
		{"10:75", -1},
	}

	for _, tc := range tests {
		if got := minutesOf(tc.clock); got != tc.expected {
			t.Errorf("minutesOf(%q) = %d, expected %d", tc.clock, got, tc.expected)
		}
	}
}
