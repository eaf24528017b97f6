package planner

import (
	"errors"
	"testing"

	"studyflow-backend/internal/models"
)

func TestAssembleDailySchedule_FreeDay(t *testing.T) {
	schedule, warnings, err := AssembleDailySchedule(AssembleInput{
		Date:      "2026-09-07",
		DayOfWeek: 2,
		Activities: []models.Activity{
			{ID: "a1", Type: "study", CourseName: "Giải tích 1", EstimatedDuration: 90, Priority: models.PriorityHigh, TimeSlot: models.TimeSlotMorning},
			{ID: "a2", Type: "exercise", EstimatedDuration: 45, Priority: models.PriorityMedium, TimeSlot: models.TimeSlotAfternoon},
		},
		Notes: "tuần thi giữa kỳ",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Unexpected warnings: %v", warnings)
	}

	if schedule.HasClassToday {
		t.Error("Expected HasClassToday=false")
	}
	if len(schedule.MorningSchedule.Activities) != 1 || len(schedule.AfternoonSchedule.Activities) != 1 {
		t.Fatalf("Bucket sizes = %d/%d, expected 1/1",
			len(schedule.MorningSchedule.Activities), len(schedule.AfternoonSchedule.Activities))
	}
	if schedule.TotalActivities != 2 {
		t.Errorf("TotalActivities = %d, expected 2", schedule.TotalActivities)
	}
	if schedule.TotalStudyTime != 90 {
		t.Errorf("TotalStudyTime = %d, expected 90", schedule.TotalStudyTime)
	}

	morning := schedule.MorningSchedule.Activities[0]
	if morning.ScheduledTime != "05:00" {
		t.Errorf("Morning activity starts %s, expected 05:00", morning.ScheduledTime)
	}
	if morning.Status != models.StatusPlanned {
		t.Errorf("Status = %s, expected planned default", morning.Status)
	}
}

func TestAssembleDailySchedule_AutoSpreadsAcrossBuckets(t *testing.T) {
	schedule, _, err := AssembleDailySchedule(AssembleInput{
		Date:      "2026-09-07",
		DayOfWeek: 2,
		Activities: []models.Activity{
			{ID: "a1", Type: "reading", EstimatedDuration: 60, TimeSlot: models.TimeSlotAuto},
			{ID: "a2", Type: "review", CourseName: "Triết học", EstimatedDuration: 60, TimeSlot: models.TimeSlotAuto},
		},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Free day: afternoon (660 min) outweighs morning (420), so the first
	// auto activity lands there; the second goes wherever more room remains.
	total := len(schedule.MorningSchedule.Activities) + len(schedule.AfternoonSchedule.Activities)
	if total != 2 {
		t.Fatalf("Expected both activities placed, got %d", total)
	}
	if len(schedule.AfternoonSchedule.Activities) == 0 {
		t.Error("Expected the afternoon bucket to receive at least one auto activity")
	}
}

func TestAssembleDailySchedule_ClassDayWindows(t *testing.T) {
	schedule, _, err := AssembleDailySchedule(AssembleInput{
		Date:      "2026-09-09",
		DayOfWeek: 4,
		Occurrences: []ClassOccurrence{
			{CourseID: "c1", CourseName: "Giải tích 1", StartTime: "08:00", EndTime: "09:50"},
		},
		Activities: []models.Activity{
			{ID: "a1", Type: "meal", EstimatedDuration: 30, TimeSlot: models.TimeSlotMorning},
		},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !schedule.HasClassToday {
		t.Error("Expected HasClassToday=true")
	}
	if schedule.MorningSchedule.EndTime != "07:30" {
		t.Errorf("Morning window ends %s, expected 07:30", schedule.MorningSchedule.EndTime)
	}
	if schedule.AfternoonSchedule.StartTime != "10:20" {
		t.Errorf("Afternoon window starts %s, expected 10:20", schedule.AfternoonSchedule.StartTime)
	}
}

func TestAssembleDailySchedule_OverflowWarns(t *testing.T) {
	_, warnings, err := AssembleDailySchedule(AssembleInput{
		Date:      "2026-09-07",
		DayOfWeek: 2,
		Activities: []models.Activity{
			{ID: "a1", Type: "study", CourseName: "A", EstimatedDuration: 480, TimeSlot: models.TimeSlotMorning},
			{ID: "a2", Type: "study", CourseName: "B", EstimatedDuration: 480, TimeSlot: models.TimeSlotMorning},
		},
	})
	if err != nil {
		t.Fatalf("Overflow must warn, not fail: %v", err)
	}
	if len(warnings) == 0 {
		t.Error("Expected capacity warnings")
	}
}

func TestAssembleDailySchedule_NoUsableWindow(t *testing.T) {
	_, _, err := AssembleDailySchedule(AssembleInput{
		Date:      "2026-09-09",
		DayOfWeek: 4,
		Occurrences: []ClassOccurrence{
			// Class block swallowing the whole day on both sides.
			{CourseID: "c1", StartTime: "05:20", EndTime: "22:50"},
		},
		Activities: []models.Activity{
			{ID: "a1", Type: "rest", EstimatedDuration: 15},
		},
	})
	if !errors.Is(err, ErrNoUsableWindow) {
		t.Fatalf("Expected ErrNoUsableWindow, got %v", err)
	}
}

func TestAssembleDailySchedule_EmptyBucketsAreNotNil(t *testing.T) {
	schedule, _, err := AssembleDailySchedule(AssembleInput{
		Date:       "2026-09-07",
		DayOfWeek:  2,
		Activities: []models.Activity{{ID: "a1", Type: "rest", EstimatedDuration: 30, TimeSlot: models.TimeSlotMorning}},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if schedule.AfternoonSchedule.Activities == nil {
		t.Error("Expected empty slice, not nil, for the untouched bucket")
	}
}
