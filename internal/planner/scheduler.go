package planner

import (
	"sort"

	"studyflow-backend/internal/models"
)

func priorityWeight(priority string) int {
	switch priority {
	case models.PriorityHigh:
		return 3
	case models.PriorityLow:
		return 1
	default:
		// Missing or unknown priorities behave as medium.
		return 2
	}
}

// ScheduleActivities greedily places activities into a time slot in priority
// order (high before medium before low, original order preserved among
// equals) with a fixed 10-minute break between consecutive activities.
//
// The first activity that does not fit ends the pass: if its duration is at
// most 15 minutes it is still placed, clipped to the remaining window;
// otherwise it and everything after it are dropped. The result is in
// placement order, and omissions are detected by comparing lengths — no
// error is returned for a partial fit.
func ScheduleActivities(activities []models.Activity, slot TimeSlot) []models.Activity {
	if len(activities) == 0 || slot.DurationMinutes <= 0 {
		return nil
	}

	sorted := make([]models.Activity, len(activities))
	copy(sorted, activities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return priorityWeight(sorted[i].Priority) > priorityWeight(sorted[j].Priority)
	})

	slotEnd := minutesOf(slot.EndTime)
	cursor := minutesOf(slot.StartTime)

	var scheduled []models.Activity
	for _, activity := range sorted {
		duration := activity.EstimatedDuration
		if cursor+duration > slotEnd {
			if duration <= minActivityMinutes && cursor < slotEnd {
				activity.ScheduledTime = clockOf(cursor)
				activity.ScheduledEndTime = clockOf(slotEnd)
				scheduled = append(scheduled, activity)
			}
			break
		}

		activity.ScheduledTime = clockOf(cursor)
		activity.ScheduledEndTime = clockOf(cursor + duration)
		scheduled = append(scheduled, activity)
		cursor += duration + activityBreakMinutes
	}
	return scheduled
}
