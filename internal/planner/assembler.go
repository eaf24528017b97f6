package planner

import (
	"errors"
	"fmt"

	"studyflow-backend/internal/models"
)

// ErrNoUsableWindow signals that the day leaves no positive-duration window
// for the submitted activities. The caller must not persist anything.
var ErrNoUsableWindow = errors.New("no usable time window on the requested date")

// AssembleInput carries everything needed to compose one day.
type AssembleInput struct {
	Date        string
	DayOfWeek   int
	Occurrences []ClassOccurrence
	Activities  []models.Activity
	Notes       string
}

// AssembleDailySchedule derives the day's free windows, splits the
// activities into morning and afternoon buckets, schedules each bucket and
// builds the resulting schedule value. Capacity overflows come back as
// warnings, not errors — the scheduler truncates what does not fit.
//
// Activities with an explicit time slot keep it; "auto" and unset go to the
// bucket with more remaining capacity at the moment of assignment.
func AssembleDailySchedule(in AssembleInput) (*models.DailySchedule, []string, error) {
	slots := ComputeSlots(in.Occurrences)

	if len(in.Activities) > 0 && slots.Morning.DurationMinutes <= 0 && slots.Afternoon.DurationMinutes <= 0 {
		return nil, nil, ErrNoUsableWindow
	}

	morning, afternoon := splitActivities(in.Activities, slots)

	var warnings []string
	if capacity := ValidateTimeSlotCapacity(morning, slots.Morning); !capacity.CanFit {
		warnings = append(warnings, fmt.Sprintf("morning: %s", capacity.Errors[0]))
	}
	if capacity := ValidateTimeSlotCapacity(afternoon, slots.Afternoon); !capacity.CanFit {
		warnings = append(warnings, fmt.Sprintf("afternoon: %s", capacity.Errors[0]))
	}

	scheduledMorning := ScheduleActivities(morning, slots.Morning)
	scheduledAfternoon := ScheduleActivities(afternoon, slots.Afternoon)

	placed := len(scheduledMorning) + len(scheduledAfternoon)
	if dropped := len(in.Activities) - placed; dropped > 0 {
		warnings = append(warnings, fmt.Sprintf("%d activities did not fit and were left unscheduled", dropped))
	}

	schedule := &models.DailySchedule{
		Date:          in.Date,
		DayOfWeek:     in.DayOfWeek,
		HasClassToday: slots.HasClassToday,
		MorningSchedule: models.SlotSchedule{
			StartTime:  slots.Morning.StartTime,
			EndTime:    slots.Morning.EndTime,
			Activities: withDefaults(scheduledMorning),
		},
		AfternoonSchedule: models.SlotSchedule{
			StartTime:  slots.Afternoon.StartTime,
			EndTime:    slots.Afternoon.EndTime,
			Activities: withDefaults(scheduledAfternoon),
		},
		Notes:           in.Notes,
		TotalActivities: placed,
	}

	for _, a := range schedule.MorningSchedule.Activities {
		if a.Type == "study" {
			schedule.TotalStudyTime += a.EstimatedDuration
		}
	}
	for _, a := range schedule.AfternoonSchedule.Activities {
		if a.Type == "study" {
			schedule.TotalStudyTime += a.EstimatedDuration
		}
	}

	return schedule, warnings, nil
}

// splitActivities assigns each activity to a half-day bucket. Remaining
// capacity is tracked greedily so "auto" activities spread over both
// windows instead of piling into one.
func splitActivities(activities []models.Activity, slots DaySlots) (morning, afternoon []models.Activity) {
	morningLeft := slots.Morning.DurationMinutes
	afternoonLeft := slots.Afternoon.DurationMinutes

	take := func(bucket *[]models.Activity, left *int, a models.Activity) {
		cost := a.EstimatedDuration
		if len(*bucket) > 0 {
			cost += activityBreakMinutes
		}
		*left -= cost
		*bucket = append(*bucket, a)
	}

	for _, a := range activities {
		switch a.TimeSlot {
		case models.TimeSlotMorning:
			take(&morning, &morningLeft, a)
		case models.TimeSlotAfternoon:
			take(&afternoon, &afternoonLeft, a)
		default:
			if morningLeft >= afternoonLeft {
				take(&morning, &morningLeft, a)
			} else {
				take(&afternoon, &afternoonLeft, a)
			}
		}
	}
	return morning, afternoon
}

func withDefaults(activities []models.Activity) []models.Activity {
	if activities == nil {
		return []models.Activity{}
	}
	for i := range activities {
		if activities[i].Status == "" {
			activities[i].Status = models.StatusPlanned
		}
	}
	return activities
}
