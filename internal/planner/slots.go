// Package planner holds the pure daily-planning domain: free-window
// calculation around class commitments, activity validation and
// sanitization, and the greedy activity scheduler. All computation is
// minute-precision within a single day; there is no midnight rollover.
package planner

import (
	"fmt"
	"strconv"
	"strings"

	"studyflow-backend/internal/models"
	"studyflow-backend/internal/timetable"
)

// Fixed planning bounds and spacing.
const (
	wakeTime   = "05:00"
	sleepTime  = "23:00"
	middayTime = "12:00"

	// Transit/prep buffer around the class block.
	transitBufferMinutes = 30
	// Break inserted between consecutive scheduled activities.
	activityBreakMinutes = 10

	minActivityMinutes = 15
	maxActivityMinutes = 480
)

// TimeSlot is a contiguous window of a day. A zero or negative duration is a
// valid value meaning "no usable window"; callers treat it as zero capacity.
type TimeSlot struct {
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`
}

// ClassOccurrence is one course's presence on a specific day, collapsed to a
// single start/end pair across all of its entries for that day.
type ClassOccurrence struct {
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name"`
	Room       string `json:"room,omitempty"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

// DaySlots is the derived free-window layout of one day.
type DaySlots struct {
	HasClassToday bool     `json:"has_class_today"`
	Morning       TimeSlot `json:"morning"`
	Afternoon     TimeSlot `json:"afternoon"`
}

// minutesOf parses "HH:MM" into minutes since midnight. Malformed input
// yields -1, which downstream arithmetic surfaces as an unusable window.
func minutesOf(clock string) int {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return -1
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return -1
	}
	return h*60 + m
}

func clockOf(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func slotBetween(startMin, endMin int) TimeSlot {
	return TimeSlot{
		StartTime:       clockOf(startMin),
		EndTime:         clockOf(endMin),
		DurationMinutes: endMin - startMin,
	}
}

// OccurrencesOn derives the class occurrences for one domain day from a
// course list. Per course the start is the earliest matching period's start
// and the end is the start of the period after the latest one (back-to-back
// convention). Courses without a matching entry are absent from the result.
func OccurrencesOn(courses []models.Course, day int) []ClassOccurrence {
	var occurrences []ClassOccurrence
	for _, course := range courses {
		minPeriod, maxPeriod := 0, 0
		room := ""
		for _, entry := range course.ScheduleEntries {
			if entry.Day != day || len(entry.Periods) == 0 {
				continue
			}
			for _, p := range entry.Periods {
				if p < timetable.PeriodMin || p > timetable.PeriodMax {
					continue
				}
				if minPeriod == 0 || p < minPeriod {
					minPeriod = p
				}
				if p > maxPeriod {
					maxPeriod = p
				}
			}
			if room == "" {
				room = entry.Room
			}
		}
		if minPeriod == 0 {
			continue
		}

		start, _ := timetable.PeriodTime(minPeriod)
		occurrences = append(occurrences, ClassOccurrence{
			CourseID:   course.ID,
			CourseName: course.Name,
			Room:       room,
			StartTime:  start,
			EndTime:    timetable.ClassEndTime(maxPeriod),
		})
	}
	return occurrences
}

// ComputeSlots derives the morning and afternoon free windows of a day.
// With classes, the morning ends 30 minutes before the earliest class and
// the afternoon starts 30 minutes after the latest one; without classes the
// free day is split at noon. Day bounds are fixed at 05:00 and 23:00.
func ComputeSlots(occurrences []ClassOccurrence) DaySlots {
	wake := minutesOf(wakeTime)
	sleep := minutesOf(sleepTime)

	if len(occurrences) == 0 {
		midday := minutesOf(middayTime)
		return DaySlots{
			HasClassToday: false,
			Morning:       slotBetween(wake, midday),
			Afternoon:     slotBetween(midday, sleep),
		}
	}

	earliest, latest := -1, -1
	for _, occ := range occurrences {
		start := minutesOf(occ.StartTime)
		end := minutesOf(occ.EndTime)
		if earliest == -1 || start < earliest {
			earliest = start
		}
		if end > latest {
			latest = end
		}
	}

	return DaySlots{
		HasClassToday: true,
		Morning:       slotBetween(wake, earliest-transitBufferMinutes),
		Afternoon:     slotBetween(latest+transitBufferMinutes, sleep),
	}
}
