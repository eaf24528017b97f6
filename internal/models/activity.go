package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity type, priority, time-slot and status vocabularies. Validation
// lives in internal/planner; these are the canonical value sets.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"

	TimeSlotMorning   = "morning"
	TimeSlotAfternoon = "afternoon"
	TimeSlotAuto      = "auto"

	StatusPlanned    = "planned"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusSkipped    = "skipped"
)

// Activity is a user-planned task to be placed inside a free time slot.
// ScheduledTime/ScheduledEndTime are stamped by the scheduler.
type Activity struct {
	ID                string `json:"id"`
	Type              string `json:"type"` // study | exercise | meal | review | reading | personal | rest
	CourseID          string `json:"course_id,omitempty"`
	CourseName        string `json:"course_name,omitempty"`
	Topic             string `json:"topic,omitempty"`
	Content           string `json:"content,omitempty"`
	Priority          string `json:"priority,omitempty"`
	EstimatedDuration int    `json:"estimated_duration"` // minutes, 15..480
	TimeSlot          string `json:"time_slot,omitempty"` // morning | afternoon | auto
	Status            string `json:"status,omitempty"`
	ScheduledTime     string `json:"scheduled_time,omitempty"`
	ScheduledEndTime  string `json:"scheduled_end_time,omitempty"`
}

// SlotSchedule is one half-day window with the activities placed into it.
type SlotSchedule struct {
	StartTime  string     `json:"start_time"`
	EndTime    string     `json:"end_time"`
	Activities []Activity `json:"activities"`
}

// DailySchedule is the composed plan for one calendar date. One row per
// (user, date).
type DailySchedule struct {
	ID                  uuid.UUID    `json:"id"`
	UserID              uuid.UUID    `json:"user_id"`
	Date                string       `json:"date"` // YYYY-MM-DD
	DayOfWeek           int          `json:"day_of_week"`
	HasClassToday       bool         `json:"has_class_today"`
	MorningSchedule     SlotSchedule `json:"morning_schedule"`
	AfternoonSchedule   SlotSchedule `json:"afternoon_schedule"`
	Notes               string       `json:"notes,omitempty"`
	TotalStudyTime      int          `json:"total_study_time"` // minutes
	CompletedActivities int          `json:"completed_activities"`
	TotalActivities     int          `json:"total_activities"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}
