package models

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleEntry is one parsed (day, periods, room) meeting time of a course.
// Day uses the domain convention 2=Monday .. 7=Saturday; Periods is a
// contiguous run of period numbers within 1..10.
type ScheduleEntry struct {
	Day     int    `json:"day"`
	Periods []int  `json:"periods"`
	Room    string `json:"room,omitempty"`
}

// WeekRange is an inclusive span of teaching weeks, e.g. 22-27.
type WeekRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type Course struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Code            string          `json:"code,omitempty"`
	Credits         int             `json:"credits,omitempty"`
	Instructor      string          `json:"instructor,omitempty"`
	ScheduleEntries []ScheduleEntry `json:"schedule_entries"`
	WeekRanges      []WeekRange     `json:"week_ranges,omitempty"`
	Color           string          `json:"color,omitempty"`
}

// ScheduleImport is one imported weekly timetable. The week grid is always
// recomputed from Courses and never stored alongside it.
type ScheduleImport struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"` // "class"
	Courses   []Course  `json:"courses"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RawCourseRow is one spreadsheet row as extracted by the xlsx adapter.
// Cell strings only; all interpretation happens in internal/timetable.
type RawCourseRow struct {
	Name         string `json:"name"`
	Code         string `json:"code"`
	CreditsText  string `json:"credits"`
	Instructor   string `json:"instructor"`
	ScheduleText string `json:"schedule_text"`
	WeekText     string `json:"week_text"`
}
