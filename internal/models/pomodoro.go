package models

import (
	"time"

	"github.com/google/uuid"
)

// PomodoroSession is one focus or break interval tracked server-side so that
// dashboards and multi-device sync see the same clock.
type PomodoroSession struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	Phase           string     `json:"phase"` // "work" | "short-break" | "long-break"
	ActivityID      *string    `json:"activity_id,omitempty"`
	ScheduleDate    *string    `json:"schedule_date,omitempty"`
	StartedAt       time.Time  `json:"started_at"`
	LastHeartbeatAt time.Time  `json:"last_heartbeat_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	DurationSeconds int        `json:"duration_seconds"`
	CreatedAt       time.Time  `json:"created_at"`
}
