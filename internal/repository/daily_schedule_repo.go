package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studyflow-backend/internal/models"
)

// DailyScheduleRepo persists composed day plans, one row per (user, date).
type DailyScheduleRepo struct {
	pool *pgxpool.Pool
}

func NewDailyScheduleRepo(pool *pgxpool.Pool) *DailyScheduleRepo {
	return &DailyScheduleRepo{pool: pool}
}

// Save inserts the schedule or replaces an existing one for the same date.
// Recomposing a day is a full overwrite, never a partial merge.
func (r *DailyScheduleRepo) Save(ctx context.Context, s *models.DailySchedule) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	morningJSON, err := json.Marshal(s.MorningSchedule)
	if err != nil {
		return fmt.Errorf("failed to marshal morning schedule: %w", err)
	}
	afternoonJSON, err := json.Marshal(s.AfternoonSchedule)
	if err != nil {
		return fmt.Errorf("failed to marshal afternoon schedule: %w", err)
	}

	query := `INSERT INTO daily_schedules
			(id, user_id, date, day_of_week, has_class_today, morning_json, afternoon_json,
			 notes, total_study_time, completed_activities, total_activities)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id, date) DO UPDATE SET
			day_of_week = EXCLUDED.day_of_week,
			has_class_today = EXCLUDED.has_class_today,
			morning_json = EXCLUDED.morning_json,
			afternoon_json = EXCLUDED.afternoon_json,
			notes = EXCLUDED.notes,
			total_study_time = EXCLUDED.total_study_time,
			completed_activities = EXCLUDED.completed_activities,
			total_activities = EXCLUDED.total_activities,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		s.ID, s.UserID, s.Date, s.DayOfWeek, s.HasClassToday, morningJSON, afternoonJSON,
		s.Notes, s.TotalStudyTime, s.CompletedActivities, s.TotalActivities,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *DailyScheduleRepo) GetByDate(ctx context.Context, userID uuid.UUID, date string) (*models.DailySchedule, error) {
	s := &models.DailySchedule{}
	var morningJSON, afternoonJSON []byte

	query := `SELECT id, user_id, date, day_of_week, has_class_today, morning_json, afternoon_json,
			notes, total_study_time, completed_activities, total_activities, created_at, updated_at
		FROM daily_schedules WHERE user_id = $1 AND date = $2`

	err := r.pool.QueryRow(ctx, query, userID, date).Scan(
		&s.ID, &s.UserID, &s.Date, &s.DayOfWeek, &s.HasClassToday, &morningJSON, &afternoonJSON,
		&s.Notes, &s.TotalStudyTime, &s.CompletedActivities, &s.TotalActivities,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(morningJSON, &s.MorningSchedule); err != nil {
		return nil, fmt.Errorf("failed to unmarshal morning schedule: %w", err)
	}
	if err := json.Unmarshal(afternoonJSON, &s.AfternoonSchedule); err != nil {
		return nil, fmt.Errorf("failed to unmarshal afternoon schedule: %w", err)
	}
	return s, nil
}

// UpdateActivityStatus flips one activity's status inside the stored day and
// recomputes the completion counter. Returns pgx.ErrNoRows when neither
// bucket contains the activity.
func (r *DailyScheduleRepo) UpdateActivityStatus(ctx context.Context, userID uuid.UUID, date, activityID, status string) (*models.DailySchedule, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	s := &models.DailySchedule{}
	var morningJSON, afternoonJSON []byte

	err = tx.QueryRow(ctx, `SELECT id, user_id, date, day_of_week, has_class_today, morning_json, afternoon_json,
			notes, total_study_time, completed_activities, total_activities, created_at, updated_at
		FROM daily_schedules WHERE user_id = $1 AND date = $2 FOR UPDATE`, userID, date).Scan(
		&s.ID, &s.UserID, &s.Date, &s.DayOfWeek, &s.HasClassToday, &morningJSON, &afternoonJSON,
		&s.Notes, &s.TotalStudyTime, &s.CompletedActivities, &s.TotalActivities,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(morningJSON, &s.MorningSchedule); err != nil {
		return nil, fmt.Errorf("failed to unmarshal morning schedule: %w", err)
	}
	if err := json.Unmarshal(afternoonJSON, &s.AfternoonSchedule); err != nil {
		return nil, fmt.Errorf("failed to unmarshal afternoon schedule: %w", err)
	}

	found := setActivityStatus(s.MorningSchedule.Activities, activityID, status) ||
		setActivityStatus(s.AfternoonSchedule.Activities, activityID, status)
	if !found {
		return nil, pgx.ErrNoRows
	}

	completed := 0
	for _, a := range s.MorningSchedule.Activities {
		if a.Status == models.StatusCompleted {
			completed++
		}
	}
	for _, a := range s.AfternoonSchedule.Activities {
		if a.Status == models.StatusCompleted {
			completed++
		}
	}
	s.CompletedActivities = completed

	newMorning, err := json.Marshal(s.MorningSchedule)
	if err != nil {
		return nil, err
	}
	newAfternoon, err := json.Marshal(s.AfternoonSchedule)
	if err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, `UPDATE daily_schedules
		SET morning_json = $1, afternoon_json = $2, completed_activities = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at`, newMorning, newAfternoon, completed, s.ID).Scan(&s.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return s, tx.Commit(ctx)
}

// RecentDates lists the user's schedule dates with at least one completed
// activity, newest first. Used for streak computation.
func (r *DailyScheduleRepo) RecentDates(ctx context.Context, userID uuid.UUID, limit int) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT date FROM daily_schedules
		WHERE user_id = $1 AND completed_activities > 0
		ORDER BY date DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func setActivityStatus(activities []models.Activity, activityID, status string) bool {
	for i := range activities {
		if activities[i].ID == activityID {
			activities[i].Status = status
			return true
		}
	}
	return false
}
