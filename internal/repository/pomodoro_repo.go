package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"studyflow-backend/internal/models"
)

// Sessions longer than 4 hours are treated as abandoned and capped.
const maxSessionSeconds = 14400

type PomodoroRepo struct {
	pool *pgxpool.Pool
}

func NewPomodoroRepo(pool *pgxpool.Pool) *PomodoroRepo {
	return &PomodoroRepo{pool: pool}
}

func (r *PomodoroRepo) Start(ctx context.Context, s *models.PomodoroSession) error {
	// Close any session still running for this user (idempotent behavior —
	// a new timer always supersedes a stale one).
	_, _ = r.pool.Exec(ctx, `
		UPDATE pomodoro_sessions
		SET ended_at = NOW(),
			duration_seconds = GREATEST(0, LEAST($1, EXTRACT(EPOCH FROM (NOW() - started_at))::INT)),
			last_heartbeat_at = NOW()
		WHERE user_id = $2
		  AND ended_at IS NULL
	`, maxSessionSeconds, s.UserID)

	query := `
		INSERT INTO pomodoro_sessions (user_id, phase, activity_id, schedule_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, started_at, last_heartbeat_at, created_at
	`

	return r.pool.QueryRow(ctx, query, s.UserID, s.Phase, s.ActivityID, s.ScheduleDate).Scan(
		&s.ID,
		&s.StartedAt,
		&s.LastHeartbeatAt,
		&s.CreatedAt,
	)
}

func (r *PomodoroRepo) Heartbeat(ctx context.Context, sessionID, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE pomodoro_sessions
		SET last_heartbeat_at = NOW()
		WHERE id = $1
		  AND user_id = $2
		  AND ended_at IS NULL
	`, sessionID, userID)
	return err
}

func (r *PomodoroRepo) Stop(ctx context.Context, sessionID, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE pomodoro_sessions
		SET ended_at = CASE WHEN ended_at IS NULL THEN NOW() ELSE ended_at END,
			last_heartbeat_at = NOW(),
			duration_seconds = CASE
				WHEN ended_at IS NULL THEN GREATEST(0, LEAST($3, EXTRACT(EPOCH FROM (NOW() - started_at))::INT))
				ELSE duration_seconds
			END
		WHERE id = $1
		  AND user_id = $2
	`, sessionID, userID, maxSessionSeconds)
	return err
}

// FocusSecondsSince sums completed work-phase time from the given moment.
func (r *PomodoroRepo) FocusSecondsSince(ctx context.Context, userID uuid.UUID, interval string) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(duration_seconds), 0)
		FROM pomodoro_sessions
		WHERE user_id = $1
		  AND phase = 'work'
		  AND ended_at IS NOT NULL
		  AND started_at >= NOW() - $2::INTERVAL
	`, userID, interval).Scan(&total)
	return total, err
}
