package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"studyflow-backend/internal/models"
)

// ScheduleRepo persists weekly timetable imports. Courses are stored as one
// JSONB document per import; the week grid is never stored — it is always
// recomputed from the course list.
type ScheduleRepo struct {
	pool *pgxpool.Pool
}

func NewScheduleRepo(pool *pgxpool.Pool) *ScheduleRepo {
	return &ScheduleRepo{pool: pool}
}

func (r *ScheduleRepo) Create(ctx context.Context, imp *models.ScheduleImport) error {
	if imp.ID == uuid.Nil {
		imp.ID = uuid.New()
	}
	if imp.Type == "" {
		imp.Type = "class"
	}

	coursesJSON, err := json.Marshal(imp.Courses)
	if err != nil {
		return fmt.Errorf("failed to marshal courses: %w", err)
	}

	query := `INSERT INTO schedule_imports (id, user_id, name, type, courses_json)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		imp.ID, imp.UserID, imp.Name, imp.Type, coursesJSON,
	).Scan(&imp.CreatedAt, &imp.UpdatedAt)
}

func (r *ScheduleRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.ScheduleImport, error) {
	query := `SELECT id, user_id, name, type, courses_json, created_at, updated_at
		FROM schedule_imports WHERE id = $1 AND user_id = $2`

	return r.scanImport(r.pool.QueryRow(ctx, query, id, userID))
}

// Latest returns the most recently created import of the given type. The
// newest class import is the canonical weekly timetable.
func (r *ScheduleRepo) Latest(ctx context.Context, userID uuid.UUID, importType string) (*models.ScheduleImport, error) {
	query := `SELECT id, user_id, name, type, courses_json, created_at, updated_at
		FROM schedule_imports
		WHERE user_id = $1 AND type = $2
		ORDER BY created_at DESC
		LIMIT 1`

	return r.scanImport(r.pool.QueryRow(ctx, query, userID, importType))
}

func (r *ScheduleRepo) List(ctx context.Context, userID uuid.UUID) ([]models.ScheduleImport, error) {
	query := `SELECT id, user_id, name, type, courses_json, created_at, updated_at
		FROM schedule_imports WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var imports []models.ScheduleImport
	for rows.Next() {
		imp, err := r.scanImport(rows)
		if err != nil {
			return nil, err
		}
		imports = append(imports, *imp)
	}
	return imports, rows.Err()
}

func (r *ScheduleRepo) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM schedule_imports WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ScheduleRepo) scanImport(row rowScanner) (*models.ScheduleImport, error) {
	imp := &models.ScheduleImport{}
	var coursesJSON []byte
	var createdAt, updatedAt time.Time

	err := row.Scan(&imp.ID, &imp.UserID, &imp.Name, &imp.Type, &coursesJSON, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(coursesJSON, &imp.Courses); err != nil {
		return nil, fmt.Errorf("failed to unmarshal courses for import %s: %w", imp.ID, err)
	}
	imp.CreatedAt = createdAt
	imp.UpdatedAt = updatedAt
	return imp, nil
}
