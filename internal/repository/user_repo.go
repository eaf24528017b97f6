package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"studyflow-backend/internal/models"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.New()
	user.IsActive = true
	user.RemindersOptIn = true

	query := `INSERT INTO users (id, email, password_hash, full_name, is_active, reminders_opt_in)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FullName, user.IsActive, user.RemindersOptIn,
	).Scan(&user.CreatedAt)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password_hash, full_name, is_active, reminders_opt_in, created_at, last_login_at
		FROM users WHERE email = $1`

	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FullName,
		&user.IsActive, &user.RemindersOptIn, &user.CreatedAt, &user.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password_hash, full_name, is_active, reminders_opt_in, created_at, last_login_at
		FROM users WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FullName,
		&user.IsActive, &user.RemindersOptIn, &user.CreatedAt, &user.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepo) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "UPDATE users SET last_login_at = $1 WHERE id = $2", time.Now(), userID)
	return err
}

func (r *UserRepo) SetRemindersOptIn(ctx context.Context, userID uuid.UUID, optIn bool) error {
	_, err := r.pool.Exec(ctx, "UPDATE users SET reminders_opt_in = $1 WHERE id = $2", optIn, userID)
	return err
}

// ListReminderRecipients returns active, opted-in users who have at least
// one class-type schedule import, i.e. people worth reminding to plan
// tomorrow.
func (r *UserRepo) ListReminderRecipients(ctx context.Context) ([]models.User, error) {
	query := `SELECT DISTINCT u.id, u.email, u.full_name
		FROM users u
		JOIN schedule_imports si ON si.user_id = u.id AND si.type = 'class'
		WHERE u.is_active = TRUE AND u.reminders_opt_in = TRUE`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FullName); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
