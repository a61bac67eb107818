package postgres

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

// Upsert creates or overwrites the directory row keyed by subject id.
// A unique violation here can only come from the email column (same
// address under a different subject) and surfaces as ErrDuplicate.
func (r *userRepo) Upsert(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (subject_id, email, first_name, last_name, role, company, profile_completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		ON CONFLICT (subject_id) DO UPDATE SET
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			role = EXCLUDED.role,
			company = EXCLUDED.company,
			profile_completed = EXCLUDED.profile_completed,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at`

	now := time.Now()
	err := r.db.QueryRow(ctx, query,
		user.SubjectID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Role,
		user.Company,
		user.ProfileCompleted,
		now,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *userRepo) GetBySubject(ctx context.Context, subjectID string) (*domain.User, error) {
	query := `SELECT id, subject_id, email, first_name, last_name, role, company, profile_completed, created_at, updated_at
	          FROM users WHERE subject_id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, subjectID))
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT id, subject_id, email, first_name, last_name, role, company, profile_completed, created_at, updated_at
	          FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *userRepo) scanOne(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.SubjectID, &user.Email, &user.FirstName, &user.LastName,
		&user.Role, &user.Company, &user.ProfileCompleted, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
