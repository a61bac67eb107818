package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (title, company, location, salary, description, job_type, tags, posted_by, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	return r.db.QueryRow(ctx, query,
		job.Title, job.Company, job.Location, job.Salary, job.Description,
		job.JobType, job.Tags, job.PostedBy, job.IsActive,
		job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT id, title, company, location, salary, description, job_type, tags, posted_by, is_active, created_at, updated_at
	          FROM jobs WHERE id = $1`
	var job domain.Job
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.Title, &job.Company, &job.Location, &job.Salary, &job.Description,
		&job.JobType, &job.Tags, &job.PostedBy, &job.IsActive, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// GetByIDWithPoster retrieves a job with the posting recruiter's summary
func (r *jobRepo) GetByIDWithPoster(ctx context.Context, id int64) (*domain.JobWithPoster, error) {
	query := selectWithPoster + ` WHERE j.id = $1`
	var job domain.JobWithPoster
	err := r.db.QueryRow(ctx, query, id).Scan(scanWithPoster(&job)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

const selectWithPoster = `
	SELECT
		j.id, j.title, j.company, j.location, j.salary, j.description,
		j.job_type, j.tags, j.posted_by, j.is_active, j.created_at, j.updated_at,
		u.first_name, u.last_name, u.company
	FROM jobs j
	JOIN users u ON j.posted_by = u.id`

func scanWithPoster(job *domain.JobWithPoster) []interface{} {
	return []interface{}{
		&job.ID, &job.Title, &job.Company, &job.Location, &job.Salary, &job.Description,
		&job.JobType, &job.Tags, &job.PostedBy, &job.IsActive, &job.CreatedAt, &job.UpdatedAt,
		&job.PosterFirstName, &job.PosterLastName, &job.PosterCompany,
	}
}

// FetchActive retrieves active jobs matching the filter, newest first.
func (r *jobRepo) FetchActive(ctx context.Context, filter domain.JobFilter) ([]domain.JobWithPoster, error) {
	query, args := activeJobsQuery(filter)
	return r.fetch(ctx, query, args...)
}

// activeJobsQuery builds the public listing query. Filters are ANDed;
// zero-valued filters add no condition.
func activeJobsQuery(filter domain.JobFilter) (string, []interface{}) {
	query := selectWithPoster + ` WHERE j.is_active = TRUE`
	var args []interface{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND (j.title ILIKE $%d OR j.company ILIKE $%d)", len(args), len(args))
	}
	if filter.Location != "" {
		args = append(args, "%"+filter.Location+"%")
		query += fmt.Sprintf(" AND j.location ILIKE $%d", len(args))
	}
	if filter.JobType != "" {
		args = append(args, filter.JobType)
		query += fmt.Sprintf(" AND j.job_type = $%d", len(args))
	}
	if len(filter.Tags) > 0 {
		// Array overlap: the job's tag list intersects the requested set
		args = append(args, filter.Tags)
		query += fmt.Sprintf(" AND j.tags && $%d", len(args))
	}

	query += ` ORDER BY j.created_at DESC`

	return query, args
}

// FetchByPoster retrieves all jobs (active or not) posted by a recruiter, newest first
func (r *jobRepo) FetchByPoster(ctx context.Context, posterID int64) ([]domain.JobWithPoster, error) {
	query := selectWithPoster + ` WHERE j.posted_by = $1 ORDER BY j.created_at DESC`
	return r.fetch(ctx, query, posterID)
}

func (r *jobRepo) fetch(ctx context.Context, query string, args ...interface{}) ([]domain.JobWithPoster, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Non-nil so an empty result serializes as [] rather than null
	jobs := make([]domain.JobWithPoster, 0)
	for rows.Next() {
		var job domain.JobWithPoster
		if err := rows.Scan(scanWithPoster(&job)...); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `UPDATE jobs SET
		title = $2,
		company = $3,
		location = $4,
		salary = $5,
		description = $6,
		job_type = $7,
		tags = $8,
		is_active = $9,
		updated_at = $10
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Company, job.Location, job.Salary, job.Description,
		job.JobType, job.Tags, job.IsActive, job.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the job and its applications in one transaction so no
// application is left referencing a missing job.
func (r *jobRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM applications WHERE job_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit(ctx)
}
