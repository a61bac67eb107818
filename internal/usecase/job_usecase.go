package usecase

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type jobUsecase struct {
	jobRepo domain.JobRepository
}

func NewJobUsecase(jobRepo domain.JobRepository) domain.JobUsecase {
	return &jobUsecase{jobRepo: jobRepo}
}

func (u *jobUsecase) CreateJob(ctx context.Context, actor *domain.User, job *domain.Job) (*domain.JobWithPoster, error) {
	if actor == nil || actor.Role != domain.RoleRecruiter {
		return nil, apperror.Forbidden("Only recruiters can post jobs")
	}

	// Business Validation
	if job.Title == "" {
		return nil, apperror.BadRequest("Title is required")
	}
	if !domain.IsValidJobType(job.JobType) {
		return nil, apperror.BadRequest("Job type must be Full-time, Part-time, Contract, or Remote")
	}
	if job.Tags == nil {
		job.Tags = []string{}
	}

	job.PostedBy = actor.ID
	job.IsActive = true
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}

	return withPoster(job, actor), nil
}

func (u *jobUsecase) GetJob(ctx context.Context, id int64) (*domain.JobWithPoster, error) {
	job, err := u.jobRepo.GetByIDWithPoster(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (u *jobUsecase) ListJobs(ctx context.Context, filter domain.JobFilter) ([]domain.JobWithPoster, error) {
	jobs, err := u.jobRepo.FetchActive(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

func (u *jobUsecase) ListMyJobs(ctx context.Context, actor *domain.User) ([]domain.JobWithPoster, error) {
	if actor == nil || actor.Role != domain.RoleRecruiter {
		return nil, apperror.Forbidden("Only recruiters can access this")
	}
	jobs, err := u.jobRepo.FetchByPoster(ctx, actor.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

// UpdateJob applies a partial field merge. Supplied fields overwrite,
// nil fields are untouched; setting is_active false deactivates the
// posting without deleting it.
func (u *jobUsecase) UpdateJob(ctx context.Context, actor *domain.User, id int64, update domain.JobUpdate) (*domain.JobWithPoster, error) {
	job, err := u.ownedJob(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		job.Title = *update.Title
	}
	if update.Company != nil {
		job.Company = *update.Company
	}
	if update.Location != nil {
		job.Location = *update.Location
	}
	if update.Salary != nil {
		job.Salary = *update.Salary
	}
	if update.Description != nil {
		job.Description = *update.Description
	}
	if update.JobType != nil {
		job.JobType = *update.JobType
	}
	if update.Tags != nil {
		job.Tags = *update.Tags
		if job.Tags == nil {
			job.Tags = []string{}
		}
	}
	if update.IsActive != nil {
		job.IsActive = *update.IsActive
	}

	if job.Title == "" {
		return nil, apperror.BadRequest("Title is required")
	}
	if !domain.IsValidJobType(job.JobType) {
		return nil, apperror.BadRequest("Job type must be Full-time, Part-time, Contract, or Remote")
	}

	job.UpdatedAt = time.Now()
	if err := u.jobRepo.Update(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}

	return withPoster(job, actor), nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, actor *domain.User, id int64) error {
	if _, err := u.ownedJob(ctx, actor, id); err != nil {
		return err
	}
	if err := u.jobRepo.Delete(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// ownedJob loads a job and verifies the actor is the posting
// recruiter. Ownership is immutable after creation, so this check
// cannot be raced by a later transfer.
func (u *jobUsecase) ownedJob(ctx context.Context, actor *domain.User, id int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if actor == nil || actor.Role != domain.RoleRecruiter || job.PostedBy != actor.ID {
		return nil, apperror.Forbidden("Unauthorized")
	}
	return job, nil
}

func withPoster(job *domain.Job, poster *domain.User) *domain.JobWithPoster {
	return &domain.JobWithPoster{
		Job:             *job,
		PosterFirstName: poster.FirstName,
		PosterLastName:  poster.LastName,
		PosterCompany:   poster.Company,
	}
}
