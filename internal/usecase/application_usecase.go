package usecase

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(appRepo domain.ApplicationRepository, jobRepo domain.JobRepository) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
	}
}

// Submit creates a pending application for the candidate. There is no
// pre-check for a duplicate: the store's unique (job, candidate)
// constraint is the arbiter, so a concurrent double-submit still
// yields exactly one row and one Conflict.
func (uc *applicationUsecase) Submit(ctx context.Context, actor *domain.User, jobID int64, coverLetter string) (*domain.Application, error) {
	if actor == nil || actor.Role != domain.RoleCandidate {
		return nil, apperror.Forbidden("Only candidates can apply to jobs")
	}

	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}

	var coverLetterPtr *string
	if coverLetter != "" {
		coverLetterPtr = &coverLetter
	}

	app := &domain.Application{
		JobID:       jobID,
		CandidateID: actor.ID,
		Status:      domain.ApplicationStatusPending,
		CoverLetter: coverLetterPtr,
	}

	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("Already applied to this job")
		}
		return nil, apperror.Internal(err)
	}

	// Attach the job and candidate summaries for the response
	app.JobTitle = &job.Title
	app.JobCompany = &job.Company
	app.JobLocation = &job.Location
	app.CandidateFirst = &actor.FirstName
	app.CandidateLast = &actor.LastName
	app.CandidateEmail = &actor.Email

	return app, nil
}

// ListMine returns the candidate's applications, newest first, each
// with an embedded job summary
func (uc *applicationUsecase) ListMine(ctx context.Context, actor *domain.User) ([]domain.Application, error) {
	if actor == nil || actor.Role != domain.RoleCandidate {
		return nil, apperror.Forbidden("Only candidates can access this")
	}
	apps, err := uc.applicationRepo.GetByCandidateID(ctx, actor.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// ListForJob returns all applications for a job, restricted to the
// recruiter owning it. A missing job is reported the same way as a
// foreign job so the endpoint does not leak which ids exist.
func (uc *applicationUsecase) ListForJob(ctx context.Context, actor *domain.User, jobID int64) ([]domain.Application, error) {
	if err := uc.requireJobOwner(ctx, actor, jobID); err != nil {
		return nil, err
	}
	apps, err := uc.applicationRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// SetStatus overwrites an application's status. Any of the four
// states may be set from any other state; accepted and rejected are
// not terminal and setting the current value again is a no-op success.
func (uc *applicationUsecase) SetStatus(ctx context.Context, actor *domain.User, applicationID int64, status string) (*domain.Application, error) {
	if !domain.IsValidApplicationStatus(status) {
		return nil, apperror.BadRequest("Invalid status. Must be: pending, reviewed, accepted, or rejected")
	}

	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}

	if err := uc.requireJobOwner(ctx, actor, app.JobID); err != nil {
		return nil, err
	}

	if err := uc.applicationRepo.UpdateStatus(ctx, applicationID, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}

	updated, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return updated, nil
}

// requireJobOwner verifies the actor is the recruiter who posted the
// job. The lookup is not transactional with the subsequent write, but
// ownership never changes after creation so the window is benign.
func (uc *applicationUsecase) requireJobOwner(ctx context.Context, actor *domain.User, jobID int64) error {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.Forbidden("Unauthorized")
		}
		return apperror.Internal(err)
	}
	if actor == nil || actor.Role != domain.RoleRecruiter || job.PostedBy != actor.ID {
		return apperror.Forbidden("Unauthorized")
	}
	return nil
}
