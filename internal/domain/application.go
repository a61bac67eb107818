package domain

import (
	"context"
	"time"
)

// Application status constants. Transitions are deliberately
// unrestricted: a reviewer may move an application between any of the
// four states, and none of them is terminal.
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusReviewed = "reviewed"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

func IsValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewed,
		ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

// Application links one candidate to one job. The (JobID, CandidateID)
// pair is unique, enforced by the store at insert time.
type Application struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"job_id"`
	CandidateID int64     `json:"candidate_id"`
	Status      string    `json:"status"`
	CoverLetter *string   `json:"cover_letter,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined data for list responses
	JobTitle       *string `json:"job_title,omitempty"`
	JobCompany     *string `json:"job_company,omitempty"`
	JobLocation    *string `json:"job_location,omitempty"`
	JobSalary      *string `json:"job_salary,omitempty"`
	JobType        *string `json:"job_type,omitempty"`
	CandidateFirst *string `json:"candidate_first_name,omitempty"`
	CandidateLast  *string `json:"candidate_last_name,omitempty"`
	CandidateEmail *string `json:"candidate_email,omitempty"`
}

// ApplicationRepository defines data access methods for applications.
// Create must return ErrDuplicate when the (job, candidate) uniqueness
// constraint rejects the insert, so callers can map it to a Conflict
// instead of guessing from a generic failure.
type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	GetByJobID(ctx context.Context, jobID int64) ([]Application, error)
	GetByCandidateID(ctx context.Context, candidateID int64) ([]Application, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type ApplicationUsecase interface {
	// Candidate operations
	Submit(ctx context.Context, actor *User, jobID int64, coverLetter string) (*Application, error)
	ListMine(ctx context.Context, actor *User) ([]Application, error)

	// Recruiter operations
	ListForJob(ctx context.Context, actor *User, jobID int64) ([]Application, error)
	SetStatus(ctx context.Context, actor *User, applicationID int64, status string) (*Application, error)
}
