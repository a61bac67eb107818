package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("uniqueness constraint violated")
)

// Job types
const (
	JobTypeFullTime = "Full-time"
	JobTypePartTime = "Part-time"
	JobTypeContract = "Contract"
	JobTypeRemote   = "Remote"
)

func IsValidJobType(t string) bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeRemote:
		return true
	}
	return false
}

type Job struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Salary      string    `json:"salary"`
	Description string    `json:"description"`
	JobType     string    `json:"job_type"`
	Tags        []string  `json:"tags"`
	PostedBy    int64     `json:"posted_by"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// JobWithPoster extends Job with the posting recruiter's summary
type JobWithPoster struct {
	Job
	PosterFirstName string  `json:"poster_first_name"`
	PosterLastName  string  `json:"poster_last_name"`
	PosterCompany   *string `json:"poster_company,omitempty"`
}

// JobFilter holds the public listing filters. Zero values are no-ops;
// set filters are ANDed.
type JobFilter struct {
	Search   string   // case-insensitive substring on title OR company
	Location string   // case-insensitive substring
	JobType  string   // exact match
	Tags     []string // matches jobs whose tag list intersects this set
}

// JobUpdate carries a partial update; nil fields are left untouched.
type JobUpdate struct {
	Title       *string   `json:"title"`
	Company     *string   `json:"company"`
	Location    *string   `json:"location"`
	Salary      *string   `json:"salary"`
	Description *string   `json:"description"`
	JobType     *string   `json:"job_type"`
	Tags        *[]string `json:"tags"`
	IsActive    *bool     `json:"is_active"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	GetByIDWithPoster(ctx context.Context, id int64) (*JobWithPoster, error)
	FetchActive(ctx context.Context, filter JobFilter) ([]JobWithPoster, error)
	FetchByPoster(ctx context.Context, posterID int64) ([]JobWithPoster, error)
	Update(ctx context.Context, job *Job) error
	// Delete removes the job and its applications in one transaction.
	Delete(ctx context.Context, id int64) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, actor *User, job *Job) (*JobWithPoster, error)
	GetJob(ctx context.Context, id int64) (*JobWithPoster, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]JobWithPoster, error)
	ListMyJobs(ctx context.Context, actor *User) ([]JobWithPoster, error)
	UpdateJob(ctx context.Context, actor *User, id int64, update JobUpdate) (*JobWithPoster, error)
	DeleteJob(ctx context.Context, actor *User, id int64) error
}
