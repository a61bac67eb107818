package domain

import (
	"context"
	"time"
)

// User roles
const (
	RoleCandidate = "candidate"
	RoleRecruiter = "recruiter"
)

// Identity carries the claims resolved from a bearer credential by the
// identity provider. It is the only thing the token contributes; the
// role always comes from the local users table.
type Identity struct {
	SubjectID string
	Email     string
	FirstName string
	LastName  string
}

type User struct {
	ID               int64     `json:"id"`
	SubjectID        string    `json:"subject_id"`
	Email            string    `json:"email"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Role             string    `json:"role"`
	Company          *string   `json:"company,omitempty"` // set iff role = recruiter
	ProfileCompleted bool      `json:"profile_completed"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type UserRepository interface {
	// Upsert creates or overwrites the directory row keyed by subject id.
	Upsert(ctx context.Context, user *User) error
	GetBySubject(ctx context.Context, subjectID string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
}

type UserUsecase interface {
	CompleteProfile(ctx context.Context, ident Identity, role, company string) (*User, error)
	GetBySubject(ctx context.Context, subjectID string) (*User, error)
}
