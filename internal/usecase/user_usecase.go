package usecase

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type userUsecase struct {
	userRepo domain.UserRepository
}

func NewUserUsecase(userRepo domain.UserRepository) domain.UserUsecase {
	return &userUsecase{userRepo: userRepo}
}

// CompleteProfile upserts the directory record for the authenticated
// subject. Repeating the call overwrites role and company in place
// (last write wins); there is no separate role-change workflow.
func (u *userUsecase) CompleteProfile(ctx context.Context, ident domain.Identity, role, company string) (*domain.User, error) {
	if role != domain.RoleCandidate && role != domain.RoleRecruiter {
		return nil, apperror.BadRequest("Role is required and must be candidate or recruiter")
	}
	if role == domain.RoleRecruiter && company == "" {
		return nil, apperror.BadRequest("Company is required for recruiters")
	}
	if ident.Email == "" || ident.FirstName == "" || ident.LastName == "" {
		return nil, apperror.BadRequest("Missing required user details (email, first name, or last name)")
	}

	user := &domain.User{
		SubjectID:        ident.SubjectID,
		Email:            ident.Email,
		FirstName:        ident.FirstName,
		LastName:         ident.LastName,
		Role:             role,
		ProfileCompleted: true,
	}
	if role == domain.RoleRecruiter {
		user.Company = &company
	}

	if err := u.userRepo.Upsert(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("A user with this email already exists")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (u *userUsecase) GetBySubject(ctx context.Context, subjectID string) (*domain.User, error) {
	user, err := u.userRepo.GetBySubject(ctx, subjectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}
