package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) GetByIDWithPoster(ctx context.Context, id int64) (*domain.JobWithPoster, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobWithPoster), args.Error(1)
}

func (m *MockJobRepo) FetchActive(ctx context.Context, filter domain.JobFilter) ([]domain.JobWithPoster, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobWithPoster), args.Error(1)
}

func (m *MockJobRepo) FetchByPoster(ctx context.Context, posterID int64) ([]domain.JobWithPoster, error) {
	args := m.Called(ctx, posterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobWithPoster), args.Error(1)
}

func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}

func (m *MockApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) GetByJobID(ctx context.Context, jobID int64) ([]domain.Application, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) GetByCandidateID(ctx context.Context, candidateID int64) ([]domain.Application, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Upsert(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetBySubject(ctx context.Context, subjectID string) (*domain.User, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func recruiter(id int64) *domain.User {
	return &domain.User{
		ID:        id,
		SubjectID: "auth0|recruiter",
		Email:     "recruiter@acme.dev",
		FirstName: "Rita",
		LastName:  "Chen",
		Role:      domain.RoleRecruiter,
		Company:   strPtr("Acme"),
	}
}

func candidate(id int64) *domain.User {
	return &domain.User{
		ID:        id,
		SubjectID: "auth0|candidate",
		Email:     "dev@mail.dev",
		FirstName: "Dana",
		LastName:  "Ali",
		Role:      domain.RoleCandidate,
	}
}

func appErrCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T", err)
	}
	return appErr.Code
}

func TestCreateJob(t *testing.T) {
	t.Run("Should fail when actor is not a recruiter", func(t *testing.T) {
		uc := usecase.NewJobUsecase(new(MockJobRepo))
		_, err := uc.CreateJob(context.Background(), candidate(1), &domain.Job{Title: "Backend Dev", JobType: domain.JobTypeFullTime})
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, appErrCode(t, err))
		assert.Contains(t, err.Error(), "Only recruiters can post jobs")
	})

	t.Run("Should fail safe when actor is nil", func(t *testing.T) {
		uc := usecase.NewJobUsecase(new(MockJobRepo))
		_, err := uc.CreateJob(context.Background(), nil, &domain.Job{Title: "Backend Dev", JobType: domain.JobTypeFullTime})
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, appErrCode(t, err))
	})

	t.Run("Should reject unknown job type", func(t *testing.T) {
		uc := usecase.NewJobUsecase(new(MockJobRepo))
		_, err := uc.CreateJob(context.Background(), recruiter(1), &domain.Job{Title: "Backend Dev", JobType: "Freelance"})
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))
	})

	t.Run("Should stamp poster, activate and default tags", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		uc := usecase.NewJobUsecase(mockRepo)
		created, err := uc.CreateJob(context.Background(), recruiter(7), &domain.Job{
			Title:   "Backend Dev",
			Company: "Acme",
			JobType: domain.JobTypeRemote,
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(7), created.PostedBy)
		assert.True(t, created.IsActive)
		assert.NotNil(t, created.Tags)
		assert.Empty(t, created.Tags)
		assert.Equal(t, "Rita", created.PosterFirstName)
		mockRepo.AssertExpectations(t)
	})
}

func TestUpdateJob(t *testing.T) {
	existing := func() *domain.Job {
		return &domain.Job{
			ID:       10,
			Title:    "Backend Dev",
			Company:  "Acme",
			Location: "Berlin",
			Salary:   "90k",
			JobType:  domain.JobTypeFullTime,
			Tags:     []string{"go"},
			PostedBy: 7,
			IsActive: true,
		}
	}

	t.Run("Should fail when actor does not own the job", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		mockRepo.On("GetByID", mock.Anything, int64(10)).Return(existing(), nil)

		uc := usecase.NewJobUsecase(mockRepo)
		_, err := uc.UpdateJob(context.Background(), recruiter(99), 10, domain.JobUpdate{Title: strPtr("New")})
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, appErrCode(t, err))
	})

	t.Run("Should 404 when job is missing", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		mockRepo.On("GetByID", mock.Anything, int64(10)).Return(nil, domain.ErrNotFound)

		uc := usecase.NewJobUsecase(mockRepo)
		_, err := uc.UpdateJob(context.Background(), recruiter(7), 10, domain.JobUpdate{Title: strPtr("New")})
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appErrCode(t, err))
	})

	t.Run("Should merge only the supplied fields", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		mockRepo.On("GetByID", mock.Anything, int64(10)).Return(existing(), nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(j *domain.Job) bool {
			return j.Title == "Senior Backend Dev" && j.Company == "Acme" && j.Location == "Berlin"
		})).Return(nil)

		uc := usecase.NewJobUsecase(mockRepo)
		updated, err := uc.UpdateJob(context.Background(), recruiter(7), 10, domain.JobUpdate{
			Title: strPtr("Senior Backend Dev"),
		})
		assert.NoError(t, err)
		assert.Equal(t, "Senior Backend Dev", updated.Title)
		assert.Equal(t, []string{"go"}, updated.Tags)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should deactivate via is_active", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		mockRepo.On("GetByID", mock.Anything, int64(10)).Return(existing(), nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(j *domain.Job) bool {
			return !j.IsActive
		})).Return(nil)

		uc := usecase.NewJobUsecase(mockRepo)
		updated, err := uc.UpdateJob(context.Background(), recruiter(7), 10, domain.JobUpdate{IsActive: boolPtr(false)})
		assert.NoError(t, err)
		assert.False(t, updated.IsActive)
		mockRepo.AssertExpectations(t)
	})
}

func TestDeleteJob(t *testing.T) {
	t.Run("Should delete own job", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		mockRepo.On("GetByID", mock.Anything, int64(10)).Return(&domain.Job{ID: 10, PostedBy: 7}, nil)
		mockRepo.On("Delete", mock.Anything, int64(10)).Return(nil)

		uc := usecase.NewJobUsecase(mockRepo)
		assert.NoError(t, uc.DeleteJob(context.Background(), recruiter(7), 10))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should refuse a foreign job", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		mockRepo.On("GetByID", mock.Anything, int64(10)).Return(&domain.Job{ID: 10, PostedBy: 7}, nil)

		uc := usecase.NewJobUsecase(mockRepo)
		err := uc.DeleteJob(context.Background(), recruiter(8), 10)
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, appErrCode(t, err))
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestSubmitApplication(t *testing.T) {
	job := &domain.Job{ID: 10, Title: "Backend Dev", Company: "Acme", Location: "Berlin", PostedBy: 7}

	t.Run("Should fail when actor is not a candidate", func(t *testing.T) {
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), new(MockJobRepo))
		_, err := uc.Submit(context.Background(), recruiter(7), 10, "")
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, appErrCode(t, err))
	})

	t.Run("Should 404 when the job is missing", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		mockJobs.On("GetByID", mock.Anything, int64(10)).Return(nil, domain.ErrNotFound)

		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), mockJobs)
		_, err := uc.Submit(context.Background(), candidate(3), 10, "")
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appErrCode(t, err))
		assert.Contains(t, err.Error(), "Job not found")
	})

	t.Run("Should map a duplicate insert to a conflict", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		mockJobs.On("GetByID", mock.Anything, int64(10)).Return(job, nil)
		mockApps := new(MockApplicationRepo)
		mockApps.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicate)

		uc := usecase.NewApplicationUsecase(mockApps, mockJobs)
		_, err := uc.Submit(context.Background(), candidate(3), 10, "")
		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, appErrCode(t, err))
		assert.Contains(t, err.Error(), "Already applied to this job")
	})

	t.Run("Should create pending with job summary attached", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		mockJobs.On("GetByID", mock.Anything, int64(10)).Return(job, nil)
		mockApps := new(MockApplicationRepo)
		mockApps.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Application) bool {
			return a.JobID == 10 && a.CandidateID == 3 && a.Status == domain.ApplicationStatusPending
		})).Return(nil)

		uc := usecase.NewApplicationUsecase(mockApps, mockJobs)
		app, err := uc.Submit(context.Background(), candidate(3), 10, "Hi there")
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusPending, app.Status)
		assert.Equal(t, "Hi there", *app.CoverLetter)
		assert.Equal(t, "Backend Dev", *app.JobTitle)
		assert.Equal(t, "Dana", *app.CandidateFirst)
		mockApps.AssertExpectations(t)
	})

	t.Run("Should apply without a cover letter", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		mockJobs.On("GetByID", mock.Anything, int64(10)).Return(job, nil)
		mockApps := new(MockApplicationRepo)
		// The store column is nullable, so the absent letter goes down
		// as nil rather than an empty string.
		mockApps.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Application) bool {
			return a.CoverLetter == nil && a.Status == domain.ApplicationStatusPending
		})).Return(nil)

		uc := usecase.NewApplicationUsecase(mockApps, mockJobs)
		app, err := uc.Submit(context.Background(), candidate(3), 10, "")
		assert.NoError(t, err)
		assert.Nil(t, app.CoverLetter)
		assert.Equal(t, domain.ApplicationStatusPending, app.Status)
		mockApps.AssertExpectations(t)
	})
}

func TestListForJob(t *testing.T) {
	t.Run("Should refuse a job the actor does not own", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		mockJobs.On("GetByID", mock.Anything, int64(10)).Return(&domain.Job{ID: 10, PostedBy: 7}, nil)

		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), mockJobs)
		_, err := uc.ListForJob(context.Background(), recruiter(8), 10)
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, appErrCode(t, err))
	})

	t.Run("Should report a missing job the same as a foreign one", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		mockJobs.On("GetByID", mock.Anything, int64(10)).Return(nil, domain.ErrNotFound)

		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), mockJobs)
		_, err := uc.ListForJob(context.Background(), recruiter(7), 10)
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, appErrCode(t, err))
	})

	t.Run("Should list applications for an owned job", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		mockJobs.On("GetByID", mock.Anything, int64(10)).Return(&domain.Job{ID: 10, PostedBy: 7}, nil)
		mockApps := new(MockApplicationRepo)
		mockApps.On("GetByJobID", mock.Anything, int64(10)).Return([]domain.Application{{ID: 1, JobID: 10}}, nil)

		uc := usecase.NewApplicationUsecase(mockApps, mockJobs)
		apps, err := uc.ListForJob(context.Background(), recruiter(7), 10)
		assert.NoError(t, err)
		assert.Len(t, apps, 1)
	})
}

func TestSetStatus(t *testing.T) {
	stored := &domain.Application{ID: 5, JobID: 10, CandidateID: 3, Status: domain.ApplicationStatusPending}

	t.Run("Should reject an unknown status before any lookup", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(mockApps, new(MockJobRepo))
		_, err := uc.SetStatus(context.Background(), recruiter(7), 5, "archived")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))
		assert.Contains(t, err.Error(), "Invalid status")
		mockApps.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Should 404 when the application is missing", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockApps.On("GetByID", mock.Anything, int64(5)).Return(nil, domain.ErrNotFound)

		uc := usecase.NewApplicationUsecase(mockApps, new(MockJobRepo))
		_, err := uc.SetStatus(context.Background(), recruiter(7), 5, domain.ApplicationStatusAccepted)
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appErrCode(t, err))
	})

	t.Run("Should refuse the non-owning recruiter", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockApps.On("GetByID", mock.Anything, int64(5)).Return(stored, nil)
		mockJobs := new(MockJobRepo)
		mockJobs.On("GetByID", mock.Anything, int64(10)).Return(&domain.Job{ID: 10, PostedBy: 7}, nil)

		uc := usecase.NewApplicationUsecase(mockApps, mockJobs)
		_, err := uc.SetStatus(context.Background(), recruiter(8), 5, domain.ApplicationStatusAccepted)
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, appErrCode(t, err))
		mockApps.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should allow moving out of a decided state", func(t *testing.T) {
		accepted := &domain.Application{ID: 5, JobID: 10, CandidateID: 3, Status: domain.ApplicationStatusAccepted}
		reverted := &domain.Application{ID: 5, JobID: 10, CandidateID: 3, Status: domain.ApplicationStatusPending}

		mockApps := new(MockApplicationRepo)
		mockApps.On("GetByID", mock.Anything, int64(5)).Return(accepted, nil).Once()
		mockApps.On("UpdateStatus", mock.Anything, int64(5), domain.ApplicationStatusPending).Return(nil)
		mockApps.On("GetByID", mock.Anything, int64(5)).Return(reverted, nil).Once()
		mockJobs := new(MockJobRepo)
		mockJobs.On("GetByID", mock.Anything, int64(10)).Return(&domain.Job{ID: 10, PostedBy: 7}, nil)

		uc := usecase.NewApplicationUsecase(mockApps, mockJobs)
		app, err := uc.SetStatus(context.Background(), recruiter(7), 5, domain.ApplicationStatusPending)
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusPending, app.Status)
		mockApps.AssertExpectations(t)
	})
}

func TestCompleteProfile(t *testing.T) {
	ident := domain.Identity{
		SubjectID: "auth0|abc",
		Email:     "dev@mail.dev",
		FirstName: "Dana",
		LastName:  "Ali",
	}

	t.Run("Should reject an unknown role", func(t *testing.T) {
		uc := usecase.NewUserUsecase(new(MockUserRepo))
		_, err := uc.CompleteProfile(context.Background(), ident, "admin", "")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))
	})

	t.Run("Should require a company for recruiters", func(t *testing.T) {
		uc := usecase.NewUserUsecase(new(MockUserRepo))
		_, err := uc.CompleteProfile(context.Background(), ident, domain.RoleRecruiter, "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Company is required for recruiters")
	})

	t.Run("Should require identity claims", func(t *testing.T) {
		uc := usecase.NewUserUsecase(new(MockUserRepo))
		_, err := uc.CompleteProfile(context.Background(), domain.Identity{SubjectID: "auth0|abc"}, domain.RoleCandidate, "")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))
	})

	t.Run("Should not store a company for candidates", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Company == nil && u.ProfileCompleted
		})).Return(nil)

		uc := usecase.NewUserUsecase(mockRepo)
		user, err := uc.CompleteProfile(context.Background(), ident, domain.RoleCandidate, "Ignored Inc")
		assert.NoError(t, err)
		assert.Nil(t, user.Company)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should map a duplicate email to a conflict", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("Upsert", mock.Anything, mock.Anything).Return(domain.ErrDuplicate)

		uc := usecase.NewUserUsecase(mockRepo)
		_, err := uc.CompleteProfile(context.Background(), ident, domain.RoleRecruiter, "Acme")
		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, appErrCode(t, err))
	})
}
