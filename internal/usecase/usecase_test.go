package usecase_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"clinic-portal-backend/internal/domain"
	"clinic-portal-backend/internal/usecase"
	"clinic-portal-backend/pkg/auth"
	"clinic-portal-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	return m.Called(ctx, account).Error(0)
}
func (m *MockAccountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}
func (m *MockAccountRepo) Update(ctx context.Context, account *domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetClinicByAccountID(ctx context.Context, accountID string) (*domain.ClinicProfile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClinicProfile), args.Error(1)
}
func (m *MockProfileRepo) GetEmployerByAccountID(ctx context.Context, accountID string) (*domain.EmployerProfile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployerProfile), args.Error(1)
}
func (m *MockProfileRepo) GetJobSeekerByAccountID(ctx context.Context, accountID string) (*domain.JobSeekerProfile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobSeekerProfile), args.Error(1)
}
func (m *MockProfileRepo) CreateClinic(ctx context.Context, p *domain.ClinicProfile) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockProfileRepo) CreateEmployer(ctx context.Context, p *domain.EmployerProfile) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockProfileRepo) CreateJobSeeker(ctx context.Context, p *domain.JobSeekerProfile) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockProfileRepo) UpdateClinic(ctx context.Context, p *domain.ClinicProfile) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockProfileRepo) UpdateEmployer(ctx context.Context, p *domain.EmployerProfile) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockProfileRepo) UpdateJobSeeker(ctx context.Context, p *domain.JobSeekerProfile) error {
	return m.Called(ctx, p).Error(0)
}

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
func (m *MockJobRepo) Fetch(ctx context.Context, filter domain.JobFilter, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}
func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return m.Called(ctx, id, active).Error(0)
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
func (m *MockApplicationRepo) GetByApplicantID(ctx context.Context, applicantID string) ([]domain.Application, error) {
	args := m.Called(ctx, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) CheckExists(ctx context.Context, jobID int64, applicantID string) (bool, error) {
	args := m.Called(ctx, jobID, applicantID)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status string, notes *string) error {
	return m.Called(ctx, id, status, notes).Error(0)
}

type MockAdminRepo struct {
	mock.Mock
}

func (m *MockAdminRepo) GetStats(ctx context.Context) (*domain.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}
func (m *MockAdminRepo) DailyRegistrations(ctx context.Context, days int) ([]domain.DailyRegistration, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyRegistration), args.Error(1)
}
func (m *MockAdminRepo) ListAccounts(ctx context.Context, filter domain.AccountFilter, limit, offset int) ([]domain.Account, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Account), args.Get(1).(int64), args.Error(2)
}
func (m *MockAdminRepo) AllAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAdminRepo) ToggleAccountActive(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}
func (m *MockAdminRepo) DeleteAccount(ctx context.Context, accountID string) error {
	return m.Called(ctx, accountID).Error(0)
}

// Test fixtures

const testSecret = "test-secret"

func newAuthUsecase(repo *MockAccountRepo) domain.AuthUsecase {
	return usecase.NewAuthUsecase(repo, auth.NewRevoker(nil), testSecret, "clinic-portal", time.Hour)
}

func adminAccount() *domain.Account {
	return &domain.Account{ID: "admin1", Role: domain.RoleAdmin, IsActive: true, IsStaff: true, IsSuperuser: true}
}

func staffAccount() *domain.Account {
	return &domain.Account{ID: "staff1", Role: domain.RoleAdmin, IsActive: true, IsStaff: true}
}

func clinicAccount(id string) *domain.Account {
	return &domain.Account{ID: id, Role: domain.RoleClinic, IsActive: true}
}

func seekerAccount(id string) *domain.Account {
	return &domain.Account{ID: id, Role: domain.RoleJobSeeker, IsActive: true}
}

// Auth

func TestRegister(t *testing.T) {
	t.Run("Should reject admin self-registration", func(t *testing.T) {
		uc := newAuthUsecase(new(MockAccountRepo))
		_, _, err := uc.Register(context.Background(), domain.RegisterInput{
			Email: "a@b.com", Password: "password123", Role: domain.RoleAdmin, AgreeToTerms: true,
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Admin accounts cannot be self-registered")
	})

	t.Run("Should require terms agreement", func(t *testing.T) {
		uc := newAuthUsecase(new(MockAccountRepo))
		_, _, err := uc.Register(context.Background(), domain.RegisterInput{
			Email: "a@b.com", Password: "password123", Role: domain.RoleClinic,
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "agree to the terms")
	})

	t.Run("Should reject short passwords", func(t *testing.T) {
		uc := newAuthUsecase(new(MockAccountRepo))
		_, _, err := uc.Register(context.Background(), domain.RegisterInput{
			Email: "a@b.com", Password: "short", Role: domain.RoleClinic, AgreeToTerms: true,
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("Should lowercase email and start the account active", func(t *testing.T) {
		mockRepo := new(MockAccountRepo)
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		uc := newAuthUsecase(mockRepo)

		account, token, err := uc.Register(context.Background(), domain.RegisterInput{
			Email: "  Dr.Smith@Clinic.COM ", Password: "password123",
			Role: domain.RoleClinic, AgreeToTerms: true,
		})
		assert.NoError(t, err)
		assert.Equal(t, "dr.smith@clinic.com", account.Email)
		assert.True(t, account.IsActive)
		assert.NotEmpty(t, account.ID)
		assert.NotEmpty(t, token)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should leave the username nil when omitted", func(t *testing.T) {
		mockRepo := new(MockAccountRepo)
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		uc := newAuthUsecase(mockRepo)

		account, _, err := uc.Register(context.Background(), domain.RegisterInput{
			Email: "nameless@clinic.com", Password: "password123",
			Role: domain.RoleJobSeeker, AgreeToTerms: true,
		})
		assert.NoError(t, err)
		assert.Nil(t, account.Username)
	})
}

func TestLogin(t *testing.T) {
	hash, _ := auth.HashPassword("correct-password")

	t.Run("Should return generic error for unknown email", func(t *testing.T) {
		mockRepo := new(MockAccountRepo)
		mockRepo.On("GetByEmail", mock.Anything, "nobody@x.com").Return(nil, domain.ErrNotFound)
		uc := newAuthUsecase(mockRepo)

		_, _, err := uc.Login(context.Background(), "nobody@x.com", "whatever")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email or password")
	})

	t.Run("Should return the same generic error for a wrong password", func(t *testing.T) {
		mockRepo := new(MockAccountRepo)
		mockRepo.On("GetByEmail", mock.Anything, "known@x.com").Return(&domain.Account{
			ID: "u1", Email: "known@x.com", PasswordHash: hash, IsActive: true,
		}, nil)
		uc := newAuthUsecase(mockRepo)

		_, _, err := uc.Login(context.Background(), "known@x.com", "wrong-password")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email or password")
	})

	t.Run("Should refuse deactivated accounts with correct credentials", func(t *testing.T) {
		mockRepo := new(MockAccountRepo)
		mockRepo.On("GetByEmail", mock.Anything, "off@x.com").Return(&domain.Account{
			ID: "u1", Email: "off@x.com", PasswordHash: hash, IsActive: false,
		}, nil)
		uc := newAuthUsecase(mockRepo)

		_, _, err := uc.Login(context.Background(), "off@x.com", "correct-password")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "deactivated")
	})

	t.Run("Should issue a token on success", func(t *testing.T) {
		mockRepo := new(MockAccountRepo)
		mockRepo.On("GetByEmail", mock.Anything, "ok@x.com").Return(&domain.Account{
			ID: "u1", Email: "ok@x.com", PasswordHash: hash, Role: domain.RoleJobSeeker, IsActive: true,
		}, nil)
		uc := newAuthUsecase(mockRepo)

		account, token, err := uc.Login(context.Background(), "  OK@x.com ", "correct-password")
		assert.NoError(t, err)
		assert.Equal(t, "u1", account.ID)

		claims, err := auth.ParseToken(testSecret, token)
		assert.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
		assert.Equal(t, "job_seeker", claims.Role)
	})
}

func TestChangePassword(t *testing.T) {
	hash, _ := auth.HashPassword("old-password")
	actor := &domain.Account{ID: "u1", Role: domain.RoleClinic, PasswordHash: hash}

	t.Run("Should reject a wrong current password", func(t *testing.T) {
		uc := newAuthUsecase(new(MockAccountRepo))
		_, err := uc.ChangePassword(context.Background(), actor, "not-it", "new-password-1", "jti", time.Now().Add(time.Hour))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Current password is incorrect")
	})

	t.Run("Should reject reusing the current password", func(t *testing.T) {
		uc := newAuthUsecase(new(MockAccountRepo))
		_, err := uc.ChangePassword(context.Background(), actor, "old-password", "old-password", "jti", time.Now().Add(time.Hour))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "must differ")
	})

	t.Run("Should store the new hash and return a fresh token", func(t *testing.T) {
		mockRepo := new(MockAccountRepo)
		mockRepo.On("UpdatePassword", mock.Anything, "u1", mock.Anything).Return(nil)
		uc := newAuthUsecase(mockRepo)

		token, err := uc.ChangePassword(context.Background(), actor, "old-password", "new-password-1", "jti", time.Now().Add(time.Hour))
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		mockRepo.AssertExpectations(t)
	})
}

// Profiles

func TestProfileCreate(t *testing.T) {
	validate := validator.New()
	validation.RegisterValidators(validate)

	t.Run("Should reject a variant that does not match the role", func(t *testing.T) {
		uc := usecase.NewProfileUsecase(new(MockProfileRepo), validate)
		_, err := uc.Create(context.Background(), clinicAccount("c1"), &domain.Profile{
			Kind:     domain.KindEmployer,
			Employer: &domain.EmployerProfile{CompanyName: "Acme", ContactPerson: "Jo", Phone: "123456789"},
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not match account role")
	})

	t.Run("Should reject profiles for admin accounts", func(t *testing.T) {
		uc := usecase.NewProfileUsecase(new(MockProfileRepo), validate)
		_, err := uc.Create(context.Background(), adminAccount(), &domain.Profile{Kind: domain.KindClinic})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not have a profile")
	})

	t.Run("Should conflict when a profile already exists", func(t *testing.T) {
		mockRepo := new(MockProfileRepo)
		mockRepo.On("GetClinicByAccountID", mock.Anything, "c1").Return(&domain.ClinicProfile{ID: 42, AccountID: "c1"}, nil)
		uc := usecase.NewProfileUsecase(mockRepo, validate)

		_, err := uc.Create(context.Background(), clinicAccount("c1"), &domain.Profile{
			Kind:   domain.KindClinic,
			Clinic: &domain.ClinicProfile{ClinicName: "City Clinic", Address: "1 Main St", Phone: "123456789"},
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("Should fail validation on missing required fields", func(t *testing.T) {
		mockRepo := new(MockProfileRepo)
		mockRepo.On("GetClinicByAccountID", mock.Anything, "c1").Return(nil, domain.ErrNotFound)
		uc := usecase.NewProfileUsecase(mockRepo, validate)

		_, err := uc.Create(context.Background(), clinicAccount("c1"), &domain.Profile{
			Kind:   domain.KindClinic,
			Clinic: &domain.ClinicProfile{}, // missing name, address, phone
		})
		assert.Error(t, err)
	})

	t.Run("Should reject a malformed phone number", func(t *testing.T) {
		mockRepo := new(MockProfileRepo)
		mockRepo.On("GetClinicByAccountID", mock.Anything, "c1").Return(nil, domain.ErrNotFound)
		uc := usecase.NewProfileUsecase(mockRepo, validate)

		_, err := uc.Create(context.Background(), clinicAccount("c1"), &domain.Profile{
			Kind:   domain.KindClinic,
			Clinic: &domain.ClinicProfile{ClinicName: "City Clinic", Address: "1 Main St", Phone: "not-a-number"},
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "phone")
	})

	t.Run("Should stamp the owner account id on success", func(t *testing.T) {
		mockRepo := new(MockProfileRepo)
		mockRepo.On("GetClinicByAccountID", mock.Anything, "c1").Return(nil, domain.ErrNotFound)
		mockRepo.On("CreateClinic", mock.Anything, mock.Anything).Return(nil)
		uc := usecase.NewProfileUsecase(mockRepo, validate)

		created, err := uc.Create(context.Background(), clinicAccount("c1"), &domain.Profile{
			Kind:   domain.KindClinic,
			Clinic: &domain.ClinicProfile{AccountID: "spoofed", ClinicName: "City Clinic", Address: "1 Main St", Phone: "123456789"},
		})
		assert.NoError(t, err)
		assert.Equal(t, "c1", created.Clinic.AccountID)
		mockRepo.AssertExpectations(t)
	})
}

func TestProfileUpdatePatch(t *testing.T) {
	validate := validator.New()
	validation.RegisterValidators(validate)

	t.Run("Should leave nil patch fields untouched", func(t *testing.T) {
		mockRepo := new(MockProfileRepo)
		mockRepo.On("GetEmployerByAccountID", mock.Anything, "e1").Return(&domain.EmployerProfile{
			ID: 5, AccountID: "e1", CompanyName: "Acme", ContactPerson: "Jo", Phone: "123456789", Industry: "health",
		}, nil)
		mockRepo.On("UpdateEmployer", mock.Anything, mock.Anything).Return(nil)
		uc := usecase.NewProfileUsecase(mockRepo, validate)

		newName := "Acme Health"
		updated, err := uc.Update(context.Background(), &domain.Account{ID: "e1", Role: domain.RoleEmployer, IsActive: true}, &domain.ProfilePatch{
			Employer: &domain.EmployerProfilePatch{CompanyName: &newName},
		})
		assert.NoError(t, err)
		assert.Equal(t, "Acme Health", updated.Employer.CompanyName)
		assert.Equal(t, "Jo", updated.Employer.ContactPerson)
		assert.Equal(t, "health", updated.Employer.Industry)
	})

	t.Run("Should report not found when no profile exists yet", func(t *testing.T) {
		mockRepo := new(MockProfileRepo)
		mockRepo.On("GetEmployerByAccountID", mock.Anything, "e1").Return(nil, domain.ErrNotFound)
		uc := usecase.NewProfileUsecase(mockRepo, validate)

		_, err := uc.Update(context.Background(), &domain.Account{ID: "e1", Role: domain.RoleEmployer, IsActive: true}, &domain.ProfilePatch{
			Employer: &domain.EmployerProfilePatch{},
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Profile not found")
	})
}

// Jobs

func TestJobCreate(t *testing.T) {
	t.Run("Should deny job seekers", func(t *testing.T) {
		uc := usecase.NewJobUsecase(new(MockJobRepo))
		err := uc.CreateJob(context.Background(), seekerAccount("u1"), &domain.Job{
			Title: "Nurse", Description: "d", Location: "Oslo", JobType: domain.JobTypeFullTime,
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only clinics and employers")
	})

	t.Run("Should reject an unknown job type", func(t *testing.T) {
		uc := usecase.NewJobUsecase(new(MockJobRepo))
		err := uc.CreateJob(context.Background(), clinicAccount("c1"), &domain.Job{
			Title: "Nurse", Description: "d", Location: "Oslo", JobType: "gig",
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid job type")
	})

	t.Run("Should reject a deadline in the past", func(t *testing.T) {
		past := time.Now().Add(-24 * time.Hour)
		uc := usecase.NewJobUsecase(new(MockJobRepo))
		err := uc.CreateJob(context.Background(), clinicAccount("c1"), &domain.Job{
			Title: "Nurse", Description: "d", Location: "Oslo",
			JobType: domain.JobTypeFullTime, ApplicationDeadline: &past,
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be in the past")
	})

	t.Run("Should override owner and start active", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		uc := usecase.NewJobUsecase(mockRepo)

		job := &domain.Job{
			PostedBy: "someone-else", Title: "Nurse", Description: "d",
			Location: "Oslo", JobType: domain.JobTypeFullTime, IsActive: false,
		}
		err := uc.CreateJob(context.Background(), clinicAccount("c1"), job)
		assert.NoError(t, err)
		assert.Equal(t, "c1", job.PostedBy)
		assert.True(t, job.IsActive)
	})
}

func TestJobVisibility(t *testing.T) {
	inactive := &domain.Job{ID: 9, PostedBy: "c1", Title: "Nurse", IsActive: false}

	t.Run("Owner can see an inactive posting", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		mockRepo.On("GetByID", mock.Anything, int64(9)).Return(inactive, nil)
		uc := usecase.NewJobUsecase(mockRepo)

		job, err := uc.GetJob(context.Background(), clinicAccount("c1"), 9)
		assert.NoError(t, err)
		assert.Equal(t, int64(9), job.ID)
	})

	t.Run("Other accounts get not found, not forbidden", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		mockRepo.On("GetByID", mock.Anything, int64(9)).Return(inactive, nil)
		uc := usecase.NewJobUsecase(mockRepo)

		_, err := uc.GetJob(context.Background(), seekerAccount("u1"), 9)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Job not found")
	})

	t.Run("Staff can see an inactive posting", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		mockRepo.On("GetByID", mock.Anything, int64(9)).Return(inactive, nil)
		uc := usecase.NewJobUsecase(mockRepo)

		_, err := uc.GetJob(context.Background(), staffAccount(), 9)
		assert.NoError(t, err)
	})
}

func TestJobListFiltering(t *testing.T) {
	t.Run("Non-staff include_inactive is silently ignored", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		mockRepo.On("Fetch", mock.Anything, domain.JobFilter{OnlyActive: true}, 20, 0).Return([]domain.Job{}, int64(0), nil)
		uc := usecase.NewJobUsecase(mockRepo)

		_, _, err := uc.ListJobs(context.Background(), seekerAccount("u1"), true, "", 1, 20)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Staff may list inactive postings", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		mockRepo.On("Fetch", mock.Anything, domain.JobFilter{OnlyActive: false}, 20, 0).Return([]domain.Job{}, int64(0), nil)
		uc := usecase.NewJobUsecase(mockRepo)

		_, _, err := uc.ListJobs(context.Background(), staffAccount(), true, "", 1, 20)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Out-of-range paging falls back to defaults", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		mockRepo.On("Fetch", mock.Anything, mock.Anything, 20, 0).Return([]domain.Job{}, int64(0), nil)
		uc := usecase.NewJobUsecase(mockRepo)

		_, _, err := uc.ListJobs(context.Background(), seekerAccount("u1"), false, "", 0, 5000)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestJobDelete(t *testing.T) {
	job := &domain.Job{ID: 9, PostedBy: "c1", IsActive: true}

	t.Run("Owner delete deactivates instead of removing", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		mockRepo.On("GetByID", mock.Anything, int64(9)).Return(job, nil)
		mockRepo.On("SetActive", mock.Anything, int64(9), false).Return(nil)
		uc := usecase.NewJobUsecase(mockRepo)

		assert.NoError(t, uc.DeleteJob(context.Background(), clinicAccount("c1"), 9))
		mockRepo.AssertExpectations(t)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Admin delete removes the row", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		mockRepo.On("GetByID", mock.Anything, int64(9)).Return(job, nil)
		mockRepo.On("Delete", mock.Anything, int64(9)).Return(nil)
		uc := usecase.NewJobUsecase(mockRepo)

		assert.NoError(t, uc.DeleteJob(context.Background(), adminAccount(), 9))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Non-owner delete is denied", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		mockRepo.On("GetByID", mock.Anything, int64(9)).Return(job, nil)
		uc := usecase.NewJobUsecase(mockRepo)

		err := uc.DeleteJob(context.Background(), clinicAccount("c2"), 9)
		assert.Error(t, err)
	})
}

// Applications

func TestApply(t *testing.T) {
	activeJob := &domain.Job{ID: 3, PostedBy: "c1", IsActive: true}

	t.Run("Should deny non-seekers", func(t *testing.T) {
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), new(MockJobRepo))
		_, err := uc.Apply(context.Background(), clinicAccount("c1"), 3, "", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only job seekers")
	})

	t.Run("Should reject inactive jobs", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		mockJobs.On("GetByID", mock.Anything, int64(3)).Return(&domain.Job{ID: 3, IsActive: false}, nil)
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), mockJobs)

		_, err := uc.Apply(context.Background(), seekerAccount("u1"), 3, "", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no longer accepting applications")
	})

	t.Run("Should reject jobs past their deadline", func(t *testing.T) {
		past := time.Now().Add(-24 * time.Hour)
		mockJobs := new(MockJobRepo)
		mockJobs.On("GetByID", mock.Anything, int64(3)).Return(&domain.Job{ID: 3, IsActive: true, ApplicationDeadline: &past}, nil)
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), mockJobs)

		_, err := uc.Apply(context.Background(), seekerAccount("u1"), 3, "", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "deadline")
	})

	t.Run("Should accept applications on the deadline day itself", func(t *testing.T) {
		now := time.Now()
		deadline := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		mockJobs := new(MockJobRepo)
		mockJobs.On("GetByID", mock.Anything, int64(3)).Return(&domain.Job{ID: 3, PostedBy: "c1", IsActive: true, ApplicationDeadline: &deadline}, nil)
		mockApps := new(MockApplicationRepo)
		mockApps.On("CheckExists", mock.Anything, int64(3), "u1").Return(false, nil)
		mockApps.On("Create", mock.Anything, mock.Anything).Return(nil)
		uc := usecase.NewApplicationUsecase(mockApps, mockJobs)

		_, err := uc.Apply(context.Background(), seekerAccount("u1"), 3, "", "")
		assert.NoError(t, err)
	})

	t.Run("Should conflict on a duplicate application", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		mockJobs.On("GetByID", mock.Anything, int64(3)).Return(activeJob, nil)
		mockApps := new(MockApplicationRepo)
		mockApps.On("CheckExists", mock.Anything, int64(3), "u1").Return(true, nil)
		uc := usecase.NewApplicationUsecase(mockApps, mockJobs)

		_, err := uc.Apply(context.Background(), seekerAccount("u1"), 3, "", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already applied")
	})

	t.Run("Should create a pending application", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		mockJobs.On("GetByID", mock.Anything, int64(3)).Return(activeJob, nil)
		mockApps := new(MockApplicationRepo)
		mockApps.On("CheckExists", mock.Anything, int64(3), "u1").Return(false, nil)
		mockApps.On("Create", mock.Anything, mock.Anything).Return(nil)
		uc := usecase.NewApplicationUsecase(mockApps, mockJobs)

		app, err := uc.Apply(context.Background(), seekerAccount("u1"), 3, "cover", "resume.pdf")
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusPending, app.Status)
		assert.Equal(t, "u1", app.ApplicantID)
	})
}

func TestUpdateApplicationStatus(t *testing.T) {
	t.Run("Should deny non-staff before any lookup", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(mockApps, new(MockJobRepo))

		err := uc.UpdateStatus(context.Background(), seekerAccount("u1"), 5, "reviewed", nil)
		assert.Error(t, err)
		// The repo must not be consulted, or a denied caller could probe ids.
		mockApps.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Should reject pending as a target status", func(t *testing.T) {
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), new(MockJobRepo))
		err := uc.UpdateStatus(context.Background(), staffAccount(), 5, "pending", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid status")
	})

	t.Run("Should update a valid status", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockApps.On("GetByID", mock.Anything, int64(5)).Return(&domain.Application{ID: 5, Status: "pending"}, nil)
		mockApps.On("UpdateStatus", mock.Anything, int64(5), "shortlisted", (*string)(nil)).Return(nil)
		uc := usecase.NewApplicationUsecase(mockApps, new(MockJobRepo))

		assert.NoError(t, uc.UpdateStatus(context.Background(), staffAccount(), 5, "shortlisted", nil))
		mockApps.AssertExpectations(t)
	})
}

func TestApplicationAccess(t *testing.T) {
	app := &domain.Application{ID: 5, JobID: 3, ApplicantID: "u1"}

	t.Run("Applicant may view their own application", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockApps.On("GetByID", mock.Anything, int64(5)).Return(app, nil)
		uc := usecase.NewApplicationUsecase(mockApps, new(MockJobRepo))

		got, err := uc.GetApplication(context.Background(), seekerAccount("u1"), 5)
		assert.NoError(t, err)
		assert.Equal(t, int64(5), got.ID)
	})

	t.Run("Another seeker is denied", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockApps.On("GetByID", mock.Anything, int64(5)).Return(app, nil)
		uc := usecase.NewApplicationUsecase(mockApps, new(MockJobRepo))

		_, err := uc.GetApplication(context.Background(), seekerAccount("u2"), 5)
		assert.Error(t, err)
	})

	t.Run("Job owner may list a job's applications", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		mockJobs.On("GetByID", mock.Anything, int64(3)).Return(&domain.Job{ID: 3, PostedBy: "c1", IsActive: true}, nil)
		mockApps := new(MockApplicationRepo)
		mockApps.On("GetByJobID", mock.Anything, int64(3)).Return([]domain.Application{*app}, nil)
		uc := usecase.NewApplicationUsecase(mockApps, mockJobs)

		apps, err := uc.ListForJob(context.Background(), clinicAccount("c1"), 3)
		assert.NoError(t, err)
		assert.Len(t, apps, 1)
	})

	t.Run("A non-owner clinic cannot list another job's applications", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		mockJobs.On("GetByID", mock.Anything, int64(3)).Return(&domain.Job{ID: 3, PostedBy: "c1", IsActive: true}, nil)
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), mockJobs)

		_, err := uc.ListForJob(context.Background(), clinicAccount("c2"), 3)
		assert.Error(t, err)
	})
}

// Admin

func TestAdminAccessGate(t *testing.T) {
	uc := usecase.NewAdminUsecase(new(MockAdminRepo), new(MockAccountRepo), nil, time.Minute)

	_, err := uc.GetStats(context.Background(), clinicAccount("c1"))
	assert.Error(t, err)

	_, _, err = uc.ListAccounts(context.Background(), seekerAccount("u1"), domain.AccountFilter{}, 1, 20)
	assert.Error(t, err)

	err = uc.ExportAccountsCSV(context.Background(), seekerAccount("u1"), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestAdminStatsCache(t *testing.T) {
	mockRepo := new(MockAdminRepo)
	mockRepo.On("GetStats", mock.Anything).Return(&domain.DashboardStats{TotalAccounts: 10}, nil).Once()
	uc := usecase.NewAdminUsecase(mockRepo, new(MockAccountRepo), nil, time.Minute)

	first, err := uc.GetStats(context.Background(), adminAccount())
	assert.NoError(t, err)
	second, err := uc.GetStats(context.Background(), adminAccount())
	assert.NoError(t, err)
	assert.Same(t, first, second)
	mockRepo.AssertExpectations(t)
}

func TestAdminSelfProtection(t *testing.T) {
	actor := adminAccount()

	t.Run("Cannot toggle own account", func(t *testing.T) {
		uc := usecase.NewAdminUsecase(new(MockAdminRepo), new(MockAccountRepo), nil, time.Minute)
		_, err := uc.ToggleAccountActive(context.Background(), actor, actor.ID)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "your own account")
	})

	t.Run("Cannot delete own account", func(t *testing.T) {
		uc := usecase.NewAdminUsecase(new(MockAdminRepo), new(MockAccountRepo), nil, time.Minute)
		err := uc.DeleteAccount(context.Background(), actor, actor.ID)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "your own account")
	})

	t.Run("May toggle other accounts", func(t *testing.T) {
		mockRepo := new(MockAdminRepo)
		mockRepo.On("ToggleAccountActive", mock.Anything, "other").Return(false, nil)
		uc := usecase.NewAdminUsecase(mockRepo, new(MockAccountRepo), nil, time.Minute)

		active, err := uc.ToggleAccountActive(context.Background(), actor, "other")
		assert.NoError(t, err)
		assert.False(t, active)
	})
}

func TestAdminListAccountsRejectsUnknownRole(t *testing.T) {
	uc := usecase.NewAdminUsecase(new(MockAdminRepo), new(MockAccountRepo), nil, time.Minute)
	_, _, err := uc.ListAccounts(context.Background(), adminAccount(), domain.AccountFilter{Role: "wizard"}, 1, 20)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown role filter")
}

func TestExportAccountsCSV(t *testing.T) {
	username := "drsmith"
	mockRepo := new(MockAdminRepo)
	mockRepo.On("AllAccounts", mock.Anything).Return([]domain.Account{
		{ID: "u1", Email: "a@b.com", Username: &username, Role: domain.RoleClinic, IsActive: true, CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
		{ID: "u2", Email: "c@d.com", Role: domain.RoleJobSeeker},
	}, nil)
	uc := usecase.NewAdminUsecase(mockRepo, new(MockAccountRepo), nil, time.Minute)

	var buf bytes.Buffer
	err := uc.ExportAccountsCSV(context.Background(), adminAccount(), &buf)
	assert.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "id,email,username,role,is_active,is_staff,created_at")
	assert.Contains(t, out, "u1,a@b.com,drsmith,clinic,true,false,2026-01-02T03:04:05Z")
	assert.Contains(t, out, "u2,c@d.com,,job_seeker,false,false")
}
