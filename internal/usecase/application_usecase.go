package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-portal-backend/internal/domain"
	"clinic-portal-backend/internal/policy"
	"clinic-portal-backend/pkg/apperror"
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

// Apply submits an application to an active job. Each account may apply to
// a job once; the duplicate lookup here only improves the error, the
// store's unique constraint on (job, applicant) is the real guard.
func (uc *applicationUsecase) Apply(ctx context.Context, actor *domain.Account, jobID int64, coverLetter, resumePath string) (*domain.Application, error) {
	// 1. Role gate
	if err := policy.Decide(actor, policy.ActionApplyToJob, nil); err != nil {
		return nil, err
	}

	// 2. Validate job exists and is accepting applications
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, mapJobErr(err)
	}
	if !job.IsActive {
		return nil, apperror.BadRequest("This job is no longer accepting applications")
	}
	if job.ApplicationDeadline != nil {
		// Deadlines are dates; applications stay open through the deadline day.
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if job.ApplicationDeadline.Before(today) {
			return nil, apperror.BadRequest("The application deadline for this job has passed")
		}
	}

	// 3. Duplicate pre-check
	exists, err := uc.applicationRepo.CheckExists(ctx, jobID, actor.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("You have already applied for this job")
	}

	// 4. Create with the initial pending status
	app := &domain.Application{
		JobID:       jobID,
		ApplicantID: actor.ID,
		CoverLetter: coverLetter,
		ResumePath:  resumePath,
		Status:      domain.ApplicationStatusPending,
	}
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// MyApplications lists the actor's own applications, newest first.
func (uc *applicationUsecase) MyApplications(ctx context.Context, actor *domain.Account) ([]domain.Application, error) {
	apps, err := uc.applicationRepo.GetByApplicantID(ctx, actor.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// GetApplication returns one application to its applicant or to staff.
func (uc *applicationUsecase) GetApplication(ctx context.Context, actor *domain.Account, id int64) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapApplicationErr(err)
	}
	if err := policy.Decide(actor, policy.ActionViewApplication, app); err != nil {
		return nil, err
	}
	return app, nil
}

// ListForJob returns every application to a job, for the job's owner or
// staff.
func (uc *applicationUsecase) ListForJob(ctx context.Context, actor *domain.Account, jobID int64) ([]domain.Application, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, mapJobErr(err)
	}
	if err := policy.Decide(actor, policy.ActionViewJobApplications, job); err != nil {
		return nil, err
	}
	apps, err := uc.applicationRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// UpdateStatus moves an application to a new review status. The permission
// check runs before the lookup so non-staff callers cannot probe which
// application ids exist. Applicants never modify status, not even on their
// own applications, and "pending" is not an assignable target.
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, actor *domain.Account, id int64, status string, notes *string) error {
	if err := policy.Decide(actor, policy.ActionUpdateApplicationStatus, nil); err != nil {
		return err
	}
	if !domain.IsValidStatusTarget(status) {
		return apperror.BadRequest("Invalid status. Must be: reviewed, shortlisted, rejected, or accepted")
	}

	if _, err := uc.applicationRepo.GetByID(ctx, id); err != nil {
		return mapApplicationErr(err)
	}
	return uc.applicationRepo.UpdateStatus(ctx, id, status, notes)
}

func mapApplicationErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound("Application not found")
	}
	return apperror.Internal(err)
}
