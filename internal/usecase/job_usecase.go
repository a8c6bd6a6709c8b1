package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-portal-backend/internal/domain"
	"clinic-portal-backend/internal/policy"
	"clinic-portal-backend/pkg/apperror"
)

type jobUsecase struct {
	jobRepo domain.JobRepository
}

// NewJobUsecase creates a new job usecase
func NewJobUsecase(jobRepo domain.JobRepository) domain.JobUsecase {
	return &jobUsecase{jobRepo: jobRepo}
}

// CreateJob stores a new posting owned by the actor. New postings start
// active.
func (uc *jobUsecase) CreateJob(ctx context.Context, actor *domain.Account, job *domain.Job) error {
	if err := policy.Decide(actor, policy.ActionCreateJob, nil); err != nil {
		return err
	}
	if err := validateJobFields(job); err != nil {
		return err
	}
	if job.ApplicationDeadline != nil {
		// Deadlines are dates; today is still acceptable.
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if job.ApplicationDeadline.Before(today) {
			return apperror.BadRequest("Application deadline cannot be in the past")
		}
	}

	job.PostedBy = actor.ID
	job.IsActive = true
	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// GetJob returns a posting. Inactive postings are visible only to their
// owner and staff; everyone else sees not-found rather than a denial.
func (uc *jobUsecase) GetJob(ctx context.Context, actor *domain.Account, id int64) (*domain.Job, error) {
	job, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapJobErr(err)
	}
	if !job.IsActive && !canSeeInactive(actor, job) {
		return nil, apperror.NotFound("Job not found")
	}
	return job, nil
}

// ListJobs returns the public active listing. Staff may request inactive
// postings as well; for anyone else includeInactive is silently ignored.
func (uc *jobUsecase) ListJobs(ctx context.Context, actor *domain.Account, includeInactive bool, search string, page, pageSize int) ([]domain.Job, int64, error) {
	if err := policy.Decide(actor, policy.ActionViewPublicJobs, nil); err != nil {
		return nil, 0, err
	}

	filter := domain.JobFilter{
		OnlyActive: true,
		Search:     strings.TrimSpace(search),
	}
	if includeInactive && actor.IsStaff {
		filter.OnlyActive = false
	}

	limit, offset := pageToLimitOffset(page, pageSize)
	jobs, total, err := uc.jobRepo.Fetch(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return jobs, total, nil
}

// ListMyJobs returns the actor's own postings, active and inactive.
func (uc *jobUsecase) ListMyJobs(ctx context.Context, actor *domain.Account, page, pageSize int) ([]domain.Job, int64, error) {
	filter := domain.JobFilter{PostedBy: actor.ID}
	limit, offset := pageToLimitOffset(page, pageSize)
	jobs, total, err := uc.jobRepo.Fetch(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return jobs, total, nil
}

// UpdateJob replaces the mutable fields of an existing posting.
func (uc *jobUsecase) UpdateJob(ctx context.Context, actor *domain.Account, job *domain.Job) error {
	existing, err := uc.jobRepo.GetByID(ctx, job.ID)
	if err != nil {
		return mapJobErr(err)
	}
	if err := policy.Decide(actor, policy.ActionEditJob, existing); err != nil {
		return err
	}
	if err := validateJobFields(job); err != nil {
		return err
	}

	existing.Title = job.Title
	existing.Description = job.Description
	existing.Requirements = job.Requirements
	existing.Location = job.Location
	existing.JobType = job.JobType
	existing.Salary = job.Salary
	existing.Company = job.Company
	existing.ApplicationDeadline = job.ApplicationDeadline

	if err := uc.jobRepo.Update(ctx, existing); err != nil {
		return mapJobErr(err)
	}
	*job = *existing
	return nil
}

// DeleteJob deactivates a posting for its owner; its applications survive.
// Admins hard-delete instead, which cascades to applications.
func (uc *jobUsecase) DeleteJob(ctx context.Context, actor *domain.Account, id int64) error {
	existing, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		return mapJobErr(err)
	}

	if actor.IsAdmin() {
		if err := policy.Decide(actor, policy.ActionHardDeleteJob, existing); err != nil {
			return err
		}
		return uc.jobRepo.Delete(ctx, id)
	}

	if err := policy.Decide(actor, policy.ActionDeactivateJob, existing); err != nil {
		return err
	}
	return uc.jobRepo.SetActive(ctx, id, false)
}

// SetJobActive flips a posting's visibility and returns the updated record.
func (uc *jobUsecase) SetJobActive(ctx context.Context, actor *domain.Account, id int64, active bool) (*domain.Job, error) {
	existing, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapJobErr(err)
	}
	if err := policy.Decide(actor, policy.ActionDeactivateJob, existing); err != nil {
		return nil, err
	}
	if err := uc.jobRepo.SetActive(ctx, id, active); err != nil {
		return nil, mapJobErr(err)
	}
	existing.IsActive = active
	return existing, nil
}

func validateJobFields(job *domain.Job) error {
	if strings.TrimSpace(job.Title) == "" {
		return apperror.BadRequest("Job title is required")
	}
	if strings.TrimSpace(job.Description) == "" {
		return apperror.BadRequest("Job description is required")
	}
	if strings.TrimSpace(job.Location) == "" {
		return apperror.BadRequest("Job location is required")
	}
	if !domain.IsValidJobType(job.JobType) {
		return apperror.BadRequest("Invalid job type. Must be: full_time, part_time, contract, internship, or remote")
	}
	if job.Salary != nil && *job.Salary < 0 {
		return apperror.BadRequest("Salary cannot be negative")
	}
	return nil
}

func canSeeInactive(actor *domain.Account, job *domain.Job) bool {
	if actor == nil {
		return false
	}
	return actor.IsStaff || job.PostedBy == actor.ID
}

func mapJobErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound("Job not found")
	}
	return apperror.Internal(err)
}

func pageToLimitOffset(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return pageSize, (page - 1) * pageSize
}
