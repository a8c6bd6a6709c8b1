package domain

import (
	"context"
	"time"
)

// Application status constants
const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusReviewed    = "reviewed"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusAccepted    = "accepted"
)

// IsValidStatusTarget reports whether a status is assignable by staff.
// "pending" is only ever the initial state; re-transitions between the
// non-pending states are permitted.
func IsValidStatusTarget(status string) bool {
	switch status {
	case ApplicationStatusReviewed, ApplicationStatusShortlisted,
		ApplicationStatusRejected, ApplicationStatusAccepted:
		return true
	default:
		return false
	}
}

// Application associates one job with one applicant. At most one exists per
// (job, applicant) pair; the store-level unique constraint is the enforced
// contract.
type Application struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"job_id"`
	ApplicantID string    `json:"applicant_id"`
	CoverLetter string    `json:"cover_letter"`
	ResumePath  string    `json:"resume_path"`
	Status      string    `json:"status"`
	Notes       *string   `json:"notes,omitempty"`
	AppliedAt   time.Time `json:"applied_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined data for list responses
	ApplicantEmail *string `json:"applicant_email,omitempty"`
	ApplicantName  *string `json:"applicant_name,omitempty"`
	JobTitle       *string `json:"job_title,omitempty"`
}

// OwnerAccountID returns the applicant, for policy checks.
func (a *Application) OwnerAccountID() string {
	return a.ApplicantID
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	GetByJobID(ctx context.Context, jobID int64) ([]Application, error)
	GetByApplicantID(ctx context.Context, applicantID string) ([]Application, error)
	CheckExists(ctx context.Context, jobID int64, applicantID string) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status string, notes *string) error
}

type ApplicationUsecase interface {
	// Applicant operations
	Apply(ctx context.Context, actor *Account, jobID int64, coverLetter, resumePath string) (*Application, error)
	MyApplications(ctx context.Context, actor *Account) ([]Application, error)
	GetApplication(ctx context.Context, actor *Account, id int64) (*Application, error)

	// Poster/staff operations
	ListForJob(ctx context.Context, actor *Account, jobID int64) ([]Application, error)
	UpdateStatus(ctx context.Context, actor *Account, id int64, status string, notes *string) error
}
