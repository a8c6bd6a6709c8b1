package domain

import (
	"context"
	"time"
)

// Job type constants
const (
	JobTypeFullTime   = "full_time"
	JobTypePartTime   = "part_time"
	JobTypeContract   = "contract"
	JobTypeInternship = "internship"
	JobTypeRemote     = "remote"
)

// IsValidJobType reports whether an employment type tag is recognized.
func IsValidJobType(t string) bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeRemote:
		return true
	default:
		return false
	}
}

// Job is a posting owned by the account that created it. Deactivation via
// IsActive is the soft-delete path; only admins hard-delete.
type Job struct {
	ID                  int64      `json:"id"`
	PostedBy            string     `json:"posted_by"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Requirements        string     `json:"requirements"`
	Location            string     `json:"location"`
	JobType             string     `json:"job_type"`
	Salary              *float64   `json:"salary,omitempty"`
	Company             string     `json:"company"`
	IsActive            bool       `json:"is_active"`
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`

	// Joined data for list/detail responses
	PosterEmail       *string `json:"poster_email,omitempty"`
	TotalApplications *int64  `json:"total_applications,omitempty"`
}

// OwnerAccountID returns the posting account, for policy checks.
func (j *Job) OwnerAccountID() string {
	return j.PostedBy
}

// JobFilter narrows job listings.
type JobFilter struct {
	OnlyActive bool
	PostedBy   string
	Search     string
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	Fetch(ctx context.Context, filter JobFilter, limit, offset int) ([]Job, int64, error)
	Update(ctx context.Context, job *Job) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, actor *Account, job *Job) error
	GetJob(ctx context.Context, actor *Account, id int64) (*Job, error)
	ListJobs(ctx context.Context, actor *Account, includeInactive bool, search string, page, pageSize int) ([]Job, int64, error)
	ListMyJobs(ctx context.Context, actor *Account, page, pageSize int) ([]Job, int64, error)
	UpdateJob(ctx context.Context, actor *Account, job *Job) error
	// DeleteJob soft-deletes for owners and hard-deletes for admins.
	DeleteJob(ctx context.Context, actor *Account, id int64) error
	SetJobActive(ctx context.Context, actor *Account, id int64, active bool) (*Job, error)
}
