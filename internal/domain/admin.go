package domain

import (
	"context"
	"io"
	"time"
)

// AccountsByRole breaks the account count down by role tag.
type AccountsByRole struct {
	Admin     int64 `json:"admin"`
	Clinic    int64 `json:"clinic"`
	Employer  int64 `json:"employer"`
	JobSeeker int64 `json:"job_seeker"`
}

// DashboardStats is the aggregate snapshot served to the admin dashboard.
// Empty stores report zeros.
type DashboardStats struct {
	TotalAccounts          int64          `json:"total_accounts"`
	ActiveAccounts         int64          `json:"active_accounts"`
	NewAccountsToday       int64          `json:"new_accounts_today"`
	NewAccountsThisWeek    int64          `json:"new_accounts_this_week"`
	AccountsByRole         AccountsByRole `json:"accounts_by_role"`
	TotalClinicProfiles    int64          `json:"total_clinic_profiles"`
	TotalEmployerProfiles  int64          `json:"total_employer_profiles"`
	TotalJobSeekerProfiles int64          `json:"total_job_seeker_profiles"`
	AccountsWithoutProfile int64          `json:"accounts_without_profile"`
	TotalJobs              int64          `json:"total_jobs"`
	ActiveJobs             int64          `json:"active_jobs"`
	TotalApplications      int64          `json:"total_applications"`
	GeneratedAt            time.Time      `json:"generated_at"`
}

// DailyRegistration is one day of the trailing registration series.
type DailyRegistration struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int64  `json:"count"`
}

// AccountFilter narrows the admin account listing.
type AccountFilter struct {
	Role     string
	IsActive *bool
	Search   string
}

// AccountDetail pairs an account with its resolved profile (if any).
type AccountDetail struct {
	Account *Account `json:"account"`
	Profile *Profile `json:"profile,omitempty"`
}

type AdminRepository interface {
	GetStats(ctx context.Context) (*DashboardStats, error)
	DailyRegistrations(ctx context.Context, days int) ([]DailyRegistration, error)
	ListAccounts(ctx context.Context, filter AccountFilter, limit, offset int) ([]Account, int64, error)
	// AllAccounts streams every account for export, unpaginated.
	AllAccounts(ctx context.Context) ([]Account, error)
	ToggleAccountActive(ctx context.Context, accountID string) (bool, error)
	DeleteAccount(ctx context.Context, accountID string) error
}

type AdminUsecase interface {
	GetStats(ctx context.Context, actor *Account) (*DashboardStats, error)
	RegistrationSeries(ctx context.Context, actor *Account) ([]DailyRegistration, error)
	ListAccounts(ctx context.Context, actor *Account, filter AccountFilter, page, pageSize int) ([]Account, int64, error)
	GetAccountDetail(ctx context.Context, actor *Account, accountID string) (*AccountDetail, error)
	ToggleAccountActive(ctx context.Context, actor *Account, accountID string) (bool, error)
	DeleteAccount(ctx context.Context, actor *Account, accountID string) error
	ExportAccountsCSV(ctx context.Context, actor *Account, w io.Writer) error
}
