package postgres

import (
	"context"
	"fmt"
	"time"

	"clinic-portal-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type adminRepo struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) domain.AdminRepository {
	return &adminRepo{db: db}
}

// GetStats computes the dashboard aggregates in one round trip per store.
// Empty tables report zeros rather than errors.
func (r *adminRepo) GetStats(ctx context.Context) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{GeneratedAt: time.Now()}

	accountsQuery := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_active),
			COUNT(*) FILTER (WHERE created_at::date = now()::date),
			COUNT(*) FILTER (WHERE created_at >= now() - interval '7 days'),
			COUNT(*) FILTER (WHERE role = 'admin'),
			COUNT(*) FILTER (WHERE role = 'clinic'),
			COUNT(*) FILTER (WHERE role = 'employer'),
			COUNT(*) FILTER (WHERE role = 'job_seeker')
		FROM accounts`
	err := r.db.QueryRow(ctx, accountsQuery).Scan(
		&stats.TotalAccounts,
		&stats.ActiveAccounts,
		&stats.NewAccountsToday,
		&stats.NewAccountsThisWeek,
		&stats.AccountsByRole.Admin,
		&stats.AccountsByRole.Clinic,
		&stats.AccountsByRole.Employer,
		&stats.AccountsByRole.JobSeeker,
	)
	if err != nil {
		return nil, err
	}

	profilesQuery := `
		SELECT
			(SELECT COUNT(*) FROM clinic_profiles),
			(SELECT COUNT(*) FROM employer_profiles),
			(SELECT COUNT(*) FROM job_seeker_profiles),
			(SELECT COUNT(*) FROM accounts a
			   WHERE NOT EXISTS (SELECT 1 FROM clinic_profiles cp WHERE cp.account_id = a.id)
			     AND NOT EXISTS (SELECT 1 FROM employer_profiles ep WHERE ep.account_id = a.id)
			     AND NOT EXISTS (SELECT 1 FROM job_seeker_profiles jp WHERE jp.account_id = a.id))`
	err = r.db.QueryRow(ctx, profilesQuery).Scan(
		&stats.TotalClinicProfiles,
		&stats.TotalEmployerProfiles,
		&stats.TotalJobSeekerProfiles,
		&stats.AccountsWithoutProfile,
	)
	if err != nil {
		return nil, err
	}

	jobsQuery := `
		SELECT
			(SELECT COUNT(*) FROM jobs),
			(SELECT COUNT(*) FROM jobs WHERE is_active),
			(SELECT COUNT(*) FROM job_applications)`
	err = r.db.QueryRow(ctx, jobsQuery).Scan(
		&stats.TotalJobs,
		&stats.ActiveJobs,
		&stats.TotalApplications,
	)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// DailyRegistrations returns the trailing registration series, one entry per
// day inclusive of today, zero-filled for days with no signups.
func (r *adminRepo) DailyRegistrations(ctx context.Context, days int) ([]domain.DailyRegistration, error) {
	query := `SELECT created_at::date, COUNT(*)
	          FROM accounts
	          WHERE created_at::date > now()::date - $1::int
	          GROUP BY created_at::date`

	rows, err := r.db.Query(ctx, query, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var day time.Time
		var count int64
		if err := rows.Scan(&day, &count); err != nil {
			return nil, err
		}
		counts[day.Format("2006-01-02")] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	today := time.Now()
	series := make([]domain.DailyRegistration, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		series = append(series, domain.DailyRegistration{Date: date, Count: counts[date]})
	}
	return series, nil
}

// ListAccounts fetches a filtered, paginated account listing.
func (r *adminRepo) ListAccounts(ctx context.Context, filter domain.AccountFilter, limit, offset int) ([]domain.Account, int64, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argN := 1

	if filter.Role != "" {
		where += fmt.Sprintf(` AND role = $%d`, argN)
		args = append(args, filter.Role)
		argN++
	}
	if filter.IsActive != nil {
		where += fmt.Sprintf(` AND is_active = $%d`, argN)
		args = append(args, *filter.IsActive)
		argN++
	}
	if filter.Search != "" {
		where += fmt.Sprintf(` AND (email ILIKE $%d OR COALESCE(username, '') ILIKE $%d)`, argN, argN)
		args = append(args, "%"+filter.Search+"%")
		argN++
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM accounts`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + accountColumns + ` FROM accounts` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, argN, argN+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(
			&a.ID, &a.Email, &a.Username, &a.PasswordHash, &a.Role,
			&a.IsActive, &a.IsVerified, &a.IsStaff, &a.IsSuperuser,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, a)
	}
	return accounts, total, rows.Err()
}

// AllAccounts returns every account ordered by signup date, for CSV export.
func (r *adminRepo) AllAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(
			&a.ID, &a.Email, &a.Username, &a.PasswordHash, &a.Role,
			&a.IsActive, &a.IsVerified, &a.IsStaff, &a.IsSuperuser,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// ToggleAccountActive flips is_active atomically and returns the new value,
// so flipping twice always restores the original state.
func (r *adminRepo) ToggleAccountActive(ctx context.Context, accountID string) (bool, error) {
	query := `UPDATE accounts SET is_active = NOT is_active, updated_at = now() WHERE id = $1 RETURNING is_active`
	var active bool
	err := r.db.QueryRow(ctx, query, accountID).Scan(&active)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, domain.ErrNotFound
		}
		return false, err
	}
	return active, nil
}

// DeleteAccount hard-deletes an account; profiles, posted jobs, and
// applications cascade at the store level.
func (r *adminRepo) DeleteAccount(ctx context.Context, accountID string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, accountID)
	return checkUpdated(result, err)
}
