package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"sync"
	"time"

	"clinic-portal-backend/internal/domain"
	"clinic-portal-backend/internal/policy"
	"clinic-portal-backend/pkg/apperror"
)

// registrationSeriesDays is the window served by the dashboard chart.
const registrationSeriesDays = 31

type adminUsecase struct {
	adminRepo   domain.AdminRepository
	accountRepo domain.AccountRepository
	profileUC   domain.ProfileUsecase
	statsTTL    time.Duration

	mu           sync.Mutex
	cachedStats  *domain.DashboardStats
	statsFetched time.Time
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(adminRepo domain.AdminRepository, accountRepo domain.AccountRepository, profileUC domain.ProfileUsecase, statsTTL time.Duration) domain.AdminUsecase {
	return &adminUsecase{
		adminRepo:   adminRepo,
		accountRepo: accountRepo,
		profileUC:   profileUC,
		statsTTL:    statsTTL,
	}
}

// GetStats serves the dashboard snapshot. Results are cached in memory for
// the configured TTL; a snapshot served within that window may be stale by
// at most the TTL, which the dashboard tolerates.
func (uc *adminUsecase) GetStats(ctx context.Context, actor *domain.Account) (*domain.DashboardStats, error) {
	if err := policy.Decide(actor, policy.ActionAdministerAccounts, nil); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.cachedStats != nil && time.Since(uc.statsFetched) < uc.statsTTL {
		return uc.cachedStats, nil
	}

	stats, err := uc.adminRepo.GetStats(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	uc.cachedStats = stats
	uc.statsFetched = time.Now()
	return stats, nil
}

// RegistrationSeries returns the trailing 31-day signup counts, zero-filled.
func (uc *adminUsecase) RegistrationSeries(ctx context.Context, actor *domain.Account) ([]domain.DailyRegistration, error) {
	if err := policy.Decide(actor, policy.ActionAdministerAccounts, nil); err != nil {
		return nil, err
	}
	series, err := uc.adminRepo.DailyRegistrations(ctx, registrationSeriesDays)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return series, nil
}

// ListAccounts returns a filtered, paginated account listing.
func (uc *adminUsecase) ListAccounts(ctx context.Context, actor *domain.Account, filter domain.AccountFilter, page, pageSize int) ([]domain.Account, int64, error) {
	if err := policy.Decide(actor, policy.ActionAdministerAccounts, nil); err != nil {
		return nil, 0, err
	}
	if filter.Role != "" {
		if _, err := domain.ParseRole(filter.Role); err != nil {
			return nil, 0, apperror.BadRequest("Unknown role filter")
		}
	}
	limit, offset := pageToLimitOffset(page, pageSize)
	accounts, total, err := uc.adminRepo.ListAccounts(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return accounts, total, nil
}

// GetAccountDetail pairs an account with its resolved profile. Accounts
// without a profile yet report a nil profile, not an error.
func (uc *adminUsecase) GetAccountDetail(ctx context.Context, actor *domain.Account, accountID string) (*domain.AccountDetail, error) {
	if err := policy.Decide(actor, policy.ActionAdministerAccounts, nil); err != nil {
		return nil, err
	}
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Account not found")
		}
		return nil, apperror.Internal(err)
	}

	detail := &domain.AccountDetail{Account: account}
	profile, err := uc.profileUC.Resolve(ctx, account)
	if err == nil {
		detail.Profile = profile
	}
	return detail, nil
}

// ToggleAccountActive flips an account's active flag and returns the new
// value. Actors cannot deactivate themselves.
func (uc *adminUsecase) ToggleAccountActive(ctx context.Context, actor *domain.Account, accountID string) (bool, error) {
	if err := policy.Decide(actor, policy.ActionAdministerAccounts, nil); err != nil {
		return false, err
	}
	if accountID == actor.ID {
		return false, apperror.BadRequest("You cannot deactivate your own account")
	}
	active, err := uc.adminRepo.ToggleAccountActive(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, apperror.NotFound("Account not found")
		}
		return false, apperror.Internal(err)
	}
	return active, nil
}

// DeleteAccount hard-deletes an account and, through store cascades, its
// profile, postings, and applications. Actors cannot delete themselves.
func (uc *adminUsecase) DeleteAccount(ctx context.Context, actor *domain.Account, accountID string) error {
	if err := policy.Decide(actor, policy.ActionAdministerAccounts, nil); err != nil {
		return err
	}
	if accountID == actor.ID {
		return apperror.BadRequest("You cannot delete your own account")
	}
	if err := uc.adminRepo.DeleteAccount(ctx, accountID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Account not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// ExportAccountsCSV streams every account as CSV, one row per account.
func (uc *adminUsecase) ExportAccountsCSV(ctx context.Context, actor *domain.Account, w io.Writer) error {
	if err := policy.Decide(actor, policy.ActionAdministerAccounts, nil); err != nil {
		return err
	}
	accounts, err := uc.adminRepo.AllAccounts(ctx)
	if err != nil {
		return apperror.Internal(err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "email", "username", "role", "is_active", "is_staff", "created_at"}); err != nil {
		return apperror.Internal(err)
	}
	for _, a := range accounts {
		username := ""
		if a.Username != nil {
			username = *a.Username
		}
		record := []string{
			a.ID,
			a.Email,
			username,
			string(a.Role),
			strconv.FormatBool(a.IsActive),
			strconv.FormatBool(a.IsStaff),
			a.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return apperror.Internal(err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
