package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-portal-backend/internal/domain"
	"clinic-portal-backend/pkg/apperror"
	"clinic-portal-backend/pkg/auth"

	"github.com/google/uuid"
)

type authUsecase struct {
	accountRepo domain.AccountRepository
	revoker     *auth.Revoker
	jwtSecret   string
	jwtIssuer   string
	tokenTTL    time.Duration
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(accountRepo domain.AccountRepository, revoker *auth.Revoker, jwtSecret, jwtIssuer string, tokenTTL time.Duration) domain.AuthUsecase {
	return &authUsecase{
		accountRepo: accountRepo,
		revoker:     revoker,
		jwtSecret:   jwtSecret,
		jwtIssuer:   jwtIssuer,
		tokenTTL:    tokenTTL,
	}
}

// Register creates a new account and signs it in. The admin role cannot be
// self-assigned; admin accounts are provisioned out of band.
func (uc *authUsecase) Register(ctx context.Context, input domain.RegisterInput) (*domain.Account, string, error) {
	// 1. Validate role and terms
	if input.Role == domain.RoleAdmin {
		return nil, "", apperror.Forbidden("Admin accounts cannot be self-registered")
	}
	if !input.AgreeToTerms {
		return nil, "", apperror.BadRequest("You must agree to the terms of service")
	}
	if len(input.Password) < 8 {
		return nil, "", apperror.BadRequest("Password must be at least 8 characters")
	}

	// 2. Hash password
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	// 3. Create account. The store's unique constraints on email and
	// username are the real duplicate guard; the repository translates
	// violations into conflicts.
	account := &domain.Account{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		Role:         input.Role,
		IsActive:     true,
	}
	if username := strings.TrimSpace(input.Username); username != "" {
		account.Username = &username
	}
	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, "", err
	}

	// 4. Issue access token
	token, err := auth.NewAccessToken(uc.jwtSecret, uc.jwtIssuer, uc.tokenTTL, account.ID, string(account.Role))
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return account, token, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password return the same generic error so neither leaks which one failed.
func (uc *authUsecase) Login(ctx context.Context, email, password string) (*domain.Account, string, error) {
	account, err := uc.accountRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", apperror.Unauthorized("Invalid email or password")
		}
		return nil, "", apperror.Internal(err)
	}
	if err := auth.CheckPassword(account.PasswordHash, password); err != nil {
		return nil, "", apperror.Unauthorized("Invalid email or password")
	}
	if !account.IsActive {
		return nil, "", apperror.Forbidden("This account has been deactivated")
	}

	token, err := auth.NewAccessToken(uc.jwtSecret, uc.jwtIssuer, uc.tokenTTL, account.ID, string(account.Role))
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return account, token, nil
}

// Logout revokes the presented token's jti for the rest of its lifetime.
func (uc *authUsecase) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if err := uc.revoker.Revoke(ctx, jti, expiresAt); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// ChangePassword verifies the current password, stores the new hash,
// revokes the session that made the change, and returns a fresh token.
func (uc *authUsecase) ChangePassword(ctx context.Context, actor *domain.Account, oldPassword, newPassword, jti string, expiresAt time.Time) (string, error) {
	if err := auth.CheckPassword(actor.PasswordHash, oldPassword); err != nil {
		return "", apperror.BadRequest("Current password is incorrect")
	}
	if len(newPassword) < 8 {
		return "", apperror.BadRequest("Password must be at least 8 characters")
	}
	if newPassword == oldPassword {
		return "", apperror.BadRequest("New password must differ from the current one")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return "", apperror.Internal(err)
	}
	if err := uc.accountRepo.UpdatePassword(ctx, actor.ID, hash); err != nil {
		return "", err
	}

	// Best effort: a failed revoke should not fail the password change.
	_ = uc.revoker.Revoke(ctx, jti, expiresAt)

	token, err := auth.NewAccessToken(uc.jwtSecret, uc.jwtIssuer, uc.tokenTTL, actor.ID, string(actor.Role))
	if err != nil {
		return "", apperror.Internal(err)
	}
	return token, nil
}

// GetCurrentUser loads the fresh account record for the authenticated id.
func (uc *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Account not found")
		}
		return nil, apperror.Internal(err)
	}
	return account, nil
}
