package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Account is the authenticated identity record. Role is fixed at
// registration; there is no migration path between roles.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     *string   `json:"username,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	IsVerified   bool      `json:"is_verified"`
	IsStaff      bool      `json:"is_staff"`
	IsSuperuser  bool      `json:"is_superuser"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports full administrative privilege (staff + superuser).
func (a *Account) IsAdmin() bool {
	return a.IsStaff && a.IsSuperuser
}

// OwnerAccountID lets an account act as an ownership target (an account
// owns itself).
func (a *Account) OwnerAccountID() string {
	return a.ID
}

type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Update(ctx context.Context, account *Account) error
}

// RegisterInput carries validated registration fields into the usecase.
type RegisterInput struct {
	Email        string
	Username     string
	Password     string
	Role         Role
	AgreeToTerms bool
}

type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*Account, string, error)
	Login(ctx context.Context, email, password string) (*Account, string, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	ChangePassword(ctx context.Context, actor *Account, oldPassword, newPassword, jti string, expiresAt time.Time) (string, error)
	GetCurrentUser(ctx context.Context, id string) (*Account, error)
}
