package postgres

import (
	"context"
	"errors"
	"time"

	"clinic-portal-backend/internal/domain"
	"clinic-portal-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes
const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique-constraint violation,
// optionally on a specific constraint name.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

type accountRepo struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) domain.AccountRepository {
	return &accountRepo{db: db}
}

const accountColumns = `id, email, username, password_hash, role, is_active, is_verified, is_staff, is_superuser, created_at, updated_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.ID, &a.Email, &a.Username, &a.PasswordHash, &a.Role,
		&a.IsActive, &a.IsVerified, &a.IsStaff, &a.IsSuperuser,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *accountRepo) Create(ctx context.Context, account *domain.Account) error {
	now := time.Now()
	account.CreatedAt, account.UpdatedAt = now, now
	query := `INSERT INTO accounts (id, email, username, password_hash, role, is_active, is_verified, is_staff, is_superuser, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Exec(ctx, query,
		account.ID, account.Email, account.Username, account.PasswordHash, account.Role,
		account.IsActive, account.IsVerified, account.IsStaff, account.IsSuperuser,
		account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "accounts_email_key") {
			return apperror.Conflict("An account with this email already exists")
		}
		if isUniqueViolation(err, "accounts_username_key") {
			return apperror.Conflict("An account with this username already exists")
		}
		if isUniqueViolation(err, "") {
			return apperror.Conflict("Account already exists")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *accountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return scanAccount(r.db.QueryRow(ctx, query, id))
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`
	return scanAccount(r.db.QueryRow(ctx, query, email))
}

func (r *accountRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `UPDATE accounts SET password_hash = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, passwordHash, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *accountRepo) Update(ctx context.Context, account *domain.Account) error {
	account.UpdatedAt = time.Now()
	query := `UPDATE accounts SET email = $2, username = $3, is_active = $4, is_verified = $5, updated_at = $6 WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		account.ID, account.Email, account.Username,
		account.IsActive, account.IsVerified, account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return apperror.Conflict("Email or username already in use")
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
