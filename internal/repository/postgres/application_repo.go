package postgres

import (
	"context"
	"errors"
	"time"

	"clinic-portal-backend/internal/domain"
	"clinic-portal-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create inserts a new application. The UNIQUE(job_id, applicant_id)
// constraint is the race-safe duplicate guard; a conflict here is reported
// even when the usecase pre-check passed.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO job_applications (job_id, applicant_id, cover_letter, resume_path, status, notes, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	now := time.Now()
	app.AppliedAt = now
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = domain.ApplicationStatusPending
	}

	err := r.db.QueryRow(ctx, query,
		app.JobID,
		app.ApplicantID,
		app.CoverLetter,
		app.ResumePath,
		app.Status,
		app.Notes,
		app.AppliedAt,
		app.UpdatedAt,
	).Scan(&app.ID)
	if err != nil {
		if isUniqueViolation(err, "") {
			return apperror.Conflict("You have already applied for this job")
		}
		return apperror.Internal(err)
	}
	return nil
}

// GetByID retrieves an application with applicant and job data joined.
func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := `
		SELECT
			ap.id, ap.job_id, ap.applicant_id, ap.cover_letter, ap.resume_path,
			ap.status, ap.notes, ap.applied_at, ap.updated_at,
			a.email,
			NULLIF(TRIM(COALESCE(js.first_name, '') || ' ' || COALESCE(js.last_name, '')), ''),
			j.title
		FROM job_applications ap
		LEFT JOIN accounts a ON ap.applicant_id = a.id
		LEFT JOIN job_seeker_profiles js ON ap.applicant_id = js.account_id
		LEFT JOIN jobs j ON ap.job_id = j.id
		WHERE ap.id = $1`

	var app domain.Application
	err := r.db.QueryRow(ctx, query, id).Scan(
		&app.ID, &app.JobID, &app.ApplicantID, &app.CoverLetter, &app.ResumePath,
		&app.Status, &app.Notes, &app.AppliedAt, &app.UpdatedAt,
		&app.ApplicantEmail, &app.ApplicantName, &app.JobTitle,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// GetByJobID retrieves all applications for a job with applicant data joined.
func (r *applicationRepo) GetByJobID(ctx context.Context, jobID int64) ([]domain.Application, error) {
	query := `
		SELECT
			ap.id, ap.job_id, ap.applicant_id, ap.cover_letter, ap.resume_path,
			ap.status, ap.notes, ap.applied_at, ap.updated_at,
			a.email,
			NULLIF(TRIM(COALESCE(js.first_name, '') || ' ' || COALESCE(js.last_name, '')), '')
		FROM job_applications ap
		LEFT JOIN accounts a ON ap.applicant_id = a.id
		LEFT JOIN job_seeker_profiles js ON ap.applicant_id = js.account_id
		WHERE ap.job_id = $1
		ORDER BY ap.applied_at DESC`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.ApplicantID, &app.CoverLetter, &app.ResumePath,
			&app.Status, &app.Notes, &app.AppliedAt, &app.UpdatedAt,
			&app.ApplicantEmail, &app.ApplicantName,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// GetByApplicantID retrieves all applications for an applicant with job titles.
func (r *applicationRepo) GetByApplicantID(ctx context.Context, applicantID string) ([]domain.Application, error) {
	query := `
		SELECT
			ap.id, ap.job_id, ap.applicant_id, ap.cover_letter, ap.resume_path,
			ap.status, ap.notes, ap.applied_at, ap.updated_at,
			j.title
		FROM job_applications ap
		LEFT JOIN jobs j ON ap.job_id = j.id
		WHERE ap.applicant_id = $1
		ORDER BY ap.applied_at DESC`

	rows, err := r.db.Query(ctx, query, applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.ApplicantID, &app.CoverLetter, &app.ResumePath,
			&app.Status, &app.Notes, &app.AppliedAt, &app.UpdatedAt,
			&app.JobTitle,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// CheckExists reports whether an application exists for the (job, applicant)
// pair. Best-effort only; Create is the enforced guard.
func (r *applicationRepo) CheckExists(ctx context.Context, jobID int64, applicantID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM job_applications WHERE job_id = $1 AND applicant_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, jobID, applicantID).Scan(&exists)
	return exists, err
}

// UpdateStatus sets the status (and optionally staff notes) of an application.
func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status string, notes *string) error {
	query := `UPDATE job_applications SET status = $2, notes = COALESCE($3, notes), updated_at = $4 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, status, notes, time.Now())
	return checkUpdated(result, err)
}
