package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-portal-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	now := time.Now()
	job.CreatedAt, job.UpdatedAt = now, now
	query := `INSERT INTO jobs (posted_by, title, description, requirements, location, job_type, salary, company, is_active, application_deadline, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	return r.db.QueryRow(ctx, query,
		job.PostedBy, job.Title, job.Description, job.Requirements, job.Location, job.JobType,
		job.Salary, job.Company, job.IsActive, job.ApplicationDeadline,
		job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
}

// GetByID retrieves a job with the poster email and application count joined.
func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `
		SELECT
			j.id, j.posted_by, j.title, j.description, j.requirements, j.location,
			j.job_type, j.salary, j.company, j.is_active, j.application_deadline,
			j.created_at, j.updated_at,
			a.email,
			(SELECT COUNT(*) FROM job_applications ja WHERE ja.job_id = j.id)
		FROM jobs j
		LEFT JOIN accounts a ON j.posted_by = a.id
		WHERE j.id = $1`

	var job domain.Job
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.PostedBy, &job.Title, &job.Description, &job.Requirements, &job.Location,
		&job.JobType, &job.Salary, &job.Company, &job.IsActive, &job.ApplicationDeadline,
		&job.CreatedAt, &job.UpdatedAt,
		&job.PosterEmail, &job.TotalApplications,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// Fetch lists jobs matching the filter, newest first, with a total count.
func (r *jobRepo) Fetch(ctx context.Context, filter domain.JobFilter, limit, offset int) ([]domain.Job, int64, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argN := 1

	if filter.OnlyActive {
		where += ` AND j.is_active = true`
	}
	if filter.PostedBy != "" {
		where += fmt.Sprintf(` AND j.posted_by = $%d`, argN)
		args = append(args, filter.PostedBy)
		argN++
	}
	if filter.Search != "" {
		where += fmt.Sprintf(` AND (j.title ILIKE $%d OR j.location ILIKE $%d OR j.company ILIKE $%d)`, argN, argN, argN)
		args = append(args, "%"+filter.Search+"%")
		argN++
	}

	countQuery := `SELECT COUNT(*) FROM jobs j` + where
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT
			j.id, j.posted_by, j.title, j.description, j.requirements, j.location,
			j.job_type, j.salary, j.company, j.is_active, j.application_deadline,
			j.created_at, j.updated_at,
			a.email,
			(SELECT COUNT(*) FROM job_applications ja WHERE ja.job_id = j.id)
		FROM jobs j
		LEFT JOIN accounts a ON j.posted_by = a.id` + where +
		fmt.Sprintf(` ORDER BY j.created_at DESC LIMIT $%d OFFSET $%d`, argN, argN+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(
			&job.ID, &job.PostedBy, &job.Title, &job.Description, &job.Requirements, &job.Location,
			&job.JobType, &job.Salary, &job.Company, &job.IsActive, &job.ApplicationDeadline,
			&job.CreatedAt, &job.UpdatedAt,
			&job.PosterEmail, &job.TotalApplications,
		); err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, job)
	}

	return jobs, total, rows.Err()
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	job.UpdatedAt = time.Now()
	query := `UPDATE jobs SET
		title = $2,
		description = $3,
		requirements = $4,
		location = $5,
		job_type = $6,
		salary = $7,
		company = $8,
		application_deadline = $9,
		updated_at = $10
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Description, job.Requirements, job.Location,
		job.JobType, job.Salary, job.Company, job.ApplicationDeadline,
		job.UpdatedAt,
	)
	return checkUpdated(result, err)
}

func (r *jobRepo) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE jobs SET is_active = $2, updated_at = now() WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, active)
	return checkUpdated(result, err)
}

// Delete hard-deletes a job; applications cascade at the store level.
func (r *jobRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM jobs WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id)
	return checkUpdated(result, err)
}
