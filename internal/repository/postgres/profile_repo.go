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

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

// The UNIQUE(account_id) constraint on each variant table is the enforced
// one-profile-per-account contract; usecase existence pre-checks are only a
// friendlier error for the common case.

func (r *profileRepo) GetClinicByAccountID(ctx context.Context, accountID string) (*domain.ClinicProfile, error) {
	query := `SELECT id, account_id, clinic_name, address, phone, description, license_number,
	                 established_date, website, clinic_type, number_of_doctors, services,
	                 logo_path, license_document_path, created_at, updated_at
	          FROM clinic_profiles WHERE account_id = $1`
	var p domain.ClinicProfile
	err := r.db.QueryRow(ctx, query, accountID).Scan(
		&p.ID, &p.AccountID, &p.ClinicName, &p.Address, &p.Phone, &p.Description, &p.LicenseNumber,
		&p.EstablishedDate, &p.Website, &p.ClinicType, &p.NumberOfDoctors, &p.Services,
		&p.LogoPath, &p.LicenseDocumentPath, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) GetEmployerByAccountID(ctx context.Context, accountID string) (*domain.EmployerProfile, error) {
	query := `SELECT id, account_id, company_name, contact_person, phone, address, industry,
	                 company_size, website, logo_path, created_at, updated_at
	          FROM employer_profiles WHERE account_id = $1`
	var p domain.EmployerProfile
	err := r.db.QueryRow(ctx, query, accountID).Scan(
		&p.ID, &p.AccountID, &p.CompanyName, &p.ContactPerson, &p.Phone, &p.Address, &p.Industry,
		&p.CompanySize, &p.Website, &p.LogoPath, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) GetJobSeekerByAccountID(ctx context.Context, accountID string) (*domain.JobSeekerProfile, error) {
	query := `SELECT id, account_id, first_name, last_name, phone, address, date_of_birth,
	                 profession, experience_years, education, skills,
	                 photo_path, resume_path, certifications_path, created_at, updated_at
	          FROM job_seeker_profiles WHERE account_id = $1`
	var p domain.JobSeekerProfile
	err := r.db.QueryRow(ctx, query, accountID).Scan(
		&p.ID, &p.AccountID, &p.FirstName, &p.LastName, &p.Phone, &p.Address, &p.DateOfBirth,
		&p.Profession, &p.ExperienceYears, &p.Education, &p.Skills,
		&p.PhotoPath, &p.ResumePath, &p.CertificationsPath, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) CreateClinic(ctx context.Context, p *domain.ClinicProfile) error {
	query := `INSERT INTO clinic_profiles (account_id, clinic_name, address, phone, description, license_number,
	              established_date, website, clinic_type, number_of_doctors, services,
	              logo_path, license_document_path, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	err := r.db.QueryRow(ctx, query,
		p.AccountID, p.ClinicName, p.Address, p.Phone, p.Description, p.LicenseNumber,
		p.EstablishedDate, p.Website, p.ClinicType, p.NumberOfDoctors, p.Services,
		p.LogoPath, p.LicenseDocumentPath, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	return translateProfileInsertErr(err)
}

func (r *profileRepo) CreateEmployer(ctx context.Context, p *domain.EmployerProfile) error {
	query := `INSERT INTO employer_profiles (account_id, company_name, contact_person, phone, address, industry,
	              company_size, website, logo_path, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	err := r.db.QueryRow(ctx, query,
		p.AccountID, p.CompanyName, p.ContactPerson, p.Phone, p.Address, p.Industry,
		p.CompanySize, p.Website, p.LogoPath, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	return translateProfileInsertErr(err)
}

func (r *profileRepo) CreateJobSeeker(ctx context.Context, p *domain.JobSeekerProfile) error {
	query := `INSERT INTO job_seeker_profiles (account_id, first_name, last_name, phone, address, date_of_birth,
	              profession, experience_years, education, skills,
	              photo_path, resume_path, certifications_path, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	err := r.db.QueryRow(ctx, query,
		p.AccountID, p.FirstName, p.LastName, p.Phone, p.Address, p.DateOfBirth,
		p.Profession, p.ExperienceYears, p.Education, p.Skills,
		p.PhotoPath, p.ResumePath, p.CertificationsPath, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	return translateProfileInsertErr(err)
}

func translateProfileInsertErr(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err, "") {
		return apperror.Conflict("Profile already exists for this account")
	}
	return apperror.Internal(err)
}

func (r *profileRepo) UpdateClinic(ctx context.Context, p *domain.ClinicProfile) error {
	query := `UPDATE clinic_profiles SET
	              clinic_name = $2, address = $3, phone = $4, description = $5, license_number = $6,
	              established_date = $7, website = $8, clinic_type = $9, number_of_doctors = $10,
	              services = $11, logo_path = $12, license_document_path = $13, updated_at = $14
	          WHERE id = $1`
	p.UpdatedAt = time.Now()
	result, err := r.db.Exec(ctx, query,
		p.ID, p.ClinicName, p.Address, p.Phone, p.Description, p.LicenseNumber,
		p.EstablishedDate, p.Website, p.ClinicType, p.NumberOfDoctors,
		p.Services, p.LogoPath, p.LicenseDocumentPath, p.UpdatedAt,
	)
	return checkUpdated(result, err)
}

func (r *profileRepo) UpdateEmployer(ctx context.Context, p *domain.EmployerProfile) error {
	query := `UPDATE employer_profiles SET
	              company_name = $2, contact_person = $3, phone = $4, address = $5, industry = $6,
	              company_size = $7, website = $8, logo_path = $9, updated_at = $10
	          WHERE id = $1`
	p.UpdatedAt = time.Now()
	result, err := r.db.Exec(ctx, query,
		p.ID, p.CompanyName, p.ContactPerson, p.Phone, p.Address, p.Industry,
		p.CompanySize, p.Website, p.LogoPath, p.UpdatedAt,
	)
	return checkUpdated(result, err)
}

func (r *profileRepo) UpdateJobSeeker(ctx context.Context, p *domain.JobSeekerProfile) error {
	query := `UPDATE job_seeker_profiles SET
	              first_name = $2, last_name = $3, phone = $4, address = $5, date_of_birth = $6,
	              profession = $7, experience_years = $8, education = $9, skills = $10,
	              photo_path = $11, resume_path = $12, certifications_path = $13, updated_at = $14
	          WHERE id = $1`
	p.UpdatedAt = time.Now()
	result, err := r.db.Exec(ctx, query,
		p.ID, p.FirstName, p.LastName, p.Phone, p.Address, p.DateOfBirth,
		p.Profession, p.ExperienceYears, p.Education, p.Skills,
		p.PhotoPath, p.ResumePath, p.CertificationsPath, p.UpdatedAt,
	)
	return checkUpdated(result, err)
}

func checkUpdated(result pgconn.CommandTag, err error) error {
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
