package domain

import (
	"context"
	"time"
)

// ClinicProfile is the role-specific record for clinic accounts.
type ClinicProfile struct {
	ID                  int64      `json:"id"`
	AccountID           string     `json:"account_id"`
	ClinicName          string     `json:"clinic_name" validate:"required,max=255"`
	Address             string     `json:"address" validate:"required"`
	Phone               string     `json:"phone" validate:"required,valid_phone,max=20"`
	Description         string     `json:"description"`
	LicenseNumber       string     `json:"license_number" validate:"max=100"`
	EstablishedDate     *time.Time `json:"established_date,omitempty"`
	Website             string     `json:"website" validate:"omitempty,url"`
	ClinicType          string     `json:"clinic_type" validate:"max=100"`
	NumberOfDoctors     int        `json:"number_of_doctors" validate:"gte=0"`
	Services            string     `json:"services"`
	LogoPath            *string    `json:"logo_path,omitempty"`
	LicenseDocumentPath *string    `json:"license_document_path,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// EmployerProfile is the role-specific record for employer accounts.
type EmployerProfile struct {
	ID            int64     `json:"id"`
	AccountID     string    `json:"account_id"`
	CompanyName   string    `json:"company_name" validate:"required,max=255"`
	ContactPerson string    `json:"contact_person" validate:"required,max=255"`
	Phone         string    `json:"phone" validate:"required,valid_phone,max=20"`
	Address       string    `json:"address"`
	Industry      string    `json:"industry" validate:"max=100"`
	CompanySize   string    `json:"company_size" validate:"max=50"`
	Website       string    `json:"website" validate:"omitempty,url"`
	LogoPath      *string   `json:"logo_path,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// JobSeekerProfile is the role-specific record for job-seeker accounts.
type JobSeekerProfile struct {
	ID                 int64      `json:"id"`
	AccountID          string     `json:"account_id"`
	FirstName          string     `json:"first_name" validate:"required,max=100"`
	LastName           string     `json:"last_name" validate:"required,max=100"`
	Phone              string     `json:"phone" validate:"valid_phone,max=20"`
	Address            string     `json:"address"`
	DateOfBirth        *time.Time `json:"date_of_birth,omitempty"`
	Profession         string     `json:"profession" validate:"max=100"`
	ExperienceYears    int        `json:"experience_years" validate:"gte=0"`
	Education          string     `json:"education"`
	Skills             string     `json:"skills"`
	PhotoPath          *string    `json:"photo_path,omitempty"`
	ResumePath         *string    `json:"resume_path,omitempty"`
	CertificationsPath *string    `json:"certifications_path,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Profile is the tagged union of the three variants. Exactly one of the
// pointers matching Kind is set.
type Profile struct {
	Kind      ProfileKind       `json:"kind"`
	Clinic    *ClinicProfile    `json:"clinic,omitempty"`
	Employer  *EmployerProfile  `json:"employer,omitempty"`
	JobSeeker *JobSeekerProfile `json:"job_seeker,omitempty"`
}

// ID returns the variant row id, or zero when no variant is set.
func (p *Profile) ID() int64 {
	switch p.Kind {
	case KindClinic:
		return p.Clinic.ID
	case KindEmployer:
		return p.Employer.ID
	case KindJobSeeker:
		return p.JobSeeker.ID
	}
	return 0
}

// OwnerAccountID returns the owning account, for policy checks.
func (p *Profile) OwnerAccountID() string {
	switch p.Kind {
	case KindClinic:
		return p.Clinic.AccountID
	case KindEmployer:
		return p.Employer.AccountID
	case KindJobSeeker:
		return p.JobSeeker.AccountID
	}
	return ""
}

// ClinicProfilePatch holds the mutable clinic fields for partial updates.
// Nil fields are left untouched.
type ClinicProfilePatch struct {
	ClinicName          *string    `json:"clinic_name" validate:"omitempty,max=255"`
	Address             *string    `json:"address"`
	Phone               *string    `json:"phone" validate:"omitempty,valid_phone,max=20"`
	Description         *string    `json:"description"`
	LicenseNumber       *string    `json:"license_number" validate:"omitempty,max=100"`
	EstablishedDate     *time.Time `json:"established_date"`
	Website             *string    `json:"website" validate:"omitempty,url"`
	ClinicType          *string    `json:"clinic_type" validate:"omitempty,max=100"`
	NumberOfDoctors     *int       `json:"number_of_doctors" validate:"omitempty,gte=0"`
	Services            *string    `json:"services"`
	LogoPath            *string    `json:"logo_path"`
	LicenseDocumentPath *string    `json:"license_document_path"`
}

type EmployerProfilePatch struct {
	CompanyName   *string `json:"company_name" validate:"omitempty,max=255"`
	ContactPerson *string `json:"contact_person" validate:"omitempty,max=255"`
	Phone         *string `json:"phone" validate:"omitempty,valid_phone,max=20"`
	Address       *string `json:"address"`
	Industry      *string `json:"industry" validate:"omitempty,max=100"`
	CompanySize   *string `json:"company_size" validate:"omitempty,max=50"`
	Website       *string `json:"website" validate:"omitempty,url"`
	LogoPath      *string `json:"logo_path"`
}

type JobSeekerProfilePatch struct {
	FirstName          *string    `json:"first_name" validate:"omitempty,max=100"`
	LastName           *string    `json:"last_name" validate:"omitempty,max=100"`
	Phone              *string    `json:"phone" validate:"omitempty,valid_phone,max=20"`
	Address            *string    `json:"address"`
	DateOfBirth        *time.Time `json:"date_of_birth"`
	Profession         *string    `json:"profession" validate:"omitempty,max=100"`
	ExperienceYears    *int       `json:"experience_years" validate:"omitempty,gte=0"`
	Education          *string    `json:"education"`
	Skills             *string    `json:"skills"`
	PhotoPath          *string    `json:"photo_path"`
	ResumePath         *string    `json:"resume_path"`
	CertificationsPath *string    `json:"certifications_path"`
}

// ProfilePatch is the tagged union of the variant patches.
type ProfilePatch struct {
	Clinic    *ClinicProfilePatch
	Employer  *EmployerProfilePatch
	JobSeeker *JobSeekerProfilePatch
}

type ProfileRepository interface {
	GetClinicByAccountID(ctx context.Context, accountID string) (*ClinicProfile, error)
	GetEmployerByAccountID(ctx context.Context, accountID string) (*EmployerProfile, error)
	GetJobSeekerByAccountID(ctx context.Context, accountID string) (*JobSeekerProfile, error)
	CreateClinic(ctx context.Context, p *ClinicProfile) error
	CreateEmployer(ctx context.Context, p *EmployerProfile) error
	CreateJobSeeker(ctx context.Context, p *JobSeekerProfile) error
	UpdateClinic(ctx context.Context, p *ClinicProfile) error
	UpdateEmployer(ctx context.Context, p *EmployerProfile) error
	UpdateJobSeeker(ctx context.Context, p *JobSeekerProfile) error
}

type ProfileUsecase interface {
	// Resolve returns the profile variant matching the account's role, or
	// ErrNotFound (as apperror.NotFound) when none exists yet.
	Resolve(ctx context.Context, account *Account) (*Profile, error)
	Create(ctx context.Context, account *Account, profile *Profile) (*Profile, error)
	Update(ctx context.Context, account *Account, patch *ProfilePatch) (*Profile, error)
}
