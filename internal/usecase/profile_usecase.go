package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clinic-portal-backend/internal/domain"
	"clinic-portal-backend/internal/policy"
	"clinic-portal-backend/pkg/apperror"
	"clinic-portal-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type profileUsecase struct {
	profileRepo domain.ProfileRepository
	validate    *validator.Validate
}

// NewProfileUsecase creates a new profile usecase
func NewProfileUsecase(profileRepo domain.ProfileRepository, validate *validator.Validate) domain.ProfileUsecase {
	return &profileUsecase{
		profileRepo: profileRepo,
		validate:    validate,
	}
}

// Resolve loads the profile variant matching the account's role.
func (uc *profileUsecase) Resolve(ctx context.Context, account *domain.Account) (*domain.Profile, error) {
	switch account.Role.ProfileKind() {
	case domain.KindClinic:
		p, err := uc.profileRepo.GetClinicByAccountID(ctx, account.ID)
		if err != nil {
			return nil, mapProfileErr(err)
		}
		return &domain.Profile{Kind: domain.KindClinic, Clinic: p}, nil
	case domain.KindEmployer:
		p, err := uc.profileRepo.GetEmployerByAccountID(ctx, account.ID)
		if err != nil {
			return nil, mapProfileErr(err)
		}
		return &domain.Profile{Kind: domain.KindEmployer, Employer: p}, nil
	case domain.KindJobSeeker:
		p, err := uc.profileRepo.GetJobSeekerByAccountID(ctx, account.ID)
		if err != nil {
			return nil, mapProfileErr(err)
		}
		return &domain.Profile{Kind: domain.KindJobSeeker, JobSeeker: p}, nil
	default:
		return nil, apperror.NotFound("This account type does not have a profile")
	}
}

// Create stores the account's profile. The variant must match the account's
// role and each account gets exactly one; the store's unique constraint on
// account_id is the real guarantee, the lookup here only improves the error.
func (uc *profileUsecase) Create(ctx context.Context, account *domain.Account, profile *domain.Profile) (*domain.Profile, error) {
	kind := account.Role.ProfileKind()
	if kind == domain.KindNone {
		return nil, apperror.BadRequest("This account type does not have a profile")
	}
	if profile.Kind != kind {
		return nil, apperror.BadRequest(fmt.Sprintf("Profile type %q does not match account role %q", profile.Kind, account.Role))
	}

	if existing, err := uc.Resolve(ctx, account); err == nil {
		return nil, apperror.Conflict(fmt.Sprintf("Profile already exists (id %d); use update instead", existing.ID()))
	}

	switch kind {
	case domain.KindClinic:
		profile.Clinic.AccountID = account.ID
		if err := uc.validateStruct(profile.Clinic); err != nil {
			return nil, err
		}
		if err := uc.profileRepo.CreateClinic(ctx, profile.Clinic); err != nil {
			return nil, err
		}
	case domain.KindEmployer:
		profile.Employer.AccountID = account.ID
		if err := uc.validateStruct(profile.Employer); err != nil {
			return nil, err
		}
		if err := uc.profileRepo.CreateEmployer(ctx, profile.Employer); err != nil {
			return nil, err
		}
	case domain.KindJobSeeker:
		profile.JobSeeker.AccountID = account.ID
		if err := uc.validateStruct(profile.JobSeeker); err != nil {
			return nil, err
		}
		if err := uc.profileRepo.CreateJobSeeker(ctx, profile.JobSeeker); err != nil {
			return nil, err
		}
	}
	return profile, nil
}

// Update applies a partial patch to the account's own profile. Nil patch
// fields leave the stored values untouched.
func (uc *profileUsecase) Update(ctx context.Context, account *domain.Account, patch *domain.ProfilePatch) (*domain.Profile, error) {
	current, err := uc.Resolve(ctx, account)
	if err != nil {
		return nil, err
	}
	if err := policy.Decide(account, policy.ActionEditProfile, current); err != nil {
		return nil, err
	}

	switch current.Kind {
	case domain.KindClinic:
		if patch.Clinic == nil {
			return nil, apperror.BadRequest("Expected clinic profile fields")
		}
		applyClinicPatch(current.Clinic, patch.Clinic)
		if err := uc.validateStruct(current.Clinic); err != nil {
			return nil, err
		}
		if err := uc.profileRepo.UpdateClinic(ctx, current.Clinic); err != nil {
			return nil, err
		}
	case domain.KindEmployer:
		if patch.Employer == nil {
			return nil, apperror.BadRequest("Expected employer profile fields")
		}
		applyEmployerPatch(current.Employer, patch.Employer)
		if err := uc.validateStruct(current.Employer); err != nil {
			return nil, err
		}
		if err := uc.profileRepo.UpdateEmployer(ctx, current.Employer); err != nil {
			return nil, err
		}
	case domain.KindJobSeeker:
		if patch.JobSeeker == nil {
			return nil, apperror.BadRequest("Expected job seeker profile fields")
		}
		applyJobSeekerPatch(current.JobSeeker, patch.JobSeeker)
		if err := uc.validateStruct(current.JobSeeker); err != nil {
			return nil, err
		}
		if err := uc.profileRepo.UpdateJobSeeker(ctx, current.JobSeeker); err != nil {
			return nil, err
		}
	}
	return current, nil
}

func (uc *profileUsecase) validateStruct(s interface{}) error {
	if err := uc.validate.Struct(s); err != nil {
		return apperror.UnprocessableEntity(strings.Join(validation.FormatValidationErrors(err), "; "))
	}
	return nil
}

func mapProfileErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound("Profile not found")
	}
	return apperror.Internal(err)
}

func applyClinicPatch(p *domain.ClinicProfile, patch *domain.ClinicProfilePatch) {
	if patch.ClinicName != nil {
		p.ClinicName = *patch.ClinicName
	}
	if patch.Address != nil {
		p.Address = *patch.Address
	}
	if patch.Phone != nil {
		p.Phone = *patch.Phone
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.LicenseNumber != nil {
		p.LicenseNumber = *patch.LicenseNumber
	}
	if patch.EstablishedDate != nil {
		p.EstablishedDate = patch.EstablishedDate
	}
	if patch.Website != nil {
		p.Website = *patch.Website
	}
	if patch.ClinicType != nil {
		p.ClinicType = *patch.ClinicType
	}
	if patch.NumberOfDoctors != nil {
		p.NumberOfDoctors = *patch.NumberOfDoctors
	}
	if patch.Services != nil {
		p.Services = *patch.Services
	}
	if patch.LogoPath != nil {
		p.LogoPath = patch.LogoPath
	}
	if patch.LicenseDocumentPath != nil {
		p.LicenseDocumentPath = patch.LicenseDocumentPath
	}
}

func applyEmployerPatch(p *domain.EmployerProfile, patch *domain.EmployerProfilePatch) {
	if patch.CompanyName != nil {
		p.CompanyName = *patch.CompanyName
	}
	if patch.ContactPerson != nil {
		p.ContactPerson = *patch.ContactPerson
	}
	if patch.Phone != nil {
		p.Phone = *patch.Phone
	}
	if patch.Address != nil {
		p.Address = *patch.Address
	}
	if patch.Industry != nil {
		p.Industry = *patch.Industry
	}
	if patch.CompanySize != nil {
		p.CompanySize = *patch.CompanySize
	}
	if patch.Website != nil {
		p.Website = *patch.Website
	}
	if patch.LogoPath != nil {
		p.LogoPath = patch.LogoPath
	}
}

func applyJobSeekerPatch(p *domain.JobSeekerProfile, patch *domain.JobSeekerProfilePatch) {
	if patch.FirstName != nil {
		p.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		p.LastName = *patch.LastName
	}
	if patch.Phone != nil {
		p.Phone = *patch.Phone
	}
	if patch.Address != nil {
		p.Address = *patch.Address
	}
	if patch.DateOfBirth != nil {
		p.DateOfBirth = patch.DateOfBirth
	}
	if patch.Profession != nil {
		p.Profession = *patch.Profession
	}
	if patch.ExperienceYears != nil {
		p.ExperienceYears = *patch.ExperienceYears
	}
	if patch.Education != nil {
		p.Education = *patch.Education
	}
	if patch.Skills != nil {
		p.Skills = *patch.Skills
	}
	if patch.PhotoPath != nil {
		p.PhotoPath = patch.PhotoPath
	}
	if patch.ResumePath != nil {
		p.ResumePath = patch.ResumePath
	}
	if patch.CertificationsPath != nil {
		p.CertificationsPath = patch.CertificationsPath
	}
}
