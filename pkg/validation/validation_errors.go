package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	// Account fields
	"Email":    "Email",
	"Username": "Username",
	"Password": "Password",
	"Role":     "Role",

	// Clinic profile fields
	"ClinicName":      "Clinic name",
	"Address":         "Address",
	"Phone":           "Phone number",
	"Description":     "Description",
	"LicenseNumber":   "License number",
	"EstablishedDate": "Established date",
	"Website":         "Website",
	"ClinicType":      "Clinic type",
	"NumberOfDoctors": "Number of doctors",
	"Services":        "Services",

	// Employer profile fields
	"CompanyName":   "Company name",
	"ContactPerson": "Contact person",
	"Industry":      "Industry",
	"CompanySize":   "Company size",

	// Job seeker profile fields
	"FirstName":       "First name",
	"LastName":        "Last name",
	"DateOfBirth":     "Date of birth",
	"Profession":      "Profession",
	"ExperienceYears": "Years of experience",
	"Education":       "Education",
	"Skills":          "Skills",

	// Job fields
	"Title":               "Job title",
	"Requirements":        "Requirements",
	"Location":            "Location",
	"JobType":             "Job type",
	"Salary":              "Salary",
	"Company":             "Company",
	"ApplicationDeadline": "Application deadline",

	// Application fields
	"CoverLetter": "Cover letter",
	"Status":      "Status",
	"Notes":       "Notes",

	// Contact form fields
	"Name":    "Name",
	"Subject": "Subject",
	"Message": "Message",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", label)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, e.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, e.Param())
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", label, e.Param())
		}
		return fmt.Sprintf("%s must be at most %s", label, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or greater", label, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, e.Param())
	case "valid_phone":
		return fmt.Sprintf("%s must be a valid phone number", label)
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

func getFieldLabel(field string) string {
	if label, ok := FieldLabels[field]; ok {
		return label
	}
	return field
}
