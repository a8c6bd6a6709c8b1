package validation_test

import (
	"testing"

	"clinic-portal-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type sampleForm struct {
	ClinicName string `validate:"required,max=255"`
	Email      string `validate:"required,email"`
	Website    string `validate:"omitempty,url"`
	Phone      string `validate:"valid_phone"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	validation.RegisterValidators(v)
	return v
}

func TestFormatValidationErrors(t *testing.T) {
	v := newValidator()

	err := v.Struct(sampleForm{Email: "not-an-email", Website: "not a url"})
	assert.Error(t, err)

	messages := validation.FormatValidationErrors(err)
	assert.Contains(t, messages, "Clinic name is required")
	assert.Contains(t, messages, "Email must be a valid email address")
	assert.Contains(t, messages, "Website must be a valid URL")
}

func TestFormatValidationErrorsNonValidatorError(t *testing.T) {
	messages := validation.FormatValidationErrors(assert.AnError)
	assert.Len(t, messages, 1)
	assert.Equal(t, assert.AnError.Error(), messages[0])
}

func TestValidPhone(t *testing.T) {
	v := newValidator()

	valid := []string{"", "+4712345678", "12345678", "123456789012345"}
	for _, phone := range valid {
		assert.NoError(t, v.Struct(sampleForm{ClinicName: "c", Email: "a@b.com", Phone: phone}), phone)
	}

	invalid := []string{"123", "+12 34 56 78", "phone", "1234567890123456"}
	for _, phone := range invalid {
		err := v.Struct(sampleForm{ClinicName: "c", Email: "a@b.com", Phone: phone})
		assert.Error(t, err, phone)
		assert.Contains(t, validation.FormatValidationErrors(err)[0], "valid phone number")
	}
}
