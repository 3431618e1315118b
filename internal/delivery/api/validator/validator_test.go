package validator

import (
	"strings"
	"testing"

	"tasker/config"
	domainerrors "tasker/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Name     string `json:"name" validate:"omitempty,max=10"`
}

func newValidator(t *testing.T, cfg *config.Config) *CustomValidator {
	t.Helper()

	v, err := New(cfg)
	require.NoError(t, err)

	return v
}

func fieldErrors(t *testing.T, err error) []domainerrors.FieldError {
	t.Helper()

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())

	fields, ok := appErr.Details().([]domainerrors.FieldError)
	require.True(t, ok)

	return fields
}

func TestValidate_Valid(t *testing.T) {
	v := newValidator(t, nil)

	err := v.Validate(&registerRequest{Email: "alice@example.com", Password: "longenoughpassword"})
	assert.NoError(t, err)
}

func TestValidate_FieldErrors(t *testing.T) {
	v := newValidator(t, nil)

	err := v.Validate(&registerRequest{Email: "not-an-email", Password: "short", Name: "a very long name"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	fields := fieldErrors(t, err)
	require.Len(t, fields, 3)
	assert.Equal(t, domainerrors.FieldError{Field: "email", Message: "email must be a valid email address"}, fields[0])
	assert.Equal(t, domainerrors.FieldError{Field: "password", Message: "password must be between 8 and 72 characters"}, fields[1])
	assert.Equal(t, "name", fields[2].Field)
}

func TestValidate_PasswordCountsCharacters(t *testing.T) {
	v := newValidator(t, nil)

	// 72 three-byte runes are 216 bytes but still 72 characters.
	err := v.Validate(&registerRequest{Email: "alice@example.com", Password: strings.Repeat("€", 72)})
	assert.NoError(t, err)

	err = v.Validate(&registerRequest{Email: "alice@example.com", Password: strings.Repeat("a", 73)})
	assert.Error(t, err)
}

func TestValidate_PasswordPolicyFromConfig(t *testing.T) {
	v := newValidator(t, &config.Config{PasswordPolicy: &config.PasswordPolicyConfig{MinLength: 12, MaxLength: 64}})

	err := v.Validate(&registerRequest{Email: "alice@example.com", Password: "elevenchars"})
	require.Error(t, err)
	assert.Equal(t, "password must be between 12 and 64 characters", fieldErrors(t, err)[0].Message)

	assert.NoError(t, v.Validate(&registerRequest{Email: "alice@example.com", Password: "twelve-chars"}))
}

func TestValidate_Required(t *testing.T) {
	v := newValidator(t, nil)

	fields := fieldErrors(t, v.Validate(&registerRequest{}))
	require.Len(t, fields, 2)
	assert.Equal(t, "email is required", fields[0].Message)
	assert.Equal(t, "password is required", fields[1].Message)
}

func TestRegisterRule_RejectsEmptyTag(t *testing.T) {
	v := newValidator(t, nil)

	err := v.registerRule("", v.validPassword)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `register "" validation`)
}
