// Package validator adapts go-playground/validator to echo and to the
// domain's field-level validation errors.
package validator

import (
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"tasker/config"
	domainerrors "tasker/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

const (
	tagPassword = "password"

	defaultPasswordMinLength = 8
	defaultPasswordMaxLength = 72
)

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate  *validator.Validate
	minLength int
	maxLength int
}

// New builds the validator. Password bounds come from passwordPolicy and are
// counted in characters.
func New(cfg *config.Config) (*CustomValidator, error) {
	v := &CustomValidator{
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		minLength: defaultPasswordMinLength,
		maxLength: defaultPasswordMaxLength,
	}
	if cfg != nil && cfg.PasswordPolicy != nil {
		if cfg.PasswordPolicy.MinLength > 0 {
			v.minLength = cfg.PasswordPolicy.MinLength
		}
		if cfg.PasswordPolicy.MaxLength > 0 {
			v.maxLength = cfg.PasswordPolicy.MaxLength
		}
	}

	// Report JSON field names rather than Go field names.
	v.validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}

		return name
	})

	if err := v.registerRule(tagPassword, v.validPassword); err != nil {
		return nil, err
	}

	return v, nil
}

func (v *CustomValidator) registerRule(tag string, fn validator.Func) error {
	if err := v.validate.RegisterValidation(tag, fn); err != nil {
		return errors.Wrapf(err, "register %q validation", tag)
	}

	return nil
}

func (v *CustomValidator) validPassword(fl validator.FieldLevel) bool {
	length := utf8.RuneCountInString(fl.Field().String())

	return length >= v.minLength && length <= v.maxLength
}

// Validate returns nil or a domain validation error carrying one entry per invalid field.
func (v *CustomValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errors.Wrap(err, "validation failed")
	}

	fields := make([]domainerrors.FieldError, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(fields, domainerrors.FieldError{
			Field:   fieldErr.Field(),
			Message: v.message(fieldErr),
		})
	}

	return errors.WithStack(domainerrors.NewValidationError(fields...))
}

func (v *CustomValidator) message(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldErr.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fieldErr.Field())
	case tagPassword:
		return fmt.Sprintf("%s must be between %d and %d characters", fieldErr.Field(), v.minLength, v.maxLength)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fieldErr.Field(), fieldErr.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fieldErr.Field(), fieldErr.Param())
	default:
		return fmt.Sprintf("%s is invalid", fieldErr.Field())
	}
}
