package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// DomainModel is implemented by every entity that is sanitised and validated before it is saved.
type DomainModel interface {
	Validate() error
	BeforeSave()
}

var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

// getValidator lazily initializes and returns a shared validator instance with custom rules.
func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
		validatorInst.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validatorInst.RegisterStructValidation(workExperienceStructValidation, WorkExperience{})
		validatorInst.RegisterStructValidation(sideProjectStructValidation, SideProject{})
	})
	return validatorInst
}

func workExperienceStructValidation(sl validator.StructLevel) {
	exp := sl.Current().Interface().(WorkExperience)
	if exp.StartDate == nil || exp.EndDate == nil {
		return
	}
	if exp.EndDate.Before(*exp.StartDate) {
		sl.ReportError(exp.EndDate, "end_date", "EndDate", "after_start", "")
	}
}

func sideProjectStructValidation(sl validator.StructLevel) {
	project := sl.Current().Interface().(SideProject)
	if project.StartDate == nil || project.EndDate == nil {
		return
	}
	if project.EndDate.Before(*project.StartDate) {
		sl.ReportError(project.EndDate, "end_date", "EndDate", "after_start", "")
	}
}

// ValidateStruct validates a struct using go-playground/validator and maps errors into the
// project's ValidationErrors format for consistent error handling.
func ValidateStruct(model interface{}) error {
	err := getValidator().Struct(model)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	mapped := make(ValidationErrors, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		mapped = append(mapped, ValidationError{
			Field:   fieldErr.Field(),
			Message: formatValidationMessage(fieldErr),
			Type:    validationErrorType(fieldErr),
			Value:   fieldErr.Value(),
		})
	}
	return mapped
}

func formatValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "field is required"
	case "max":
		return fmt.Sprintf("must not exceed %s", err.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "after_start":
		return "must not be before the start date"
	default:
		return err.Error()
	}
}

func validationErrorType(err validator.FieldError) ValidationErrorType {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "max":
		return ErrMaxLength
	case "after_start":
		return ErrDateRange
	default:
		return ErrInvalidField
	}
}

// SecuritySanitizer provides HTML sanitization helpers.
type SecuritySanitizer struct {
	policy *bluemonday.Policy
}

var (
	sanitizerOnce sync.Once
	sanitizerInst *SecuritySanitizer
)

// NewSecuritySanitizer returns the shared strict sanitizer; bluemonday policies are safe for
// concurrent use once built.
func NewSecuritySanitizer() *SecuritySanitizer {
	sanitizerOnce.Do(func() {
		sanitizerInst = &SecuritySanitizer{policy: bluemonday.StrictPolicy()}
	})
	return sanitizerInst
}

func (s *SecuritySanitizer) SanitizeString(input string) string {
	return strings.TrimSpace(s.policy.Sanitize(input))
}

func (s *SecuritySanitizer) SanitizeStrings(inputs []string) []string {
	result := make([]string, 0, len(inputs))
	for _, input := range inputs {
		if cleaned := s.SanitizeString(input); cleaned != "" {
			result = append(result, cleaned)
		}
	}
	return result
}

// ValidateAndSanitize runs BeforeSave and then Validate.
func ValidateAndSanitize(model DomainModel) error {
	model.BeforeSave()
	return model.Validate()
}
