package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrResumeNotFound     = errors.New("resume not found")
	ErrResumeForbidden    = errors.New("resume does not belong to the specified owner")
	ErrResumeLimitReached = errors.New("maximum number of resumes reached")
)

type ValidationErrorType string

const (
	ErrRequired     ValidationErrorType = "required"
	ErrInvalidField ValidationErrorType = "invalid_field"
	ErrMaxLength    ValidationErrorType = "max_length"
	ErrXSSDetected  ValidationErrorType = "xss_detected"
	ErrDateRange    ValidationErrorType = "date_range"
)

type ValidationError struct {
	Field   string              `json:"field"`
	Message string              `json:"message"`
	Type    ValidationErrorType `json:"type"`
	Value   interface{}         `json:"value,omitempty"`
}

func NewValidationError(field, message string, errType ValidationErrorType) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Type:    errType,
	}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every field problem found in one request.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	messages := make([]string, 0, len(ve))
	for _, e := range ve {
		messages = append(messages, e.Error())
	}
	return strings.Join(messages, "; ")
}

// Prefixed returns a copy with every field name nested under prefix, e.g. "work_experiences[2]".
func (ve ValidationErrors) Prefixed(prefix string) ValidationErrors {
	out := make(ValidationErrors, 0, len(ve))
	for _, e := range ve {
		e.Field = prefix + "." + e.Field
		out = append(out, e)
	}
	return out
}
