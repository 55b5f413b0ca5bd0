package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrValidation   ErrorCode = "VALIDATION_ERROR"

	// Extraction errors
	ErrFetchFailed      ErrorCode = "FETCH_FAILED"
	ErrExtractionFailed ErrorCode = "EXTRACTION_FAILED"
	ErrNoContent        ErrorCode = "NO_CONTENT"

	// Synthesis errors
	ErrConfiguration   ErrorCode = "CONFIGURATION_ERROR"
	ErrSynthesisFailed ErrorCode = "SYNTHESIS_FAILED"
	ErrLLMServiceError ErrorCode = "LLM_SERVICE_ERROR"

	// Store errors
	ErrDuplicateURL     ErrorCode = "DUPLICATE_URL"
	ErrStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Error(),
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf returns the code of the first DomainError in err's chain.
// ValidationErrors report ErrValidation; anything else is ErrInternal.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	var validationErrs ValidationErrors
	if errors.As(err, &validationErrs) {
		return ErrValidation
	}
	return ErrInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(ErrNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewQuizNotFoundError(quizID string) *DomainError {
	return NewError(ErrNotFound, fmt.Sprintf("Quiz not found with ID: %s", quizID), nil)
}

func NewFetchFailedError(url string, err error) *DomainError {
	return NewError(ErrFetchFailed, fmt.Sprintf("Failed to fetch Wikipedia article %s", url), err)
}

func NewExtractionFailedError(message string, err error) *DomainError {
	return NewError(ErrExtractionFailed, message, err)
}

func NewNoContentError() *DomainError {
	return NewError(ErrNoContent, "No content could be extracted from the article", nil)
}

func NewConfigurationError(message string) *DomainError {
	return NewError(ErrConfiguration, message, nil)
}

func NewSynthesisFailedError(err error) *DomainError {
	return NewError(ErrSynthesisFailed, "Failed to generate quiz", err)
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(ErrLLMServiceError, "Failed to process with LLM service", err)
}

func NewDuplicateURLError(url string, err error) *DomainError {
	return NewError(ErrDuplicateURL, fmt.Sprintf("A quiz already exists for URL: %s", url), err)
}

func NewStoreUnavailableError(message string, err error) *DomainError {
	return NewError(ErrStoreUnavailable, message, err)
}

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every field violation found in one pass.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("has invalid format: %q", value)}
}

func NewWrongTypeError(field, want string) ValidationError {
	return ValidationError{Field: field, Message: "must be " + want}
}
