package validation

import (
	"net/url"
	"regexp"
	"strings"

	"wiki-quiz/internal/domain"
)

var validULID = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateQuizRequest checks that url is an absolute http(s) URL.
// Which hosts are accepted is decided by the extractor.
func (v *Validator) ValidateGenerateQuizRequest(rawURL string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		errors = append(errors, domain.NewMissingFieldError("url"))
		return errors
	}
	if !isValidHTTPURL(rawURL) {
		errors = append(errors, domain.NewInvalidFormatError("url", rawURL))
	}

	return errors
}

// ValidateQuizID validates a quiz id path parameter
func (v *Validator) ValidateQuizID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("id"))
	} else if !isValidULID(id) {
		errors = append(errors, domain.NewInvalidFormatError("id", id))
	}

	return errors
}

// Helper functions for validation

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	// ULID is 26 characters long, Crockford's Base32
	return validULID.MatchString(s)
}

func isValidHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
