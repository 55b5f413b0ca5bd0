package service

import (
	"errors"

	"wiki-quiz/internal/domain"
)

// Outcome classifies a failed operation for the caller.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeClientError
	OutcomeNotFound
	OutcomeServerError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeClientError:
		return "client_error"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "server_error"
	}
}

// OutcomeOf maps an error to its outcome. Only bad input and missing quizzes
// are the caller's concern; every other failure, including a duplicate URL,
// is a server error.
func OutcomeOf(err error) Outcome {
	if err == nil {
		return OutcomeOK
	}

	var validationErrs domain.ValidationErrors
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case domain.ErrInvalidInput, domain.ErrValidation:
			return OutcomeClientError
		case domain.ErrNotFound:
			return OutcomeNotFound
		default:
			return OutcomeServerError
		}
	}
	if errors.As(err, &validationErrs) {
		return OutcomeClientError
	}
	return OutcomeServerError
}
