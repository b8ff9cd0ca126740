package errs

import (
	"errors"
)

var (
	ErrNotFound = errors.New("not found")

	ErrAlreadyBorrowed   = errors.New("book is already borrowed")
	ErrAlreadyReserved   = errors.New("book is already reserved")
	ErrPassAlreadyIssued = errors.New("pass already issued for this event")

	ErrNoCopiesAvailable = errors.New("no copies available")
	ErrNoSeatsLeft       = errors.New("no seats left")

	ErrInvalidState    = errors.New("operation not valid for current state")
	ErrLoanOverdue     = errors.New("loan is overdue")
	ErrRenewalExceeded = errors.New("renewal limit reached")
)

type Kind uint8

const (
	KindUnknown Kind = iota
	KindNotFound
	KindConflict
	KindCapacityExceeded
	KindInvalidState
)

// KindOf classifies an error into the taxonomy the transport layer maps to
// status codes. Wrapped errors are matched with errors.Is.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrAlreadyBorrowed),
		errors.Is(err, ErrAlreadyReserved),
		errors.Is(err, ErrPassAlreadyIssued):
		return KindConflict
	case errors.Is(err, ErrNoCopiesAvailable),
		errors.Is(err, ErrNoSeatsLeft):
		return KindCapacityExceeded
	case errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrLoanOverdue),
		errors.Is(err, ErrRenewalExceeded):
		return KindInvalidState
	default:
		return KindUnknown
	}
}

type ValidationErrorResponse struct {
	Message string `json:"message"`
	Errors  struct {
		AdditionalProperties string `json:"additionalProperties"`
	} `json:"errors"`
}
