// Package errors provides a structured error code system for campus.
//
// Error Code Format: AABBCCC (7 digits)
//
//	AA  (00-99): Service/Module code - identifies the source service
//	BB  (00-99): Category code - identifies the error category
//	CCC (000-999): Sequence number - specific error within the category
//
// Usage:
//
//	// Using predefined errors
//	return errors.ErrBadRequest.WithMessage("title is required")
//
//	// Wrapping underlying errors
//	return errors.ErrDatabase.WithCause(err)
package errors

import (
	"fmt"
	"net/http"
)

// Category codes (BB).
const (
	CategorySuccess       = 0
	CategoryRequest       = 1
	CategoryAuth          = 2
	CategoryPermission    = 3
	CategoryResource      = 4
	CategoryConflict      = 5
	CategoryUnprocessable = 6
	CategoryInternal      = 7
	CategoryDatabase      = 8
)

// ServiceCampus is the service code for the campus site.
const ServiceCampus = 10

// Errno represents a structured error with code and message.
type Errno struct {
	// Code is the unique error code
	Code int `json:"code"`

	// HTTP is the HTTP status code to return
	HTTP int `json:"-"`

	// Message is the human-readable error message
	Message string `json:"message"`

	// cause is the underlying error
	cause error
}

// MakeCode builds an error code from service, category and sequence parts.
func MakeCode(service, category, sequence int) int {
	return service*100000 + category*1000 + sequence
}

// GetCategory extracts the category part from an error code.
func GetCategory(code int) int {
	return (code / 1000) % 100
}

// Error implements the error interface.
func (e *Errno) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("errno %d: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("errno %d: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Errno) Unwrap() error {
	return e.cause
}

// HTTPStatus returns the HTTP status for this error, falling back to the
// category mapping when no explicit status was set.
func (e *Errno) HTTPStatus() int {
	if e.HTTP != 0 {
		return e.HTTP
	}
	switch GetCategory(e.Code) {
	case CategorySuccess:
		return http.StatusOK
	case CategoryRequest:
		return http.StatusBadRequest
	case CategoryAuth:
		return http.StatusUnauthorized
	case CategoryPermission:
		return http.StatusForbidden
	case CategoryResource:
		return http.StatusNotFound
	case CategoryConflict:
		return http.StatusConflict
	case CategoryUnprocessable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// WithCause returns a copy of the Errno carrying the given cause.
func (e *Errno) WithCause(cause error) *Errno {
	clone := *e
	clone.cause = cause
	return &clone
}

// WithMessage returns a copy of the Errno with a custom message.
func (e *Errno) WithMessage(format string, args ...any) *Errno {
	clone := *e
	clone.Message = fmt.Sprintf(format, args...)
	return &clone
}

// Is reports whether target is an Errno with the same code, so predefined
// errors compare correctly through errors.Is even after WithMessage/WithCause.
func (e *Errno) Is(target error) bool {
	t, ok := target.(*Errno)
	return ok && t.Code == e.Code
}

// Predefined common errors.
var (
	OK = &Errno{Code: MakeCode(0, CategorySuccess, 0), HTTP: http.StatusOK, Message: "success"}

	ErrBadRequest = &Errno{Code: MakeCode(0, CategoryRequest, 1), HTTP: http.StatusBadRequest, Message: "bad request"}

	ErrUnauthorized = &Errno{Code: MakeCode(0, CategoryAuth, 1), HTTP: http.StatusUnauthorized, Message: "unauthorized"}
	ErrTokenExpired = &Errno{Code: MakeCode(0, CategoryAuth, 2), HTTP: http.StatusUnauthorized, Message: "token expired or revoked"}

	ErrForbidden = &Errno{Code: MakeCode(0, CategoryPermission, 1), HTTP: http.StatusForbidden, Message: "forbidden"}

	ErrNotFound = &Errno{Code: MakeCode(0, CategoryResource, 1), HTTP: http.StatusNotFound, Message: "resource not found"}

	ErrConflict = &Errno{Code: MakeCode(0, CategoryConflict, 1), HTTP: http.StatusConflict, Message: "resource conflict"}

	ErrUnprocessable = &Errno{Code: MakeCode(0, CategoryUnprocessable, 1), HTTP: http.StatusUnprocessableEntity, Message: "the given data was invalid"}

	ErrInternal = &Errno{Code: MakeCode(0, CategoryInternal, 1), HTTP: http.StatusInternalServerError, Message: "internal server error"}
	ErrDatabase = &Errno{Code: MakeCode(0, CategoryDatabase, 1), HTTP: http.StatusInternalServerError, Message: "database error"}
)

// Campus service errors.
var (
	// ErrInvalidCredentials is deliberately generic: it is returned both for an
	// unknown identifier and for a wrong secret, so responses cannot be used to
	// enumerate accounts.
	ErrInvalidCredentials = &Errno{Code: MakeCode(ServiceCampus, CategoryUnprocessable, 1), HTTP: http.StatusUnprocessableEntity, Message: "invalid credentials"}

	ErrAccountDisabled = &Errno{Code: MakeCode(ServiceCampus, CategoryPermission, 1), HTTP: http.StatusForbidden, Message: "account disabled"}

	ErrSlugTaken = &Errno{Code: MakeCode(ServiceCampus, CategoryConflict, 1), HTTP: http.StatusConflict, Message: "slug already in use"}
)

// FromError returns err as an *Errno if it is one, otherwise wraps it as
// ErrInternal.
func FromError(err error) *Errno {
	if err == nil {
		return nil
	}
	if errno, ok := err.(*Errno); ok {
		return errno
	}
	return ErrInternal.WithCause(err)
}
