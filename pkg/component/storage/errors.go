package storage

import "fmt"

// StorageError is a storage-level error with a stable code for callers that
// need to branch on failure class.
type StorageError struct {
	Code    string
	Message string
	cause   error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.cause
}

// Is matches by code so wrapped copies still compare equal to the sentinel.
func (e *StorageError) Is(target error) bool {
	t, ok := target.(*StorageError)
	return ok && t.Code == e.Code
}

// WithMessage returns a copy with the message replaced.
func (e *StorageError) WithMessage(msg string) *StorageError {
	clone := *e
	clone.Message = msg
	return &clone
}

// WithCause returns a copy wrapping the given cause.
func (e *StorageError) WithCause(cause error) *StorageError {
	clone := *e
	clone.cause = cause
	return &clone
}

var (
	// ErrNotConnected indicates the client is not connected to its backend.
	ErrNotConnected = &StorageError{Code: "NOT_CONNECTED", Message: "storage client is not connected"}

	// ErrConnectionFailed indicates a connection attempt failed.
	ErrConnectionFailed = &StorageError{Code: "CONNECTION_FAILED", Message: "failed to connect to storage backend"}

	// ErrInvalidConfig indicates the storage configuration is invalid.
	ErrInvalidConfig = &StorageError{Code: "INVALID_CONFIG", Message: "invalid storage configuration"}

	// ErrClientNotFound indicates no client is registered under the name.
	ErrClientNotFound = &StorageError{Code: "CLIENT_NOT_FOUND", Message: "storage client not found"}

	// ErrClientAlreadyExists indicates the name is already registered.
	ErrClientAlreadyExists = &StorageError{Code: "CLIENT_ALREADY_EXISTS", Message: "storage client already exists"}
)
