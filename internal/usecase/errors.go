package usecase

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrEmptyTicketList is wrapped in a ValidationError when a reservation has no tickets.
	ErrEmptyTicketList = errors.New("reservation must contain at least one ticket")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is deactivated")
	ErrUnauthenticated    = errors.New("authentication required")
)

// ValidationError carries field level messages keyed by request path.
type ValidationError struct {
	Fields map[string]string
	Err    error
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NotFoundError reports a missing resource. Field is set when the missing
// resource was referenced from a request body rather than addressed by URL.
type NotFoundError struct {
	Resource string
	ID       int64
	Field    string
}

func (e *NotFoundError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
	}
	return e.Resource + " not found"
}

// FieldErrors returns the body field payload, or nil for URL lookups.
func (e *NotFoundError) FieldErrors() map[string]string {
	if e.Field == "" {
		return nil
	}
	return map[string]string{e.Field: e.Error()}
}

// ConflictError reports a uniqueness collision such as a seat already sold.
type ConflictError struct {
	Fields map[string]string
	Err    error
}

func (e *ConflictError) Error() string {
	for _, msg := range e.Fields {
		return "conflict: " + msg
	}
	return "conflict"
}

func (e *ConflictError) Unwrap() error { return e.Err }
