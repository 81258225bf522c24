package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/forgo/eventboard/internal/model"
)

// Centralized service layer errors.
// Every error returned by a service method matches exactly one of these with
// errors.Is, so handlers can translate them without inspecting messages.
var (
	// ErrMalformedInput covers unparseable payloads and schema violations.
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnauthorized covers a missing, invalid, or subject-less credential.
	ErrUnauthorized = errors.New("token missing or invalid")

	// ErrEventNotFound and ErrUserNotFound report a well-formed id with no record.
	ErrEventNotFound = errors.New("event not found")
	ErrUserNotFound  = errors.New("user not found")

	// ErrInvalidIdentifier reports an id that is not in the record id format.
	ErrInvalidIdentifier = errors.New("malformatted id")

	// ErrStoreFailure wraps persistence errors that are not locally recoverable.
	ErrStoreFailure = errors.New("store failure")
)

// ValidationError carries the field errors behind an ErrMalformedInput.
type ValidationError struct {
	Fields []model.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedInput, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrMalformedInput
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []model.FieldError{{Field: field, Message: message}}}
}

func storeFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreFailure, op, err)
}
