// Package model defines domain entities and data structures for the event board API.
//
// The model package contains the event and user entities, request payloads,
// the date-entry normalizer, and the RFC 9457 problem details used for error
// responses. Models are used across all layers of the application.
//
// # Domain Entities
//
//   - Event: a schedulable occasion with dated/priced sessions and an owner
//   - User: the account that owns events (read and appended to, never created here)
//
// # Validation
//
// Payloads are validated explicitly before anything is written:
//
//	if errs := event.Validate(); len(errs) > 0 {
//	    return NewValidationError(errs)
//	}
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go.
package model
