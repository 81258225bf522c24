// Package service implements the business logic layer for the Event Board API.
//
// EventService owns every event operation: listing, lookup, creation with
// the owner back-reference, replacement, deletion and the share preview.
// TokenService verifies bearer tokens and mints them for developer tooling.
//
// # Repository Interfaces
//
// Services define the repository contracts they need, so tests can pass
// hand-written mocks:
//
//	svc := NewEventService(eventRepo, userRepo, notifier)
//
// # Error Handling
//
// Every error a service returns matches one sentinel in errors.go with
// errors.Is. Schema violations come back as *ValidationError, which also
// matches ErrMalformedInput. Persistence errors are wrapped in
// ErrStoreFailure.
//
//	event, err := svc.GetEvent(ctx, id)
//	if errors.Is(err, service.ErrEventNotFound) {
//	    // well-formed id, no record
//	}
package service
