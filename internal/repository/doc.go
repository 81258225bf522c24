// Package repository provides SurrealDB-backed storage for events and the
// user records that point back to them.
//
// Repositories return nil without an error when a record is missing, leaving
// the not-found decision to the service layer. Database errors are returned
// as-is.
package repository
