// Package middleware provides HTTP middleware for the event board API.
//
// # Available Middleware
//
//   - RequestID: assigns or propagates X-Request-ID
//   - Logger: structured request logging with slog
//   - Recovery: turns panics into a 500 problem response
//   - CORS: cross-origin handling backed by rs/cors
//   - RateLimit: per-IP token buckets from golang.org/x/time/rate
//   - Auth: bearer token verification
//
// # Authentication
//
// Auth requires an "Authorization: Bearer <token>" header. The scheme is
// matched case-insensitively. After authentication, handlers read the user:
//
//	userID := middleware.GetUserID(r.Context())
//
// # Composition
//
// Middleware composes with Chain, outermost first:
//
//	handler := middleware.Chain(router,
//	    middleware.RequestID,
//	    middleware.Logger,
//	    middleware.Recovery,
//	)
package middleware
