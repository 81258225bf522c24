// Package handler provides the HTTP layer of the Event Board API.
//
// Handlers decode requests, call the service layer and encode results.
// Successful responses are the bare resource as JSON. Failures are RFC 9457
// Problem Details built by MapServiceError, which is the only place a
// service error becomes an HTTP status.
//
// # Routes
//
//	GET    /health
//	GET    /api/events
//	POST   /api/events              (bearer token)
//	GET    /api/events/{id}
//	PUT    /api/events/{id}         (bearer token when mutations are protected)
//	DELETE /api/events/{id}         (bearer token when mutations are protected)
//	GET    /api/events/{id}/share
//
// Anything else under /api answers 404 "unknown endpoint". Other GET
// requests are served from the static directory when a file matches.
//
// # Example Usage
//
//	router := handler.NewRouter(handler.RouterConfig{
//	    Events: handler.NewEventHandler(eventService),
//	    Health: handler.NewHealthHandler(db),
//	    Auth:   middleware.Auth(tokenService),
//	})
package handler
