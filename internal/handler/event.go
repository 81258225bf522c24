package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forgo/eventboard/internal/middleware"
	"github.com/forgo/eventboard/internal/model"
)

// EventService is the part of service.EventService the handler depends on
type EventService interface {
	ListEvents(ctx context.Context) ([]*model.EventListing, error)
	GetEvent(ctx context.Context, eventID string) (*model.Event, error)
	CreateEvent(ctx context.Context, userID string, req *model.EventRequest) (*model.Event, error)
	UpdateEvent(ctx context.Context, eventID string, req *model.EventRequest) (*model.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
	ShareEvent(ctx context.Context, eventID string) (*model.ShareResponse, error)
}

// EventHandler handles event endpoints
type EventHandler struct {
	eventService EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// List handles GET /api/events - all events with owners expanded
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.ListEvents(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "list events", err)
		return
	}
	WriteJSON(w, http.StatusOK, events)
}

// Get handles GET /api/events/{id}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.eventService.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, "get event", err)
		return
	}
	WriteJSON(w, http.StatusOK, event)
}

// Create handles POST /api/events. The route is behind the auth middleware,
// which puts the token subject in the request context.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.EventRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	event, err := h.eventService.CreateEvent(r.Context(), middleware.GetUserID(r.Context()), &req)
	if err != nil {
		h.writeServiceError(w, r, "create event", err)
		return
	}
	WriteJSON(w, http.StatusOK, event)
}

// Update handles PUT /api/events/{id} - full replacement
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.EventRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	event, err := h.eventService.UpdateEvent(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.writeServiceError(w, r, "update event", err)
		return
	}
	WriteJSON(w, http.StatusOK, event)
}

// Delete handles DELETE /api/events/{id}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.eventService.DeleteEvent(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, "delete event", err)
		return
	}
	WriteNoContent(w)
}

// Share handles GET /api/events/{id}/share
func (h *EventHandler) Share(w http.ResponseWriter, r *http.Request) {
	share, err := h.eventService.ShareEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, "share event", err)
		return
	}
	WriteJSON(w, http.StatusOK, share)
}

func (h *EventHandler) writeServiceError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	pd := MapServiceErrorWithContext(err, operation)
	if pd.Status >= http.StatusInternalServerError {
		slog.Error("request failed",
			slog.String("operation", operation),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("error", err.Error()),
		)
	}
	WriteError(w, pd)
}
