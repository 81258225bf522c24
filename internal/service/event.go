package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/forgo/eventboard/internal/model"
	"github.com/forgo/eventboard/internal/notify"
)

// EventRepositoryInterface defines the event store.
// Get and Replace return nil without error when no record matches.
type EventRepositoryInterface interface {
	Create(ctx context.Context, event *model.Event) error
	Get(ctx context.Context, eventID string) (*model.Event, error)
	List(ctx context.Context) ([]*model.EventListing, error)
	Replace(ctx context.Context, eventID string, event *model.Event) (*model.Event, error)
	Delete(ctx context.Context, eventID string) error
}

// UserRepositoryInterface defines the user store.
// GetByID returns nil without error when no record matches.
type UserRepositoryInterface interface {
	GetByID(ctx context.Context, userID string) (*model.User, error)
	Save(ctx context.Context, user *model.User) error
}

// ChangeNotifier receives best-effort change notifications
type ChangeNotifier interface {
	Publish(ctx context.Context, changeType string, payload interface{}) error
}

// EventService handles event business logic
type EventService struct {
	events   EventRepositoryInterface
	users    UserRepositoryInterface
	notifier ChangeNotifier
}

// NewEventService creates a new event service. notifier may be nil.
func NewEventService(events EventRepositoryInterface, users UserRepositoryInterface, notifier ChangeNotifier) *EventService {
	return &EventService{
		events:   events,
		users:    users,
		notifier: notifier,
	}
}

// ListEvents returns every event with its owner expanded
func (s *EventService) ListEvents(ctx context.Context) ([]*model.EventListing, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, storeFailure("list events", err)
	}
	if events == nil {
		events = []*model.EventListing{}
	}
	return events, nil
}

// GetEvent retrieves an event by ID
func (s *EventService) GetEvent(ctx context.Context, eventID string) (*model.Event, error) {
	id, err := parseEventID(eventID)
	if err != nil {
		return nil, err
	}

	event, err := s.events.Get(ctx, id)
	if err != nil {
		return nil, storeFailure("get event", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// CreateEvent creates an event owned by the authenticated user and records
// it on the user's event list.
//
// The event and the back-reference are two independent writes. If the second
// one fails the event is kept, the failure is logged with both IDs, and a
// store failure is returned.
func (s *EventService) CreateEvent(ctx context.Context, userID string, req *model.EventRequest) (*model.Event, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, storeFailure("get user", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	dates := []model.DateEntry{}
	if req.Dates.Present {
		dates, err = model.ParseDateEntries(req.Dates.Text)
		if err != nil {
			return nil, newValidationError("dates", err.Error())
		}
	}

	owner := user.ID
	event := newEventFromRequest(req, dates)
	event.User = &owner

	if errs := event.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, storeFailure("create event", err)
	}

	if err := s.appendBackReference(ctx, user, event.ID); err != nil {
		slog.Error("event created without owner back-reference",
			slog.String("event_id", event.ID),
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		return nil, storeFailure("append back-reference", err)
	}

	s.publish(ctx, notify.EventCreated, event)
	return event, nil
}

// UpdateEvent replaces the mutable fields of an event. The owner is kept.
// Unlike creation, the dates field is required.
func (s *EventService) UpdateEvent(ctx context.Context, eventID string, req *model.EventRequest) (*model.Event, error) {
	id, err := parseEventID(eventID)
	if err != nil {
		return nil, err
	}

	if !req.Dates.Present {
		return nil, newValidationError("dates", "dates is required")
	}
	dates, err := model.ParseDateEntries(req.Dates.Text)
	if err != nil {
		return nil, newValidationError("dates", err.Error())
	}

	replacement := newEventFromRequest(req, dates)
	if errs := replacement.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	event, err := s.events.Replace(ctx, id, replacement)
	if err != nil {
		return nil, storeFailure("replace event", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	s.publish(ctx, notify.EventUpdated, event)
	return event, nil
}

// DeleteEvent removes an event. Deleting a missing event is not an error.
// The owner's event list is left as is.
func (s *EventService) DeleteEvent(ctx context.Context, eventID string) error {
	id, err := parseEventID(eventID)
	if err != nil {
		return err
	}

	if err := s.events.Delete(ctx, id); err != nil {
		return storeFailure("delete event", err)
	}

	s.publish(ctx, notify.EventDeleted, map[string]string{"id": id})
	return nil
}

// ShareEvent builds the share-link preview for an event
func (s *EventService) ShareEvent(ctx context.Context, eventID string) (*model.ShareResponse, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	msg, err := event.ShareMessage()
	if err != nil {
		if errors.Is(err, model.ErrNoDates) {
			return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
		}
		return nil, err
	}
	return &model.ShareResponse{Message: msg}, nil
}

// appendBackReference adds eventID to the user's event list and saves the
// user. Duplicates are kept.
func (s *EventService) appendBackReference(ctx context.Context, user *model.User, eventID string) error {
	user.Events = append(user.Events, eventID)
	return s.users.Save(ctx, user)
}

func (s *EventService) publish(ctx context.Context, changeType string, payload interface{}) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, changeType, payload); err != nil {
		slog.Warn("failed to publish change notification",
			slog.String("type", changeType),
			slog.String("error", err.Error()),
		)
	}
}

func newEventFromRequest(req *model.EventRequest, dates []model.DateEntry) *model.Event {
	featured := false
	if req.Featured != nil {
		featured = *req.Featured
	}
	return &model.Event{
		Title:       req.Title,
		Description: req.Description,
		Featured:    featured,
		Dates:       dates,
		Image:       req.Image,
	}
}

// parseEventID checks the identifier format and returns its canonical form
func parseEventID(eventID string) (string, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, eventID)
	}
	return id.String(), nil
}
