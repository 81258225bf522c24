package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/forgo/eventboard/internal/database"
	"github.com/forgo/eventboard/internal/model"
)

// EventRepository handles event data access.
// Records live at event:⟨uuid⟩ and are addressed by the bare uuid.
type EventRepository struct {
	db database.Database
}

// NewEventRepository creates a new event repository
func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{db: db}
}

// Create stores a new event. An ID is generated when the event has none.
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	query := `
		CREATE type::thing("event", $id) CONTENT {
			title: $title,
			description: $description,
			featured: $featured,
			dates: $dates,
			image: $image,
			user: IF $user THEN type::thing("user", $user) ELSE NONE END
		}
	`

	vars := eventVars(event)
	vars["id"] = event.ID
	vars["user"] = nil
	if event.User != nil {
		vars["user"] = *event.User
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return err
	}

	data, err := asRecord(result)
	if err != nil {
		return err
	}
	if id, ok := data["id"]; ok {
		event.ID = recordKey(eventTable, id)
	}
	return nil
}

// Get retrieves an event by ID
func (r *EventRepository) Get(ctx context.Context, eventID string) (*model.Event, error) {
	query := `SELECT * FROM type::thing("event", $id)`
	vars := map[string]interface{}{"id": eventID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, err := asRecord(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseEventRecord(data), nil
}

// List retrieves all events with the owner projected to username and name
func (r *EventRepository) List(ctx context.Context) ([]*model.EventListing, error) {
	query := `
		SELECT *,
			user.username AS owner_username,
			user.name AS owner_name
		FROM event
	`

	results, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	rows := extractQueryResults(results)
	listings := make([]*model.EventListing, 0, len(rows))
	for _, row := range rows {
		data, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		listings = append(listings, parseEventListing(data))
	}
	return listings, nil
}

// Replace overwrites the mutable fields of an event and returns the result.
// The owner is not touched. Returns nil when no record matches.
func (r *EventRepository) Replace(ctx context.Context, eventID string, event *model.Event) (*model.Event, error) {
	query := `
		UPDATE event SET
			title = $title,
			description = $description,
			featured = $featured,
			dates = $dates,
			image = $image
		WHERE id = type::thing("event", $id)
		RETURN AFTER
	`

	vars := eventVars(event)
	vars["id"] = eventID

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, err := asRecord(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseEventRecord(data), nil
}

// Delete removes an event. Deleting a missing record is not an error.
func (r *EventRepository) Delete(ctx context.Context, eventID string) error {
	query := `DELETE type::thing("event", $id)`
	vars := map[string]interface{}{"id": eventID}

	return r.db.Execute(ctx, query, vars)
}

func eventVars(event *model.Event) map[string]interface{} {
	return map[string]interface{}{
		"title":       event.Title,
		"description": event.Description,
		"featured":    event.Featured,
		"dates":       datesToVars(event.Dates),
		"image":       event.Image,
	}
}

func parseEventRecord(data map[string]interface{}) *model.Event {
	event := &model.Event{
		ID:          recordKey(eventTable, data["id"]),
		Title:       getString(data, "title"),
		Description: getString(data, "description"),
		Featured:    getBool(data, "featured"),
		Dates:       getDates(data),
		Image:       getString(data, "image"),
	}
	if owner, ok := data["user"]; ok && owner != nil {
		id := recordKey(userTable, owner)
		event.User = &id
	}
	return event
}

func parseEventListing(data map[string]interface{}) *model.EventListing {
	listing := &model.EventListing{Event: *parseEventRecord(data)}
	if owner, ok := data["user"]; ok && owner != nil {
		listing.User = &model.UserSummary{
			Username: getString(data, "owner_username"),
			Name:     getString(data, "owner_name"),
		}
	}
	return listing
}
