package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/forgo/eventboard/internal/database"
	"github.com/forgo/eventboard/internal/model"
	"github.com/forgo/eventboard/internal/repository"
)

// Factory creates test records in the database
type Factory struct {
	db     database.Database
	events *repository.EventRepository
	users  *repository.UserRepository
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{
		db:     db,
		events: repository.NewEventRepository(db),
		users:  repository.NewUserRepository(db),
	}
}

func randomID() string {
	return uuid.New().String()[:8]
}

func testCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// ============================================================================
// User Fixtures
// ============================================================================

// UserOpts customizes user creation
type UserOpts struct {
	ID       string
	Username string
	Name     string
}

// CreateUser creates a user record with an empty event list
func (f *Factory) CreateUser(t *testing.T, opts ...func(*UserOpts)) *model.User {
	t.Helper()

	suffix := randomID()
	o := &UserOpts{
		ID:       "u" + suffix,
		Username: "user_" + suffix,
		Name:     "Test User " + suffix,
	}
	for _, fn := range opts {
		fn(o)
	}

	query := `CREATE type::thing("user", $id) CONTENT { username: $username, name: $name, events: [] }`
	vars := map[string]interface{}{
		"id":       o.ID,
		"username": o.Username,
		"name":     o.Name,
	}
	if err := f.db.Execute(testCtx(t), query, vars); err != nil {
		t.Fatalf("fixtures: failed to create user: %v", err)
	}

	return &model.User{
		ID:       o.ID,
		Username: o.Username,
		Name:     o.Name,
		Events:   []string{},
	}
}

// ============================================================================
// Event Fixtures
// ============================================================================

// EventOpts customizes event creation
type EventOpts struct {
	Title       string
	Description string
	Featured    bool
	Image       string
	Dates       []model.DateEntry
}

// WithDates sets the event's date entries
func WithDates(dates ...time.Time) func(*EventOpts) {
	return func(o *EventOpts) {
		o.Dates = make([]model.DateEntry, 0, len(dates))
		for _, d := range dates {
			o.Dates = append(o.Dates, model.DateEntry{Date: d})
		}
	}
}

// WithoutDates creates the event with an empty date list
func WithoutDates() func(*EventOpts) {
	return func(o *EventOpts) { o.Dates = []model.DateEntry{} }
}

// CreateEvent creates an event owned by owner and records it on the owner's
// event list, the same two writes the service performs.
func (f *Factory) CreateEvent(t *testing.T, owner *model.User, opts ...func(*EventOpts)) *model.Event {
	t.Helper()

	suffix := randomID()
	o := &EventOpts{
		Title:       "Test Event " + suffix,
		Description: "Fixture event " + suffix + " description",
		Image:       "fixture.png",
		Dates: []model.DateEntry{
			{Date: time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)},
		},
	}
	for _, fn := range opts {
		fn(o)
	}

	ownerID := owner.ID
	event := &model.Event{
		Title:       o.Title,
		Description: o.Description,
		Featured:    o.Featured,
		Dates:       o.Dates,
		Image:       o.Image,
		User:        &ownerID,
	}

	ctx := testCtx(t)
	if err := f.events.Create(ctx, event); err != nil {
		t.Fatalf("fixtures: failed to create event: %v", err)
	}

	owner.Events = append(owner.Events, event.ID)
	if err := f.users.Save(ctx, owner); err != nil {
		t.Fatalf("fixtures: failed to record event on owner: %v", err)
	}

	return event
}

// ReloadUser reads the user back from the database
func (f *Factory) ReloadUser(t *testing.T, user *model.User) *model.User {
	t.Helper()

	got, err := f.users.GetByID(testCtx(t), user.ID)
	if err != nil {
		t.Fatalf("fixtures: failed to reload user: %v", err)
	}
	if got == nil {
		t.Fatalf("fixtures: user %s no longer exists", user.ID)
	}
	return got
}

// CountEvents returns the number of event records
func (f *Factory) CountEvents(t *testing.T) int {
	t.Helper()

	listings, err := f.events.List(testCtx(t))
	if err != nil {
		t.Fatalf("fixtures: failed to count events: %v", err)
	}
	return len(listings)
}

// MustDeleteUser removes a user record, leaving its events in place
func (f *Factory) MustDeleteUser(t *testing.T, user *model.User) {
	t.Helper()

	query := `DELETE type::thing("user", $id)`
	if err := f.db.Execute(testCtx(t), query, map[string]interface{}{"id": user.ID}); err != nil {
		t.Fatalf("fixtures: failed to delete user: %v", err)
	}
}
