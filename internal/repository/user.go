package repository

import (
	"context"
	"errors"

	"github.com/forgo/eventboard/internal/database"
	"github.com/forgo/eventboard/internal/model"
)

// UserRepository reads and saves the user records events point back to.
// Accounts are created by the account service, not here.
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a user by ID. The ID may carry the "user:" prefix.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM type::thing("user", $id)`
	vars := map[string]interface{}{"id": recordKey(userTable, id)}

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
	return parseUserRecord(data), nil
}

// Save writes the user's profile fields and event list
func (r *UserRepository) Save(ctx context.Context, user *model.User) error {
	query := `
		UPDATE type::thing("user", $id) SET
			username = $username,
			name = $name,
			events = $events
	`

	events := user.Events
	if events == nil {
		events = []string{}
	}

	vars := map[string]interface{}{
		"id":       recordKey(userTable, user.ID),
		"username": user.Username,
		"name":     user.Name,
		"events":   events,
	}

	return r.db.Execute(ctx, query, vars)
}

func parseUserRecord(data map[string]interface{}) *model.User {
	return &model.User{
		ID:       recordKey(userTable, data["id"]),
		Username: getString(data, "username"),
		Name:     getString(data, "name"),
		Events:   getStringSlice(data, "events"),
	}
}
