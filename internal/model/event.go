package model

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// Validation constants
const (
	MinEventTitleLength       = 6
	MinEventDescriptionLength = 10
)

// ErrNoDates is returned when an operation needs at least one date entry.
var ErrNoDates = errors.New("event has no dates")

// Event represents a schedulable occasion owned by a user
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Featured    bool        `json:"featured"`
	Dates       []DateEntry `json:"dates"`
	Image       string      `json:"image"`
	User        *string     `json:"user"` // Owner ID, nil until assigned
}

// UserSummary is the owner projection embedded in event listings
type UserSummary struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// EventListing is an event with its owner expanded
type EventListing struct {
	Event
	User *UserSummary `json:"user"`
}

// EventRequest is the payload for creating an event and for replacing one.
// Absent optional fields fall back to their zero values.
type EventRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Featured    *bool    `json:"featured,omitempty"`
	Dates       RawDates `json:"dates"`
	Image       string   `json:"image"`
}

// ShareResponse is returned by the share-link preview
type ShareResponse struct {
	Message string `json:"message"`
}

// Validate checks the event against the schema rules
func (e *Event) Validate() []FieldError {
	var errs []FieldError

	switch {
	case e.Title == "":
		errs = append(errs, FieldError{Field: "title", Message: "title is required"})
	case utf8.RuneCountInString(e.Title) < MinEventTitleLength:
		errs = append(errs, FieldError{
			Field:   "title",
			Message: fmt.Sprintf("title must be at least %d characters", MinEventTitleLength),
		})
	}

	switch {
	case e.Description == "":
		errs = append(errs, FieldError{Field: "description", Message: "description is required"})
	case utf8.RuneCountInString(e.Description) < MinEventDescriptionLength:
		errs = append(errs, FieldError{
			Field:   "description",
			Message: fmt.Sprintf("description must be at least %d characters", MinEventDescriptionLength),
		})
	}

	if e.Image == "" {
		errs = append(errs, FieldError{Field: "image", Message: "image is required"})
	}

	for i, d := range e.Dates {
		if d.Date.IsZero() {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("dates[%d].date", i),
				Message: "date is required",
			})
		}
		if d.Price != nil && *d.Price < 0 {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("dates[%d].price", i),
				Message: "price must not be negative",
			})
		}
	}

	return errs
}

// FirstDate returns the chronologically earliest date entry
func (e *Event) FirstDate() (time.Time, error) {
	if len(e.Dates) == 0 {
		return time.Time{}, ErrNoDates
	}
	first := e.Dates[0].Date
	for _, d := range e.Dates[1:] {
		if d.Date.Before(first) {
			first = d.Date
		}
	}
	return first, nil
}

// ShareMessage builds the human-readable share-link preview
func (e *Event) ShareMessage() (string, error) {
	first, err := e.FirstDate()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Iré al %s @ %s - link", e.Title, first.Format(time.RFC3339)), nil
}
