package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func validEvent() *Event {
	price := 10.0
	return &Event{
		Title:       "Valid Title",
		Description: "Valid Description",
		Image:       "x.png",
		Dates: []DateEntry{
			{Date: time.Date(2021, 8, 2, 11, 0, 0, 0, time.UTC), Price: &price},
		},
	}
}

func hasField(errs []FieldError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

// ============================================================================
// Event.Validate Tests
// ============================================================================

func TestEvent_Validate_Valid(t *testing.T) {
	t.Parallel()

	if errs := validEvent().Validate(); len(errs) > 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestEvent_Validate_NoDatesIsValid(t *testing.T) {
	t.Parallel()

	e := validEvent()
	e.Dates = []DateEntry{}
	if errs := e.Validate(); len(errs) > 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestEvent_Validate_Failures(t *testing.T) {
	t.Parallel()

	negative := -1.0
	tests := []struct {
		name   string
		mutate func(e *Event)
		field  string
	}{
		{"missing title", func(e *Event) { e.Title = "" }, "title"},
		{"short title", func(e *Event) { e.Title = "Short" }, "title"},
		{"missing description", func(e *Event) { e.Description = "" }, "description"},
		{"short description", func(e *Event) { e.Description = "Too short" }, "description"},
		{"missing image", func(e *Event) { e.Image = "" }, "image"},
		{"zero date", func(e *Event) { e.Dates = []DateEntry{{}} }, "dates[0].date"},
		{"negative price", func(e *Event) { e.Dates[0].Price = &negative }, "dates[0].price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := validEvent()
			tt.mutate(e)
			errs := e.Validate()
			if len(errs) != 1 || errs[0].Field != tt.field {
				t.Errorf("expected single %s error, got %v", tt.field, errs)
			}
		})
	}
}

func TestEvent_Validate_CountsRunes(t *testing.T) {
	t.Parallel()

	e := validEvent()
	e.Title = "Fiesta"
	e.Description = "Añoñaños!"
	errs := e.Validate()
	if hasField(errs, "title") {
		t.Error("six-rune title should pass")
	}
	if !hasField(errs, "description") {
		t.Error("nine-rune description should fail even though it has ten bytes")
	}
}

func TestEvent_Validate_MissingTitleAndDescription(t *testing.T) {
	t.Parallel()

	e := &Event{Featured: true, Image: "x.png", Dates: []DateEntry{}}
	errs := e.Validate()
	if !hasField(errs, "title") || !hasField(errs, "description") {
		t.Errorf("expected title and description errors, got %v", errs)
	}
}

// ============================================================================
// Share Tests
// ============================================================================

func TestEvent_FirstDate(t *testing.T) {
	t.Parallel()

	e := &Event{Dates: []DateEntry{
		{Date: time.Date(2021, 8, 4, 11, 0, 0, 0, time.UTC)},
		{Date: time.Date(2021, 8, 2, 11, 0, 0, 0, time.UTC)},
	}}
	first, err := e.FirstDate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Day() != 2 {
		t.Errorf("expected 2021-08-02, got %v", first)
	}

	if _, err := (&Event{}).FirstDate(); !errors.Is(err, ErrNoDates) {
		t.Errorf("expected ErrNoDates, got %v", err)
	}
}

func TestEvent_ShareMessage(t *testing.T) {
	t.Parallel()

	msg, err := validEvent().ShareMessage()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "Iré al Valid Title @ 2021-08-02T11:00:00Z - link" {
		t.Errorf("unexpected message %q", msg)
	}
}

// ============================================================================
// Serialization Tests
// ============================================================================

func TestEvent_JSON(t *testing.T) {
	t.Parallel()

	owner := "user1"
	e := validEvent()
	e.ID = "abc"
	e.User = &owner

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	s := string(data)
	for _, want := range []string{`"id":"abc"`, `"user":"user1"`, `"featured":false`, `"date":"2021-08-02T11:00:00Z"`, `"price":10`} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %s in %s", want, s)
		}
	}
	for _, internal := range []string{"_id", "__v"} {
		if strings.Contains(s, internal) {
			t.Errorf("unexpected %s in %s", internal, s)
		}
	}
}

func TestEvent_JSON_NilOwner(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(&Event{})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"user":null`) {
		t.Errorf("expected null user, got %s", data)
	}
}

func TestEventListing_JSON_ExpandsOwner(t *testing.T) {
	t.Parallel()

	owner := "user1"
	listing := &EventListing{
		Event: Event{ID: "abc", User: &owner},
		User:  (&User{ID: "user1", Username: "jdoe", Name: "Jane Doe", Events: []string{"abc"}}).Summary(),
	}

	data, err := json.Marshal(listing)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	user, ok := decoded["user"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected expanded user object, got %v", decoded["user"])
	}
	if len(user) != 2 || user["username"] != "jdoe" || user["name"] != "Jane Doe" {
		t.Errorf("expected {username, name}, got %v", user)
	}
	if decoded["id"] != "abc" {
		t.Errorf("expected id abc, got %v", decoded["id"])
	}
}

func TestEventRequest_Decode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantText    string
		wantFeat    *bool
	}{
		{"dates as string", `{"dates":"[{\"date\":\"2021-08-02\"}]"}`, true, `[{"date":"2021-08-02"}]`, nil},
		{"dates as array", `{"dates":[{"date":"2021-08-02"}],"featured":true}`, true, `[{"date":"2021-08-02"}]`, boolPtr(true)},
		{"dates absent", `{"title":"x"}`, false, "", nil},
		{"dates null", `{"dates":null}`, false, "", nil},
		{"dates empty string", `{"dates":""}`, false, "", nil},
		{"featured false", `{"featured":false}`, false, "", boolPtr(false)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var req EventRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if req.Dates.Present != tt.wantPresent {
				t.Errorf("expected present=%v, got %v", tt.wantPresent, req.Dates.Present)
			}
			if req.Dates.Text != tt.wantText {
				t.Errorf("expected text %q, got %q", tt.wantText, req.Dates.Text)
			}
			switch {
			case tt.wantFeat == nil && req.Featured != nil:
				t.Errorf("expected featured unset, got %v", *req.Featured)
			case tt.wantFeat != nil && (req.Featured == nil || *req.Featured != *tt.wantFeat):
				t.Errorf("expected featured %v, got %v", *tt.wantFeat, req.Featured)
			}
		})
	}
}

func boolPtr(b bool) *bool { return &b }
