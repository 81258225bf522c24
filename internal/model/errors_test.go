package model

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestProblemDetails_Error_ReturnsFormattedMessage(t *testing.T) {
	t.Parallel()

	pd := &ProblemDetails{Status: http.StatusNotFound, Title: "Not Found", Detail: "event not found"}

	if got := pd.Error(); got != "[404] Not Found: event not found" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestProblemDetails_WriteJSON(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	NewNotFoundError("event").WriteJSON(rr)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("expected problem+json, got %q", ct)
	}

	var decoded ProblemDetails
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Detail != "event not found" {
		t.Errorf("expected detail 'event not found', got %q", decoded.Detail)
	}
	if decoded.Code != ErrCodeNotFound {
		t.Errorf("expected code %d, got %d", ErrCodeNotFound, decoded.Code)
	}
}

func TestConstructors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		pd         *ProblemDetails
		wantStatus int
		wantType   string
		wantDetail string
	}{
		{"unauthorized", NewUnauthorizedError("token missing or invalid"), http.StatusUnauthorized, "unauthorized", "token missing or invalid"},
		{"not found", NewNotFoundError("user"), http.StatusNotFound, "not-found", "user not found"},
		{"invalid id", NewInvalidIdentifierError("abc"), http.StatusBadRequest, "malformatted-id", `malformatted id "abc"`},
		{"invalid id without id", NewInvalidIdentifierError(""), http.StatusBadRequest, "malformatted-id", "malformatted id"},
		{"unprocessable", NewUnprocessableError("dates", "event has no dates"), http.StatusUnprocessableEntity, "unprocessable", "dates: event has no dates"},
		{"internal", NewInternalError("boom"), http.StatusInternalServerError, "internal", "boom"},
		{"internal default", NewInternalError(""), http.StatusInternalServerError, "internal", "An unexpected error occurred"},
		{"bad request", NewBadRequestError("invalid request body"), http.StatusBadRequest, "bad-request", "invalid request body"},
		{"unknown endpoint", NewUnknownEndpointError("/api/nope"), http.StatusNotFound, "unknown-endpoint", "unknown endpoint"},
		{"method not allowed", NewMethodNotAllowedError("PATCH"), http.StatusMethodNotAllowed, "method-not-allowed", "PATCH is not allowed on this resource"},
		{"rate limited", NewRateLimitError(3), http.StatusTooManyRequests, "rate-limited", "Rate limit exceeded. Retry after 3 seconds"},
		{"unavailable", NewServiceUnavailableError("database unreachable"), http.StatusServiceUnavailable, "unavailable", "database unreachable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.pd.Status != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, tt.pd.Status)
			}
			if tt.pd.Type != errorTypeBase+tt.wantType {
				t.Errorf("expected type suffix %q, got %q", tt.wantType, tt.pd.Type)
			}
			if tt.pd.Detail != tt.wantDetail {
				t.Errorf("expected detail %q, got %q", tt.wantDetail, tt.pd.Detail)
			}
		})
	}
}

func TestNewUnknownEndpointError_SetsInstance(t *testing.T) {
	t.Parallel()

	pd := NewUnknownEndpointError("/api/nope")
	if pd.Instance != "/api/nope" {
		t.Errorf("expected instance '/api/nope', got %q", pd.Instance)
	}
}

func TestNewValidationError(t *testing.T) {
	t.Parallel()

	single := NewValidationError([]FieldError{{Field: "title", Message: "title is required"}})
	if single.Status != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", single.Status)
	}
	if single.Detail != "title: title is required" {
		t.Errorf("unexpected detail %q", single.Detail)
	}
	if len(single.Errors) != 1 {
		t.Errorf("expected 1 field error, got %d", len(single.Errors))
	}

	multi := NewValidationError([]FieldError{
		{Field: "title", Message: "title is required"},
		{Field: "description", Message: "description is required"},
		{Field: "image", Message: "image is required"},
	})
	if !strings.HasSuffix(multi.Detail, "(and 2 more errors)") {
		t.Errorf("expected summary of remaining errors, got %q", multi.Detail)
	}

	empty := NewValidationError(nil)
	if empty.Detail != "One or more fields failed validation" {
		t.Errorf("unexpected default detail %q", empty.Detail)
	}
}

func TestErrorCodes_UniqueValues(t *testing.T) {
	t.Parallel()

	codes := []ErrorCode{
		ErrCodeUnauthorized, ErrCodeTokenExpired, ErrCodeTokenInvalid,
		ErrCodeNotFound,
		ErrCodeValidation, ErrCodeInvalidInput, ErrCodeInvalidIdentifier, ErrCodeUnprocessable,
		ErrCodeInternal, ErrCodeDatabase, ErrCodeUnavailable,
	}

	seen := make(map[ErrorCode]bool)
	for _, c := range codes {
		if seen[c] {
			t.Errorf("duplicate error code %d", c)
		}
		seen[c] = true
	}
}

func TestProblemDetails_JSON_OmitsEmptyFields(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(&ProblemDetails{Type: "t", Title: "x", Status: 400})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	for _, field := range []string{"detail", "instance", "errors", "code"} {
		if strings.Contains(string(data), `"`+field+`"`) {
			t.Errorf("expected %s to be omitted, got %s", field, data)
		}
	}
}
