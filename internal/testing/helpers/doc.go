// Package helpers provides test utilities for the Event Board API.
//
// # JWT Helpers
//
// Mint tokens signed with the shared test secret:
//
//	jwtHelper := helpers.NewJWTHelper(t)
//	token := jwtHelper.GenerateToken(user)
//	expired := jwtHelper.GenerateExpiredToken(user)
//
// # Request Helpers
//
//	resp := helpers.NewRequest(t, http.MethodPost, "/api/events").
//	    WithToken(token).
//	    WithBody(payload).
//	    Do(router)
//
// # Assertion Helpers
//
//	helpers.AssertStatus(t, resp, http.StatusOK)
//	helpers.AssertValidationError(t, resp, "title")
//	helpers.AssertRecordNotExists(t, db, "event", id)
package helpers
