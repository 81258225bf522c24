package handler

import (
	"errors"

	"github.com/forgo/eventboard/internal/model"
	"github.com/forgo/eventboard/internal/service"
	"github.com/forgo/eventboard/pkg/jwt"
)

// MapServiceError converts a service error to a ProblemDetails response.
// Handlers never pick status codes for service errors themselves.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	var validationErr *service.ValidationError

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, jwt.ErrTokenExpired):
		pd := model.NewUnauthorizedError("token expired")
		pd.Code = model.ErrCodeTokenExpired
		return pd
	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, jwt.ErrInvalidToken),
		errors.Is(err, jwt.ErrInvalidSignature),
		errors.Is(err, jwt.ErrTokenNotYetValid):
		return model.NewUnauthorizedError(service.ErrUnauthorized.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrEventNotFound):
		return model.NewNotFoundError("event")
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")

	// ===== Input Errors → 400 / 422 =====
	case errors.Is(err, service.ErrInvalidIdentifier):
		return model.NewInvalidIdentifierError("")
	case errors.Is(err, model.ErrNoDates):
		return model.NewUnprocessableError("dates", model.ErrNoDates.Error())
	case errors.As(err, &validationErr):
		return model.NewValidationError(validationErr.Fields)
	case errors.Is(err, service.ErrMalformedInput):
		return model.NewBadRequestError(err.Error())

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// MapServiceErrorWithContext converts a service error to a ProblemDetails response
// with additional context about the operation that failed.
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Status == 500 {
		pd.Detail = operation + ": an unexpected error occurred"
	}
	return pd
}
