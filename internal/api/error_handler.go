package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/emsapp/employee-records/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the auth and storage error taxonomy to deterministic HTTP codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
//
// Unauthenticated outcomes (missing, malformed, and expired tokens) all map
// to 401 with distinct messages; a valid identity lacking the required role
// maps to 403, which callers can tell apart from 401.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, domain.ErrMalformedToken):
		return http.StatusUnauthorized, "invalid token"
	case errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized, "token expired"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusConflict, "username already taken"
	case errors.Is(err, domain.ErrInvalidRegistration):
		return http.StatusBadRequest, "invalid registration details"
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return http.StatusNotFound, "employee not found"
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, "email already taken"
	case errors.Is(err, domain.ErrAlreadySeeded):
		return http.StatusBadRequest, "employees already present"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
