package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/emsapp/employee-records/internal/api/metrics"
	"github.com/emsapp/employee-records/internal/core/domain"
	"github.com/emsapp/employee-records/internal/core/ports"
)

// principalKey is where the guard stores the resolved principal on the
// request context. Handlers read it back via Principal.
const principalKey = "principal"

// Guard returns middleware enforcing the required-role predicate for one
// protected operation. Every protected route passes through this single
// enforcement point; the only per-route variation is the required role set.
// On success the resolved principal is attached to the request context for
// explicit consumption by handlers.
func Guard(authorizer ports.Authorizer, required ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c.Request().Header.Get("Authorization"))

			principal, err := authorizer.Authorize(c.Request().Context(), raw, required)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues(rejectionReason(err)).Inc()
				return err
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// Principal extracts the principal attached by Guard. The second return is
// false when the route was not guarded.
func Principal(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. A missing header or a non-bearer scheme yields the empty string,
// which the authorizer treats as an absent token.
func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrExpiredToken):
		return "expired_token"
	case errors.Is(err, domain.ErrMalformedToken):
		return "malformed_token"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	default:
		return "unauthenticated"
	}
}
