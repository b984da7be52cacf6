package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emsapp/employee-records/internal/api/middleware"
	"github.com/emsapp/employee-records/internal/core/domain"
)

// ctxPrincipal extracts the principal attached by the Guard middleware and
// fast-fails before any service call: its presence proves the guard ran on
// this route. A guarded handler reached without a principal is a wiring bug
// and is rejected rather than trusted.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.Principal(c)
	if !ok || p.Username == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication principal")
	}
	return p, nil
}
