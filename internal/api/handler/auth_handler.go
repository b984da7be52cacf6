package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emsapp/employee-records/internal/api/metrics"
	"github.com/emsapp/employee-records/internal/core/domain"
	"github.com/emsapp/employee-records/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type registerRequest struct {
	Username string   `json:"username" validate:"required"`
	Password string   `json:"password" validate:"required,min=4"`
	Roles    []string `json:"roles"    validate:"required,min=1"`
}

type registerResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// Login authenticates a user and returns a signed bearer token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token})
}

// Register creates a new user account. The response is the public projection
// of the identity; the password hash is never returned.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	roles := make([]domain.Role, len(req.Roles))
	for i, r := range req.Roles {
		roles[i] = domain.Role(r)
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, roles)
	if err != nil {
		return err
	}

	resp := registerResponse{
		ID:       user.ID,
		Username: user.Username,
		Roles:    make([]string, len(user.Roles)),
	}
	for i, r := range user.Roles {
		resp.Roles[i] = string(r)
	}
	return c.JSON(http.StatusCreated, resp)
}
