package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/emsapp/employee-records/internal/api/handler"
	"github.com/emsapp/employee-records/internal/api/middleware"
	"github.com/emsapp/employee-records/internal/core/domain"
	"github.com/emsapp/employee-records/internal/core/ports"
)

// Dependencies carries the wired services the router needs. Construction and
// lifecycle (worker startup, shutdown) belong to the caller.
type Dependencies struct {
	DB              *mongo.Database
	Redis           *redis.Client
	AuthService     ports.AuthService
	Authorizer      ports.Authorizer
	EmployeeService ports.EmployeeService
	Logger          zerolog.Logger
}

// protectedRoute pairs one operation with its required-role predicate. The
// table below is the complete access policy: every protected operation is
// declared here and enforced by the same Guard middleware, never by ad hoc
// checks inside handlers.
type protectedRoute struct {
	method  string
	path    string
	handler echo.HandlerFunc
	roles   []domain.Role
}

func policyTable(employees *handler.EmployeeHandler) []protectedRoute {
	anyRole := []domain.Role{domain.RoleUser, domain.RoleAdmin}
	adminOnly := []domain.Role{domain.RoleAdmin}

	return []protectedRoute{
		{http.MethodGet, "/api/v1/employees", employees.List, anyRole},
		{http.MethodGet, "/api/v1/employees/:id", employees.Get, anyRole},

		{http.MethodGet, "/api/v1/employees/search", employees.Search, adminOnly},
		{http.MethodGet, "/api/v1/employees/search/by-lists", employees.SearchByLists, adminOnly},
		{http.MethodGet, "/api/v1/employees/salary-greater-than/:salary", employees.SalaryGreaterThan, adminOnly},
		{http.MethodGet, "/api/v1/employees/salary-less-than/:salary", employees.SalaryLessThan, adminOnly},
		{http.MethodGet, "/api/v1/employees/salary-range", employees.SalaryRange, adminOnly},
		{http.MethodGet, "/api/v1/employees/position-and-salary-greater-than", employees.PositionAndSalaryGreaterThan, adminOnly},
		{http.MethodGet, "/api/v1/employees/position-and-salary-less-than", employees.PositionAndSalaryLessThan, adminOnly},
		{http.MethodGet, "/api/v1/employees/highest-salary", employees.HighestSalary, adminOnly},
		{http.MethodGet, "/api/v1/employees/lowest-salary", employees.LowestSalary, adminOnly},

		{http.MethodPost, "/api/v1/employees", employees.Create, adminOnly},
		{http.MethodPut, "/api/v1/employees/:id", employees.Update, adminOnly},
		{http.MethodDelete, "/api/v1/employees/:id", employees.Delete, adminOnly},

		{http.MethodPost, "/api/v1/init", employees.Seed, adminOnly},
	}
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("employee_records"))

	// --- Public routes ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	e.POST("/api/v1/auth/register", authHandler.Register)
	e.POST("/api/v1/auth/login", authHandler.Login)

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)
	e.GET("/health", healthHandler.Liveness)            // liveness  - is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness - are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Protected routes, from the policy table ---
	employeeHandler := handler.NewEmployeeHandler(deps.EmployeeService)
	for _, route := range policyTable(employeeHandler) {
		e.Add(route.method, route.path, route.handler, middleware.Guard(deps.Authorizer, route.roles...))
	}

	return e
}
