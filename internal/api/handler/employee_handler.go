package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/emsapp/employee-records/internal/api/metrics"
	"github.com/emsapp/employee-records/internal/core/ports"
)

// EmployeeHandler handles HTTP requests for employee operations. All routes
// are protected; the Guard middleware has already resolved the principal by
// the time any method here runs.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// List handles GET /api/v1/employees.
func (h *EmployeeHandler) List(c echo.Context) error {
	employees, err := h.service.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponses(employees))
}

// Get handles GET /api/v1/employees/:id.
func (h *EmployeeHandler) Get(c echo.Context) error {
	employee, err := h.service.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponse(*employee))
}

// Search handles GET /api/v1/employees/search. Every query parameter is
// optional; unset parameters do not constrain the result.
func (h *EmployeeHandler) Search(c echo.Context) error {
	criteria := ports.SearchCriteria{
		FirstName:  c.QueryParam("first_name"),
		LastName:   c.QueryParam("last_name"),
		Email:      c.QueryParam("email"),
		Position:   c.QueryParam("position"),
		Department: c.QueryParam("department"),
	}

	var err error
	if criteria.SalaryFrom, err = optionalSalary(c.QueryParam("salary_from")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "salary_from must be a number")
	}
	if criteria.SalaryTo, err = optionalSalary(c.QueryParam("salary_to")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "salary_to must be a number")
	}

	employees, err := h.service.Search(c.Request().Context(), criteria)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponses(employees))
}

// SearchByLists handles GET /api/v1/employees/search/by-lists. Positions and
// departments are comma-separated; entries within a list are ORed.
func (h *EmployeeHandler) SearchByLists(c echo.Context) error {
	salaryFrom, err := optionalSalary(c.QueryParam("salary_from"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "salary_from must be a number")
	}
	salaryTo, err := optionalSalary(c.QueryParam("salary_to"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "salary_to must be a number")
	}

	employees, err := h.service.SearchByPositionsDepartmentsSalary(
		c.Request().Context(),
		splitList(c.QueryParam("positions")),
		splitList(c.QueryParam("departments")),
		salaryFrom,
		salaryTo,
	)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponses(employees))
}

// SalaryGreaterThan handles GET /api/v1/employees/salary-greater-than/:salary.
func (h *EmployeeHandler) SalaryGreaterThan(c echo.Context) error {
	salary, err := requiredSalary(c.Param("salary"))
	if err != nil {
		return err
	}
	employees, err := h.service.SalaryGreaterThan(c.Request().Context(), salary)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponses(employees))
}

// SalaryLessThan handles GET /api/v1/employees/salary-less-than/:salary.
func (h *EmployeeHandler) SalaryLessThan(c echo.Context) error {
	salary, err := requiredSalary(c.Param("salary"))
	if err != nil {
		return err
	}
	employees, err := h.service.SalaryLessThan(c.Request().Context(), salary)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponses(employees))
}

// SalaryRange handles GET /api/v1/employees/salary-range.
func (h *EmployeeHandler) SalaryRange(c echo.Context) error {
	from, err := requiredSalary(c.QueryParam("salary_from"))
	if err != nil {
		return err
	}
	to, err := requiredSalary(c.QueryParam("salary_to"))
	if err != nil {
		return err
	}
	employees, err := h.service.SalaryRange(c.Request().Context(), from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponses(employees))
}

// PositionAndSalaryGreaterThan handles GET /api/v1/employees/position-and-salary-greater-than.
func (h *EmployeeHandler) PositionAndSalaryGreaterThan(c echo.Context) error {
	position := c.QueryParam("position")
	if position == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "position is required")
	}
	salary, err := requiredSalary(c.QueryParam("salary"))
	if err != nil {
		return err
	}
	employees, err := h.service.PositionAndSalaryGreaterThan(c.Request().Context(), position, salary)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponses(employees))
}

// PositionAndSalaryLessThan handles GET /api/v1/employees/position-and-salary-less-than.
func (h *EmployeeHandler) PositionAndSalaryLessThan(c echo.Context) error {
	position := c.QueryParam("position")
	if position == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "position is required")
	}
	salary, err := requiredSalary(c.QueryParam("salary"))
	if err != nil {
		return err
	}
	employees, err := h.service.PositionAndSalaryLessThan(c.Request().Context(), position, salary)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponses(employees))
}

// HighestSalary handles GET /api/v1/employees/highest-salary.
func (h *EmployeeHandler) HighestSalary(c echo.Context) error {
	employee, err := h.service.HighestSalary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponse(*employee))
}

// LowestSalary handles GET /api/v1/employees/lowest-salary.
func (h *EmployeeHandler) LowestSalary(c echo.Context) error {
	employee, err := h.service.LowestSalary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponse(*employee))
}

// Create handles POST /api/v1/employees.
func (h *EmployeeHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req employeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), principal, toInput(req))
	if err != nil {
		metrics.EmployeeMutationsTotal.WithLabelValues("create", "failure").Inc()
		return err
	}

	metrics.EmployeeMutationsTotal.WithLabelValues("create", "success").Inc()
	metrics.EmployeesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toEmployeeResponse(*created))
}

// Update handles PUT /api/v1/employees/:id.
func (h *EmployeeHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req employeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.Update(c.Request().Context(), principal, c.Param("id"), toInput(req))
	if err != nil {
		metrics.EmployeeMutationsTotal.WithLabelValues("update", "failure").Inc()
		return err
	}

	metrics.EmployeeMutationsTotal.WithLabelValues("update", "success").Inc()
	return c.JSON(http.StatusOK, toEmployeeResponse(*updated))
}

// Delete handles DELETE /api/v1/employees/:id.
func (h *EmployeeHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), principal, c.Param("id")); err != nil {
		metrics.EmployeeMutationsTotal.WithLabelValues("delete", "failure").Inc()
		return err
	}

	metrics.EmployeeMutationsTotal.WithLabelValues("delete", "success").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Seed handles POST /api/v1/init, inserting sample employees when the
// collection is empty.
func (h *EmployeeHandler) Seed(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	seeded, err := h.service.Seed(c.Request().Context(), principal)
	if err != nil {
		metrics.EmployeeMutationsTotal.WithLabelValues("seed", "failure").Inc()
		return err
	}

	metrics.EmployeeMutationsTotal.WithLabelValues("seed", "success").Inc()
	return c.JSON(http.StatusCreated, toEmployeeResponses(seeded))
}

func toInput(req employeeRequest) ports.EmployeeInput {
	return ports.EmployeeInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Position:   req.Position,
		Salary:     req.Salary,
		Department: req.Department,
	}
}

func optionalSalary(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func requiredSalary(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "salary must be a number")
	}
	return v, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
