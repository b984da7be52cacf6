package ports

import (
	"context"

	"github.com/emsapp/employee-records/internal/core/domain"
)

// EmployeeInput carries the writable fields for create and update.
type EmployeeInput struct {
	FirstName  string
	LastName   string
	Email      string
	Position   string
	Salary     float64
	Department string
}

// SearchCriteria mirrors the optional-field search endpoint: every field may
// be left unset.
type SearchCriteria struct {
	FirstName  string
	LastName   string
	Email      string
	Position   string
	Department string
	SalaryFrom *float64
	SalaryTo   *float64
}

// EmployeeService defines the use-case operations for employee records.
// Mutating operations receive the acting principal explicitly so the audit
// trail can attribute them.
type EmployeeService interface {
	FindAll(ctx context.Context) ([]domain.Employee, error)
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	Search(ctx context.Context, criteria SearchCriteria) ([]domain.Employee, error)
	// SearchByPositionsDepartmentsSalary ORs within each list and ANDs across
	// lists and the salary range. Empty lists and nil bounds are skipped.
	SearchByPositionsDepartmentsSalary(ctx context.Context, positions, departments []string, salaryFrom, salaryTo *float64) ([]domain.Employee, error)
	SalaryGreaterThan(ctx context.Context, salary float64) ([]domain.Employee, error)
	SalaryLessThan(ctx context.Context, salary float64) ([]domain.Employee, error)
	SalaryRange(ctx context.Context, from, to float64) ([]domain.Employee, error)
	PositionAndSalaryGreaterThan(ctx context.Context, position string, salary float64) ([]domain.Employee, error)
	PositionAndSalaryLessThan(ctx context.Context, position string, salary float64) ([]domain.Employee, error)
	HighestSalary(ctx context.Context) (*domain.Employee, error)
	LowestSalary(ctx context.Context) (*domain.Employee, error)

	Create(ctx context.Context, principal domain.Principal, input EmployeeInput) (*domain.Employee, error)
	Update(ctx context.Context, principal domain.Principal, id string, input EmployeeInput) (*domain.Employee, error)
	Delete(ctx context.Context, principal domain.Principal, id string) error
	// Seed inserts the sample data set when the collection is empty.
	Seed(ctx context.Context, principal domain.Principal) ([]domain.Employee, error)
}
