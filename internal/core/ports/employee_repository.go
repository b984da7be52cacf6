package ports

import (
	"context"

	"github.com/emsapp/employee-records/internal/core/domain"
)

// EmployeeFilter is the predicate consumed by EmployeeRepository.Find. Zero
// values and nil pointers mean "no constraint on this field"; set fields are
// ANDed together, while entries within Positions or Departments are ORed.
type EmployeeFilter struct {
	FirstName  string
	LastName   string
	Email      string
	Position   string
	Department string

	Positions   []string
	Departments []string

	// Inclusive bounds.
	SalaryFrom *float64
	SalaryTo   *float64
	// Strict bounds.
	SalaryAbove *float64
	SalaryBelow *float64
}

// Empty reports whether the filter carries no constraints at all.
func (f EmployeeFilter) Empty() bool {
	return f.FirstName == "" && f.LastName == "" && f.Email == "" &&
		f.Position == "" && f.Department == "" &&
		len(f.Positions) == 0 && len(f.Departments) == 0 &&
		f.SalaryFrom == nil && f.SalaryTo == nil &&
		f.SalaryAbove == nil && f.SalaryBelow == nil
}

// EmployeeRepository is the persistence interface for employee records.
type EmployeeRepository interface {
	FindAll(ctx context.Context) ([]domain.Employee, error)
	Find(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error)
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	FindByEmail(ctx context.Context, email string) (*domain.Employee, error)
	// FindTopBySalary returns the single highest- or lowest-paid employee.
	FindTopBySalary(ctx context.Context, highest bool) (*domain.Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error)
	Update(ctx context.Context, employee *domain.Employee) (*domain.Employee, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
