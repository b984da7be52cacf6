package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/emsapp/employee-records/internal/core/domain"
	"github.com/emsapp/employee-records/internal/core/ports"
)

// Audit action names.
const (
	auditCreate = "CREATE"
	auditUpdate = "UPDATE"
	auditDelete = "DELETE"
	auditSeed   = "SEED"
)

// EmployeeService implements employee CRUD and the search variants. Every
// mutating operation records an audit entry (success or failure) attributed
// to the acting principal, and a successful create publishes a notification
// event. Both side effects are explicit post-operation calls sequenced by
// this service, never interception.
type EmployeeService struct {
	repo     ports.EmployeeRepository
	audit    ports.AuditSink
	notifier ports.EmployeeNotifier
	logger   zerolog.Logger
	now      func() time.Time
}

func NewEmployeeService(repo ports.EmployeeRepository, audit ports.AuditSink, notifier ports.EmployeeNotifier, logger zerolog.Logger) *EmployeeService {
	return &EmployeeService{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *EmployeeService) FindAll(ctx context.Context) ([]domain.Employee, error) {
	return s.repo.FindAll(ctx)
}

func (s *EmployeeService) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	return s.repo.FindByID(ctx, id)
}

// Search filters by any combination of optional fields; unset fields are not
// constrained.
func (s *EmployeeService) Search(ctx context.Context, criteria ports.SearchCriteria) ([]domain.Employee, error) {
	return s.repo.Find(ctx, ports.EmployeeFilter{
		FirstName:  criteria.FirstName,
		LastName:   criteria.LastName,
		Email:      criteria.Email,
		Position:   criteria.Position,
		Department: criteria.Department,
		SalaryFrom: criteria.SalaryFrom,
		SalaryTo:   criteria.SalaryTo,
	})
}

// SearchByPositionsDepartmentsSalary matches any of the given positions AND
// any of the given departments AND the inclusive salary range. Empty lists
// and nil bounds are skipped.
func (s *EmployeeService) SearchByPositionsDepartmentsSalary(ctx context.Context, positions, departments []string, salaryFrom, salaryTo *float64) ([]domain.Employee, error) {
	return s.repo.Find(ctx, ports.EmployeeFilter{
		Positions:   trimAll(positions),
		Departments: trimAll(departments),
		SalaryFrom:  salaryFrom,
		SalaryTo:    salaryTo,
	})
}

func (s *EmployeeService) SalaryGreaterThan(ctx context.Context, salary float64) ([]domain.Employee, error) {
	return s.repo.Find(ctx, ports.EmployeeFilter{SalaryAbove: &salary})
}

func (s *EmployeeService) SalaryLessThan(ctx context.Context, salary float64) ([]domain.Employee, error) {
	return s.repo.Find(ctx, ports.EmployeeFilter{SalaryBelow: &salary})
}

func (s *EmployeeService) SalaryRange(ctx context.Context, from, to float64) ([]domain.Employee, error) {
	return s.repo.Find(ctx, ports.EmployeeFilter{SalaryFrom: &from, SalaryTo: &to})
}

func (s *EmployeeService) PositionAndSalaryGreaterThan(ctx context.Context, position string, salary float64) ([]domain.Employee, error) {
	return s.repo.Find(ctx, ports.EmployeeFilter{Position: position, SalaryAbove: &salary})
}

func (s *EmployeeService) PositionAndSalaryLessThan(ctx context.Context, position string, salary float64) ([]domain.Employee, error) {
	return s.repo.Find(ctx, ports.EmployeeFilter{Position: position, SalaryBelow: &salary})
}

func (s *EmployeeService) HighestSalary(ctx context.Context) (*domain.Employee, error) {
	return s.repo.FindTopBySalary(ctx, true)
}

func (s *EmployeeService) LowestSalary(ctx context.Context) (*domain.Employee, error) {
	return s.repo.FindTopBySalary(ctx, false)
}

// Create inserts a new employee. Emails are unique across employees. On
// success a creation event is published; publish failures are logged and do
// not fail the operation.
func (s *EmployeeService) Create(ctx context.Context, principal domain.Principal, input ports.EmployeeInput) (*domain.Employee, error) {
	exists, err := s.repo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.recordAudit(auditCreate, "", principal, err)
		return nil, err
	}
	if exists {
		s.recordAudit(auditCreate, "", principal, domain.ErrEmailTaken)
		return nil, domain.ErrEmailTaken
	}

	created, err := s.repo.Create(ctx, &domain.Employee{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      input.Email,
		Position:   input.Position,
		Salary:     input.Salary,
		Department: input.Department,
	})
	if err != nil {
		s.recordAudit(auditCreate, "", principal, err)
		return nil, err
	}

	s.recordAudit(auditCreate, created.ID, principal, nil)

	if err := s.notifier.EmployeeCreated(ctx, *created); err != nil {
		s.logger.Warn().Err(err).Str("employee_id", created.ID).Msg("employee-created notification failed")
	}

	s.logger.Info().Str("employee_id", created.ID).Str("by", principal.Username).Msg("employee created")
	return created, nil
}

// Update replaces the writable fields of an existing employee. Changing the
// email to one held by a different employee fails with ErrEmailTaken.
func (s *EmployeeService) Update(ctx context.Context, principal domain.Principal, id string, input ports.EmployeeInput) (*domain.Employee, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.recordAudit(auditUpdate, id, principal, err)
		return nil, err
	}

	taken, err := s.emailTakenByAnother(ctx, existing.ID, input.Email)
	if err != nil {
		s.recordAudit(auditUpdate, id, principal, err)
		return nil, err
	}
	if taken {
		s.recordAudit(auditUpdate, id, principal, domain.ErrEmailTaken)
		return nil, domain.ErrEmailTaken
	}

	existing.FirstName = input.FirstName
	existing.LastName = input.LastName
	existing.Email = input.Email
	existing.Position = input.Position
	existing.Salary = input.Salary
	existing.Department = input.Department

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		s.recordAudit(auditUpdate, id, principal, err)
		return nil, err
	}

	s.recordAudit(auditUpdate, id, principal, nil)
	return updated, nil
}

// Delete removes an employee by ID.
func (s *EmployeeService) Delete(ctx context.Context, principal domain.Principal, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		s.recordAudit(auditDelete, id, principal, err)
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.recordAudit(auditDelete, id, principal, err)
		return err
	}
	s.recordAudit(auditDelete, id, principal, nil)
	return nil
}

// Seed inserts the sample data set, but only when the collection is empty.
func (s *EmployeeService) Seed(ctx context.Context, principal domain.Principal) ([]domain.Employee, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		s.recordAudit(auditSeed, "", principal, domain.ErrAlreadySeeded)
		return nil, domain.ErrAlreadySeeded
	}

	seeded := make([]domain.Employee, 0, len(seedEmployees))
	for i := range seedEmployees {
		e := seedEmployees[i]
		created, err := s.repo.Create(ctx, &e)
		if err != nil {
			s.recordAudit(auditSeed, "", principal, err)
			return nil, err
		}
		seeded = append(seeded, *created)
	}

	s.recordAudit(auditSeed, "", principal, nil)
	s.logger.Info().Int("count", len(seeded)).Str("by", principal.Username).Msg("employee data seeded")
	return seeded, nil
}

// emailTakenByAnother reports whether email belongs to an employee other than
// the one identified by ownID.
func (s *EmployeeService) emailTakenByAnother(ctx context.Context, ownID, email string) (bool, error) {
	other, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return false, nil
		}
		return false, err
	}
	return other.ID != ownID, nil
}

func (s *EmployeeService) recordAudit(action, entityID string, principal domain.Principal, opErr error) {
	entry := ports.AuditEntry{
		Action:   action,
		EntityID: entityID,
		Username: principal.Username,
		At:       s.now(),
		Success:  opErr == nil,
	}
	if opErr != nil {
		entry.Error = opErr.Error()
	}
	s.audit.Record(entry)
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

var seedEmployees = []domain.Employee{
	{FirstName: "John", LastName: "Doe", Email: "john.doe@example.com", Position: "Software Developer", Salary: 60000, Department: "Dep A"},
	{FirstName: "Jane", LastName: "Smith", Email: "jane.smith@example.com", Position: "Software Developer", Salary: 75000, Department: "Dep B"},
	{FirstName: "Mark", LastName: "Brown", Email: "mark.brown@example.com", Position: "HR", Salary: 45000, Department: "Dep A"},
	{FirstName: "Lucy", LastName: "Jones", Email: "lucy.jones@example.com", Position: "Project Manager", Salary: 85000, Department: "Dep C"},
	{FirstName: "Adam", LastName: "Wilson", Email: "adam.wilson@example.com", Position: "QA Engineer", Salary: 52000, Department: "Dep B"},
}
