package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/emsapp/employee-records/internal/core/domain"
	"github.com/emsapp/employee-records/internal/core/ports"
)

// tokenAuthorizer resolves tokens of the form "user:<name>:<role>" without
// any cryptography, so routing tests exercise the policy table in isolation.
type tokenAuthorizer struct{}

func (tokenAuthorizer) Authorize(_ context.Context, rawToken string, required []domain.Role) (domain.Principal, error) {
	if rawToken == "" {
		return domain.Principal{}, domain.ErrUnauthenticated
	}
	parts := strings.Split(rawToken, ":")
	if len(parts) != 3 || parts[0] != "user" {
		return domain.Principal{}, domain.ErrMalformedToken
	}
	p := domain.Principal{Username: parts[1], Roles: []domain.Role{domain.Role(parts[2])}}
	if !p.HasAnyRole(required...) {
		return domain.Principal{}, domain.ErrForbidden
	}
	return p, nil
}

type countingAuthService struct{}

func (countingAuthService) Login(_ context.Context, _, _ string) (string, error) {
	return "user:alice:USER", nil
}

func (countingAuthService) Register(_ context.Context, username, _ string, roles []domain.Role) (*domain.User, error) {
	return &domain.User{ID: "u1", Username: username, Roles: roles}, nil
}

// countingEmployeeService records whether any operation was reached, which is
// what the routing tests assert on.
type countingEmployeeService struct {
	calls int
}

func (s *countingEmployeeService) touch() { s.calls++ }

func (s *countingEmployeeService) FindAll(_ context.Context) ([]domain.Employee, error) {
	s.touch()
	return nil, nil
}

func (s *countingEmployeeService) FindByID(_ context.Context, _ string) (*domain.Employee, error) {
	s.touch()
	return &domain.Employee{ID: "emp-1"}, nil
}

func (s *countingEmployeeService) Search(_ context.Context, _ ports.SearchCriteria) ([]domain.Employee, error) {
	s.touch()
	return nil, nil
}

func (s *countingEmployeeService) SearchByPositionsDepartmentsSalary(_ context.Context, _, _ []string, _, _ *float64) ([]domain.Employee, error) {
	s.touch()
	return nil, nil
}

func (s *countingEmployeeService) SalaryGreaterThan(_ context.Context, _ float64) ([]domain.Employee, error) {
	s.touch()
	return nil, nil
}

func (s *countingEmployeeService) SalaryLessThan(_ context.Context, _ float64) ([]domain.Employee, error) {
	s.touch()
	return nil, nil
}

func (s *countingEmployeeService) SalaryRange(_ context.Context, _, _ float64) ([]domain.Employee, error) {
	s.touch()
	return nil, nil
}

func (s *countingEmployeeService) PositionAndSalaryGreaterThan(_ context.Context, _ string, _ float64) ([]domain.Employee, error) {
	s.touch()
	return nil, nil
}

func (s *countingEmployeeService) PositionAndSalaryLessThan(_ context.Context, _ string, _ float64) ([]domain.Employee, error) {
	s.touch()
	return nil, nil
}

func (s *countingEmployeeService) HighestSalary(_ context.Context) (*domain.Employee, error) {
	s.touch()
	return &domain.Employee{ID: "emp-1"}, nil
}

func (s *countingEmployeeService) LowestSalary(_ context.Context) (*domain.Employee, error) {
	s.touch()
	return &domain.Employee{ID: "emp-1"}, nil
}

func (s *countingEmployeeService) Create(_ context.Context, _ domain.Principal, _ ports.EmployeeInput) (*domain.Employee, error) {
	s.touch()
	return &domain.Employee{ID: "emp-1"}, nil
}

func (s *countingEmployeeService) Update(_ context.Context, _ domain.Principal, id string, _ ports.EmployeeInput) (*domain.Employee, error) {
	s.touch()
	return &domain.Employee{ID: id}, nil
}

func (s *countingEmployeeService) Delete(_ context.Context, _ domain.Principal, _ string) error {
	s.touch()
	return nil
}

func (s *countingEmployeeService) Seed(_ context.Context, _ domain.Principal) ([]domain.Employee, error) {
	s.touch()
	return nil, nil
}

// The router is built once for the whole package: the prometheus middleware
// registers collectors on the default registry, and a second registration
// panics.
var (
	routerOnce   sync.Once
	sharedSvc    *countingEmployeeService
	sharedRouter http.Handler
)

func newTestRouter() (*countingEmployeeService, http.Handler) {
	routerOnce.Do(func() {
		sharedSvc = &countingEmployeeService{}
		sharedRouter = NewRouter(Dependencies{
			AuthService:     countingAuthService{},
			Authorizer:      tokenAuthorizer{},
			EmployeeService: sharedSvc,
			Logger:          zerolog.Nop(),
		})
	})
	sharedSvc.calls = 0
	return sharedSvc, sharedRouter
}

func do(h http.Handler, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_PublicRoutes(t *testing.T) {
	_, h := newTestRouter()

	if rec := do(h, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("health must be public, got %d", rec.Code)
	}
	if rec := do(h, http.MethodGet, "/metrics", ""); rec.Code != http.StatusOK {
		t.Fatalf("metrics must be public, got %d", rec.Code)
	}
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	svc, h := newTestRouter()

	if rec := do(h, http.MethodGet, "/api/v1/employees", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	if svc.calls != 0 {
		t.Fatalf("service reached without authentication")
	}
}

func TestRouter_ReadRoutesAllowUserRole(t *testing.T) {
	svc, h := newTestRouter()

	if rec := do(h, http.MethodGet, "/api/v1/employees", "user:alice:USER"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for USER on list, got %d", rec.Code)
	}
	if rec := do(h, http.MethodGet, "/api/v1/employees/emp-1", "user:alice:USER"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for USER on get, got %d", rec.Code)
	}
	if svc.calls != 2 {
		t.Fatalf("expected 2 service calls, got %d", svc.calls)
	}
}

func TestRouter_AdminOnlyRoutesRejectUserRole(t *testing.T) {
	svc, h := newTestRouter()

	adminOnly := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/v1/employees/search"},
		{http.MethodGet, "/api/v1/employees/highest-salary"},
		{http.MethodPost, "/api/v1/employees"},
		{http.MethodPut, "/api/v1/employees/emp-1"},
		{http.MethodDelete, "/api/v1/employees/emp-1"},
		{http.MethodPost, "/api/v1/init"},
	}

	for _, route := range adminOnly {
		rec := do(h, route.method, route.target, "user:alice:USER")
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s %s: expected 403 for USER, got %d", route.method, route.target, rec.Code)
		}
	}
	if svc.calls != 0 {
		t.Fatalf("service reached despite forbidden access, %d calls", svc.calls)
	}
}

func TestRouter_AdminRoleReachesMutations(t *testing.T) {
	svc, h := newTestRouter()

	if rec := do(h, http.MethodDelete, "/api/v1/employees/emp-1", "user:root:ADMIN"); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for ADMIN delete, got %d", rec.Code)
	}
	if rec := do(h, http.MethodPost, "/api/v1/init", "user:root:ADMIN"); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for ADMIN seed, got %d", rec.Code)
	}
	if svc.calls != 2 {
		t.Fatalf("expected 2 service calls, got %d", svc.calls)
	}
}

func TestRouter_MalformedTokenRejected(t *testing.T) {
	_, h := newTestRouter()

	if rec := do(h, http.MethodGet, "/api/v1/employees", "garbage"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for malformed token, got %d", rec.Code)
	}
}
