package ports

import (
	"context"
	"time"

	"github.com/emsapp/employee-records/internal/core/domain"
)

// AuditEntry records one mutating employee action, successful or not.
type AuditEntry struct {
	Action   string
	EntityID string
	Username string
	At       time.Time
	Success  bool
	Error    string
}

// AuditSink receives audit entries after the orchestrating service finishes a
// mutating operation. Record is fire-and-forget: it must not block the request
// path and never returns an error to the caller.
type AuditSink interface {
	Record(entry AuditEntry)
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry AuditEntry) error
}

// EmployeeNotifier publishes an event when an employee record is created.
// Delivery failures are logged by the caller and never fail the operation.
type EmployeeNotifier interface {
	EmployeeCreated(ctx context.Context, employee domain.Employee) error
}
