package ports

import (
	"context"

	"github.com/emsapp/employee-records/internal/core/domain"
)

// UserRepository is the credential store consumed by the auth subsystem.
// Username matching is exact and case-sensitive.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
