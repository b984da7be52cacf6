package ports

import (
	"context"

	"github.com/emsapp/employee-records/internal/core/domain"
)

// AuthService orchestrates credential verification and token issuance.
type AuthService interface {
	// Login verifies the credentials and returns a signed token. Unknown
	// usernames and wrong passwords are both reported as
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, error)
	// Register creates a new identity. The returned user never carries the
	// password hash in its public projection.
	Register(ctx context.Context, username, password string, roles []domain.Role) (*domain.User, error)
}

// Authorizer is the single enforcement point for protected operations. It is
// invoked identically regardless of which operation triggered it.
type Authorizer interface {
	// Authorize validates the raw bearer token, resolves the caller's roles
	// fresh from the credential store, and checks them against the required
	// set. Failures are domain.ErrUnauthenticated, domain.ErrMalformedToken,
	// domain.ErrExpiredToken, or domain.ErrForbidden.
	Authorize(ctx context.Context, rawToken string, required []domain.Role) (domain.Principal, error)
}
