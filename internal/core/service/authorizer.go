package service

import (
	"context"
	"errors"
	"time"

	"github.com/emsapp/employee-records/internal/core/domain"
	"github.com/emsapp/employee-records/internal/core/ports"
	"github.com/emsapp/employee-records/internal/core/token"
)

// Authorizer is the single enforcement point for every protected operation.
// The entire authorize path is a local computation plus one credential-store
// lookup; it holds no lock and performs no long-running work of its own.
type Authorizer struct {
	repo  ports.UserRepository
	codec *token.Codec
	now   func() time.Time
}

func NewAuthorizer(repo ports.UserRepository, codec *token.Codec) *Authorizer {
	return &Authorizer{repo: repo, codec: codec, now: func() time.Time { return time.Now().UTC() }}
}

// Authorize validates rawToken and resolves the caller into a Principal.
//
//  1. An absent or empty token is ErrUnauthenticated.
//  2. Codec failures surface as ErrMalformedToken or ErrExpiredToken.
//  3. A subject no longer present in the credential store (deleted after
//     issuance) is ErrUnauthenticated.
//  4. An empty intersection between the caller's roles and the required set
//     is ErrForbidden.
//
// Roles are looked up fresh on every call rather than read from the token,
// so a role change takes effect on the caller's next request without
// re-login. All failures are terminal for the request.
func (a *Authorizer) Authorize(ctx context.Context, rawToken string, required []domain.Role) (domain.Principal, error) {
	if rawToken == "" {
		return domain.Principal{}, domain.ErrUnauthenticated
	}

	claims, err := a.codec.Validate(rawToken, a.now())
	if err != nil {
		return domain.Principal{}, err
	}

	user, err := a.repo.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Principal{}, domain.ErrUnauthenticated
		}
		return domain.Principal{}, err
	}

	principal := domain.Principal{Username: user.Username, Roles: user.Roles}
	if !principal.HasAnyRole(required...) {
		return domain.Principal{}, domain.ErrForbidden
	}
	return principal, nil
}
