package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/emsapp/employee-records/internal/core/domain"
	"github.com/emsapp/employee-records/internal/core/token"
)

func newTestAuthorizer() (*Authorizer, *AuthService, *stubUserRepo) {
	repo := newStubUserRepo()
	codec := token.NewCodec("test-secret", time.Hour)
	return NewAuthorizer(repo, codec), NewAuthService(repo, codec), repo
}

func TestAuthorizer_RoleEnforcement(t *testing.T) {
	authz, auth, _ := newTestAuthorizer()
	ctx := context.Background()

	if _, err := auth.Register(ctx, "alice", "pw", []domain.Role{domain.RoleUser}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	tok, err := auth.Login(ctx, "alice", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := authz.Authorize(ctx, tok, []domain.Role{domain.RoleAdmin}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for USER on admin-only operation, got %v", err)
	}

	principal, err := authz.Authorize(ctx, tok, []domain.Role{domain.RoleUser, domain.RoleAdmin})
	if err != nil {
		t.Fatalf("expected success when USER is in the required set, got %v", err)
	}
	if principal.Username != "alice" {
		t.Fatalf("expected principal alice, got %s", principal.Username)
	}
	if len(principal.Roles) != 1 || principal.Roles[0] != domain.RoleUser {
		t.Fatalf("unexpected principal roles: %v", principal.Roles)
	}
}

func TestAuthorizer_EmptyToken(t *testing.T) {
	authz, _, _ := newTestAuthorizer()

	if _, err := authz.Authorize(context.Background(), "", []domain.Role{domain.RoleUser}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthorizer_DeletedSubject(t *testing.T) {
	authz, auth, repo := newTestAuthorizer()
	ctx := context.Background()

	if _, err := auth.Register(ctx, "bob", "pw", []domain.Role{domain.RoleAdmin}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	tok, err := auth.Login(ctx, "bob", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// The token stays cryptographically valid, but the subject is gone.
	delete(repo.users, "bob")

	if _, err := authz.Authorize(ctx, tok, []domain.Role{domain.RoleAdmin}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for deleted subject, got %v", err)
	}
}

func TestAuthorizer_RoleChangeTakesEffectWithoutRelogin(t *testing.T) {
	authz, auth, repo := newTestAuthorizer()
	ctx := context.Background()

	if _, err := auth.Register(ctx, "carol", "pw", []domain.Role{domain.RoleUser}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	tok, err := auth.Login(ctx, "carol", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := authz.Authorize(ctx, tok, []domain.Role{domain.RoleAdmin}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden before promotion, got %v", err)
	}

	// Promotion is visible on the very next request with the same token
	// because roles are resolved from the store, not the token.
	repo.users["carol"].Roles = []domain.Role{domain.RoleUser, domain.RoleAdmin}

	if _, err := authz.Authorize(ctx, tok, []domain.Role{domain.RoleAdmin}); err != nil {
		t.Fatalf("expected success after promotion, got %v", err)
	}
}

func TestAuthorizer_ExpiredToken(t *testing.T) {
	repo := newStubUserRepo()
	codec := token.NewCodec("test-secret", time.Minute)
	authz := NewAuthorizer(repo, codec)
	auth := NewAuthService(repo, codec)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "dave", "pw", []domain.Role{domain.RoleUser}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	tok, err := codec.Issue("dave", time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := authz.Authorize(ctx, tok, []domain.Role{domain.RoleUser}); !errors.Is(err, domain.ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestAuthorizer_TamperedToken(t *testing.T) {
	authz, auth, _ := newTestAuthorizer()
	ctx := context.Background()

	if _, err := auth.Register(ctx, "erin", "pw", []domain.Role{domain.RoleUser}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	tok, err := auth.Login(ctx, "erin", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %s", tok)
	}
	sig := []byte(parts[2])
	if sig[0] == 'Q' {
		sig[0] = 'A'
	} else {
		sig[0] = 'Q'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := authz.Authorize(ctx, tampered, []domain.Role{domain.RoleUser}); !errors.Is(err, domain.ErrMalformedToken) {
		t.Fatalf("expected ErrMalformedToken, got %v", err)
	}
}
