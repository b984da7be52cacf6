package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/emsapp/employee-records/internal/core/domain"
	"github.com/emsapp/employee-records/internal/core/password"
	"github.com/emsapp/employee-records/internal/core/token"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]domain.Role(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := r.users[username]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := r.users[username]
	return ok, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUsernameTaken
	}
	created := cloneUser(user)
	if created.ID == "" {
		created.ID = "id-" + user.Username
	}
	r.users[created.Username] = cloneUser(created)
	return cloneUser(created), nil
}

func newTestAuthService() (*AuthService, *stubUserRepo, *token.Codec) {
	repo := newStubUserRepo()
	codec := token.NewCodec("test-secret", time.Hour)
	return NewAuthService(repo, codec), repo, codec
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _, _ := newTestAuthService()

	user, err := svc.Register(context.Background(), "alice", "pw1", []domain.Role{domain.RoleUser})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned ID")
	}
	if user.PasswordHash == "pw1" {
		t.Fatalf("expected password to be hashed")
	}
	if !password.Verify("pw1", user.PasswordHash) {
		t.Fatalf("stored hash does not match password")
	}
	if len(user.Roles) != 1 || user.Roles[0] != domain.RoleUser {
		t.Fatalf("unexpected roles: %v", user.Roles)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), "bob", "pw1", []domain.Role{domain.RoleUser}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	// Not idempotent: the same username always conflicts, even with a
	// different password.
	if _, err := svc.Register(context.Background(), "bob", "pw2", []domain.Role{domain.RoleAdmin}); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), "", "pw", []domain.Role{domain.RoleUser}); !errors.Is(err, domain.ErrInvalidRegistration) {
		t.Fatalf("expected ErrInvalidRegistration for empty username, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "carl", "pw", nil); !errors.Is(err, domain.ErrInvalidRegistration) {
		t.Fatalf("expected ErrInvalidRegistration for empty roles, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "carl", "pw", []domain.Role{"SUPERUSER"}); !errors.Is(err, domain.ErrInvalidRegistration) {
		t.Fatalf("expected ErrInvalidRegistration for unknown role, got %v", err)
	}
}

func TestAuthService_Register_CaseSensitiveUsernames(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), "carol", "pw", []domain.Role{domain.RoleUser}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	// Usernames are exact-match strings; a different casing is a new user.
	if _, err := svc.Register(context.Background(), "Carol", "pw", []domain.Role{domain.RoleUser}); err != nil {
		t.Fatalf("expected differently-cased username to register, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, codec := newTestAuthService()

	if _, err := svc.Register(context.Background(), "dave", "goodpass", []domain.Role{domain.RoleAdmin}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	tok, err := svc.Login(context.Background(), "dave", "goodpass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if tok == "" {
		t.Fatalf("expected token, got empty")
	}

	claims, err := codec.Validate(tok, time.Now().UTC())
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.Subject != "dave" {
		t.Fatalf("expected subject dave, got %s", claims.Subject)
	}
}

func TestAuthService_Login_FailureIndistinguishable(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), "erin", "goodpass", []domain.Role{domain.RoleUser}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, wrongPass := svc.Login(context.Background(), "erin", "badpass")
	_, unknownUser := svc.Login(context.Background(), "ghost", "whatever")

	// Wrong password and unknown username must yield the identical outcome
	// so callers cannot enumerate usernames.
	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPass)
	}
	if !errors.Is(unknownUser, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", unknownUser)
	}
	if wrongPass.Error() != unknownUser.Error() {
		t.Fatalf("outcomes must be indistinguishable: %q vs %q", wrongPass, unknownUser)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.Login(context.Background(), "", "pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "user", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
