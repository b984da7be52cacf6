package service

import (
	"context"
	"errors"
	"time"

	"github.com/emsapp/employee-records/internal/core/domain"
	"github.com/emsapp/employee-records/internal/core/password"
	"github.com/emsapp/employee-records/internal/core/ports"
	"github.com/emsapp/employee-records/internal/core/token"
)

// AuthService implements registration and login. Login is stateless: no
// session record is created, the only artifact is the issued token.
type AuthService struct {
	repo  ports.UserRepository
	codec *token.Codec
	now   func() time.Time
}

func NewAuthService(repo ports.UserRepository, codec *token.Codec) *AuthService {
	return &AuthService{repo: repo, codec: codec, now: func() time.Time { return time.Now().UTC() }}
}

// Login verifies the credentials against the store and issues a token.
// An unknown username and a wrong password are deliberately collapsed into
// the same ErrInvalidCredentials so callers cannot enumerate usernames.
func (s *AuthService) Login(ctx context.Context, username, pass string) (string, error) {
	if username == "" || pass == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !password.Verify(pass, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	return s.codec.Issue(user.Username, s.now())
}

// Register creates a new identity. Username uniqueness is exact-match and
// case-sensitive; a duplicate always fails with ErrUsernameTaken even when
// the password differs. The returned user is the public projection: the hash
// field is excluded from serialization.
func (s *AuthService) Register(ctx context.Context, username, pass string, roles []domain.Role) (*domain.User, error) {
	if username == "" || pass == "" || len(roles) == 0 {
		return nil, domain.ErrInvalidRegistration
	}
	for _, r := range roles {
		if !domain.ValidRole(r) {
			return nil, domain.ErrInvalidRegistration
		}
	}

	exists, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := password.Hash(pass)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Roles:        roles,
	}
	return s.repo.Create(ctx, user)
}
