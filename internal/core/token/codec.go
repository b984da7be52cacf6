// Package token issues and validates the signed, time-bounded bearer tokens
// used by the authorization layer. Tokens are stateless: nothing is persisted
// and nothing is revocable before natural expiry. Rotating the signing secret
// invalidates every outstanding token.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/emsapp/employee-records/internal/core/domain"
)

const defaultTTL = 24 * time.Hour

// Claims is the validated claim set carried inside a token. Roles are never
// encoded here; they are resolved fresh from the credential store on every
// request, so role changes take effect without forcing re-login.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Codec encodes and decodes signed tokens with a fixed secret and TTL, both
// read once at startup. The TTL is not caller-adjustable.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec returns a Codec signing with the given secret. A negative ttl
// falls back to 24 hours; a zero ttl is honoured and produces tokens that are
// already expired at issuance.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl < 0 {
		ttl = defaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue builds and signs a token for the subject with iat=now and exp=now+ttl.
func (c *Codec) Issue(subject string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Validate decodes raw, verifies the signature against the secret, and checks
// expiry relative to now. It fails closed: any truncation, tampering, claim
// malformation, or unexpected signing algorithm yields ErrMalformedToken.
// A token whose signature verifies but whose expiry has passed yields
// ErrExpiredToken. Both must be rejected by callers; they are distinguished
// only so user-facing messages can differ.
func (c *Codec) Validate(raw string, now time.Time) (*Claims, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredToken
		}
		return nil, domain.ErrMalformedToken
	}
	if !parsed.Valid || claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, domain.ErrMalformedToken
	}

	out := &Claims{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}
