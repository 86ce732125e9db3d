package favorites

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Login(ctx context.Context, identifier, password string) (string, error)
	TokenService() TokenService
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetAccessTokenTTL() time.Duration
	GetContextKey() string
	GetAuthScheme() string
}

// UserStore is the read surface the auth core needs from persistence.
// Mutations (insert, hash replacement, delete) are driven by the HTTP
// handlers through the Users repository, never by the core itself.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// IdentityProvider validates a login attempt against stored credentials
type IdentityProvider interface {
	VerifyIdentity(ctx context.Context, email, password string) (*User, error)
	FindIdentityByEmail(ctx context.Context, email string) (*User, error)
}

// TokenIssuer encodes a subject into a signed, time-limited token.
// Omitting ttl applies the codec's default lifetime; an explicit value,
// zero included, is honored as given.
type TokenIssuer interface {
	Issue(subject string, ttl ...time.Duration) (string, error)
}

// TokenValidator decodes a raw token, failing on any signature,
// algorithm, expiry, or claim problem
type TokenValidator interface {
	Validate(tokenString string) (*JWTClaims, error)
}

// TokenService is the full codec surface
type TokenService interface {
	TokenIssuer
	TokenValidator
	SignClaims(claims *JWTClaims) (string, error)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] FAVORITES "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] FAVORITES "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] FAVORITES "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] FAVORITES "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
