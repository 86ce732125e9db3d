package favorites

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// Guard turns an incoming bearer token into the authenticated User for a
// protected request. Both collaborators are injected once at
// construction; resolution is read-only with respect to token, provider,
// and user.
type Guard struct {
	provider IdentityProvider
	tokens   TokenValidator
	logger   Logger
}

// NewSessionGuard creates a Guard over the given identity provider and
// token codec
func NewSessionGuard(provider IdentityProvider, tokens TokenValidator) *Guard {
	return &Guard{
		provider: provider,
		tokens:   tokens,
		logger:   defLogger{},
	}
}

func (g *Guard) WithLogger(l Logger) *Guard {
	if l != nil {
		g.logger = l
	}
	return g
}

// ResolveUser validates the raw token and loads the subject's record.
// Every failure, decode, missing subject, or vanished user, collapses
// into ErrUnauthenticated; provider errors other than not-found
// propagate untranslated.
func (g *Guard) ResolveUser(ctx context.Context, raw string) (*User, error) {
	claims, err := g.tokens.Validate(raw)
	if err != nil {
		g.logger.Debug("Guard token validation failed", "error", err)
		return nil, ErrUnauthenticated
	}

	subject := claims.Subject()
	if subject == "" {
		return nil, ErrUnauthenticated
	}

	user, err := g.provider.FindIdentityByEmail(ctx, subject)
	if err != nil {
		if goerrors.IsNotFound(err) {
			g.logger.Warn("Guard resolved token for missing user", "subject", subject)
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	return user, nil
}
