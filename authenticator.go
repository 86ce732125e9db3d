package favorites

import (
	"context"
	"time"
)

// DefaultAccessTokenTTL is the login flow's token lifetime when the
// configuration does not override it. Independent from the codec's own
// DefaultTokenTTL fallback: Login always passes its TTL explicitly.
const DefaultAccessTokenTTL = 30 * time.Minute

type Auther struct {
	provider     IdentityProvider
	tokenService TokenService
	accessTTL    time.Duration
	logger       Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider IdentityProvider, cfg Config) *Auther {
	accessTTL := cfg.GetAccessTokenTTL()
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTokenTTL
	}

	return &Auther{
		provider:     provider,
		tokenService: NewTokenService([]byte(cfg.GetSigningKey()), DefaultTokenTTL, defLogger{}),
		accessTTL:    accessTTL,
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithTokenService replaces the token codec, mainly for tests
func (s *Auther) WithTokenService(ts TokenService) *Auther {
	if ts != nil {
		s.tokenService = ts
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login validates the credential pair and issues a bearer token whose
// subject is the user's email
func (s *Auther) Login(ctx context.Context, identifier, password string) (string, error) {
	user, err := s.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		s.logger.Error("Login verify identity error", "error", err)
		return "", err
	}

	token, err := s.tokenService.Issue(user.Email, s.accessTTL)
	if err != nil {
		s.logger.Error("Login token issuance error", "error", err)
		return "", err
	}

	return token, nil
}

var _ Authenticator = (*Auther)(nil)
