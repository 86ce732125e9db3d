package favorites

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// DefaultTokenTTL is the codec's own fallback lifetime, used only when a
// caller does not pass an explicit TTL. The login flow carries its own
// configured default and always passes it explicitly.
const DefaultTokenTTL = 15 * time.Minute

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey []byte
	defaultTTL time.Duration
	logger     Logger
}

// NewTokenService creates a new TokenService instance
func NewTokenService(signingKey []byte, defaultTTL time.Duration, logger Logger) TokenService {
	if logger == nil {
		logger = defLogger{}
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultTokenTTL
	}
	return &TokenServiceImpl{
		signingKey: signingKey,
		defaultTTL: defaultTTL,
		logger:     logger,
	}
}

// Issue creates a signed HS256 token for the given subject. When no ttl
// is given the codec default applies; an explicit ttl is honored as is,
// so a zero ttl produces a token that is already expired on the next
// clock tick.
func (ts *TokenServiceImpl) Issue(subject string, ttl ...time.Duration) (string, error) {
	if subject == "" {
		return "", goerrors.New("token subject is required", goerrors.CategoryBadInput)
	}

	lifetime := ts.defaultTTL
	if len(ttl) > 0 {
		lifetime = ttl[0]
	}

	now := time.Now()
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
	}

	ensureTokenID(&claims.RegisteredClaims)

	return ts.SignClaims(claims)
}

// SignClaims signs arbitrary JWT claims using the configured signing key.
func (ts *TokenServiceImpl) SignClaims(claims *JWTClaims) (string, error) {
	if claims == nil {
		return "", goerrors.New("claims must not be nil", goerrors.CategoryInternal)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Validate parses and verifies a token string. Every failure mode, bad
// signature, unexpected algorithm, malformed payload, missing subject,
// or expiry, collapses into ErrTokenInvalid; the detail is only logged.
func (ts *TokenServiceImpl) Validate(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	})

	if err != nil {
		if IsTokenExpiredError(err) {
			ts.logger.Debug("TokenService validate rejected expired token", "error", err)
		} else {
			ts.logger.Debug("TokenService validate rejected token", "error", err)
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		ts.logger.Error("TokenService validate could not decode or validate claims")
		return nil, ErrTokenInvalid
	}

	if claims.Subject() == "" {
		ts.logger.Debug("TokenService validate rejected token with empty subject")
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
