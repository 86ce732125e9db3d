// Package jwtware guards Fiber routes with bearer-token authentication.
// It extracts the token from the Authorization header, resolves it into
// a principal through an injected resolver, and stores the principal in
// the request locals for handlers to pick up. The package deliberately
// knows nothing about how tokens are decoded or principals are loaded.
package jwtware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ErrJWTMissingOrMalformed is returned when the Authorization header is
// absent or does not carry the expected scheme.
var ErrJWTMissingOrMalformed = errors.New("missing or malformed JWT")

// UserResolver turns a raw bearer token into a request principal. Any
// error rejects the request; the middleware never inspects the reason.
type UserResolver func(ctx context.Context, token string) (any, error)

type Config struct {
	// Filter defines a function to skip the middleware
	Filter func(*fiber.Ctx) bool
	// ResolveUser is required
	ResolveUser UserResolver
	// ErrorHandler runs on extraction or resolution failure
	ErrorHandler fiber.ErrorHandler
	// ContextKey stores the resolved principal in c.Locals. Default "user".
	ContextKey string
	// AuthScheme is the Authorization header scheme. Default "Bearer".
	AuthScheme string
}

// New returns the guard middleware
func New(config ...Config) fiber.Handler {
	cfg := getDefaultConfig(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw, err := ExtractRawToken(c, cfg.AuthScheme)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		principal, err := cfg.ResolveUser(c.UserContext(), raw)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		c.Locals(cfg.ContextKey, principal)

		return c.Next()
	}
}

// ExtractRawToken pulls the bearer token out of the Authorization header
func ExtractRawToken(c *fiber.Ctx, authScheme string) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", ErrJWTMissingOrMalformed
	}

	if authScheme == "" {
		return header, nil
	}

	prefix := authScheme + " "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", ErrJWTMissingOrMalformed
	}

	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", ErrJWTMissingOrMalformed
	}

	return token, nil
}

func getDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.ResolveUser == nil {
		panic("FAVORITES: JWT middleware configuration: ResolveUser is required.")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	if cfg.ErrorHandler == nil {
		scheme := cfg.AuthScheme
		cfg.ErrorHandler = func(c *fiber.Ctx, err error) error {
			c.Set(fiber.HeaderWWWAuthenticate, scheme)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "could not validate credentials",
			})
		}
	}

	return cfg
}
