package favorites

import (
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces every environment variable the service reads,
// e.g. FAVORITES_SIGNING_KEY, FAVORITES_DATABASE_DSN.
const EnvPrefix = "FAVORITES_"

// AppConfig is the process-wide configuration. The signing key has no
// default: a missing key is a startup-fatal misconfiguration, never a
// per-request error.
type AppConfig struct {
	ListenAddr     string
	DatabaseDSN    string
	SigningKey     string
	AccessTokenTTL time.Duration
	ContextKey     string
	AuthScheme     string
}

var _ Config = (*AppConfig)(nil)

// LoadConfig builds the configuration from defaults overlaid with
// FAVORITES_* environment variables. It fails closed when the signing
// key is absent or empty.
func LoadConfig() (*AppConfig, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		"listen.addr":      ":8080",
		"database.dsn":     "file:favorites.db?cache=shared&_fk=1",
		"access.token.ttl": "30m",
		"context.key":      "user",
		"auth.scheme":      "Bearer",
	}

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to load configuration defaults")
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to load configuration from environment")
	}

	cfg := &AppConfig{
		ListenAddr:     k.String("listen.addr"),
		DatabaseDSN:    k.String("database.dsn"),
		SigningKey:     k.String("signing.key"),
		AccessTokenTTL: k.Duration("access.token.ttl"),
		ContextKey:     k.String("context.key"),
		AuthScheme:     k.String("auth.scheme"),
	}

	if cfg.AccessTokenTTL <= 0 {
		cfg.AccessTokenTTL = DefaultAccessTokenTTL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate enforces the startup contract
func (c *AppConfig) Validate() error {
	if strings.TrimSpace(c.SigningKey) == "" {
		return goerrors.New("signing key is required: set "+EnvPrefix+"SIGNING_KEY", goerrors.CategoryOperation).
			WithTextCode("MISSING_SIGNING_KEY")
	}
	return nil
}

func (c *AppConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c *AppConfig) GetAccessTokenTTL() time.Duration {
	return c.AccessTokenTTL
}

func (c *AppConfig) GetContextKey() string {
	if c.ContextKey == "" {
		return "user"
	}
	return c.ContextKey
}

func (c *AppConfig) GetAuthScheme() string {
	if c.AuthScheme == "" {
		return "Bearer"
	}
	return c.AuthScheme
}
