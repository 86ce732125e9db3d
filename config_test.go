package favorites_test

import (
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	favorites "github.com/goliatone/go-favorites"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("FAVORITES_SIGNING_KEY", "test-signing-key")

	cfg, err := favorites.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "file:favorites.db?cache=shared&_fk=1", cfg.DatabaseDSN)
	assert.Equal(t, "test-signing-key", cfg.GetSigningKey())
	assert.Equal(t, 30*time.Minute, cfg.GetAccessTokenTTL())
	assert.Equal(t, "user", cfg.GetContextKey())
	assert.Equal(t, "Bearer", cfg.GetAuthScheme())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("FAVORITES_SIGNING_KEY", "test-signing-key")
	t.Setenv("FAVORITES_LISTEN_ADDR", ":9090")
	t.Setenv("FAVORITES_DATABASE_DSN", "file:other.db")
	t.Setenv("FAVORITES_ACCESS_TOKEN_TTL", "15m")

	cfg, err := favorites.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "file:other.db", cfg.DatabaseDSN)
	assert.Equal(t, 15*time.Minute, cfg.GetAccessTokenTTL())
}

func TestLoadConfigRequiresSigningKey(t *testing.T) {
	t.Setenv("FAVORITES_SIGNING_KEY", "")

	_, err := favorites.LoadConfig()
	require.Error(t, err)

	var richErr *goerrors.Error
	require.True(t, goerrors.As(err, &richErr))
	assert.Equal(t, "MISSING_SIGNING_KEY", richErr.TextCode)
}

func TestConfigValidate(t *testing.T) {
	cfg := &favorites.AppConfig{SigningKey: "   "}
	assert.Error(t, cfg.Validate())

	cfg.SigningKey = "test-signing-key"
	assert.NoError(t, cfg.Validate())
}
