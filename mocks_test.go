package favorites_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	favorites "github.com/goliatone/go-favorites"
)

// MockUserStore implements favorites.UserStore for testing
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*favorites.User, error) {
	args := m.Called(ctx, email)

	var user *favorites.User
	if v := args.Get(0); v != nil {
		user = v.(*favorites.User)
	}

	return user, args.Error(1)
}

// testLogger swallows log output during tests
type testLogger struct{}

func (testLogger) Debug(format string, args ...any) {}
func (testLogger) Info(format string, args ...any)  {}
func (testLogger) Warn(format string, args ...any)  {}
func (testLogger) Error(format string, args ...any) {}

// testConfig implements favorites.Config with fixed values
type testConfig struct {
	signingKey string
	accessTTL  time.Duration
}

func (c testConfig) GetSigningKey() string {
	return c.signingKey
}

func (c testConfig) GetAccessTokenTTL() time.Duration {
	if c.accessTTL == 0 {
		return 30 * time.Minute
	}
	return c.accessTTL
}

func (c testConfig) GetContextKey() string { return "user" }
func (c testConfig) GetAuthScheme() string { return "Bearer" }
