package favorites_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	favorites "github.com/goliatone/go-favorites"
)

func TestIsTokenExpiredError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"expired from the jwt library", fmt.Errorf("token has invalid claims: %w", jwt.ErrTokenExpired), true},
		{"unrelated error", errors.New("signature is invalid"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, favorites.IsTokenExpiredError(tt.err))
		})
	}
}

func TestIsDuplicateKeyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"sqlite unique violation", errors.New("UNIQUE constraint failed: users.email"), true},
		{"postgres unique violation", errors.New(`duplicate key value violates unique constraint "uq_users_email"`), true},
		{"unrelated error", errors.New("database is locked"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, favorites.IsDuplicateKeyError(tt.err))
		})
	}
}
