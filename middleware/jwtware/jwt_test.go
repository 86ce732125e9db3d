package jwtware_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-favorites/middleware/jwtware"
)

type principal struct {
	Email string
}

func setupApp(resolve jwtware.UserResolver) *fiber.App {
	app := fiber.New()

	app.Get("/protected", jwtware.New(jwtware.Config{
		ResolveUser: resolve,
	}), func(c *fiber.Ctx) error {
		user := c.Locals("user").(*principal)
		return c.JSON(fiber.Map{"email": user.Email})
	})

	return app
}

func TestMiddlewareResolvesPrincipal(t *testing.T) {
	var seen string
	app := setupApp(func(ctx context.Context, token string) (any, error) {
		seen = token
		return &principal{Email: "alice@example.com"}, nil
	})

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer raw-token")

	res, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, "raw-token", seen)
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	resolved := false
	app := setupApp(func(ctx context.Context, token string) (any, error) {
		resolved = true
		return nil, nil
	})

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)

	res, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "Bearer", res.Header.Get(fiber.HeaderWWWAuthenticate))
	assert.False(t, resolved)
}

func TestMiddlewareRejectsResolverError(t *testing.T) {
	app := setupApp(func(ctx context.Context, token string) (any, error) {
		return nil, errors.New("bad token")
	})

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer raw-token")

	res, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestMiddlewareFilterSkipsGuard(t *testing.T) {
	app := fiber.New()
	app.Get("/open", jwtware.New(jwtware.Config{
		Filter:      func(c *fiber.Ctx) bool { return true },
		ResolveUser: func(ctx context.Context, token string) (any, error) { return nil, errors.New("nope") },
	}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	res, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/open", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestExtractRawToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid bearer", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"case insensitive scheme", "bearer abc.def.ghi", "abc.def.ghi", false},
		{"missing header", "", "", true},
		{"wrong scheme", "Basic abc", "", true},
		{"scheme only", "Bearer ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			var gotErr error

			app := fiber.New()
			app.Get("/x", func(c *fiber.Ctx) error {
				got, gotErr = jwtware.ExtractRawToken(c, "Bearer")
				return nil
			})

			req := httptest.NewRequest(fiber.MethodGet, "/x", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}

			_, err := app.Test(req)
			require.NoError(t, err)

			if tt.wantErr {
				assert.ErrorIs(t, gotErr, jwtware.ErrJWTMissingOrMalformed)
				return
			}

			require.NoError(t, gotErr)
			assert.Equal(t, tt.want, got)
		})
	}
}
