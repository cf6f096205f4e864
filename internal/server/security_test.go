package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, secret string, mutate func(claims jwt.MapClaims)) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": "1",
		"iss": "nutrihub-api",
		"aud": "nutrihub-client",
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	if mutate != nil {
		mutate(claims)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthRequired(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	mustCreateUser(t, s.db, "authuser", false)
	secret := s.config.JWTSecret

	app := fiber.New()
	app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("userID")})
	})

	request := func(t *testing.T, authorization string) *http.Response {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		return resp
	}

	t.Run("Missing header", func(t *testing.T) {
		resp := request(t, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Malformed header", func(t *testing.T) {
		resp := request(t, "NotBearer things")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Garbage token", func(t *testing.T) {
		resp := request(t, "Bearer not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		token := signTestToken(t, "some-other-secret-value-0123456789", nil)
		resp := request(t, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Wrong issuer", func(t *testing.T) {
		token := signTestToken(t, secret, func(claims jwt.MapClaims) {
			claims["iss"] = "someone-else"
		})
		resp := request(t, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Wrong audience", func(t *testing.T) {
		token := signTestToken(t, secret, func(claims jwt.MapClaims) {
			claims["aud"] = "other-client"
		})
		resp := request(t, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Expired token", func(t *testing.T) {
		token := signTestToken(t, secret, func(claims jwt.MapClaims) {
			claims["exp"] = time.Now().Add(-time.Hour).Unix()
		})
		resp := request(t, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Valid token", func(t *testing.T) {
		token := signTestToken(t, secret, nil)
		resp := request(t, "Bearer "+token)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

// Every social route must reject anonymous requests before reaching a handler.
func TestSocialRoutesRequireAuth(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	app := fiber.New()
	s.SetupRoutes(app)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/social/posts"},
		{http.MethodPost, "/api/social/posts"},
		{http.MethodPost, "/api/social/posts/1/like"},
		{http.MethodGet, "/api/social/posts/1/comments"},
		{http.MethodDelete, "/api/social/comments/1"},
		{http.MethodPost, "/api/social/users/1/follow"},
		{http.MethodGet, "/api/social/users/1/followers"},
		{http.MethodGet, "/api/social/challenges"},
		{http.MethodPost, "/api/social/challenges/1/join"},
		{http.MethodPut, "/api/social/challenges/1/progress"},
		{http.MethodPost, "/api/social/recipes/1/favorite"},
		{http.MethodGet, "/api/social/users/1/is-following"},
		{http.MethodGet, "/api/social/challenges/active"},
		{http.MethodGet, "/api/social/recipes"},
	}

	for _, r := range routes {
		resp, err := app.Test(httptest.NewRequest(r.method, r.path, nil))
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", r.method, r.path)
	}
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	app := fiber.New()
	s.SetupRoutes(app)

	t.Run("Liveness", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Readiness without redis", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
