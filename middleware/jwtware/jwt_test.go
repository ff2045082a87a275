package jwtware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-auth-api/middleware/jwtware"
	"github.com/stretchr/testify/assert"
)

type stubClaims struct {
	subject string
	email   string
	name    string
}

func (s stubClaims) Subject() string { return s.subject }
func (s stubClaims) UserID() string  { return s.subject }
func (s stubClaims) Email() string   { return s.email }
func (s stubClaims) Name() string    { return s.name }

type stubValidator struct {
	claims jwtware.AuthClaims
	err    error
	seen   string
}

func (s *stubValidator) Validate(tokenString string) (jwtware.AuthClaims, error) {
	s.seen = tokenString
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func newApp(cfg jwtware.Config) *fiber.App {
	app := fiber.New()
	app.Get("/protected", jwtware.New(cfg), func(c *fiber.Ctx) error {
		claims, _ := c.Locals("user").(jwtware.AuthClaims)
		if claims == nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"sub": claims.Subject()})
	})
	return app
}

func TestJWTMiddleware(t *testing.T) {
	t.Run("passes validated claims to the handler", func(t *testing.T) {
		validator := &stubValidator{claims: stubClaims{subject: "user-123"}}
		app := newApp(jwtware.Config{TokenValidator: validator})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer the-token")

		res, err := app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, res.StatusCode)
		assert.Equal(t, "the-token", validator.seen)
	})

	t.Run("rejects requests without a token", func(t *testing.T) {
		validator := &stubValidator{claims: stubClaims{subject: "user-123"}}
		app := newApp(jwtware.Config{TokenValidator: validator})

		res, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
		assert.Empty(t, validator.seen)
	})

	t.Run("rejects requests with the wrong scheme", func(t *testing.T) {
		validator := &stubValidator{claims: stubClaims{subject: "user-123"}}
		app := newApp(jwtware.Config{TokenValidator: validator})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

		res, err := app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	})

	t.Run("rejects tokens the validator refuses", func(t *testing.T) {
		validator := &stubValidator{err: errors.New("token is expired")}
		app := newApp(jwtware.Config{TokenValidator: validator})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer stale-token")

		res, err := app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	})

	t.Run("invokes custom error handler", func(t *testing.T) {
		validator := &stubValidator{err: errors.New("nope")}

		var handled error
		app := newApp(jwtware.Config{
			TokenValidator: validator,
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				handled = err
				return c.SendStatus(fiber.StatusTeapot)
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer whatever")

		res, err := app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusTeapot, res.StatusCode)
		assert.Error(t, handled)
	})

	t.Run("filter skips the middleware", func(t *testing.T) {
		validator := &stubValidator{claims: stubClaims{subject: "user-123"}}

		app := fiber.New()
		app.Get("/maybe", jwtware.New(jwtware.Config{
			TokenValidator: validator,
			Filter:         func(c *fiber.Ctx) bool { return true },
		}), func(c *fiber.Ctx) error {
			return c.SendString("open")
		})

		res, err := app.Test(httptest.NewRequest(http.MethodGet, "/maybe", nil))

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, res.StatusCode)
		assert.Empty(t, validator.seen)
	})

	t.Run("extracts tokens from alternate lookups", func(t *testing.T) {
		validator := &stubValidator{claims: stubClaims{subject: "user-123"}}
		app := newApp(jwtware.Config{
			TokenValidator: validator,
			TokenLookup:    "query:auth_token,cookie:jwt",
		})

		req := httptest.NewRequest(http.MethodGet, "/protected?auth_token=from-query", nil)

		res, err := app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, res.StatusCode)
		assert.Equal(t, "from-query", validator.seen)
	})
}

func TestGetExtractors(t *testing.T) {
	extractors := jwtware.GetExtractors("header:Authorization,query:auth_token,cookie:jwt")
	assert.Len(t, extractors, 3)

	extractors = jwtware.GetExtractors("header:Authorization")
	assert.Len(t, extractors, 1)
}
