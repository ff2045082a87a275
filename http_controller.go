package auth

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-auth-api/middleware/jwtware"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// ErrUnableToFindSession is returned when the claims context key is empty.
var ErrUnableToFindSession = errors.New("unable to find session in context", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// ErrUnableToDecodeSession is returned when the context value is not claims.
var ErrUnableToDecodeSession = errors.New("unable to decode session claims", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// GetSessionClaims retrieves the validated claims stored by the JWT middleware.
func GetSessionClaims(c *fiber.Ctx, key string) (AuthClaims, error) {
	value := c.Locals(key)
	if value == nil {
		return nil, ErrUnableToFindSession
	}

	claims, ok := value.(AuthClaims)
	if claims == nil || !ok {
		return nil, ErrUnableToDecodeSession
	}

	return claims, nil
}

// RegisterAuthRoutes mounts the auth endpoints. The profile route sits behind
// the bearer-token middleware; everything else is public.
func RegisterAuthRoutes(app fiber.Router, controller *AuthController) {
	app.Post(controller.Routes.Signup, controller.SignupCreate)
	app.Post(controller.Routes.Signin, controller.SigninCreate)
	app.Get(controller.Routes.Health, controller.HealthCheck)
	app.Get(controller.Routes.Profile, controller.ProtectedRoute(), controller.ProfileShow)
}

type AuthControllerRoutes struct {
	Signup  string
	Signin  string
	Profile string
	Health  string
}

type AuthController struct {
	Debug       bool
	Logger      Logger
	Auther      Authenticator
	ContextKey  string
	TokenLookup string
	AuthScheme  string
	Routes      *AuthControllerRoutes
}

type AuthControllerOption func(*AuthController) *AuthController

// WithControllerLogger sets the controller logger.
func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = logger
		return c
	}
}

// WithControllerDebug toggles request payload dumps.
func WithControllerDebug(debug bool) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Debug = debug
		return c
	}
}

func NewAuthController(auther Authenticator, opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:     defLogger{},
		Auther:     auther,
		ContextKey: "user",
		Routes: &AuthControllerRoutes{
			Signup:  "/auth/signup",
			Signin:  "/auth/signin",
			Profile: "/auth/profile",
			Health:  "/auth/health",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	return c
}

// ProtectedRoute builds the bearer-token middleware for routes that require
// a validated session.
func (a *AuthController) ProtectedRoute() fiber.Handler {
	return jwtware.New(jwtware.Config{
		ContextKey:     a.ContextKey,
		TokenLookup:    a.TokenLookup,
		AuthScheme:     a.AuthScheme,
		TokenValidator: tokenValidatorAdapter{a.Auther},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			a.Logger.Warn("Protected route rejected token", "error", err)
			return a.renderError(c, authTokenError(err))
		},
	})
}

func (a *AuthController) SignupCreate(c *fiber.Ctx) error {
	payload := new(SignupPayload)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("Signup parse payload", "error", err)
		return a.renderError(c, errors.Wrap(err, errors.CategoryBadInput, "Invalid signup request payload").
			WithCode(errors.CodeBadRequest))
	}

	if a.Debug {
		fmt.Println("======= AUTH SIGNUP ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("==========================")
	}

	result, err := a.Auther.Signup(c.Context(), *payload)
	if err != nil {
		return a.renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (a *AuthController) SigninCreate(c *fiber.Ctx) error {
	payload := new(SigninPayload)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("Signin parse payload", "error", err)
		return a.renderError(c, errors.Wrap(err, errors.CategoryBadInput, "Invalid signin request payload").
			WithCode(errors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("Signin validate payload", "error", err)
		return a.renderError(c, err)
	}

	token, err := a.Auther.Signin(c.Context(), payload.Email, payload.Password)
	if err != nil {
		return a.renderError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token": token,
	})
}

// ProfileShow echoes the claims of the validated bearer token. It reads the
// token only; profile data is as fresh as the token issuance.
func (a *AuthController) ProfileShow(c *fiber.Ctx) error {
	claims, err := GetSessionClaims(c, a.ContextKey)
	if err != nil {
		a.Logger.Error("Profile session error", "error", err)
		return a.renderError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"userId": claims.UserID(),
		"email":  claims.Email(),
		"name":   claims.Name(),
	})
}

func (a *AuthController) HealthCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).SendString("OK")
}

func (a *AuthController) renderError(c *fiber.Ctx, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	status := statusForError(richErr)
	message := richErr.Message

	if status == fiber.StatusInternalServerError && richErr.TextCode != TextCodeStoreUnavailable {
		message = "Internal server error"
	}

	a.Logger.Warn(
		"Request error",
		"status", status,
		"category", richErr.Category,
		"text_code", richErr.TextCode,
		"error", richErr.Message,
	)

	return c.Status(status).JSON(fiber.Map{
		"message": message,
	})
}

func statusForError(richErr *errors.Error) int {
	switch richErr.Category {
	case errors.CategoryValidation, errors.CategoryBadInput, errors.CategoryConflict:
		return fiber.StatusBadRequest
	case errors.CategoryAuth, errors.CategoryAuthz:
		return fiber.StatusUnauthorized
	}

	if richErr.Code >= fiber.StatusBadRequest {
		return richErr.Code
	}

	return fiber.StatusInternalServerError
}

// authTokenError maps middleware failures to the auth error taxonomy.
func authTokenError(err error) error {
	switch {
	case IsTokenExpiredError(err):
		return ErrTokenExpired
	case IsMalformedError(err):
		return ErrTokenMalformed
	default:
		return errors.Wrap(err, errors.CategoryAuth, "Invalid authentication token").
			WithCode(errors.CodeUnauthorized)
	}
}

type tokenValidatorAdapter struct {
	auther Authenticator
}

func (t tokenValidatorAdapter) Validate(raw string) (jwtware.AuthClaims, error) {
	claims, err := t.auther.ClaimsFromToken(raw)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
