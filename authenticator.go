package auth

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// SignupResult carries the outcome of a successful registration.
type SignupResult struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

// SignupSuccessMessage is the confirmation returned to newly registered users.
const SignupSuccessMessage = "User created successfully"

type Auther struct {
	repo           RepositoryManager
	signingKey     []byte
	tokenService   TokenService
	tokenValidator TokenValidator
	storeTimeout   time.Duration
	logger         Logger
}

// NewAuthenticator returns a new Authenticator backed by the given store
func NewAuthenticator(repo RepositoryManager, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		opts.GetAudience(),
		defLogger{},
	)

	return &Auther{
		repo:         repo,
		signingKey:   []byte(opts.GetSigningKey()),
		tokenService: tokenService,
		storeTimeout: DefaultStoreTimeout,
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// WithStoreTimeout bounds every credential store call made by this Auther.
func (s *Auther) WithStoreTimeout(timeout time.Duration) *Auther {
	if timeout > 0 {
		s.storeTimeout = timeout
	}
	return s
}

// WithTokenValidator sets a custom token validator for externally issued tokens.
func (s *Auther) WithTokenValidator(validator TokenValidator) *Auther {
	s.tokenValidator = validator
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Signup validates the payload, hashes the password, and persists a new user.
// The advisory email lookup and the insert run in one transaction; a racing
// duplicate that slips past the lookup is still caught by the unique index.
func (s *Auther) Signup(ctx context.Context, payload SignupPayload) (*SignupResult, error) {
	if err := payload.Validate(); err != nil {
		s.logger.Error("Signup payload validation failed", "error", err)
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	record := &User{
		Name:  payload.Name,
		Email: NormalizeEmail(payload.Email),
	}

	hash, err := HashPassword(payload.Password)
	if err != nil {
		s.logger.Error("Signup password hash error", "error", err)
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}
	record.PasswordHash = hash

	err = s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := s.repo.Users().GetByEmailTx(ctx, tx, record.Email); err == nil {
			return ErrEmailAlreadyExists
		} else if !repository.IsRecordNotFound(err) {
			return err
		}

		_, err := s.repo.Users().RegisterTx(ctx, tx, record)
		return err
	})

	if err != nil {
		return nil, s.classifySignupError(err)
	}

	s.logger.Info("Signup created user", "user_id", record.ID.String(), "email", record.Email)

	return &SignupResult{
		UserID:  record.ID.String(),
		Message: SignupSuccessMessage,
	}, nil
}

func (s *Auther) classifySignupError(err error) error {
	switch {
	case errors.Is(err, ErrEmailAlreadyExists) || IsDuplicateKeyError(err):
		s.logger.Warn("Signup rejected duplicate email")
		return ErrEmailAlreadyExists
	case IsStoreUnavailableError(err):
		s.logger.Error("Signup store unavailable", "error", err)
		return ErrStoreUnavailable
	default:
		s.logger.Error("Signup store error", "error", err)
		return errors.Wrap(err, errors.CategoryInternal, "failed to create user")
	}
}

// Signin verifies the credentials and issues a signed bearer token. An
// unknown email and a wrong password both surface as ErrInvalidCredentials.
func (s *Auther) Signin(ctx context.Context, email, password string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	record, err := s.repo.Users().GetByEmail(ctx, email)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			s.logger.Warn("Signin unknown email")
			return "", ErrInvalidCredentials
		}
		if IsStoreUnavailableError(err) {
			s.logger.Error("Signin store unavailable", "error", err)
			return "", ErrStoreUnavailable
		}
		s.logger.Error("Signin store error", "error", err)
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to look up user")
	}

	if err := ComparePasswordAndHash(password, record.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.logger.Warn("Signin password mismatch", "user_id", record.ID.String())
			return "", ErrInvalidCredentials
		}
		s.logger.Error("Signin password compare error", "error", err)
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to verify password")
	}

	token, err := s.tokenService.Generate(IdentityFromUser(record))
	if err != nil {
		s.logger.Error("Signin token generation error", "error", err)
		return "", err
	}

	return token, nil
}

// ClaimsFromToken validates a raw bearer token and returns its claims. The
// profile endpoint reads straight from these claims without a store lookup.
func (s *Auther) ClaimsFromToken(raw string) (AuthClaims, error) {
	validator := s.tokenValidator
	if validator == nil {
		validator = s.tokenService
	}

	claims, err := validator.Validate(raw)
	if err != nil {
		s.logger.Error("ClaimsFromToken validation failed", "error", err)
		return nil, err
	}

	return claims, nil
}

var _ Authenticator = (*Auther)(nil)
