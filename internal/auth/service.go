// Package auth issues and checks the bearer tokens that guard the API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"talentflow/internal/api/validation"
	"talentflow/internal/logging"
	"talentflow/internal/store"
	"talentflow/pkg/models"
)

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidToken       = errors.New("invalid token")
)

const DefaultTokenTTL = 7 * 24 * time.Hour

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// Claims is the token payload.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Session is a verified token and, when the account still exists, its owner.
type Session struct {
	UserID   string
	TokenID  string
	Expires  time.Time
	Identity *models.Identity
}

type Options struct {
	Secret      string
	TokenTTL    time.Duration
	BcryptCost  int
	Revocations Revocations
	Validator   *validation.Validator
	Logger      logging.Logger
	Now         func() time.Time
}

type Service struct {
	users     *store.Store[models.User, *models.User]
	secret    []byte
	ttl       time.Duration
	cost      int
	revoked   Revocations
	validator *validation.Validator
	logger    logging.Logger
	now       func() time.Time
}

func NewService(users *store.Store[models.User, *models.User], opts Options) *Service {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = DefaultTokenTTL
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.Revocations == nil {
		opts.Revocations = NewMemoryRevocations()
	}
	if opts.Validator == nil {
		opts.Validator = validation.New()
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetGlobalLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		users:     users,
		secret:    []byte(opts.Secret),
		ttl:       opts.TokenTTL,
		cost:      opts.BcryptCost,
		revoked:   opts.Revocations,
		validator: opts.Validator,
		logger:    opts.Logger.WithField("component", "auth"),
		now:       opts.Now,
	}
}

// HashPassword returns the bcrypt hash of password.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Login checks the credentials and issues a token. Unknown emails and wrong
// passwords fail the same way.
func (s *Service) Login(req models.LoginRequest) (models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return models.AuthResponse{}, ErrMissingCredentials
	}

	user, ok := s.users.Find(func(u models.User) bool { return u.Email == req.Email })
	if !ok {
		s.logger.Info("Login rejected", map[string]interface{}{"reason": "unknown email"})
		return models.AuthResponse{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Info("Login rejected", map[string]interface{}{"reason": "password mismatch", "user_id": user.ID})
		return models.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return models.AuthResponse{}, err
	}

	s.logger.Info("User logged in", map[string]interface{}{"user_id": user.ID})
	return models.AuthResponse{Token: token, User: user.Public()}, nil
}

// Signup creates an account and issues its first token. Role defaults to
// employee.
func (s *Service) Signup(req models.SignupRequest, problems ...validation.Problem) (models.AuthResponse, error) {
	if req.Role == "" {
		req.Role = models.RoleEmployee
	}
	if len(req.Password) > MaxPasswordBytes {
		problems = append(problems, validation.Problem{Field: "password", Message: "Password must be at most 72 bytes"})
	}
	if err := s.validator.Check(&req, problems...); err != nil {
		return models.AuthResponse{}, err
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return models.AuthResponse{}, err
	}

	user, err := s.users.Create(models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Role:         req.Role,
		Avatar:       req.Avatar,
		Department:   req.Department,
	}, func(u *models.User, existing []models.User) error {
		for _, other := range existing {
			if other.Email == u.Email {
				return ErrEmailTaken
			}
		}
		return nil
	})
	if err != nil {
		return models.AuthResponse{}, err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return models.AuthResponse{}, err
	}

	s.logger.Info("User signed up", map[string]interface{}{"user_id": user.ID, "role": string(user.Role)})
	return models.AuthResponse{Token: token, User: user.Public()}, nil
}

// IssueToken signs an HS256 token for user.
func (s *Service) IssueToken(user models.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature, algorithm, expiry and revocation state of
// token. Every failure is reported as ErrInvalidToken.
func (s *Service) Parse(ctx context.Context, token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	if claims.ID != "" {
		revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("Revocation lookup failed", map[string]interface{}{"error": err.Error()})
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		if revoked {
			return nil, ErrInvalidToken
		}
	}
	return claims, nil
}

// Authenticate resolves a bearer token to a session.
func (s *Service) Authenticate(ctx context.Context, token string) (Session, error) {
	claims, err := s.Parse(ctx, token)
	if err != nil {
		return Session{}, err
	}

	session := Session{UserID: claims.UserID, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		session.Expires = claims.ExpiresAt.Time
	}
	if user, err := s.users.Get(claims.UserID); err == nil {
		id := user.Identity()
		session.Identity = &id
	}
	return session, nil
}

// Logout revokes token until it expires. Tokens that are already invalid
// need no revocation.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.Parse(ctx, token)
	if err != nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return err
	}
	s.logger.Info("User logged out", map[string]interface{}{"user_id": claims.UserID})
	return nil
}

// PurgeRevocations drops revocation entries for expired tokens.
func (s *Service) PurgeRevocations(ctx context.Context) (int, error) {
	return s.revoked.Purge(ctx, s.now())
}
