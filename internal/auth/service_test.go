package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"talentflow/internal/logging"
	"talentflow/internal/logging/adapters"
	"talentflow/internal/store"
	"talentflow/pkg/models"
	"talentflow/pkg/utils"
)

const testSecret = "test-secret"

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestService(t *testing.T) (*Service, *clock, *MemoryRevocations) {
	t.Helper()
	logger := logging.NewMultiLogger()
	_ = logger.AddAdapter(adapters.NewWriterAdapter("discard", adapters.StdoutConfig{}, io.Discard))

	clk := &clock{t: time.Date(2024, 1, 24, 9, 0, 0, 0, time.UTC)}
	revs := NewMemoryRevocations()
	users := store.New[models.User]("user")
	svc := NewService(users, Options{
		Secret:      testSecret,
		BcryptCost:  bcrypt.MinCost,
		Revocations: revs,
		Logger:      logger,
		Now:         clk.now,
	})

	hash, err := svc.HashPassword("demo123")
	require.NoError(t, err)
	require.NoError(t, users.Seed(models.User{
		ID: "1", Email: "sarah.johnson@company.com", PasswordHash: hash, Name: "Sarah Johnson", Role: models.RoleHR,
	}))
	return svc, clk, revs
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestService(t)

	tests := []struct {
		name    string
		req     models.LoginRequest
		wantErr error
	}{
		{"valid", models.LoginRequest{Email: "sarah.johnson@company.com", Password: "demo123"}, nil},
		{"wrong password", models.LoginRequest{Email: "sarah.johnson@company.com", Password: "nope"}, ErrInvalidCredentials},
		{"unknown email", models.LoginRequest{Email: "who@company.com", Password: "demo123"}, ErrInvalidCredentials},
		{"missing password", models.LoginRequest{Email: "sarah.johnson@company.com"}, ErrMissingCredentials},
		{"missing email", models.LoginRequest{Password: "demo123"}, ErrMissingCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, resp.Token)
			assert.Equal(t, "1", resp.User.ID)
			assert.Equal(t, models.RoleHR, resp.User.Role)
		})
	}
}

func TestLoginResponseHasNoPassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	resp, err := svc.Login(models.LoginRequest{Email: "sarah.johnson@company.com", Password: "demo123"})
	require.NoError(t, err)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	var body map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.NotContains(t, body["user"], "password")
	assert.NotContains(t, body["user"], "passwordHash")
	assert.NotContains(t, string(raw), "$2a$")
}

func TestSignup(t *testing.T) {
	svc, _, _ := newTestService(t)

	resp, err := svc.Signup(models.SignupRequest{Email: "new@company.com", Password: "secret1", Name: "New Person"})
	require.NoError(t, err)
	assert.Equal(t, "2", resp.User.ID)
	assert.Equal(t, models.RoleEmployee, resp.User.Role)

	_, err = svc.Signup(models.SignupRequest{Email: "new@company.com", Password: "secret1", Name: "Again"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Signup(models.SignupRequest{Email: "bad", Password: "123", Name: " ", Role: "admin"})
	ce, ok := utils.AsCustomError(err)
	require.True(t, ok)
	assert.Equal(t, []string{
		"Valid email is required",
		"Password must be at least 6 characters",
		"Name is required",
		"Valid role is required",
	}, ce.Errors)

	// the new account can log in
	_, err = svc.Login(models.LoginRequest{Email: "new@company.com", Password: "secret1"})
	assert.NoError(t, err)
}

func TestSignupPasswordLength(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErrs []string
	}{
		{"at the bcrypt limit", "limit@company.com", strings.Repeat("p", MaxPasswordBytes), nil},
		{"one byte over", "over@company.com", strings.Repeat("p", MaxPasswordBytes+1), []string{"Password must be at most 72 bytes"}},
		{"multibyte over", "accent@company.com", strings.Repeat("é", 40), []string{"Password must be at most 72 bytes"}},
		{"long with other problems", "bad", strings.Repeat("p", 80), []string{"Valid email is required", "Password must be at most 72 bytes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(t)
			_, err := svc.Signup(models.SignupRequest{Email: tt.email, Password: tt.password, Name: "Long Password"})
			if tt.wantErrs == nil {
				assert.NoError(t, err)
				return
			}
			ce, ok := utils.AsCustomError(err)
			require.True(t, ok, "want a validation error, got %v", err)
			assert.Equal(t, http.StatusBadRequest, ce.Code)
			assert.Equal(t, tt.wantErrs, ce.Errors)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	svc, clk, _ := newTestService(t)
	ctx := context.Background()
	resp, err := svc.Login(models.LoginRequest{Email: "sarah.johnson@company.com", Password: "demo123"})
	require.NoError(t, err)

	session, err := svc.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "1", session.UserID)
	require.NotNil(t, session.Identity)
	assert.Equal(t, "Sarah Johnson", session.Identity.Name)
	assert.Equal(t, clk.t.Add(DefaultTokenTTL), session.Expires)

	clk.t = clk.t.Add(DefaultTokenTTL + time.Second)
	_, err = svc.Authenticate(ctx, resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken, "expired")
}

func TestParseRejectsForgedTokens(t *testing.T) {
	svc, clk, _ := newTestService(t)
	ctx := context.Background()

	claims := Claims{
		UserID: "1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(clk.t.Add(time.Hour)),
		},
	}

	otherKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other"))
	require.NoError(t, err)
	wrongAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "1"}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"other key": otherKey,
		"wrong alg": wrongAlg,
		"none alg":  unsigned,
		"no expiry": noExpiry,
		"garbage":   "not.a.token",
		"empty":     "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Parse(ctx, token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestSessionForDeletedUser(t *testing.T) {
	svc, _, _ := newTestService(t)
	token, err := svc.IssueToken(models.User{ID: "99"})
	require.NoError(t, err)

	session, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "99", session.UserID)
	assert.Nil(t, session.Identity)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, clk, revs := newTestService(t)
	ctx := context.Background()
	resp, err := svc.Login(models.LoginRequest{Email: "sarah.johnson@company.com", Password: "demo123"})
	require.NoError(t, err)
	other, err := svc.Login(models.LoginRequest{Email: "sarah.johnson@company.com", Password: "demo123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.Token))
	_, err = svc.Authenticate(ctx, resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Authenticate(ctx, other.Token)
	assert.NoError(t, err, "other sessions stay valid")

	// logging out with garbage is not an error
	assert.NoError(t, svc.Logout(ctx, "garbage"))

	n, err := svc.PurgeRevocations(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 1, revs.Len())

	clk.t = clk.t.Add(DefaultTokenTTL)
	n, err = svc.PurgeRevocations(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, revs.Len())
}
