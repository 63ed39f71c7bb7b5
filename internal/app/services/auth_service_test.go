package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/app/models/dto"
	"github.com/edusphere/edusphere/internal/pkg/apperrors"
	"github.com/edusphere/edusphere/internal/pkg/auth"
)

func newAuthServiceForTest(users *stubUsers, tokens *stubTokens) *AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key-for-auth-service",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "edusphere.test",
	})
	return NewAuthService(users, tokens, jwtService, zerolog.Nop())
}

func testUser(t *testing.T, id int64, email, password string, active bool) *models.User {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &models.User{
		ID:       id,
		Email:    email,
		Password: hashed,
		Name:     "Alice Student",
		Role:     models.RoleStudent,
		IsActive: active,
	}
}

func TestLoginIssuesTokenPair(t *testing.T) {
	tokens := newStubTokens()
	svc := newAuthServiceForTest(
		newStubUsers(testUser(t, 7, "alice@example.com", "password1", true)),
		tokens,
	)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "password1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(7), tokens.tokens[resp.RefreshToken])
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newAuthServiceForTest(
		newStubUsers(testUser(t, 7, "alice@example.com", "password1", true)),
		newStubTokens(),
	)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	svc := newAuthServiceForTest(
		newStubUsers(testUser(t, 7, "alice@example.com", "password1", false)),
		newStubTokens(),
	)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "password1",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestRefreshTokenRejectsDeactivatedAccount(t *testing.T) {
	tokens := newStubTokens()
	tokens.tokens["refresh-token"] = 7
	svc := newAuthServiceForTest(
		newStubUsers(testUser(t, 7, "alice@example.com", "password1", false)),
		tokens,
	)

	_, err := svc.RefreshToken(context.Background(), "refresh-token")
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}
