package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/pkg/apperrors"
)

func TestDeactivateDisablesAccountAndRevokesTokens(t *testing.T) {
	users := newStubUsers(&models.User{ID: 7, Email: "alice@example.com", IsActive: true})
	tokens := newStubTokens()
	tokens.tokens["live-refresh-token"] = 7
	svc := NewUserService(users, tokens, zerolog.Nop())

	require.NoError(t, svc.Deactivate(context.Background(), 7))

	user, err := svc.GetByID(context.Background(), 7)
	require.NoError(t, err, "the account row must survive deactivation")
	assert.False(t, user.IsActive)
	assert.Contains(t, tokens.revokedAll, int64(7))
	assert.Empty(t, tokens.tokens)
}

func TestDeactivateUnknownUser(t *testing.T) {
	svc := NewUserService(newStubUsers(), newStubTokens(), zerolog.Nop())

	err := svc.Deactivate(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
