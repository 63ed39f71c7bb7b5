package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/pkg/apperrors"
	"github.com/edusphere/edusphere/internal/pkg/auth"
)

// UserService handles user account operations
type UserService struct {
	userRepo  userStore
	tokenRepo tokenStore
	logger    zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo userStore,
	tokenRepo tokenStore,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		logger:    logger,
	}
}

// GetByID retrieves a user account
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateName changes the display name on an account
func (s *UserService) UpdateName(ctx context.Context, userID int64, name string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = name
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ChangePassword replaces an account password after checking the current one.
// All refresh tokens are revoked so stolen sessions cannot outlive the change.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, currentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashed); err != nil {
		return err
	}

	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to revoke tokens after password change")
	}

	return nil
}

// Deactivate disables an account and revokes its refresh tokens.
// The account row is kept, only sign-in stops working.
func (s *UserService) Deactivate(ctx context.Context, id int64) error {
	if err := s.userRepo.Deactivate(ctx, id); err != nil {
		return err
	}
	if err := s.tokenRepo.RevokeAllUserTokens(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("userID", id).Msg("Failed to revoke tokens after deactivation")
	}
	s.logger.Info().Int64("userID", id).Msg("User account deactivated")
	return nil
}
