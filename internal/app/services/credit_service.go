package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/pkg/apperrors"
)

// CreditService handles student credit awards and balances
type CreditService struct {
	creditRepo       creditStore
	studentRepo      studentStore
	notificationRepo notificationStore
	logger           zerolog.Logger
}

// NewCreditService creates a new CreditService
func NewCreditService(
	creditRepo creditStore,
	studentRepo studentStore,
	notificationRepo notificationStore,
	logger zerolog.Logger,
) *CreditService {
	return &CreditService{
		creditRepo:       creditRepo,
		studentRepo:      studentRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Award adds credits to a student's balance. The amount must be positive.
func (s *CreditService) Award(ctx context.Context, studentID int64, amount int, reason string) (*models.Credit, error) {
	if amount <= 0 {
		return nil, apperrors.ErrInvalidCreditAmount
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	credit, err := s.creditRepo.Add(ctx, studentID, amount)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("You have been awarded %d credits.", amount)
	if reason != "" {
		message = fmt.Sprintf("You have been awarded %d credits: %s", amount, reason)
	}
	notification := &models.Notification{
		UserID:  student.UserID,
		Title:   "Credits awarded",
		Message: message,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Error().Err(err).Int64("studentID", studentID).Msg("Failed to notify student of credit award")
	}

	s.logger.Info().Int64("studentID", studentID).Int("amount", amount).Int("balance", credit.CreditsEarned).Msg("Credits awarded")
	return credit, nil
}

// GetBalance retrieves a student's credit balance
func (s *CreditService) GetBalance(ctx context.Context, studentID int64) (*models.Credit, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.creditRepo.GetByStudentID(ctx, studentID)
}

// Leaderboard retrieves the highest balances
func (s *CreditService) Leaderboard(ctx context.Context, limit int) ([]*models.Credit, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.creditRepo.ListTop(ctx, limit)
}
