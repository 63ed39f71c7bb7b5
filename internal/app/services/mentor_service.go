package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/app/models/dto"
	"github.com/edusphere/edusphere/internal/app/repositories"
	"github.com/edusphere/edusphere/internal/pkg/apperrors"
)

// MentorService handles mentors, session bookings and reviews
type MentorService struct {
	mentorRepo       *repositories.MentorRepository
	studentRepo      *repositories.StudentRepository
	userRepo         *repositories.UserRepository
	notificationRepo *repositories.NotificationRepository
	logger           zerolog.Logger
}

// NewMentorService creates a new MentorService
func NewMentorService(
	mentorRepo *repositories.MentorRepository,
	studentRepo *repositories.StudentRepository,
	userRepo *repositories.UserRepository,
	notificationRepo *repositories.NotificationRepository,
	logger zerolog.Logger,
) *MentorService {
	return &MentorService{
		mentorRepo:       mentorRepo,
		studentRepo:      studentRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Register enrolls a user as a mentor
func (s *MentorService) Register(ctx context.Context, req *dto.RegisterMentorRequest) (*models.Mentor, error) {
	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	mentor := &models.Mentor{
		UserID:    req.UserID,
		Expertise: req.Expertise,
		Bio:       req.Bio,
	}

	if err := s.mentorRepo.Create(ctx, mentor); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("mentorID", mentor.ID).Int64("userID", req.UserID).Msg("Mentor registered")
	return s.mentorRepo.GetByID(ctx, mentor.ID)
}

// GetByID retrieves a mentor
func (s *MentorService) GetByID(ctx context.Context, id int64) (*models.Mentor, error) {
	return s.mentorRepo.GetByID(ctx, id)
}

// List retrieves mentors ordered by rating
func (s *MentorService) List(ctx context.Context, expertise *string, offset uint64, limit int) ([]*models.Mentor, int64, error) {
	return s.mentorRepo.List(ctx, expertise, offset, limit)
}

// BookSession schedules a mentorship session for a student
func (s *MentorService) BookSession(ctx context.Context, studentID int64, req *dto.BookSessionRequest) (*models.MentorSession, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	mentor, err := s.mentorRepo.GetByID(ctx, req.MentorID)
	if err != nil {
		return nil, err
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid scheduledAt, expected RFC 3339 timestamp")
	}
	if scheduledAt.Before(time.Now()) {
		return nil, apperrors.NewBadRequestError("session cannot be scheduled in the past")
	}

	session := &models.MentorSession{
		StudentID:   studentID,
		MentorID:    req.MentorID,
		ScheduledAt: scheduledAt,
		MeetingLink: req.MeetingLink,
		Status:      models.SessionScheduled,
	}

	if err := s.mentorRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	notification := &models.Notification{
		UserID:  mentor.UserID,
		Title:   "New session booked",
		Message: fmt.Sprintf("A session has been booked for %s.", scheduledAt.Format(time.RFC1123)),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Error().Err(err).Int64("mentorID", mentor.ID).Msg("Failed to notify mentor of booking")
	}

	return session, nil
}

// GetSession retrieves a session, visible to its student, its mentor, or an admin
func (s *MentorService) GetSession(ctx context.Context, id int64) (*models.MentorSession, error) {
	return s.mentorRepo.GetSessionByID(ctx, id)
}

// ListSessionsByStudent retrieves a student's sessions
func (s *MentorService) ListSessionsByStudent(ctx context.Context, studentID int64, offset uint64, limit int) ([]*models.MentorSession, int64, error) {
	return s.mentorRepo.ListSessionsByStudent(ctx, studentID, offset, limit)
}

// ListSessionsByMentor retrieves a mentor's sessions
func (s *MentorService) ListSessionsByMentor(ctx context.Context, mentorID int64, offset uint64, limit int) ([]*models.MentorSession, int64, error) {
	return s.mentorRepo.ListSessionsByMentor(ctx, mentorID, offset, limit)
}

// UpdateSessionStatus moves a session to completed or cancelled.
// Completed and cancelled sessions cannot change again.
func (s *MentorService) UpdateSessionStatus(ctx context.Context, id int64, req *dto.UpdateSessionStatusRequest) (*models.MentorSession, error) {
	newStatus := models.SessionStatus(req.Status)
	if !models.IsValidSessionStatus(newStatus) {
		return nil, apperrors.ErrInvalidSessionStatus
	}

	session, err := s.mentorRepo.GetSessionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.Status != models.SessionScheduled {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidSessionStatus,
			fmt.Sprintf("cannot change session in status %s", session.Status))
	}
	if newStatus == models.SessionScheduled {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidSessionStatus, "session is already scheduled")
	}

	if err := s.mentorRepo.UpdateSessionStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}

	session.Status = newStatus
	return session, nil
}

// AddReview submits a rating for a mentor and updates the aggregate
func (s *MentorService) AddReview(ctx context.Context, studentID int64, req *dto.AddReviewRequest) (*models.MentorReview, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.ErrInvalidRating
	}

	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	if _, err := s.mentorRepo.GetByID(ctx, req.MentorID); err != nil {
		return nil, err
	}

	review := &models.MentorReview{
		MentorID:  req.MentorID,
		StudentID: studentID,
		Rating:    req.Rating,
		Comments:  req.Comments,
	}

	if err := s.mentorRepo.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("mentorID", req.MentorID).Int("rating", req.Rating).Msg("Mentor review added")
	return review, nil
}

// ListReviews retrieves a mentor's reviews
func (s *MentorService) ListReviews(ctx context.Context, mentorID int64, offset uint64, limit int) ([]*models.MentorReview, int64, error) {
	if _, err := s.mentorRepo.GetByID(ctx, mentorID); err != nil {
		return nil, 0, err
	}
	return s.mentorRepo.ListReviews(ctx, mentorID, offset, limit)
}
