package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/app/models/dto"
)

// NotificationService handles user notifications and platform announcements
type NotificationService struct {
	notificationRepo notificationStore
	userRepo         userStore
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notificationRepo notificationStore,
	userRepo userStore,
	logger zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// Create dispatches a notification to a user
func (s *NotificationService) Create(ctx context.Context, req *dto.CreateNotificationRequest) (*models.Notification, error) {
	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	notification := &models.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}

	return notification, nil
}

// ListForUser retrieves a user's notifications
func (s *NotificationService) ListForUser(ctx context.Context, userID int64, unreadOnly bool, offset uint64, limit int) ([]*models.Notification, int64, error) {
	return s.notificationRepo.ListByUser(ctx, userID, unreadOnly, offset, limit)
}

// CountUnread returns the user's unread notification count
func (s *NotificationService) CountUnread(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// MarkRead marks one notification as read
func (s *NotificationService) MarkRead(ctx context.Context, id, userID int64) error {
	return s.notificationRepo.MarkRead(ctx, id, userID)
}

// MarkAllRead marks all of a user's notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// Delete removes a notification
func (s *NotificationService) Delete(ctx context.Context, id, userID int64) error {
	return s.notificationRepo.Delete(ctx, id, userID)
}

// CreateAnnouncement publishes a platform announcement
func (s *NotificationService) CreateAnnouncement(ctx context.Context, postedBy int64, req *dto.CreateAnnouncementRequest) (*models.Announcement, error) {
	expiresAt, err := parseDate(req.ExpiresAt)
	if err != nil {
		return nil, err
	}

	audience := req.TargetAudience
	if audience == "" {
		audience = "all"
	}

	announcement := &models.Announcement{
		PostedBy:       postedBy,
		Title:          req.Title,
		Content:        req.Content,
		TargetAudience: audience,
		Priority:       req.Priority,
		IsActive:       true,
		ExpiresAt:      expiresAt,
	}

	if err := s.notificationRepo.CreateAnnouncement(ctx, announcement); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("announcementID", announcement.ID).Str("title", announcement.Title).Msg("Announcement published")
	return s.notificationRepo.GetAnnouncementByID(ctx, announcement.ID)
}

// GetAnnouncement retrieves an announcement
func (s *NotificationService) GetAnnouncement(ctx context.Context, id int64) (*models.Announcement, error) {
	return s.notificationRepo.GetAnnouncementByID(ctx, id)
}

// ListAnnouncements retrieves announcements, highest priority first
func (s *NotificationService) ListAnnouncements(ctx context.Context, activeOnly bool, audience *string, offset uint64, limit int) ([]*models.Announcement, int64, error) {
	return s.notificationRepo.ListAnnouncements(ctx, activeOnly, audience, offset, limit)
}

// UpdateAnnouncement applies a partial update to an announcement
func (s *NotificationService) UpdateAnnouncement(ctx context.Context, id int64, req *dto.UpdateAnnouncementRequest) (*models.Announcement, error) {
	announcement, err := s.notificationRepo.GetAnnouncementByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		announcement.Title = *req.Title
	}
	if req.Content != nil {
		announcement.Content = *req.Content
	}
	if req.TargetAudience != nil {
		announcement.TargetAudience = *req.TargetAudience
	}
	if req.Priority != nil {
		announcement.Priority = *req.Priority
	}
	if req.IsActive != nil {
		announcement.IsActive = *req.IsActive
	}
	if req.ExpiresAt != nil {
		expiresAt, err := parseDate(*req.ExpiresAt)
		if err != nil {
			return nil, err
		}
		announcement.ExpiresAt = expiresAt
	}

	if err := s.notificationRepo.UpdateAnnouncement(ctx, announcement); err != nil {
		return nil, err
	}

	return s.notificationRepo.GetAnnouncementByID(ctx, id)
}

// DeleteAnnouncement removes an announcement
func (s *NotificationService) DeleteAnnouncement(ctx context.Context, id int64) error {
	return s.notificationRepo.DeleteAnnouncement(ctx, id)
}
