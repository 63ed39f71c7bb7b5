package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/app/models/dto"
	"github.com/edusphere/edusphere/internal/app/repositories"
	"github.com/edusphere/edusphere/internal/pkg/apperrors"
)

// MessageService handles private messaging between users
type MessageService struct {
	messageRepo      *repositories.MessageRepository
	userRepo         *repositories.UserRepository
	notificationRepo *repositories.NotificationRepository
	logger           zerolog.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(
	messageRepo *repositories.MessageRepository,
	userRepo *repositories.UserRepository,
	notificationRepo *repositories.NotificationRepository,
	logger zerolog.Logger,
) *MessageService {
	return &MessageService{
		messageRepo:      messageRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Send delivers a direct message and notifies the receiver
func (s *MessageService) Send(ctx context.Context, senderID int64, req *dto.SendDirectMessageRequest) (*models.DirectMessage, error) {
	if senderID == req.ReceiverID {
		return nil, apperrors.NewBadRequestError("cannot message yourself")
	}

	sender, err := s.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, req.ReceiverID); err != nil {
		return nil, err
	}

	message := &models.DirectMessage{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Subject:    req.Subject,
		Body:       req.Body,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	notification := &models.Notification{
		UserID:  req.ReceiverID,
		Title:   "New message",
		Message: "You have a new message from " + sender.Name + ".",
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Error().Err(err).Int64("receiverID", req.ReceiverID).Msg("Failed to notify message receiver")
	}

	return s.messageRepo.GetByID(ctx, message.ID, senderID)
}

// Get retrieves a message visible to the caller. Reading an inbox
// message marks it read.
func (s *MessageService) Get(ctx context.Context, id, userID int64) (*models.DirectMessage, error) {
	message, err := s.messageRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if message.ReceiverID == userID && !message.IsRead {
		if err := s.messageRepo.MarkRead(ctx, id, userID); err != nil {
			s.logger.Error().Err(err).Int64("messageID", id).Msg("Failed to mark message read")
		} else {
			message.IsRead = true
		}
	}

	return message, nil
}

// Inbox retrieves messages received by the caller
func (s *MessageService) Inbox(ctx context.Context, userID int64, unreadOnly bool, offset uint64, limit int) ([]*models.DirectMessage, int64, error) {
	return s.messageRepo.ListInbox(ctx, userID, unreadOnly, offset, limit)
}

// Sent retrieves messages sent by the caller
func (s *MessageService) Sent(ctx context.Context, userID int64, offset uint64, limit int) ([]*models.DirectMessage, int64, error) {
	return s.messageRepo.ListSent(ctx, userID, offset, limit)
}

// Conversation retrieves the exchange between the caller and another user
func (s *MessageService) Conversation(ctx context.Context, userID, otherID int64, offset uint64, limit int) ([]*models.DirectMessage, int64, error) {
	if _, err := s.userRepo.GetByID(ctx, otherID); err != nil {
		return nil, 0, err
	}
	return s.messageRepo.ListConversation(ctx, userID, otherID, offset, limit)
}

// MarkRead marks a received message as read
func (s *MessageService) MarkRead(ctx context.Context, id, userID int64) error {
	return s.messageRepo.MarkRead(ctx, id, userID)
}

// Delete hides a message for the caller
func (s *MessageService) Delete(ctx context.Context, id, userID int64) error {
	return s.messageRepo.SoftDelete(ctx, id, userID)
}
