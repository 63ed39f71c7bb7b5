package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/app/models/dto"
	"github.com/edusphere/edusphere/internal/app/repositories"
	"github.com/edusphere/edusphere/internal/pkg/apperrors"
)

// ChatService handles chat rooms and room messaging
type ChatService struct {
	chatRepo       *repositories.ChatRepository
	userRepo       *repositories.UserRepository
	internshipRepo *repositories.InternshipRepository
	logger         zerolog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(
	chatRepo *repositories.ChatRepository,
	userRepo *repositories.UserRepository,
	internshipRepo *repositories.InternshipRepository,
	logger zerolog.Logger,
) *ChatService {
	return &ChatService{
		chatRepo:       chatRepo,
		userRepo:       userRepo,
		internshipRepo: internshipRepo,
		logger:         logger,
	}
}

// CreateRoom creates a chat room with the creator enrolled as admin
func (s *ChatService) CreateRoom(ctx context.Context, creatorID int64, req *dto.CreateChatRoomRequest) (*models.ChatRoom, error) {
	if req.Type == "internship" {
		if req.InternshipID == nil {
			return nil, apperrors.NewBadRequestError("internship rooms require an internshipId")
		}
		if _, err := s.internshipRepo.GetByID(ctx, *req.InternshipID); err != nil {
			return nil, err
		}
	}

	for _, userID := range req.Participants {
		if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
			return nil, err
		}
	}

	room := &models.ChatRoom{
		Name:         req.Name,
		Type:         req.Type,
		InternshipID: req.InternshipID,
		CreatedBy:    creatorID,
	}

	if err := s.chatRepo.CreateRoom(ctx, room, req.Participants); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("roomID", room.ID).Str("type", room.Type).Msg("Chat room created")
	return s.chatRepo.GetRoomByID(ctx, room.ID)
}

// GetRoom retrieves a room. Only participants may view it.
func (s *ChatService) GetRoom(ctx context.Context, roomID, userID int64) (*models.ChatRoom, error) {
	if err := s.requireParticipant(ctx, roomID, userID); err != nil {
		return nil, err
	}
	return s.chatRepo.GetRoomByID(ctx, roomID)
}

// ListRooms retrieves the rooms a user participates in
func (s *ChatService) ListRooms(ctx context.Context, userID int64) ([]*models.ChatRoom, error) {
	return s.chatRepo.ListRoomsByUser(ctx, userID)
}

// AddParticipant enrolls another user into a room.
// Only existing participants may invite.
func (s *ChatService) AddParticipant(ctx context.Context, roomID, inviterID int64, req *dto.AddParticipantRequest) error {
	if err := s.requireParticipant(ctx, roomID, inviterID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return err
	}

	role := req.Role
	if role == "" {
		role = "member"
	}
	return s.chatRepo.AddParticipant(ctx, roomID, req.UserID, role)
}

// LeaveRoom removes the caller from a room
func (s *ChatService) LeaveRoom(ctx context.Context, roomID, userID int64) error {
	return s.chatRepo.RemoveParticipant(ctx, roomID, userID)
}

// SendMessage posts a message into a room on behalf of a participant
func (s *ChatService) SendMessage(ctx context.Context, roomID, senderID int64, req *dto.SendChatMessageRequest) (*models.ChatMessage, error) {
	if err := s.requireParticipant(ctx, roomID, senderID); err != nil {
		return nil, err
	}

	message := &models.ChatMessage{
		ChatRoomID: roomID,
		SenderID:   senderID,
		Message:    req.Message,
	}
	if err := s.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	return message, nil
}

// ListMessages retrieves room history for a participant and advances
// their read cursor
func (s *ChatService) ListMessages(ctx context.Context, roomID, userID int64, before *time.Time, limit int) ([]*models.ChatMessage, error) {
	if err := s.requireParticipant(ctx, roomID, userID); err != nil {
		return nil, err
	}

	messages, err := s.chatRepo.ListMessages(ctx, roomID, before, limit)
	if err != nil {
		return nil, err
	}

	if err := s.chatRepo.UpdateLastRead(ctx, roomID, userID); err != nil {
		s.logger.Error().Err(err).Int64("roomID", roomID).Int64("userID", userID).Msg("Failed to update read cursor")
	}

	return messages, nil
}

func (s *ChatService) requireParticipant(ctx context.Context, roomID, userID int64) error {
	if _, err := s.chatRepo.GetRoomByID(ctx, roomID); err != nil {
		return err
	}
	ok, err := s.chatRepo.IsParticipant(ctx, roomID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrNotParticipant
	}
	return nil
}
