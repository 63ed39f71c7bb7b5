package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/db"
	"github.com/edusphere/edusphere/internal/pkg/apperrors"
)

// ChatRepository handles database operations for chat rooms and messages
type ChatRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateRoom creates a chat room and enrolls the initial participants.
// The creator always joins as an admin participant.
func (r *ChatRepository) CreateRoom(ctx context.Context, room *models.ChatRoom, participantIDs []int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO chat_rooms (name, type, internship_id, created_by)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`, room.Name, room.Type, room.InternshipID, room.CreatedBy).
			Scan(&room.ID, &room.CreatedAt)
		if err != nil {
			return fmt.Errorf("error creating chat room: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO chat_participants (chat_room_id, user_id, role)
			VALUES ($1, $2, 'admin')
		`, room.ID, room.CreatedBy)
		if err != nil {
			return fmt.Errorf("error enrolling room creator: %w", err)
		}

		for _, userID := range participantIDs {
			if userID == room.CreatedBy {
				continue
			}
			_, err = tx.Exec(ctx, `
				INSERT INTO chat_participants (chat_room_id, user_id, role)
				VALUES ($1, $2, 'member')
				ON CONFLICT (chat_room_id, user_id) DO NOTHING
			`, room.ID, userID)
			if err != nil {
				return fmt.Errorf("error enrolling participant %d: %w", userID, err)
			}
		}

		return nil
	})
}

// GetRoomByID retrieves a chat room with its participants
func (r *ChatRepository) GetRoomByID(ctx context.Context, id int64) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := r.db.QueryRow(ctx, `
		SELECT id, name, type, internship_id, created_by, created_at
		FROM chat_rooms
		WHERE id = $1
	`, id).Scan(&room.ID, &room.Name, &room.Type, &room.InternshipID, &room.CreatedBy, &room.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrChatRoomNotFound
		}
		return nil, fmt.Errorf("error retrieving chat room: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT cp.id, cp.chat_room_id, cp.user_id, cp.role, cp.last_read_at,
		       u.name, u.email
		FROM chat_participants cp
		JOIN users u ON cp.user_id = u.id
		WHERE cp.chat_room_id = $1
		ORDER BY cp.id ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving room participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.ChatParticipant
		var user models.User
		if err := rows.Scan(&p.ID, &p.ChatRoomID, &p.UserID, &p.Role, &p.LastReadAt,
			&user.Name, &user.Email); err != nil {
			return nil, fmt.Errorf("error scanning participant row: %w", err)
		}
		user.ID = p.UserID
		p.User = &user
		room.Participants = append(room.Participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &room, nil
}

// ListRoomsByUser retrieves the rooms a user participates in,
// most recently active first
func (r *ChatRepository) ListRoomsByUser(ctx context.Context, userID int64) ([]*models.ChatRoom, error) {
	query := `
		SELECT cr.id, cr.name, cr.type, cr.internship_id, cr.created_by, cr.created_at,
		       m.id, m.sender_id, m.message, m.created_at
		FROM chat_rooms cr
		JOIN chat_participants cp ON cp.chat_room_id = cr.id
		LEFT JOIN LATERAL (
			SELECT id, sender_id, message, created_at
			FROM chat_messages
			WHERE chat_room_id = cr.id
			ORDER BY created_at DESC
			LIMIT 1
		) m ON true
		WHERE cp.user_id = $1
		ORDER BY COALESCE(m.created_at, cr.created_at) DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing chat rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*models.ChatRoom
	for rows.Next() {
		var room models.ChatRoom
		var msgID, msgSenderID *int64
		var msgBody *string
		var msgCreatedAt *time.Time
		if err := rows.Scan(
			&room.ID, &room.Name, &room.Type, &room.InternshipID, &room.CreatedBy, &room.CreatedAt,
			&msgID, &msgSenderID, &msgBody, &msgCreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning chat room row: %w", err)
		}
		if msgID != nil {
			room.LastMessage = &models.ChatMessage{
				ID:         *msgID,
				ChatRoomID: room.ID,
				SenderID:   *msgSenderID,
				Message:    *msgBody,
				CreatedAt:  *msgCreatedAt,
			}
		}
		rooms = append(rooms, &room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rooms, nil
}

// IsParticipant checks room membership for a user
func (r *ChatRepository) IsParticipant(ctx context.Context, roomID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM chat_participants WHERE chat_room_id = $1 AND user_id = $2)`,
		roomID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking room membership: %w", err)
	}
	return exists, nil
}

// AddParticipant enrolls a user into a room. Re-adding is a no-op.
func (r *ChatRepository) AddParticipant(ctx context.Context, roomID, userID int64, role string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO chat_participants (chat_room_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (chat_room_id, user_id) DO NOTHING
	`, roomID, userID, role)
	if err != nil {
		return fmt.Errorf("error adding participant: %w", err)
	}
	return nil
}

// RemoveParticipant removes a user from a room
func (r *ChatRepository) RemoveParticipant(ctx context.Context, roomID, userID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM chat_participants WHERE chat_room_id = $1 AND user_id = $2`,
		roomID, userID)
	if err != nil {
		return fmt.Errorf("error removing participant: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotParticipant
	}
	return nil
}

// CreateMessage inserts a message into a room
func (r *ChatRepository) CreateMessage(ctx context.Context, message *models.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (chat_room_id, sender_id, message)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		message.ChatRoomID,
		message.SenderID,
		message.Message,
	).Scan(&message.ID, &message.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating chat message: %w", err)
	}

	return nil
}

// ListMessages retrieves room messages before a cursor, newest first
func (r *ChatRepository) ListMessages(ctx context.Context, roomID int64, before *time.Time, limit int) ([]*models.ChatMessage, error) {
	queryBuilder := r.sb.Select(
		"cm.id", "cm.chat_room_id", "cm.sender_id", "cm.message", "cm.created_at",
		"u.name", "u.email",
	).
		From("chat_messages cm").
		Join("users u ON cm.sender_id = u.id").
		Where(squirrel.Eq{"cm.chat_room_id": roomID}).
		OrderBy("cm.created_at DESC").
		Limit(uint64(limit))

	if before != nil {
		queryBuilder = queryBuilder.Where("cm.created_at < ?", *before)
	}

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build message list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing chat messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.ChatMessage
	for rows.Next() {
		var message models.ChatMessage
		var sender models.User
		if err := rows.Scan(
			&message.ID,
			&message.ChatRoomID,
			&message.SenderID,
			&message.Message,
			&message.CreatedAt,
			&sender.Name,
			&sender.Email,
		); err != nil {
			return nil, fmt.Errorf("error scanning chat message row: %w", err)
		}
		sender.ID = message.SenderID
		message.Sender = &sender
		messages = append(messages, &message)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}

// UpdateLastRead stamps a participant's read cursor
func (r *ChatRepository) UpdateLastRead(ctx context.Context, roomID, userID int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE chat_participants
		SET last_read_at = NOW()
		WHERE chat_room_id = $1 AND user_id = $2
	`, roomID, userID)
	if err != nil {
		return fmt.Errorf("error updating read cursor: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotParticipant
	}
	return nil
}
