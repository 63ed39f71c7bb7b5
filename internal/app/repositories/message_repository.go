package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/pkg/apperrors"
	"github.com/edusphere/edusphere/internal/pkg/dberrors"
)

// MessageRepository handles database operations for direct messages
type MessageRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new direct message
func (r *MessageRepository) Create(ctx context.Context, message *models.DirectMessage) error {
	query := `
		INSERT INTO direct_messages (sender_id, receiver_id, subject, body, is_read)
		VALUES ($1, $2, $3, $4, false)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		message.SenderID,
		message.ReceiverID,
		message.Subject,
		message.Body,
	).Scan(&message.ID, &message.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error creating direct message: %w", err)
	}

	return nil
}

// GetByID retrieves a direct message, visible only to its sender or receiver
func (r *MessageRepository) GetByID(ctx context.Context, id, userID int64) (*models.DirectMessage, error) {
	query := `
		SELECT dm.id, dm.sender_id, dm.receiver_id, dm.subject, dm.body, dm.is_read,
		       dm.deleted_at, dm.created_at,
		       su.name, ru.name
		FROM direct_messages dm
		JOIN users su ON dm.sender_id = su.id
		JOIN users ru ON dm.receiver_id = ru.id
		WHERE dm.id = $1 AND (dm.sender_id = $2 OR dm.receiver_id = $2) AND dm.deleted_at IS NULL
	`

	var message models.DirectMessage
	var senderName, receiverName string
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&message.ID,
		&message.SenderID,
		&message.ReceiverID,
		&message.Subject,
		&message.Body,
		&message.IsRead,
		&message.DeletedAt,
		&message.CreatedAt,
		&senderName,
		&receiverName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMessageNotFound
		}
		return nil, fmt.Errorf("error retrieving direct message: %w", err)
	}

	message.Sender = &models.User{ID: message.SenderID, Name: senderName}
	message.Receiver = &models.User{ID: message.ReceiverID, Name: receiverName}
	return &message, nil
}

// ListInbox retrieves messages received by a user, newest first
func (r *MessageRepository) ListInbox(ctx context.Context, userID int64, unreadOnly bool, offset uint64, limit int) ([]*models.DirectMessage, int64, error) {
	where := squirrel.And{
		squirrel.Eq{"dm.receiver_id": userID},
		squirrel.Eq{"dm.deleted_at": nil},
	}
	if unreadOnly {
		where = append(where, squirrel.Eq{"dm.is_read": false})
	}
	return r.list(ctx, where, offset, limit)
}

// ListSent retrieves messages sent by a user, newest first
func (r *MessageRepository) ListSent(ctx context.Context, userID int64, offset uint64, limit int) ([]*models.DirectMessage, int64, error) {
	where := squirrel.And{
		squirrel.Eq{"dm.sender_id": userID},
		squirrel.Eq{"dm.deleted_at": nil},
	}
	return r.list(ctx, where, offset, limit)
}

// ListConversation retrieves the exchange between two users, newest first
func (r *MessageRepository) ListConversation(ctx context.Context, userID, otherID int64, offset uint64, limit int) ([]*models.DirectMessage, int64, error) {
	where := squirrel.And{
		squirrel.Or{
			squirrel.And{squirrel.Eq{"dm.sender_id": userID}, squirrel.Eq{"dm.receiver_id": otherID}},
			squirrel.And{squirrel.Eq{"dm.sender_id": otherID}, squirrel.Eq{"dm.receiver_id": userID}},
		},
		squirrel.Eq{"dm.deleted_at": nil},
	}
	return r.list(ctx, where, offset, limit)
}

func (r *MessageRepository) list(ctx context.Context, where squirrel.Sqlizer, offset uint64, limit int) ([]*models.DirectMessage, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("direct_messages dm").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build message count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting direct messages: %w", err)
	}

	sql, args, err := r.sb.Select(
		"dm.id", "dm.sender_id", "dm.receiver_id", "dm.subject", "dm.body",
		"dm.is_read", "dm.deleted_at", "dm.created_at",
		"su.name", "ru.name",
	).
		From("direct_messages dm").
		Join("users su ON dm.sender_id = su.id").
		Join("users ru ON dm.receiver_id = ru.id").
		Where(where).
		OrderBy("dm.created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build message list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing direct messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.DirectMessage
	for rows.Next() {
		var message models.DirectMessage
		var senderName, receiverName string
		if err := rows.Scan(
			&message.ID,
			&message.SenderID,
			&message.ReceiverID,
			&message.Subject,
			&message.Body,
			&message.IsRead,
			&message.DeletedAt,
			&message.CreatedAt,
			&senderName,
			&receiverName,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning message row: %w", err)
		}
		message.Sender = &models.User{ID: message.SenderID, Name: senderName}
		message.Receiver = &models.User{ID: message.ReceiverID, Name: receiverName}
		messages = append(messages, &message)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

// MarkRead marks a message as read, scoped to the receiver
func (r *MessageRepository) MarkRead(ctx context.Context, id, receiverID int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE direct_messages
		SET is_read = true
		WHERE id = $1 AND receiver_id = $2 AND deleted_at IS NULL
	`, id, receiverID)
	if err != nil {
		return fmt.Errorf("error marking message read: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMessageNotFound
	}
	return nil
}

// SoftDelete hides a message for both parties without losing the row
func (r *MessageRepository) SoftDelete(ctx context.Context, id, userID int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE direct_messages
		SET deleted_at = NOW()
		WHERE id = $1 AND (sender_id = $2 OR receiver_id = $2) AND deleted_at IS NULL
	`, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting message: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMessageNotFound
	}
	return nil
}
