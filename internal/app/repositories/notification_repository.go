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
)

// NotificationRepository handles database operations for notifications and announcements
type NotificationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new notification for a user
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (user_id, title, message, is_read)
		VALUES ($1, $2, $3, false)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		notification.UserID,
		notification.Title,
		notification.Message,
	).Scan(&notification.ID, &notification.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's notifications, newest first
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, unreadOnly bool, offset uint64, limit int) ([]*models.Notification, int64, error) {
	where := squirrel.Eq{"user_id": userID}
	if unreadOnly {
		where["is_read"] = false
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("notifications").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build notification count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting notifications: %w", err)
	}

	sql, args, err := r.sb.Select("id", "user_id", "title", "message", "is_read", "read_at", "created_at").
		From("notifications").
		Where(where).
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build notification list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.IsRead, &n.ReadAt, &n.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// CountUnread returns the number of unread notifications for a user
func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`,
		userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks a single notification as read, scoped to its owner
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE notifications
		SET is_read = true, read_at = NOW()
		WHERE id = $1 AND user_id = $2 AND is_read = false
	`, id, userID)
	if err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM notifications WHERE id = $1 AND user_id = $2)`,
			id, userID).Scan(&exists); err != nil {
			return fmt.Errorf("error checking notification existence: %w", err)
		}
		if !exists {
			return apperrors.ErrNotificationNotFound
		}
	}
	return nil
}

// MarkAllRead marks every unread notification of a user as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE notifications
		SET is_read = true, read_at = NOW()
		WHERE user_id = $1 AND is_read = false
	`, userID)
	if err != nil {
		return 0, fmt.Errorf("error marking notifications read: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// Delete removes a notification, scoped to its owner
func (r *NotificationRepository) Delete(ctx context.Context, id, userID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting notification: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// CreateAnnouncement inserts a platform announcement
func (r *NotificationRepository) CreateAnnouncement(ctx context.Context, announcement *models.Announcement) error {
	query := `
		INSERT INTO announcements (posted_by, title, content, target_audience, priority, is_active, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		announcement.PostedBy,
		announcement.Title,
		announcement.Content,
		announcement.TargetAudience,
		announcement.Priority,
		announcement.IsActive,
		announcement.ExpiresAt,
	).Scan(&announcement.ID, &announcement.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating announcement: %w", err)
	}

	return nil
}

// GetAnnouncementByID retrieves an announcement with its poster
func (r *NotificationRepository) GetAnnouncementByID(ctx context.Context, id int64) (*models.Announcement, error) {
	query := `
		SELECT a.id, a.posted_by, a.title, a.content, a.target_audience, a.priority,
		       a.is_active, a.expires_at, a.created_at,
		       u.id, u.name, u.email, u.role
		FROM announcements a
		JOIN users u ON a.posted_by = u.id
		WHERE a.id = $1
	`

	var announcement models.Announcement
	var poster models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&announcement.ID,
		&announcement.PostedBy,
		&announcement.Title,
		&announcement.Content,
		&announcement.TargetAudience,
		&announcement.Priority,
		&announcement.IsActive,
		&announcement.ExpiresAt,
		&announcement.CreatedAt,
		&poster.ID,
		&poster.Name,
		&poster.Email,
		&poster.Role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("error retrieving announcement: %w", err)
	}

	announcement.Poster = &poster
	return &announcement, nil
}

// ListAnnouncements retrieves announcements, highest priority first.
// Active-only listings also exclude expired announcements.
func (r *NotificationRepository) ListAnnouncements(ctx context.Context, activeOnly bool, audience *string, offset uint64, limit int) ([]*models.Announcement, int64, error) {
	applyFilter := func(b squirrel.SelectBuilder) squirrel.SelectBuilder {
		if activeOnly {
			b = b.Where(squirrel.Eq{"a.is_active": true}).
				Where(squirrel.Or{
					squirrel.Eq{"a.expires_at": nil},
					squirrel.Expr("a.expires_at > NOW()"),
				})
		}
		if audience != nil && *audience != "" {
			b = b.Where(squirrel.Or{
				squirrel.Eq{"a.target_audience": *audience},
				squirrel.Eq{"a.target_audience": "all"},
			})
		}
		return b
	}

	countSQL, countArgs, err := applyFilter(r.sb.Select("COUNT(*)").From("announcements a")).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build announcement count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting announcements: %w", err)
	}

	sql, args, err := applyFilter(r.sb.Select(
		"a.id", "a.posted_by", "a.title", "a.content", "a.target_audience", "a.priority",
		"a.is_active", "a.expires_at", "a.created_at", "u.name",
	).
		From("announcements a").
		Join("users u ON a.posted_by = u.id")).
		OrderBy("a.priority DESC", "a.created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build announcement list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing announcements: %w", err)
	}
	defer rows.Close()

	var announcements []*models.Announcement
	for rows.Next() {
		var announcement models.Announcement
		var posterName string
		if err := rows.Scan(
			&announcement.ID,
			&announcement.PostedBy,
			&announcement.Title,
			&announcement.Content,
			&announcement.TargetAudience,
			&announcement.Priority,
			&announcement.IsActive,
			&announcement.ExpiresAt,
			&announcement.CreatedAt,
			&posterName,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning announcement row: %w", err)
		}
		announcement.Poster = &models.User{ID: announcement.PostedBy, Name: posterName}
		announcements = append(announcements, &announcement)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return announcements, total, nil
}

// UpdateAnnouncement replaces the mutable fields of an announcement
func (r *NotificationRepository) UpdateAnnouncement(ctx context.Context, announcement *models.Announcement) error {
	query := `
		UPDATE announcements
		SET title = $1, content = $2, target_audience = $3, priority = $4, is_active = $5, expires_at = $6
		WHERE id = $7
	`

	cmdTag, err := r.db.Exec(ctx, query,
		announcement.Title,
		announcement.Content,
		announcement.TargetAudience,
		announcement.Priority,
		announcement.IsActive,
		announcement.ExpiresAt,
		announcement.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating announcement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAnnouncementNotFound
	}

	return nil
}

// DeleteAnnouncement removes an announcement
func (r *NotificationRepository) DeleteAnnouncement(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting announcement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAnnouncementNotFound
	}
	return nil
}
