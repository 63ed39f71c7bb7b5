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

// ForumRepository handles database operations for discussion forums and posts
type ForumRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewForumRepository creates a new ForumRepository
func NewForumRepository(db *pgxpool.Pool) *ForumRepository {
	return &ForumRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new discussion forum
func (r *ForumRepository) Create(ctx context.Context, forum *models.DiscussionForum) error {
	query := `
		INSERT INTO discussion_forums (topic, description, category, created_by, is_pinned, view_count)
		VALUES ($1, $2, $3, $4, false, 0)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		forum.Topic,
		forum.Description,
		forum.Category,
		forum.CreatedBy,
	).Scan(&forum.ID, &forum.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error creating forum: %w", err)
	}

	return nil
}

// GetByID retrieves a forum and bumps its view count
func (r *ForumRepository) GetByID(ctx context.Context, id int64) (*models.DiscussionForum, error) {
	query := `
		UPDATE discussion_forums f
		SET view_count = f.view_count + 1
		FROM users u
		WHERE f.id = $1 AND u.id = f.created_by
		RETURNING f.id, f.topic, f.description, f.category, f.created_by,
		          f.is_pinned, f.view_count, f.created_at, u.name,
		          (SELECT COUNT(*) FROM forum_posts fp WHERE fp.forum_id = f.id)
	`

	var forum models.DiscussionForum
	var creatorName string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&forum.ID,
		&forum.Topic,
		&forum.Description,
		&forum.Category,
		&forum.CreatedBy,
		&forum.IsPinned,
		&forum.ViewCount,
		&forum.CreatedAt,
		&creatorName,
		&forum.PostsCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrForumNotFound
		}
		return nil, fmt.Errorf("error retrieving forum: %w", err)
	}

	forum.Creator = &models.User{ID: forum.CreatedBy, Name: creatorName}
	return &forum, nil
}

// List retrieves forums, pinned first then newest, optionally filtered by category
func (r *ForumRepository) List(ctx context.Context, category *string, offset uint64, limit int) ([]*models.DiscussionForum, int64, error) {
	applyFilter := func(b squirrel.SelectBuilder) squirrel.SelectBuilder {
		if category != nil && *category != "" {
			b = b.Where(squirrel.Eq{"f.category": *category})
		}
		return b
	}

	countSQL, countArgs, err := applyFilter(r.sb.Select("COUNT(*)").From("discussion_forums f")).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build forum count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting forums: %w", err)
	}

	sql, args, err := applyFilter(r.sb.Select(
		"f.id", "f.topic", "f.description", "f.category", "f.created_by",
		"f.is_pinned", "f.view_count", "f.created_at", "u.name",
		"(SELECT COUNT(*) FROM forum_posts fp WHERE fp.forum_id = f.id)",
	).
		From("discussion_forums f").
		Join("users u ON f.created_by = u.id")).
		OrderBy("f.is_pinned DESC", "f.created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build forum list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing forums: %w", err)
	}
	defer rows.Close()

	var forums []*models.DiscussionForum
	for rows.Next() {
		var forum models.DiscussionForum
		var creatorName string
		if err := rows.Scan(
			&forum.ID,
			&forum.Topic,
			&forum.Description,
			&forum.Category,
			&forum.CreatedBy,
			&forum.IsPinned,
			&forum.ViewCount,
			&forum.CreatedAt,
			&creatorName,
			&forum.PostsCount,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning forum row: %w", err)
		}
		forum.Creator = &models.User{ID: forum.CreatedBy, Name: creatorName}
		forums = append(forums, &forum)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return forums, total, nil
}

// SetPinned toggles a forum's pinned flag
func (r *ForumRepository) SetPinned(ctx context.Context, id int64, pinned bool) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE discussion_forums SET is_pinned = $1 WHERE id = $2`, pinned, id)
	if err != nil {
		return fmt.Errorf("error updating forum pin: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrForumNotFound
	}
	return nil
}

// Delete removes a forum and its posts
func (r *ForumRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM discussion_forums WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting forum: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrForumNotFound
	}
	return nil
}

// CreatePost inserts a post or a reply into a forum
func (r *ForumRepository) CreatePost(ctx context.Context, post *models.ForumPost) error {
	query := `
		INSERT INTO forum_posts (forum_id, user_id, content, parent_post_id, upvotes)
		VALUES ($1, $2, $3, $4, 0)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		post.ForumID,
		post.UserID,
		post.Content,
		post.ParentPostID,
	).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrForumNotFound
		}
		return fmt.Errorf("error creating forum post: %w", err)
	}

	return nil
}

// GetPostByID retrieves a single post
func (r *ForumRepository) GetPostByID(ctx context.Context, id int64) (*models.ForumPost, error) {
	query := `
		SELECT fp.id, fp.forum_id, fp.user_id, fp.content, fp.parent_post_id,
		       fp.upvotes, fp.created_at, u.name
		FROM forum_posts fp
		JOIN users u ON fp.user_id = u.id
		WHERE fp.id = $1
	`

	var post models.ForumPost
	var userName string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&post.ID,
		&post.ForumID,
		&post.UserID,
		&post.Content,
		&post.ParentPostID,
		&post.Upvotes,
		&post.CreatedAt,
		&userName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error retrieving forum post: %w", err)
	}

	post.User = &models.User{ID: post.UserID, Name: userName}
	return &post, nil
}

// ListPosts retrieves a forum's top-level posts with their replies nested one deep
func (r *ForumRepository) ListPosts(ctx context.Context, forumID int64, offset uint64, limit int) ([]*models.ForumPost, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM forum_posts WHERE forum_id = $1 AND parent_post_id IS NULL`,
		forumID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting forum posts: %w", err)
	}

	sql, args, err := r.sb.Select(
		"fp.id", "fp.forum_id", "fp.user_id", "fp.content", "fp.parent_post_id",
		"fp.upvotes", "fp.created_at", "u.name",
	).
		From("forum_posts fp").
		Join("users u ON fp.user_id = u.id").
		Where(squirrel.Eq{"fp.forum_id": forumID, "fp.parent_post_id": nil}).
		OrderBy("fp.created_at ASC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build post list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing forum posts: %w", err)
	}

	var posts []*models.ForumPost
	byID := make(map[int64]*models.ForumPost)
	var parentIDs []int64
	for rows.Next() {
		var post models.ForumPost
		var userName string
		if err := rows.Scan(
			&post.ID,
			&post.ForumID,
			&post.UserID,
			&post.Content,
			&post.ParentPostID,
			&post.Upvotes,
			&post.CreatedAt,
			&userName,
		); err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("error scanning post row: %w", err)
		}
		post.User = &models.User{ID: post.UserID, Name: userName}
		posts = append(posts, &post)
		byID[post.ID] = &post
		parentIDs = append(parentIDs, post.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(parentIDs) == 0 {
		return posts, total, nil
	}

	replySQL, replyArgs, err := r.sb.Select(
		"fp.id", "fp.forum_id", "fp.user_id", "fp.content", "fp.parent_post_id",
		"fp.upvotes", "fp.created_at", "u.name",
	).
		From("forum_posts fp").
		Join("users u ON fp.user_id = u.id").
		Where(squirrel.Eq{"fp.parent_post_id": parentIDs}).
		OrderBy("fp.created_at ASC").
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build reply list query: %w", err)
	}

	replyRows, err := r.db.Query(ctx, replySQL, replyArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing replies: %w", err)
	}
	defer replyRows.Close()

	for replyRows.Next() {
		var reply models.ForumPost
		var userName string
		if err := replyRows.Scan(
			&reply.ID,
			&reply.ForumID,
			&reply.UserID,
			&reply.Content,
			&reply.ParentPostID,
			&reply.Upvotes,
			&reply.CreatedAt,
			&userName,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning reply row: %w", err)
		}
		reply.User = &models.User{ID: reply.UserID, Name: userName}
		if parent, ok := byID[*reply.ParentPostID]; ok {
			parent.Replies = append(parent.Replies, reply)
		}
	}
	if err := replyRows.Err(); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// UpvotePost increments a post's upvote counter and returns the new total
func (r *ForumRepository) UpvotePost(ctx context.Context, id int64) (int, error) {
	var upvotes int
	err := r.db.QueryRow(ctx,
		`UPDATE forum_posts SET upvotes = upvotes + 1 WHERE id = $1 RETURNING upvotes`,
		id).Scan(&upvotes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrPostNotFound
		}
		return 0, fmt.Errorf("error upvoting post: %w", err)
	}
	return upvotes, nil
}

// DeletePost removes a post and its replies
func (r *ForumRepository) DeletePost(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM forum_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting forum post: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}
