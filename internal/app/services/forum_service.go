package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/app/models/dto"
	"github.com/edusphere/edusphere/internal/app/repositories"
	"github.com/edusphere/edusphere/internal/pkg/apperrors"
)

// ForumService handles discussion forums and their posts
type ForumService struct {
	forumRepo *repositories.ForumRepository
	logger    zerolog.Logger
}

// NewForumService creates a new ForumService
func NewForumService(forumRepo *repositories.ForumRepository, logger zerolog.Logger) *ForumService {
	return &ForumService{
		forumRepo: forumRepo,
		logger:    logger,
	}
}

// Create opens a new discussion forum
func (s *ForumService) Create(ctx context.Context, creatorID int64, req *dto.CreateForumRequest) (*models.DiscussionForum, error) {
	forum := &models.DiscussionForum{
		Topic:       req.Topic,
		Description: req.Description,
		Category:    req.Category,
		CreatedBy:   creatorID,
	}

	if err := s.forumRepo.Create(ctx, forum); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("forumID", forum.ID).Str("topic", forum.Topic).Msg("Forum created")
	return forum, nil
}

// GetByID retrieves a forum. Viewing counts as a visit.
func (s *ForumService) GetByID(ctx context.Context, id int64) (*models.DiscussionForum, error) {
	return s.forumRepo.GetByID(ctx, id)
}

// List retrieves forums, pinned first
func (s *ForumService) List(ctx context.Context, category *string, offset uint64, limit int) ([]*models.DiscussionForum, int64, error) {
	return s.forumRepo.List(ctx, category, offset, limit)
}

// SetPinned pins or unpins a forum
func (s *ForumService) SetPinned(ctx context.Context, id int64, pinned bool) error {
	return s.forumRepo.SetPinned(ctx, id, pinned)
}

// Delete removes a forum, allowed for its creator or an admin
func (s *ForumService) Delete(ctx context.Context, id, userID int64, isAdmin bool) error {
	forum, err := s.forumRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && forum.CreatedBy != userID {
		return apperrors.ErrPermissionDenied
	}
	return s.forumRepo.Delete(ctx, id)
}

// CreatePost adds a post or a reply to a forum.
// Replies must target a post in the same forum, one level deep.
func (s *ForumService) CreatePost(ctx context.Context, forumID, userID int64, req *dto.CreateForumPostRequest) (*models.ForumPost, error) {
	if _, err := s.forumRepo.GetByID(ctx, forumID); err != nil {
		return nil, err
	}

	if req.ParentPostID != nil {
		parent, err := s.forumRepo.GetPostByID(ctx, *req.ParentPostID)
		if err != nil {
			return nil, err
		}
		if parent.ForumID != forumID {
			return nil, apperrors.NewBadRequestError("parent post belongs to a different forum")
		}
		if parent.ParentPostID != nil {
			return nil, apperrors.NewBadRequestError("replies cannot be nested further")
		}
	}

	post := &models.ForumPost{
		ForumID:      forumID,
		UserID:       userID,
		Content:      req.Content,
		ParentPostID: req.ParentPostID,
	}

	if err := s.forumRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	return s.forumRepo.GetPostByID(ctx, post.ID)
}

// ListPosts retrieves a forum's posts with replies
func (s *ForumService) ListPosts(ctx context.Context, forumID int64, offset uint64, limit int) ([]*models.ForumPost, int64, error) {
	return s.forumRepo.ListPosts(ctx, forumID, offset, limit)
}

// UpvotePost registers an upvote and returns the new count
func (s *ForumService) UpvotePost(ctx context.Context, postID int64) (int, error) {
	return s.forumRepo.UpvotePost(ctx, postID)
}

// DeletePost removes a post, allowed for its author or an admin
func (s *ForumService) DeletePost(ctx context.Context, postID, userID int64, isAdmin bool) error {
	post, err := s.forumRepo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if !isAdmin && post.UserID != userID {
		return apperrors.ErrPermissionDenied
	}
	return s.forumRepo.DeletePost(ctx, postID)
}
