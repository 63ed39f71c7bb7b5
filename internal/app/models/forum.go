package models

import "time"

// DiscussionForum is a topic thread container
type DiscussionForum struct {
	ID          int64     `json:"id" db:"id"`
	Topic       string    `json:"topic" db:"topic"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	CreatedBy   int64     `json:"createdBy" db:"created_by"`
	IsPinned    bool      `json:"isPinned" db:"is_pinned"`
	ViewCount   int       `json:"viewCount" db:"view_count"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Creator    *User       `json:"creator,omitempty"`
	Posts      []ForumPost `json:"posts,omitempty"`
	PostsCount int         `json:"postsCount,omitempty" db:"-"`
}

// ForumPost is a post or a reply (ParentPostID set) within a forum
type ForumPost struct {
	ID           int64     `json:"id" db:"id"`
	ForumID      int64     `json:"forumId" db:"forum_id"`
	UserID       int64     `json:"userId" db:"user_id"`
	Content      string    `json:"content" db:"content"`
	ParentPostID *int64    `json:"parentPostId,omitempty" db:"parent_post_id"`
	Upvotes      int       `json:"upvotes" db:"upvotes"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	User    *User       `json:"user,omitempty"`
	Replies []ForumPost `json:"replies,omitempty"`
}
