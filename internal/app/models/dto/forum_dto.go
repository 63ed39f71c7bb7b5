package dto

// CreateForumRequest represents a discussion forum creation
type CreateForumRequest struct {
	Topic       string `json:"topic" binding:"required"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

// CreateForumPostRequest represents a post or reply in a forum
type CreateForumPostRequest struct {
	Content      string `json:"content" binding:"required"`
	ParentPostID *int64 `json:"parentPostId,omitempty"`
}
