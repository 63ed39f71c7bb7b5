package dto

// CreateNotificationRequest represents a notification dispatch request
type CreateNotificationRequest struct {
	UserID  int64  `json:"userId" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// CreateAnnouncementRequest represents a platform announcement
type CreateAnnouncementRequest struct {
	Title          string `json:"title" binding:"required"`
	Content        string `json:"content" binding:"required"`
	TargetAudience string `json:"targetAudience,omitempty"`
	Priority       int    `json:"priority,omitempty" binding:"omitempty,min=0,max=10"`
	ExpiresAt      string `json:"expiresAt,omitempty"`
}

// UpdateAnnouncementRequest represents a partial announcement update
type UpdateAnnouncementRequest struct {
	Title          *string `json:"title,omitempty"`
	Content        *string `json:"content,omitempty"`
	TargetAudience *string `json:"targetAudience,omitempty"`
	Priority       *int    `json:"priority,omitempty" binding:"omitempty,min=0,max=10"`
	IsActive       *bool   `json:"isActive,omitempty"`
	ExpiresAt      *string `json:"expiresAt,omitempty"`
}
