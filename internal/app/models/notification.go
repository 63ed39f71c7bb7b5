package models

import "time"

// Notification is a per-user inbox entry. Mutation is limited to marking read.
type Notification struct {
	ID        int64      `json:"id" db:"id"`
	UserID    int64      `json:"userId" db:"user_id"`
	Title     string     `json:"title" db:"title"`
	Message   string     `json:"message" db:"message"`
	IsRead    bool       `json:"isRead" db:"is_read"`
	ReadAt    *time.Time `json:"readAt,omitempty" db:"read_at"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
}

// Announcement is a broadcast entry. Visible while active and unexpired,
// listed by priority descending then recency.
type Announcement struct {
	ID             int64      `json:"id" db:"id"`
	PostedBy       int64      `json:"postedBy" db:"posted_by"`
	Title          string     `json:"title" db:"title"`
	Content        string     `json:"content" db:"content"`
	TargetAudience string     `json:"targetAudience" db:"target_audience"`
	Priority       int        `json:"priority" db:"priority"`
	IsActive       bool       `json:"isActive" db:"is_active"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty" db:"expires_at"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`

	// Poster is populated on list queries
	Poster *User `json:"poster,omitempty"`
}
