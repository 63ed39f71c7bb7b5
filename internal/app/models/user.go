package models

import (
	"time"
)

// Role defines the user role type
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleAdmin   Role = "ADMIN"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Email     string    `json:"email" db:"email" example:"alice@example.com"`             // User's email address
	Password  string    `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	Name      string    `json:"name" db:"name" example:"Alice Student"`                   // User's display name
	Role      Role      `json:"role" db:"role" example:"STUDENT"`                         // User's role (STUDENT or ADMIN)
	IsActive  bool      `json:"isActive" db:"is_active" example:"true"`                   // Whether the account may sign in
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2025-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" example:"2025-01-02T15:30:00Z"` // Timestamp when the user was last updated

	// GitHub integration state (nullable until connected)
	GitHubUsername    *string    `json:"githubUsername,omitempty" db:"github_username"`
	GitHubToken       *string    `json:"-" db:"github_token"`
	GitHubConnectedAt *time.Time `json:"githubConnectedAt,omitempty" db:"github_connected_at"`
	LastGitHubSync    *time.Time `json:"lastGithubSync,omitempty" db:"last_github_sync"`
}
