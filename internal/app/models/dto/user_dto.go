package dto

// UpdateUserRequest represents an account detail update
type UpdateUserRequest struct {
	Name string `json:"name" binding:"required"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}
