package dto

// RegisterMentorRequest represents mentor registration data
type RegisterMentorRequest struct {
	UserID    int64  `json:"userId" binding:"required"`
	Expertise string `json:"expertise" binding:"required"`
	Bio       string `json:"bio,omitempty"`
}

// BookSessionRequest represents a mentorship session booking
type BookSessionRequest struct {
	MentorID    int64  `json:"mentorId" binding:"required"`
	ScheduledAt string `json:"scheduledAt" binding:"required"`
	MeetingLink string `json:"meetingLink,omitempty"`
}

// UpdateSessionStatusRequest represents a session status change
type UpdateSessionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=scheduled completed cancelled"`
}

// AddReviewRequest represents a mentor rating submission
type AddReviewRequest struct {
	MentorID int64  `json:"mentorId" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comments string `json:"comments,omitempty"`
}

// AddCreditsRequest represents a credit award to a student
type AddCreditsRequest struct {
	StudentID int64  `json:"studentId" binding:"required"`
	Amount    int    `json:"amount" binding:"required,gt=0"`
	Reason    string `json:"reason,omitempty"`
}
