package dto

// CreateChatRoomRequest represents chat room creation data
type CreateChatRoomRequest struct {
	Name         string  `json:"name" binding:"required"`
	Type         string  `json:"type" binding:"required,oneof=group internship direct"`
	InternshipID *int64  `json:"internshipId,omitempty"`
	Participants []int64 `json:"participants,omitempty"`
}

// SendChatMessageRequest represents a message posted to a room
type SendChatMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// AddParticipantRequest represents adding a user to a room
type AddParticipantRequest struct {
	UserID int64  `json:"userId" binding:"required"`
	Role   string `json:"role,omitempty" binding:"omitempty,oneof=member admin"`
}

// SendDirectMessageRequest represents a private message between users
type SendDirectMessageRequest struct {
	ReceiverID int64  `json:"receiverId" binding:"required"`
	Subject    string `json:"subject,omitempty"`
	Body       string `json:"body" binding:"required"`
}
