package models

import "time"

// ChatRoom groups participants around a topic or an internship
type ChatRoom struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Type         string    `json:"type" db:"type"`
	InternshipID *int64    `json:"internshipId,omitempty" db:"internship_id"`
	CreatedBy    int64     `json:"createdBy" db:"created_by"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Participants []ChatParticipant `json:"participants,omitempty"`
	LastMessage  *ChatMessage      `json:"lastMessage,omitempty"`
}

// ChatParticipant is a user's membership in a chat room
type ChatParticipant struct {
	ID         int64      `json:"id" db:"id"`
	ChatRoomID int64      `json:"chatRoomId" db:"chat_room_id"`
	UserID     int64      `json:"userId" db:"user_id"`
	Role       string     `json:"role" db:"role"` // admin or member
	LastReadAt *time.Time `json:"lastReadAt,omitempty" db:"last_read_at"`

	User *User `json:"user,omitempty"`
}

// ChatMessage is a single message in a chat room
type ChatMessage struct {
	ID         int64     `json:"id" db:"id"`
	ChatRoomID int64     `json:"chatRoomId" db:"chat_room_id"`
	SenderID   int64     `json:"senderId" db:"sender_id"`
	Message    string    `json:"message" db:"message"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`

	Sender *User `json:"sender,omitempty"`
}

// DirectMessage is a one-to-one message with a subject line
type DirectMessage struct {
	ID         int64      `json:"id" db:"id"`
	SenderID   int64      `json:"senderId" db:"sender_id"`
	ReceiverID int64      `json:"receiverId" db:"receiver_id"`
	Subject    string     `json:"subject" db:"subject"`
	Body       string     `json:"body" db:"body"`
	IsRead     bool       `json:"isRead" db:"is_read"`
	DeletedAt  *time.Time `json:"-" db:"deleted_at"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`

	Sender   *User `json:"sender,omitempty"`
	Receiver *User `json:"receiver,omitempty"`
}
