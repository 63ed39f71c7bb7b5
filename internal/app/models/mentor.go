package models

import "time"

// SessionStatus defines the lifecycle state of a mentoring session
type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// IsValidSessionStatus reports whether s is a known session status
func IsValidSessionStatus(s SessionStatus) bool {
	switch s {
	case SessionScheduled, SessionCompleted, SessionCancelled:
		return true
	}
	return false
}

// Mentor wraps a user account with mentoring metadata.
// Rating is the arithmetic mean of all review ratings, recomputed on every
// review insert, never maintained incrementally.
type Mentor struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Expertise string    `json:"expertise" db:"expertise"`
	Bio       string    `json:"bio" db:"bio"`
	Rating    float64   `json:"rating" db:"rating"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	User          *User `json:"user,omitempty"`
	SessionsCount int   `json:"sessionsCount,omitempty" db:"-"`
	ReviewsCount  int   `json:"reviewsCount,omitempty" db:"-"`
}

// MentorSession is a scheduled meeting between a student and a mentor
type MentorSession struct {
	ID          int64         `json:"id" db:"id"`
	StudentID   int64         `json:"studentId" db:"student_id"`
	MentorID    int64         `json:"mentorId" db:"mentor_id"`
	ScheduledAt time.Time     `json:"scheduledAt" db:"scheduled_at"`
	MeetingLink string        `json:"meetingLink" db:"meeting_link"`
	Status      SessionStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"`
	Mentor  *Mentor  `json:"mentor,omitempty"`
}

// MentorReview is an append-only rating in [1,5] plus free text
type MentorReview struct {
	ID        int64     `json:"id" db:"id"`
	MentorID  int64     `json:"mentorId" db:"mentor_id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comments  string    `json:"comments" db:"comments"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"`
}

// Credit holds one row per student with a monotonically non-decreasing
// earned-credits counter. Rows are created lazily on first read or award.
type Credit struct {
	ID            int64     `json:"id" db:"id"`
	StudentID     int64     `json:"studentId" db:"student_id"`
	CreditsEarned int       `json:"creditsEarned" db:"credits_earned"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}
