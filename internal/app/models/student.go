package models

import "time"

// Student defines the student model based on the 'students' table.
// A student record wraps exactly one user account and is never hard-deleted.
type Student struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	UserID      int64      `json:"userId" db:"user_id" example:"5"`
	RollNumber  string     `json:"rollNumber" db:"roll_number" example:"CS2024001"` // Unique roll number
	Department  string     `json:"department" db:"department" example:"Computer Science"`
	Semester    int        `json:"semester" db:"semester" example:"6"`
	CGPA        float64    `json:"cgpa" db:"cgpa" example:"8.5"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	Phone       string     `json:"phone" db:"phone" example:"+919876543210"`
	Approved    bool       `json:"approved" db:"approved" example:"false"` // Set by admin approval
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	User    *User    `json:"user,omitempty"`
	Profile *Profile `json:"profile,omitempty"`
}

// Profile holds the student's extended profile details
type Profile struct {
	ID        int64      `json:"id" db:"id"`
	StudentID int64      `json:"studentId" db:"student_id"`
	Bio       string     `json:"bio" db:"bio"`
	Gender    string     `json:"gender" db:"gender"`
	DOB       *time.Time `json:"dob,omitempty" db:"dob"`
	AvatarURL string     `json:"avatarUrl" db:"avatar_url"`
	GitHub    string     `json:"github" db:"github"`
	LinkedIn  string     `json:"linkedin" db:"linkedin"`
	Skills    []string   `json:"skills" db:"skills"`       // Stored as JSONB
	Interests []string   `json:"interests" db:"interests"` // Stored as JSONB
	ResumeURL string     `json:"resumeUrl" db:"resume_url"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}
