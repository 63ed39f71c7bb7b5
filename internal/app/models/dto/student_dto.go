package dto

// CreateStudentRequest represents student profile creation data
type CreateStudentRequest struct {
	UserID      int64   `json:"userId" binding:"required,gt=0"`
	RollNumber  string  `json:"rollNumber" binding:"required"`
	Department  string  `json:"department" binding:"required"`
	Semester    int     `json:"semester" binding:"required,gte=1,lte=12"`
	CGPA        float64 `json:"cgpa" binding:"gte=0,lte=10"`
	DateOfBirth string  `json:"dateOfBirth,omitempty"` // RFC 3339 date
	Phone       string  `json:"phone,omitempty"`
}

// UpdateStudentRequest represents a partial student update
type UpdateStudentRequest struct {
	Department  *string  `json:"department,omitempty"`
	Semester    *int     `json:"semester,omitempty" binding:"omitempty,gte=1,lte=12"`
	CGPA        *float64 `json:"cgpa,omitempty" binding:"omitempty,gte=0,lte=10"`
	DateOfBirth *string  `json:"dateOfBirth,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
}

// UpsertProfileRequest represents the detailed profile create-or-update payload
type UpsertProfileRequest struct {
	Bio       string   `json:"bio,omitempty"`
	Gender    string   `json:"gender,omitempty"`
	DOB       string   `json:"dob,omitempty"`
	AvatarURL string   `json:"avatarUrl,omitempty"`
	GitHub    string   `json:"github,omitempty"`
	LinkedIn  string   `json:"linkedin,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	Interests []string `json:"interests,omitempty"`
	ResumeURL string   `json:"resumeUrl,omitempty"`
}
