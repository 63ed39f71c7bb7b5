package dto

// SubmitApplicationRequest represents a student applying to an internship
type SubmitApplicationRequest struct {
	InternshipID int64  `json:"internshipId" binding:"required"`
	CoverLetter  string `json:"coverLetter,omitempty"`
	ResumeURL    string `json:"resumeUrl,omitempty"`
}

// UpdateApplicationStatusRequest represents a status transition request
type UpdateApplicationStatusRequest struct {
	Status          string  `json:"status" binding:"required,oneof=pending accepted rejected withdrawn"`
	RejectionReason *string `json:"rejectionReason,omitempty"`
}
