package models

import "time"

// ApplicationStatus defines the lifecycle state of an internship application
type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationWithdrawn ApplicationStatus = "withdrawn"
)

// IsValidApplicationStatus reports whether s is a known application status
func IsValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected, ApplicationWithdrawn:
		return true
	}
	return false
}

// applicationTransitions is the allowed transition table. Accepted, rejected
// and withdrawn are terminal; only a pending application may move.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending:   {ApplicationAccepted, ApplicationRejected, ApplicationWithdrawn},
	ApplicationAccepted:  {},
	ApplicationRejected:  {},
	ApplicationWithdrawn: {},
}

// CanTransition reports whether an application may move from one status to
// another. allowReopenWithdrawn additionally permits withdrawn -> pending,
// which deployments opt into via configuration.
func CanTransition(from, to ApplicationStatus, allowReopenWithdrawn bool) bool {
	if from == to {
		return false
	}

	if allowReopenWithdrawn && from == ApplicationWithdrawn && to == ApplicationPending {
		return true
	}

	for _, allowed := range applicationTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Application links one student to one internship posting.
// The (studentId, internshipId) pair is unique; records are immutable once
// created except for the status and rejection fields.
type Application struct {
	ID              int64             `json:"id" db:"id"`
	StudentID       int64             `json:"studentId" db:"student_id"`
	InternshipID    int64             `json:"internshipId" db:"internship_id"`
	CoverLetter     string            `json:"coverLetter" db:"cover_letter"`
	ResumeURL       string            `json:"resumeUrl" db:"resume_url"`
	Status          ApplicationStatus `json:"status" db:"status"`
	RejectionReason *string           `json:"rejectionReason,omitempty" db:"rejection_reason"`
	AppliedAt       time.Time         `json:"appliedAt" db:"applied_at"`
	ReviewedAt      *time.Time        `json:"reviewedAt,omitempty" db:"reviewed_at"`

	// Relations (populated when needed)
	Student    *Student    `json:"student,omitempty"`
	Internship *Internship `json:"internship,omitempty"`
}
