package models

import "time"

// InternshipType defines where an internship takes place
type InternshipType string

const (
	InternshipOnsite InternshipType = "onsite"
	InternshipRemote InternshipType = "remote"
	InternshipHybrid InternshipType = "hybrid"
)

// IsValidInternshipType reports whether t is a known internship type
func IsValidInternshipType(t InternshipType) bool {
	switch t {
	case InternshipOnsite, InternshipRemote, InternshipHybrid:
		return true
	}
	return false
}

// Internship represents an internship posting.
// Postings are soft-deleted via IsActive, never physically removed.
type Internship struct {
	ID                  int64          `json:"id" db:"id"`
	Title               string         `json:"title" db:"title"`
	Description         string         `json:"description" db:"description"`
	CompanyName         string         `json:"companyName" db:"company_name"`
	Location            string         `json:"location" db:"location"`
	Type                InternshipType `json:"type" db:"type"`
	Duration            int            `json:"duration" db:"duration"` // Weeks
	Stipend             int            `json:"stipend" db:"stipend"`
	RequiredSkills      []string       `json:"requiredSkills" db:"required_skills"` // Stored as JSONB
	StartDate           *time.Time     `json:"startDate,omitempty" db:"start_date"`
	EndDate             *time.Time     `json:"endDate,omitempty" db:"end_date"`
	ApplicationDeadline *time.Time     `json:"applicationDeadline,omitempty" db:"application_deadline"`
	PostedBy            string         `json:"postedBy" db:"posted_by"`
	IsActive            bool           `json:"isActive" db:"is_active"`
	CreatedAt           time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time      `json:"updatedAt" db:"updated_at"`

	// ApplicationsCount is populated on list queries
	ApplicationsCount int `json:"applicationsCount,omitempty" db:"-"`
}
