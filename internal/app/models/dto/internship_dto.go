package dto

// CreateInternshipRequest represents internship posting creation data
type CreateInternshipRequest struct {
	Title               string   `json:"title" binding:"required"`
	Description         string   `json:"description" binding:"required"`
	CompanyName         string   `json:"companyName" binding:"required"`
	Location            string   `json:"location" binding:"required"`
	Type                string   `json:"type" binding:"required,oneof=onsite remote hybrid"`
	Duration            int      `json:"duration" binding:"required,gt=0"`
	Stipend             int      `json:"stipend" binding:"gte=0"`
	RequiredSkills      []string `json:"requiredSkills,omitempty"`
	StartDate           string   `json:"startDate,omitempty"`
	EndDate             string   `json:"endDate,omitempty"`
	ApplicationDeadline string   `json:"applicationDeadline,omitempty"`
	PostedBy            string   `json:"postedBy,omitempty"`
}

// UpdateInternshipRequest represents a partial internship update
type UpdateInternshipRequest struct {
	Title               *string  `json:"title,omitempty"`
	Description         *string  `json:"description,omitempty"`
	CompanyName         *string  `json:"companyName,omitempty"`
	Location            *string  `json:"location,omitempty"`
	Type                *string  `json:"type,omitempty" binding:"omitempty,oneof=onsite remote hybrid"`
	Duration            *int     `json:"duration,omitempty" binding:"omitempty,gt=0"`
	Stipend             *int     `json:"stipend,omitempty" binding:"omitempty,gte=0"`
	RequiredSkills      []string `json:"requiredSkills,omitempty"`
	StartDate           *string  `json:"startDate,omitempty"`
	EndDate             *string  `json:"endDate,omitempty"`
	ApplicationDeadline *string  `json:"applicationDeadline,omitempty"`
	IsActive            *bool    `json:"isActive,omitempty"`
}
