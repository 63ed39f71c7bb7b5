package models

import "time"

// CertificationSource records how a certification's fields were captured
type CertificationSource string

const (
	CertSourceManual CertificationSource = "manual"
	CertSourceAI     CertificationSource = "ai"
)

// Certification is an uploaded certificate belonging to a student
type Certification struct {
	ID            int64               `json:"id" db:"id"`
	StudentID     int64               `json:"studentId" db:"student_id"`
	Title         string              `json:"title" db:"title"`
	Issuer        *string             `json:"issuer,omitempty" db:"issuer"`
	IssueDate     *time.Time          `json:"issueDate,omitempty" db:"issue_date"`
	CredentialID  *string             `json:"credentialId,omitempty" db:"credential_id"`
	CredentialURL *string             `json:"credentialUrl,omitempty" db:"credential_url"`
	Source        CertificationSource `json:"source" db:"source"`
	DocumentURL   string              `json:"documentUrl" db:"document_url"`
	CreatedAt     time.Time           `json:"createdAt" db:"created_at"`
}

// CVGeneration records one generated CV document
type CVGeneration struct {
	ID           int64     `json:"id" db:"id"`
	StudentID    int64     `json:"studentId" db:"student_id"`
	TemplateName string    `json:"templateName" db:"template_name"`
	FileURL      string    `json:"fileUrl" db:"file_url"`
	Format       string    `json:"format" db:"format"`
	GeneratedAt  time.Time `json:"generatedAt" db:"generated_at"`
}

// PortfolioProject is a showcased project, either entered manually or synced
// from a GitHub repository (GitHubRepoID set and unique).
type PortfolioProject struct {
	ID           int64      `json:"id" db:"id"`
	StudentID    int64      `json:"studentId" db:"student_id"`
	Title        string     `json:"title" db:"title"`
	Description  string     `json:"description" db:"description"`
	GitHubURL    string     `json:"githubUrl" db:"github_url"`
	LiveURL      string     `json:"liveUrl" db:"live_url"`
	Tags         []string   `json:"tags" db:"tags"` // Stored as JSONB
	Source       string     `json:"source" db:"source"`
	GitHubRepoID *string    `json:"githubRepoId,omitempty" db:"github_repo_id"`
	Stars        int        `json:"stars" db:"stars"`
	Forks        int        `json:"forks" db:"forks"`
	Language     string     `json:"language" db:"language"`
	LastSyncedAt *time.Time `json:"lastSyncedAt,omitempty" db:"last_synced_at"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
}
