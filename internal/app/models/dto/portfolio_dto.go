package dto

// CreateCertificationRequest represents manual certification entry
type CreateCertificationRequest struct {
	Title         string `json:"title" binding:"required"`
	Issuer        string `json:"issuer,omitempty"`
	IssueDate     string `json:"issueDate,omitempty"`
	CredentialID  string `json:"credentialId,omitempty"`
	CredentialURL string `json:"credentialUrl,omitempty" binding:"omitempty,url"`
}

// UpdateCertificationRequest represents a partial certification update
type UpdateCertificationRequest struct {
	Title         *string `json:"title,omitempty"`
	Issuer        *string `json:"issuer,omitempty"`
	IssueDate     *string `json:"issueDate,omitempty"`
	CredentialID  *string `json:"credentialId,omitempty"`
	CredentialURL *string `json:"credentialUrl,omitempty" binding:"omitempty,url"`
}

// CertificationExtractionResponse represents fields recovered from a document
type CertificationExtractionResponse struct {
	Title     string `json:"title"`
	Issuer    string `json:"issuer,omitempty"`
	IssueDate string `json:"issueDate,omitempty"`
	CredID    string `json:"credentialId,omitempty"`
	Source    string `json:"source"`
}

// GenerateCVRequest represents CV generation options
type GenerateCVRequest struct {
	TemplateName string `json:"templateName,omitempty" binding:"omitempty,oneof=modern classic minimal"`
	Format       string `json:"format,omitempty" binding:"omitempty,oneof=markdown html"`
}

// CreateProjectRequest represents a manually added portfolio project
type CreateProjectRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description,omitempty"`
	GitHubURL   string   `json:"githubUrl,omitempty" binding:"omitempty,url"`
	LiveURL     string   `json:"liveUrl,omitempty" binding:"omitempty,url"`
	Tags        []string `json:"tags,omitempty"`
}

// ConnectGitHubRequest represents the OAuth callback exchange payload
type ConnectGitHubRequest struct {
	Code string `json:"code" binding:"required"`
}

// GitHubSyncResponse summarizes a portfolio sync run
type GitHubSyncResponse struct {
	Username     string `json:"username"`
	SyncedCount  int    `json:"syncedCount"`
	LastSyncedAt string `json:"lastSyncedAt"`
}
