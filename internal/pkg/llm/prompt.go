package llm

import (
	"fmt"
	"strings"
)

// CertificationFields holds the structured fields the model recovers
// from a certificate document
type CertificationFields struct {
	Title        string `json:"title"`
	Issuer       string `json:"issuer"`
	IssueDate    string `json:"issueDate"`
	CredentialID string `json:"credentialId"`
}

// CVInput carries the student data rendered into a CV
type CVInput struct {
	Name           string
	Email          string
	Department     string
	Semester       int
	CGPA           float64
	Bio            string
	Skills         []string
	Interests      []string
	Certifications []string
	Projects       []string
	TemplateName   string
	Format         string
}

// BuildCertificationPrompt builds the extraction prompt for certificate text
func BuildCertificationPrompt(documentText string) string {
	var sb strings.Builder
	sb.WriteString("Extract the certification details from the following certificate text.\n")
	sb.WriteString("Respond with ONLY a JSON object with these keys:\n")
	sb.WriteString(`{"title": "", "issuer": "", "issueDate": "YYYY-MM-DD", "credentialId": ""}` + "\n")
	sb.WriteString("Use an empty string for any field you cannot determine. Do not add commentary.\n\n")
	sb.WriteString("Certificate text:\n")
	sb.WriteString(documentText)
	return sb.String()
}

// BuildCVPrompt builds the CV generation prompt for a student
func BuildCVPrompt(input CVInput) string {
	format := input.Format
	if format == "" {
		format = "markdown"
	}
	template := input.TemplateName
	if template == "" {
		template = "modern"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a professional CV in %s format using a %s layout for the following student.\n", format, template)
	sb.WriteString("Output only the CV content, no commentary.\n\n")
	fmt.Fprintf(&sb, "Name: %s\n", input.Name)
	fmt.Fprintf(&sb, "Email: %s\n", input.Email)
	fmt.Fprintf(&sb, "Department: %s\n", input.Department)
	fmt.Fprintf(&sb, "Semester: %d\n", input.Semester)
	fmt.Fprintf(&sb, "CGPA: %.2f\n", input.CGPA)
	if input.Bio != "" {
		fmt.Fprintf(&sb, "About: %s\n", input.Bio)
	}
	if len(input.Skills) > 0 {
		fmt.Fprintf(&sb, "Skills: %s\n", strings.Join(input.Skills, ", "))
	}
	if len(input.Interests) > 0 {
		fmt.Fprintf(&sb, "Interests: %s\n", strings.Join(input.Interests, ", "))
	}
	if len(input.Certifications) > 0 {
		sb.WriteString("Certifications:\n")
		for _, cert := range input.Certifications {
			fmt.Fprintf(&sb, "- %s\n", cert)
		}
	}
	if len(input.Projects) > 0 {
		sb.WriteString("Projects:\n")
		for _, project := range input.Projects {
			fmt.Fprintf(&sb, "- %s\n", project)
		}
	}
	return sb.String()
}

// ExtractJSON pulls the first JSON object out of a model response,
// tolerating code fences and surrounding prose
func ExtractJSON(raw string) (string, error) {
	cleaned := stripCodeFence(raw)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no json object found in response")
	}

	return cleaned[start : end+1], nil
}

func stripCodeFence(raw string) string {
	cleaned := strings.TrimSpace(raw)
	for _, fence := range []string{"```json", "```JSON", "```markdown", "```html", "```"} {
		if strings.HasPrefix(cleaned, fence) {
			cleaned = strings.TrimPrefix(cleaned, fence)
			if idx := strings.LastIndex(cleaned, "```"); idx != -1 {
				cleaned = cleaned[:idx]
			}
			break
		}
	}
	return strings.TrimSpace(cleaned)
}
