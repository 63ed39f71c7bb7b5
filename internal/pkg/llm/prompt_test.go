package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCertificationPrompt(t *testing.T) {
	prompt := BuildCertificationPrompt("AWS Certified Developer awarded to Jane Doe")

	assert.Contains(t, prompt, "JSON object")
	assert.Contains(t, prompt, `"credentialId"`)
	assert.Contains(t, prompt, "AWS Certified Developer awarded to Jane Doe")
}

func TestBuildCVPrompt(t *testing.T) {
	prompt := BuildCVPrompt(CVInput{
		Name:           "Jane Doe",
		Email:          "jane@edusphere.app",
		Department:     "Computer Science",
		Semester:       6,
		CGPA:           3.85,
		Bio:            "Backend developer",
		Skills:         []string{"Go", "PostgreSQL"},
		Certifications: []string{"AWS Certified Developer (Amazon, 2025)"},
		Projects:       []string{"edusphere (Go)"},
		TemplateName:   "classic",
		Format:         "html",
	})

	assert.Contains(t, prompt, "html format")
	assert.Contains(t, prompt, "classic layout")
	assert.Contains(t, prompt, "Name: Jane Doe")
	assert.Contains(t, prompt, "CGPA: 3.85")
	assert.Contains(t, prompt, "Skills: Go, PostgreSQL")
	assert.Contains(t, prompt, "- AWS Certified Developer (Amazon, 2025)")
	assert.Contains(t, prompt, "- edusphere (Go)")
	assert.NotContains(t, prompt, "Interests:")
}

func TestBuildCVPromptDefaults(t *testing.T) {
	prompt := BuildCVPrompt(CVInput{Name: "Jane Doe"})

	assert.Contains(t, prompt, "markdown format")
	assert.Contains(t, prompt, "modern layout")
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			"bare object",
			`{"title": "Cert"}`,
			`{"title": "Cert"}`,
		},
		{
			"fenced json",
			"```json\n{\"title\": \"Cert\"}\n```",
			`{"title": "Cert"}`,
		},
		{
			"plain fence",
			"```\n{\"title\": \"Cert\"}\n```",
			`{"title": "Cert"}`,
		},
		{
			"surrounding prose",
			"Here is the result:\n{\"title\": \"Cert\"}\nHope that helps!",
			`{"title": "Cert"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSONNoObject(t *testing.T) {
	_, err := ExtractJSON("the model refused to answer")
	assert.Error(t, err)

	_, err = ExtractJSON("")
	assert.Error(t, err)
}

func TestExtractJSONUnmarshalsCleanly(t *testing.T) {
	raw := "```json\n{\"title\": \"AWS Certified Developer\", \"issuer\": \"Amazon\", \"issueDate\": \"2025-03-01\", \"credentialId\": \"ABC-123\"}\n```"

	extracted, err := ExtractJSON(raw)
	require.NoError(t, err)

	var fields CertificationFields
	require.NoError(t, json.Unmarshal([]byte(extracted), &fields))
	assert.Equal(t, "AWS Certified Developer", fields.Title)
	assert.Equal(t, "Amazon", fields.Issuer)
	assert.Equal(t, "2025-03-01", fields.IssueDate)
	assert.Equal(t, "ABC-123", fields.CredentialID)
}
