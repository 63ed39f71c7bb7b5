package pdftext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractIssuer(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			"issued by phrase",
			"This certificate was issued by Amazon Web Services. Congratulations!",
			"Amazon Web Services",
		},
		{
			"offered by phrase",
			"Course offered by Coursera\nCompleted on March 1, 2025",
			"Coursera",
		},
		{
			"no issuer",
			"Certificate of Completion for Jane Doe",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractIssuer(tt.text))
		})
	}
}

func TestExtractCredentialID(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"credential id", "Credential ID: ABC-123-XYZ", "ABC-123-XYZ"},
		{"certificate number", "Certificate No. 998877", "998877"},
		{"verification number with hash", "Verification Number: #A1B2C3", "A1B2C3"},
		{"absent", "Certificate of Completion", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCredentialID(tt.text))
		})
	}
}

func TestExtractIssueDate(t *testing.T) {
	iso := ExtractIssueDate("Issued on 2025-03-01 in recognition of completion")
	require.NotNil(t, iso)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *iso)

	slash := ExtractIssueDate("Date: 3/1/2025")
	require.NotNil(t, slash)
	assert.Equal(t, 2025, slash.Year())
	assert.Equal(t, time.March, slash.Month())

	long := ExtractIssueDate("Awarded on March 1, 2025 by the academy")
	require.NotNil(t, long)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *long)

	assert.Nil(t, ExtractIssueDate("no date in this text"))
}

func TestExtractTextMissingFile(t *testing.T) {
	_, err := ExtractText("/nonexistent/certificate.pdf")
	assert.Error(t, err)
}
