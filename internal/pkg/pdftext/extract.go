// Package pdftext extracts plain text and certificate fields from PDF documents.
package pdftext

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

// ExtractText reads the plain text content of a PDF file
func ExtractText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("error opening pdf: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("error reading pdf text: %w", err)
	}
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("error buffering pdf text: %w", err)
	}

	return buf.String(), nil
}

var (
	issuerPattern = regexp.MustCompile(`(?i)(?:issued by|offered by|provided by|authorized by)[:\s]+([A-Za-z0-9&.,' -]+)`)
	credPattern   = regexp.MustCompile(`(?i)(?:credential|certificate|verification)\s*(?:id|no|number)[:\s#]*([A-Za-z0-9-]+)`)
	datePatterns  = []*regexp.Regexp{
		regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`),
		regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`),
		regexp.MustCompile(`(?i)\b([A-Za-z]+ \d{1,2},? \d{4})\b`),
	}
)

// ExtractIssuer finds the issuing organization in certificate text.
// Returns an empty string when no issuer phrase is present.
func ExtractIssuer(text string) string {
	match := issuerPattern.FindStringSubmatch(text)
	if len(match) < 2 {
		return ""
	}
	issuer := strings.TrimSpace(match[1])
	// Cut trailing sentence fragments
	if idx := strings.IndexAny(issuer, ".\n"); idx != -1 {
		issuer = strings.TrimSpace(issuer[:idx])
	}
	return issuer
}

// ExtractCredentialID finds a credential identifier in certificate text
func ExtractCredentialID(text string) string {
	match := credPattern.FindStringSubmatch(text)
	if len(match) < 2 {
		return ""
	}
	return strings.TrimSpace(match[1])
}

// ExtractIssueDate finds the first recognizable date in certificate text
func ExtractIssueDate(text string) *time.Time {
	layouts := map[*regexp.Regexp][]string{
		datePatterns[0]: {"2006-01-02"},
		datePatterns[1]: {"1/2/2006", "01/02/2006"},
		datePatterns[2]: {"January 2, 2006", "January 2 2006", "Jan 2, 2006", "Jan 2 2006"},
	}

	for _, pattern := range datePatterns {
		match := pattern.FindStringSubmatch(text)
		if len(match) < 2 {
			continue
		}
		for _, layout := range layouts[pattern] {
			if t, err := time.Parse(layout, match[1]); err == nil {
				return &t
			}
		}
	}
	return nil
}
