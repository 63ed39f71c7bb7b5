package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/edusphere/edusphere/internal/pkg/logger"
)

// Client wraps the Gemini API for text generation tasks
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewClient initializes a Gemini client with the given API key and model
func NewClient(ctx context.Context, apiKey, modelName string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("llm api key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("error initializing llm client: %w", err)
	}

	model := client.GenerativeModel(modelName)

	// Low temperature for deterministic structured output
	temp := float32(0.2)
	model.Temperature = &temp

	return &Client{
		client: client,
		model:  model,
	}, nil
}

// Close releases the underlying API client
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Generate sends a prompt and returns the raw model response.
// Transient failures are retried with exponential backoff.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	backoff := []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
	}

	var lastErr error
	for i, wait := range backoff {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			lastErr = err
			if !isRateLimitError(err) {
				logger.Warn().Err(err).Int("attempt", i+1).Msg("LLM request failed")
			}
			time.Sleep(wait)
			continue
		}

		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
			len(resp.Candidates[0].Content.Parts) == 0 {
			lastErr = fmt.Errorf("no response candidates")
			time.Sleep(wait)
			continue
		}

		text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
		if !ok {
			return "", fmt.Errorf("unexpected response type: %T", resp.Candidates[0].Content.Parts[0])
		}

		return string(text), nil
	}

	return "", fmt.Errorf("all attempts failed, last error: %w", lastErr)
}

// ExtractCertification asks the model to recover certification fields from
// document text and parses the structured response
func (c *Client) ExtractCertification(ctx context.Context, documentText string) (*CertificationFields, error) {
	raw, err := c.Generate(ctx, BuildCertificationPrompt(documentText))
	if err != nil {
		return nil, err
	}

	jsonBody, err := ExtractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("error extracting json from response: %w", err)
	}

	var fields CertificationFields
	if err := json.Unmarshal([]byte(jsonBody), &fields); err != nil {
		return nil, fmt.Errorf("error parsing certification fields: %w", err)
	}

	if strings.TrimSpace(fields.Title) == "" {
		return nil, fmt.Errorf("model returned no certification title")
	}

	return &fields, nil
}

// GenerateCV produces CV content for a student in the requested format
func (c *Client) GenerateCV(ctx context.Context, input CVInput) (string, error) {
	raw, err := c.Generate(ctx, BuildCVPrompt(input))
	if err != nil {
		return "", err
	}

	return stripCodeFence(raw), nil
}

func isRateLimitError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate limit") || strings.Contains(msg, "quota exceeded")
}
