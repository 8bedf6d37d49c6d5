// Package gemini implements the inference-service boundary on the Google
// GenAI SDK.
package gemini

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

const (
	defaultModel   = "gemini-2.5-flash"
	requestTimeout = 120 * time.Second

	// Low temperature keeps status extraction close to deterministic.
	temperature     = 0.3
	maxOutputTokens = 1024
)

// Client generates text with the Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini-backed generator. An empty model selects the
// default.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// Generate sends the system instruction and user prompt and returns the raw
// reply text. The request is bounded by a fixed timeout; the caller maps
// any error to its fallback path.
func (c *Client) Generate(ctx context.Context, system, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
			Temperature:       genai.Ptr[float32](temperature),
			MaxOutputTokens:   maxOutputTokens,
		},
	)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return resp.Text(), nil
}
