package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Client generates text with the Gemini API. It is safe for concurrent use.
type Client struct {
	client *genai.Client
	model  string
}

// New creates a Gemini client for the given API key and model.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// Generate sends the prompt as a single user turn and returns the reply
// text. Callers bound the call with a context deadline; deadline and
// transport failures surface as errors for the caller's fallback policy.
func (c *Client) Generate(ctx context.Context, promptText string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(promptText, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", errors.New("gemini returned an empty response")
	}

	return text, nil
}
