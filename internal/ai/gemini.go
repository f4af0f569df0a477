package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Compile-time interface check.
var _ AIProvider = (*GeminiProvider)(nil)

// GeminiProvider implements AIProvider using the Google Gemini API.
type GeminiProvider struct {
	client    *genai.Client
	model     string
	maxTokens int
}

// NewGeminiProvider creates a GeminiProvider authenticated with apiKey. The
// caller must Close it to release the underlying client.
func NewGeminiProvider(ctx context.Context, apiKey, model string, maxTokens int) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}
	return &GeminiProvider{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Complete generates content for the prompt pair and returns the text of the
// first candidate that has any.
func (p *GeminiProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	// Model handles carry per-call settings; build one per request.
	m := p.client.GenerativeModel(p.model)
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	m.ResponseMIMEType = "application/json"
	m.SetMaxOutputTokens(int32(p.maxTokens))

	slog.Debug("calling Gemini API", "model", p.model)

	resp, err := m.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		return "", fmt.Errorf("gemini: generating content: %w", err)
	}

	return responseText(resp)
}

// responseText returns the concatenated text parts of the first candidate
// that has any text.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp != nil {
		for _, cand := range resp.Candidates {
			if cand == nil || cand.Content == nil {
				continue
			}
			var b strings.Builder
			for _, part := range cand.Content.Parts {
				if text, ok := part.(genai.Text); ok {
					b.WriteString(string(text))
				}
			}
			if b.Len() > 0 {
				return b.String(), nil
			}
		}
	}

	return "", fmt.Errorf("gemini: empty response: no text candidates returned")
}

// Close releases the underlying Gemini client.
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}
