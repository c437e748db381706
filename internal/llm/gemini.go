package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini calls the Google Gemini API
type Gemini struct {
	client    *genai.Client
	maxTokens int
}

// NewGemini creates a new Gemini API client.
func NewGemini(ctx context.Context, apiKey string, maxTokens int) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Gemini{client: client, maxTokens: maxTokens}, nil
}

// Complete runs one generation against the requested model.
func (g *Gemini) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	model := g.client.GenerativeModel(req.Model)
	parts := configureModel(model, req, g.maxTokens)

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", classify(ctx, err)
	}
	return responseText(resp), nil
}

// configureModel applies the request settings and returns the user turns as parts.
func configureModel(model *genai.GenerativeModel, req CompletionRequest, fallbackTokens int) []genai.Part {
	system, turns := split(req.Messages)

	model.SetTemperature(float32(req.Temperature))
	if n := maxTokens(req, fallbackTokens); n > 0 {
		model.SetMaxOutputTokens(int32(n))
	}
	if req.JSONResponse {
		model.ResponseMIMEType = "application/json"
	}
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	parts := make([]genai.Part, len(turns))
	for i, m := range turns {
		parts[i] = genai.Text(m.Content)
	}
	return parts
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}

// Close closes the underlying Gemini client.
func (g *Gemini) Close() error {
	return g.client.Close()
}
