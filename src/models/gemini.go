package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ---------------------------- Google Gemini ----------------------------------

type GeminiLLM struct {
	Client *genai.Client
	Model  string
}

func NewGeminiLLM(ctx context.Context, model, apiKey string) (*GeminiLLM, error) {
	if apiKey == "" {
		return nil, errors.New("missing GOOGLE_API_KEY or GOOGLE_AI_STUDIO_KEY")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini init: %w", err)
	}
	return &GeminiLLM{Client: client, Model: model}, nil
}

func (g *GeminiLLM) Generate(ctx context.Context, messages []ChatMessage) (string, error) {
	model := g.Client.GenerativeModel(g.Model)

	system, prompt := flattenMessages(messages)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return geminiText(resp)
}

func (g *GeminiLLM) GenerateStructured(ctx context.Context, messages []ChatMessage, schema Schema, out any) error {
	model := g.Client.GenerativeModel(g.Model)
	model.GenerationConfig.ResponseMIMEType = "application/json"

	system, prompt := flattenMessages(messages)
	system += "\n\nRespond with a single JSON object conforming to this JSON Schema:\n" + string(schema.Raw)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return fmt.Errorf("gemini generate: %w", err)
	}
	text, err := geminiText(resp)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(extractJSON(text)), out)
}

func geminiText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini: empty response")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String(), nil
}

var _ Agent = (*GeminiLLM)(nil)
