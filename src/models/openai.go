package models

import (
	"context"
	"encoding/json"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// GitHubModelsBaseURL is the OpenAI-compatible inference endpoint used by the
// default provider. Any other OpenAI-compatible endpoint works too.
const GitHubModelsBaseURL = "https://models.github.ai/inference"

type OpenAILLM struct {
	Client *openai.Client
	Model  string
}

// NewOpenAILLM builds an adapter for an OpenAI-compatible endpoint. An empty
// baseURL targets api.openai.com.
func NewOpenAILLM(model, apiKey, baseURL string) *OpenAILLM {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAILLM{Client: openai.NewClientWithConfig(cfg), Model: model}
}

func (o *OpenAILLM) Generate(ctx context.Context, messages []ChatMessage) (string, error) {
	resp, err := o.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    o.Model,
		Messages: toOpenAIMessages(messages),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from model")
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAILLM) GenerateStructured(ctx context.Context, messages []ChatMessage, schema Schema, out any) error {
	resp, err := o.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    o.Model,
		Messages: toOpenAIMessages(messages),
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schema.Name,
				Schema: schema.Raw,
			},
		},
	})
	if err != nil {
		return err
	}
	if len(resp.Choices) == 0 {
		return errors.New("no response from model")
	}
	return json.Unmarshal([]byte(resp.Choices[0].Message.Content), out)
}

func toOpenAIMessages(messages []ChatMessage) []openai.ChatCompletionMessage {
	converted := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		switch m.Role {
		case RoleSystem:
			role = openai.ChatMessageRoleSystem
		case RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		}
		converted = append(converted, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return converted
}

var _ Agent = (*OpenAILLM)(nil)
