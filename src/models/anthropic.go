package models

import (
	"context"
	"encoding/json"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicLLM implements the Agent interface using Anthropic's Messages API.
type AnthropicLLM struct {
	Client    *anthropic.Client
	Model     string
	MaxTokens int
}

func NewAnthropicLLM(model, apiKey string) *AnthropicLLM {
	cl := anthropic.NewClient(
		anthropicopt.WithAPIKey(apiKey),
	)
	return &AnthropicLLM{
		Client:    &cl,
		Model:     model,
		MaxTokens: 1024,
	}
}

func (a *AnthropicLLM) Generate(ctx context.Context, messages []ChatMessage) (string, error) {
	return a.generate(ctx, messages, "")
}

// GenerateStructured has no first-class schema support on this API, so the
// schema is enforced by instruction and the reply parsed fence-tolerantly.
func (a *AnthropicLLM) GenerateStructured(ctx context.Context, messages []ChatMessage, schema Schema, out any) error {
	instruction := "Respond with ONLY a JSON object conforming to this JSON Schema, no prose:\n" + string(schema.Raw)
	text, err := a.generate(ctx, messages, instruction)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(extractJSON(text)), out)
}

func (a *AnthropicLLM) generate(ctx context.Context, messages []ChatMessage, extraSystem string) (string, error) {
	var system strings.Builder
	var turns []anthropic.MessageParam
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			if system.Len() > 0 {
				system.WriteString("\n\n")
			}
			system.WriteString(m.Content)
		case RoleAssistant:
			turns = append(turns, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			turns = append(turns, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	if extraSystem != "" {
		if system.Len() > 0 {
			system.WriteString("\n\n")
		}
		system.WriteString(extraSystem)
	}
	if len(turns) == 0 {
		turns = append(turns, anthropic.NewUserMessage(anthropic.NewTextBlock("Proceed.")))
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.Model),
		MaxTokens: int64(a.MaxTokens),
		Messages:  turns,
	}
	if system.Len() > 0 {
		params.System = []anthropic.TextBlockParam{{Text: system.String()}}
	}

	msg, err := a.Client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, cb := range msg.Content {
		if tb, ok := cb.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(tb.Text)
		}
	}
	return b.String(), nil
}

var _ Agent = (*AnthropicLLM)(nil)
