package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/Protocol-Lattice/toolscout/src/config"
)

// NewLLMProvider returns a concrete Agent for the named provider.
func NewLLMProvider(ctx context.Context, provider, model string, settings config.Settings) (Agent, error) {
	switch provider {
	case "openai", "github":
		return NewOpenAILLM(model, settings.GitHubToken, GitHubModelsBaseURL), nil
	case "gemini", "google":
		return NewGeminiLLM(ctx, model, settings.GoogleAPIKey)
	case "anthropic", "claude":
		return NewAnthropicLLM(model, settings.AnthropicAPIKey), nil
	case "ollama":
		return NewOllamaLLM(model, settings.OllamaHost)
	case "dummy":
		return NewDummyLLM(""), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}

// flattenMessages folds a role-tagged message list into a system instruction
// and a single transcript prompt, for providers that take prompt-shaped input.
func flattenMessages(messages []ChatMessage) (system, prompt string) {
	var sys, conv strings.Builder
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			if sys.Len() > 0 {
				sys.WriteString("\n\n")
			}
			sys.WriteString(m.Content)
		case RoleAssistant:
			conv.WriteString("Assistant: ")
			conv.WriteString(m.Content)
			conv.WriteString("\n")
		default:
			conv.WriteString("User: ")
			conv.WriteString(m.Content)
			conv.WriteString("\n")
		}
	}
	return sys.String(), conv.String()
}

// extractJSON strips markdown fences and surrounding prose from a reply that
// is supposed to be a single JSON object.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
