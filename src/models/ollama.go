package models

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	ollama "github.com/ollama/ollama/api"
)

// ---------------------------- Ollama -----------------------------------------

type OllamaLLM struct {
	Client *ollama.Client
	Model  string
}

func NewOllamaLLM(model, host string) (*OllamaLLM, error) {
	if host == "" {
		host = "http://localhost:11434"
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid OLLAMA_HOST %q: %w", host, err)
	}
	httpClient := &http.Client{Timeout: 120 * time.Second}
	return &OllamaLLM{Client: ollama.NewClient(u, httpClient), Model: model}, nil
}

func (o *OllamaLLM) Generate(ctx context.Context, messages []ChatMessage) (string, error) {
	return o.chat(ctx, messages, nil)
}

func (o *OllamaLLM) GenerateStructured(ctx context.Context, messages []ChatMessage, schema Schema, out any) error {
	// Ollama accepts the JSON Schema itself as the response format.
	text, err := o.chat(ctx, messages, schema.Raw)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(extractJSON(text)), out)
}

func (o *OllamaLLM) chat(ctx context.Context, messages []ChatMessage, format json.RawMessage) (string, error) {
	msgs := make([]ollama.Message, 0, len(messages))
	for _, m := range messages {
		msgs = append(msgs, ollama.Message{Role: string(m.Role), Content: m.Content})
	}

	stream := false
	req := &ollama.ChatRequest{
		Model:    o.Model,
		Messages: msgs,
		Stream:   &stream,
		Format:   format,
	}

	var text strings.Builder
	if err := o.Client.Chat(ctx, req, func(cr ollama.ChatResponse) error {
		text.WriteString(cr.Message.Content)
		return nil
	}); err != nil {
		return "", err
	}
	return text.String(), nil
}

var _ Agent = (*OllamaLLM)(nil)
