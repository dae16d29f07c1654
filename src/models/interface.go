package models

import (
	"context"
	"encoding/json"
)

// Role tags one message of model input.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one role-tagged turn of model input.
type ChatMessage struct {
	Role    Role
	Content string
}

// Schema names a JSON Schema that a structured completion must conform to.
type Schema struct {
	Name string
	Raw  json.RawMessage
}

// Agent is a single language-model provider.
type Agent interface {
	// Generate returns a free-text completion for the message list.
	Generate(ctx context.Context, messages []ChatMessage) (string, error)

	// GenerateStructured asks the model for a value conforming to schema and
	// unmarshals the result into out. Callers still own validating that the
	// returned value is internally consistent.
	GenerateStructured(ctx context.Context, messages []ChatMessage, schema Schema, out any) error
}
