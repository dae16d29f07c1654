package models

import (
	"context"
	"strings"
	"testing"

	"github.com/Protocol-Lattice/toolscout/src/config"
)

func TestDummyLLMEchoesLastNonEmptyLine(t *testing.T) {
	llm := NewDummyLLM("")
	resp, err := llm.Generate(context.Background(), []ChatMessage{
		{Role: RoleUser, Content: "first\n\nsecond\n  \nthird"},
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if resp != "Dummy response: third" {
		t.Fatalf("unexpected response: %q", resp)
	}
}

func TestDummyLLMHandlesEmptyPrompt(t *testing.T) {
	llm := NewDummyLLM("Prefix")
	resp, err := llm.Generate(context.Background(), []ChatMessage{{Role: RoleUser, Content: "\n\n"}})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if resp != "Prefix <empty prompt>" {
		t.Fatalf("unexpected response: %q", resp)
	}
}

func TestDummyLLMConsumesScriptInOrder(t *testing.T) {
	llm := NewDummyLLM("")
	llm.Scripted = []string{`{"value":1}`, "plain text"}

	var out struct {
		Value int `json:"value"`
	}
	if err := llm.GenerateStructured(context.Background(), nil, Schema{Name: "test"}, &out); err != nil {
		t.Fatalf("GenerateStructured returned error: %v", err)
	}
	if out.Value != 1 {
		t.Fatalf("value = %d", out.Value)
	}

	resp, err := llm.Generate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if resp != "plain text" {
		t.Fatalf("unexpected scripted response: %q", resp)
	}
}

func TestDummyLLMStructuredWithoutScriptErrors(t *testing.T) {
	llm := NewDummyLLM("")
	var out map[string]any
	if err := llm.GenerateStructured(context.Background(), nil, Schema{}, &out); err == nil {
		t.Fatalf("expected error without scripted response")
	}
}

func TestNewLLMProviderErrorsOnUnknownProvider(t *testing.T) {
	if _, err := NewLLMProvider(context.Background(), "unknown", "model", config.Settings{}); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestNewLLMProviderReturnsDummy(t *testing.T) {
	agent, err := NewLLMProvider(context.Background(), "dummy", "", config.Settings{})
	if err != nil {
		t.Fatalf("NewLLMProvider returned error: %v", err)
	}
	if _, ok := agent.(*DummyLLM); !ok {
		t.Fatalf("expected DummyLLM, got %T", agent)
	}
}

func TestExtractJSONStripsFencesAndProse(t *testing.T) {
	cases := map[string]string{
		`{"a":1}`:                              `{"a":1}`,
		"```json\n{\"a\":1}\n```":              `{"a":1}`,
		"```\n{\"a\":1}\n```":                  `{"a":1}`,
		"Here you go:\n{\"a\":1}\nHope it helps": `{"a":1}`,
	}
	for in, want := range cases {
		if got := extractJSON(in); got != want {
			t.Fatalf("extractJSON(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFlattenMessagesSeparatesSystemFromTranscript(t *testing.T) {
	system, prompt := flattenMessages([]ChatMessage{
		{Role: RoleSystem, Content: "be helpful"},
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "hello"},
		{Role: RoleSystem, Content: "[Tool Result] found things"},
	})
	if !strings.Contains(system, "be helpful") || !strings.Contains(system, "[Tool Result] found things") {
		t.Fatalf("system = %q", system)
	}
	if !strings.Contains(prompt, "User: hi") || !strings.Contains(prompt, "Assistant: hello") {
		t.Fatalf("prompt = %q", prompt)
	}
	if strings.Contains(prompt, "be helpful") {
		t.Fatalf("system content leaked into transcript: %q", prompt)
	}
}
