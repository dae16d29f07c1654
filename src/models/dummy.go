package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DummyLLM is a lightweight model implementation useful for local runs and
// tests without API calls. When Scripted responses are set they are consumed
// in order by both Generate and GenerateStructured; otherwise Generate echoes
// the last non-empty line of the final message.
type DummyLLM struct {
	Prefix   string
	Scripted []string

	next int
}

func NewDummyLLM(prefix string) *DummyLLM {
	if strings.TrimSpace(prefix) == "" {
		prefix = "Dummy response:"
	}
	return &DummyLLM{Prefix: prefix}
}

func (d *DummyLLM) Generate(_ context.Context, messages []ChatMessage) (string, error) {
	if s, ok := d.pop(); ok {
		return s, nil
	}

	var last string
	if len(messages) > 0 {
		lines := strings.Split(messages[len(messages)-1].Content, "\n")
		for i := len(lines) - 1; i >= 0; i-- {
			if candidate := strings.TrimSpace(lines[i]); candidate != "" {
				last = candidate
				break
			}
		}
	}
	if last == "" {
		last = "<empty prompt>"
	}
	return fmt.Sprintf("%s %s", d.Prefix, last), nil
}

func (d *DummyLLM) GenerateStructured(_ context.Context, _ []ChatMessage, _ Schema, out any) error {
	s, ok := d.pop()
	if !ok {
		return errors.New("dummy: no scripted structured response")
	}
	return json.Unmarshal([]byte(extractJSON(s)), out)
}

func (d *DummyLLM) pop() (string, bool) {
	if d.next >= len(d.Scripted) {
		return "", false
	}
	s := d.Scripted[d.next]
	d.next++
	return s, true
}

var _ Agent = (*DummyLLM)(nil)
