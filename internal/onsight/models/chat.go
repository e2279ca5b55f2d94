package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ChatMessage is one prior turn of a conversation.
type ChatMessage struct {
	Timestamp time.Time `json:"timestamp"`
	UserName  string    `json:"userName"`
	Content   string    `json:"content"`
}

// Variable is a named chat variable. Variables form an ordered list; the same
// key may appear more than once.
type Variable struct {
	Key   string
	Value string
}

// MarshalJSON encodes the variable as a two-element array.
func (v Variable) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{v.Key, v.Value})
}

// UnmarshalJSON accepts ["k","v"] or {"Key":"k","Value":"v"}.
func (v *Variable) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty chat variable")
	}
	switch data[0] {
	case '[':
		var pair []string
		if err := json.Unmarshal(data, &pair); err != nil {
			return fmt.Errorf("chat variable: %w", err)
		}
		if len(pair) != 2 {
			return fmt.Errorf("chat variable: want 2 elements, got %d", len(pair))
		}
		v.Key, v.Value = pair[0], pair[1]
		return nil
	case '{':
		var obj struct {
			Key   string `json:"Key"`
			Value string `json:"Value"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("chat variable: %w", err)
		}
		v.Key, v.Value = obj.Key, obj.Value
		return nil
	default:
		return fmt.Errorf("chat variable: unexpected %q", data[0])
	}
}

// ChatRequest is the body of POST {idaEndpoint}.
type ChatRequest struct {
	Variables   []Variable    `json:"variables"`
	ChatHistory []ChatMessage `json:"chatHistory"`
}

// ChatResponse is the assistant's reply and the updated variables.
type ChatResponse struct {
	Value     string     `json:"value"`
	Variables []Variable `json:"variables"`
}

// ParseChatRequest decodes a chat input parameter. Missing lists decode as empty.
func ParseChatRequest(data []byte) (*ChatRequest, error) {
	var req ChatRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	req.normalize()
	return &req, nil
}

func (r *ChatRequest) normalize() {
	if r.Variables == nil {
		r.Variables = []Variable{}
	}
	if r.ChatHistory == nil {
		r.ChatHistory = []ChatMessage{}
	}
}

// Lookup returns the value of the last variable named key.
func Lookup(vars []Variable, key string) (string, bool) {
	for i := len(vars) - 1; i >= 0; i-- {
		if vars[i].Key == key {
			return vars[i].Value, true
		}
	}
	return "", false
}
