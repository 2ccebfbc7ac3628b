// Package llm abstracts the chat-completion backends the journal
// reviewer can talk to.
package llm

import "context"

// Provider is a chat-completion backend. Implementations live in the
// subpackages and are selected through the factory.
type Provider interface {
	Name() string
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// ChatRequest carries one review exchange. JSONMode asks the backend
// for a JSON object reply where the backend supports it; callers must
// still tolerate plain text.
type ChatRequest struct {
	SystemPrompt string
	Messages     []Message
	MaxTokens    int
	Temperature  float64
	JSONMode     bool
}

// Message is a single turn, Role "user" or "assistant".
type Message struct {
	Role    string
	Content string
}

// ChatResponse is the backend's reply plus token accounting.
type ChatResponse struct {
	Content      string
	Usage        Usage
	FinishReason string
}

// Usage tracks token consumption per request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}
