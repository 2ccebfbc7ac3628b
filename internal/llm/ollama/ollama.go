// Package ollama backs the journal reviewer with a local Ollama
// server, for setups that keep trade data off third-party APIs.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/flipdeck/flipdeck/internal/llm"
)

const (
	defaultEndpoint = "http://localhost:11434"
	defaultModel    = "llama3.1"
)

// Provider talks to the Ollama /api/chat endpoint.
type Provider struct {
	endpoint string
	model    string
	client   *http.Client
}

// New builds the provider. Local inference on a review digest can take
// a while, so the client timeout is generous.
func New(endpoint, model string) (*Provider, error) {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if model == "" {
		model = defaultModel
	}
	return &Provider{
		endpoint: endpoint,
		model:    model,
		client:   &http.Client{Timeout: 5 * time.Minute},
	}, nil
}

func (p *Provider) Name() string { return "ollama" }

// Wire types for /api/chat, non-streaming.
type chatPayload struct {
	Model    string       `json:"model"`
	Messages []chatTurn   `json:"messages"`
	Stream   bool         `json:"stream"`
	Options  modelOptions `json:"options,omitempty"`
	Format   string       `json:"format,omitempty"`
}

type chatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type modelOptions struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

type chatReply struct {
	Message         chatTurn `json:"message"`
	Done            bool     `json:"done"`
	DoneReason      string   `json:"done_reason,omitempty"`
	PromptEvalCount int      `json:"prompt_eval_count,omitempty"`
	EvalCount       int      `json:"eval_count,omitempty"`
}

// Chat sends the review exchange. JSONMode maps onto Ollama's "json"
// format switch.
func (p *Provider) Chat(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	payload := chatPayload{
		Model:    p.model,
		Messages: toTurns(req),
		Stream:   false,
		Options: modelOptions{
			NumPredict:  tokenBudget(req.MaxTokens),
			Temperature: req.Temperature,
		},
	}
	if req.JSONMode {
		payload.Format = "json"
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ollama: marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", p.endpoint+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ollama: creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama: server returned status %d", resp.StatusCode)
	}

	var reply chatReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("ollama: decoding response: %w", err)
	}

	return &llm.ChatResponse{
		Content: reply.Message.Content,
		Usage: llm.Usage{
			InputTokens:  reply.PromptEvalCount,
			OutputTokens: reply.EvalCount,
		},
		FinishReason: reply.DoneReason,
	}, nil
}

// toTurns renders the system prompt as the leading turn.
func toTurns(req llm.ChatRequest) []chatTurn {
	out := make([]chatTurn, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		out = append(out, chatTurn{Role: "system", Content: req.SystemPrompt})
	}
	for _, m := range req.Messages {
		out = append(out, chatTurn{Role: m.Role, Content: m.Content})
	}
	return out
}

func tokenBudget(requested int) int {
	if requested <= 0 {
		return 1024
	}
	return requested
}
