package claude

import (
	"testing"

	"github.com/flipdeck/flipdeck/internal/llm"
)

var _ llm.Provider = (*Provider)(nil)

func TestNew_EmptyKeyRejected(t *testing.T) {
	if _, err := New("", defaultModel); err == nil {
		t.Error("expected error for empty api key")
	}
}

func TestNew_ModelDefaulting(t *testing.T) {
	p, err := New("key", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.model != defaultModel {
		t.Errorf("model = %q, want %q", p.model, defaultModel)
	}

	p, _ = New("key", "claude-opus-4")
	if p.model != "claude-opus-4" {
		t.Errorf("explicit model not kept, got %q", p.model)
	}
}

func TestTokenBudget(t *testing.T) {
	if got := tokenBudget(0); got != 1024 {
		t.Errorf("tokenBudget(0) = %d, want 1024", got)
	}
	if got := tokenBudget(256); got != 256 {
		t.Errorf("tokenBudget(256) = %d, want 256", got)
	}
}

func TestToMessageParams_RoleSplit(t *testing.T) {
	params := toMessageParams([]llm.Message{
		{Role: "user", Content: "review my last flip"},
		{Role: "assistant", Content: "looks disciplined"},
	})
	if len(params) != 2 {
		t.Fatalf("params = %d, want 2", len(params))
	}
	if params[0].Role != "user" || params[1].Role != "assistant" {
		t.Errorf("roles = %s/%s", params[0].Role, params[1].Role)
	}
}
