// Package factory maps the configured reviewer backend onto a concrete
// chat provider.
package factory

import (
	"fmt"

	"github.com/flipdeck/flipdeck/internal/config"
	"github.com/flipdeck/flipdeck/internal/llm"
	"github.com/flipdeck/flipdeck/internal/llm/claude"
	"github.com/flipdeck/flipdeck/internal/llm/ollama"
	"github.com/flipdeck/flipdeck/internal/llm/openai"
)

// New picks the provider named by cfg.Provider. The review command
// surfaces the error directly, so messages name the offending value.
func New(cfg config.LLMConfig) (llm.Provider, error) {
	switch cfg.Provider {
	case "claude":
		return claude.New(cfg.Claude.APIKey, cfg.Claude.Model)
	case "openai":
		return openai.New(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	case "ollama":
		return ollama.New(cfg.Ollama.Endpoint, cfg.Ollama.Model)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.Provider)
	}
}
