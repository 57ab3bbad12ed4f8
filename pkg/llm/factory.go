package llm

import (
	"fmt"

	"github.com/sanchez0623/clswatch/pkg/config"
)

// NewProvider selects a concrete backend from the configured provider tag.
// The variant set is closed, an unknown tag is a configuration error.
func NewProvider(cfg config.AIConfig) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIProvider(cfg), nil
	case "claude":
		return NewClaudeProvider(cfg), nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q, supported: openai, claude", cfg.Provider)
	}
}
