package llm

import (
	"context"
	"log"

	"github.com/sanchez0623/clswatch/pkg/domain"
)

//go:generate moq -out mocks/provider.go -pkg mocks -skip-ensure -fmt goimports . Provider

// Provider is the remote text-analysis capability: given a prompt it returns
// a text response or an error. Available reports readiness without issuing
// an analysis call.
type Provider interface {
	Name() string
	Available() bool
	Analyze(ctx context.Context, prompt string) (string, error)
}

// Engine orchestrates prompt building, the backend call and response parsing,
// degrading to the keyword fallback whenever the backend yields nothing
// usable. It always produces a rating for every item it accepts.
type Engine struct {
	provider Provider
}

// NewEngine creates an analysis engine on top of the given provider. A nil
// provider means fallback-only operation.
func NewEngine(provider Provider) *Engine {
	return &Engine{provider: provider}
}

// Analyze produces the sentiment assessment for one news item. Backend
// unavailability, backend errors, empty responses and parse failures all
// degrade to the fallback scorer instead of surfacing as errors.
func (e *Engine) Analyze(ctx context.Context, item *domain.NewsItem) *domain.AnalysisResult {
	if e.provider == nil || !e.provider.Available() {
		log.Printf("[DEBUG] backend not available, using fallback for item %s", item.ID)
		return FallbackScore(item)
	}

	prompt := BuildPrompt(item)
	response, err := e.provider.Analyze(ctx, prompt)
	if err != nil {
		log.Printf("[WARN] %s analysis failed for item %s: %v", e.provider.Name(), item.ID, err)
		return FallbackScore(item)
	}
	if response == "" {
		log.Printf("[WARN] %s returned empty response for item %s", e.provider.Name(), item.ID)
		return FallbackScore(item)
	}

	result, err := ParseResponse(item.ID, response)
	if err != nil {
		log.Printf("[WARN] failed to parse %s response for item %s: %v", e.provider.Name(), item.ID, err)
		return FallbackScore(item)
	}
	return result
}
