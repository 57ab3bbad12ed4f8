package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/sanchez0623/clswatch/pkg/config"
)

// ClaudeProvider talks to the Anthropic messages API
type ClaudeProvider struct {
	client anthropic.Client
	cfg    config.AIConfig
}

// NewClaudeProvider creates the provider from configuration
func NewClaudeProvider(cfg config.AIConfig) *ClaudeProvider {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}
	if cfg.Model == "" {
		cfg.Model = "claude-sonnet-4-20250514"
	}
	return &ClaudeProvider{
		client: anthropic.NewClient(opts...),
		cfg:    cfg,
	}
}

// Name returns the provider tag
func (p *ClaudeProvider) Name() string { return "claude" }

// Available reports whether the provider is configured well enough to call
func (p *ClaudeProvider) Available() bool {
	return p.cfg.APIKey != ""
}

// Analyze sends the prompt and returns the concatenated text blocks of the
// response
func (p *ClaudeProvider) Analyze(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.cfg.Model),
		MaxTokens: int64(p.cfg.MaxTokens),
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if p.cfg.Temperature > 0 {
		params.Temperature = anthropic.Float(p.cfg.Temperature)
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("claude request failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text content in claude response")
	}
	return sb.String(), nil
}
