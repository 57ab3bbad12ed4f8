package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/sashabaranov/go-openai"

	"github.com/sanchez0623/clswatch/pkg/config"
)

// OpenAIProvider talks to an OpenAI-compatible chat completion endpoint.
// Covers both the hosted OpenAI API and gateway-style deployments that
// expose the same wire protocol.
type OpenAIProvider struct {
	client *openai.Client
	cfg    config.AIConfig
}

// NewOpenAIProvider creates the provider from configuration
func NewOpenAIProvider(cfg config.AIConfig) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}
}

// Name returns the provider tag
func (p *OpenAIProvider) Name() string { return "openai" }

// Available reports whether the provider is configured well enough to call
func (p *OpenAIProvider) Available() bool {
	return p.cfg.APIKey != "" && p.cfg.Model != ""
}

// Analyze sends the prompt and returns the raw text response. Transient
// failures are retried with backoff before giving up.
func (p *OpenAIProvider) Analyze(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       p.cfg.Model,
		Temperature: float32(p.cfg.Temperature),
		MaxTokens:   p.cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	var content string
	retrier := repeater.NewBackoff(3, 500*time.Millisecond, repeater.WithMaxDelay(5*time.Second))
	err := retrier.Do(ctx, func() error {
		resp, err := p.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return fmt.Errorf("chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("no choices in response")
		}
		content = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	return content, nil
}

// systemPrompt frames every analysis request, shared by all providers
const systemPrompt = "你是一位专业的财经分析师，擅长分析新闻对A股市场的影响。请严格按照用户要求的格式回复。"
