package llm

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// CompatibleProvider implements Provider for OpenAI-compatible APIs such as
// OpenRouter or Ollama.
type CompatibleProvider struct {
	client    openai.Client
	model     string
	maxTokens int64
}

// NewCompatibleProvider creates a new OpenAI-compatible provider.
func NewCompatibleProvider(apiKey, baseURL, model string, maxTokens int64) *CompatibleProvider {
	return &CompatibleProvider{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
			option.WithMaxRetries(0),
		),
		model:     model,
		maxTokens: maxTokens,
	}
}

// Name returns the provider name.
func (p *CompatibleProvider) Name() string {
	return ProviderCompatible
}

// Complete generates a response without streaming. Reasoning is disabled
// for providers that would otherwise enable it by default.
func (p *CompatibleProvider) Complete(ctx context.Context, systemPrompt, content string) (string, error) {
	return completeChat(ctx, p.client, chatParams(p.model, p.maxTokens, systemPrompt, content),
		option.WithJSONSet("reasoning", map[string]any{"enabled": false}),
	)
}
