// Package llm wraps the OpenAI-compatible completion client.
package llm

import (
	"context"

	ai "github.com/sashabaranov/go-openai"

	"hackforge/toolagent/internal/config"
)

// CompletionClient is the slice of the OpenAI client surface the agent
// uses. *ai.Client satisfies it; tests substitute a scripted mock.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, req ai.ChatCompletionRequest) (ai.ChatCompletionResponse, error)
}

// NewClient builds a client for the configured endpoint. An empty URL
// means the stock OpenAI API.
func NewClient(api *config.APIConfig) CompletionClient {
	cfg := ai.DefaultConfig(api.Key)
	if api.URL != "" {
		cfg.BaseURL = api.URL
	}
	return ai.NewClientWithConfig(cfg)
}
