package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// githubModelsBaseURL is the OpenAI-compatible endpoint of GitHub Models.
const githubModelsBaseURL = "https://models.inference.ai.azure.com"

// analysisTemperature keeps extraction output stable across calls.
const analysisTemperature = 0.1

// openAIClient talks to any OpenAI-compatible chat-completion endpoint. The
// github provider is the same wire protocol with a different base URL.
type openAIClient struct {
	client    *openai.Client
	provider  string
	model     string
	maxTokens int
}

func newOpenAIClient(provider, apiKey, model, baseURL string, maxTokens int) *openAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &openAIClient{
		client:    openai.NewClientWithConfig(cfg),
		provider:  provider,
		model:     model,
		maxTokens: maxTokens,
	}
}

func (c *openAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	retryCfg := DefaultRetryConfig()
	resp, err := retryWithBackoff(ctx, retryCfg, func() (openai.ChatCompletionResponse, error) {
		return c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.model,
			Temperature: analysisTemperature,
			MaxTokens:   c.maxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
		})
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrProviderFailed, c.provider, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptyResponse, c.provider)
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *openAIClient) Provider() string { return c.provider }

func (c *openAIClient) Model() string { return c.model }
