package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/codescout/codescout/internal/config"
)

const (
	anthropicEndpoint   = "https://api.anthropic.com/v1/messages"
	anthropicAPIVersion = "2023-06-01"
)

// anthropicClient calls the Anthropic Messages API directly; the wire format
// differs enough from the OpenAI shape that sharing a client is not worth it.
type anthropicClient struct {
	apiKey     string
	model      string
	maxTokens  int
	httpClient *http.Client
}

func newAnthropicClient(apiKey, model string, maxTokens int) *anthropicClient {
	return &anthropicClient{
		apiKey:    apiKey,
		model:     model,
		maxTokens: maxTokens,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (c *anthropicClient) Complete(ctx context.Context, system, user string) (string, error) {
	retryCfg := DefaultRetryConfig()
	text, err := retryWithBackoff(ctx, retryCfg, func() (string, error) {
		return c.callAPI(ctx, system, user)
	})
	if err != nil {
		return "", fmt.Errorf("%w: anthropic: %v", ErrProviderFailed, err)
	}
	return text, nil
}

func (c *anthropicClient) callAPI(ctx context.Context, system, user string) (string, error) {
	reqBody := map[string]interface{}{
		"model":      c.model,
		"max_tokens": c.maxTokens,
		"system":     system,
		"messages": []map[string]string{
			{"role": "user", "content": user},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicAPIVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("api call: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("api error %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var apiResp struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	for _, block := range apiResp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", ErrEmptyResponse
}

func (c *anthropicClient) Provider() string { return config.ProviderAnthropic }

func (c *anthropicClient) Model() string { return c.model }
