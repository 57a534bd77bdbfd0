package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/config"
	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/ports"
)

// OpenAIClient implements ports.Completer on the OpenAI chat completion
// API: one prompt in, one text completion out, no streaming.
type OpenAIClient struct {
	client    openai.Client
	model     string
	maxTokens int
}

var _ ports.Completer = (*OpenAIClient)(nil)

// NewOpenAIClient builds a client from configuration.
func NewOpenAIClient(cfg config.OpenAIConfig) *OpenAIClient {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2500
	}
	return &OpenAIClient{
		client:    openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     cfg.Model,
		maxTokens: maxTokens,
	}
}

// Complete sends the prompt as a single user message and returns the
// trimmed completion text. An HTTP 429 from the provider is reported as
// ports.ErrCompletionRateLimited so the pipeline can halt the run.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	response, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		MaxTokens: openai.Int(int64(c.maxTokens)),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
			return "", ports.ErrCompletionRateLimited
		}
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
