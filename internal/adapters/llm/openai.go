package llm

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"github.com/dwern/portfolio-chat/internal/domain/ports"
)

// OpenAIAdapter implements ports.LLMService using the OpenAI chat API.
type OpenAIAdapter struct {
	client *openai.Client
	model  string
}

// NewOpenAIAdapter creates a new OpenAI generation adapter. baseURL overrides
// the API endpoint for compatible providers and tests.
func NewOpenAIAdapter(baseURL, model, apiKey string) *OpenAIAdapter {
	if model == "" {
		model = openai.GPT4oMini
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIAdapter{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func chatRequest(model, prompt string, stream bool) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Stream: stream,
	}
}

// Generate produces a complete response for the given prompt.
func (a *OpenAIAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, chatRequest(a.model, prompt, false))
	if err != nil {
		return "", fmt.Errorf("calling OpenAI: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateStream produces a streaming response; one token per delta, in
// order, channel closed on completion.
func (a *OpenAIAdapter) GenerateStream(ctx context.Context, prompt string) (<-chan ports.StreamToken, error) {
	stream, err := a.client.CreateChatCompletionStream(ctx, chatRequest(a.model, prompt, true))
	if err != nil {
		return nil, fmt.Errorf("calling OpenAI: %w", err)
	}

	ch := make(chan ports.StreamToken, 1)

	go func() {
		defer close(ch)
		defer stream.Close()

		// Terminal sends are guarded too: once the caller stops draining,
		// any bare send can park this goroutine past the stream's lifetime.
		send := func(token ports.StreamToken) bool {
			select {
			case ch <- token:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				send(ports.StreamToken{Done: true})
				return
			}
			if err != nil {
				send(ports.StreamToken{Done: true, Error: err})
				return
			}
			if len(resp.Choices) == 0 {
				continue
			}
			if !send(ports.StreamToken{Content: resp.Choices[0].Delta.Content}) {
				return
			}
		}
	}()

	return ch, nil
}
