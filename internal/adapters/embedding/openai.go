package embedding

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/dwern/portfolio-chat/internal/domain/ports"
)

// OpenAIAdapter implements ports.EmbeddingService using the OpenAI API.
// OpenAI embedding models use a single vector space for queries and
// documents, so the task type is accepted but has no effect here.
type OpenAIAdapter struct {
	client *openai.Client
	model  string
}

// NewOpenAIAdapter creates a new OpenAI embedding adapter. baseURL overrides
// the API endpoint for compatible providers and tests.
func NewOpenAIAdapter(baseURL, model, apiKey string) *OpenAIAdapter {
	if model == "" {
		model = string(openai.SmallEmbedding3)
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

// Embed generates an embedding for a single text.
func (a *OpenAIAdapter) Embed(ctx context.Context, text string, task ports.TaskType) ([]float32, error) {
	embeddings, err := a.EmbedBatch(ctx, []string{text}, task)
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

// EmbedBatch generates embeddings for multiple texts in one call.
func (a *OpenAIAdapter) EmbedBatch(ctx context.Context, texts []string, _ ports.TaskType) ([][]float32, error) {
	resp, err := a.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(a.model),
	})
	if err != nil {
		return nil, fmt.Errorf("calling OpenAI embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	embeddings := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		embeddings[i] = d.Embedding
	}
	return embeddings, nil
}
