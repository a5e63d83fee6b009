// Package embedding provides embedding backend adapters.
// Clean Architecture: Adapters implementing ports.EmbeddingService.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dwern/portfolio-chat/internal/domain/ports"
)

// GeminiAdapter implements ports.EmbeddingService using the Google
// Generative Language API. The task type distinguishes query embeddings from
// document embeddings; both live in the same vector space.
type GeminiAdapter struct {
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
}

// NewGeminiAdapter creates a new Gemini embedding adapter.
func NewGeminiAdapter(baseURL, model, apiKey string) *GeminiAdapter {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	if model == "" {
		model = "gemini-embedding-001"
	}
	return &GeminiAdapter{
		baseURL: baseURL,
		model:   model,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// geminiContent is a single text payload in the embed API.
type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// geminiEmbedRequest is the embedContent API request.
type geminiEmbedRequest struct {
	Model    string        `json:"model"`
	Content  geminiContent `json:"content"`
	TaskType string        `json:"taskType"`
}

// geminiEmbedResponse is the embedContent API response.
type geminiEmbedResponse struct {
	Embedding geminiValues `json:"embedding"`
}

type geminiValues struct {
	Values []float32 `json:"values"`
}

type geminiBatchRequest struct {
	Requests []geminiEmbedRequest `json:"requests"`
}

type geminiBatchResponse struct {
	Embeddings []geminiValues `json:"embeddings"`
}

func taskTypeValue(task ports.TaskType) string {
	if task == ports.TaskDocument {
		return "RETRIEVAL_DOCUMENT"
	}
	return "RETRIEVAL_QUERY"
}

func (a *GeminiAdapter) embedRequest(text string, task ports.TaskType) geminiEmbedRequest {
	return geminiEmbedRequest{
		Model:    "models/" + a.model,
		Content:  geminiContent{Parts: []geminiPart{{Text: text}}},
		TaskType: taskTypeValue(task),
	}
}

// Embed generates an embedding for a single text.
func (a *GeminiAdapter) Embed(ctx context.Context, text string, task ports.TaskType) ([]float32, error) {
	var embedResp geminiEmbedResponse
	url := fmt.Sprintf("%s/v1beta/models/%s:embedContent", a.baseURL, a.model)
	if err := a.post(ctx, url, a.embedRequest(text, task), &embedResp); err != nil {
		return nil, err
	}
	if len(embedResp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("empty embedding returned")
	}
	return embedResp.Embedding.Values, nil
}

// EmbedBatch generates embeddings for multiple texts in one call.
func (a *GeminiAdapter) EmbedBatch(ctx context.Context, texts []string, task ports.TaskType) ([][]float32, error) {
	batch := geminiBatchRequest{Requests: make([]geminiEmbedRequest, len(texts))}
	for i, text := range texts {
		batch.Requests[i] = a.embedRequest(text, task)
	}

	var batchResp geminiBatchResponse
	url := fmt.Sprintf("%s/v1beta/models/%s:batchEmbedContents", a.baseURL, a.model)
	if err := a.post(ctx, url, batch, &batchResp); err != nil {
		return nil, err
	}
	if len(batchResp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(batchResp.Embeddings))
	}

	embeddings := make([][]float32, len(texts))
	for i, e := range batchResp.Embeddings {
		embeddings[i] = e.Values
	}
	return embeddings, nil
}

func (a *GeminiAdapter) post(ctx context.Context, url string, body, out interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling Gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Gemini returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
