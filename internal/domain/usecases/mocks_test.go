package usecases

import (
	"context"
	"errors"

	"github.com/dwern/portfolio-chat/internal/domain/entities"
	"github.com/dwern/portfolio-chat/internal/domain/ports"
)

// mockEmbedder implements ports.EmbeddingService for testing.
type mockEmbedder struct {
	calls    int
	lastTask ports.TaskType
	vector   []float32
	err      error
}

func (m *mockEmbedder) Embed(ctx context.Context, text string, task ports.TaskType) ([]float32, error) {
	m.calls++
	m.lastTask = task
	if m.err != nil {
		return nil, m.err
	}
	if m.vector != nil {
		return m.vector, nil
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string, task ports.TaskType) ([][]float32, error) {
	m.lastTask = task
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		m.calls++
		out[i] = []float32{float32(i) + 0.5}
	}
	return out, nil
}

// mockStore implements ports.DocumentStore for testing.
type mockStore struct {
	docs         []entities.RetrievedDocument
	stored       []entities.Document
	cleared      bool
	searchCalls  int
	lastTopK     int
	lastMinScore float64
	err          error
}

func (m *mockStore) Store(ctx context.Context, docs []entities.Document) error {
	if m.err != nil {
		return m.err
	}
	m.stored = append(m.stored, docs...)
	return nil
}

func (m *mockStore) Search(ctx context.Context, embedding []float32, topK int, minScore float64) ([]entities.RetrievedDocument, error) {
	m.searchCalls++
	m.lastTopK = topK
	m.lastMinScore = minScore
	if m.err != nil {
		return nil, m.err
	}
	return m.docs, nil
}

func (m *mockStore) Delete(ctx context.Context, id string) error { return m.err }

func (m *mockStore) Clear(ctx context.Context) error {
	m.cleared = true
	m.stored = nil
	return m.err
}

// mockLLM implements ports.LLMService for testing.
type mockLLM struct {
	chunks     []string
	err        error
	lastPrompt string
}

func (m *mockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.lastPrompt = prompt
	if m.err != nil {
		return "", m.err
	}
	var full string
	for _, c := range m.chunks {
		full += c
	}
	return full, nil
}

func (m *mockLLM) GenerateStream(ctx context.Context, prompt string) (<-chan ports.StreamToken, error) {
	m.lastPrompt = prompt
	if m.err != nil {
		return nil, m.err
	}
	ch := make(chan ports.StreamToken, 1)
	go func() {
		defer close(ch)
		for i, c := range m.chunks {
			ch <- ports.StreamToken{Content: c, Done: i == len(m.chunks)-1}
		}
	}()
	return ch, nil
}

var errBackend = errors.New("backend unavailable")
