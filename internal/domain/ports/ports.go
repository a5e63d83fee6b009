// Package ports defines interfaces for external dependencies.
// Clean Architecture: These are the boundaries - usecases depend on these abstractions,
// not concrete implementations. Adapters implement these interfaces.
package ports

import (
	"context"

	"github.com/dwern/portfolio-chat/internal/domain/entities"
)

// TaskType selects the embedding mode. Queries and documents must be embedded
// in compatible vector spaces, so the store is populated in document mode and
// searched with query-mode vectors.
type TaskType string

const (
	TaskQuery    TaskType = "query"
	TaskDocument TaskType = "document"
)

// EmbeddingService generates vector embeddings for text.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string, task TaskType) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	EmbedBatch(ctx context.Context, texts []string, task TaskType) ([][]float32, error)
}

// LLMService generates text responses from a language model.
type LLMService interface {
	// Generate produces a complete response for the given prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// GenerateStream produces a streaming response. Tokens are delivered in
	// order on the returned channel, which is closed when generation finishes.
	// Cancelling the context abandons the generation.
	GenerateStream(ctx context.Context, prompt string) (<-chan StreamToken, error)
}

// StreamToken represents a single chunk in a streaming LLM response.
type StreamToken struct {
	Content string
	Done    bool
	Error   error
}

// DocumentStore persists and queries embedded portfolio content.
type DocumentStore interface {
	// Store saves documents with their embeddings.
	Store(ctx context.Context, docs []entities.Document) error

	// Search returns the topK documents most similar to the query embedding.
	// A minScore of 0 means no relevance floor: the K nearest are returned
	// unconditionally.
	Search(ctx context.Context, embedding []float32, topK int, minScore float64) ([]entities.RetrievedDocument, error)

	// Delete removes a document by ID.
	Delete(ctx context.Context, id string) error

	// Clear removes all documents from the store.
	Clear(ctx context.Context) error
}

// ContentWatcher monitors the portfolio content directory for changes.
type ContentWatcher interface {
	// Watch starts monitoring the directory and emits events.
	Watch(ctx context.Context, dir string) (<-chan ContentEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// ContentEvent represents a content file change.
type ContentEvent struct {
	Path      string
	Operation ContentOperation
}

// ContentOperation is the type of content change.
type ContentOperation int

const (
	ContentCreated ContentOperation = iota
	ContentModified
	ContentDeleted
)
