package usecases

import (
	"context"
	"fmt"

	"github.com/dwern/portfolio-chat/internal/domain/entities"
	"github.com/dwern/portfolio-chat/internal/domain/ports"
)

// IndexUseCase populates the document store from portfolio records. Documents
// are embedded with the document task type so they share a vector space with
// query-mode search embeddings.
type IndexUseCase struct {
	embedder ports.EmbeddingService
	store    ports.DocumentStore
}

// NewIndexUseCase creates an IndexUseCase with injected dependencies.
func NewIndexUseCase(embedder ports.EmbeddingService, store ports.DocumentStore) *IndexUseCase {
	return &IndexUseCase{
		embedder: embedder,
		store:    store,
	}
}

// Index embeds and stores the given documents.
func (uc *IndexUseCase) Index(ctx context.Context, docs []entities.Document) error {
	if len(docs) == 0 {
		return nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}

	embeddings, err := uc.embedder.EmbedBatch(ctx, texts, ports.TaskDocument)
	if err != nil {
		return fmt.Errorf("embedding documents: %w", err)
	}

	for i := range docs {
		docs[i].Embedding = embeddings[i]
	}

	return uc.store.Store(ctx, docs)
}

// Reindex replaces the entire store contents with the given documents.
func (uc *IndexUseCase) Reindex(ctx context.Context, docs []entities.Document) error {
	if err := uc.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing store: %w", err)
	}
	return uc.Index(ctx, docs)
}
