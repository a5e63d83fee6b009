// Package docstore provides document store adapters.
// Clean Architecture: Adapters implementing ports.DocumentStore.
package docstore

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/dwern/portfolio-chat/internal/domain/entities"
)

// InMemoryStore keeps embedded documents in process memory. Default backend
// for local development; the content is small enough that brute-force cosine
// search is fine.
type InMemoryStore struct {
	mu   sync.RWMutex
	docs map[string]entities.Document
}

// NewInMemoryStore creates a new in-memory document store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		docs: make(map[string]entities.Document),
	}
}

// Store saves documents with their embeddings.
func (s *InMemoryStore) Store(ctx context.Context, docs []entities.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range docs {
		s.docs[doc.ID] = doc
	}
	return nil
}

// Search finds the documents most similar to the query embedding. With a
// minScore of 0 the topK nearest are returned unconditionally, however
// loosely related - the policy engine is the relevance filter in this design.
func (s *InMemoryStore) Search(ctx context.Context, embedding []float32, topK int, minScore float64) ([]entities.RetrievedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []entities.RetrievedDocument
	for _, doc := range s.docs {
		score := cosineSimilarity(embedding, doc.Embedding)
		if minScore > 0 && score < minScore {
			continue
		}
		results = append(results, entities.RetrievedDocument{Document: doc, Score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Delete removes a document by ID.
func (s *InMemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, id)
	return nil
}

// Clear removes all documents from the store.
func (s *InMemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs = make(map[string]entities.Document)
	return nil
}

// cosineSimilarity calculates cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
