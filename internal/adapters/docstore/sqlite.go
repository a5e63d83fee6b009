package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/dwern/portfolio-chat/internal/domain/entities"
)

// SQLiteStore persists embedded documents in a local SQLite file so a
// re-index is not needed on every restart. Similarity search is brute force
// over all rows, which is plenty for a portfolio-sized corpus.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteStore opens (and if needed creates) the store at the given path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = "./data/documents.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		content TEXT NOT NULL,
		doc_type TEXT,
		year INTEGER,
		month TEXT,
		embedding BLOB NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_doc_type ON documents(doc_type);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Store saves documents with their embeddings.
func (s *SQLiteStore) Store(ctx context.Context, docs []entities.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO documents (id, content, doc_type, year, month, embedding)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, doc := range docs {
		embeddingJSON, err := json.Marshal(doc.Embedding)
		if err != nil {
			return fmt.Errorf("encoding embedding: %w", err)
		}

		_, err = stmt.ExecContext(ctx, doc.ID, doc.Content, doc.Type, doc.Year, doc.Month, embeddingJSON)
		if err != nil {
			return fmt.Errorf("inserting document: %w", err)
		}
	}

	return tx.Commit()
}

// Search loads all rows and ranks them by cosine similarity.
func (s *SQLiteStore) Search(ctx context.Context, embedding []float32, topK int, minScore float64) ([]entities.RetrievedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content, doc_type, year, month, embedding
		FROM documents
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var results []entities.RetrievedDocument
	for rows.Next() {
		var doc entities.Document
		var embeddingJSON []byte

		if err := rows.Scan(&doc.ID, &doc.Content, &doc.Type, &doc.Year, &doc.Month, &embeddingJSON); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if err := json.Unmarshal(embeddingJSON, &doc.Embedding); err != nil {
			continue // Skip corrupted embeddings
		}

		score := cosineSimilarity(embedding, doc.Embedding)
		if minScore > 0 && score < minScore {
			continue
		}
		results = append(results, entities.RetrievedDocument{Document: doc, Score: score})
	}
	if err := rows.Err(); err != nil {
		return nil, err
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
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	return err
}

// Clear removes all documents from the store.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM documents")
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
