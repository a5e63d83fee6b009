package docstore

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dwern/portfolio-chat/internal/domain/entities"
)

// PostgresStore implements ports.DocumentStore on Postgres with the pgvector
// extension. This mirrors the production setup where an external indexing job
// populates the documents table; search uses cosine distance server-side.
type PostgresStore struct {
	db *gorm.DB
}

// documentRow is the scan target for search queries.
type documentRow struct {
	ID      string
	Content string
	DocType string
	Year    int
	Month   string
	Score   float64
}

// NewPostgresStore connects to Postgres and ensures the schema exists.
// dims is the embedding dimensionality of the configured model.
func NewPostgresStore(dsn string, dims int) (*PostgresStore, error) {
	if dims <= 0 {
		dims = 3072
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return nil, fmt.Errorf("enabling pgvector: %w", err)
	}
	schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS documents (
			id text PRIMARY KEY,
			content text NOT NULL,
			doc_type text,
			year int DEFAULT 0,
			month text DEFAULT '',
			embedding vector(%d) NOT NULL
		)`, dims)
	if err := db.Exec(schema).Error; err != nil {
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Store upserts documents with their embeddings.
func (s *PostgresStore) Store(ctx context.Context, docs []entities.Document) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, doc := range docs {
			err := tx.Exec(`
				INSERT INTO documents (id, content, doc_type, year, month, embedding)
				VALUES (?, ?, ?, ?, ?, ?::vector)
				ON CONFLICT (id) DO UPDATE SET
					content = EXCLUDED.content,
					doc_type = EXCLUDED.doc_type,
					year = EXCLUDED.year,
					month = EXCLUDED.month,
					embedding = EXCLUDED.embedding
			`, doc.ID, doc.Content, doc.Type, doc.Year, doc.Month, vectorLiteral(doc.Embedding)).Error
			if err != nil {
				return fmt.Errorf("upserting document %s: %w", doc.ID, err)
			}
		}
		return nil
	})
}

// Search ranks by cosine similarity in the database and returns the topK
// nearest. minScore of 0 applies no floor.
func (s *PostgresStore) Search(ctx context.Context, embedding []float32, topK int, minScore float64) ([]entities.RetrievedDocument, error) {
	lit := vectorLiteral(embedding)

	query := `
		SELECT id, content, doc_type, year, month,
		       1 - (embedding <=> ?::vector) AS score
		FROM documents`
	args := []interface{}{lit}
	if minScore > 0 {
		query += ` WHERE 1 - (embedding <=> ?::vector) >= ?`
		args = append(args, lit, minScore)
	}
	query += ` ORDER BY embedding <=> ?::vector LIMIT ?`
	args = append(args, lit, topK)

	var rows []documentRow
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("searching documents: %w", err)
	}

	results := make([]entities.RetrievedDocument, len(rows))
	for i, row := range rows {
		results[i] = entities.RetrievedDocument{
			Document: entities.Document{
				ID:      row.ID,
				Content: row.Content,
				Type:    row.DocType,
				Year:    row.Year,
				Month:   row.Month,
			},
			Score: row.Score,
		}
	}
	return results, nil
}

// Delete removes a document by ID.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Exec("DELETE FROM documents WHERE id = ?", id).Error
}

// Clear removes all documents from the store.
func (s *PostgresStore) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Exec("DELETE FROM documents").Error
}

// vectorLiteral renders a float32 slice in pgvector's input format.
func vectorLiteral(v []float32) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}
	sb.WriteByte(']')
	return sb.String()
}
