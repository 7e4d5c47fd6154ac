// Package pgvector provides a persistent vector store backed by
// PostgreSQL with the pgvector extension.
//
// Chunk records live in a single table with a cosine-distance index;
// owner-scoped deletes filter on the jsonb metadata. The embedding
// dimension is fixed when the table is created: switching embedding
// models requires Reset followed by full re-ingestion.
package pgvector

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq" // postgres driver
	"github.com/pgvector/pgvector-go"

	"github.com/verdantlabs/lorebase/internal/core/domain"
	"github.com/verdantlabs/lorebase/internal/core/ports/driven"
	"github.com/verdantlabs/lorebase/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// DefaultConnectTimeout bounds the initial connection check.
const DefaultConnectTimeout = 10 * time.Second

// Store is a PostgreSQL/pgvector implementation of driven.VectorStore.
type Store struct {
	db         *sql.DB
	dimensions int
}

// New opens the database, verifies connectivity and ensures the chunk
// table exists with the given embedding dimension.
func New(dsn string, dimensions int) (*Store, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("pgvector: invalid dimensions %d", dimensions)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("pgvector: open: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), DefaultConnectTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pgvector: ping: %w", err)
	}

	s := &Store{db: db, dimensions: dimensions}
	if err := s.init(ctx); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("pgvector store ready (dim=%d)", dimensions)
	return s, nil
}

// init creates the extension, table and indexes if missing.
func (s *Store) init(ctx context.Context) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS chunks (
			id TEXT PRIMARY KEY,
			seq BIGSERIAL,
			content TEXT NOT NULL,
			embedding vector(%d) NOT NULL,
			metadata JSONB NOT NULL DEFAULT '{}'::jsonb
		)`, s.dimensions),
		`CREATE INDEX IF NOT EXISTS chunks_owner_idx ON chunks ((metadata->>'owner_id'))`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: init schema: %v", domain.ErrStore, err)
		}
	}
	return nil
}

// Upsert inserts or replaces records by id.
func (s *Store) Upsert(ctx context.Context, records []driven.Record) error {
	for _, r := range records {
		metadata, err := json.Marshal(r.Metadata)
		if err != nil {
			return fmt.Errorf("%w: marshal metadata: %v", domain.ErrStore, err)
		}
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO chunks (id, content, embedding, metadata)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (id) DO UPDATE
			 SET content = EXCLUDED.content,
			     embedding = EXCLUDED.embedding,
			     metadata = EXCLUDED.metadata`,
			r.ID, r.Text, pgvector.NewVector(r.Embedding), metadata,
		)
		if err != nil {
			return fmt.Errorf("%w: upsert %s: %v", domain.ErrStore, r.ID, err)
		}
	}
	return nil
}

// Delete removes records by id. Missing ids are not an error.
func (s *Store) Delete(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM chunks WHERE id = $1`, id); err != nil {
			return fmt.Errorf("%w: delete %s: %v", domain.ErrStore, id, err)
		}
	}
	return nil
}

// DeleteByOwner removes every record whose owner id matches.
func (s *Store) DeleteByOwner(ctx context.Context, ownerID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM chunks WHERE metadata->>'owner_id' = $1`, ownerID)
	if err != nil {
		return fmt.Errorf("%w: delete owner %s: %v", domain.ErrStore, ownerID, err)
	}
	return nil
}

// Query returns the k nearest records by cosine distance, ascending,
// with insertion-order tie-breaks.
func (s *Store) Query(ctx context.Context, embedding []float32, k int) ([]driven.Hit, error) {
	if k <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, content, metadata, embedding <=> $1 AS distance
		 FROM chunks
		 ORDER BY distance, seq
		 LIMIT $2`,
		pgvector.NewVector(embedding), k,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", domain.ErrStore, err)
	}
	defer rows.Close()

	var hits []driven.Hit
	for rows.Next() {
		var hit driven.Hit
		var metadata []byte
		if err := rows.Scan(&hit.ID, &hit.Text, &metadata, &hit.Distance); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", domain.ErrStore, err)
		}
		if err := json.Unmarshal(metadata, &hit.Metadata); err != nil {
			return nil, fmt.Errorf("%w: unmarshal metadata: %v", domain.ErrStore, err)
		}
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows: %v", domain.ErrStore, err)
	}
	return hits, nil
}

// CountByOwner returns the number of records for an owner.
func (s *Store) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chunks WHERE metadata->>'owner_id' = $1`, ownerID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: count owner %s: %v", domain.ErrStore, ownerID, err)
	}
	return count, nil
}

// Reset drops and recreates the collection with the same embedding
// configuration. Destructive; intended for manual recovery or an
// embedding model change, never invoked automatically.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DROP TABLE IF EXISTS chunks`); err != nil {
		return fmt.Errorf("%w: drop: %v", domain.ErrStore, err)
	}
	logger.Warn("Vector collection dropped, recreating")
	return s.init(ctx)
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
