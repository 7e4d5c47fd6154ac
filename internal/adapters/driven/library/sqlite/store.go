// Package sqlite provides a SQLite-backed library store for document
// and note registry records. Chunk content lives in the vector store;
// this catalogue holds the collaborator-facing metadata.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/verdantlabs/lorebase/internal/core/domain"
	"github.com/verdantlabs/lorebase/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.LibraryStore = (*Store)(nil)

// Store is a SQLite implementation of driven.LibraryStore.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite library store at the specified data
// directory. If dataDir is empty, defaults to ~/.lorebase/data/library.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".lorebase", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "library.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// init creates the registry tables if missing.
func (s *Store) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			uploader TEXT NOT NULL DEFAULT '',
			uploaded_at DATETIME NOT NULL,
			folder TEXT NOT NULL DEFAULT '',
			filename TEXT NOT NULL,
			ext TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS notes (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			body TEXT NOT NULL DEFAULT '',
			folder TEXT NOT NULL DEFAULT '',
			updated_at DATETIME NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// SaveDocument stores a document record, replacing any existing record
// with the same id.
func (s *Store) SaveDocument(ctx context.Context, doc *domain.Document) error {
	if doc.ID == "" {
		return fmt.Errorf("%w: empty document id", domain.ErrInvalidInput)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (id, title, uploader, uploaded_at, folder, filename, ext)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE
		 SET title = excluded.title,
		     uploader = excluded.uploader,
		     uploaded_at = excluded.uploaded_at,
		     folder = excluded.folder,
		     filename = excluded.filename,
		     ext = excluded.ext`,
		doc.ID, doc.Title, doc.Uploader, doc.UploadedAt.UTC(), doc.Folder, doc.Filename, doc.Ext,
	)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by id.
func (s *Store) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, uploader, uploaded_at, folder, filename, ext
		 FROM documents WHERE id = ?`, id)

	var doc domain.Document
	var uploadedAt time.Time
	err := row.Scan(&doc.ID, &doc.Title, &doc.Uploader, &uploadedAt, &doc.Folder, &doc.Filename, &doc.Ext)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: document %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}
	doc.UploadedAt = uploadedAt
	return &doc, nil
}

// ListDocuments returns all documents, newest upload first.
func (s *Store) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, uploader, uploaded_at, folder, filename, ext
		 FROM documents ORDER BY uploaded_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var doc domain.Document
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Uploader, &doc.UploadedAt, &doc.Folder, &doc.Filename, &doc.Ext); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// DeleteDocument removes a document record. Deleting a missing id is
// not an error.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// SaveNote stores or updates a note record.
func (s *Store) SaveNote(ctx context.Context, note *domain.Note) error {
	if note.ID == "" {
		return fmt.Errorf("%w: empty note id", domain.ErrInvalidInput)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (id, title, body, folder, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE
		 SET title = excluded.title,
		     body = excluded.body,
		     folder = excluded.folder,
		     updated_at = excluded.updated_at`,
		note.ID, note.Title, note.Body, note.Folder, note.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving note: %w", err)
	}
	return nil
}

// GetNote retrieves a note by id.
func (s *Store) GetNote(ctx context.Context, id string) (*domain.Note, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, body, folder, updated_at FROM notes WHERE id = ?`, id)

	var note domain.Note
	err := row.Scan(&note.ID, &note.Title, &note.Body, &note.Folder, &note.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: note %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting note: %w", err)
	}
	return &note, nil
}

// ListNotes returns all notes, most recently updated first.
func (s *Store) ListNotes(ctx context.Context) ([]domain.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, body, folder, updated_at FROM notes ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var note domain.Note
		if err := rows.Scan(&note.ID, &note.Title, &note.Body, &note.Folder, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

// DeleteNote removes a note record. Deleting a missing id is not an
// error.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}
