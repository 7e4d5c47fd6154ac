package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantlabs/lorebase/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestDocumentRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	doc := &domain.Document{
		ID:         "doc-1",
		Title:      "Onboarding Guide",
		Uploader:   "sam",
		UploadedAt: time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC),
		Folder:     "2025/08",
		Filename:   "guide.pdf",
		Ext:        ".pdf",
	}
	require.NoError(t, s.SaveDocument(ctx, doc))

	got, err := s.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, doc.Title, got.Title)
	assert.Equal(t, doc.Uploader, got.Uploader)
	assert.Equal(t, doc.Folder, got.Folder)
	assert.Equal(t, doc.Filename, got.Filename)
	assert.True(t, doc.UploadedAt.Equal(got.UploadedAt))
}

func TestSaveDocumentUpserts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	doc := &domain.Document{ID: "doc-1", Title: "Draft", UploadedAt: time.Now(), Filename: "f.txt"}
	require.NoError(t, s.SaveDocument(ctx, doc))

	doc.Title = "Final"
	require.NoError(t, s.SaveDocument(ctx, doc))

	got, err := s.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Title)

	docs, err := s.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestListDocumentsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	older := &domain.Document{ID: "old", Title: "Old", UploadedAt: time.Now().Add(-time.Hour), Filename: "a"}
	newer := &domain.Document{ID: "new", Title: "New", UploadedAt: time.Now(), Filename: "b"}
	require.NoError(t, s.SaveDocument(ctx, older))
	require.NoError(t, s.SaveDocument(ctx, newer))

	docs, err := s.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "new", docs[0].ID)
	assert.Equal(t, "old", docs[1].ID)
}

func TestGetDocumentNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteDocument(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	doc := &domain.Document{ID: "doc-1", Title: "T", UploadedAt: time.Now(), Filename: "f"}
	require.NoError(t, s.SaveDocument(ctx, doc))
	require.NoError(t, s.DeleteDocument(ctx, "doc-1"))

	_, err := s.GetDocument(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting again is not an error.
	assert.NoError(t, s.DeleteDocument(ctx, "doc-1"))
}

func TestNoteRoundTripAndOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := &domain.Note{ID: "n1", Title: "First", Body: "body one", UpdatedAt: time.Now().Add(-time.Minute)}
	second := &domain.Note{ID: "n2", Title: "Second", Body: "body two", Folder: "ops", UpdatedAt: time.Now()}
	require.NoError(t, s.SaveNote(ctx, first))
	require.NoError(t, s.SaveNote(ctx, second))

	got, err := s.GetNote(ctx, "n2")
	require.NoError(t, err)
	assert.Equal(t, "body two", got.Body)
	assert.Equal(t, "ops", got.Folder)

	notes, err := s.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "n2", notes[0].ID)

	require.NoError(t, s.DeleteNote(ctx, "n1"))
	notes, err = s.ListNotes(ctx)
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}

func TestSaveRejectsEmptyID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.SaveDocument(ctx, &domain.Document{}), domain.ErrInvalidInput)
	assert.ErrorIs(t, s.SaveNote(ctx, &domain.Note{}), domain.ErrInvalidInput)
}
