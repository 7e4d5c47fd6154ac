// Package memory provides an in-memory vector store using brute-force
// cosine distance. Used by tests and small single-process deployments.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/verdantlabs/lorebase/internal/core/domain"
	"github.com/verdantlabs/lorebase/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store is an in-memory implementation of driven.VectorStore. Records
// keep insertion order, which provides the stable tie-break for equal
// distances.
type Store struct {
	mu      sync.RWMutex
	records []driven.Record
	index   map[string]int
}

// New creates a new in-memory vector store.
func New() *Store {
	return &Store{index: make(map[string]int)}
}

// Upsert inserts or replaces records by id. Replaced records keep
// their original position.
func (s *Store) Upsert(_ context.Context, records []driven.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		r.Metadata = copyMetadata(r.Metadata)
		if i, ok := s.index[r.ID]; ok {
			s.records[i] = r
			continue
		}
		s.index[r.ID] = len(s.records)
		s.records = append(s.records, r)
	}
	return nil
}

// Delete removes records by id. Missing ids are ignored.
func (s *Store) Delete(_ context.Context, ids []string) error {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeWhere(func(r driven.Record) bool { return drop[r.ID] })
	return nil
}

// DeleteByOwner removes every record whose owner id matches.
func (s *Store) DeleteByOwner(_ context.Context, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeWhere(func(r driven.Record) bool {
		return r.Metadata[domain.MetaOwnerID] == ownerID
	})
	return nil
}

// removeWhere drops matching records, preserving order. Caller must
// hold the write lock.
func (s *Store) removeWhere(match func(driven.Record) bool) {
	kept := s.records[:0]
	for _, r := range s.records {
		if match(r) {
			delete(s.index, r.ID)
			continue
		}
		kept = append(kept, r)
	}
	s.records = kept
	for i, r := range s.records {
		s.index[r.ID] = i
	}
}

// Query returns the k nearest records by cosine distance, ascending,
// with insertion-order tie-breaks.
func (s *Store) Query(_ context.Context, embedding []float32, k int) ([]driven.Hit, error) {
	if k <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	hits := make([]driven.Hit, 0, len(s.records))
	for _, r := range s.records {
		hits = append(hits, driven.Hit{
			ID:       r.ID,
			Text:     r.Text,
			Metadata: copyMetadata(r.Metadata),
			Distance: cosineDistance(embedding, r.Embedding),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// CountByOwner returns the number of records for an owner.
func (s *Store) CountByOwner(_ context.Context, ownerID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, r := range s.records {
		if r.Metadata[domain.MetaOwnerID] == ownerID {
			count++
		}
	}
	return count, nil
}

// Reset drops all records.
func (s *Store) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.index = make(map[string]int)
	return nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

// cosineDistance returns 1 minus the cosine similarity of a and b.
// Zero-magnitude vectors are treated as maximally distant.
func cosineDistance(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}

// copyMetadata returns a shallow copy of metadata.
func copyMetadata(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
