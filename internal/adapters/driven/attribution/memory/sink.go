// Package memory provides an in-process attribution sink holding the
// sources for the most recently answered question.
package memory

import (
	"sync"

	"github.com/verdantlabs/lorebase/internal/core/domain"
	"github.com/verdantlabs/lorebase/internal/core/ports/driven"
)

// Ensure Sink implements the interface.
var _ driven.AttributionSink = (*Sink)(nil)

// Sink stores the attribution for the last answered question. Refused
// questions never reach Record, so the previous attribution survives
// them.
type Sink struct {
	mu       sync.RWMutex
	question string
	sources  []domain.SourceRecord
}

// New creates an empty attribution sink.
func New() *Sink {
	return &Sink{}
}

// Record replaces the stored attribution wholesale.
func (s *Sink) Record(question string, sources []domain.SourceRecord) {
	copied := make([]domain.SourceRecord, len(sources))
	copy(copied, sources)

	s.mu.Lock()
	s.question = question
	s.sources = copied
	s.mu.Unlock()
}

// LastSources returns the sources for the most recent answered
// question, in rank order. Empty until the first question is answered.
func (s *Sink) LastSources() []domain.SourceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]domain.SourceRecord, len(s.sources))
	copy(copied, s.sources)
	return copied
}

// LastQuestion returns the question the stored sources belong to.
func (s *Sink) LastQuestion() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.question
}
