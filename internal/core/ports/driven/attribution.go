package driven

import "github.com/verdantlabs/lorebase/internal/core/domain"

// AttributionSink records the sources used for the most recent answer,
// scoped however the caller chooses (per session, per process). The
// core never looks attribution state up from ambient storage; the sink
// is injected into the answer service.
type AttributionSink interface {
	// Record replaces the stored attribution with the given question
	// and its deduplicated source list. An answered question with no
	// sources records an empty list.
	Record(question string, sources []domain.SourceRecord)

	// LastSources returns the sources recorded for the most recent
	// answered question, in rank order.
	LastSources() []domain.SourceRecord
}
