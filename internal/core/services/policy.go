package services

import "strings"

// DefaultDisallowedKeywords is the standard disallowed-topic list.
// Matching is case-insensitive substring containment.
var DefaultDisallowedKeywords = []string{
	"salary",
	"salaries",
	"wage",
	"wages",
	"private hr",
}

// PolicyFilter rejects questions touching disallowed topics before any
// external call is made.
type PolicyFilter struct {
	keywords []string
}

// NewPolicyFilter creates a filter over the given keywords. A nil or
// empty list falls back to DefaultDisallowedKeywords.
func NewPolicyFilter(keywords []string) *PolicyFilter {
	if len(keywords) == 0 {
		keywords = DefaultDisallowedKeywords
	}
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}
	return &PolicyFilter{keywords: lowered}
}

// Disallowed reports whether the question matches any disallowed
// keyword.
func (f *PolicyFilter) Disallowed(question string) bool {
	q := strings.ToLower(question)
	for _, kw := range f.keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}
