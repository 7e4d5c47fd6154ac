package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicyFilterDisallowed(t *testing.T) {
	filter := NewPolicyFilter(nil)

	tests := []struct {
		name       string
		question   string
		disallowed bool
	}{
		{"plain question", "Where is the onboarding guide?", false},
		{"salary keyword", "What is the CEO salary?", true},
		{"case insensitive", "Tell me about SALARIES", true},
		{"substring match", "minimum wages policy", true},
		{"multi-word keyword", "show me private HR files", true},
		{"empty question", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.disallowed, filter.Disallowed(tt.question))
		})
	}
}

func TestPolicyFilterCustomKeywords(t *testing.T) {
	filter := NewPolicyFilter([]string{"Secret"})

	assert.True(t, filter.Disallowed("what is the secret plan"))
	// Custom keywords replace the defaults rather than extending them.
	assert.False(t, filter.Disallowed("what is the CEO salary"))
}
