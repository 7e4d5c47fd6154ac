// Package token enforces token budgets on text sent to external models.
//
// Tokens are whitespace-delimited runs of non-space characters. That is a
// coarser unit than the model's own subword vocabulary, so budgets chosen
// here should sit comfortably below the provider's hard limit. What
// matters for the pipeline is that truncation is deterministic: the same
// input and budget always produce the same prefix, and truncating an
// already-truncated string is a no-op.
package token

import (
	"strings"
	"unicode"
)

// Count returns the number of whitespace-delimited tokens in s.
func Count(s string) int {
	return len(strings.Fields(s))
}

// Truncate returns s cut down to at most budget tokens.
//
// The cut keeps the original text byte-for-byte up to the end of the
// budget-th token; tokens past the limit are dropped, never tokens at
// the start. A non-positive budget yields the empty string.
func Truncate(s string, budget int) string {
	if budget <= 0 {
		return ""
	}

	inToken := false
	count := 0
	for i, r := range s {
		if unicode.IsSpace(r) {
			inToken = false
			continue
		}
		if !inToken {
			inToken = true
			count++
			if count > budget {
				return strings.TrimRightFunc(s[:i], unicode.IsSpace)
			}
		}
	}
	return s
}
