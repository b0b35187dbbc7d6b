package services

import (
	"strings"

	"github.com/openeats/dinesync/internal/core/domain"
)

// Similarity thresholds for fuzzy identity. Both must be exceeded
// (strict >) for a fuzzy match.
const (
	nameSimilarityThreshold    = 0.8
	addressSimilarityThreshold = 0.6
)

// Resolve matches a candidate against the existing directory snapshot.
//
// Phase 1: when the candidate carries an external id, the first record with
// the same id matches immediately. Phase 2: otherwise the first record (in
// input order) whose name similarity exceeds 0.8 and address similarity
// exceeds 0.6 matches. This is deliberately first-match, not best-match;
// with near-duplicate existing records a best-of ranking would be stricter,
// but the observed policy is preserved here.
func Resolve(candidate domain.Restaurant, existing []domain.DirectoryRecord) domain.MatchResult {
	if candidate.ExternalID != "" {
		for i := range existing {
			if existing[i].ExternalID == candidate.ExternalID {
				return domain.Match(&existing[i])
			}
		}
	}

	for i := range existing {
		nameSim := editSimilarity(candidate.Name, existing[i].Name)
		addrSim := editSimilarity(candidate.Address, existing[i].Address)
		if nameSim > nameSimilarityThreshold && addrSim > addressSimilarityThreshold {
			return domain.Match(&existing[i])
		}
	}

	return domain.NoMatch()
}

// editSimilarity is the normalized edit similarity of two case-folded
// strings: (maxLen - levenshtein) / maxLen, and 1.0 when both are empty.
func editSimilarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	ra := []rune(a)
	rb := []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1.0
	}

	dist := levenshtein(ra, rb)
	return float64(maxLen-dist) / float64(maxLen)
}

// levenshtein computes edit distance with the standard dynamic-programming
// matrix, insert/delete/substitute each costing 1. Two rolling rows keep
// the allocation at O(len(b)).
func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // delete
				curr[j-1]+1,    // insert
				prev[j-1]+cost, // substitute
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
