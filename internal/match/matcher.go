// Package match resolves an extracted salesperson name against the
// configured roster. Extraction output is noisy (OCR casing, swapped
// name order, missing accents) so matching is tiered fuzzy, not exact.
package match

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// Scores for the deterministic tiers. The token-sort tier reports its
// computed ratio instead.
const (
	ScoreExact     = 100
	ScoreFirstName = 85
	ScoreLastName  = 80
)

// DefaultThreshold is the minimum token-sort ratio accepted as a match.
const DefaultThreshold = 70

// Matcher holds the roster in configured order. Candidates are tried in
// that order within every tier, so roster order breaks ties.
type Matcher struct {
	roster    []string
	threshold int
	log       *slog.Logger
}

func New(roster []string, threshold int, logger *slog.Logger) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{roster: roster, threshold: threshold, log: logger}
}

// Match resolves name against the roster. Tiers, strongest first:
//
//  1. exact match, case-insensitive
//  2. token-sort ratio at or above the threshold (word order ignored)
//  3. shared first token
//  4. shared last token, only for multi-token inputs
//
// Returns the roster spelling and the tier score, or ("", 0) when no tier
// fires. The caller routes unmatched names to the backup ledger.
func (m *Matcher) Match(name string) (string, int) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", 0
	}
	folded := strings.ToLower(name)

	for _, cand := range m.roster {
		if strings.ToLower(cand) == folded {
			return cand, ScoreExact
		}
	}

	best, bestRatio := "", 0
	for _, cand := range m.roster {
		if r := TokenSortRatio(name, cand); r > bestRatio {
			best, bestRatio = cand, r
		}
	}
	if bestRatio >= m.threshold {
		m.log.Debug("match.token_sort", "input", name, "matched", best, "ratio", bestRatio)
		return best, bestRatio
	}

	tokens := strings.Fields(folded)
	first := tokens[0]
	for _, cand := range m.roster {
		ct := strings.Fields(strings.ToLower(cand))
		if len(ct) > 0 && ct[0] == first {
			m.log.Debug("match.first_name", "input", name, "matched", cand)
			return cand, ScoreFirstName
		}
	}

	// A bare single token already had its chance at the first-name tier;
	// letting it claim last names would mismatch one-word inputs wholesale.
	if len(tokens) >= 2 {
		last := tokens[len(tokens)-1]
		for _, cand := range m.roster {
			ct := strings.Fields(strings.ToLower(cand))
			if len(ct) > 0 && ct[len(ct)-1] == last {
				m.log.Debug("match.last_name", "input", name, "matched", cand)
				return cand, ScoreLastName
			}
		}
	}

	m.log.Debug("match.none", "input", name, "best_ratio", bestRatio)
	return "", 0
}

// TokenSortRatio is the word-order-insensitive similarity of two strings
// as an integer percentage: tokens are lowercased, sorted, rejoined, and
// compared by Levenshtein similarity.
func TokenSortRatio(a, b string) int {
	sa := sortedTokens(a)
	sb := sortedTokens(b)
	if sa == "" || sb == "" {
		return 0
	}
	if sa == sb {
		return 100
	}
	return int(levenshtein.Similarity(sa, sb, nil) * 100)
}

func sortedTokens(s string) string {
	toks := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	sort.Strings(toks)
	return strings.Join(toks, " ")
}
