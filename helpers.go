package readln

import "strings"

// calculateFuzzyScore calculates a fuzzy matching score between input and
// candidate. Returns 0 for no match, higher scores for better matches.
func calculateFuzzyScore(input, candidate string) int {
	if input == "" {
		return 1
	}
	if candidate == "" {
		return 0
	}

	// Exact match gets highest score
	if input == candidate {
		return 1000
	}

	// Prefix match gets high score
	if strings.HasPrefix(candidate, input) {
		return 800 + len(input)*10
	}

	// Contains match gets medium score
	if strings.Contains(candidate, input) {
		return 500 + len(input)*5
	}

	// Character-by-character fuzzy matching
	score := 0
	candidateIdx := 0

	for _, inputChar := range input {
		for candidateIdx < len(candidate) {
			if rune(candidate[candidateIdx]) == inputChar {
				score += 10
				candidateIdx++
				break
			}
			candidateIdx++
		}
		if candidateIdx >= len(candidate) {
			break
		}
	}

	return score
}

type fuzzyMatch struct {
	text  string
	score int
}

// historySearcher provides fuzzy search through command history, used by the
// Ctrl+R reverse search.
type historySearcher struct {
	history []string
}

// NewHistorySearcher returns a search function over the given history.
// An empty query returns the whole history in original order; otherwise
// results are ranked by fuzzy match score, best first.
//
// Example:
//
//	search := readln.NewHistorySearcher([]string{"git status", "docker ps"})
//	matches := search("git")
func NewHistorySearcher(history []string) func(string) []string {
	hs := &historySearcher{history: history}
	return hs.Search
}

// Search returns history entries matching the query, best match first.
func (h *historySearcher) Search(query string) []string {
	if query == "" {
		return h.history
	}

	var matches []fuzzyMatch
	queryLower := strings.ToLower(query)

	for _, entry := range h.history {
		if score := calculateFuzzyScore(queryLower, strings.ToLower(entry)); score > 0 {
			matches = append(matches, fuzzyMatch{text: entry, score: score})
		}
	}

	// Sort by score (descending)
	for i := 0; i < len(matches)-1; i++ {
		for j := i + 1; j < len(matches); j++ {
			if matches[i].score < matches[j].score {
				matches[i], matches[j] = matches[j], matches[i]
			}
		}
	}

	results := make([]string, len(matches))
	for i, match := range matches {
		results[i] = match.text
	}
	return results
}
