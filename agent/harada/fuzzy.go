package harada

import "strings"

// minMatchScore is the confidence floor below which a fuzzy habit lookup
// is rejected and the caller lists the available names instead.
const minMatchScore = 30

// fuzzyMatch finds the habit best matching a free-text query,
// case-insensitively. Scores: exact match 100; query-in-name substring
// scaled by coverage with a floor of 40; all query tokens appearing inside
// name tokens 60; name-in-query substring scaled by coverage with a floor
// of 40. Returns the highest-scoring candidate, or nil when the query or
// candidate list is empty.
func fuzzyMatch(query string, candidates []Habit) (*Habit, float64) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, 0
	}

	var best *Habit
	var bestScore float64
	for i := range candidates {
		name := strings.ToLower(candidates[i].Name)
		if q == name {
			return &candidates[i], 100
		}

		var score float64
		switch {
		case strings.Contains(name, q):
			score = max(40, float64(len(q))/float64(len(name))*90)
		case allTokensMatch(q, name):
			score = 60
		case strings.Contains(q, name):
			score = max(40, float64(len(name))/float64(len(q))*80)
		default:
			continue
		}
		if score > bestScore {
			best = &candidates[i]
			bestScore = score
		}
	}
	return best, bestScore
}

// allTokensMatch reports whether every whitespace token of the query
// appears as a substring of some token of the name.
func allTokensMatch(query, name string) bool {
	nameTokens := strings.Fields(name)
	for _, qt := range strings.Fields(query) {
		found := false
		for _, nt := range nameTokens {
			if strings.Contains(nt, qt) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
