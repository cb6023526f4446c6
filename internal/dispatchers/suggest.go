package dispatchers

import (
	"sort"
	"strings"
)

const (
	defaultSuggestionsCount = 3
	maxSuggestionDistance   = 3
)

// levenshtein returns the case-insensitive edit distance between a and b.
func levenshtein(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}

	return prev[len(b)]
}

type suggestion struct {
	name     string
	distance int
}

// FindSimilar returns up to maxResults candidates close to input, nearest first.
// Exact matches are not suggestions.
func FindSimilar(input string, candidates []string, maxResults int) []string {
	var found []suggestion
	for _, name := range candidates {
		dist := levenshtein(input, name)
		if dist > 0 && dist <= maxSuggestionDistance {
			found = append(found, suggestion{name: name, distance: dist})
		}
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].distance != found[j].distance {
			return found[i].distance < found[j].distance
		}
		return found[i].name < found[j].name
	})

	if len(found) > maxResults {
		found = found[:maxResults]
	}

	out := make([]string, len(found))
	for i, s := range found {
		out[i] = s.name
	}
	return out
}
