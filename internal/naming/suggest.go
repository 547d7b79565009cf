package naming

import (
	"sort"
	"strings"
)

// Distance returns the Levenshtein edit distance between a and b,
// counted in runes.
func Distance(a, b string) int {
	if a == b {
		return 0
	}

	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	if len(ra) == 0 {
		return len(rb)
	}

	// Two rolling rows over the shorter string.
	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Suggest returns the candidates within maxDist edits of input (compared
// case-insensitively), closest first. Ties keep candidate order.
func Suggest(input string, candidates []string, maxDist int) []string {
	type scored struct {
		name string
		dist int
	}

	var hits []scored

	for _, c := range candidates {
		d := Distance(strings.ToLower(input), strings.ToLower(c))
		if d <= maxDist {
			hits = append(hits, scored{name: c, dist: d})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].dist < hits[j].dist
	})

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.name)
	}

	return out
}
