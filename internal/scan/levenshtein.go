package scan

import "strings"

// Similarity scores how close two names are, normalised to [0, 1]:
// (maxLen - editDistance) / maxLen over the lowercased strings.
func Similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1
	}
	return float64(maxLen-levenshtein(a, b)) / float64(maxLen)
}

// levenshtein computes the classic edit distance with unit costs. Inputs are
// person-name length, so two reused rows are all the table we keep.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j
		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[i] = min3(curr[i-1]+1, prev[i]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(a)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
