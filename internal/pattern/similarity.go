package pattern

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// stripKey lowercases and removes every non-alphanumeric rune, the common
// footing for similarity comparison.
func stripKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Similarity is normalized edit distance over stripped strings:
// (maxLen - dist) / maxLen, in [0,1]. Two empty strings are identical.
func Similarity(a, b string) float64 {
	sa, sb := stripKey(a), stripKey(b)
	maxLen := len(sa)
	if len(sb) > maxLen {
		maxLen = len(sb)
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(sa, sb)
	return float64(maxLen-dist) / float64(maxLen)
}

// Related reports whether two strings belong in the same variation cluster:
// either similarity beats the threshold or one strips to a substring of the
// other.
func Related(a, b string, threshold float64) bool {
	if Similarity(a, b) > threshold {
		return true
	}
	sa, sb := stripKey(a), stripKey(b)
	if sa == "" || sb == "" {
		return false
	}
	return strings.Contains(sa, sb) || strings.Contains(sb, sa)
}
