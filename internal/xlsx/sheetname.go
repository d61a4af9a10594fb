package xlsx

import (
	"fmt"
	"strings"
)

// Excel rejects sheet names longer than 31 characters, empty names,
// names that start or end with an apostrophe, and the characters below.
// Collisions are compared case-insensitively.
const maxSheetName = 31

func sanitizeSheetName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	s := strings.Trim(b.String(), " '")
	// Truncation can expose a new edge apostrophe.
	s = strings.Trim(truncateRunes(s, maxSheetName), " '")
	if s == "" {
		s = "Sheet"
	}
	return s
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// uniqueSheetNames sanitizes every name in order and resolves collisions
// by appending a numeric suffix, shortening the base so the result still
// fits the Excel limit.
func uniqueSheetNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		base := sanitizeSheetName(name)
		candidate := base
		for n := 2; seen[strings.ToLower(candidate)]; n++ {
			suffix := fmt.Sprintf(" %d", n)
			candidate = truncateRunes(base, maxSheetName-len(suffix)) + suffix
		}
		seen[strings.ToLower(candidate)] = true
		out = append(out, candidate)
	}
	return out
}
