package mockup

import "strings"

// longestSuffix returns the entry whose pattern is the longest suffix of path.
func longestSuffix[V any](entries map[string]V, path string) (pattern string, value V, ok bool) {
	for p, v := range entries {
		if !strings.HasSuffix(path, p) {
			continue
		}
		if !ok || len(p) > len(pattern) {
			pattern, value, ok = p, v, true
		}
	}
	return pattern, value, ok
}
