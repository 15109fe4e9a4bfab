package util

import "strings"

// SplitTrimmed splits s on sep and trims surrounding whitespace from each
// token. Empty tokens are kept so "a,,b" yields three entries.
func SplitTrimmed(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}
