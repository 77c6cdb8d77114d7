package util

import (
	"strings"
)

// PrependPath prepends dirs to existingPath, deduplicating components while
// preserving order. The prepended dirs win over later duplicates.
func PrependPath(dirs []string, existingPath string) string {
	seen := make(map[string]bool)
	var result []string

	for _, part := range dirs {
		part = strings.TrimSpace(part)
		if part != "" && !seen[part] {
			seen[part] = true
			result = append(result, part)
		}
	}

	if existingPath != "" {
		for _, part := range strings.Split(existingPath, ":") {
			part = strings.TrimSpace(part)
			if part != "" && !seen[part] {
				seen[part] = true
				result = append(result, part)
			}
		}
	}

	return strings.Join(result, ":")
}

// ShellQuote quotes a string for safe interpolation into a sh command line.
// Wraps in single quotes and escapes embedded single quotes.
func ShellQuote(s string) string {
	escaped := strings.ReplaceAll(s, "'", "'\\''")
	return "'" + escaped + "'"
}
