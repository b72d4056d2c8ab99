package utils

import "strings"

func AssertInvariant(condition bool, message string) {
	if !condition {
		panic("invariant violated - " + message)
	}
}

// ExtractStatusID returns the trailing path segment of a status URL, which is
// the remote status id. A bare id is returned unchanged.
func ExtractStatusID(urlOrID string) string {
	trimmed := strings.TrimSuffix(strings.TrimSpace(urlOrID), "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	// Strip query fragments from copy-pasted links
	if idx := strings.IndexAny(trimmed, "?#"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return trimmed
}
