package embeds

import "strings"

// ValidateEmbedID extracts the platform media identifier from a bare id or a
// full URL. It keeps the last path segment and drops anything from the first
// '?' or '=' onwards.
func ValidateEmbedID(raw string) (string, error) {
	id := raw
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		id = id[i+1:]
	}
	if i := strings.IndexAny(id, "?="); i >= 0 {
		id = id[:i]
	}
	if strings.TrimSpace(id) == "" {
		return "", ErrInvalidEmbedID
	}
	return id, nil
}
