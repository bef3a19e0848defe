package api

import (
	"net/url"
	"strings"
)

// EscapeComponent percent-encodes s for use as a single URI component,
// either a query value or one path segment. Everything outside the RFC 3986
// unreserved set (A-Z a-z 0-9 - _ . ~) is escaped, including space (as %20),
// '!', '(', ')' and '*'. Multi-byte characters are escaped per UTF-8 byte.
//
// Examples:
//   - "brainf ck" -> "brainf%20ck"
//   - "Brainf***" -> "Brainf%2A%2A%2A"
//   - "P′′" -> "P%E2%80%B2%E2%80%B2"
func EscapeComponent(s string) string {
	// QueryEscape already escapes everything but the unreserved set; only
	// its '+' for space differs. A literal '+' is emitted as %2B, so every
	// remaining '+' stands for a space.
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// UnescapeComponent reverses EscapeComponent. Unlike form decoding, '+' is
// kept literally.
func UnescapeComponent(s string) (string, error) {
	return url.PathUnescape(s)
}
