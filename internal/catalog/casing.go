package catalog

import (
	"regexp"
	"strings"

	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/api"
)

var (
	// Matches a lowercase letter directly followed by an uppercase one: "rC" in "YearCreated"
	camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

	// Matches runs of whitespace
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// ToKebabCase converts a display name to its endpoint form.
//
// Examples:
//   - "Computational Class" -> "computational-class"
//   - "YearCreated" -> "year-created"
//   - "  Type   System " -> "type-system"
func ToKebabCase(s string) string {
	return joinWords(s, "-")
}

// ToSnakeCase converts a display name to its query key form. It follows the
// same rules as ToKebabCase but joins with an underscore.
//
// Examples:
//   - "Computational Class" -> "computational_class"
//   - "YearCreated" -> "year_created"
func ToSnakeCase(s string) string {
	return joinWords(s, "_")
}

func joinWords(s, sep string) string {
	s = strings.TrimSpace(s)
	s = camelBoundary.ReplaceAllString(s, "${1}"+sep+"${2}")
	s = whitespaceRun.ReplaceAllString(s, sep)
	return strings.ToLower(s)
}

// DecodeIdentifier percent-decodes a language identifier once. Identifiers
// that are not valid percent-encodings (e.g. a literal "100%") are returned
// unchanged.
func DecodeIdentifier(id string) string {
	decoded, err := api.UnescapeComponent(id)
	if err != nil {
		return id
	}
	return decoded
}

// OptionLabel turns a raw option value, usually a percent-encoded resource
// URI, into its display label: the decoded last path segment.
//
// Examples:
//   - "http://localhost:5173/esolangs/Turing_complete" -> "Turing_complete"
//   - "http%3A%2F%2Fhost%2Fesolangs%2FStack-based" -> "Stack-based"
//   - "1993" -> "1993"
func OptionLabel(raw string) (string, error) {
	decoded, err := api.UnescapeComponent(raw)
	if err != nil {
		return "", err
	}
	if i := strings.LastIndex(decoded, "/"); i >= 0 {
		return decoded[i+1:], nil
	}
	return decoded, nil
}
