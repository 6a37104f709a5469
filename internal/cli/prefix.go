// Package cli provides terminal helpers for vendorctl: tables, colors,
// prompts, the busy spinner and error formatting.
package cli

import (
	"strings"
)

// MatchChoice resolves input to one of choices by exact match or unique
// prefix, ignoring case. field names the argument in errors.
func MatchChoice(field, input string, choices []string) (string, error) {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		return "", &ValidationError{Field: field, Message: "must be one of " + strings.Join(choices, ", ")}
	}

	for _, c := range choices {
		if strings.ToLower(c) == in {
			return c, nil
		}
	}

	var matches []string
	for _, c := range choices {
		if strings.HasPrefix(strings.ToLower(c), in) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return "", &ValidationError{Field: field, Message: "unknown value " + quote(input) + " (choose from " + strings.Join(choices, ", ") + ")"}
	case 1:
		return matches[0], nil
	default:
		return "", &ValidationError{Field: field, Message: quote(input) + " is ambiguous: " + strings.Join(matches, ", ")}
	}
}

func quote(s string) string {
	return `"` + s + `"`
}
