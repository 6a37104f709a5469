package resource

import (
	"strconv"
	"strings"
)

// Predicate reports whether item matches query.
// Predicates must be pure; Filter calls them once per item per query.
type Predicate[T any] func(item T, query string) bool

// Filter returns the items matching query, in their original order.
// An empty or whitespace-only query returns all items. items is never
// modified; the result is always a fresh slice.
func Filter[T any](items []T, query string, pred Predicate[T]) []T {
	out := make([]T, 0, len(items))
	query = strings.TrimSpace(query)
	if query == "" || pred == nil {
		return append(out, items...)
	}
	for _, item := range items {
		if pred(item, query) {
			out = append(out, item)
		}
	}
	return out
}

// MatchFields builds a case-insensitive substring predicate over the
// given projections. An item matches if any projection contains query.
func MatchFields[T any](fields ...func(T) string) Predicate[T] {
	return func(item T, query string) bool {
		q := strings.ToLower(strings.TrimSpace(query))
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field(item)), q) {
				return true
			}
		}
		return false
	}
}

// IDField projects an Identifiable's id as a decimal string, for use with
// MatchFields.
func IDField[T Identifiable](item T) string {
	return strconv.Itoa(item.ResourceID())
}
