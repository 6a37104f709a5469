package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidID is returned when an ID cannot be parsed.
	ErrInvalidID = errors.New("invalid ID format")

	// idRegex matches record IDs like 7, 007, #7, ORD-7, ord-0007
	idRegex = regexp.MustCompile(`^(?:[A-Za-z]{2,4}-|#)?(\d+)$`)
)

// OrderPrefix is the prefix used when displaying order numbers.
const OrderPrefix = "ORD"

// ParseID parses a record ID and returns its number.
// Accepts various formats: 7, 007, #7 and ORD-0007 all parse to 7.
// Returns ErrInvalidID if the format is invalid.
func ParseID(s string) (int, error) {
	matches := idRegex.FindStringSubmatch(strings.TrimSpace(s))
	if matches == nil {
		return 0, fmt.Errorf("%w: %q is not a valid ID", ErrInvalidID, s)
	}

	num, err := strconv.Atoi(matches[1])
	if err != nil || num <= 0 {
		return 0, fmt.Errorf("%w: %q has invalid number", ErrInvalidID, s)
	}
	return num, nil
}

// ParseIDs parses a comma-separated list of IDs.
func ParseIDs(s string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := ParseID(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// FormatOrderNumber formats an order ID for display with zero-padding.
// The width grows with the number but never drops below 4 digits.
func FormatOrderNumber(id int) string {
	return fmt.Sprintf("%s-%0*d", OrderPrefix, digitWidth(id), id)
}

// digitWidth returns the number of digits needed to display n.
// Minimum width is 4.
func digitWidth(n int) int {
	width := 0
	for ; n > 0; n /= 10 {
		width++
	}
	if width < 4 {
		return 4
	}
	return width
}
