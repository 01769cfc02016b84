package store

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUsePlaceholders signals that a batch insert failed on both the
	// primary attempt and the retry. The caller keeps the questions in
	// memory under placeholder identities and the session continues.
	ErrUsePlaceholders = errors.New("insert failed after retry, use placeholder identities")
)

const placeholderPrefix = "temp-"

// PlaceholderID synthesizes a stable local identity for the question at
// the given position. Deterministic in position so lookups by index
// stay consistent for the rest of the session.
func PlaceholderID(position int) string {
	return fmt.Sprintf("%s%d", placeholderPrefix, position)
}

// IsPlaceholderID reports whether id was locally synthesized and must
// never be used as a key for store operations.
func IsPlaceholderID(id string) bool {
	return strings.HasPrefix(id, placeholderPrefix)
}
