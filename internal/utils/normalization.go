package utils

import "strings"

// Free-form fields arrive from clients and from model output with
// arbitrary casing and padding. These helpers canonicalize them before
// comparison against the constant sets in models.

// NormalizeLanguage canonicalizes a sandbox language name.
func NormalizeLanguage(language string) string {
	return strings.ToLower(strings.TrimSpace(language))
}

// NormalizeLevel canonicalizes an extracted skill proficiency.
func NormalizeLevel(level string) string {
	return strings.ToLower(strings.TrimSpace(level))
}

// NormalizeDifficulty canonicalizes a generated question difficulty.
func NormalizeDifficulty(difficulty string) string {
	return strings.ToLower(strings.TrimSpace(difficulty))
}
