// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

// Package keyword normalizes free-text search terms into stable ASCII keys.
//
// # Usage
//
// The catalog cache keys searches by keyword; "Science-Fiction", "science
// fiction" and "SCIENCE  FICTION" should all hit the same cache entry.
// This package handles normalization, accent removal, and whitespace folding.
package keyword

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// multiSpace collapses runs of separator characters into a single space.
var multiSpace = regexp.MustCompile(`[\s_-]+`)

// Normalize converts an arbitrary Unicode search term into a canonical form.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
// 4. Folds whitespace, underscores and hyphens into single spaces.
// 5. Trims leading/trailing spaces.
func Normalize(s string) string {
	// 1. Normalize and remove accents
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	// 2. Lowercase
	result = strings.ToLower(result)

	// 3. Fold separators
	result = multiSpace.ReplaceAllString(result, " ")

	return strings.TrimSpace(result)
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
