// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple lowercase", input: "fantasy", expected: "fantasy"},
		{name: "uppercase folded", input: "FANTASY", expected: "fantasy"},
		{name: "accents removed", input: "Réalisme Magique", expected: "realisme magique"},
		{name: "hyphens folded to spaces", input: "science-fiction", expected: "science fiction"},
		{name: "underscores folded", input: "true_crime", expected: "true crime"},
		{name: "whitespace collapsed", input: "  science   fiction  ", expected: "science fiction"},
		{name: "mixed separators", input: "Sci-Fi_ Horror", expected: "sci fi horror"},
		{name: "empty string", input: "", expected: ""},
		{name: "only separators", input: " -_ ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}
