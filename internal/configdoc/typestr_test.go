// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		name     string
		typ      string
		enum     []EnumEntry
		expected string
	}{
		{
			name:     "string placeholder is quoted",
			typ:      "string",
			expected: `"<string>"`,
		},
		{
			name:     "other primitives are bare placeholders",
			typ:      "int",
			expected: "<int>",
		},
		{
			name:     "bool",
			typ:      "bool",
			expected: "<bool>",
		},
		{
			name:     "array of strings",
			typ:      "[string]",
			expected: `["<string>", ...]`,
		},
		{
			name:     "array of ints",
			typ:      "[int]",
			expected: "[<int>, ...]",
		},
		{
			name: "multi-literal enum",
			typ:  "string",
			enum: []EnumEntry{
				{Value: StringValue("ndjson")},
				{Value: StringValue("text")},
			},
			expected: `{"ndjson" | "text"}`,
		},
		{
			name:     "single-literal enum is the literal",
			typ:      "string",
			enum:     []EnumEntry{{Value: StringValue("http")}},
			expected: `"http"`,
		},
		{
			name:     "wildcard is the primitive union",
			typ:      "*",
			expected: `{"<string>" | <int> | <float> | <bool> | <timestamp>}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TypeString(tt.typ, tt.enum)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
