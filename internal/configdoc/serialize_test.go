// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"grimm.is/pipedoc/internal/errors"
)

func TestSerialize_Scalars(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{
			name:     "bool",
			value:    BoolValue(true),
			expected: "true",
		},
		{
			name:     "int",
			value:    IntValue(1049000),
			expected: "1049000",
		},
		{
			name:     "float",
			value:    FloatValue(2.5),
			expected: "2.5",
		},
		{
			name:     "whole float keeps its point",
			value:    FloatValue(10),
			expected: "10.0",
		},
		{
			name:     "string",
			value:    StringValue("${HOSTNAME}"),
			expected: `"${HOSTNAME}"`,
		},
		{
			name:     "date",
			value:    DateValue(time.Date(2020, 10, 10, 0, 0, 0, 0, time.UTC)),
			expected: "2020-10-10",
		},
		{
			name:     "timestamp is second-precision RFC3339 UTC",
			value:    TimestampValue(time.Date(2020, 10, 10, 17, 7, 36, 123000000, time.UTC)),
			expected: "2020-10-10T17:07:36Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Serialize(tt.value, StyleExpanded)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSerialize_MultilineString(t *testing.T) {
	got, err := Serialize(StringValue("line1\nline2"), StyleExpanded)
	require.NoError(t, err)
	assert.Equal(t, "\"\"\"\nline1\nline2\"\"\"", got)
}

func TestSerialize_Arrays(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{
			name:     "scalars stay on one line",
			value:    ArrayValue(IntValue(1), IntValue(2)),
			expected: "[1, 2]",
		},
		{
			name:     "null elements are dropped",
			value:    ArrayValue(IntValue(1), NullValue(), IntValue(2)),
			expected: "[1, 2]",
		},
		{
			name: "hash elements force block form",
			value: ArrayValue(
				HashValue(HashEntry{Key: "name", Value: StringValue("a")}),
				HashValue(HashEntry{Key: "name", Value: StringValue("b")}),
			),
			expected: "[\n  {name = \"a\"},\n  {name = \"b\"}\n]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Serialize(tt.value, StyleExpanded)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSerialize_HashStyles(t *testing.T) {
	hash := HashValue(
		HashEntry{Key: "a", Value: IntValue(1)},
		HashEntry{Key: "b", Value: HashValue(
			HashEntry{Key: "c", Value: StringValue("x")},
		)},
		HashEntry{Key: "skipped", Value: NullValue()},
	)

	expanded, err := Serialize(hash, StyleExpanded)
	require.NoError(t, err)
	assert.Equal(t, "a = 1\nb = {c = \"x\"}", expanded)

	inline, err := Serialize(hash, StyleInline)
	require.NoError(t, err)
	assert.Equal(t, "{a = 1, b = {c = \"x\"}}", inline)

	flat, err := Serialize(hash, StyleFlatten)
	require.NoError(t, err)
	assert.Equal(t, "a = 1\nb.c = \"x\"", flat)
}

func TestSerialize_DottedKeysQuoted(t *testing.T) {
	hash := HashValue(HashEntry{Key: "label.env", Value: StringValue("prod")})

	got, err := Serialize(hash, StyleExpanded)
	require.NoError(t, err)
	assert.Equal(t, "\"label.env\" = \"prod\"", got)
}

func TestSerialize_BareNullFails(t *testing.T) {
	_, err := Serialize(NullValue(), StyleExpanded)
	require.Error(t, err)
	assert.Equal(t, errors.KindSerialization, errors.GetKind(err))
	assert.Contains(t, err.Error(), "null")
}

// The flatten style produces strict TOML, so the engine's output can be
// re-parsed and must reproduce the original structure, multi-line strings
// included.
func TestSerialize_RoundTrip(t *testing.T) {
	hash := HashValue(
		HashEntry{Key: "a", Value: IntValue(1)},
		HashEntry{Key: "b", Value: HashValue(
			HashEntry{Key: "c", Value: StringValue("line1\nline2")},
		)},
	)

	out, err := Serialize(hash, StyleFlatten)
	require.NoError(t, err)
	assert.Contains(t, out, "\"\"\"\nline1\nline2\"\"\"")

	var parsed map[string]any
	require.NoError(t, toml.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, map[string]any{
		"a": int64(1),
		"b": map[string]any{"c": "line1\nline2"},
	}, parsed)
}

func TestSerialize_Idempotent(t *testing.T) {
	v := HashValue(
		HashEntry{Key: "x", Value: ArrayValue(StringValue("a"), StringValue("b"))},
		HashEntry{Key: "y", Value: TimestampValue(time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC))},
	)

	first, err := Serialize(v, StyleExpanded)
	require.NoError(t, err)
	second, err := Serialize(v, StyleExpanded)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
