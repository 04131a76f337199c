// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package interp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"grimm.is/pipedoc/internal/errors"
)

func TestInterpolate_ReplacesBody(t *testing.T) {
	doc := strings.Join([]string{
		"# HTTP sink",
		"",
		"<!-- START: sinks.http.examples -->",
		"stale line",
		"another stale line",
		"<!-- END: sinks.http.examples -->",
		"",
		"Trailing prose.",
	}, "\n")

	out, err := Interpolate(doc, map[string]string{
		"sinks.http.examples": "[sinks.http]\n  type = \"http\"",
	})
	require.NoError(t, err)

	expected := strings.Join([]string{
		"# HTTP sink",
		"",
		"<!-- START: sinks.http.examples -->",
		"[sinks.http]",
		"  type = \"http\"",
		"<!-- END: sinks.http.examples -->",
		"",
		"Trailing prose.",
	}, "\n")
	assert.Equal(t, expected, out)
}

func TestInterpolate_Idempotent(t *testing.T) {
	doc := strings.Join([]string{
		"<!-- START: global.schema -->",
		"old",
		"<!-- END: global.schema -->",
	}, "\n")
	sections := map[string]string{"global.schema": "data_dir = \"<string>\""}

	once, err := Interpolate(doc, sections)
	require.NoError(t, err)
	twice, err := Interpolate(once, sections)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestInterpolate_EmptySectionLeavesMarkersAdjacent(t *testing.T) {
	doc := "<!-- START: s -->\nbody\n<!-- END: s -->"

	out, err := Interpolate(doc, map[string]string{"s": ""})
	require.NoError(t, err)
	assert.Equal(t, "<!-- START: s -->\n<!-- END: s -->", out)
}

func TestInterpolate_UnknownSection(t *testing.T) {
	doc := "<!-- START: missing -->\n<!-- END: missing -->"

	_, err := Interpolate(doc, map[string]string{})
	require.Error(t, err)
	assert.Equal(t, errors.KindDrift, errors.GetKind(err))
	assert.Contains(t, err.Error(), "missing")
}

func TestInterpolate_UnclosedMarker(t *testing.T) {
	doc := "<!-- START: s -->\nbody"

	_, err := Interpolate(doc, map[string]string{"s": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "never closed")
}

func TestDrift(t *testing.T) {
	diff, changed := Drift("docs/reference.md", "a\nb\n", "a\nb\n")
	assert.False(t, changed)
	assert.Empty(t, diff)

	diff, changed = Drift("docs/reference.md", "a\nb\n", "a\nc\n")
	assert.True(t, changed)
	assert.Contains(t, diff, "-b")
	assert.Contains(t, diff, "+c")
	assert.Contains(t, diff, "docs/reference.md")
}
