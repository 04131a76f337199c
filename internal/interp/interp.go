// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package interp splices generated config snippets into Markdown documents
// between sentinel comments and reports drift between generated and
// committed output.
package interp

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"grimm.is/pipedoc/internal/errors"
)

const (
	startPrefix = "<!-- START: "
	endPrefix   = "<!-- END: "
	markerSuffix = " -->"
)

// StartMarker returns the sentinel line opening the named section.
func StartMarker(name string) string { return startPrefix + name + markerSuffix }

// EndMarker returns the sentinel line closing the named section.
func EndMarker(name string) string { return endPrefix + name + markerSuffix }

// Interpolate replaces the body between each `<!-- START: name -->` /
// `<!-- END: name -->` marker pair with the rendered section of that name.
// The marker lines themselves are preserved. A marker naming an unknown
// section, or a START without a matching END, is fatal.
func Interpolate(doc string, sections map[string]string) (string, error) {
	lines := strings.Split(doc, "\n")
	var out []string

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		name, ok := markerName(line, startPrefix)
		if !ok {
			out = append(out, line)
			continue
		}

		content, known := sections[name]
		if !known {
			return "", errors.Attr(errors.Errorf(errors.KindDrift,
				"no rendered section for marker %q", name), "section", name)
		}

		out = append(out, line)
		if content != "" {
			out = append(out, strings.Split(content, "\n")...)
		}

		// Skip the stale body up to the matching END marker.
		end := -1
		for j := i + 1; j < len(lines); j++ {
			if n, ok := markerName(lines[j], endPrefix); ok && n == name {
				end = j
				break
			}
		}
		if end == -1 {
			return "", errors.Attr(errors.Errorf(errors.KindDrift,
				"marker %q is never closed", name), "section", name)
		}
		out = append(out, lines[end])
		i = end
	}

	return strings.Join(out, "\n"), nil
}

func markerName(line, prefix string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, prefix) || !strings.HasSuffix(trimmed, markerSuffix) {
		return "", false
	}
	return strings.TrimSuffix(strings.TrimPrefix(trimmed, prefix), markerSuffix), true
}

// Drift compares committed content against freshly generated content and
// returns a unified diff plus whether anything changed.
func Drift(path, committed, generated string) (string, bool) {
	if committed == generated {
		return "", false
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(committed),
		B:        difflib.SplitLines(generated),
		FromFile: path,
		ToFile:   path + " (generated)",
		Context:  3,
	}
	text, _ := difflib.GetUnifiedDiffString(diff)
	return text, true
}
