// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"strconv"
	"strings"
	"time"

	"grimm.is/pipedoc/internal/errors"
)

// Style selects how hashes are laid out by Serialize.
type Style int

const (
	// StyleExpanded renders one `key = value` line per hash entry, with
	// nested values rendered inline.
	StyleExpanded Style = iota
	// StyleInline renders hashes as `{k = v, k = v}`.
	StyleInline
	// StyleFlatten renders nested hashes as dot-joined keys at a single
	// level (`a.b.c = v`).
	StyleFlatten
)

// Serialize converts a value into the target config-file syntax. Null
// entries inside hashes and arrays are dropped rather than emitted; a bare
// null has no rendering and is a serialization error.
func Serialize(v Value, style Style) (string, error) {
	switch v.Kind {
	case BoolKind:
		return strconv.FormatBool(v.Bool), nil
	case IntKind:
		return strconv.FormatInt(v.Int, 10), nil
	case FloatKind:
		return formatFloat(v.Float), nil
	case StringKind:
		return serializeString(v.Str), nil
	case DateKind:
		return v.Time.Format(dateLayout), nil
	case TimestampKind:
		// Canonical second-precision RFC3339, always UTC.
		return v.Time.UTC().Format(time.RFC3339), nil
	case ArrayKind:
		return serializeArray(v.Array)
	case HashKind:
		return serializeHash(v.Hash, style)
	default:
		return "", errors.Attr(errors.Errorf(errors.KindSerialization,
			"cannot serialize value of kind %q", v.Kind), "kind", v.Kind.String())
	}
}

func serializeString(s string) string {
	if strings.Contains(s, "\n") {
		// Triple-quoted block, content verbatim. The leading newline is
		// trimmed by the reader, and no trailing newline is added so the
		// value survives a round trip unchanged.
		return "\"\"\"\n" + s + "\"\"\""
	}
	return strconv.Quote(s)
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func serializeArray(elems []Value) (string, error) {
	kept := make([]Value, 0, len(elems))
	hasHash := false
	for _, e := range elems {
		if e.IsNull() {
			continue
		}
		if e.Kind == HashKind {
			hasHash = true
		}
		kept = append(kept, e)
	}

	parts := make([]string, 0, len(kept))
	for _, e := range kept {
		s, err := Serialize(e, StyleInline)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}

	if hasHash {
		return "[\n  " + strings.Join(parts, ",\n  ") + "\n]", nil
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

func serializeHash(entries []HashEntry, style Style) (string, error) {
	switch style {
	case StyleExpanded:
		lines, err := hashLines(entries)
		if err != nil {
			return "", err
		}
		return strings.Join(lines, "\n"), nil
	case StyleFlatten:
		lines, err := flattenLines(nil, entries)
		if err != nil {
			return "", err
		}
		return strings.Join(lines, "\n"), nil
	default:
		parts := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.Value.IsNull() {
				continue
			}
			s, err := Serialize(e.Value, StyleInline)
			if err != nil {
				return "", err
			}
			parts = append(parts, serializeKey(e.Key)+" = "+s)
		}
		return "{" + strings.Join(parts, ", ") + "}", nil
	}
}

func hashLines(entries []HashEntry) ([]string, error) {
	var lines []string
	for _, e := range entries {
		if e.Value.IsNull() {
			continue
		}
		s, err := Serialize(e.Value, StyleInline)
		if err != nil {
			return nil, err
		}
		lines = append(lines, serializeKey(e.Key)+" = "+s)
	}
	return lines, nil
}

func flattenLines(path []string, entries []HashEntry) ([]string, error) {
	var lines []string
	for _, e := range entries {
		if e.Value.IsNull() {
			continue
		}
		keyPath := append(append([]string(nil), path...), e.Key)
		if e.Value.Kind == HashKind {
			nested, err := flattenLines(keyPath, e.Value.Hash)
			if err != nil {
				return nil, err
			}
			lines = append(lines, nested...)
			continue
		}
		s, err := Serialize(e.Value, StyleInline)
		if err != nil {
			return nil, err
		}
		parts := make([]string, len(keyPath))
		for i, k := range keyPath {
			parts[i] = serializeKey(k)
		}
		lines = append(lines, strings.Join(parts, ".")+" = "+s)
	}
	return lines, nil
}

// serializeKey quotes keys that contain a dot, which would otherwise be
// read back as nested tables.
func serializeKey(k string) string {
	if strings.Contains(k, ".") {
		return strconv.Quote(k)
	}
	return k
}
