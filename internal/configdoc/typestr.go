// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import "strings"

// TypeString produces the abstract placeholder rendered for options
// without concrete values: `"<string>"`, `<int>`, `[<string>, ...]`,
// `{"a" | "b"}`.
func TypeString(typ string, enum []EnumEntry) (string, error) {
	if len(enum) > 0 {
		literals := make([]string, 0, len(enum))
		for _, e := range enum {
			s, err := Serialize(e.Value, StyleInline)
			if err != nil {
				return "", err
			}
			literals = append(literals, s)
		}
		if len(literals) == 1 {
			return literals[0], nil
		}
		return "{" + strings.Join(literals, " | ") + "}", nil
	}

	switch {
	case strings.HasPrefix(typ, "[") && strings.HasSuffix(typ, "]"):
		inner, err := TypeString(strings.TrimSuffix(strings.TrimPrefix(typ, "["), "]"), nil)
		if err != nil {
			return "", err
		}
		return "[" + inner + ", ...]", nil
	case typ == wildcardName:
		// Dynamic keys can hold any primitive, so render the whole union.
		placeholders := make([]string, 0, len(primitiveTypes))
		for _, p := range primitiveTypes {
			s, err := TypeString(p, nil)
			if err != nil {
				return "", err
			}
			placeholders = append(placeholders, s)
		}
		return "{" + strings.Join(placeholders, " | ") + "}", nil
	case typ == "string":
		// The placeholder is quoted because strings are quoted in the
		// target syntax.
		return `"<string>"`, nil
	default:
		return "<" + typ + ">", nil
	}
}
