// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import "strings"

// TagStyle selects between the compact tag spellings used for trailing
// comments and the full spellings used in spec listings.
type TagStyle int

const (
	TagsShort TagStyle = iota
	TagsFull
)

// Tags derives the descriptive annotations for an option. The order is
// fixed: default-state, unit, enum, relevant-when.
func Tags(o *Option, style TagStyle) ([]string, error) {
	var tags []string

	switch {
	case o.Default != nil:
		if style == TagsFull {
			s, err := Serialize(*o.Default, StyleInline)
			if err != nil {
				return nil, err
			}
			tags = append(tags, "default: "+s)
		} else {
			tags = append(tags, "default")
		}
	case o.Optional():
		tags = append(tags, "no default")
	}

	if o.Unit != "" {
		tags = append(tags, o.Unit)
	}

	if len(o.Enum) > 0 {
		literals := make([]string, 0, len(o.Enum))
		for _, e := range o.Enum {
			s, err := Serialize(e.Value, StyleInline)
			if err != nil {
				return nil, err
			}
			literals = append(literals, s)
		}
		if len(literals) > 1 {
			tags = append(tags, "enum: "+strings.Join(literals, ", "))
		} else {
			tag := "must be: " + literals[0]
			if o.Optional() {
				tag += " (if supplied)"
			}
			tags = append(tags, tag)
		}
	}

	if len(o.RelevantWhen) > 0 {
		clauses := make([]string, 0, len(o.RelevantWhen))
		for _, c := range o.RelevantWhen {
			s, err := Serialize(c.Value, StyleInline)
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, c.Name+" = "+s)
		}
		verb := "relevant when "
		if o.Required() {
			verb = "required when "
		}
		tags = append(tags, verb+strings.Join(clauses, " or "))
	}

	return tags, nil
}
