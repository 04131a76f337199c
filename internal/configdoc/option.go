// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"sort"
	"strings"

	"grimm.is/pipedoc/internal/errors"
)

// wildcardName is the metadata spelling of a dynamic-key option. It is
// checked only here, during construction; everything downstream dispatches
// on Option.Kind.
const wildcardName = "*"

// primitiveTypes is the closed set of non-table type tags, in the order
// used for wildcard type placeholders.
var primitiveTypes = []string{"string", "int", "float", "bool", "timestamp"}

func isPrimitiveType(t string) bool {
	for _, p := range primitiveTypes {
		if t == p {
			return true
		}
	}
	return false
}

func isValidType(t string) bool {
	if strings.HasPrefix(t, "[") && strings.HasSuffix(t, "]") {
		return isValidType(strings.TrimSuffix(strings.TrimPrefix(t, "["), "]"))
	}
	return t == "table" || t == wildcardName || isPrimitiveType(t)
}

// newOption finalizes a constructed option: it assigns the kind
// discriminator, fills in the category default, and enforces the
// construction invariants. Errors name the offending option.
func newOption(o *Option) (*Option, error) {
	switch {
	case o.Name == wildcardName:
		o.Kind = OptionWildcard
	case o.Type == "table":
		o.Kind = OptionTable
	default:
		o.Kind = OptionLeaf
	}

	if !isValidType(o.Type) {
		return nil, schemaErr(o.Name, "unknown type %q", o.Type)
	}

	if o.Category == "" {
		if o.Kind == OptionTable {
			o.Category = humanize(o.Name)
		} else {
			o.Category = "General"
		}
	}

	switch o.Kind {
	case OptionTable:
		if len(o.Options) == 0 {
			return nil, schemaErr(o.Name, "table option has no child options")
		}
		if len(o.Examples) > 0 {
			return nil, schemaErr(o.Name, "table option cannot carry examples")
		}
		if err := checkSiblingNames(o.Options); err != nil {
			return nil, err
		}
	case OptionWildcard:
		if len(o.Options) > 0 {
			return nil, schemaErr(o.Name, "wildcard option cannot nest child options")
		}
		for _, ex := range o.Examples {
			if ex.Name == "" {
				return nil, schemaErr(o.Name, "wildcard examples must be {name, value} records, not bare values")
			}
		}
	default:
		if len(o.Options) > 0 {
			return nil, schemaErr(o.Name, "only table options may nest child options")
		}
		for _, ex := range o.Examples {
			if ex.Name != "" {
				return nil, schemaErr(o.Name, "only wildcard options may use {name, value} example records")
			}
		}
		// Enum options need no hand-written examples, the literals are
		// the examples.
		if len(o.Examples) == 0 && len(o.Enum) > 0 {
			for _, e := range o.Enum {
				o.Examples = append(o.Examples, Example{Value: e.Value})
			}
		}
		if len(o.Examples) == 0 && o.Default == nil {
			return nil, schemaErr(o.Name, "option must carry at least one example or a default")
		}
	}

	return o, nil
}

func checkSiblingNames(opts []*Option) error {
	seen := make(map[string]bool, len(opts))
	for _, o := range opts {
		if seen[o.Name] {
			return schemaErr(o.Name, "duplicate sibling option name")
		}
		seen[o.Name] = true
	}
	return nil
}

func schemaErr(name, format string, args ...any) error {
	err := errors.Errorf(errors.KindSchema, "option %q: "+format, append([]any{name}, args...)...)
	return errors.Attr(err, "option", name)
}

// Required reports whether the option must be supplied: no default and
// omission is not semantically valid.
func (o *Option) Required() bool {
	return o.Default == nil && !o.Null
}

// Optional is the complement of Required.
func (o *Option) Optional() bool {
	return !o.Required()
}

// RelevantSections returns the sections whose referenced options contain
// this option's name exactly or as a dotted suffix (`buffer.type` matches
// an option named `type`).
func (o *Option) RelevantSections(sections []Section) []Section {
	var out []Section
	for _, s := range sections {
		for _, ref := range s.ReferencedOptions {
			if ref == o.Name || strings.HasSuffix(ref, "."+o.Name) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// Sibling ordering is declared through explicit rank tables rather than
// inferred from string prefixes: tables sort last, required options before
// optional ones, the General category first and Requests last, and the
// `type` and `inputs` names ahead of everything else.
var (
	categoryRank = map[string]int{
		"General":  0,
		"Requests": 2,
	}
	nameRank = map[string]int{
		"type":   0,
		"inputs": 1,
	}
)

const (
	defaultCategoryRank = 1
	defaultNameRank     = 2
)

type sortKey struct {
	bucket       int
	categoryRank int
	category     string
	nameRank     int
	name         string
}

func (o *Option) sortKey() sortKey {
	k := sortKey{category: o.Category, name: o.Name}

	switch {
	case o.Kind == OptionTable:
		k.bucket = 2
	case o.Required():
		k.bucket = 0
	default:
		k.bucket = 1
	}

	k.categoryRank = defaultCategoryRank
	if r, ok := categoryRank[o.Category]; ok {
		k.categoryRank = r
	}
	k.nameRank = defaultNameRank
	if r, ok := nameRank[o.Name]; ok {
		k.nameRank = r
	}

	return k
}

func (k sortKey) less(other sortKey) bool {
	if k.bucket != other.bucket {
		return k.bucket < other.bucket
	}
	if k.categoryRank != other.categoryRank {
		return k.categoryRank < other.categoryRank
	}
	if k.category != other.category {
		return k.category < other.category
	}
	if k.nameRank != other.nameRank {
		return k.nameRank < other.nameRank
	}
	return k.name < other.name
}

// sortOptions returns a sorted copy; the input is never mutated so the
// same tree can be rendered concurrently.
func sortOptions(opts []*Option) []*Option {
	sorted := make([]*Option, len(opts))
	copy(sorted, opts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].sortKey().less(sorted[j].sortKey())
	})
	return sorted
}

// humanize turns an option name like "batch_size" into "Batch Size".
func humanize(name string) string {
	parts := strings.Split(name, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
