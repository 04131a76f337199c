// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

// OptionKind discriminates the three shapes an option can take. It is
// assigned once at construction; renderers switch on it exhaustively
// instead of re-checking sentinel names.
type OptionKind int

const (
	// OptionLeaf is a plain option holding a concrete value.
	OptionLeaf OptionKind = iota
	// OptionTable is an option whose value is a nested set of named
	// child options.
	OptionTable
	// OptionWildcard is a table entry named "*" representing an open,
	// caller-defined set of keys.
	OptionWildcard
)

func (k OptionKind) String() string {
	switch k {
	case OptionTable:
		return "table"
	case OptionWildcard:
		return "wildcard"
	default:
		return "leaf"
	}
}

// Option describes a single configuration knob's schema metadata. Trees of
// Options are built once per generation run and never mutated while
// rendering.
type Option struct {
	Name        string
	Kind        OptionKind
	Type        string
	Category    string
	Description string
	Unit        string

	// Null reports whether omitting the option is semantically valid even
	// without a default.
	Null    bool
	Default *Value

	Enum         []EnumEntry
	Examples     []Example
	RelevantWhen []Condition
	Options      []*Option
}

// EnumEntry is one literal of an ordered enum, with its human description.
type EnumEntry struct {
	Value       Value
	Description string
}

// Example is one illustrative value for an option. Wildcard options use
// the record form (Name set, Comment optional); plain options carry a bare
// value with Name empty.
type Example struct {
	Name    string
	Value   Value
	Comment string
}

// Condition is one `name = value` clause of an option's relevant-when
// predicate. Multiple conditions are alternatives.
type Condition struct {
	Name  string
	Value Value
}

// Section is an external documentation section that may reference options
// by name or dotted path.
type Section struct {
	Title             string   `mapstructure:"title"`
	Body              string   `mapstructure:"body"`
	ReferencedOptions []string `mapstructure:"referenced_options"`
}
