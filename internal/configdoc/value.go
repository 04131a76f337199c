// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	"grimm.is/pipedoc/internal/errors"
)

// ValueKind discriminates the closed set of value kinds the serializer
// understands. Anything outside this union is a fatal serialization error.
type ValueKind int

const (
	NullKind ValueKind = iota
	BoolKind
	IntKind
	FloatKind
	StringKind
	DateKind
	TimestampKind
	ArrayKind
	HashKind
)

func (k ValueKind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case StringKind:
		return "string"
	case DateKind:
		return "date"
	case TimestampKind:
		return "timestamp"
	case ArrayKind:
		return "array"
	case HashKind:
		return "hash"
	default:
		return "unknown"
	}
}

// Value is a tagged union over the closed value-kind set. Only the field
// matching Kind is meaningful.
type Value struct {
	Kind  ValueKind
	Bool  bool
	Int   int64
	Float float64
	Str   string
	Time  time.Time
	Array []Value
	Hash  []HashEntry
}

// HashEntry is one key/value pair of an ordered hash. Hashes keep the
// metadata author's key order so rendering stays deterministic.
type HashEntry struct {
	Key   string
	Value Value
}

func NullValue() Value                 { return Value{Kind: NullKind} }
func BoolValue(b bool) Value           { return Value{Kind: BoolKind, Bool: b} }
func IntValue(i int64) Value           { return Value{Kind: IntKind, Int: i} }
func FloatValue(f float64) Value       { return Value{Kind: FloatKind, Float: f} }
func StringValue(s string) Value       { return Value{Kind: StringKind, Str: s} }
func DateValue(t time.Time) Value      { return Value{Kind: DateKind, Time: t} }
func TimestampValue(t time.Time) Value { return Value{Kind: TimestampKind, Time: t} }
func ArrayValue(vs ...Value) Value     { return Value{Kind: ArrayKind, Array: vs} }

func HashValue(entries ...HashEntry) Value {
	return Value{Kind: HashKind, Hash: entries}
}

// IsNull reports whether the value is the null value.
func (v Value) IsNull() bool { return v.Kind == NullKind }

// Interface converts the value back to a native Go representation, with
// hashes becoming map[string]any. Used by tests and callers that need to
// compare against re-parsed output.
func (v Value) Interface() any {
	switch v.Kind {
	case NullKind:
		return nil
	case BoolKind:
		return v.Bool
	case IntKind:
		return v.Int
	case FloatKind:
		return v.Float
	case StringKind:
		return v.Str
	case DateKind, TimestampKind:
		return v.Time
	case ArrayKind:
		out := make([]any, 0, len(v.Array))
		for _, e := range v.Array {
			if e.IsNull() {
				continue
			}
			out = append(out, e.Interface())
		}
		return out
	case HashKind:
		out := make(map[string]any, len(v.Hash))
		for _, e := range v.Hash {
			if e.Value.IsNull() {
				continue
			}
			out[e.Key] = e.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

const dateLayout = "2006-01-02"

// valueFromYAML builds a Value from a YAML node, preserving mapping key
// order and resolving !!timestamp scalars. Date-only scalars become
// DateKind, full timestamps TimestampKind.
func valueFromYAML(node *yaml.Node) (Value, error) {
	if node.Kind == yaml.AliasNode {
		return valueFromYAML(node.Alias)
	}

	switch node.Kind {
	case yaml.ScalarNode:
		return scalarFromYAML(node)
	case yaml.SequenceNode:
		vs := make([]Value, 0, len(node.Content))
		for _, c := range node.Content {
			v, err := valueFromYAML(c)
			if err != nil {
				return Value{}, err
			}
			vs = append(vs, v)
		}
		return Value{Kind: ArrayKind, Array: vs}, nil
	case yaml.MappingNode:
		entries := make([]HashEntry, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.Kind != yaml.ScalarNode {
				return Value{}, errors.Errorf(errors.KindSerialization,
					"hash key at line %d is not a scalar", key.Line)
			}
			v, err := valueFromYAML(node.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			entries = append(entries, HashEntry{Key: key.Value, Value: v})
		}
		return Value{Kind: HashKind, Hash: entries}, nil
	default:
		return Value{}, errors.Attr(errors.Errorf(errors.KindSerialization,
			"unsupported YAML node kind %d at line %d", node.Kind, node.Line), "kind", node.Kind)
	}
}

func scalarFromYAML(node *yaml.Node) (Value, error) {
	switch node.Tag {
	case "!!null":
		return NullValue(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Value{}, errors.Wrap(err, errors.KindSerialization, "decoding bool scalar")
		}
		return BoolValue(b), nil
	case "!!int":
		i, err := strconv.ParseInt(node.Value, 0, 64)
		if err != nil {
			return Value{}, errors.Wrapf(err, errors.KindSerialization, "decoding int scalar %q", node.Value)
		}
		return IntValue(i), nil
	case "!!float":
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return Value{}, errors.Wrapf(err, errors.KindSerialization, "decoding float scalar %q", node.Value)
		}
		return FloatValue(f), nil
	case "!!str", "":
		return StringValue(node.Value), nil
	case "!!timestamp":
		if t, err := time.Parse(dateLayout, node.Value); err == nil {
			return DateValue(t), nil
		}
		var t time.Time
		if err := node.Decode(&t); err != nil {
			return Value{}, errors.Wrapf(err, errors.KindSerialization, "decoding timestamp scalar %q", node.Value)
		}
		return TimestampValue(t), nil
	default:
		return Value{}, errors.Attr(errors.Errorf(errors.KindSerialization,
			"unsupported value kind %q at line %d", strings.TrimPrefix(node.Tag, "!!"), node.Line),
			"kind", strings.TrimPrefix(node.Tag, "!!"))
	}
}
