// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"grimm.is/pipedoc/internal/errors"
)

func mustOption(t *testing.T, o *Option) *Option {
	t.Helper()
	built, err := newOption(o)
	require.NoError(t, err)
	return built
}

func intPtr(i int64) *Value {
	v := IntValue(i)
	return &v
}

func TestNewOption_Kinds(t *testing.T) {
	leaf := mustOption(t, &Option{Name: "host", Type: "string", Null: true,
		Examples: []Example{{Value: StringValue("example.com")}}})
	assert.Equal(t, OptionLeaf, leaf.Kind)
	assert.Equal(t, "General", leaf.Category)

	table := mustOption(t, &Option{Name: "batch_size_limits", Type: "table", Null: true,
		Options: []*Option{
			{Name: "max", Type: "int", Null: true, Default: intPtr(10)},
		}})
	assert.Equal(t, OptionTable, table.Kind)
	assert.Equal(t, "Batch Size Limits", table.Category)

	wildcard := mustOption(t, &Option{Name: "*", Type: "*", Null: true,
		Examples: []Example{{Name: "region", Value: StringValue("us-east-1")}}})
	assert.Equal(t, OptionWildcard, wildcard.Kind)
}

func TestNewOption_RequiredDerivation(t *testing.T) {
	required := mustOption(t, &Option{Name: "type", Type: "string", Null: false,
		Examples: []Example{{Value: StringValue("http")}}})
	assert.True(t, required.Required())
	assert.False(t, required.Optional())

	defaulted := mustOption(t, &Option{Name: "batch_size", Type: "int", Null: false, Default: intPtr(1049000)})
	assert.False(t, defaulted.Required())

	nullable := mustOption(t, &Option{Name: "host", Type: "string", Null: true,
		Examples: []Example{{Value: StringValue("h")}}})
	assert.False(t, nullable.Required())
}

func TestNewOption_MissingExampleAndDefaultFails(t *testing.T) {
	_, err := newOption(&Option{Name: "foo", Type: "string", Null: false})
	require.Error(t, err)
	assert.Equal(t, errors.KindSchema, errors.GetKind(err))
	assert.Contains(t, err.Error(), "foo")
}

func TestNewOption_EnumDerivesExamples(t *testing.T) {
	o := mustOption(t, &Option{Name: "encoding", Type: "string", Null: false,
		Enum: []EnumEntry{
			{Value: StringValue("ndjson"), Description: "Newline-delimited JSON."},
			{Value: StringValue("text"), Description: "Raw text."},
		}})
	require.Len(t, o.Examples, 2)
	assert.Equal(t, StringValue("ndjson"), o.Examples[0].Value)
}

func TestNewOption_WildcardShapeEnforced(t *testing.T) {
	_, err := newOption(&Option{Name: "*", Type: "*", Null: true,
		Examples: []Example{{Value: StringValue("bare")}}})
	require.Error(t, err)
	assert.Equal(t, errors.KindSchema, errors.GetKind(err))

	_, err = newOption(&Option{Name: "host", Type: "string", Null: true,
		Examples: []Example{{Name: "host", Value: StringValue("x")}}})
	require.Error(t, err)
}

func TestNewOption_TableInvariants(t *testing.T) {
	_, err := newOption(&Option{Name: "buffer", Type: "table", Null: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "buffer")

	_, err = newOption(&Option{Name: "buffer", Type: "table", Null: true,
		Options: []*Option{
			mustOption(t, &Option{Name: "a", Type: "int", Null: true, Default: intPtr(1)}),
			mustOption(t, &Option{Name: "a", Type: "int", Null: true, Default: intPtr(2)}),
		}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate sibling")
}

func TestNewOption_UnknownTypeFails(t *testing.T) {
	_, err := newOption(&Option{Name: "x", Type: "decimal", Null: true, Default: intPtr(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decimal")
}

func TestSortOptions_TieBreaks(t *testing.T) {
	host := mustOption(t, &Option{Name: "host", Type: "string", Null: true,
		Examples: []Example{{Value: StringValue("h")}}})
	buffer := mustOption(t, &Option{Name: "buffer", Type: "table", Null: true,
		Options: []*Option{
			mustOption(t, &Option{Name: "max_size", Type: "int", Null: true, Default: intPtr(1)}),
		}})
	inputs := mustOption(t, &Option{Name: "inputs", Type: "[string]", Null: false,
		Examples: []Example{{Value: ArrayValue(StringValue("in"))}}})
	typ := mustOption(t, &Option{Name: "type", Type: "string", Null: false,
		Examples: []Example{{Value: StringValue("http")}}})

	sorted := sortOptions([]*Option{host, buffer, inputs, typ})

	names := make([]string, len(sorted))
	for i, o := range sorted {
		names[i] = o.Name
	}
	assert.Equal(t, []string{"type", "inputs", "host", "buffer"}, names)
}

func TestSortOptions_CategoryRanks(t *testing.T) {
	mk := func(name, category string) *Option {
		return mustOption(t, &Option{Name: name, Type: "string", Category: category, Null: true,
			Examples: []Example{{Value: StringValue("v")}}})
	}

	sorted := sortOptions([]*Option{
		mk("r", "Requests"),
		mk("b", "Batching"),
		mk("g", "General"),
		mk("a", "Auth"),
	})

	names := make([]string, len(sorted))
	for i, o := range sorted {
		names[i] = o.Name
	}
	// General first, Requests last, other categories alphabetical.
	assert.Equal(t, []string{"g", "a", "b", "r"}, names)
}

func TestSortOptions_DoesNotMutateInput(t *testing.T) {
	a := mustOption(t, &Option{Name: "zz", Type: "string", Null: true,
		Examples: []Example{{Value: StringValue("v")}}})
	b := mustOption(t, &Option{Name: "aa", Type: "string", Null: true,
		Examples: []Example{{Value: StringValue("v")}}})

	in := []*Option{a, b}
	sortOptions(in)
	assert.Equal(t, "zz", in[0].Name)
}

func TestRelevantSections(t *testing.T) {
	sections := []Section{
		{Title: "Buffers", ReferencedOptions: []string{"buffer.type"}},
		{Title: "Requests", ReferencedOptions: []string{"request.in_flight_limit"}},
		{Title: "Types", ReferencedOptions: []string{"type"}},
	}

	typ := mustOption(t, &Option{Name: "type", Type: "string", Null: false,
		Examples: []Example{{Value: StringValue("memory")}}})

	got := typ.RelevantSections(sections)
	require.Len(t, got, 2)
	assert.Equal(t, "Buffers", got[0].Title)
	assert.Equal(t, "Types", got[1].Title)
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Batch Size", humanize("batch_size"))
	assert.Equal(t, "Buffer", humanize("buffer"))
}
