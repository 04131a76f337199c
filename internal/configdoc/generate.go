// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"strings"

	"grimm.is/pipedoc/internal/errors"
)

// Format selects the rendering produced by Generate.
type Format string

const (
	// FormatExamples is the compact quick-start rendering: one
	// representative value per option.
	FormatExamples Format = "examples"
	// FormatSchema renders abstract type placeholders instead of values.
	FormatSchema Format = "schema"
	// FormatSpec is the fully annotated reference rendering: description,
	// tag bullets, and one assignment per example value.
	FormatSpec Format = "spec"
	// FormatDefaults renders only options that carry a default, with that
	// default as the value.
	FormatDefaults Format = "defaults"
)

// Formats lists every supported format, in the order the driver emits them.
func Formats() []Format {
	return []Format{FormatExamples, FormatSchema, FormatSpec, FormatDefaults}
}

// GenerateOpts tunes a Generate call.
type GenerateOpts struct {
	// Titles groups sibling options under `# REQUIRED - <category>` /
	// `# OPTIONAL - <category>` headers. Sub-tables always render without
	// titles.
	Titles bool
}

const indentStep = "  "

// Generate walks an option tree and renders it in the requested format.
// The body is wrapped in a `[path]` header unless path is empty. The walk
// is pure: identical inputs always produce identical output.
func Generate(options []*Option, path string, format Format, opts GenerateOpts) (string, error) {
	var body []string

	var lastGroup string
	for _, o := range sortOptions(filterOptions(options, format)) {
		if o.Kind == OptionTable {
			sub, err := Generate(o.Options, joinPath(path, o.Name), format, GenerateOpts{})
			if err != nil {
				return "", err
			}
			if sub == "" {
				continue
			}
			if len(body) > 0 {
				body = append(body, "")
			}
			body = append(body, strings.Split(sub, "\n")...)
			lastGroup = ""
			continue
		}

		lines, err := renderLeaf(o, format)
		if err != nil {
			return "", err
		}
		if len(lines) == 0 {
			continue
		}

		startedGroup := false
		if opts.Titles {
			group := groupTitle(o)
			if group != lastGroup {
				if len(body) > 0 {
					body = append(body, "")
				}
				body = append(body, "# "+group)
				lastGroup = group
				startedGroup = true
			}
		}
		if format == FormatSpec && !startedGroup && len(body) > 0 {
			// Spec blocks carry their own comment header, keep them apart.
			body = append(body, "")
		}

		body = append(body, lines...)
	}

	if len(body) == 0 {
		return "", nil
	}

	if path == "" {
		return strings.Join(body, "\n"), nil
	}

	out := []string{"[" + path + "]"}
	for _, line := range body {
		if line == "" {
			out = append(out, "")
			continue
		}
		out = append(out, indentStep+line)
	}
	return strings.Join(out, "\n"), nil
}

func filterOptions(options []*Option, format Format) []*Option {
	if format != FormatDefaults {
		return options
	}
	kept := make([]*Option, 0, len(options))
	for _, o := range options {
		if o.Kind == OptionTable || o.Default != nil {
			kept = append(kept, o)
		}
	}
	return kept
}

func groupTitle(o *Option) string {
	if o.Required() {
		return "REQUIRED - " + o.Category
	}
	return "OPTIONAL - " + o.Category
}

func renderLeaf(o *Option, format Format) ([]string, error) {
	switch format {
	case FormatSchema:
		ts, err := TypeString(o.Type, o.Enum)
		if err != nil {
			return nil, err
		}
		return []string{o.Name + " = " + ts}, nil

	case FormatExamples, FormatDefaults:
		if o.Kind == OptionWildcard {
			return renderWildcard(o)
		}
		value, ok := leafValue(o, format)
		if !ok {
			return nil, nil
		}
		tags, err := Tags(o, TagsShort)
		if err != nil {
			return nil, err
		}
		line, err := assignment(o.Name, value, tags)
		if err != nil {
			return nil, err
		}
		return line, nil

	case FormatSpec:
		return renderSpec(o)

	default:
		return nil, errors.Errorf(errors.KindInternal, "unknown format %q", format)
	}
}

// leafValue picks the value shown for a leaf: the default in defaults
// format, otherwise the first example with the default as fallback.
func leafValue(o *Option, format Format) (Value, bool) {
	if format == FormatDefaults {
		if o.Default == nil {
			return Value{}, false
		}
		return *o.Default, true
	}
	if len(o.Examples) > 0 {
		return o.Examples[0].Value, true
	}
	if o.Default != nil {
		return *o.Default, true
	}
	return Value{}, false
}

// renderWildcard fans a wildcard option out into one assignment line per
// example record. Wildcards are never collapsed into a single map literal.
func renderWildcard(o *Option) ([]string, error) {
	var lines []string
	for _, ex := range o.Examples {
		var comments []string
		if ex.Comment != "" {
			comments = []string{ex.Comment}
		}
		line, err := assignment(ex.Name, ex.Value, comments)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line...)
	}
	return lines, nil
}

func renderSpec(o *Option) ([]string, error) {
	var lines []string

	if o.Description != "" {
		lines = append(lines, wrapComment(o.Description, 78)...)
	}

	tags, err := Tags(o, TagsFull)
	if err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		if len(lines) > 0 {
			lines = append(lines, "#")
		}
		for _, tag := range tags {
			lines = append(lines, "# * "+tag)
		}
	}

	if o.Kind == OptionWildcard {
		fanned, err := renderWildcard(o)
		if err != nil {
			return nil, err
		}
		return append(lines, fanned...), nil
	}

	values := make([]Value, 0, len(o.Examples))
	for _, ex := range o.Examples {
		values = append(values, ex.Value)
	}
	if len(values) == 0 && o.Default != nil {
		values = append(values, *o.Default)
	}
	for _, v := range values {
		line, err := assignment(o.Name, v, nil)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line...)
	}

	return lines, nil
}

// assignment renders `name = value`, splitting multi-line serializations
// into separate lines. Trailing comments are only attached to single-line
// values; a comment after a `"""` or block-array opener would become part
// of the value.
func assignment(name string, value Value, comments []string) ([]string, error) {
	s, err := Serialize(value, StyleInline)
	if err != nil {
		return nil, errors.Attr(err, "option", name)
	}

	if strings.Contains(s, "\n") {
		return strings.Split(name+" = "+s, "\n"), nil
	}

	line := name + " = " + s
	if len(comments) > 0 {
		line += " # " + strings.Join(comments, ", ")
	}
	return []string{line}, nil
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// wrapComment greedily wraps prose into `# ` comment lines of at most
// width columns. Paragraph breaks in the source are preserved.
func wrapComment(text string, width int) []string {
	var lines []string
	for _, para := range strings.Split(strings.TrimSpace(text), "\n\n") {
		if len(lines) > 0 {
			lines = append(lines, "#")
		}
		line := "#"
		for _, word := range strings.Fields(para) {
			if line != "#" && len(line)+1+len(word) > width {
				lines = append(lines, line)
				line = "#"
			}
			line += " " + word
		}
		if line != "#" {
			lines = append(lines, line)
		}
	}
	return lines
}
