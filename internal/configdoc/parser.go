// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"io"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
	"grimm.is/pipedoc/internal/errors"
)

// Metadata is the parsed declarative option-schema document: global
// options plus one entry per source, transform, and sink component, in
// document order.
type Metadata struct {
	Title       string
	Description string
	Options     []*Option
	Components  []*Component
	Sections    []Section
}

// Component returns the named component of the given group, or nil.
func (m *Metadata) Component(group, name string) *Component {
	for _, c := range m.Components {
		if c.Name == name && c.Kind.Group() == group {
			return c
		}
	}
	return nil
}

// ParseMetadataFile parses a metadata document from disk.
func ParseMetadataFile(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.KindMetadata, "opening metadata file %s", path)
	}
	defer f.Close()
	return ParseMetadata(f)
}

// ParseMetadata parses a metadata document. The YAML is walked as a node
// tree so that option order, hash-key order, and timestamp scalars survive
// decoding; scalar fields are then decoded strictly so unknown keys are
// fatal and name the offending node.
func ParseMetadata(r io.Reader) (*Metadata, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, errors.KindMetadata, "decoding metadata document")
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, errors.New(errors.KindMetadata, "metadata document is empty")
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.New(errors.KindMetadata, "metadata document root must be a mapping")
	}

	m := &Metadata{}
	for key, value := range mappingPairs(root) {
		switch key {
		case "title":
			m.Title = value.Value
		case "description":
			m.Description = value.Value
		case "sections":
			sections, err := parseSections(value)
			if err != nil {
				return nil, err
			}
			m.Sections = sections
		case "options":
			opts, err := parseOptions(value)
			if err != nil {
				return nil, err
			}
			m.Options = opts
		case "sources", "transforms", "sinks":
			components, err := parseComponents(key, value)
			if err != nil {
				return nil, err
			}
			m.Components = append(m.Components, components...)
		default:
			return nil, errors.Errorf(errors.KindMetadata, "unknown top-level metadata key %q", key)
		}
	}

	return m, nil
}

func parseComponents(group string, node *yaml.Node) ([]*Component, error) {
	if node.Kind != yaml.MappingNode {
		return nil, errors.Errorf(errors.KindMetadata, "%s must be a mapping of component name to definition", group)
	}

	// The group key carries the component type; sinks additionally
	// declare their egress method.
	typ := map[string]string{
		"sources":    "source",
		"transforms": "transform",
		"sinks":      "sink",
	}[group]

	var components []*Component
	for name, body := range mappingPairs(node) {
		c, err := parseComponent(typ, name, body)
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}
	return components, nil
}

func parseComponent(typ, name string, node *yaml.Node) (*Component, error) {
	if node.Kind != yaml.MappingNode {
		return nil, metadataErr(name, "component definition must be a mapping")
	}

	fields := make(map[string]any)
	var options []*Option
	var sections []Section

	for key, value := range mappingPairs(node) {
		switch key {
		case "options":
			opts, err := parseOptions(value)
			if err != nil {
				return nil, errors.Wrapf(err, errors.KindMetadata, "component %q", name)
			}
			options = opts
		case "sections":
			s, err := parseSections(value)
			if err != nil {
				return nil, errors.Wrapf(err, errors.KindMetadata, "component %q", name)
			}
			sections = s
		default:
			var v any
			if err := value.Decode(&v); err != nil {
				return nil, errors.Wrapf(err, errors.KindMetadata, "component %q: field %q", name, key)
			}
			fields[key] = v
		}
	}

	var raw struct {
		Title        string `mapstructure:"title"`
		Description  string `mapstructure:"description"`
		EgressMethod string `mapstructure:"egress_method"`
	}
	if err := decodeStrict(fields, &raw); err != nil {
		return nil, errors.Wrapf(err, errors.KindMetadata, "component %q", name)
	}

	kind, err := componentKind(name, typ, raw.EgressMethod)
	if err != nil {
		return nil, err
	}

	if err := checkSiblingNames(options); err != nil {
		return nil, errors.Wrapf(err, errors.KindMetadata, "component %q", name)
	}

	return &Component{
		Name:        name,
		Kind:        kind,
		Title:       raw.Title,
		Description: raw.Description,
		Options:     options,
		Sections:    sections,
	}, nil
}

func parseOptions(node *yaml.Node) ([]*Option, error) {
	if node.Kind != yaml.MappingNode {
		return nil, errors.New(errors.KindMetadata, "options must be a mapping of option name to definition")
	}

	var opts []*Option
	for name, body := range mappingPairs(node) {
		o, err := parseOption(name, body)
		if err != nil {
			return nil, err
		}
		opts = append(opts, o)
	}
	if err := checkSiblingNames(opts); err != nil {
		return nil, err
	}
	return opts, nil
}

func parseOption(name string, node *yaml.Node) (*Option, error) {
	if node.Kind != yaml.MappingNode {
		return nil, schemaErr(name, "option definition must be a mapping")
	}

	o := &Option{Name: name, Null: true}
	fields := make(map[string]any)

	for key, value := range mappingPairs(node) {
		var err error
		switch key {
		case "default":
			err = parseDefault(o, value)
		case "enum":
			err = parseEnum(o, value)
		case "examples":
			err = parseExamples(o, value)
		case "relevant_when":
			err = parseRelevantWhen(o, value)
		case "options":
			o.Options, err = parseOptions(value)
		default:
			var v any
			if err := value.Decode(&v); err != nil {
				return nil, errors.Wrapf(err, errors.KindMetadata, "option %q: field %q", name, key)
			}
			fields[key] = v
		}
		if err != nil {
			return nil, errors.Wrapf(err, errors.KindSchema, "option %q", name)
		}
	}

	var raw struct {
		Type        string `mapstructure:"type"`
		Category    string `mapstructure:"category"`
		Unit        string `mapstructure:"unit"`
		Description string `mapstructure:"description"`
		Null        *bool  `mapstructure:"null"`
	}
	if err := decodeStrict(fields, &raw); err != nil {
		return nil, errors.Wrapf(err, errors.KindMetadata, "option %q", name)
	}

	o.Type = raw.Type
	o.Category = raw.Category
	o.Unit = raw.Unit
	o.Description = raw.Description
	if raw.Null != nil {
		o.Null = *raw.Null
	}

	return newOption(o)
}

func parseDefault(o *Option, node *yaml.Node) error {
	v, err := valueFromYAML(node)
	if err != nil {
		return err
	}
	// An explicit `default: null` means "no default", not a null default.
	if !v.IsNull() {
		o.Default = &v
	}
	return nil
}

func parseEnum(o *Option, node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return errors.New(errors.KindSchema, "enum must be a mapping of literal to description")
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		literal, err := valueFromYAML(node.Content[i])
		if err != nil {
			return err
		}
		o.Enum = append(o.Enum, EnumEntry{
			Value:       literal,
			Description: node.Content[i+1].Value,
		})
	}
	return nil
}

func parseExamples(o *Option, node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return errors.New(errors.KindSchema, "examples must be a sequence")
	}
	for _, elem := range node.Content {
		// Wildcard examples are {name, value, comment?} records; plain
		// options carry bare values.
		if o.Name == wildcardName {
			ex, err := parseExampleRecord(elem)
			if err != nil {
				return err
			}
			o.Examples = append(o.Examples, ex)
			continue
		}
		v, err := valueFromYAML(elem)
		if err != nil {
			return err
		}
		o.Examples = append(o.Examples, Example{Value: v})
	}
	return nil
}

func parseExampleRecord(node *yaml.Node) (Example, error) {
	if node.Kind != yaml.MappingNode {
		return Example{}, errors.New(errors.KindSchema, "wildcard examples must be {name, value} records, not bare values")
	}

	var ex Example
	hasValue := false
	for key, value := range mappingPairs(node) {
		switch key {
		case "name":
			ex.Name = value.Value
		case "comment":
			ex.Comment = value.Value
		case "value":
			v, err := valueFromYAML(value)
			if err != nil {
				return Example{}, err
			}
			ex.Value = v
			hasValue = true
		default:
			return Example{}, errors.Errorf(errors.KindSchema, "unknown example record key %q", key)
		}
	}
	if ex.Name == "" || !hasValue {
		return Example{}, errors.New(errors.KindSchema, "wildcard example records need both name and value")
	}
	return ex, nil
}

func parseRelevantWhen(o *Option, node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return errors.New(errors.KindSchema, "relevant_when must be a mapping of option name to value(s)")
	}
	for key, value := range mappingPairs(node) {
		// A sequence fans out into one alternative condition per element.
		if value.Kind == yaml.SequenceNode {
			for _, elem := range value.Content {
				v, err := valueFromYAML(elem)
				if err != nil {
					return err
				}
				o.RelevantWhen = append(o.RelevantWhen, Condition{Name: key, Value: v})
			}
			continue
		}
		v, err := valueFromYAML(value)
		if err != nil {
			return err
		}
		o.RelevantWhen = append(o.RelevantWhen, Condition{Name: key, Value: v})
	}
	return nil
}

func parseSections(node *yaml.Node) ([]Section, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, errors.New(errors.KindMetadata, "sections must be a sequence")
	}
	var sections []Section
	for _, elem := range node.Content {
		var fields map[string]any
		if err := elem.Decode(&fields); err != nil {
			return nil, errors.Wrap(err, errors.KindMetadata, "decoding section")
		}
		var s Section
		if err := decodeStrict(fields, &s); err != nil {
			return nil, errors.Wrapf(err, errors.KindMetadata, "section %q", fields["title"])
		}
		sections = append(sections, s)
	}
	return sections, nil
}

// decodeStrict maps loosely typed metadata fields onto a typed struct,
// rejecting unknown keys so authoring typos fail loudly.
func decodeStrict(in map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
	})
	if err != nil {
		return errors.Wrap(err, errors.KindInternal, "building metadata decoder")
	}
	return dec.Decode(in)
}

// mappingPairs iterates the key/value pairs of a YAML mapping node in
// document order.
func mappingPairs(node *yaml.Node) func(yield func(string, *yaml.Node) bool) {
	return func(yield func(string, *yaml.Node) bool) {
		for i := 0; i+1 < len(node.Content); i += 2 {
			if !yield(node.Content[i].Value, node.Content[i+1]) {
				return
			}
		}
	}
}
