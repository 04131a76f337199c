// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import "grimm.is/pipedoc/internal/errors"

// ComponentKind is an explicit discriminator over the component variants.
// Sinks are split by egress method so renderers and sort logic can match
// exhaustively instead of relying on subclass dispatch.
type ComponentKind int

const (
	ComponentSource ComponentKind = iota
	ComponentTransform
	ComponentSinkBatching
	ComponentSinkExposing
	ComponentSinkStreaming
)

func (k ComponentKind) String() string {
	switch k {
	case ComponentSource:
		return "source"
	case ComponentTransform:
		return "transform"
	case ComponentSinkBatching:
		return "batching sink"
	case ComponentSinkExposing:
		return "exposing sink"
	case ComponentSinkStreaming:
		return "streaming sink"
	default:
		return "unknown"
	}
}

// Group returns the metadata group the component belongs to.
func (k ComponentKind) Group() string {
	switch k {
	case ComponentSource:
		return "sources"
	case ComponentTransform:
		return "transforms"
	default:
		return "sinks"
	}
}

// IsSink reports whether the kind is one of the sink variants.
func (k ComponentKind) IsSink() bool {
	switch k {
	case ComponentSinkBatching, ComponentSinkExposing, ComponentSinkStreaming:
		return true
	default:
		return false
	}
}

// Component is one source, transform, or sink described by the metadata
// document, with its root option tree and documentation sections.
type Component struct {
	Name        string
	Kind        ComponentKind
	Title       string
	Description string
	Options     []*Option
	Sections    []Section
}

// DocPath returns the table path used in rendered snippets, e.g.
// "sources.file" for the file source.
func (c *Component) DocPath() string {
	return c.Kind.Group() + "." + c.Name
}

// componentKind resolves the metadata `type` and `egress_method` fields to
// a component kind. Sinks must declare their egress method; other kinds
// must not.
func componentKind(name, typ, egress string) (ComponentKind, error) {
	switch typ {
	case "source", "transform":
		if egress != "" {
			return 0, metadataErr(name, "egress_method is only valid for sinks")
		}
		if typ == "source" {
			return ComponentSource, nil
		}
		return ComponentTransform, nil
	case "sink":
		switch egress {
		case "batching":
			return ComponentSinkBatching, nil
		case "exposing":
			return ComponentSinkExposing, nil
		case "streaming":
			return ComponentSinkStreaming, nil
		case "":
			return 0, metadataErr(name, "sink is missing egress_method")
		default:
			return 0, metadataErr(name, "unknown egress_method %q", egress)
		}
	default:
		return 0, metadataErr(name, "unknown component type %q", typ)
	}
}

func metadataErr(name, format string, args ...any) error {
	err := errors.Errorf(errors.KindMetadata, "component %q: "+format, append([]any{name}, args...)...)
	return errors.Attr(err, "component", name)
}
