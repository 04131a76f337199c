// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package configdoc renders declarative option-schema metadata into config
// snippets for generated documentation.
//
// It parses a YAML metadata document describing the configuration options
// of each source, transform, and sink component and generates text in the
// target config-file syntax in several formats:
//   - examples: compact quick-start snippets, one value per option
//   - schema: abstract type placeholders, no concrete values
//   - spec: fully annotated reference listings
//   - defaults: only options carrying a default
//
// Rendering is a pure tree walk over immutable Option trees: identical
// inputs always produce identical output, so generated docs can be
// verified for drift in CI.
package configdoc
