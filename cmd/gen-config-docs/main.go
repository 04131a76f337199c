// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// gen-config-docs renders config snippets from the option metadata document.
//
// Usage:
//
//	go run ./cmd/gen-config-docs -metadata docs/metadata.yaml -format examples
//	go run ./cmd/gen-config-docs -metadata docs/metadata.yaml -format all -output docs/snippets
//	go run ./cmd/gen-config-docs -metadata docs/metadata.yaml -target docs/reference.md
//	go run ./cmd/gen-config-docs -metadata docs/metadata.yaml -target docs/reference.md -check
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"grimm.is/pipedoc/internal/configdoc"
	"grimm.is/pipedoc/internal/interp"
)

func main() {
	metadata := flag.String("metadata", "docs/metadata.yaml", "Option metadata document")
	format := flag.String("format", "examples", "Output format: examples, schema, spec, defaults, all")
	output := flag.String("output", "", "Output file (default: stdout, or a directory for 'all')")
	target := flag.String("target", "", "Markdown file to interpolate between sentinel markers")
	check := flag.Bool("check", false, "Report drift instead of writing; non-zero exit when out of date")
	flag.Parse()

	m, err := configdoc.ParseMetadataFile(*metadata)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing metadata: %v\n", err)
		os.Exit(1)
	}

	sections, err := renderSections(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering sections: %v\n", err)
		os.Exit(1)
	}

	if *target != "" {
		interpolateTarget(*target, sections, *check)
		return
	}

	switch configdoc.Format(*format) {
	case configdoc.FormatExamples, configdoc.FormatSchema, configdoc.FormatSpec, configdoc.FormatDefaults:
		content := assemble(m, sections, configdoc.Format(*format))
		if *check && *output != "" {
			reportDrift(*output, content)
			return
		}
		writeOutput(*output, content)

	case "all":
		outputDir := *output
		if outputDir == "" {
			outputDir = "docs/snippets"
		}
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
			os.Exit(1)
		}
		for _, f := range configdoc.Formats() {
			path := filepath.Join(outputDir, string(f)+".toml")
			writeOutput(path, assemble(m, sections, f))
		}

	default:
		fmt.Fprintf(os.Stderr, "Unknown format: %s\n", *format)
		os.Exit(1)
	}
}

// renderSections renders every component in every format, keyed the way
// sentinel markers name them: "sources.file.examples", "global.schema".
func renderSections(m *configdoc.Metadata) (map[string]string, error) {
	sections := make(map[string]string)

	for _, f := range configdoc.Formats() {
		global, err := configdoc.Generate(m.Options, "", f, configdoc.GenerateOpts{Titles: true})
		if err != nil {
			return nil, err
		}
		sections["global."+string(f)] = global

		for _, c := range m.Components {
			rendered, err := configdoc.Generate(c.Options, c.DocPath(), f, configdoc.GenerateOpts{Titles: true})
			if err != nil {
				return nil, fmt.Errorf("component %s: %w", c.DocPath(), err)
			}
			sections[c.DocPath()+"."+string(f)] = rendered
		}
	}

	return sections, nil
}

// assemble concatenates the global block and every component block of one
// format into a single document.
func assemble(m *configdoc.Metadata, sections map[string]string, f configdoc.Format) string {
	var parts []string
	if s := sections["global."+string(f)]; s != "" {
		parts = append(parts, s)
	}
	for _, c := range m.Components {
		if s := sections[c.DocPath()+"."+string(f)]; s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func interpolateTarget(path string, sections map[string]string, check bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading target: %v\n", err)
		os.Exit(1)
	}

	updated, err := interp.Interpolate(string(data), sections)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error interpolating %s: %v\n", path, err)
		os.Exit(1)
	}

	if check {
		if diff, changed := interp.Drift(path, string(data), updated); changed {
			fmt.Fprintf(os.Stderr, "%s is out of date:\n%s", path, diff)
			os.Exit(1)
		}
		fmt.Printf("%s is up to date\n", path)
		return
	}

	if updated == string(data) {
		fmt.Printf("%s not changed\n", path)
		return
	}
	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
		os.Exit(1)
	}
	fmt.Printf("%s updated\n", path)
}

func reportDrift(path, generated string) {
	committed, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
		os.Exit(1)
	}
	if diff, changed := interp.Drift(path, string(committed), generated); changed {
		fmt.Fprintf(os.Stderr, "%s is out of date:\n%s", path, diff)
		os.Exit(1)
	}
	fmt.Printf("%s is up to date\n", path)
}

func writeOutput(path, content string) {
	if path == "" {
		fmt.Print(content)
		return
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
			os.Exit(1)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated %s\n", path)
}
