package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/yairfalse/virta/types"
)

// templateFile holds one parsed template. Sections other than Resources
// are carried as raw JSON so they round-trip untouched.
type templateFile struct {
	Graph    types.Graph
	sections map[string]json.RawMessage
}

// loadTemplate reads the resource graph from a generated template
func loadTemplate(path string) (*templateFile, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the CLI
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	graph := types.Graph{}
	if resources, ok := sections["Resources"]; ok {
		if err := json.Unmarshal(resources, &graph); err != nil {
			return nil, fmt.Errorf("failed to parse template resources: %w", err)
		}
	}

	return &templateFile{Graph: graph, sections: sections}, nil
}

// Save writes the wired graph back into the template
func (t *templateFile) Save(path string) error {
	resources, err := json.Marshal(t.Graph)
	if err != nil {
		return fmt.Errorf("failed to marshal resources: %w", err)
	}

	if t.sections == nil {
		t.sections = map[string]json.RawMessage{}
	}
	t.sections["Resources"] = resources

	data, err := json.MarshalIndent(t.sections, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal template: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}
	return nil
}
