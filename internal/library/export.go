// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/edunex/study-engine/pkg/types"
)

// ExportYAML writes the resource list as YAML.
func ExportYAML(w io.Writer, resources []types.Resource) error {
	data, err := yaml.Marshal(resources)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing YAML export: %w", err)
	}
	return nil
}

// ExportJSON writes the resource list as indented JSON.
func ExportJSON(w io.Writer, resources []types.Resource) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resources); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}
