// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

const exportLimit = 100000

// ExportYAML writes the catalog to catalogDir/export.yaml. It supports
// the same filters as Search.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) error {
	notes, err := s.exportNotes(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.catalogDir, "export.yaml")
	data, err := yaml.Marshal(notes)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the catalog to catalogDir/export.json. It supports
// the same filters as Search.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) error {
	notes, err := s.exportNotes(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.catalogDir, "export.json")
	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportNotes(ctx context.Context, opts QueryOptions) ([]Note, error) {
	if opts.MaxResults <= 0 {
		opts.MaxResults = exportLimit
	}
	notes, err := s.Search(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	return notes, nil
}
