// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/article-history/pkg/types"
)

// ExportEntry is one article in an export file: the record plus its
// flattened output parameters.
type ExportEntry struct {
	Article string        `json:"article" yaml:"article"`
	Date    string        `json:"date" yaml:"date"`
	Hook    *string       `json:"hook,omitempty" yaml:"hook,omitempty"`
	NomPage *string       `json:"nompage,omitempty" yaml:"nompage,omitempty"`
	Params  []types.Param `json:"params" yaml:"params"`
}

// ExportYAML writes all stored records to <dir>/export.yaml and returns the path.
func (s *Store) ExportYAML(ctx context.Context) (string, error) {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	path := filepath.Join(s.dir, "export.yaml")
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes all stored records to <dir>/export.json and returns the path.
func (s *Store) ExportJSON(ctx context.Context) (string, error) {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	path := filepath.Join(s.dir, "export.json")
	return path, os.WriteFile(path, data, 0o644)
}

func (s *Store) exportEntries(ctx context.Context) ([]ExportEntry, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	entries := make([]ExportEntry, len(records))
	for i, r := range records {
		entries[i] = ExportEntry{
			Article: r.Article,
			Date:    r.Entry.Date,
			Hook:    r.Entry.Hook,
			NomPage: r.Entry.NomPage,
			Params:  types.Collect(r.Entry.ToParams()),
		}
	}
	return entries, nil
}
