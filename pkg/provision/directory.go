package provision

import (
	"fmt"

	"adprov/pkg/engine"
	"adprov/pkg/parser"
	"adprov/pkg/schema"
)

// LoadDirectory indexes an uploaded directory export (CSV or xlsx). The
// optional mapping JSON overrides header inference.
func LoadDirectory(data []byte, mappingJSON string) (*engine.DirectoryIndex, []parser.ParseWarning, error) {
	table, err := parser.ParseTable(data, "")
	if err != nil {
		return nil, nil, fmt.Errorf("parse directory export: %w", err)
	}
	entries := schema.NormalizeDirectory(table.Records, mappingJSON)
	return engine.BuildDirectoryIndex(entries), table.Warnings, nil
}
