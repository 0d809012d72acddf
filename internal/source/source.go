// Package source loads records into memory from files and SQLite tables.
//
// The format is chosen by file extension:
//
//	.yaml .yml              YAML list of mappings
//	.json                   JSON array of objects
//	.cue                    CUE list of structs, must be concrete
//	.db .sqlite .sqlite3    rows of one SQLite table, in rowid order
//
// YAML, JSON and CUE documents may hold the list at the top level or nested
// under Options.Path (dot separated, e.g. "data.people"). CUE defaults to
// the "records" field.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Record is one loaded item. Nested objects are Records or map[string]any,
// lists are []any.
type Record = map[string]any

// Format identifies a source encoding.
type Format string

const (
	FormatYAML   Format = "yaml"
	FormatJSON   Format = "json"
	FormatCUE    Format = "cue"
	FormatSQLite Format = "sqlite"
)

// DefaultCUEPath is the field a CUE source is read from when Options.Path is empty.
const DefaultCUEPath = "records"

// ErrUnsupportedFormat is returned for file extensions no loader handles.
var ErrUnsupportedFormat = errors.New("unsupported source format")

// Options selects the records inside a source.
type Options struct {
	// Path selects a nested list in YAML, JSON and CUE documents.
	Path string

	// Table names the SQLite table to read. Required for SQLite sources.
	Table string
}

// DetectFormat returns the Format for path's extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".cue":
		return FormatCUE, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load reads every record from the source at path.
func Load(path string, opts Options) ([]Record, error) {
	return LoadContext(context.Background(), path, opts)
}

// LoadContext is Load with a context for the SQLite query.
func LoadContext(ctx context.Context, path string, opts Options) ([]Record, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	if format == FormatSQLite {
		return loadSQLite(ctx, path, opts.Table)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	switch format {
	case FormatYAML:
		return decodeYAML(data, opts.Path)
	case FormatJSON:
		return decodeJSON(data, opts.Path)
	default:
		return decodeCUE(data, path, opts.Path)
	}
}

// selectList walks a dot-separated path through decoded mappings and
// returns the records of the list it ends on.
func selectList(doc any, path string) ([]Record, error) {
	current := doc
	if path != "" {
		for _, seg := range strings.Split(path, ".") {
			m, ok := current.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("path %q: %q is not inside a mapping", path, seg)
			}
			next, ok := m[seg]
			if !ok {
				return nil, fmt.Errorf("path %q: no field %q", path, seg)
			}
			current = next
		}
	}

	list, ok := current.([]any)
	if !ok {
		if path == "" {
			return nil, fmt.Errorf("expected a list of records at the top level, got %T (set a path)", current)
		}
		return nil, fmt.Errorf("path %q: expected a list of records, got %T", path, current)
	}
	return toRecords(list)
}

func toRecords(list []any) ([]Record, error) {
	records := make([]Record, len(list))
	for i, elem := range list {
		r, ok := elem.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %d: expected a mapping, got %T", i, elem)
		}
		records[i] = r
	}
	return records, nil
}
