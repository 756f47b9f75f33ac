// Package dataset loads profile datasets from JSON or YAML files.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	domaindataset "github.com/semdiff/semdiff/domain/dataset"
)

// entryDocument is the on-disk shape of a dataset entry. Pointer fields
// distinguish missing fields from zero values so validation can reject
// incomplete entries.
type entryDocument struct {
	ID      *int64   `json:"id" yaml:"id"`
	Name    *string  `json:"name" yaml:"name"`
	Title   *string  `json:"title" yaml:"title"`
	Summary *string  `json:"summary" yaml:"summary"`
	Skills  []string `json:"skills" yaml:"skills"`
}

// Load reads a dataset file and returns its entries in file order. The
// format is chosen by extension: .yaml/.yml parse as YAML, everything else
// as JSON. Malformed input or missing required fields are fatal.
func Load(path string) ([]domaindataset.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	var entries []domaindataset.Entry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		entries, err = ParseYAML(data)
	default:
		entries, err = ParseJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}

	return entries, nil
}

// ParseJSON parses a JSON array of dataset entries.
func ParseJSON(data []byte) ([]domaindataset.Entry, error) {
	var docs []entryDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return toEntries(docs)
}

// ParseYAML parses a YAML sequence of dataset entries.
func ParseYAML(data []byte) ([]domaindataset.Entry, error) {
	var docs []entryDocument
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return toEntries(docs)
}

func toEntries(docs []entryDocument) ([]domaindataset.Entry, error) {
	entries := make([]domaindataset.Entry, len(docs))
	for i, doc := range docs {
		entry, err := doc.toEntry()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		entries[i] = entry
	}
	return entries, nil
}

func (d entryDocument) toEntry() (domaindataset.Entry, error) {
	switch {
	case d.ID == nil:
		return domaindataset.Entry{}, fmt.Errorf("missing required field %q", "id")
	case d.Name == nil:
		return domaindataset.Entry{}, fmt.Errorf("missing required field %q", "name")
	case d.Title == nil:
		return domaindataset.Entry{}, fmt.Errorf("missing required field %q", "title")
	case d.Summary == nil:
		return domaindataset.Entry{}, fmt.Errorf("missing required field %q", "summary")
	case d.Skills == nil:
		return domaindataset.Entry{}, fmt.Errorf("missing required field %q", "skills")
	}

	return domaindataset.NewEntry(*d.ID, *d.Name, *d.Title, *d.Summary, d.Skills), nil
}
