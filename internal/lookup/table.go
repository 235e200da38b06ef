// Package lookup resolves icon keys against a published icons.json.
//
// Table.Parse follows the same policy as the generated bindings: an unknown
// key is logged and resolves to a placeholder instead of failing.
package lookup

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
)

// Metadata is the resolved form of one icon.
type Metadata struct {
	ClassName  string   `json:"class_name"`
	Unicode    string   `json:"unicode"`
	Categories []string `json:"categories"`
}

// Table is a loaded lookup document.
type Table struct {
	entries map[string]Metadata
	Logger  *slog.Logger
}

type entry struct {
	Unicode    string   `json:"unicode"`
	Categories []string `json:"categories"`
}

// Load reads an icons.json document.
func Load(r io.Reader) (*Table, error) {
	var raw map[string]entry
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode lookup document: %w", err)
	}

	t := &Table{entries: make(map[string]Metadata, len(raw))}
	for key, e := range raw {
		categories := e.Categories
		if categories == nil {
			categories = []string{}
		}
		t.entries[key] = Metadata{ClassName: key, Unicode: e.Unicode, Categories: categories}
	}
	return t, nil
}

// Len returns the number of icons in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Lookup returns the metadata for key and whether it was found.
func (t *Table) Lookup(key string) (Metadata, bool) {
	m, ok := t.entries[key]
	return m, ok
}

// Parse returns the metadata for key. Unknown keys are logged at warn
// level and resolve to a placeholder with empty unicode and no categories.
func (t *Table) Parse(key string) Metadata {
	if m, ok := t.entries[key]; ok {
		return m
	}
	logger := t.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("icon requested but no definition found", "key", key)
	return Metadata{ClassName: key, Unicode: "", Categories: []string{}}
}
