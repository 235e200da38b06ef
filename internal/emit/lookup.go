package emit

import (
	"bytes"
	"encoding/json"

	"github.com/roach88/glyphforge/internal/ir"
)

// LookupEntry is one icon of the lookup document.
type LookupEntry struct {
	Key        string // "icon-" + name
	Unicode    string
	Categories []string
}

// LookupDocument maps class names to unicode and category keys, in catalog
// order.
type LookupDocument struct {
	Entries []LookupEntry
}

// Lookup builds the lookup document for every icon in the catalog.
func Lookup(cat *ir.Catalog) LookupDocument {
	icons := cat.Icons()
	doc := LookupDocument{Entries: make([]LookupEntry, len(icons))}
	for i, icon := range icons {
		categories := make([]string, len(icon.CategoryKeys))
		copy(categories, icon.CategoryKeys)
		doc.Entries[i] = LookupEntry{
			Key:        icon.ClassName(),
			Unicode:    icon.Unicode,
			Categories: categories,
		}
	}
	return doc
}

// MarshalJSON writes the document as a JSON object whose keys keep entry
// order.
func (d LookupDocument) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range d.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(&buf, e.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		categories := e.Categories
		if categories == nil {
			categories = []string{}
		}
		if err := writeJSON(&buf, struct {
			Unicode    string   `json:"unicode"`
			Categories []string `json:"categories"`
		}{e.Unicode, categories}); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Encode returns the document indented by two spaces, without a trailing
// newline.
func (d LookupDocument) Encode() ([]byte, error) {
	compact, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1) // Encode appends a newline
	return nil
}
