package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/glyphforge/internal/ir"
)

// Format identifies a font payload produced by the collaborator.
type Format string

const (
	FormatSVG   Format = "svg"
	FormatTTF   Format = "ttf"
	FormatEOT   Format = "eot"
	FormatWOFF  Format = "woff"
	FormatWOFF2 Format = "woff2"
)

// FontFormats lists every payload a complete render produces, in the order
// they are written.
var FontFormats = []Format{FormatSVG, FormatTTF, FormatEOT, FormatWOFF, FormatWOFF2}

// Metadata is the per-glyph metadata reported by the collaborator.
type Metadata struct {
	Name    string   `json:"name"`
	Unicode []string `json:"unicode"`
}

// GlyphData is one rendered glyph. Only Metadata.Name and the first
// Metadata.Unicode entry are consumed.
type GlyphData struct {
	Metadata Metadata `json:"metadata"`
}

// Result is everything one render produces.
type Result struct {
	Glyphs     []GlyphData
	Fonts      map[Format][]byte
	Stylesheet string
}

// Renderer renders SVG sources into fonts and glyph metadata.
type Renderer interface {
	Render(ctx context.Context, sources []string) (*Result, error)
}

// GlyphRecords converts the collaborator's glyphs to catalog input,
// keeping their order. A glyph without an assigned character is an error.
func (r *Result) GlyphRecords() ([]ir.GlyphRecord, error) {
	records := make([]ir.GlyphRecord, len(r.Glyphs))
	for i, g := range r.Glyphs {
		if g.Metadata.Name == "" {
			return nil, &Error{Op: "glyphs", Path: fmt.Sprintf("glyphs[%d]", i), Err: ErrUnnamedGlyph}
		}
		if len(g.Metadata.Unicode) == 0 {
			return nil, &Error{Op: "glyphs", Path: g.Metadata.Name, Err: ErrNoUnicode}
		}
		records[i] = ir.GlyphRecord{Name: g.Metadata.Name, Unicode: g.Metadata.Unicode[0]}
	}
	return records, nil
}

// ReindentStylesheet replaces every run of four spaces with two.
func ReindentStylesheet(css string) string {
	return strings.ReplaceAll(css, "    ", "  ")
}
