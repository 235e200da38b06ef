package emit

import (
	"bytes"
	_ "embed"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/roach88/glyphforge/internal/ir"
)

//go:embed preview.html.tmpl
var previewSource string

var previewTemplate = template.Must(template.New("preview").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(previewSource))

// PreviewOptions configures the preview page.
type PreviewOptions struct {
	Title      string
	Stylesheet string // href of the generated stylesheet
}

type previewGlyph struct {
	ClassName  string
	Source     string
	CodePoint  int
	Categories []string
}

// Preview renders the HTML preview page with one block per glyph, in glyph
// order. Each block shows the class name, the source file name and the
// decimal code point of the first character of the glyph's unicode (0 when
// empty). Category keys come from the catalog.
func Preview(cat *ir.Catalog, glyphs []ir.GlyphRecord, opts PreviewOptions) ([]byte, error) {
	data := struct {
		Title      string
		Stylesheet string
		Glyphs     []previewGlyph
	}{
		Title:      opts.Title,
		Stylesheet: opts.Stylesheet,
		Glyphs:     make([]previewGlyph, len(glyphs)),
	}

	for i, g := range glyphs {
		pg := previewGlyph{
			ClassName: ir.ClassName(g.Name),
			Source:    g.Name + ".svg",
			CodePoint: CodePoint(g.Unicode),
		}
		if icon, ok := cat.Icon(g.Name); ok {
			pg.Categories = icon.CategoryKeys
		}
		data.Glyphs[i] = pg
	}

	var buf bytes.Buffer
	if err := previewTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CodePoint returns the code point of the first character of s, or 0 for
// an empty string. Above U+FFFF this is the full code point, not the
// leading UTF-16 surrogate.
func CodePoint(s string) int {
	if s == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s)
	return int(r)
}
