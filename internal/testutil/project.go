package testutil

import (
	"encoding/json"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"

	"github.com/roach88/glyphforge/internal/ir"
	"github.com/roach88/glyphforge/internal/render"
)

// FontName is the font name used by WriteProject.
const FontName = "alloyicons"

// Project locates the inputs laid out by WriteProject.
type Project struct {
	Root           string
	SVGDir         string
	RenderDir      string
	CategoriesFile string
	BuildDir       string
	OutputDir      string
}

// SampleGlyphs returns three glyphs with private-use code points.
func SampleGlyphs() []ir.GlyphRecord {
	return []ir.GlyphRecord{
		{Name: "home", Unicode: "\ue900"},
		{Name: "settings", Unicode: "\ue901"},
		{Name: "arrow-left", Unicode: "\ue902"},
	}
}

// SampleManifest references home and arrow-left; settings stays
// uncategorized.
const SampleManifest = `{
  "categories": [
    { "key": "nav", "icons": ["home", "arrow-left"] },
    { "key": "common", "icons": ["home"] }
  ]
}`

// WriteTree writes path to content pairs into fs, creating parents.
func WriteTree(t testing.TB, fs billy.Filesystem, files map[string]string) {
	t.Helper()
	for path, content := range files {
		require.NoError(t, util.WriteFile(fs, path, []byte(content), 0o644))
	}
}

// WriteProject lays out an icon project under root: one SVG source per
// glyph, the collaborator's prerendered output and the category manifest.
func WriteProject(t testing.TB, fs billy.Filesystem, root string, glyphs []ir.GlyphRecord, manifest string) Project {
	t.Helper()
	p := Project{
		Root:           root,
		SVGDir:         fs.Join(root, "src", "svgs"),
		RenderDir:      fs.Join(root, ".render"),
		CategoriesFile: fs.Join(root, "src", "categories.json"),
		BuildDir:       fs.Join(root, ".build"),
		OutputDir:      fs.Join(root, "dist"),
	}

	data := make([]render.GlyphData, len(glyphs))
	files := map[string]string{p.CategoriesFile: manifest}
	for i, g := range glyphs {
		files[fs.Join(p.SVGDir, g.Name+".svg")] = `<svg xmlns="http://www.w3.org/2000/svg"/>`
		data[i] = render.GlyphData{Metadata: render.Metadata{Name: g.Name, Unicode: []string{g.Unicode}}}
	}
	glyphsJSON, err := json.Marshal(data)
	require.NoError(t, err)
	files[fs.Join(p.RenderDir, render.GlyphsFile)] = string(glyphsJSON)
	for _, format := range render.FontFormats {
		files[fs.Join(p.RenderDir, FontName+"."+string(format))] = "font:" + string(format)
	}
	files[fs.Join(p.RenderDir, FontName+".css")] = ".icon {\n    font-family: \"" + FontName + "\";\n}\n"

	WriteTree(t, fs, files)
	return p
}
