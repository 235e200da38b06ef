package render

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/glyphforge/internal/ir"
)

func writeFiles(t *testing.T, fs billy.Filesystem, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, util.WriteFile(fs, name, []byte(content), 0o644))
	}
}

// =============================================================================
// Source discovery
// =============================================================================

func TestDiscoverSources(t *testing.T) {
	fs := memfs.New()
	writeFiles(t, fs, map[string]string{
		"src/svgs/settings.svg":     "<svg/>",
		"src/svgs/home.svg":         "<svg/>",
		"src/svgs/arrows/left.svg":  "<svg/>",
		"src/svgs/README.md":        "docs",
		"src/svgs/arrows/notes.txt": "x",
		"src/other/outside.svg":     "<svg/>",
	})

	sources, err := DiscoverSources(fs, "src/svgs")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"src/svgs/arrows/left.svg",
		"src/svgs/home.svg",
		"src/svgs/settings.svg",
	}, sources)
}

func TestDiscoverSourcesMissingDir(t *testing.T) {
	_, err := DiscoverSources(memfs.New(), "src/svgs")
	require.Error(t, err)

	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "discover", rerr.Op)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDiscoverSourcesNotADirectory(t *testing.T) {
	fs := memfs.New()
	writeFiles(t, fs, map[string]string{"src/svgs": "file"})

	_, err := DiscoverSources(fs, "src/svgs")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscoverSourcesEmpty(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("src/svgs", 0o755))

	_, err := DiscoverSources(fs, "src/svgs")
	assert.ErrorIs(t, err, ErrNoSources)
}

func TestSourceName(t *testing.T) {
	assert.Equal(t, "home", SourceName("src/svgs/home.svg"))
	assert.Equal(t, "arrow-left", SourceName("arrow-left.svg"))
	assert.Equal(t, "a.b", SourceName("x/a.b.svg"))
}

// =============================================================================
// Result conversion
// =============================================================================

func TestGlyphRecords(t *testing.T) {
	res := &Result{Glyphs: []GlyphData{
		{Metadata: Metadata{Name: "home", Unicode: []string{"\ue900", "\ue9ff"}}},
		{Metadata: Metadata{Name: "settings", Unicode: []string{"\ue901"}}},
	}}

	records, err := res.GlyphRecords()
	require.NoError(t, err)
	assert.Equal(t, []ir.GlyphRecord{
		{Name: "home", Unicode: "\ue900"},
		{Name: "settings", Unicode: "\ue901"},
	}, records)
}

func TestGlyphRecordsInvalid(t *testing.T) {
	_, err := (&Result{Glyphs: []GlyphData{{Metadata: Metadata{Name: "home"}}}}).GlyphRecords()
	assert.ErrorIs(t, err, ErrNoUnicode)

	_, err = (&Result{Glyphs: []GlyphData{{Metadata: Metadata{Unicode: []string{"a"}}}}}).GlyphRecords()
	assert.ErrorIs(t, err, ErrUnnamedGlyph)
}

func TestReindentStylesheet(t *testing.T) {
	in := ".icon {\n    font-family: alloyicons;\n        speak: none;\n}\n"
	want := ".icon {\n  font-family: alloyicons;\n    speak: none;\n}\n"
	assert.Equal(t, want, ReindentStylesheet(in))
}

// =============================================================================
// DirRenderer
// =============================================================================

func renderDir(t *testing.T) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	writeFiles(t, fs, map[string]string{
		".render/glyphs.json": `[
  {"metadata": {"name": "home", "unicode": ["\ue900"]}},
  {"metadata": {"name": "retired", "unicode": ["\ue901"]}},
  {"metadata": {"name": "settings", "unicode": ["\ue902"]}}
]`,
		".render/alloyicons.svg":   "<svg>font</svg>",
		".render/alloyicons.ttf":   "ttf",
		".render/alloyicons.eot":   "eot",
		".render/alloyicons.woff":  "woff",
		".render/alloyicons.woff2": "woff2",
		".render/alloyicons.css":   ".icon-home:before {\n    content: \"\\e900\";\n}\n",
	})
	return fs
}

func TestDirRendererRender(t *testing.T) {
	r := &DirRenderer{FS: renderDir(t), Dir: ".render", FontName: "alloyicons"}

	res, err := r.Render(context.Background(), []string{"src/svgs/home.svg", "src/svgs/settings.svg"})
	require.NoError(t, err)

	records, err := res.GlyphRecords()
	require.NoError(t, err)
	assert.Equal(t, []ir.GlyphRecord{
		{Name: "home", Unicode: "\ue900"},
		{Name: "settings", Unicode: "\ue902"},
	}, records)

	require.Len(t, res.Fonts, len(FontFormats))
	assert.Equal(t, []byte("woff2"), res.Fonts[FormatWOFF2])
	assert.Equal(t, ".icon-home:before {\n  content: \"\\e900\";\n}\n", res.Stylesheet)
}

func TestDirRendererMissingGlyph(t *testing.T) {
	r := &DirRenderer{FS: renderDir(t), Dir: ".render", FontName: "alloyicons"}

	_, err := r.Render(context.Background(), []string{"src/svgs/home.svg", "src/svgs/ghost.svg"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingGlyph)
	assert.Contains(t, err.Error(), "ghost.svg")
}

func TestDirRendererMissingFont(t *testing.T) {
	fs := renderDir(t)
	require.NoError(t, fs.Remove(".render/alloyicons.eot"))
	r := &DirRenderer{FS: fs, Dir: ".render", FontName: "alloyicons"}

	_, err := r.Render(context.Background(), []string{"home.svg"})
	require.Error(t, err)

	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "read", rerr.Op)
	assert.Equal(t, ".render/alloyicons.eot", rerr.Path)
}

func TestDirRendererMissingGlyphsFile(t *testing.T) {
	r := &DirRenderer{FS: memfs.New(), Dir: ".render", FontName: "alloyicons"}

	_, err := r.Render(context.Background(), []string{"home.svg"})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDirRendererMalformedGlyphs(t *testing.T) {
	fs := renderDir(t)
	writeFiles(t, fs, map[string]string{".render/glyphs.json": `{"not": "a list"}`})
	r := &DirRenderer{FS: fs, Dir: ".render", FontName: "alloyicons"}

	_, err := r.Render(context.Background(), []string{"home.svg"})
	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, ".render/glyphs.json", rerr.Path)
}

func TestDirRendererCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &DirRenderer{FS: renderDir(t), Dir: ".render", FontName: "alloyicons"}
	_, err := r.Render(ctx, []string{"home.svg"})
	assert.ErrorIs(t, err, context.Canceled)
}

// =============================================================================
// StaticRenderer
// =============================================================================

func TestStaticRenderer(t *testing.T) {
	want := &Result{Glyphs: []GlyphData{{Metadata: Metadata{Name: "home", Unicode: []string{"a"}}}}}
	r := &StaticRenderer{Result: want}

	got, err := r.Render(context.Background(), []string{"home.svg"})
	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Equal(t, []string{"home.svg"}, r.Sources)

	boom := errors.New("boom")
	r = &StaticRenderer{Err: boom}
	_, err = r.Render(context.Background(), nil)
	assert.ErrorIs(t, err, boom)
}
