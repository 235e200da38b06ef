package render

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// GlyphsFile is the glyph metadata file written by the collaborator.
const GlyphsFile = "glyphs.json"

// DirRenderer reads the output the collaborator left in Dir:
//
//	glyphs.json                 []GlyphData
//	<FontName>.svg|ttf|eot|woff|woff2
//	<FontName>.css
//
// Glyphs for sources that were not requested are dropped. Every requested
// source must have a glyph.
type DirRenderer struct {
	FS       billy.Filesystem
	Dir      string
	FontName string
	Logger   *slog.Logger
}

// Render implements Renderer.
func (r *DirRenderer) Render(ctx context.Context, sources []string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	glyphsPath := r.FS.Join(r.Dir, GlyphsFile)
	data, err := util.ReadFile(r.FS, glyphsPath)
	if err != nil {
		return nil, &Error{Op: "read", Path: glyphsPath, Err: err}
	}
	var all []GlyphData
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, &Error{Op: "read", Path: glyphsPath, Err: err}
	}

	requested := make(map[string]bool, len(sources))
	for _, src := range sources {
		requested[SourceName(src)] = false
	}

	glyphs := make([]GlyphData, 0, len(sources))
	for _, g := range all {
		seen, ok := requested[g.Metadata.Name]
		if !ok {
			logger.Debug("dropping glyph without source", "name", g.Metadata.Name)
			continue
		}
		if !seen {
			requested[g.Metadata.Name] = true
		}
		glyphs = append(glyphs, g)
	}
	for _, src := range sources {
		if !requested[SourceName(src)] {
			return nil, &Error{Op: "glyphs", Path: src, Err: ErrMissingGlyph}
		}
	}

	fonts := make(map[Format][]byte, len(FontFormats))
	for _, format := range FontFormats {
		path := r.FS.Join(r.Dir, fmt.Sprintf("%s.%s", r.FontName, format))
		payload, err := util.ReadFile(r.FS, path)
		if err != nil {
			return nil, &Error{Op: "read", Path: path, Err: err}
		}
		fonts[format] = payload
	}

	cssPath := r.FS.Join(r.Dir, r.FontName+".css")
	css, err := util.ReadFile(r.FS, cssPath)
	if err != nil {
		return nil, &Error{Op: "read", Path: cssPath, Err: err}
	}

	logger.Debug("render loaded", "dir", r.Dir, "glyphs", len(glyphs), "sources", len(sources))
	return &Result{
		Glyphs:     glyphs,
		Fonts:      fonts,
		Stylesheet: ReindentStylesheet(string(css)),
	}, nil
}
