// Package render is the seam between the catalog compiler and the glyph
// rendering collaborator.
//
// The collaborator turns a list of SVG sources into font payloads, a
// stylesheet and one glyph record per source. This package defines the
// Renderer interface, the wire shape of its result, source discovery and
// the implementations used by the CLI (DirRenderer) and by tests
// (StaticRenderer). It never parses vector graphics or allocates code
// points.
package render
