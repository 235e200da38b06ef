// Package emit derives every generated artifact from a validated catalog.
//
// Emitters are pure functions of an *ir.Catalog (and, for the preview page,
// the glyph records in render order). They never touch the filesystem:
// callers receive bytes and decide where to write them.
//
//   - Lookup produces the icon-keyed lookup document (icons.json).
//   - Bindings produces a language-neutral Module of constant declarations,
//     map entries and the parse function, which a Formatter renders into
//     source files for one target language.
//   - Preview renders the static HTML listing of every glyph.
package emit
