package compiler

import (
	"github.com/roach88/glyphforge/internal/ir"
)

// Build reconciles the rendered glyphs against the category manifest and
// returns the validated catalog.
//
// Categories are processed in manifest order. For each category the checks
// run in this order, and the first failure aborts the build:
//
//  1. duplicate category key (E201)
//  2. category identifier collision (E204)
//  3. duplicate icon within the category (E202)
//  4. icon missing from the glyph set (E203)
//
// A final pass over the glyphs materializes every icon entry, including
// icons that no category references, and rejects duplicate glyph names
// (E206) and icon identifier collisions (E205).
//
// Build is pure: it does not retain or modify its inputs.
func Build(glyphs []ir.GlyphRecord, categories []ir.CategoryRecord) (*ir.Catalog, error) {
	rendered := make(map[string]struct{}, len(glyphs))
	for _, g := range glyphs {
		rendered[g.Name] = struct{}{}
	}

	var (
		catEntries  = make([]ir.CategoryEntry, 0, len(categories))
		keysSeen    = make(map[string]struct{}, len(categories))
		catIdents   = make(map[string]string, len(categories))
		memberships = make(map[string][]string)
	)

	for i, cat := range categories {
		if _, dup := keysSeen[cat.Key]; dup {
			return nil, duplicateCategoryError(i, cat.Key)
		}
		prop := PropertyName(NamespaceCategory, cat.Key)
		if other, taken := catIdents[prop]; taken {
			return nil, categoryIdentifierError(i, cat.Key, other, prop)
		}
		if dup, ok := firstDuplicate(cat.Icons); ok {
			return nil, duplicateIconError(i, cat.Key, dup)
		}
		for j, name := range cat.Icons {
			if _, ok := rendered[name]; !ok {
				return nil, unknownIconError(i, j, cat.Key, name)
			}
		}

		keysSeen[cat.Key] = struct{}{}
		catIdents[prop] = cat.Key

		// Forward and reverse indexes grow together.
		names := make([]string, len(cat.Icons))
		for j, name := range cat.Icons {
			names[j] = name
			memberships[name] = append(memberships[name], cat.Key)
		}
		catEntries = append(catEntries, ir.CategoryEntry{
			Key:          cat.Key,
			PropertyName: prop,
			IconNames:    names,
		})
	}

	iconEntries := make([]ir.IconEntry, 0, len(glyphs))
	namesSeen := make(map[string]struct{}, len(glyphs))
	iconIdents := make(map[string]string, len(glyphs))
	for i, g := range glyphs {
		if _, dup := namesSeen[g.Name]; dup {
			return nil, duplicateGlyphError(i, g.Name)
		}
		prop := PropertyName(NamespaceIcon, g.Name)
		if other, taken := iconIdents[prop]; taken {
			return nil, iconIdentifierError(i, g.Name, other, prop)
		}
		namesSeen[g.Name] = struct{}{}
		iconIdents[prop] = g.Name

		keys := memberships[g.Name]
		if keys == nil {
			keys = []string{}
		}
		iconEntries = append(iconEntries, ir.IconEntry{
			Name:         g.Name,
			PropertyName: prop,
			Unicode:      g.Unicode,
			CategoryKeys: keys,
		})
	}

	return ir.NewCatalog(iconEntries, catEntries), nil
}

// firstDuplicate counts occurrences in one pass and returns the first name,
// in order of first appearance, that occurs more than once.
func firstDuplicate(names []string) (string, bool) {
	counts := make(map[string]int, len(names))
	order := make([]string, 0, len(names))
	for _, name := range names {
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
	}
	for _, name := range order {
		if counts[name] > 1 {
			return name, true
		}
	}
	return "", false
}
