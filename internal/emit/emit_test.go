package emit

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/roach88/glyphforge/internal/compiler"
	"github.com/roach88/glyphforge/internal/ir"
)

func fixtureGlyphs() []ir.GlyphRecord {
	return []ir.GlyphRecord{
		{Name: "home", Unicode: "\ue900"},
		{Name: "settings", Unicode: "\ue901"},
		{Name: "arrow-left", Unicode: "\ue902"},
		{Name: "trash", Unicode: "\ue903"},
	}
}

func fixtureCatalog(t *testing.T) *ir.Catalog {
	t.Helper()
	cat, err := compiler.Build(fixtureGlyphs(), []ir.CategoryRecord{
		{Key: "nav", Icons: []string{"home", "arrow-left"}},
		{Key: "account", Icons: []string{"settings", "home"}},
		{Key: "empty", Icons: []string{}},
	})
	require.NoError(t, err)
	return cat
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}
