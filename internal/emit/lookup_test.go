package emit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/glyphforge/internal/compiler"
	"github.com/roach88/glyphforge/internal/ir"
)

func TestLookupGolden(t *testing.T) {
	data, err := Lookup(fixtureCatalog(t)).Encode()
	require.NoError(t, err)

	newGoldie(t).Assert(t, "lookup", data)
}

func TestLookupEntries(t *testing.T) {
	doc := Lookup(fixtureCatalog(t))

	require.Len(t, doc.Entries, 4)
	assert.Equal(t, LookupEntry{Key: "icon-home", Unicode: "\ue900", Categories: []string{"nav", "account"}}, doc.Entries[0])
	assert.Equal(t, "icon-arrow-left", doc.Entries[2].Key)
	assert.Equal(t, []string{}, doc.Entries[3].Categories)
}

func TestLookupRoundTripsThroughJSON(t *testing.T) {
	data, err := json.Marshal(Lookup(fixtureCatalog(t)))
	require.NoError(t, err)

	var decoded map[string]struct {
		Unicode    string   `json:"unicode"`
		Categories []string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 4)
	assert.Equal(t, "\ue903", decoded["icon-trash"].Unicode)
	assert.NotNil(t, decoded["icon-trash"].Categories)
	assert.Empty(t, decoded["icon-trash"].Categories)
}

func TestLookupEmptyCatalog(t *testing.T) {
	cat, err := compiler.Build(nil, nil)
	require.NoError(t, err)

	data, err := Lookup(cat).Encode()
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestLookupDoesNotEscapeHTML(t *testing.T) {
	doc := LookupDocument{Entries: []LookupEntry{{Key: "icon-a&b", Unicode: "<"}}}

	data, err := doc.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"icon-a&b":{"unicode":"<","categories":[]}}`, string(data))
}

func TestLookupIsStable(t *testing.T) {
	glyphs := fixtureGlyphs()
	first, err := Lookup(fixtureCatalog(t)).Encode()
	require.NoError(t, err)

	cat, err := compiler.Build(glyphs, []ir.CategoryRecord{
		{Key: "nav", Icons: []string{"home", "arrow-left"}},
		{Key: "account", Icons: []string{"settings", "home"}},
		{Key: "empty", Icons: []string{}},
	})
	require.NoError(t, err)
	second, err := Lookup(cat).Encode()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
