package compiler

import (
	"os"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/glyphforge/internal/ir"
)

var wantManifest = []ir.CategoryRecord{
	{Key: "nav", Icons: []string{"home", "arrow-left"}},
	{Key: "account", Icons: []string{"user"}},
}

func TestParseManifestFormats(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     string
	}{
		{
			name:     "json",
			filename: "categories.json",
			data: `{
  "categories": [
    { "key": "nav", "icons": ["home", "arrow-left"] },
    { "key": "account", "icons": ["user"] }
  ]
}`,
		},
		{
			name:     "yaml",
			filename: "categories.yaml",
			data: `categories:
  - key: nav
    icons: [home, arrow-left]
  - key: account
    icons:
      - user
`,
		},
		{
			name:     "yml extension",
			filename: "categories.YML",
			data: `categories:
  - {key: nav, icons: [home, arrow-left]}
  - {key: account, icons: [user]}
`,
		},
		{
			name:     "cue",
			filename: "categories.cue",
			data: `categories: [
	{key: "nav", icons: ["home", "arrow-left"]},
	{key: "account", icons: ["user"]},
]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseManifest(tt.filename, []byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, wantManifest, got)
		})
	}
}

func TestParseManifestOptionalFields(t *testing.T) {
	got, err := ParseManifest("categories.json", []byte(`{
  "categories": [
    { "key": "empty" },
    { "key": "nav", "icons": ["home"], "description": "navigation" }
  ],
  "version": 2
}`))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{}, got[0].Icons)
	assert.Equal(t, []string{"home"}, got[1].Icons)
}

func TestParseManifestNoCategories(t *testing.T) {
	got, err := ParseManifest("categories.json", []byte(`{"categories": []}`))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseManifestDuplicateKeysSurviveLoading(t *testing.T) {
	// Duplicate keys are a catalog error, not a manifest error.
	got, err := ParseManifest("categories.json", []byte(`{
  "categories": [
    { "key": "nav", "icons": [] },
    { "key": "nav", "icons": [] }
  ]
}`))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     string
		contains string
	}{
		{"empty key", "categories.json", `{"categories": [{"key": "", "icons": []}]}`, "out of bound"},
		{"missing key", "categories.json", `{"categories": [{"icons": ["home"]}]}`, "key"},
		{"icons not a list", "categories.json", `{"categories": [{"key": "nav", "icons": "home"}]}`, "conflicting values"},
		{"icon not a string", "categories.yaml", "categories:\n  - key: nav\n    icons: [1]\n", "conflicting values"},
		{"malformed json", "categories.json", `{"categories": [`, ""},
		{"malformed yaml", "categories.yaml", "categories: [\n", ""},
		{"empty yaml", "categories.yaml", "", "empty"},
		{"malformed cue", "categories.cue", "categories: [", ""},
		{"unsupported extension", "categories.toml", `categories = []`, "unsupported manifest format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest(tt.filename, []byte(tt.data))
			require.Error(t, err)

			var merr *ManifestError
			require.ErrorAs(t, err, &merr)
			assert.Equal(t, tt.filename, merr.Path)
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestParseManifestErrorPosition(t *testing.T) {
	_, err := ParseManifest("categories.cue", []byte("categories: [\n\t{key: \"\"},\n]\n"))
	require.Error(t, err)

	var merr *ManifestError
	require.ErrorAs(t, err, &merr)
	// Position may or may not be resolved depending on CUE version
	if merr.Pos.IsValid() {
		assert.Equal(t, "categories.cue", merr.Pos.Filename())
		assert.Contains(t, err.Error(), "categories.cue:")
	}
}

func TestLoadManifest(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "src/categories.json",
		[]byte(`{"categories": [{"key": "nav", "icons": ["home", "arrow-left"]}, {"key": "account", "icons": ["user"]}]}`), 0o644))

	got, err := LoadManifest(fs, "src/categories.json")
	require.NoError(t, err)
	assert.Equal(t, wantManifest, got)
}

func TestLoadManifestMissingFile(t *testing.T) {
	_, err := LoadManifest(memfs.New(), "src/categories.json")
	require.Error(t, err)

	var merr *ManifestError
	require.ErrorAs(t, err, &merr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
