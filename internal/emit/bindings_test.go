package emit

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/glyphforge/internal/compiler"
	"github.com/roach88/glyphforge/internal/ir"
)

// =============================================================================
// Module
// =============================================================================

func TestBindingsModule(t *testing.T) {
	m := Bindings(fixtureCatalog(t))

	assert.Equal(t, []CategoryConst{
		{Name: "CATEGORY_NAV", Key: "nav"},
		{Name: "CATEGORY_ACCOUNT", Key: "account"},
		{Name: "CATEGORY_EMPTY", Key: "empty"},
	}, m.Categories)

	require.Len(t, m.Icons, 4)
	assert.Equal(t, IconConst{
		Name:       "ICON_HOME",
		ClassName:  "icon-home",
		Unicode:    "\ue900",
		Categories: []string{"CATEGORY_NAV", "CATEGORY_ACCOUNT"},
	}, m.Icons[0])
	assert.Empty(t, m.Icons[3].Categories)

	assert.Equal(t, ReverseEntry{Key: "icon-arrow-left", Icon: "ICON_ARROW_LEFT"}, m.Reverse[2])
	assert.Equal(t, []ForwardEntry{
		{Key: "nav", Category: "CATEGORY_NAV", Icons: []string{"ICON_HOME", "ICON_ARROW_LEFT"}},
		{Key: "account", Category: "CATEGORY_ACCOUNT", Icons: []string{"ICON_SETTINGS", "ICON_HOME"}},
		{Key: "empty", Category: "CATEGORY_EMPTY", Icons: []string{}},
	}, m.Forward)
	assert.Equal(t, ParseMissMessage, m.Parse.Message)
}

func TestBindingsCategoryReferencesResolve(t *testing.T) {
	m := Bindings(fixtureCatalog(t))

	declared := map[string]bool{}
	for _, c := range m.Categories {
		declared[c.Name] = true
	}
	for _, icon := range m.Icons {
		for _, ref := range icon.Categories {
			assert.True(t, declared[ref], "icon %s references undeclared %s", icon.Name, ref)
		}
	}
}

// =============================================================================
// TypeScript
// =============================================================================

func TestTypeScriptGolden(t *testing.T) {
	files, err := TypeScript{}.Format(Bindings(fixtureCatalog(t)))
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "IconUtils.ts", files[0].Name)
	newGoldie(t).Assert(t, "IconUtils.ts", files[0].Data)

	assert.Equal(t, "index.ts", files[1].Name)
	assert.Equal(t, "// tslint:disable\nexport * from './IconUtils';\n", string(files[1].Data))
}

func TestTypeScriptEmptyModule(t *testing.T) {
	cat, err := compiler.Build(nil, nil)
	require.NoError(t, err)

	files, err := TypeScript{}.Format(Bindings(cat))
	require.NoError(t, err)
	src := string(files[0].Data)
	assert.Contains(t, src, "public static readonly CATEGORIES: Readonly<Map<string, IconMetadata[]>> = new Map([]);")
	assert.Contains(t, src, "private static readonly ICONS: Readonly<Map<string, IconMetadata>> = new Map([]);")
}

func TestTypeScriptInvalidIdentifier(t *testing.T) {
	cat, err := compiler.Build([]ir.GlyphRecord{{Name: "a.b", Unicode: "x"}}, nil)
	require.NoError(t, err)

	_, err = TypeScript{}.Format(Bindings(cat))
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestTSQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"nav", `'nav'`},
		{"it's", `'it\'s'`},
		{`back\slash`, `'back\\slash'`},
		{"\ue900", `'\ue900'`},
		{"\U0001F600", `'\ud83d\ude00'`},
		{"line\nbreak", `'line\nbreak'`},
		{"bell\x07", `'bell\u0007'`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tsQuote(tt.in), "tsQuote(%q)", tt.in)
	}
}

// =============================================================================
// Go
// =============================================================================

func TestGoBindings(t *testing.T) {
	files, err := Go{Package: "alloyicons"}.Format(Bindings(fixtureCatalog(t)))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "icons.go", files[0].Name)

	src := string(files[0].Data)
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "icons.go", files[0].Data, parser.ParseComments)
	require.NoError(t, err)
	assert.Equal(t, "alloyicons", f.Name.Name)

	var decls []string
	ast.Inspect(f, func(n ast.Node) bool {
		if vs, ok := n.(*ast.ValueSpec); ok {
			for _, name := range vs.Names {
				decls = append(decls, name.Name)
			}
		}
		return true
	})
	assert.Equal(t, []string{
		"CATEGORY_NAV", "CATEGORY_ACCOUNT", "CATEGORY_EMPTY",
		"ICON_HOME", "ICON_SETTINGS", "ICON_ARROW_LEFT", "ICON_TRASH",
		"Categories", "icons",
	}, decls)

	assert.True(t, strings.HasPrefix(src, "// Code generated by glyphforge. DO NOT EDIT.\n"))
	assert.Contains(t, src, `CATEGORY_NAV     = "nav"`)
	assert.Contains(t, src, `Unicode: "\ue900", Categories: []string{CATEGORY_NAV, CATEGORY_ACCOUNT}}`)
	assert.Contains(t, src, `ICON_TRASH      = IconMetadata{ClassName: "icon-trash", Unicode: "\ue903", Categories: []string{}}`)
	assert.Contains(t, src, "CATEGORY_EMPTY:   {},")
	assert.Contains(t, src, `"icon-arrow-left": ICON_ARROW_LEFT,`)
	assert.Contains(t, src, `slog.Warn("icon requested but no definition found", "key", iconKey)`)
}

func TestGoBindingsDefaultPackage(t *testing.T) {
	cat, err := compiler.Build(nil, nil)
	require.NoError(t, err)

	files, err := Go{}.Format(Bindings(cat))
	require.NoError(t, err)

	f, err := parser.ParseFile(token.NewFileSet(), "icons.go", files[0].Data, 0)
	require.NoError(t, err)
	assert.Equal(t, "icons", f.Name.Name)
}

func TestGoBindingsInvalidIdentifier(t *testing.T) {
	cat, err := compiler.Build([]ir.GlyphRecord{{Name: "a b", Unicode: "x"}}, nil)
	require.NoError(t, err)

	_, err = Go{}.Format(Bindings(cat))
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	_, err = Go{Package: "my-icons"}.Format(Bindings(fixtureCatalog(t)))
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestFormatterTargets(t *testing.T) {
	var formatters = []Formatter{TypeScript{}, Go{}}
	assert.Equal(t, TargetTypeScript, formatters[0].Target())
	assert.Equal(t, TargetGo, formatters[1].Target())
}
