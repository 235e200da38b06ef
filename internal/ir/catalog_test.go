package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogAccessors(t *testing.T) {
	cat := NewCatalog(
		[]IconEntry{
			{Name: "home", PropertyName: "ICON_HOME", Unicode: "\ue900", CategoryKeys: []string{"nav"}},
			{Name: "settings", PropertyName: "ICON_SETTINGS", Unicode: "\ue901", CategoryKeys: []string{}},
		},
		[]CategoryEntry{
			{Key: "nav", PropertyName: "CATEGORY_NAV", IconNames: []string{"home"}},
		},
	)

	assert.Equal(t, 2, cat.IconCount())
	assert.Equal(t, 1, cat.CategoryCount())
	assert.Equal(t, 1, cat.UncategorizedCount())

	home, ok := cat.Icon("home")
	require.True(t, ok)
	assert.Equal(t, "ICON_HOME", home.PropertyName)
	assert.Equal(t, "icon-home", home.ClassName())

	nav, ok := cat.Category("nav")
	require.True(t, ok)
	assert.Equal(t, []string{"home"}, nav.IconNames)

	_, ok = cat.Icon("ghost")
	assert.False(t, ok)
	_, ok = cat.Category("ghost")
	assert.False(t, ok)
}

func TestCatalogIconsReturnsCopy(t *testing.T) {
	cat := NewCatalog(
		[]IconEntry{{Name: "home", PropertyName: "ICON_HOME"}},
		[]CategoryEntry{{Key: "nav", PropertyName: "CATEGORY_NAV"}},
	)

	icons := cat.Icons()
	icons[0].Name = "mutated"
	categories := cat.Categories()
	categories[0].Key = "mutated"

	assert.Equal(t, "home", cat.Icons()[0].Name)
	assert.Equal(t, "nav", cat.Categories()[0].Key)
}

func TestClassName(t *testing.T) {
	assert.Equal(t, "icon-arrow-left", ClassName("arrow-left"))
}
