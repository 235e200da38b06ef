package ir

// GlyphRecord is a single rendered icon as reported by the glyph renderer.
type GlyphRecord struct {
	Name    string `json:"name"`    // canonical icon key, no class prefix
	Unicode string `json:"unicode"` // assigned character(s)
}

// CategoryRecord is one entry of the hand-authored category manifest.
type CategoryRecord struct {
	Key   string   `json:"key"`
	Icons []string `json:"icons"` // references GlyphRecord.Name
}

// IconEntry is the catalog view of a glyph.
type IconEntry struct {
	Name         string   `json:"name"`
	PropertyName string   `json:"property_name"`
	Unicode      string   `json:"unicode"`
	CategoryKeys []string `json:"category_keys"` // manifest order
}

// ClassName returns the stylesheet class for the icon.
func (e IconEntry) ClassName() string {
	return ClassName(e.Name)
}

// CategoryEntry is the catalog view of a manifest category.
type CategoryEntry struct {
	Key          string   `json:"key"`
	PropertyName string   `json:"property_name"`
	IconNames    []string `json:"icon_names"` // manifest order
}

// ClassPrefix is prepended to icon names to form stylesheet class names
// and lookup keys.
const ClassPrefix = "icon-"

// ClassName returns the stylesheet class (and lookup key) for an icon name.
func ClassName(name string) string {
	return ClassPrefix + name
}

// Catalog is the validated, cross-referenced icon model.
//
// A Catalog is only produced by the compiler and must be treated as
// read-only. Accessors return copies of the top-level slices; the nested
// slices are shared and must not be modified.
type Catalog struct {
	icons         []IconEntry
	iconIndex     map[string]int
	categories    []CategoryEntry
	categoryIndex map[string]int
}

// NewCatalog assembles a catalog from already validated entries.
// Entry order is preserved and becomes the catalog iteration order.
func NewCatalog(icons []IconEntry, categories []CategoryEntry) *Catalog {
	c := &Catalog{
		icons:         icons,
		iconIndex:     make(map[string]int, len(icons)),
		categories:    categories,
		categoryIndex: make(map[string]int, len(categories)),
	}
	for i, icon := range icons {
		c.iconIndex[icon.Name] = i
	}
	for i, cat := range categories {
		c.categoryIndex[cat.Key] = i
	}
	return c
}

// Icons returns all icon entries in catalog order.
func (c *Catalog) Icons() []IconEntry {
	out := make([]IconEntry, len(c.icons))
	copy(out, c.icons)
	return out
}

// Categories returns all category entries in manifest order.
func (c *Catalog) Categories() []CategoryEntry {
	out := make([]CategoryEntry, len(c.categories))
	copy(out, c.categories)
	return out
}

// Icon looks up an icon by name.
func (c *Catalog) Icon(name string) (IconEntry, bool) {
	i, ok := c.iconIndex[name]
	if !ok {
		return IconEntry{}, false
	}
	return c.icons[i], true
}

// Category looks up a category by key.
func (c *Catalog) Category(key string) (CategoryEntry, bool) {
	i, ok := c.categoryIndex[key]
	if !ok {
		return CategoryEntry{}, false
	}
	return c.categories[i], true
}

// IconCount returns the number of icons in the catalog.
func (c *Catalog) IconCount() int {
	return len(c.icons)
}

// CategoryCount returns the number of categories in the catalog.
func (c *Catalog) CategoryCount() int {
	return len(c.categories)
}

// UncategorizedCount returns the number of icons that belong to no category.
func (c *Catalog) UncategorizedCount() int {
	n := 0
	for _, icon := range c.icons {
		if len(icon.CategoryKeys) == 0 {
			n++
		}
	}
	return n
}
