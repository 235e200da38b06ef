package emit

import (
	"errors"

	"github.com/roach88/glyphforge/internal/ir"
)

// ErrInvalidIdentifier is returned by a Formatter when a derived constant
// name is not a legal identifier in the target language.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// Module is the language-neutral form of the generated bindings.
//
// Categories are always declared before icons, so icon declarations may
// reference category constants without forward references.
type Module struct {
	Categories []CategoryConst
	Icons      []IconConst
	Reverse    []ReverseEntry // lookup table behind Parse
	Forward    []ForwardEntry // category key to icons
	Parse      ParseFunc
}

// CategoryConst declares a constant holding a category key.
type CategoryConst struct {
	Name string
	Key  string
}

// IconConst declares an icon metadata constant. Categories holds the names
// of CategoryConst declarations, not keys.
type IconConst struct {
	Name       string
	ClassName  string
	Unicode    string
	Categories []string
}

// ReverseEntry maps a class name to an IconConst name.
type ReverseEntry struct {
	Key  string
	Icon string
}

// ForwardEntry maps a category to the IconConst names it contains, in
// manifest order.
type ForwardEntry struct {
	Key      string
	Category string // CategoryConst name
	Icons    []string
}

// ParseFunc describes the generated lookup function. On a miss it warns
// with Message and returns a placeholder whose class name is the requested
// key, with empty unicode and no categories.
type ParseFunc struct {
	Message string
}

// ParseMissMessage completes "icon with key <key> ..." in generated
// warnings.
const ParseMissMessage = "requested but no definition found"

// Bindings builds the binding module for the catalog.
func Bindings(cat *ir.Catalog) *Module {
	categories := cat.Categories()
	icons := cat.Icons()

	m := &Module{
		Categories: make([]CategoryConst, len(categories)),
		Icons:      make([]IconConst, len(icons)),
		Reverse:    make([]ReverseEntry, len(icons)),
		Forward:    make([]ForwardEntry, len(categories)),
		Parse:      ParseFunc{Message: ParseMissMessage},
	}

	categoryConst := make(map[string]string, len(categories))
	for i, c := range categories {
		m.Categories[i] = CategoryConst{Name: c.PropertyName, Key: c.Key}
		categoryConst[c.Key] = c.PropertyName
	}

	iconConst := make(map[string]string, len(icons))
	for i, icon := range icons {
		refs := make([]string, len(icon.CategoryKeys))
		for j, key := range icon.CategoryKeys {
			refs[j] = categoryConst[key]
		}
		m.Icons[i] = IconConst{
			Name:       icon.PropertyName,
			ClassName:  icon.ClassName(),
			Unicode:    icon.Unicode,
			Categories: refs,
		}
		m.Reverse[i] = ReverseEntry{Key: icon.ClassName(), Icon: icon.PropertyName}
		iconConst[icon.Name] = icon.PropertyName
	}

	for i, c := range categories {
		refs := make([]string, len(c.IconNames))
		for j, name := range c.IconNames {
			refs[j] = iconConst[name]
		}
		m.Forward[i] = ForwardEntry{Key: c.Key, Category: c.PropertyName, Icons: refs}
	}

	return m
}

// GeneratedFile is one source file produced by a Formatter.
type GeneratedFile struct {
	Name string
	Data []byte
}

// Formatter renders a Module as source files for one target language.
type Formatter interface {
	// Target names the language; it doubles as the output subdirectory.
	Target() string
	Format(m *Module) ([]GeneratedFile, error)
}
