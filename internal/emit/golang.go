package emit

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"strconv"
	"strings"
)

// TargetGo is the Target of the Go formatter.
const TargetGo = "go"

// Go renders the bindings as a single Go source file.
type Go struct {
	Package string
}

func (Go) Target() string { return TargetGo }

// Format implements Formatter.
func (g Go) Format(m *Module) ([]GeneratedFile, error) {
	pkg := g.Package
	if pkg == "" {
		pkg = "icons"
	}
	if !token.IsIdentifier(pkg) {
		return nil, fmt.Errorf("go: package %q: %w", pkg, ErrInvalidIdentifier)
	}
	for _, c := range m.Categories {
		if !token.IsIdentifier(c.Name) {
			return nil, fmt.Errorf("go: category %q: %w %s", c.Key, ErrInvalidIdentifier, c.Name)
		}
	}
	for _, icon := range m.Icons {
		if !token.IsIdentifier(icon.Name) {
			return nil, fmt.Errorf("go: icon %q: %w %s", icon.ClassName, ErrInvalidIdentifier, icon.Name)
		}
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, `// Code generated by glyphforge. DO NOT EDIT.

package %s

import "log/slog"

// IconMetadata describes one icon of the font.
type IconMetadata struct {
	ClassName  string
	Unicode    string
	Categories []string
}
`, pkg)

	if len(m.Categories) > 0 {
		b.WriteString("\n// Category keys.\nconst (\n")
		for _, c := range m.Categories {
			fmt.Fprintf(&b, "%s = %s\n", c.Name, strconv.QuoteToASCII(c.Key))
		}
		b.WriteString(")\n")
	}

	if len(m.Icons) > 0 {
		b.WriteString("\n// Icons.\nvar (\n")
		for _, icon := range m.Icons {
			fmt.Fprintf(&b, "%s = IconMetadata{ClassName: %s, Unicode: %s, Categories: []string{%s}}\n",
				icon.Name, strconv.QuoteToASCII(icon.ClassName), strconv.QuoteToASCII(icon.Unicode),
				strings.Join(icon.Categories, ", "))
		}
		b.WriteString(")\n")
	}

	b.WriteString("\n// Categories maps a category key to its icons in manifest order.\nvar Categories = map[string][]IconMetadata{\n")
	for _, f := range m.Forward {
		fmt.Fprintf(&b, "%s: {%s},\n", f.Category, strings.Join(f.Icons, ", "))
	}
	b.WriteString("}\n")

	b.WriteString("\nvar icons = map[string]IconMetadata{\n")
	for _, r := range m.Reverse {
		fmt.Fprintf(&b, "%s: %s,\n", strconv.QuoteToASCII(r.Key), r.Icon)
	}
	b.WriteString("}\n")

	fmt.Fprintf(&b, `
// Parse returns the metadata registered for iconKey. Unknown keys are
// logged and resolve to a placeholder with empty unicode and no categories.
func Parse(iconKey string) IconMetadata {
	if m, ok := icons[iconKey]; ok {
		return m
	}
	slog.Warn(%s, "key", iconKey)
	return IconMetadata{ClassName: iconKey, Unicode: "", Categories: []string{}}
}
`, strconv.Quote("icon "+m.Parse.Message))

	src, err := format.Source(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("go: format generated source: %w", err)
	}
	return []GeneratedFile{{Name: "icons.go", Data: src}}, nil
}
