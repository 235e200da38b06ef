package compiler

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Identifier namespaces. Icons and categories never collide with each other.
const (
	NamespaceIcon     = "ICON"
	NamespaceCategory = "CATEGORY"
)

// PropertyName derives the constant name used in generated bindings:
// namespace + "_" + upper(key), with every "-" replaced by "_".
//
// Uppercasing applies full Unicode special casing, so a sharp s expands to
// "SS" the same way String.prototype.toUpperCase does.
func PropertyName(namespace, key string) string {
	upper := cases.Upper(language.Und).String(key)
	return namespace + "_" + strings.ReplaceAll(upper, "-", "_")
}
