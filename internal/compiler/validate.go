package compiler

import (
	"errors"
	"fmt"
)

// Validation error codes (E200-E299)
const (
	// Category errors (E201-E204)
	ErrCodeDuplicateCategory          = "E201" // category key declared twice
	ErrCodeDuplicateIcon              = "E202" // icon listed twice in one category
	ErrCodeUnknownIcon                = "E203" // category references an icon that was not rendered
	ErrCodeCategoryIdentifierConflict = "E204" // two category keys mangle to the same identifier

	// Icon errors (E205-E209)
	ErrCodeIconIdentifierConflict = "E205" // two icon names mangle to the same identifier
	ErrCodeDuplicateGlyph         = "E206" // renderer returned the same icon name twice
)

// Sentinel errors for errors.Is matching against a *ValidationError.
var (
	ErrDuplicateCategory           = errors.New("duplicate category key")
	ErrDuplicateIcon               = errors.New("duplicate icon in category")
	ErrUnknownIcon                 = errors.New("icon not found in processed icons")
	ErrCategoryIdentifierCollision = errors.New("category identifier collision")
	ErrIconIdentifierCollision     = errors.New("icon identifier collision")
	ErrDuplicateGlyph              = errors.New("duplicate glyph")
)

// ValidationError reports the first catalog invariant broken by the inputs.
type ValidationError struct {
	Code     string `json:"code"`
	Field    string `json:"field"`              // e.g. categories[2].icons[0]
	Category string `json:"category,omitempty"` // offending category key
	Icon     string `json:"icon,omitempty"`     // offending icon name
	Message  string `json:"message"`
	rule     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Unwrap exposes the broken rule so callers can use errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.rule
}

func duplicateCategoryError(index int, key string) *ValidationError {
	return &ValidationError{
		Code:     ErrCodeDuplicateCategory,
		Field:    fmt.Sprintf("categories[%d].key", index),
		Category: key,
		Message:  fmt.Sprintf("duplicate category key %q found", key),
		rule:     ErrDuplicateCategory,
	}
}

func categoryIdentifierError(index int, key, other, ident string) *ValidationError {
	return &ValidationError{
		Code:     ErrCodeCategoryIdentifierConflict,
		Field:    fmt.Sprintf("categories[%d].key", index),
		Category: key,
		Message:  fmt.Sprintf("category key %q derives identifier %s already used by category %q", key, ident, other),
		rule:     ErrCategoryIdentifierCollision,
	}
}

func duplicateIconError(index int, key, icon string) *ValidationError {
	return &ValidationError{
		Code:     ErrCodeDuplicateIcon,
		Field:    fmt.Sprintf("categories[%d].icons", index),
		Category: key,
		Icon:     icon,
		Message:  fmt.Sprintf("duplicate icon key %q found in category %q", icon, key),
		rule:     ErrDuplicateIcon,
	}
}

func unknownIconError(index, iconIndex int, key, icon string) *ValidationError {
	return &ValidationError{
		Code:     ErrCodeUnknownIcon,
		Field:    fmt.Sprintf("categories[%d].icons[%d]", index, iconIndex),
		Category: key,
		Icon:     icon,
		Message:  fmt.Sprintf("icon key %q not found in processed icons but specified in category key %q", icon, key),
		rule:     ErrUnknownIcon,
	}
}

func duplicateGlyphError(index int, name string) *ValidationError {
	return &ValidationError{
		Code:    ErrCodeDuplicateGlyph,
		Field:   fmt.Sprintf("glyphs[%d].name", index),
		Icon:    name,
		Message: fmt.Sprintf("icon %q was rendered more than once", name),
		rule:    ErrDuplicateGlyph,
	}
}

func iconIdentifierError(index int, name, other, ident string) *ValidationError {
	return &ValidationError{
		Code:    ErrCodeIconIdentifierConflict,
		Field:   fmt.Sprintf("glyphs[%d].name", index),
		Icon:    name,
		Message: fmt.Sprintf("icon %q derives identifier %s already used by icon %q", name, ident, other),
		rule:    ErrIconIdentifierCollision,
	}
}
