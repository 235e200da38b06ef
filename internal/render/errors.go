package render

import (
	"errors"
	"fmt"
)

var (
	ErrNoSources    = errors.New("no svg sources found")
	ErrMissingGlyph = errors.New("no glyph rendered for source")
	ErrNoUnicode    = errors.New("glyph has no unicode assigned")
	ErrUnnamedGlyph = errors.New("glyph has no name")
)

// Error describes a failed render step.
type Error struct {
	Op   string // discover, read, glyphs
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("render %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
