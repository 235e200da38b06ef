package compiler

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	cuejson "cuelang.org/go/encoding/json"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"

	"github.com/roach88/glyphforge/internal/ir"
)

//go:embed schema.cue
var manifestSchema string

// ManifestError represents a manifest load failure with source position.
type ManifestError struct {
	Path    string
	Message string
	Pos     token.Pos
	Err     error
}

func (e *ManifestError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

type manifestFile struct {
	Categories []ir.CategoryRecord `json:"categories"`
}

// LoadManifest reads and validates the category manifest at path.
// The format is chosen by extension: .json, .yaml, .yml or .cue.
func LoadManifest(fsys billy.Filesystem, path string) ([]ir.CategoryRecord, error) {
	data, err := util.ReadFile(fsys, path)
	if err != nil {
		return nil, &ManifestError{Path: path, Message: err.Error(), Err: err}
	}
	return ParseManifest(path, data)
}

// ParseManifest validates manifest bytes against the embedded schema and
// decodes the categories in authored order. filename selects the format and
// appears in error positions.
func ParseManifest(filename string, data []byte) ([]ir.CategoryRecord, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(manifestSchema, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile manifest schema: %w", err)
	}

	var v cue.Value
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".json":
		expr, err := cuejson.Extract(filename, data)
		if err != nil {
			return nil, formatManifestError(filename, err)
		}
		v = ctx.BuildExpr(expr)
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &ManifestError{Path: filename, Message: err.Error(), Err: err}
		}
		if doc == nil {
			return nil, &ManifestError{Path: filename, Message: "manifest is empty"}
		}
		v = ctx.Encode(doc)
	case ".cue":
		v = ctx.CompileBytes(data, cue.Filename(filename))
	default:
		return nil, &ManifestError{
			Path:    filename,
			Message: fmt.Sprintf("unsupported manifest format %q (want .json, .yaml, .yml or .cue)", ext),
		}
	}
	if err := v.Err(); err != nil {
		return nil, formatManifestError(filename, err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Manifest")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatManifestError(filename, err)
	}

	var m manifestFile
	if err := unified.Decode(&m); err != nil {
		return nil, formatManifestError(filename, err)
	}
	for i := range m.Categories {
		if m.Categories[i].Icons == nil {
			m.Categories[i].Icons = []string{}
		}
	}
	return m.Categories, nil
}

// formatManifestError extracts position info from CUE errors, preferring a
// position inside the manifest over one inside the embedded schema.
func formatManifestError(path string, err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &ManifestError{Path: path, Message: err.Error(), Err: err}
	}

	first := errs[0]
	me := &ManifestError{Path: path, Message: first.Error(), Err: err}
	for _, pos := range errors.Positions(first) {
		if pos.Filename() == path {
			me.Pos = pos
			break
		}
	}
	return me
}
