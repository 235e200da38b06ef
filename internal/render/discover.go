package render

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// SourcePattern matches SVG sources at any depth below the source directory.
const SourcePattern = "**/*.svg"

// DiscoverSources returns every file under dir matching SourcePattern,
// sorted. A missing dir is reported as an *Error wrapping os.ErrNotExist;
// an existing dir without sources wraps ErrNoSources.
func DiscoverSources(fs billy.Filesystem, dir string) ([]string, error) {
	info, err := fs.Stat(dir)
	if err != nil {
		return nil, &Error{Op: "discover", Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &Error{Op: "discover", Path: dir, Err: os.ErrNotExist}
	}

	var sources []string
	err = util.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		ok, err := doublestar.Match(SourcePattern, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		if ok {
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil {
		return nil, &Error{Op: "discover", Path: dir, Err: err}
	}
	if len(sources) == 0 {
		return nil, &Error{Op: "discover", Path: dir, Err: ErrNoSources}
	}

	sort.Strings(sources)
	return sources, nil
}

// SourceName returns the icon name for a source path: its base name
// without the .svg extension.
func SourceName(source string) string {
	base := filepath.Base(source)
	return base[:len(base)-len(filepath.Ext(base))]
}
