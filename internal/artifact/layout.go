package artifact

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrOverlap is returned by CheckLayout when a directory the Writer resets
// overlaps another directory or an input.
var ErrOverlap = errors.New("overlapping paths")

// CheckLayout reports whether buildDir and outputDir can be reset safely.
// They must differ and neither may contain the other. Neither may equal,
// contain or sit inside any of inputs. Empty paths are skipped.
func CheckLayout(buildDir, outputDir string, inputs ...string) error {
	if buildDir != "" && outputDir != "" && overlaps(buildDir, outputDir) {
		return fmt.Errorf("%w: build directory %s and output directory %s", ErrOverlap, buildDir, outputDir)
	}
	for _, in := range inputs {
		if in == "" {
			continue
		}
		for _, dir := range []string{buildDir, outputDir} {
			if dir != "" && overlaps(dir, in) {
				return fmt.Errorf("%w: %s would delete input %s", ErrOverlap, dir, in)
			}
		}
	}
	return nil
}

// overlaps reports whether a and b are the same path or one is below the
// other. Paths of mixed kinds (absolute and relative) never overlap.
func overlaps(a, b string) bool {
	a, b = filepath.Clean(a), filepath.Clean(b)
	if filepath.IsAbs(a) != filepath.IsAbs(b) {
		return false
	}
	return within(a, b) || within(b, a)
}

// within reports whether child is parent or lies below it.
func within(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
