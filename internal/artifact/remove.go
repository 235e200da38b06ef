package artifact

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"
)

// RemoveError reports the entry RemoveAll could not delete.
type RemoveError struct {
	Path string
	Err  error
}

func (e *RemoveError) Error() string {
	return fmt.Sprintf("remove %s: %v", e.Path, e.Err)
}

func (e *RemoveError) Unwrap() error {
	return e.Err
}

// RemoveAll deletes path and everything below it. Directories are walked
// with an explicit stack and removed after their children (post-order).
// The first failing entry stops the walk. A missing path is not an error.
func RemoveAll(fs billy.Filesystem, path string) error {
	info, err := fs.Lstat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return &RemoveError{Path: path, Err: err}
	}
	if !info.IsDir() {
		if err := fs.Remove(path); err != nil {
			return &RemoveError{Path: path, Err: err}
		}
		return nil
	}

	type frame struct {
		path     string
		expanded bool
	}
	stack := []frame{{path: path}}
	for len(stack) > 0 {
		top := len(stack) - 1
		if stack[top].expanded {
			dir := stack[top].path
			stack = stack[:top]
			if err := fs.Remove(dir); err != nil {
				return &RemoveError{Path: dir, Err: err}
			}
			continue
		}

		stack[top].expanded = true
		dir := stack[top].path
		entries, err := fs.ReadDir(dir)
		if err != nil {
			return &RemoveError{Path: dir, Err: err}
		}
		for _, entry := range entries {
			child := fs.Join(dir, entry.Name())
			if entry.IsDir() {
				stack = append(stack, frame{path: child})
				continue
			}
			if err := fs.Remove(child); err != nil {
				return &RemoveError{Path: child, Err: err}
			}
		}
	}
	return nil
}
