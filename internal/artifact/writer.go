package artifact

import (
	"fmt"
	"log/slog"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Output subdirectories of the publish directory.
const (
	DestRoot   = ""
	DestMobile = "mobile"
)

// File is one generated artifact. Dest is the subdirectory of the output
// directory it is published to.
type File struct {
	Name string
	Dest string
	Data []byte
}

// Path returns the file's slash-separated path relative to a root directory.
func (f File) Path() string {
	return path.Join(f.Dest, f.Name)
}

// Writer stages artifacts in BuildDir and publishes them to OutputDir.
// Both directories are deleted and recreated on every call.
type Writer struct {
	FS        billy.Filesystem
	BuildDir  string
	OutputDir string
	Logger    *slog.Logger
}

func (w *Writer) logger() *slog.Logger {
	if w.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return w.Logger
}

// Stage writes every file under BuildDir, keeping its Dest subdirectory.
func (w *Writer) Stage(files []File) error {
	if err := checkUnique(files); err != nil {
		return err
	}
	if err := CheckLayout(w.BuildDir, w.OutputDir); err != nil {
		return err
	}
	if err := w.reset(w.BuildDir); err != nil {
		return err
	}

	log := w.logger()
	for _, f := range files {
		target := w.FS.Join(w.BuildDir, f.Dest, f.Name)
		if err := util.WriteFile(w.FS, target, f.Data, 0o644); err != nil {
			return fmt.Errorf("stage %s: %w", target, err)
		}
		log.Debug("staged artifact", "path", target, "bytes", len(f.Data))
	}
	return nil
}

// Publish copies the staged files from BuildDir to OutputDir and returns
// the published paths in input order.
func (w *Writer) Publish(files []File) ([]string, error) {
	if err := CheckLayout(w.BuildDir, w.OutputDir); err != nil {
		return nil, err
	}
	if err := w.reset(w.OutputDir); err != nil {
		return nil, err
	}

	log := w.logger()
	published := make([]string, 0, len(files))
	for _, f := range files {
		src := w.FS.Join(w.BuildDir, f.Dest, f.Name)
		data, err := util.ReadFile(w.FS, src)
		if err != nil {
			return nil, fmt.Errorf("publish %s: %w", src, err)
		}
		dst := w.FS.Join(w.OutputDir, f.Dest, f.Name)
		if err := util.WriteFile(w.FS, dst, data, 0o644); err != nil {
			return nil, fmt.Errorf("publish %s: %w", dst, err)
		}
		log.Debug("published artifact", "path", dst)
		published = append(published, dst)
	}
	return published, nil
}

func (w *Writer) reset(dir string) error {
	if dir == "" {
		return fmt.Errorf("artifact directory not set")
	}
	if err := RemoveAll(w.FS, dir); err != nil {
		return err
	}
	if err := w.FS.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}

func checkUnique(files []File) error {
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		p := f.Path()
		if seen[p] {
			return fmt.Errorf("artifact %s produced twice", p)
		}
		seen[p] = true
	}
	return nil
}
