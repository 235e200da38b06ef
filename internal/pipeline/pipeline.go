package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-git/go-billy/v5"

	"github.com/roach88/glyphforge/internal/artifact"
	"github.com/roach88/glyphforge/internal/compiler"
	"github.com/roach88/glyphforge/internal/emit"
	"github.com/roach88/glyphforge/internal/ir"
	"github.com/roach88/glyphforge/internal/render"
	"github.com/roach88/glyphforge/internal/store"
)

// History records published builds. *store.Store implements it.
type History interface {
	LatestBuild(ctx context.Context) (store.Build, bool, error)
	RecordBuild(ctx context.Context, b store.Build) (int64, bool, error)
}

// Options configures one build.
type Options struct {
	FS             billy.Filesystem
	SVGDir         string
	CategoriesFile string
	BuildDir       string
	OutputDir      string
	FontName       string
	Title          string
	Renderer       render.Renderer
	Formatters     []emit.Formatter
	BuildIDs       BuildIDGenerator // defaults to UUIDv7Generator
	History        History          // optional
	Logger         *slog.Logger
}

// Report summarizes a build or check.
//
// With a History configured, PreviousBuildID and PreviousFingerprint name
// the latest recorded build and Changed reports whether the catalog differs
// from it. Without a previous build Changed is true.
type Report struct {
	BuildID             string   `json:"build_id"`
	Fingerprint         string   `json:"fingerprint"`
	Icons               int      `json:"icons"`
	Categories          int      `json:"categories"`
	Uncategorized       int      `json:"uncategorized"`
	Changed             bool     `json:"changed"`
	PreviousBuildID     string   `json:"previous_build_id,omitempty"`
	PreviousFingerprint string   `json:"previous_fingerprint,omitempty"`
	Artifacts           []string `json:"artifacts,omitempty"`
}

type compiled struct {
	catalog *ir.Catalog
	glyphs  []ir.GlyphRecord
	render  *render.Result
	report  *Report
}

// Check discovers and renders the sources, loads the manifest and builds
// the catalog. Nothing is written.
func Check(ctx context.Context, opts Options) (*Report, error) {
	c, err := compile(ctx, opts)
	if err != nil {
		return nil, err
	}
	return c.report, nil
}

// Run performs a full build: Check, then emit every artifact, stage them in
// the build directory and publish them to the output directory. No file is
// written unless the catalog validated and the build and output directories
// are disjoint from each other and from the inputs.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if err := artifact.CheckLayout(opts.BuildDir, opts.OutputDir, opts.SVGDir, opts.CategoriesFile); err != nil {
		return nil, stageError(StageWrite, err)
	}
	c, err := compile(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger := loggerOf(opts)

	files, err := emitAll(c, opts)
	if err != nil {
		return nil, stageError(StageEmit, err)
	}

	w := &artifact.Writer{
		FS:        opts.FS,
		BuildDir:  opts.BuildDir,
		OutputDir: opts.OutputDir,
		Logger:    logger,
	}
	logger.Info("saving artifacts", "build_dir", opts.BuildDir, "files", len(files))
	if err := w.Stage(files); err != nil {
		return nil, stageError(StageWrite, err)
	}
	logger.Info("publishing artifacts", "output_dir", opts.OutputDir)
	published, err := w.Publish(files)
	if err != nil {
		return nil, stageError(StageWrite, err)
	}

	c.report.Artifacts = published

	if opts.History != nil {
		if _, _, err := opts.History.RecordBuild(ctx, store.Build{
			BuildID:       c.report.BuildID,
			Fingerprint:   c.report.Fingerprint,
			FontName:      opts.FontName,
			Icons:         c.report.Icons,
			Categories:    c.report.Categories,
			Uncategorized: c.report.Uncategorized,
			Artifacts:     published,
			ToolVersion:   ir.ToolVersion,
			SchemaVersion: ir.SchemaVersion,
		}); err != nil {
			return nil, stageError(StageHistory, err)
		}
	}

	logger.Info("build complete", "build_id", c.report.BuildID, "changed", c.report.Changed, "artifacts", len(published))
	return c.report, nil
}

func compile(ctx context.Context, opts Options) (*compiled, error) {
	if opts.FS == nil || opts.Renderer == nil {
		return nil, fmt.Errorf("pipeline: filesystem and renderer are required")
	}
	logger := loggerOf(opts)

	sources, err := render.DiscoverSources(opts.FS, opts.SVGDir)
	if err != nil {
		return nil, stageError(StageDiscover, err)
	}
	logger.Info("rendering glyphs", "sources", len(sources))

	result, err := opts.Renderer.Render(ctx, sources)
	if err != nil {
		return nil, stageError(StageRender, err)
	}
	glyphs, err := result.GlyphRecords()
	if err != nil {
		return nil, stageError(StageRender, err)
	}

	categories, err := compiler.LoadManifest(opts.FS, opts.CategoriesFile)
	if err != nil {
		return nil, stageError(StageManifest, err)
	}

	cat, err := compiler.Build(glyphs, categories)
	if err != nil {
		return nil, stageError(StageBuild, err)
	}
	fingerprint, err := ir.Fingerprint(cat)
	if err != nil {
		return nil, stageError(StageBuild, err)
	}

	ids := opts.BuildIDs
	if ids == nil {
		ids = UUIDv7Generator{}
	}
	report := &Report{
		BuildID:       ids.Generate(),
		Fingerprint:   fingerprint,
		Icons:         cat.IconCount(),
		Categories:    cat.CategoryCount(),
		Uncategorized: cat.UncategorizedCount(),
	}
	logger.Info("catalog built",
		"icons", report.Icons,
		"categories", report.Categories,
		"uncategorized", report.Uncategorized,
		"fingerprint", report.Fingerprint,
	)

	report.Changed = true
	if opts.History != nil {
		prev, ok, err := opts.History.LatestBuild(ctx)
		if err != nil {
			return nil, stageError(StageHistory, err)
		}
		if ok {
			report.PreviousBuildID = prev.BuildID
			report.PreviousFingerprint = prev.Fingerprint
			report.Changed = prev.Fingerprint != report.Fingerprint
			logger.Debug("compared with previous build", "previous_build_id", prev.BuildID, "changed", report.Changed)
		}
	}

	return &compiled{catalog: cat, glyphs: glyphs, render: result, report: report}, nil
}

func emitAll(c *compiled, opts Options) ([]artifact.File, error) {
	var files []artifact.File

	for _, format := range render.FontFormats {
		payload, ok := c.render.Fonts[format]
		if !ok {
			continue
		}
		files = append(files, artifact.File{
			Name: fmt.Sprintf("%s.%s", opts.FontName, format),
			Dest: artifact.DestRoot,
			Data: payload,
		})
	}
	stylesheet := opts.FontName + ".css"
	files = append(files, artifact.File{
		Name: stylesheet,
		Dest: artifact.DestRoot,
		Data: []byte(c.render.Stylesheet),
	})

	page, err := emit.Preview(c.catalog, c.glyphs, emit.PreviewOptions{
		Title:      opts.Title,
		Stylesheet: "./" + stylesheet,
	})
	if err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	files = append(files, artifact.File{Name: "index.html", Dest: artifact.DestRoot, Data: page})

	lookup, err := emit.Lookup(c.catalog).Encode()
	if err != nil {
		return nil, fmt.Errorf("lookup: %w", err)
	}
	files = append(files, artifact.File{Name: "icons.json", Dest: artifact.DestMobile, Data: lookup})

	module := emit.Bindings(c.catalog)
	for _, f := range opts.Formatters {
		generated, err := f.Format(module)
		if err != nil {
			return nil, err
		}
		for _, g := range generated {
			files = append(files, artifact.File{Name: g.Name, Dest: f.Target(), Data: g.Data})
		}
	}
	return files, nil
}

func loggerOf(opts Options) *slog.Logger {
	if opts.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return opts.Logger
}
