package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/roach88/glyphforge/internal/config"
	"github.com/roach88/glyphforge/internal/emit"
	"github.com/roach88/glyphforge/internal/pipeline"
	"github.com/roach88/glyphforge/internal/render"
	"github.com/roach88/glyphforge/internal/store"
)

// NewBuildCommand creates the build command.
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the icon font, preview, lookup table and bindings",
		Long: `Build the icon catalog from the SVG sources and the category manifest.

The glyphs, fonts and stylesheet are read from the render directory. The
catalog is validated, every artifact is staged in the build directory and
the output directory is replaced with the staged result.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(rootOpts, cmd)
		},
	}

	addSourceFlags(cmd)
	cmd.Flags().String("build-dir", config.DefaultBuildDir, "staging directory, cleared on every build")
	cmd.Flags().String("output-dir", config.DefaultOutputDir, "published output directory, replaced on every build")
	cmd.Flags().String("title", config.DefaultTitle, "preview page title")
	cmd.Flags().StringSlice("target", []string{config.TargetTypeScript}, "binding targets (typescript|go), repeatable")
	cmd.Flags().String("go-package", config.DefaultGoPackage, "package name of the generated Go bindings")

	return cmd
}

// addSourceFlags registers the flags shared by build and validate.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("svg-dir", config.DefaultSVGDir, "directory of SVG sources")
	cmd.Flags().String("categories", config.DefaultCategoriesFile, "category manifest (.json, .yaml or .cue)")
	cmd.Flags().String("render-dir", config.DefaultRenderDir, "directory holding the prerendered glyphs, fonts and stylesheet")
	cmd.Flags().String("font-name", config.DefaultFontName, "font family and artifact base name")
	addHistoryFlag(cmd)
}

func addHistoryFlag(cmd *cobra.Command) {
	cmd.Flags().String("history", config.DefaultHistoryFile, "build history database (empty disables)")
}

func runBuild(opts *RootOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	if opts.Config == nil {
		if err := opts.load(cmd); err != nil {
			return err
		}
		formatter = opts.formatter(cmd)
	}

	formatter.VerboseLog("Building %s from %s", opts.Config.FontName, opts.Config.SVGDir)
	popts := pipelineOptions(opts.Config, opts.Logger)
	history, err := openHistory(opts.Config, true)
	if err != nil {
		return formatter.Fail(ErrCodeHistory, err)
	}
	if history != nil {
		defer history.Close()
		popts.History = history
	}

	report, err := pipeline.Run(cmd.Context(), popts)
	if err != nil {
		return formatter.Fail(ErrorCode(err), err)
	}

	if formatter.Format == "json" {
		return formatter.Success(report)
	}
	writeReport(formatter.Writer, "Built", report)
	for _, path := range report.Artifacts {
		fmt.Fprintf(formatter.Writer, "  %s\n", path)
	}
	return nil
}

// pipelineOptions wires the filesystem, renderer and formatters for cfg.
func pipelineOptions(cfg *config.Config, logger *slog.Logger) pipeline.Options {
	fs := osfs.Default
	return pipeline.Options{
		FS:             fs,
		SVGDir:         cfg.SVGDir,
		CategoriesFile: cfg.CategoriesFile,
		BuildDir:       cfg.BuildDir,
		OutputDir:      cfg.OutputDir,
		FontName:       cfg.FontName,
		Title:          cfg.Title,
		Renderer: &render.DirRenderer{
			FS:       fs,
			Dir:      cfg.RenderDir,
			FontName: cfg.FontName,
			Logger:   logger,
		},
		Formatters: formatters(cfg),
		Logger:     logger,
	}
}

// formatters returns one binding formatter per configured target, in
// configuration order.
func formatters(cfg *config.Config) []emit.Formatter {
	out := make([]emit.Formatter, 0, len(cfg.Targets))
	for _, target := range cfg.Targets {
		switch target {
		case config.TargetTypeScript:
			out = append(out, emit.TypeScript{})
		case config.TargetGo:
			out = append(out, emit.Go{Package: cfg.GoPackage})
		}
	}
	return out
}

// openHistory opens the configured build history. It returns nil when
// history is disabled, or when create is false and no history exists yet.
func openHistory(cfg *config.Config, create bool) (*store.Store, error) {
	if cfg.HistoryFile == "" {
		return nil, nil
	}
	if !create {
		if _, err := os.Stat(cfg.HistoryFile); errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
	}
	return store.Open(cfg.HistoryFile)
}

func writeReport(w io.Writer, verb string, r *pipeline.Report) {
	fmt.Fprintf(w, "✓ %s catalog: %d icons, %d categories (%d uncategorized)\n",
		verb, r.Icons, r.Categories, r.Uncategorized)
	fmt.Fprintf(w, "  fingerprint: %s\n", r.Fingerprint)
	fmt.Fprintf(w, "  build id:    %s\n", r.BuildID)
	if r.PreviousBuildID != "" {
		state := "unchanged"
		if r.Changed {
			state = "changed"
		}
		fmt.Fprintf(w, "  %s since build %s\n", state, r.PreviousBuildID)
	}
}
