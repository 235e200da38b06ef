package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/glyphforge/internal/config"
)

// RootOptions holds global flags for all commands, and the configuration
// resolved from them before a command runs.
type RootOptions struct {
	ConfigFile string
	Verbose    bool
	Format     string // "json" | "text"

	Config *config.Config
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// skipConfig marks commands that run without loading configuration.
const skipConfig = "glyphforge/skip-config"

// NewRootCommand creates the root command for the glyphforge CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "glyphforge",
		Short: "glyphforge - icon font catalog compiler",
		Long: `Compile a directory of SVG icons and a category manifest into an icon
font, a preview page, a mobile lookup table and typed bindings.

The catalog is validated before anything is written: duplicate categories,
duplicate or unknown icons and identifier collisions fail the build.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				err := fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
				return opts.formatter(cmd).Fail(ErrCodeConfig, err)
			}
			if cmd.Annotations[skipConfig] == "true" {
				return nil
			}
			return opts.load(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default: ./glyphforge.yaml if present)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewBuildCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewParseCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

// load resolves configuration for cmd and installs the logger. The config
// file, env vars and the command's flags all contribute.
func (o *RootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigFile, cmd.Flags())
	if err != nil {
		f := o.formatter(cmd)
		return f.Fail(ErrCodeConfig, err)
	}
	o.Config = cfg
	o.Format = cfg.Output
	o.Verbose = cfg.Verbose
	o.Logger = newLogger(o.formatter(cmd).GetErrWriter(), cfg.Verbose)
	if cfg.ConfigFile != "" {
		o.Logger.Debug("loaded config", "file", cfg.ConfigFile)
	}
	return nil
}

// formatter returns an OutputFormatter bound to cmd's writers.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// newLogger writes text logs to w. Warnings always show; verbose adds
// progress and debug output.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
