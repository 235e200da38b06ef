package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/glyphforge/internal/artifact"
	"github.com/roach88/glyphforge/internal/lookup"
)

// ParseOptions holds flags for the parse command.
type ParseOptions struct {
	*RootOptions
	Lookup string // icons.json path
	Strict bool   // fail on unknown keys
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ParseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "parse <icon-key>",
		Short: "Resolve an icon key against a built lookup table",
		Long: `Resolve an icon key against the mobile lookup table written by build.

Unknown keys behave like the generated bindings: a warning is logged and a
placeholder with an empty code point is returned. Use --strict to fail
instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Lookup, "lookup", "", "lookup table (default: <output-dir>/mobile/icons.json)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail when the key is not in the table")

	return cmd
}

func runParse(opts *ParseOptions, key string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	if opts.Config == nil {
		if err := opts.load(cmd); err != nil {
			return err
		}
		formatter = opts.formatter(cmd)
	}

	path := opts.Lookup
	if path == "" {
		path = filepath.Join(opts.Config.OutputDir, artifact.DestMobile, "icons.json")
	}
	formatter.VerboseLog("Reading lookup table %s", path)

	f, err := os.Open(path)
	if err != nil {
		return formatter.Fail(ErrCodeLookup, err)
	}
	defer f.Close()

	table, err := lookup.Load(f)
	if err != nil {
		return formatter.Fail(ErrCodeLookup, fmt.Errorf("%s: %w", path, err))
	}
	table.Logger = opts.Logger

	if opts.Strict {
		if _, ok := table.Lookup(key); !ok {
			return formatter.Fail(ErrCodeLookup, fmt.Errorf("icon %q not found in %s", key, path))
		}
	}
	meta := table.Parse(key)

	if formatter.Format == "json" {
		return formatter.Success(meta)
	}
	fmt.Fprintf(formatter.Writer, "%s\n", meta.ClassName)
	fmt.Fprintf(formatter.Writer, "  unicode:    %s\n", formatCodePoint(meta.Unicode))
	fmt.Fprintf(formatter.Writer, "  categories: %s\n", strings.Join(meta.Categories, ", "))
	return nil
}

// formatCodePoint renders s as U+XXXX code points, or "-" when empty.
func formatCodePoint(s string) string {
	if s == "" {
		return "-"
	}
	parts := make([]string, 0, len(s))
	for _, r := range s {
		parts = append(parts, fmt.Sprintf("U+%04X", r))
	}
	return strings.Join(parts, " ")
}
