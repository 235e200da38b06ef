package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/glyphforge/internal/pipeline"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the catalog without writing artifacts",
		Long: `Discover the SVG sources, read the rendered glyphs and the category
manifest, and build the catalog. Reports the icon and category counts, the
catalog fingerprint and whether it changed since the last recorded build.
Nothing is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd)
		},
	}

	addSourceFlags(cmd)

	return cmd
}

func runValidate(opts *RootOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	if opts.Config == nil {
		if err := opts.load(cmd); err != nil {
			return err
		}
		formatter = opts.formatter(cmd)
	}

	popts := pipelineOptions(opts.Config, opts.Logger)
	history, err := openHistory(opts.Config, false)
	if err != nil {
		return formatter.Fail(ErrCodeHistory, err)
	}
	if history != nil {
		defer history.Close()
		popts.History = history
	}

	report, err := pipeline.Check(cmd.Context(), popts)
	if err != nil {
		return formatter.Fail(ErrorCode(err), err)
	}

	if formatter.Format == "json" {
		return formatter.Success(report)
	}
	writeReport(formatter.Writer, "Validated", report)
	return nil
}
