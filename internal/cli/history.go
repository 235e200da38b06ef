package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/glyphforge/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded builds, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	addHistoryFlag(cmd)
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 10, "number of builds to show (0 for all)")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	if opts.Config == nil {
		if err := opts.load(cmd); err != nil {
			return err
		}
		formatter = opts.formatter(cmd)
	}
	if opts.Config.HistoryFile == "" {
		return formatter.Fail(ErrCodeConfig, fmt.Errorf("build history is disabled"))
	}

	history, err := openHistory(opts.Config, false)
	if err != nil {
		return formatter.Fail(ErrCodeHistory, err)
	}
	builds := []store.Build{}
	if history != nil {
		defer history.Close()
		builds, err = history.ListBuilds(cmd.Context(), opts.Limit)
		if err != nil {
			return formatter.Fail(ErrCodeHistory, err)
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(builds)
	}
	if len(builds) == 0 {
		fmt.Fprintln(formatter.Writer, "No builds recorded")
		return nil
	}
	for _, b := range builds {
		fmt.Fprintf(formatter.Writer, "#%d %s  %s  %d icons, %d categories  (%s)\n",
			b.Seq, b.BuildID, shortFingerprint(b.Fingerprint), b.Icons, b.Categories, b.FontName)
	}
	return nil
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
