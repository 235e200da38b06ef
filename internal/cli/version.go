package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/glyphforge/internal/ir"
)

// VersionInfo is the JSON payload of the version command.
type VersionInfo struct {
	Version       string `json:"version"`
	SchemaVersion string `json:"schema_version"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the glyphforge version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := rootOpts.formatter(cmd)
			info := VersionInfo{Version: ir.ToolVersion, SchemaVersion: ir.SchemaVersion}
			if formatter.Format == "json" {
				return formatter.Success(info)
			}
			fmt.Fprintf(formatter.Writer, "glyphforge %s (catalog schema %s)\n", info.Version, info.SchemaVersion)
			return nil
		},
	}
}
