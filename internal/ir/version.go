package ir

// Version constants for the catalog schema and tool.
const (
	// SchemaVersion is the catalog fingerprint schema version.
	SchemaVersion = "1"

	// ToolVersion is the glyphforge version.
	ToolVersion = "0.1.0"
)
