package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/glyphforge/internal/artifact"
	"github.com/roach88/glyphforge/internal/compiler"
	"github.com/roach88/glyphforge/internal/config"
	"github.com/roach88/glyphforge/internal/pipeline"
)

// Exit codes for CLI commands.
const (
	ExitSuccess = 0   // Successful execution
	ExitFailure = 101 // Any failure: config, validation, render or write
)

// CLI error codes (E001-E099). Catalog validation failures keep their own
// E2xx codes from the compiler package.
const (
	ErrCodeGeneric  = "E001"
	ErrCodeConfig   = "E002" // configuration could not be loaded or is invalid
	ErrCodeDiscover = "E003" // SVG source directory missing or empty
	ErrCodeRender   = "E004" // renderer failed or returned unusable glyphs
	ErrCodeManifest = "E005" // category manifest unreadable or malformed
	ErrCodeEmit     = "E006" // an artifact could not be generated
	ErrCodeWrite    = "E007" // staging or publishing failed
	ErrCodeLookup   = "E008" // lookup document unreadable or key unknown
	ErrCodeHistory  = "E009" // build history unreadable or not writable
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil and ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// ErrorCode maps an error from any layer to its CLI error code.
func ErrorCode(err error) string {
	var ve *compiler.ValidationError
	if errors.As(err, &ve) {
		return ve.Code
	}
	if errors.Is(err, config.ErrInvalid) || errors.Is(err, artifact.ErrOverlap) {
		return ErrCodeConfig
	}
	var me *compiler.ManifestError
	if errors.As(err, &me) {
		return ErrCodeManifest
	}
	var pe *pipeline.Error
	if errors.As(err, &pe) {
		switch pe.Stage {
		case pipeline.StageDiscover:
			return ErrCodeDiscover
		case pipeline.StageRender:
			return ErrCodeRender
		case pipeline.StageManifest:
			return ErrCodeManifest
		case pipeline.StageEmit:
			return ErrCodeEmit
		case pipeline.StageWrite:
			return ErrCodeWrite
		case pipeline.StageHistory:
			return ErrCodeHistory
		}
	}
	return ErrCodeGeneric
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`              // "E001", "E203", etc.
	Message string      `json:"message"`           // human-readable message
	Details interface{} `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	// Human-readable text output
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	// Human-readable error
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err under code and returns the ExitError the command should
// return.
func (f *OutputFormatter) Fail(code string, err error) error {
	var details interface{}
	var ve *compiler.ValidationError
	if errors.As(err, &ve) {
		details = ve
	}
	_ = f.Error(code, err.Error(), details)
	return WrapExitError(ExitFailure, code, err)
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
