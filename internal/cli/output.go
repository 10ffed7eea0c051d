package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Process exit codes.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // a scenario failed
	ExitCommandError = 2 // bad input: paths, identifiers, declarations, config
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ExitError carries the exit code a command should terminate with.
type ExitError struct {
	Code    int
	Message string
	Err     error
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

// NewExitError returns an ExitError without an underlying cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError attaches code and message to err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode returns the code of the first ExitError in err's chain, or
// ExitFailure.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Response is the envelope every command writes in JSON mode.
type Response struct {
	Status string         `json:"status"` // ok | error
	Data   any            `json:"data,omitempty"`
	Error  *ResponseError `json:"error,omitempty"`
}

// ResponseError describes a failed command in JSON mode.
type ResponseError struct {
	Code    string `json:"code"` // e.g. INVALID_IDENTIFIER_FORMAT
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Printer writes command results as text or as a JSON Response.
type Printer struct {
	Format  string
	Writer  io.Writer
	Verbose bool

	// ErrWriter receives diagnostics; Writer when nil.
	ErrWriter io.Writer
}

// JSON reports whether p writes JSON envelopes.
func (p *Printer) JSON() bool {
	return p.Format == FormatJSON
}

// Success writes data. In text mode strings are written verbatim and other
// values on their own line.
func (p *Printer) Success(data any) error {
	if p.JSON() {
		return json.NewEncoder(p.Writer).Encode(Response{Status: "ok", Data: data})
	}
	if text, ok := data.(string); ok {
		_, err := io.WriteString(p.Writer, text)
		return err
	}
	_, err := fmt.Fprintln(p.Writer, data)
	return err
}

// Error writes a failure. Text mode shows details only when verbose.
func (p *Printer) Error(code, message string, details any) error {
	if p.JSON() {
		return json.NewEncoder(p.Writer).Encode(Response{
			Status: "error",
			Error:  &ResponseError{Code: code, Message: message, Details: details},
		})
	}
	if _, err := fmt.Fprintf(p.Writer, "Error [%s]: %s\n", code, message); err != nil {
		return err
	}
	if p.Verbose && details != nil {
		_, err := fmt.Fprintf(p.Writer, "Details: %v\n", details)
		return err
	}
	return nil
}

// Logf writes a diagnostic line when verbose. Diagnostics never go to
// Writer while ErrWriter is set, so JSON output stays parseable.
func (p *Printer) Logf(format string, args ...any) {
	if !p.Verbose {
		return
	}
	fmt.Fprintf(p.diag(), format+"\n", args...)
}

func (p *Printer) diag() io.Writer {
	if p.ErrWriter != nil {
		return p.ErrWriter
	}
	return p.Writer
}
