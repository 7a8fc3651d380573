package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/WessleyAI/wessley-vin/engine/lookup"
	"github.com/WessleyAI/wessley-vin/engine/vin"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // every VIN decoded
	ExitFailure      = 1 // at least one VIN failed to decode
	ExitCommandError = 2 // bad flags, unreadable input
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
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
// Returns ExitFailure (1) if the error is not an ExitError.
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

// CLIResponse is the JSON envelope for every command.
type CLIResponse struct {
	Status string    `json:"status"` // "ok" or "error"
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // verbose output; keeps JSON on Writer clean
	Verbose   bool
	Locale    language.Tag
}

// JSON writes v wrapped in a CLIResponse.
func (f *OutputFormatter) JSON(status string, v any) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(CLIResponse{Status: status, Data: v})
}

// Error outputs a command-level error in the configured format.
func (f *OutputFormatter) Error(code, msg string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: msg},
		})
	}
	_, err := fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, msg)
	return err
}

// VerboseLog outputs a message only if verbose mode is enabled.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// Replies writes decode replies: a JSON envelope, or one text block per VIN.
func (f *OutputFormatter) Replies(replies []lookup.DecodeReply) error {
	if f.Format == "json" {
		status := "ok"
		for _, r := range replies {
			if r.Code != "" {
				status = "error"
				break
			}
		}
		return f.JSON(status, replies)
	}

	p := message.NewPrinter(f.Locale)
	var b strings.Builder
	for i, r := range replies {
		if i > 0 {
			b.WriteString("\n")
		}
		if r.Vehicle == nil {
			fmt.Fprintf(&b, "%s\n  error [%s]: %s\n", r.Input, r.Code, r.Error)
			continue
		}
		writeVehicle(&b, p, r.Vehicle)
	}
	_, err := io.WriteString(f.Writer, b.String())
	return err
}

func writeVehicle(b *strings.Builder, p *message.Printer, v *vin.Vehicle) {
	row := func(label, value string) {
		fmt.Fprintf(b, "  %-14s%s\n", label+":", value)
	}
	b.WriteString(v.VIN + "\n")
	row("Brand", v.Brand)
	row("Model", v.Model)
	row("Version", v.Version)
	row("Year", v.ProductionYear)
	row("Fuel", string(v.FuelType))
	row("Engine", p.Sprintf("%d cc, %d hp", v.EngineSizeCC, v.PowerHP))
	row("Transmission", string(v.Transmission))
	row("Drive", string(v.Drive))
	row("Mileage", p.Sprintf("%d km", v.MileageKM))
	row("Color", v.Color)
	row("Condition", string(v.Condition))
	row("Accident", string(v.AccidentStatus))
	row("Damage", v.DamageStatus)
	row("Country", v.CountryOfOrigin)
	row("Plate", v.RegistrationPlate)
}
