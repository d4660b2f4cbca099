package contract

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across packages.
var (
	ErrMissingTarget       = errors.New("missing target path")
	ErrUnsupportedEngine   = errors.New("unsupported complexity engine")
	ErrUnsupportedLanguage = errors.New("unsupported language for engine")
)

// UsageError reports malformed or missing command-line input.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// NewUsageError formats a UsageError.
func NewUsageError(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// EnvironmentError reports a required capability that is missing at startup.
type EnvironmentError struct {
	Capability string
	Err        error
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("%s is not available: %v", e.Capability, e.Err)
}

func (e *EnvironmentError) Unwrap() error {
	return e.Err
}

// IOError reports a failure to open or write an output file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
