// Package apperrors provides domain-specific error types for dps. These
// error types carry the context needed to report failures precisely and to
// choose the process exit code.
package apperrors

import "fmt"

// InvalidColumnError reports a column selection flag referencing an
// unrecognized canonical field name.
type InvalidColumnError struct {
	Token string // The offending column token as the user typed it
	Flag  string // Flag the token came from (e.g. "columns", "hide-column")
}

// Error implements the error interface for InvalidColumnError.
func (e *InvalidColumnError) Error() string {
	if e.Flag != "" {
		return fmt.Sprintf("unknown column name %q in --%s", e.Token, e.Flag)
	}
	return fmt.Sprintf("unknown column name %q", e.Token)
}

// EmptyColumnSetError reports that column resolution removed every column.
type EmptyColumnSetError struct {
	Hidden []string // Tokens that hid the remaining columns
}

// Error implements the error interface for EmptyColumnSetError.
func (e *EmptyColumnSetError) Error() string {
	if len(e.Hidden) > 0 {
		return fmt.Sprintf("no columns left to display after hiding %v", e.Hidden)
	}
	return "no columns left to display"
}

// FetchError represents a failed invocation of the container runtime's
// listing command. Its stderr text and exit code are surfaced verbatim.
type FetchError struct {
	Binary   string // Runtime binary that was invoked (e.g. "docker")
	ExitCode int    // Exit code of the runtime process
	Stderr   string // Stderr text captured from the runtime process
	Err      error  // Underlying error
}

// Error implements the error interface for FetchError.
func (e *FetchError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s command failed (exit code %d): %s", e.Binary, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("%s command failed: %v", e.Binary, e.Err)
}

// Unwrap returns the underlying error for error wrapping chains.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// ConfigurationError represents configuration-related errors. It includes
// the configuration file path that caused the error.
type ConfigurationError struct {
	ConfigPath string // Path to the configuration file
	Err        error  // Underlying error
}

// Error implements the error interface for ConfigurationError.
func (e *ConfigurationError) Error() string {
	if e.ConfigPath != "" {
		return fmt.Sprintf("configuration error in %s: %v", e.ConfigPath, e.Err)
	}
	return fmt.Sprintf("configuration error: %v", e.Err)
}

// Unwrap returns the underlying error for error wrapping chains.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
