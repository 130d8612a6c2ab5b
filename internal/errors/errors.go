package errors

import (
	"errors"
	"fmt"
)

// Exit codes for partnerctl
const (
	ExitSuccess            = 0
	ExitGeneralError       = 1
	ExitProgramNotFound    = 2
	ExitProfileUnavailable = 3
	ExitSubmitFailed       = 4
	ExitConfigError        = 5
	ExitValidationError    = 6
)

// CLIError is the base error type for partnerctl
type CLIError struct {
	Code    int
	Message string
	Cause   error
}

func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *CLIError) ExitCode() int {
	return e.Code
}

// New creates a new CLIError
func New(code int, message string) *CLIError {
	return &CLIError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a CLIError
func Wrap(code int, message string, cause error) *CLIError {
	return &CLIError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// ProgramNotFound returns an error for an unknown program
func ProgramNotFound(slug string) *CLIError {
	return New(ExitProgramNotFound, fmt.Sprintf("program not found: %s", slug))
}

// ProfileUnavailable returns an error when the partner profile cannot be read
func ProfileUnavailable(cause error) *CLIError {
	return Wrap(ExitProfileUnavailable, "partner profile unavailable", cause)
}

// SubmitFailed returns an error for a failed application submission
func SubmitFailed(cause error) *CLIError {
	return Wrap(ExitSubmitFailed, "application submission failed", cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *CLIError {
	return Wrap(ExitConfigError, message, cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *CLIError {
	return New(ExitValidationError, message)
}

// APIError returns an error for platform API failures
func APIError(op string, cause error) *CLIError {
	return Wrap(ExitGeneralError, fmt.Sprintf("api %s failed", op), cause)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
