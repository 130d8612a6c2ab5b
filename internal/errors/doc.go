// Package errors provides typed errors with exit codes for partnerctl.
//
// # Error Types
//
// CLIError is the base error type that wraps an error with an exit code:
//
//	type CLIError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
// Defined exit codes for different error categories:
//
//	ExitSuccess            = 0  // Success
//	ExitGeneralError       = 1  // General/unknown errors
//	ExitProgramNotFound    = 2  // Program does not exist
//	ExitProfileUnavailable = 3  // Partner profile could not be read
//	ExitSubmitFailed       = 4  // Application submission failed
//	ExitConfigError        = 5  // Configuration error
//	ExitValidationError    = 6  // Input validation failed
//
// # Error Constructors
//
// Use the provided constructors for consistent error creation:
//
//	errors.ProgramNotFound("acme")
//	errors.ProfileUnavailable(err)
//	errors.SubmitFailed(err)
//	errors.ConfigError("bad config", err)
//
// # Extracting Exit Codes
//
// Use GetExitCode to extract the exit code from an error chain:
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
