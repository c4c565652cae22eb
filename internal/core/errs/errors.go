package errs

import "errors"

// Sentinel errors for the domain layer.
// Backends wrap their low-level failures (exec, filesystem) with these so the
// CLI can report them without knowing which backend produced them.

var (
	// ErrSchedulerUnavailable is returned when a call to the job scheduler
	// facility fails: the binary is missing, permission is denied, or the
	// facility rejected the new list.
	ErrSchedulerUnavailable = errors.New("scheduler facility call failed")

	// ErrInvalidInput is returned when the input provided is invalid.
	ErrInvalidInput = errors.New("invalid input")
)
