package cli

import (
	"errors"

	"github.com/yaklabco/richtext/pkg/runner"
)

// ErrConversionFailed is returned when at least one input could not be
// converted. The failures themselves are already logged.
var ErrConversionFailed = errors.New("conversion failed")

// Exit codes for richtext.
const (
	// ExitSuccess indicates every input was converted.
	ExitSuccess = 0

	// ExitFailure indicates a failed conversion or command error.
	ExitFailure = 1
)

// ExitCodeFromResult determines the exit code of a conversion run.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil || !result.HasFailures() {
		return ExitSuccess
	}
	return ExitFailure
}

// ExitCodeFromError maps a command error to a process exit code.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}
