package cli

import (
	"errors"

	"github.com/yaklabco/wsfmt/internal/configloader"
	"github.com/yaklabco/wsfmt/pkg/runner"
)

// Exit codes for wsfmt.
const (
	// ExitSuccess indicates every file is formatted (or was rewritten).
	ExitSuccess = 0

	// ExitUnformatted indicates check mode found files that need formatting.
	ExitUnformatted = 1

	// ExitFileErrors indicates at least one file could not be formatted.
	ExitFileErrors = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70
)

// ErrUnformatted is returned when check mode finds unformatted files.
var ErrUnformatted = errors.New("files need formatting")

// ErrFileErrors is returned when some files could not be formatted.
var ErrFileErrors = errors.New("some files could not be formatted")

// ErrInvalidUsage marks flag and argument mistakes.
var ErrInvalidUsage = errors.New("invalid usage")

// ExitCodeFromResult determines the exit code of a formatting run. File
// errors win over unformatted files; unformatted files only fail in check
// mode.
func ExitCodeFromResult(result *runner.Result, check bool) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasErrors() {
		return ExitFileErrors
	}
	if check && result.HasChanges() {
		return ExitUnformatted
	}
	return ExitSuccess
}

// ExitCodeFromError maps a command error to an exit code.
func ExitCodeFromError(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUnformatted):
		return ExitUnformatted
	case errors.Is(err, ErrFileErrors):
		return ExitFileErrors
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.As(err, &validationErr):
		return ExitConfigError
	default:
		return ExitInternalError
	}
}

// IsSignal reports errors that only carry an exit status; the reporter
// has already shown their details.
func IsSignal(err error) bool {
	return errors.Is(err, ErrUnformatted) || errors.Is(err, ErrFileErrors)
}
