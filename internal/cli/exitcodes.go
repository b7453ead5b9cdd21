package cli

import (
	"errors"

	"github.com/yaklabco/parkdown/pkg/fsutil"
)

// Exit codes for parkdown.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitParseError indicates the input did not match the grammar.
	ExitParseError = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrParseFailed is returned after a parse failure has been reported
	// to the user.
	ErrParseFailed = errors.New("parse failed")

	// ErrUsage marks command-line misuse.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks configuration loading and validation failures.
	ErrConfig = errors.New("configuration error")
)

// ExitCodeFor maps an error returned by the root command to an exit code.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrParseFailed):
		return ExitParseError
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case fsutil.IsIOError(err):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
