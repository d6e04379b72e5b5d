package cli

import (
	"errors"

	"github.com/yaklabco/msclfmt/internal/configloader"
	"github.com/yaklabco/msclfmt/pkg/fsutil"
	"github.com/yaklabco/msclfmt/pkg/runner"
)

// Exit codes for msclfmt.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFormattingNeeded indicates --check found unformatted files, or
	// define found no definition.
	ExitFormattingNeeded = 1

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
	// ErrFormattingNeeded is returned by "format --check" when files are not
	// formatted.
	ErrFormattingNeeded = errors.New("files need formatting")

	// ErrNoDefinition is returned by "define" when the lookup is empty.
	ErrNoDefinition = errors.New("no definition found")

	// ErrInvalidUsage marks command-line mistakes.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrConfig marks configuration that could not be loaded.
	ErrConfig = errors.New("configuration error")

	// ErrFilesFailed is returned when some files could not be processed.
	ErrFilesFailed = errors.New("files could not be processed")
)

// ExitCodeFromResult determines the exit code of a format run.
func ExitCodeFromResult(result *runner.Result, check bool) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasErrors():
		return ExitIOError
	case check && result.HasChanges():
		return ExitFormattingNeeded
	default:
		return ExitSuccess
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrFormattingNeeded), errors.Is(err, ErrNoDefinition):
		return ExitFormattingNeeded
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, ErrFilesFailed),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// IsQuiet reports whether err only signals an exit status and needs no log
// line of its own.
func IsQuiet(err error) bool {
	return errors.Is(err, ErrFormattingNeeded)
}
