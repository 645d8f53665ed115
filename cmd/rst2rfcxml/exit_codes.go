package main

import (
	"errors"
	"os"

	rst2rfcxml "github.com/alnah/go-rst2rfcxml"
	"github.com/alnah/go-rst2rfcxml/internal/config"
)

// Exit codes for the rst2rfcxml CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or document metadata
	ExitIO      = 3 // Missing input, unwritable output
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, rst2rfcxml.ErrNoInput) ||
		errors.Is(err, rst2rfcxml.ErrOutputCreate) ||
		errors.Is(err, rst2rfcxml.ErrOutputWrite) {
		return ExitIO
	}

	// Usage/config/metadata errors (exit 2)
	if errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrMissingFullname) ||
		errors.Is(err, rst2rfcxml.ErrNoAuthor) ||
		errors.Is(err, rst2rfcxml.ErrAuthorOrder) {
		return ExitUsage
	}

	return ExitGeneral
}
