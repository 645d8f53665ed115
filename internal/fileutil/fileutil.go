// Package fileutil provides file, path and text stream utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Sentinel errors for file utility operations.
var (
	ErrEmptyPath      = errors.New("path cannot be empty")
	ErrNotRegularFile = errors.New("not a regular file")
)

// FilePermissions is the mode of files created by CreateOutput.
const FilePermissions = 0o644 // rw-r--r--: owner read+write, others read

// OpenInput opens path for reading. Directories and other non-regular files
// are rejected, since reading them fails later in less obvious ways.
func OpenInput(path string) (*os.File, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	f, err := os.Open(path) // #nosec G304 -- input path is user-provided
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("inspecting input: %w", err)
	}
	if !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotRegularFile, path)
	}
	return f, nil
}

// CreateOutput creates or truncates the file at path for writing.
func CreateOutput(path string) (*os.File, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, FilePermissions) // #nosec G304 -- output path is user-provided
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	return f, nil
}

// NewTextReader returns a reader yielding r as UTF-8. A leading UTF-8
// byte-order mark is dropped; a UTF-16 byte-order mark selects UTF-16
// decoding. Without a mark the input is read as UTF-8.
func NewTextReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "draft" -> false (name)
//   - "./draft.yaml" -> true (relative path)
//   - "/etc/rst2rfcxml/draft.yaml" -> true (absolute)
//   - "C:\drafts\draft.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
