// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// appDirName is the directory searched under the user config directory.
const appDirName = "rst2rfcxml"

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path to suggest
	for _, p := range searchedPaths {
		if filepath.Base(filepath.Dir(p)) == appDirName {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForNoInput returns hints for a missing input list.
func ForNoInput() string {
	return format("pass files with -i/--input or as arguments, or list them under input.files in the config")
}

// ForOutputCreate returns hints for output file creation errors.
func ForOutputCreate() string {
	return format("check parent directory exists and is writable")
}

// ForAuthorDirective returns hints for misplaced author directives.
// strict reports whether strict author validation was enabled.
func ForAuthorDirective(strict bool) string {
	hints := []string{"put |authorFullname| before |authorRole|, |authorSurname| and |authorInitials|"}
	if strict {
		hints = append(hints, "keep each author's directives on consecutive lines")
	}
	return formatHints(hints)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
