package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-rst2rfcxml/internal/fileutil"
	"github.com/alnah/go-rst2rfcxml/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrMissingFullname = errors.New("author fullname is required")
)

// appDirName is the directory searched under the user config directory.
const appDirName = "rst2rfcxml"

// Field length limits.
const (
	MaxDocNameLength        = 100  // "draft-ietf-wg-topic-07"
	MaxIPRLength            = 50   // "trust200902", "pre5378Trust200902"
	MaxCategoryLength       = 20   // "std", "bcp", "info", "exp", "historic"
	MaxSubmissionTypeLength = 20   // "IETF", "IAB", "IRTF", "independent"
	MaxTitleAbbrLength      = 100  // Running header title
	MaxNameLength           = 100  // Author full name (generous)
	MaxInitialsLength       = 20   // "J. R."
	MaxRoleLength           = 50   // "editor"
	MaxPathLength           = 4096 // PATH_MAX
)

// Config holds all configuration for a conversion.
type Config struct {
	Input         InputConfig    `yaml:"input"`
	Output        OutputConfig   `yaml:"output"`
	Metadata      MetadataConfig `yaml:"metadata"`
	StrictAuthors bool           `yaml:"strictAuthors"` // Author directives must follow their authorFullname
}

// InputConfig defines input source options.
type InputConfig struct {
	Files []string `yaml:"files"` // Used when no input is given on the command line
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Path string `yaml:"path"` // Empty = standard output
}

// MetadataConfig holds document metadata defaults. Directives in the
// document override them.
type MetadataConfig struct {
	DocName        string         `yaml:"docName"`
	IPR            string         `yaml:"ipr"`
	Category       string         `yaml:"category"`
	SubmissionType string         `yaml:"submissionType"`
	TitleAbbr      string         `yaml:"titleAbbr"`
	Authors        []AuthorConfig `yaml:"authors"`
}

// AuthorConfig defines one default author.
type AuthorConfig struct {
	Fullname string `yaml:"fullname"`
	Initials string `yaml:"initials"`
	Surname  string `yaml:"surname"`
	Role     string `yaml:"role"`
}

// Validate checks required fields and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	for i, path := range c.Input.Files {
		if err := validateFieldLength(fmt.Sprintf("input.files[%d]", i), path, MaxPathLength); err != nil {
			return err
		}
	}
	if err := validateFieldLength("output.path", c.Output.Path, MaxPathLength); err != nil {
		return err
	}

	m := c.Metadata
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"metadata.docName", m.DocName, MaxDocNameLength},
		{"metadata.ipr", m.IPR, MaxIPRLength},
		{"metadata.category", m.Category, MaxCategoryLength},
		{"metadata.submissionType", m.SubmissionType, MaxSubmissionTypeLength},
		{"metadata.titleAbbr", m.TitleAbbr, MaxTitleAbbrLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	for i, a := range m.Authors {
		prefix := fmt.Sprintf("metadata.authors[%d]", i)
		if strings.TrimSpace(a.Fullname) == "" {
			return fmt.Errorf("%w: %s.fullname", ErrMissingFullname, prefix)
		}
		if err := validateFieldLength(prefix+".fullname", a.Fullname, MaxNameLength); err != nil {
			return err
		}
		if err := validateFieldLength(prefix+".initials", a.Initials, MaxInitialsLength); err != nil {
			return err
		}
		if err := validateFieldLength(prefix+".surname", a.Surname, MaxNameLength); err != nil {
			return err
		}
		if err := validateFieldLength(prefix+".role", a.Role, MaxRoleLength); err != nil {
			return err
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns an empty configuration: no default inputs, standard
// output, no metadata defaults, lenient author directives.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths returns the candidate files for a config name, in lookup
// order: current directory first, then the user config directory, each
// with .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file of SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
