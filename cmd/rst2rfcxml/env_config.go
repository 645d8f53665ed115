package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-rst2rfcxml/internal/config"
)

// envPrefix prefixes every recognized environment variable.
const envPrefix = "RST2RFCXML_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string // RST2RFCXML_CONFIG: config file name or path
	Output         string // RST2RFCXML_OUTPUT: output file
	IPR            string // RST2RFCXML_IPR: default ipr attribute
	Category       string // RST2RFCXML_CATEGORY: default category attribute
	SubmissionType string // RST2RFCXML_SUBMISSION_TYPE: default submissionType
}

// knownEnvVars lists valid RST2RFCXML_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"RST2RFCXML_CONFIG":          true,
	"RST2RFCXML_OUTPUT":          true,
	"RST2RFCXML_IPR":             true,
	"RST2RFCXML_CATEGORY":        true,
	"RST2RFCXML_SUBMISSION_TYPE": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath:     os.Getenv("RST2RFCXML_CONFIG"),
		Output:         os.Getenv("RST2RFCXML_OUTPUT"),
		IPR:            os.Getenv("RST2RFCXML_IPR"),
		Category:       os.Getenv("RST2RFCXML_CATEGORY"),
		SubmissionType: os.Getenv("RST2RFCXML_SUBMISSION_TYPE"),
	}
}

// warnUnknownEnvVars writes warnings for unrecognized RST2RFCXML_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty.
// This ensures: CLI flags > config file > env vars > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Output != "" && cfg.Output.Path == "" {
		cfg.Output.Path = env.Output
	}
	if env.IPR != "" && cfg.Metadata.IPR == "" {
		cfg.Metadata.IPR = env.IPR
	}
	if env.Category != "" && cfg.Metadata.Category == "" {
		cfg.Metadata.Category = env.Category
	}
	if env.SubmissionType != "" && cfg.Metadata.SubmissionType == "" {
		cfg.Metadata.SubmissionType = env.SubmissionType
	}
}
