package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"

	rst2rfcxml "github.com/alnah/go-rst2rfcxml"
	"github.com/alnah/go-rst2rfcxml/internal/config"
	"github.com/alnah/go-rst2rfcxml/internal/fileutil"
	"github.com/alnah/go-rst2rfcxml/internal/hints"
)

// runConvert orchestrates one conversion: configuration, inputs, output.
func runConvert(positionalArgs []string, flags *cliFlags, env *Environment) error {
	envCfg := loadEnvConfig()

	// Load configuration: --config wins over RST2RFCXML_CONFIG
	cfg := config.DefaultConfig()
	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	if configName != "" {
		var err error
		cfg, err = config.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(configName) {
				return fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(configName)))
			}
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Environment fills gaps, then CLI flags win
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	inputs := resolveInputs(positionalArgs, flags, cfg)
	if len(inputs) == 0 {
		return fmt.Errorf("%w%s", rst2rfcxml.ErrNoInput, hints.ForNoInput())
	}

	logger := newLogger(env.Stderr, &flags.common)
	conv := rst2rfcxml.NewConverter(
		rst2rfcxml.WithLogger(logger),
		rst2rfcxml.WithMetadata(buildMetadata(cfg)),
		rst2rfcxml.WithStrictAuthors(cfg.StrictAuthors),
	)

	logger.Debug("converting", "inputs", len(inputs), "output", outputName(cfg.Output.Path))
	if err := writeOutput(cfg.Output.Path, env.Stdout, func(w io.Writer) error {
		return conv.ConvertFiles(w, inputs...)
	}); err != nil {
		if errors.Is(err, rst2rfcxml.ErrNoAuthor) || errors.Is(err, rst2rfcxml.ErrAuthorOrder) {
			return fmt.Errorf("%w%s", err, hints.ForAuthorDirective(cfg.StrictAuthors))
		}
		return err
	}
	return nil
}

// mergeFlags applies CLI flag values over config values.
// Only non-empty flag values override config.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	if flags.io.output != "" {
		cfg.Output.Path = flags.io.output
	}

	m := &cfg.Metadata
	if flags.metadata.docName != "" {
		m.DocName = flags.metadata.docName
	}
	if flags.metadata.ipr != "" {
		m.IPR = flags.metadata.ipr
	}
	if flags.metadata.category != "" {
		m.Category = flags.metadata.category
	}
	if flags.metadata.submissionType != "" {
		m.SubmissionType = flags.metadata.submissionType
	}
	if flags.metadata.titleAbbr != "" {
		m.TitleAbbr = flags.metadata.titleAbbr
	}

	if flags.strictAuthors {
		cfg.StrictAuthors = true
	}
}

// resolveInputs returns the inputs named on the command line, -i/--input
// first, or the configured ones when none are given.
func resolveInputs(positionalArgs []string, flags *cliFlags, cfg *config.Config) []string {
	inputs := make([]string, 0, len(flags.io.inputs)+len(positionalArgs))
	inputs = append(inputs, flags.io.inputs...)
	inputs = append(inputs, positionalArgs...)
	if len(inputs) == 0 {
		inputs = append(inputs, cfg.Input.Files...)
	}
	return inputs
}

// buildMetadata converts configured metadata to library metadata.
func buildMetadata(cfg *config.Config) rst2rfcxml.Metadata {
	m := cfg.Metadata
	authors := make([]rst2rfcxml.Author, 0, len(m.Authors))
	for _, a := range m.Authors {
		authors = append(authors, rst2rfcxml.Author{
			Fullname: a.Fullname,
			Initials: a.Initials,
			Surname:  a.Surname,
			Role:     a.Role,
		})
	}
	return rst2rfcxml.Metadata{
		DocName:        m.DocName,
		IPR:            m.IPR,
		Category:       m.Category,
		SubmissionType: m.SubmissionType,
		TitleAbbr:      m.TitleAbbr,
		Authors:        authors,
	}
}

// newLogger returns a text logger on w whose level follows --quiet and
// --verbose. Warnings are shown by default.
func newLogger(w io.Writer, f *commonFlags) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case f.verbose:
		level = slog.LevelDebug
	case f.quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// writeOutput runs convert against a buffered writer on path, or on stdout
// when path is empty, and flushes it.
func writeOutput(path string, stdout io.Writer, convert func(io.Writer) error) (err error) {
	dst := stdout
	if path != "" {
		f, createErr := fileutil.CreateOutput(path)
		if createErr != nil {
			return fmt.Errorf("%w: %v%s", rst2rfcxml.ErrOutputCreate, createErr, hints.ForOutputCreate())
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("%w: %v", rst2rfcxml.ErrOutputWrite, closeErr)
			}
		}()
		dst = f
	}

	bw := bufio.NewWriter(dst)
	if err := convert(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", rst2rfcxml.ErrOutputWrite, err)
	}
	return nil
}

func outputName(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}
