package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrInvalidFlags wraps command-line parsing failures.
var ErrInvalidFlags = errors.New("invalid flags")

// commonFlags holds flags controlling configuration and diagnostics.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// ioFlags holds input and output flags.
type ioFlags struct {
	inputs []string
	output string
}

// metadataFlags holds document metadata defaults.
type metadataFlags struct {
	docName        string
	ipr            string
	category       string
	submissionType string
	titleAbbr      string
}

// cliFlags holds all flags of the command.
type cliFlags struct {
	common        commonFlags
	io            ioFlags
	metadata      metadataFlags
	strictAuthors bool
	version       bool
	help          bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show conversion details")
}

// addIOFlags adds input/output flags to a FlagSet.
func addIOFlags(fs *flag.FlagSet, f *ioFlags) {
	fs.StringArrayVarP(&f.inputs, "input", "i", nil, "input file (repeatable)")
	fs.StringVarP(&f.output, "output", "o", "", "output file (default: standard output)")
}

// addMetadataFlags adds document metadata flags to a FlagSet.
func addMetadataFlags(fs *flag.FlagSet, f *metadataFlags) {
	fs.StringVar(&f.docName, "doc-name", "", "default docName attribute")
	fs.StringVar(&f.ipr, "ipr", "", "default ipr attribute")
	fs.StringVar(&f.category, "category", "", "default category attribute")
	fs.StringVar(&f.submissionType, "submission-type", "", "default submissionType attribute")
	fs.StringVar(&f.titleAbbr, "title-abbr", "", "default abbreviated title")
}

// parseFlags parses command-line flags and returns positional args.
// Usage output of the FlagSet itself is silenced: callers print help.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("rst2rfcxml", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	f := &cliFlags{}

	addCommonFlags(fs, &f.common)
	addIOFlags(fs, &f.io)
	addMetadataFlags(fs, &f.metadata)
	fs.BoolVar(&f.strictAuthors, "strict-authors", false, "require author directives to follow their authorFullname")
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}
	if f.common.quiet && f.common.verbose {
		return nil, nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrInvalidFlags)
	}

	return f, fs.Args(), nil
}
