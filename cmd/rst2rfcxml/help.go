package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: rst2rfcxml [flags] [input...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert reStructuredText to xml2rfc version 3 XML.")
	fmt.Fprintln(w, "Inputs are concatenated into one document, in order.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -i, --input <path>        Input file (repeatable; arguments are inputs too)")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: standard output)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Metadata defaults (directives in the document win):")
	fmt.Fprintln(w, "      --doc-name <s>        docName attribute")
	fmt.Fprintln(w, "      --ipr <s>             ipr attribute, e.g. trust200902")
	fmt.Fprintln(w, "      --category <s>        category attribute: std, bcp, info, exp, historic")
	fmt.Fprintln(w, "      --submission-type <s> submissionType attribute, e.g. IETF")
	fmt.Fprintln(w, "      --title-abbr <s>      Abbreviated title")
	fmt.Fprintln(w, "      --strict-authors      Author directives must follow their authorFullname")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show conversion details")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  RST2RFCXML_CONFIG         Config file when --config is not given")
	fmt.Fprintln(w, "  RST2RFCXML_OUTPUT         Output file when --output is not given")
	fmt.Fprintln(w, "  RST2RFCXML_IPR            Default ipr attribute")
	fmt.Fprintln(w, "  RST2RFCXML_CATEGORY       Default category attribute")
	fmt.Fprintln(w, "  RST2RFCXML_SUBMISSION_TYPE Default submissionType attribute")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  rst2rfcxml -i draft.rst -o draft.xml")
	fmt.Fprintln(w, "  rst2rfcxml front.rst body.rst > draft.xml")
	fmt.Fprintln(w, "  rst2rfcxml -c draft")
}
