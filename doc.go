// Package rst2rfcxml converts reStructuredText documents to xml2rfc version 3
// XML, the grammar used for IETF drafts and RFCs.
//
// # Quick Start
//
// Create a converter and convert one or more sources:
//
//	conv := rst2rfcxml.NewConverter()
//	if err := conv.ConvertFiles(os.Stdout, "draft.rst"); err != nil {
//	    log.Fatal(err)
//	}
//
// Sources are concatenated into one logical document. Files that cannot be
// read are treated as empty, so a draft split across several files converts
// even when an optional part is missing.
//
// # Supported Markup
//
// The converter understands a fixed subset of reStructuredText:
//
//   - Headings underlined with '=' (level 1), '-' (level 2) and '~' (level 3).
//     A '=' overline after a blank line starts the document title instead.
//   - Bullet lists ("* item") and definition lists (a term followed by a
//     line indented by two spaces).
//   - Simple tables delimited by '=' column rulers.
//   - Double-backquoted literal spans (<tt>) and `Section Name`_ references
//     (<xref>).
//
// Substitution directives carry document metadata:
//
//	.. |docName| replace:: draft-example-00
//	.. |ipr| replace:: trust200902
//	.. |category| replace:: std
//	.. |submissionType| replace:: IETF
//	.. |titleAbbr| replace:: Example
//	.. |authorFullname| replace:: Jane Doe
//	.. |authorInitials| replace:: J.
//	.. |authorSurname| replace:: Doe
//	.. |authorRole| replace:: editor
//
// The ".. header::" directive writes the XML preamble and the <rfc> element,
// so metadata directives must come before it. ".. contents::" and
// ".. sectnum::" are accepted and ignored: xml2rfc numbers sections and
// builds a table of contents by default.
//
// # Conversion Model
//
// Conversion is a single pass over the input. Because heading underlines and
// table rulers follow the text they describe, each line is held back until
// the next one is read. An explicit stack tracks the open XML elements; a
// blank line closes paragraphs and lists, a heading closes everything down
// to its parent section, and the end of input closes everything.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv := rst2rfcxml.NewConverter(
//	    rst2rfcxml.WithLogger(slog.Default()),
//	    rst2rfcxml.WithMetadata(rst2rfcxml.Metadata{IPR: "trust200902"}),
//	    rst2rfcxml.WithStrictAuthors(true),
//	)
//
// Metadata passed with WithMetadata acts as a default: directives in the
// document override it.
package rst2rfcxml
