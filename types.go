package rst2rfcxml

import (
	"io"
	"log/slog"
)

// Author describes one <author> element of the front matter.
type Author struct {
	Fullname string // required
	Initials string
	Surname  string
	Role     string
}

// Metadata holds the document-level values set by substitution directives.
// Values passed to WithMetadata are plain text and go through Escape, like
// directive values do.
type Metadata struct {
	DocName        string   // docName attribute of <rfc>
	IPR            string   // ipr attribute of <rfc>
	Category       string   // category attribute of <rfc>
	SubmissionType string   // submissionType attribute of <rfc>
	TitleAbbr      string   // abbrev attribute of <title>
	Authors        []Author // in directive order
}

// clone returns a copy of m that shares no author storage with it.
func (m Metadata) clone() Metadata {
	out := m
	out.Authors = append([]Author(nil), m.Authors...)
	return out
}

// escaped returns a copy of m with every value run through Escape.
func (m Metadata) escaped() Metadata {
	out := Metadata{
		DocName:        Escape(m.DocName),
		IPR:            Escape(m.IPR),
		Category:       Escape(m.Category),
		SubmissionType: Escape(m.SubmissionType),
		TitleAbbr:      Escape(m.TitleAbbr),
		Authors:        make([]Author, 0, len(m.Authors)),
	}
	for _, a := range m.Authors {
		out.Authors = append(out.Authors, Author{
			Fullname: Escape(a.Fullname),
			Initials: Escape(a.Initials),
			Surname:  Escape(a.Surname),
			Role:     Escape(a.Role),
		})
	}
	return out
}

// Source is one named input stream. Sources are concatenated into one
// logical line stream; Name is used only in diagnostics.
type Source struct {
	Name   string
	Reader io.Reader
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	logger        *slog.Logger
	metadata      Metadata
	strictAuthors bool
}

// WithLogger sets the logger used for diagnostics.
// A nil logger keeps the default, which discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.cfg.logger = l
		}
	}
}

// WithMetadata sets metadata defaults. Directives in the input override
// scalar fields; authorFullname directives append to the default authors.
func WithMetadata(m Metadata) Option {
	return func(c *Converter) {
		c.cfg.metadata = m.escaped()
	}
}

// WithStrictAuthors requires authorRole, authorSurname and authorInitials
// directives to follow their authorFullname directive with only other
// author directives in between.
func WithStrictAuthors(strict bool) Option {
	return func(c *Converter) {
		c.cfg.strictAuthors = strict
	}
}
