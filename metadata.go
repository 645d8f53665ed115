package rst2rfcxml

import (
	"fmt"
	"strings"
)

// directiveKind identifies a metadata substitution directive.
type directiveKind int

const (
	directiveNone directiveKind = iota
	directiveDocName
	directiveIPR
	directiveCategory
	directiveSubmissionType
	directiveTitleAbbr
	directiveAuthorFullname
	directiveAuthorRole
	directiveAuthorSurname
	directiveAuthorInitials
)

// directiveLabels are the substitution names recognized in
// ".. |label| replace:: value" lines.
var directiveLabels = []struct {
	kind  directiveKind
	label string
}{
	{directiveDocName, "docName"},
	{directiveIPR, "ipr"},
	{directiveCategory, "category"},
	{directiveSubmissionType, "submissionType"},
	{directiveTitleAbbr, "titleAbbr"},
	{directiveAuthorFullname, "authorFullname"},
	{directiveAuthorRole, "authorRole"},
	{directiveAuthorSurname, "authorSurname"},
	{directiveAuthorInitials, "authorInitials"},
}

// Fixed directives that are not metadata.
const (
	directiveContents = ".. contents::"
	directiveSectnum  = ".. sectnum::"
	directiveHeader   = ".. header::"
)

// parseDirective recognizes a metadata directive and returns its kind and
// raw value. It returns directiveNone for any other line.
func parseDirective(line string) (directiveKind, string) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, ".. |") {
		return directiveNone, ""
	}
	for _, d := range directiveLabels {
		prefix := ".. |" + d.label + "| replace::"
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		rest := line[len(prefix):]
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			return directiveNone, ""
		}
		return d.kind, strings.TrimSpace(rest)
	}
	return directiveNone, ""
}

func (k directiveKind) label() string {
	for _, d := range directiveLabels {
		if d.kind == k {
			return d.label
		}
	}
	return ""
}

// metadataState accumulates Metadata across all sources of one conversion.
type metadataState struct {
	Metadata
	strict bool
	// adjacent is true while the lines since the last authorFullname have
	// all been author directives.
	adjacent bool
}

// apply stores value for the directive. pos is used in errors.
func (m *metadataState) apply(kind directiveKind, value string, pos position) error {
	value = Escape(value)
	switch kind {
	case directiveDocName:
		m.DocName = value
	case directiveIPR:
		m.IPR = value
	case directiveCategory:
		m.Category = value
	case directiveSubmissionType:
		m.SubmissionType = value
	case directiveTitleAbbr:
		m.TitleAbbr = value
	case directiveAuthorFullname:
		m.Authors = append(m.Authors, Author{Fullname: value})
		m.adjacent = true
		return nil
	case directiveAuthorRole, directiveAuthorSurname, directiveAuthorInitials:
		author, err := m.currentAuthor(kind, pos)
		if err != nil {
			return err
		}
		switch kind {
		case directiveAuthorRole:
			author.Role = value
		case directiveAuthorSurname:
			author.Surname = value
		case directiveAuthorInitials:
			author.Initials = value
		}
		return nil
	}
	m.adjacent = false
	return nil
}

// currentAuthor returns the most recently appended author.
func (m *metadataState) currentAuthor(kind directiveKind, pos position) (*Author, error) {
	if len(m.Authors) == 0 {
		return nil, fmt.Errorf("%w: %s: |%s|", ErrNoAuthor, pos, kind.label())
	}
	if m.strict && !m.adjacent {
		return nil, fmt.Errorf("%w: %s: |%s|", ErrAuthorOrder, pos, kind.label())
	}
	return &m.Authors[len(m.Authors)-1], nil
}

// breakAdjacency records a line that is not an author directive.
func (m *metadataState) breakAdjacency() {
	m.adjacent = false
}
