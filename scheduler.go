package rst2rfcxml

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// bufferedLine is an input line held back until the next line shows how
// it must be interpreted.
type bufferedLine struct {
	raw  string // as read, without the line terminator
	text string // Escape(raw)
}

func newBufferedLine(raw string) *bufferedLine {
	return &bufferedLine{raw: raw, text: Escape(raw)}
}

// isBlank reports whether a nil or whitespace-only line is held.
func (l *bufferedLine) isBlank() bool {
	return l == nil || isBlank(l.raw)
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// startsWithLetter reports whether the first character of s is a letter.
func startsWithLetter(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsLetter(r)
}

// position locates a line for diagnostics.
type position struct {
	source string
	line   int
}

func (p position) String() string {
	if p.source == "" {
		return fmt.Sprintf("line %d", p.line)
	}
	return fmt.Sprintf("%s:%d", p.source, p.line)
}

// action is what the scheduler does with an incoming line.
type action int

const (
	actionText           action = iota // definition intake, flush pending, buffer the line
	actionSkip                         // recognized no-op directive
	actionHeader                       // preamble and front matter
	actionTitleOpen                    // document title begins
	actionTitleText                    // line inside the document title
	actionTitleClose                   // document title ends
	actionSection                      // pending line is a section heading
	actionTableRuler                   // column ruler
	actionTableHeaderRow               // line inside a table header
	actionTableBodyRow                 // line inside a table body
	actionMetadata                     // substitution directive
)

var actionNames = map[action]string{
	actionText:           "text",
	actionSkip:           "skip",
	actionHeader:         "header",
	actionTitleOpen:      "title-open",
	actionTitleText:      "title-text",
	actionTitleClose:     "title-close",
	actionSection:        "section",
	actionTableRuler:     "table-ruler",
	actionTableHeaderRow: "table-header-row",
	actionTableBodyRow:   "table-body-row",
	actionMetadata:       "metadata",
}

func (a action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// step is the classification of one incoming line.
type step struct {
	action    action
	level     int           // heading level for actionSection
	directive directiveKind // for actionMetadata
	value     string        // raw directive value for actionMetadata
}

// classify decides what to do with incoming given the pending line and the
// open contexts. It reads but never mutates its arguments.
//
// The checks run in a fixed priority: underlines first, since they need the
// raw pending line as heading text; then tables, whose cell offsets are
// computed on the unescaped line; then metadata directives.
func classify(pending *bufferedLine, incoming string, stack *contextStack) step {
	switch strings.TrimSpace(incoming) {
	case directiveContents, directiveSectnum:
		return step{action: actionSkip}
	case directiveHeader:
		return step{action: actionHeader}
	}

	switch level := underlineLevel(incoming); {
	case level == 1 && stack.topIs(ContextTitle):
		return step{action: actionTitleClose}
	case level == 1 && pending.isBlank():
		return step{action: actionTitleOpen}
	case level > 0:
		return step{action: actionSection, level: level}
	}
	if stack.topIs(ContextTitle) {
		return step{action: actionTitleText}
	}

	if isRuler(incoming) {
		return step{action: actionTableRuler}
	}
	if stack.topIs(ContextTableHeader) {
		return step{action: actionTableHeaderRow}
	}
	if stack.topIs(ContextTableBody) {
		return step{action: actionTableBodyRow}
	}

	if kind, value := parseDirective(incoming); kind != directiveNone {
		return step{action: actionMetadata, directive: kind, value: value}
	}
	return step{action: actionText}
}

// Underline glyphs by heading level.
var underlineGlyphs = [...]byte{1: '=', 2: '-', 3: '~'}

// underlineLevel returns the heading level of a line made entirely of one
// underline glyph, or 0.
func underlineLevel(line string) int {
	if line == "" {
		return 0
	}
	for level := 1; level < len(underlineGlyphs); level++ {
		glyph := underlineGlyphs[level]
		if line[0] == glyph && strings.Trim(line, string(glyph)) == "" {
			return level
		}
	}
	return 0
}

// processLine advances the pipeline by one input line.
func (c *conversion) processLine(raw string, pos position) error {
	st := classify(c.pending, raw, c.stack)
	if st.action != actionMetadata {
		c.meta.breakAdjacency()
	}

	switch st.action {
	case actionSkip:
	case actionHeader:
		c.writeHeader()
	case actionTitleOpen:
		c.flushPending()
		c.stack.push(ContextTitle)
	case actionTitleText:
		c.writeTitle(raw)
	case actionTitleClose:
		c.stack.pop()
	case actionSection:
		c.openSection(st.level)
	case actionTableRuler:
		c.handleRuler(raw)
	case actionTableHeaderRow:
		c.writeHeaderRow(raw)
	case actionTableBodyRow:
		c.writeBodyRow(raw)
	case actionMetadata:
		return c.meta.apply(st.directive, st.value, pos)
	default:
		line := newBufferedLine(raw)
		c.openDefinitionTerm(line)
		c.flushPending()
		c.pending = line
	}
	return nil
}

// flushPending writes the pending line, if any, and clears it.
func (c *conversion) flushPending() {
	if c.pending == nil {
		return
	}
	line := c.pending
	c.pending = nil
	c.flush(line)
}
