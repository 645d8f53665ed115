package rst2rfcxml

import (
	"strings"
)

// Inline markup delimiters.
const (
	literalDelim  = "``"
	linkOpen      = "`"
	linkClose     = "`_"
	ttOpen        = "<tt>"
	ttClose       = "</tt>"
	xrefOpenStart = `<xref target="`
	xrefOpenEnd   = `"/>`
)

// markupUnescaper turns the escapes reStructuredText requires back into
// literal characters.
var markupUnescaper = strings.NewReplacer(`\*`, "*", `\|`, "|")

// entityEscaper replaces the characters XML reserves in text content.
// strings.Replacer scans once, so entities it writes are never re-escaped.
var entityEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// attrEscaper escapes the attribute delimiter and the markup written by the
// inline pass in already escaped text.
var attrEscaper = strings.NewReplacer(`"`, "&quot;", "<", "&lt;", ">", "&gt;")

// Escape runs the inline pass over a single line: trims it, resolves markup
// escapes, escapes XML entities, then expands double-backquoted literal spans
// to <tt> and `target`_ spans to <xref>.
func Escape(line string) string {
	line = strings.TrimSpace(line)
	line = markupUnescaper.Replace(line)
	line = entityEscaper.Replace(line)
	line = replaceLiterals(line)
	line = replaceInternalLinks(line)
	return line
}

// replaceLiterals replaces each double-backquoted pair with <tt>text</tt>,
// trimming the interior. An opener without a closer ends the pass.
func replaceLiterals(line string) string {
	var b strings.Builder
	rest := line
	replaced := false
	for {
		start := strings.Index(rest, literalDelim)
		if start < 0 {
			break
		}
		end := strings.Index(rest[start+len(literalDelim):], literalDelim)
		if end < 0 {
			break
		}
		end += start + len(literalDelim)
		b.WriteString(rest[:start])
		b.WriteString(ttOpen)
		b.WriteString(strings.TrimSpace(rest[start+len(literalDelim) : end]))
		b.WriteString(ttClose)
		rest = rest[end+len(literalDelim):]
		replaced = true
	}
	if !replaced {
		return line
	}
	b.WriteString(rest)
	return b.String()
}

// replaceInternalLinks replaces each `text`_ span with a cross-reference to
// the anchor derived from text. An opener without a closer ends the pass.
func replaceInternalLinks(line string) string {
	var b strings.Builder
	rest := line
	replaced := false
	for {
		start := strings.Index(rest, linkOpen)
		if start < 0 {
			break
		}
		end := strings.Index(rest[start+len(linkOpen):], linkClose)
		if end < 0 {
			break
		}
		end += start + len(linkOpen)
		b.WriteString(rest[:start])
		b.WriteString(xrefOpenStart)
		b.WriteString(Anchor(rest[start+len(linkOpen) : end]))
		b.WriteString(xrefOpenEnd)
		rest = rest[end+len(linkClose):]
		replaced = true
	}
	if !replaced {
		return line
	}
	b.WriteString(rest)
	return b.String()
}

// escapeAttr prepares escaped text for use inside a double-quoted attribute.
func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// Anchor normalizes text into an identifier usable as an anchor: only ASCII
// letters, digits, '_', ':', '-' and '.' survive, leading characters that
// cannot start an identifier are dropped, and letters are lower-cased.
// The result may be empty. Anchor(Anchor(s)) == Anchor(s).
func Anchor(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if !isAnchorChar(c) {
			continue
		}
		if b.Len() == 0 && !isAnchorStart(c) {
			continue
		}
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isAnchorStart(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_' || c == ':'
}

func isAnchorChar(c byte) bool {
	return isAnchorStart(c) || ('0' <= c && c <= '9') || c == '-' || c == '.'
}
