package rst2rfcxml

import "strings"

const (
	bulletPrefix = "* "
	indent       = "  "
)

// openDefinitionTerm opens a definition term when an indented line follows
// a line starting with a letter. The pending line becomes the term text
// when it is flushed right after.
func (c *conversion) openDefinitionTerm(incoming *bufferedLine) {
	if !strings.HasPrefix(incoming.raw, indent) || incoming.isBlank() {
		return
	}
	if c.pending.isBlank() || !startsWithLetter(c.pending.raw) {
		return
	}
	if c.stack.topIs(ContextDefinitionTerm) {
		return
	}
	if c.stack.topIs(ContextDefinitionDescription) {
		c.stack.pop()
	}
	if !c.stack.topIs(ContextDefinitionList) {
		if c.stack.topIs(ContextParagraph) {
			c.stack.pop()
		}
		c.openAbstract()
		c.write("<dl>")
		c.stack.push(ContextDefinitionList)
	}
	c.write("<dt>")
	c.stack.push(ContextDefinitionTerm)
}

// flush writes a line whose interpretation is now settled.
func (c *conversion) flush(line *bufferedLine) {
	if item, ok := strings.CutPrefix(strings.TrimLeft(line.raw, " "), bulletPrefix); ok {
		c.writeListItem(item)
		return
	}
	if line.isBlank() {
		// A blank line ends paragraphs and lists, never sections or tables.
		for c.stack.topIsAny(ContextDefinitionDescription, ContextListItem, ContextParagraph, ContextUnorderedList) {
			c.stack.pop()
		}
		return
	}

	switch {
	case c.stack.topIs(ContextDefinitionTerm) && strings.HasPrefix(line.raw, indent):
		c.stack.pop()
		c.write("<dd>")
		c.stack.push(ContextDefinitionDescription)
	case !c.stack.topIsAny(ContextDefinitionDescription, ContextDefinitionTerm, ContextParagraph):
		if c.stack.topIs(ContextDefinitionList) {
			c.stack.pop()
		}
		c.openAbstract()
		c.write("<t>\n")
		c.stack.push(ContextParagraph)
	}
	c.write(line.text + "\n")
}

// writeListItem closes the previous item and opens a new one, starting the
// list if needed.
func (c *conversion) writeListItem(item string) {
	if c.stack.topIs(ContextListItem) {
		c.stack.pop()
	}
	if !c.stack.topIs(ContextUnorderedList) {
		c.openAbstract()
		c.write("<ul>\n")
		c.stack.push(ContextUnorderedList)
	}
	c.write("<li>" + Escape(item) + "\n")
	c.stack.push(ContextListItem)
}

// openAbstract writes the authors and opens the abstract when the first
// block of the front matter starts.
func (c *conversion) openAbstract() {
	if c.stack.topIs(ContextFront) {
		c.writeAuthors()
		c.write("<abstract>\n")
		c.stack.push(ContextAbstract)
	}
}
