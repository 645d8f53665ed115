package rst2rfcxml

// sectionBaseDepth is the stack height below any section: <rfc> and
// <front> or <middle>.
const sectionBaseDepth = 2

// openSection starts a section whose heading is the pending line. The
// stack unwinds to the parent depth of the level first. The first section
// ends the front matter and opens the middle matter.
func (c *conversion) openSection(level int) {
	heading := ""
	if c.pending != nil {
		heading = c.pending.text
	}
	c.pending = nil

	c.stack.popUntil(sectionBaseDepth + level - 1)
	if c.stack.contains(ContextFront) {
		for c.stack.contains(ContextFront) {
			c.stack.pop()
		}
		c.write("<middle>\n")
		c.stack.push(ContextMiddle)
		c.logger.Debug("front matter closed")
	}

	anchor := Anchor(heading)
	c.writef("<section anchor=\"%s\" title=\"%s\">\n", anchor, escapeAttr(heading))
	c.stack.push(ContextSection)
	c.logger.Debug("section opened", "level", level, "anchor", anchor, "depth", c.stack.depth())
}

// writeTitle writes one line of the document title. Blank lines inside a
// title are dropped.
func (c *conversion) writeTitle(raw string) {
	if isBlank(raw) {
		return
	}
	c.writef("<title abbrev=\"%s\">%s</title>\n", escapeAttr(c.meta.TitleAbbr), Escape(raw))
}
