package rst2rfcxml

import "strings"

// isRuler reports whether line is a table column ruler: only spaces and
// '=', with at least one '='.
func isRuler(line string) bool {
	return strings.Contains(line, "=") && strings.Trim(line, " =") == ""
}

// rulerColumns returns the start offset, in runes, of every run of '='.
// Offsets are strictly increasing.
func rulerColumns(ruler string) []int {
	var columns []int
	inRun := false
	for i, r := range []rune(ruler) {
		if r == '=' && !inRun {
			columns = append(columns, i)
		}
		inRun = r == '='
	}
	return columns
}

// splitCells cuts line at the ruler offsets. Cell i runs from columns[i]
// to columns[i+1]; the last cell runs to the end of the line. Columns past
// the end of the line yield empty cells.
func splitCells(line string, columns []int) []string {
	runes := []rune(line)
	cells := make([]string, len(columns))
	for i, start := range columns {
		if start >= len(runes) {
			continue
		}
		end := len(runes)
		if i+1 < len(columns) && columns[i+1] < end {
			end = columns[i+1]
		}
		cells[i] = string(runes[start:end])
	}
	return cells
}

// handleRuler advances the table state machine on a ruler line: the first
// ruler opens a table and its header, the second starts the body, the third
// closes the table.
func (c *conversion) handleRuler(ruler string) {
	switch {
	case c.stack.topIs(ContextTableBody):
		c.stack.pop() // body
		c.stack.pop() // table
		c.columns = nil
		c.logger.Debug("table closed")
	case c.stack.topIs(ContextTableHeader):
		c.stack.pop()
		c.write(" <tbody>\n")
		c.stack.push(ContextTableBody)
	default:
		c.flushPending()
		for c.stack.topIsAny(ContextParagraph, ContextDefinitionTerm, ContextDefinitionDescription, ContextDefinitionList) {
			c.stack.pop()
		}
		c.openAbstract()
		c.write("<table><thead><tr>\n")
		c.stack.push(ContextTable)
		c.stack.push(ContextTableHeader)
		c.columns = rulerColumns(ruler)
		c.logger.Debug("table opened", "columns", len(c.columns))
	}
}

// writeHeaderRow writes the cells of a header line into the open header row.
func (c *conversion) writeHeaderRow(line string) {
	if isBlank(line) {
		return
	}
	for _, cell := range splitCells(line, c.columns) {
		c.writef("  <th>%s</th>\n", Escape(cell))
	}
}

// writeBodyRow writes a body line as one table row.
func (c *conversion) writeBodyRow(line string) {
	if isBlank(line) {
		return
	}
	c.write(" <tr>\n")
	for _, cell := range splitCells(line, c.columns) {
		c.writef("  <td>%s</td>\n", Escape(cell))
	}
	c.write(" </tr>\n")
}
