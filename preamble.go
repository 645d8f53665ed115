package rst2rfcxml

// preamble is written before the <rfc> element. The xml2rfc processing
// instructions match what the tool enables by default.
const preamble = `<?xml version="1.0" encoding="UTF-8"?>
<?xml-stylesheet type="text/xsl" href="rfc2629.xslt"?>
<!-- generated by rst2rfcxml -->

<!DOCTYPE rfc [
]>

<?rfc rfcedstyle="yes"?>
<?rfc toc="yes"?>
<?rfc tocindent="yes"?>
<?rfc sortrefs="yes"?>
<?rfc symrefs="yes"?>
<?rfc strict="yes"?>
<?rfc comments="yes"?>
<?rfc inline="yes"?>
<?rfc text-list-symbols="-o*+"?>
<?rfc docmapping="yes"?>

`

// writeHeader writes the preamble, opens <rfc> with the metadata collected
// so far, and opens the front matter. Only the first header directive of a
// conversion has an effect.
func (c *conversion) writeHeader() {
	if c.stack.contains(ContextRoot) {
		c.logger.Warn("duplicate header directive ignored")
		return
	}
	c.write(preamble)
	c.writef("<rfc ipr=\"%s\" docName=\"%s\" category=\"%s\" submissionType=\"%s\">\n\n",
		escapeAttr(c.meta.IPR),
		escapeAttr(c.meta.DocName),
		escapeAttr(c.meta.Category),
		escapeAttr(c.meta.SubmissionType),
	)
	c.stack.push(ContextRoot)
	c.write("  <front>\n")
	c.stack.push(ContextFront)
}

// writeAuthors writes one <author> element per collected author.
// Optional attributes are omitted when empty.
func (c *conversion) writeAuthors() {
	for _, a := range c.meta.Authors {
		c.writef("<author fullname=\"%s\"", escapeAttr(a.Fullname))
		c.writeOptionalAttr("initials", a.Initials)
		c.writeOptionalAttr("surname", a.Surname)
		c.writeOptionalAttr("role", a.Role)
		c.write("></author>\n")
	}
}

func (c *conversion) writeOptionalAttr(name, value string) {
	if value != "" {
		c.writef(" %s=\"%s\"", name, escapeAttr(value))
	}
}
