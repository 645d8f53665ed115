package rst2rfcxml

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alnah/go-rst2rfcxml/internal/fileutil"
)

// Converter turns reStructuredText sources into xml2rfc v3 XML.
// A Converter holds only configuration: every Convert call starts from an
// empty context stack, so one Converter may serve concurrent conversions
// writing to distinct outputs.
type Converter struct {
	cfg converterConfig
}

// NewConverter creates a Converter. Use options to set a logger, metadata
// defaults, or strict author validation.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		cfg: converterConfig{logger: slog.New(slog.DiscardHandler)},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert reads sources in order as one logical line stream and writes the
// XML document to w. Each source ends with an implicit blank line. A source
// that cannot be read is treated as empty. Open elements are closed once,
// after the last source.
func (c *Converter) Convert(w io.Writer, sources ...Source) error {
	if len(sources) == 0 {
		return ErrNoInput
	}
	run := c.newConversion(w)
	for _, src := range sources {
		if err := run.processSource(src); err != nil {
			return err
		}
	}
	return run.finish()
}

// ConvertFiles is Convert over the files at paths. Files that cannot be
// opened are logged and treated as empty.
func (c *Converter) ConvertFiles(w io.Writer, paths ...string) error {
	if len(paths) == 0 {
		return ErrNoInput
	}
	run := c.newConversion(w)
	for _, path := range paths {
		if err := run.processFile(path); err != nil {
			return err
		}
	}
	return run.finish()
}

// ConvertString converts a single in-memory document.
func (c *Converter) ConvertString(input string) (string, error) {
	var b strings.Builder
	err := c.Convert(&b, Source{Name: "<string>", Reader: strings.NewReader(input)})
	return b.String(), err
}

// conversion is the state of one run. It is owned by a single goroutine.
type conversion struct {
	out     *stickyWriter
	stack   *contextStack
	meta    metadataState
	columns []int         // ruler offsets of the open table
	pending *bufferedLine // line awaiting interpretation
	logger  *slog.Logger
}

func (c *Converter) newConversion(w io.Writer) *conversion {
	out := &stickyWriter{w: w}
	return &conversion{
		out:    out,
		stack:  newContextStack(out),
		meta:   metadataState{Metadata: c.cfg.metadata.clone(), strict: c.cfg.strictAuthors},
		logger: c.cfg.logger,
	}
}

// processFile opens path and processes it as one source.
func (c *conversion) processFile(path string) error {
	f, err := fileutil.OpenInput(path)
	if err != nil {
		c.logger.Warn("input unreadable, treating as empty", "source", path, "error", err)
		return c.endSource(position{source: path})
	}
	defer func() { _ = f.Close() }()
	return c.processSource(Source{Name: path, Reader: f})
}

// processSource feeds every line of src, then one blank line, through the
// pipeline. Read errors end the source early.
func (c *conversion) processSource(src Source) error {
	pos := position{source: src.Name}
	if src.Reader == nil {
		c.logger.Warn("input unreadable, treating as empty", "source", src.Name)
		return c.endSource(pos)
	}
	r := bufio.NewReader(fileutil.NewTextReader(src.Reader))
	for {
		line, readErr := r.ReadString('\n')
		if line != "" {
			pos.line++
			if err := c.processLine(trimEOL(line), pos); err != nil {
				return err
			}
		}
		if readErr != nil {
			if !errors.Is(readErr, io.EOF) {
				c.logger.Warn("input read failed, ignoring the rest", "source", src.Name, "line", pos.line, "error", readErr)
			}
			break
		}
	}
	return c.endSource(pos)
}

// endSource processes the implicit blank line that ends every source.
func (c *conversion) endSource(pos position) error {
	pos.line++
	return c.processLine("", pos)
}

// finish closes every open element and reports the first write error.
func (c *conversion) finish() error {
	c.stack.popUntil(0)
	if c.out.err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, c.out.err)
	}
	return nil
}

func (c *conversion) write(s string) {
	_, _ = io.WriteString(c.out, s)
}

func (c *conversion) writef(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

// trimEOL strips a trailing "\n" or "\r\n".
func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// stickyWriter remembers the first write error and drops all later writes.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.w.Write(p)
	if err != nil {
		s.err = err
	}
	return n, err
}
