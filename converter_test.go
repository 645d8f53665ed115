package rst2rfcxml

// Notes:
// - Expected documents are written out in full for small inputs; larger
//   inputs are checked for structure (balanced tags, counts) instead.
// - An empty context stack at the end of every run is covered by the tag
//   balance checks: every element that was opened is closed exactly once.

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// convertString converts input with a fresh converter and fails the test on
// error.
func convertString(t *testing.T, input string, opts ...Option) string {
	t.Helper()
	out, err := NewConverter(opts...).ConvertString(input)
	if err != nil {
		t.Fatalf("ConvertString: unexpected error: %v", err)
	}
	return out
}

// bodyOf returns out without the preamble.
func bodyOf(t *testing.T, out string) string {
	t.Helper()
	body, ok := strings.CutPrefix(out, preamble)
	if !ok {
		t.Fatalf("output does not start with the preamble:\n%s", out)
	}
	return body
}

// balancedTags lists opening and closing markup that must pair up.
var balancedTags = [][2]string{
	{"<rfc ", "</rfc>"},
	{"<front>", "</front>"},
	{"<middle>", "</middle>"},
	{"<abstract>", "</abstract>"},
	{"<section ", "</section>"},
	{"<t>", "</t>"},
	{"<ul>", "</ul>"},
	{"<li>", "</li>"},
	{"<dl>", "</dl>"},
	{"<dt>", "</dt>"},
	{"<dd>", "</dd>"},
	{"<table>", "</table>"},
	{"<thead>", "</thead>"},
	{"<tbody>", "</tbody>"},
	{"<tt>", "</tt>"},
}

func assertBalanced(t *testing.T, out string) {
	t.Helper()
	for _, pair := range balancedTags {
		open, closing := strings.Count(out, pair[0]), strings.Count(out, pair[1])
		if open != closing {
			t.Errorf("%q opened %d times, %q closed %d times", pair[0], open, pair[1], closing)
		}
	}
}

// ---------------------------------------------------------------------------
// TestConvert_Document - Front matter, title, abstract, sections
// ---------------------------------------------------------------------------

func TestConvert_Document(t *testing.T) {
	t.Parallel()

	input := `.. |docName| replace:: draft-example-00
.. |ipr| replace:: trust200902
.. |titleAbbr| replace:: Example
.. |authorFullname| replace:: Jane Doe
.. |authorSurname| replace:: Doe
.. header::

==========
My Title
==========

Abstract text.

Introduction
============

Body & more.
`
	want := `<rfc ipr="trust200902" docName="draft-example-00" category="" submissionType="">

  <front>
<title abbrev="Example">My Title</title>
<author fullname="Jane Doe" surname="Doe"></author>
<abstract>
<t>
Abstract text.
</t>
</abstract>
</front>
<middle>
<section anchor="introduction" title="Introduction">
<t>
Body &amp; more.
</t>
</section>
</middle>
</rfc>
`
	if got := bodyOf(t, convertString(t, input)); got != want {
		t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestConvert_SectionNesting(t *testing.T) {
	t.Parallel()

	input := ".. header::\n\nA\n=\n\nB\n-\n\nC\n~\n\nD\n=\n"
	want := `<rfc ipr="" docName="" category="" submissionType="">

  <front>
</front>
<middle>
<section anchor="a" title="A">
<section anchor="b" title="B">
<section anchor="c" title="C">
</section>
</section>
</section>
<section anchor="d" title="D">
</section>
</middle>
</rfc>
`
	if got := bodyOf(t, convertString(t, input)); got != want {
		t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestConvert_HeadingAttributes(t *testing.T) {
	t.Parallel()

	input := ".. header::\n\n3. Use of ``<rfc>`` & \"quotes\"\n--------------------\n\nSee `3. Use of`_.\n"
	body := bodyOf(t, convertString(t, input))

	wantSection := `<section anchor="useofttltrfcgtttampquotes" ` +
		`title="3. Use of &lt;tt&gt;&lt;rfc&gt;&lt;/tt&gt; &amp; &quot;quotes&quot;">`
	if !strings.Contains(body, wantSection+"\n") {
		t.Errorf("missing %s in output:\n%s", wantSection, body)
	}
	if !strings.Contains(body, `<t>`+"\n"+`See <xref target="useof"/>.`+"\n") {
		t.Errorf("missing cross-reference:\n%s", body)
	}
	assertBalanced(t, body)
}

func TestConvert_FrontClosedOnce(t *testing.T) {
	t.Parallel()

	input := ".. header::\n\nSub\n---\n\nOne\n===\n\nTwo\n===\n"
	out := convertString(t, input)

	if got := strings.Count(out, "<middle>"); got != 1 {
		t.Errorf("<middle> written %d times, want 1", got)
	}
	if got := strings.Count(out, "</front>"); got != 1 {
		t.Errorf("</front> written %d times, want 1", got)
	}
	if !strings.HasSuffix(out, "</section>\n</middle>\n</rfc>\n") {
		t.Errorf("unexpected document end:\n%s", out)
	}
	assertBalanced(t, out)
}

func TestConvert_DuplicateHeader(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	out := convertString(t, ".. header::\n.. header::\n", WithLogger(logger))

	if got := strings.Count(out, "<rfc "); got != 1 {
		t.Errorf("<rfc> written %d times, want 1", got)
	}
	if !strings.Contains(logs.String(), "duplicate header") {
		t.Errorf("expected a warning, logs:\n%s", logs.String())
	}
	if !strings.HasSuffix(out, "  <front>\n</front>\n</rfc>\n") {
		t.Errorf("unexpected document end:\n%s", out)
	}
}

func TestConvert_SkippedDirectives(t *testing.T) {
	t.Parallel()

	got := convertString(t, ".. contents::\n.. sectnum::\nText\n")
	if want := "<t>\nText\n</t>\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestConvert_Blocks - Paragraphs, lists, definition lists, tables
// ---------------------------------------------------------------------------

func TestConvert_Blocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "paragraph",
			input: "Hello world\n",
			want:  "<t>\nHello world\n</t>\n",
		},
		{
			name:  "paragraph lines grouped",
			input: "Hello\r\nworld\r\n",
			want:  "<t>\nHello\nworld\n</t>\n",
		},
		{
			name:  "byte-order mark dropped",
			input: "\ufeffHello\n",
			want:  "<t>\nHello\n</t>\n",
		},
		{
			name:  "two paragraphs",
			input: "One\n\nTwo\n",
			want:  "<t>\nOne\n</t>\n<t>\nTwo\n</t>\n",
		},
		{
			name:  "bullet list then paragraph",
			input: "* one\n* two\n\nAfter.\n",
			want:  "<ul>\n<li>one\n</li>\n<li>two\n</li>\n</ul>\n<t>\nAfter.\n</t>\n",
		},
		{
			name:  "three bullets share one list",
			input: "* one\n* two\n* three\n\nAfter.\n",
			want:  "<ul>\n<li>one\n</li>\n<li>two\n</li>\n<li>three\n</li>\n</ul>\n<t>\nAfter.\n</t>\n",
		},
		{
			name:  "escaped bullet is text",
			input: "\\* not a bullet\n",
			want:  "<t>\n* not a bullet\n</t>\n",
		},
		{
			name:  "definition list",
			input: "Term\n  Description.\n\n",
			want:  "<dl><dt>Term\n</dt>\n<dd>Description.\n</dd>\n</dl>\n",
		},
		{
			name:  "definition list with two terms",
			input: "One\n  first\nTwo\n  second\n\n",
			want:  "<dl><dt>One\n</dt>\n<dd>first\n</dd>\n<dt>Two\n</dt>\n<dd>second\n</dd>\n</dl>\n",
		},
		{
			name:  "table",
			input: "=====  =====\nName   Value\n=====  =====\na      1\n=====  =====\n",
			want: "<table><thead><tr>\n  <th>Name</th>\n  <th>Value</th>\n</tr></thead>\n" +
				" <tbody>\n <tr>\n  <td>a</td>\n  <td>1</td>\n </tr>\n</tbody>\n</table>\n",
		},
		{
			name:  "table with three columns",
			input: "==  =====  =\nA   BB     C\n==  =====  =\n1   22     3\n==  =====  =\n",
			want: "<table><thead><tr>\n  <th>A</th>\n  <th>BB</th>\n  <th>C</th>\n</tr></thead>\n" +
				" <tbody>\n <tr>\n  <td>1</td>\n  <td>22</td>\n  <td>3</td>\n </tr>\n</tbody>\n</table>\n",
		},
		{
			name:  "table after paragraph",
			input: "Para\n==  ==\nH1  H2\n==  ==\nc1  c2\n==  ==\n",
			want: "<t>\nPara\n</t>\n<table><thead><tr>\n  <th>H1</th>\n  <th>H2</th>\n</tr></thead>\n" +
				" <tbody>\n <tr>\n  <td>c1</td>\n  <td>c2</td>\n </tr>\n</tbody>\n</table>\n",
		},
		{
			name:  "blank lines inside table ignored",
			input: "==  ==\nH1  H2\n\n==  ==\nc1  c2\n\n==  ==\n",
			want: "<table><thead><tr>\n  <th>H1</th>\n  <th>H2</th>\n</tr></thead>\n" +
				" <tbody>\n <tr>\n  <td>c1</td>\n  <td>c2</td>\n </tr>\n</tbody>\n</table>\n",
		},
		{
			name:  "short table row",
			input: "==  ==\nH\n==  ==\nc\n==  ==\n",
			want: "<table><thead><tr>\n  <th>H</th>\n  <th></th>\n</tr></thead>\n" +
				" <tbody>\n <tr>\n  <td>c</td>\n  <td></td>\n </tr>\n</tbody>\n</table>\n",
		},
		{
			name:  "inline markup in cells",
			input: "====  ====\nA&B   ``x``\n====  ====\n====  ====\n",
			want:  "<table><thead><tr>\n  <th>A&amp;B</th>\n  <th><tt>x</tt></th>\n</tr></thead>\n <tbody>\n</tbody>\n</table>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := convertString(t, tt.input)
			if got != tt.want {
				t.Errorf("output mismatch\ngot:  %q\nwant: %q", got, tt.want)
			}
			assertBalanced(t, got)
		})
	}
}

func TestConvert_BulletListGroupedOnce(t *testing.T) {
	t.Parallel()

	got := convertString(t, "* one\n* two\n* three\n\nAfter.\n")
	if n := strings.Count(got, "<ul>"); n != 1 {
		t.Errorf("<ul> written %d times, want 1:\n%s", n, got)
	}
	if !strings.Contains(got, "<li>three\n</li>\n</ul>\n<t>\n") {
		t.Errorf("list not closed by the blank line:\n%s", got)
	}
}

// ---------------------------------------------------------------------------
// TestConvert_FrontBlocks - First block of the front matter opens the abstract
// ---------------------------------------------------------------------------

func TestConvert_FrontBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "definition list",
			input: ".. |authorFullname| replace:: Jane\n.. header::\n\nTerm\n  Desc\n\nPara\n",
			want: "  <front>\n<author fullname=\"Jane\"></author>\n<abstract>\n" +
				"<dl><dt>Term\n</dt>\n<dd>Desc\n</dd>\n</dl>\n<t>\nPara\n</t>\n" +
				"</abstract>\n</front>\n</rfc>\n",
		},
		{
			name:  "bullet list",
			input: ".. header::\n\n* a\n",
			want:  "  <front>\n<abstract>\n<ul>\n<li>a\n</li>\n</ul>\n</abstract>\n</front>\n</rfc>\n",
		},
		{
			name:  "table",
			input: ".. header::\n\n==  ==\nH1  H2\n==  ==\n==  ==\n",
			want: "  <front>\n<abstract>\n<table><thead><tr>\n  <th>H1</th>\n  <th>H2</th>\n</tr></thead>\n" +
				" <tbody>\n</tbody>\n</table>\n</abstract>\n</front>\n</rfc>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := convertString(t, tt.input)
			if !strings.HasSuffix(got, tt.want) {
				t.Errorf("unexpected document end\ngot:  %q\nwant suffix: %q", got, tt.want)
			}
			if n := strings.Count(got, "<abstract>"); n != 1 {
				t.Errorf("<abstract> written %d times, want 1", n)
			}
			assertBalanced(t, got)
		})
	}
}

// ---------------------------------------------------------------------------
// TestConvert_Metadata - Directive values and converter defaults
// ---------------------------------------------------------------------------

func TestConvert_MetadataDefaults(t *testing.T) {
	t.Parallel()

	conv := NewConverter(WithMetadata(Metadata{
		DocName:   "default-name",
		IPR:       "trust200902",
		TitleAbbr: `Say "x"`,
		Authors:   []Author{{Fullname: "A & B", Role: "editor"}},
	}))
	input := ".. |docName| replace:: draft-override-01\n" +
		".. |authorFullname| replace:: Jane Doe\n" +
		".. header::\n\n===\nTitle\n===\n\nAbstract.\n"

	for range 2 {
		out, err := conv.ConvertString(input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		body := bodyOf(t, out)

		if !strings.HasPrefix(body, `<rfc ipr="trust200902" docName="draft-override-01" category="" submissionType="">`) {
			t.Errorf("unexpected <rfc> element:\n%s", body)
		}
		if !strings.Contains(body, `<title abbrev="Say &quot;x&quot;">Title</title>`) {
			t.Errorf("unexpected title:\n%s", body)
		}
		authors := `<author fullname="A &amp; B" role="editor"></author>` + "\n" +
			`<author fullname="Jane Doe"></author>` + "\n<abstract>\n"
		if !strings.Contains(body, authors) {
			t.Errorf("unexpected authors:\n%s", body)
		}
		if got := strings.Count(body, "<author "); got != 2 {
			t.Errorf("authors written %d times, want 2 on every run", got)
		}
	}
}

func TestConvert_AuthorErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		opts    []Option
		wantErr error
		wantPos string
	}{
		{
			name:    "mutation before any author",
			input:   "\n.. |authorRole| replace:: editor\n",
			wantErr: ErrNoAuthor,
			wantPos: "<string>:2",
		},
		{
			name:  "lenient allows gaps",
			input: ".. |authorFullname| replace:: Jane\n\n.. |authorRole| replace:: editor\n",
		},
		{
			name:    "strict rejects gaps",
			input:   ".. |authorFullname| replace:: Jane\n\n.. |authorRole| replace:: editor\n",
			opts:    []Option{WithStrictAuthors(true)},
			wantErr: ErrAuthorOrder,
			wantPos: "<string>:3",
		},
		{
			name:  "strict allows consecutive directives",
			input: ".. |authorFullname| replace:: Jane\n.. |authorSurname| replace:: Doe\n.. |authorRole| replace:: editor\n",
			opts:  []Option{WithStrictAuthors(true)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewConverter(tt.opts...).ConvertString(tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantPos) {
				t.Errorf("error = %q, want position %s", err, tt.wantPos)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConvert_Sources - Multiple sources, unreadable files, write errors
// ---------------------------------------------------------------------------

func TestConvert_NoInput(t *testing.T) {
	t.Parallel()

	conv := NewConverter()
	if err := conv.Convert(&bytes.Buffer{}); !errors.Is(err, ErrNoInput) {
		t.Errorf("Convert() error = %v, want ErrNoInput", err)
	}
	if err := conv.ConvertFiles(&bytes.Buffer{}); !errors.Is(err, ErrNoInput) {
		t.Errorf("ConvertFiles() error = %v, want ErrNoInput", err)
	}
}

func TestConvert_MultipleSources(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	err := NewConverter().Convert(&b,
		Source{Name: "front.rst", Reader: strings.NewReader(".. header::\n\nAbstract.")},
		Source{Name: "body.rst", Reader: strings.NewReader("Intro\n=====\n\nText")},
		Source{Name: "more.rst", Reader: strings.NewReader("Next\n====\n")},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := b.String()

	// The implicit blank line ends "Abstract." and "Text" at their source.
	for _, want := range []string{
		"<t>\nAbstract.\n</t>\n</abstract>\n</front>\n<middle>\n",
		"<t>\nText\n</t>\n</section>\n<section anchor=\"next\" title=\"Next\">\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "<middle>"); got != 1 {
		t.Errorf("<middle> written %d times, want 1", got)
	}
	assertBalanced(t, out)
}

func TestConvertFiles_UnreadableSourceIsEmpty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := ".. header::\n\nIntro\n=====\n\nText.\n"
	path := filepath.Join(dir, "draft.rst")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	conv := NewConverter(WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	var b bytes.Buffer
	if err := conv.ConvertFiles(&b, filepath.Join(dir, "missing.rst"), dir, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := convertString(t, content); b.String() != want {
		t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", b.String(), want)
	}
	if got := strings.Count(logs.String(), "input unreadable"); got != 2 {
		t.Errorf("logged %d unreadable inputs, want 2:\n%s", got, logs.String())
	}
}

func TestConvert_NilReaderIsEmpty(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	err := NewConverter().Convert(&b, Source{Name: "none"}, Source{Name: "text", Reader: strings.NewReader("Hi\n")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := b.String(), "<t>\nHi\n</t>\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

type failingWriter struct{ calls int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, errors.New("disk full")
}

func TestConvert_WriteError(t *testing.T) {
	t.Parallel()

	w := &failingWriter{}
	err := NewConverter().Convert(w, Source{Name: "in", Reader: strings.NewReader(".. header::\n\nText\n")})
	if !errors.Is(err, ErrOutputWrite) {
		t.Fatalf("error = %v, want ErrOutputWrite", err)
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("error = %q, want cause", err)
	}
	if w.calls != 1 {
		t.Errorf("writer called %d times, want 1 (later writes are dropped)", w.calls)
	}
}

func TestConvert_DebugLogging(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	convertString(t, ".. header::\n\nIntro\n=====\n\n==  ==\na  b\n==  ==\n==  ==\n", WithLogger(logger))

	for _, want := range []string{"front matter closed", "section opened", "anchor=intro", "table opened", "table closed"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("logs missing %q:\n%s", want, logs.String())
		}
	}
}

func TestConverter_ConcurrentUse(t *testing.T) {
	t.Parallel()

	conv := NewConverter(WithMetadata(Metadata{Authors: []Author{{Fullname: "Jane Doe"}}}))
	input := ".. |authorFullname| replace:: John Roe\n.. header::\n\nAbstract.\n\nIntro\n=====\n\n* a\n* b\n"
	want := convertString(t, input, WithMetadata(Metadata{Authors: []Author{{Fullname: "Jane Doe"}}}))

	var wg sync.WaitGroup
	results := make([]string, 8)
	errs := make([]error, len(results))
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = conv.ConvertString(input)
		}(i)
	}
	wg.Wait()

	for i := range results {
		if errs[i] != nil {
			t.Errorf("run %d: unexpected error: %v", i, errs[i])
		}
		if results[i] != want {
			t.Errorf("run %d: output differs from a sequential run", i)
		}
	}
}

func TestWithLogger_NilKeepsDefault(t *testing.T) {
	t.Parallel()

	conv := NewConverter(WithLogger(nil))
	if conv.cfg.logger == nil {
		t.Fatal("logger is nil")
	}
	if _, err := conv.ConvertString(".. header::\n.. header::\n"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
