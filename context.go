package rst2rfcxml

import (
	"fmt"
	"io"
)

// Context identifies one open element of the output document.
type Context int

// Contexts that can be open while converting.
const (
	ContextRoot Context = iota
	ContextFront
	ContextMiddle
	ContextBack
	ContextSection
	ContextTitle
	ContextAbstract
	ContextParagraph
	ContextUnorderedList
	ContextListItem
	ContextDefinitionList
	ContextDefinitionTerm
	ContextDefinitionDescription
	ContextTable
	ContextTableHeader
	ContextTableBody
	numContexts
)

var contextNames = [numContexts]string{
	ContextRoot:                  "root",
	ContextFront:                 "front",
	ContextMiddle:                "middle",
	ContextBack:                  "back",
	ContextSection:               "section",
	ContextTitle:                 "title",
	ContextAbstract:              "abstract",
	ContextParagraph:             "paragraph",
	ContextUnorderedList:         "unordered-list",
	ContextListItem:              "list-item",
	ContextDefinitionList:        "definition-list",
	ContextDefinitionTerm:        "definition-term",
	ContextDefinitionDescription: "definition-description",
	ContextTable:                 "table",
	ContextTableHeader:           "table-header",
	ContextTableBody:             "table-body",
}

// closingTokens maps each context to the markup written when it is popped.
// An empty token pops silently.
var closingTokens = [numContexts]string{
	ContextRoot:                  "</rfc>",
	ContextFront:                 "</front>",
	ContextMiddle:                "</middle>",
	ContextBack:                  "</back>",
	ContextSection:               "</section>",
	ContextTitle:                 "",
	ContextAbstract:              "</abstract>",
	ContextParagraph:             "</t>",
	ContextUnorderedList:         "</ul>",
	ContextListItem:              "</li>",
	ContextDefinitionList:        "</dl>",
	ContextDefinitionTerm:        "</dt>",
	ContextDefinitionDescription: "</dd>",
	ContextTable:                 "</table>",
	ContextTableHeader:           "</tr></thead>",
	ContextTableBody:             "</tbody>",
}

func (c Context) String() string {
	if c < 0 || c >= numContexts {
		return fmt.Sprintf("Context(%d)", int(c))
	}
	return contextNames[c]
}

// ClosingToken returns the markup that closes c, or "" if c closes silently.
func (c Context) ClosingToken() string {
	if c < 0 || c >= numContexts {
		return ""
	}
	return closingTokens[c]
}

// contextStack is the ordered nesting of open elements. The top of the
// stack is the innermost element. All mutation goes through push, pop and
// popUntil.
type contextStack struct {
	items []Context
	w     io.Writer
}

func newContextStack(w io.Writer) *contextStack {
	return &contextStack{items: make([]Context, 0, 16), w: w}
}

func (s *contextStack) push(c Context) {
	s.items = append(s.items, c)
}

// pop writes the closing token of the top context and removes it.
// Panics on an empty stack: every pop must match an earlier push.
func (s *contextStack) pop() {
	if len(s.items) == 0 {
		panic("rst2rfcxml: pop on empty context stack")
	}
	top := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	if token := top.ClosingToken(); token != "" {
		_, _ = io.WriteString(s.w, token+"\n")
	}
}

// popUntil pops while the stack is higher than depth.
func (s *contextStack) popUntil(depth int) {
	for len(s.items) > depth {
		s.pop()
	}
}

func (s *contextStack) topIs(c Context) bool {
	return len(s.items) > 0 && s.items[len(s.items)-1] == c
}

// topIsAny reports whether the top context is one of cs.
func (s *contextStack) topIsAny(cs ...Context) bool {
	for _, c := range cs {
		if s.topIs(c) {
			return true
		}
	}
	return false
}

func (s *contextStack) contains(c Context) bool {
	for _, item := range s.items {
		if item == c {
			return true
		}
	}
	return false
}

func (s *contextStack) depth() int {
	return len(s.items)
}
