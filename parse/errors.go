package parse

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/hashicorp/go-set/v3"
	"github.com/tidwall/btree"
)

type Error struct {
	Pos      Position
	Message  string
	Expected []string
	Got      string
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Message
}

// ErrorList holds syntax errors ordered by position, at most one per
// position.
type ErrorList []*Error

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0].Error(), len(l)-1)
}

// Err returns l as an error, or nil when l is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// collectErrors gathers extra plus the errors attached to the final tree,
// sorted by offset. Errors at the same offset are merged.
func collectErrors(root *Node, extra []*Error) ErrorList {
	var byOffset btree.Map[int, *Error]
	add := func(e *Error) {
		if prev, ok := byOffset.Get(e.Pos.Offset); ok {
			byOffset.Set(e.Pos.Offset, mergeErrors(prev, e))
			return
		}
		byOffset.Set(e.Pos.Offset, e)
	}
	// Errors outside the tree carry their own message and win a merge.
	for _, e := range extra {
		add(e)
	}
	root.Walk(func(n *Node) bool {
		if n.Error != nil {
			add(n.Error)
		}
		return true
	})
	out := make(ErrorList, 0, byOffset.Len())
	byOffset.Scan(func(_ int, e *Error) bool {
		out = append(out, e)
		return true
	})
	return out
}

func mergeErrors(a, b *Error) *Error {
	if len(a.Expected) == 0 || len(b.Expected) == 0 {
		return a
	}
	merged := *a
	merged.Expected = sortedVariants(append(append([]string{}, a.Expected...), b.Expected...))
	merged.Message = expectedMessage(merged.Expected, merged.Got)
	return &merged
}

func sortedVariants(variants []string) []string {
	if len(variants) == 0 {
		return nil
	}
	return set.TreeSetFrom[string](variants, cmp.Compare[string]).Slice()
}

func expectedMessage(expected []string, got string) string {
	if len(expected) == 0 {
		return "unexpected " + got
	}
	var list string
	if len(expected) == 1 {
		list = expected[0]
	} else {
		list = strings.Join(expected[:len(expected)-1], ", ") + " or " + expected[len(expected)-1]
	}
	return list + " expected, got " + got
}

func (p *Parser) describe(tok Token) string {
	if tok.Kind == TokenEOF {
		return "end of file"
	}
	if tok.Kind == p.lang.Newline && p.lang.Newline != TokenEOF {
		return "new line"
	}
	return "'" + tok.Literal + "'"
}

// Expect records name as a variant that would have been accepted at the
// cursor. Only the variants at the farthest position are kept.
func (p *Parser) Expect(name string) {
	if p.suppress > 0 {
		return
	}
	at := p.cursor()
	switch {
	case at > p.farthest:
		p.farthest = at
		p.variants = append(p.variants[:0], name)
	case at == p.farthest:
		p.variants = append(p.variants, name)
	}
}

// variantMark returns the length of the variant list that belongs to the
// cursor position.
func (p *Parser) variantMark() int {
	if p.farthest == p.cursor() {
		return len(p.variants)
	}
	return 0
}

// replaceVariants collapses the variants a named rule recorded at its own
// start position into the rule's display name.
func (p *Parser) replaceVariants(start, mark int, display string) {
	if display == "" || p.suppress > 0 {
		return
	}
	at := p.skipIndex(start)
	switch {
	case p.farthest > at:
		return
	case p.farthest == at:
		if mark > len(p.variants) {
			mark = len(p.variants)
		}
		p.variants = append(p.variants[:mark], display)
	default:
		p.farthest = at
		p.variants = append(p.variants[:0], display)
	}
}

// ClearError drops variants that lie behind the cursor. Loops call it
// after each iteration that made progress.
func (p *Parser) ClearError() {
	if p.farthest < p.cursor() {
		p.variants = p.variants[:0]
	}
}

// Report records a syntax error at the cursor built from the expected
// variants. It does nothing inside lookahead or when an error was already
// reported at or after the cursor.
func (p *Parser) Report() bool {
	err := p.newError()
	if err == nil {
		return false
	}
	p.events = append(p.events, event{kind: evError, err: err})
	return true
}

// Errorf records an error with a custom message at the cursor, subject to
// the same de-duplication as Report.
func (p *Parser) Errorf(format string, args ...any) bool {
	err := p.newError()
	if err == nil {
		return false
	}
	err.Message = fmt.Sprintf(format, args...)
	err.Expected = nil
	p.events = append(p.events, event{kind: evError, err: err})
	return true
}

func (p *Parser) newError() *Error {
	if p.suppress > 0 {
		return nil
	}
	at := p.cursor()
	if at <= p.lastError {
		return nil
	}
	p.lastError = at
	tok := p.tokens[at]
	var expected []string
	if p.farthest == at {
		expected = sortedVariants(p.variants)
	}
	got := p.describe(tok)
	return &Error{
		Pos:      tok.Span.Start,
		Message:  expectedMessage(expected, got),
		Expected: expected,
		Got:      got,
	}
}
