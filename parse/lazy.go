package parse

type lazyBlock struct {
	rule   Rule
	flags  Flag
	tokens []Token
}

// Lazy parses a block delimited by open and close with inner. In lazy
// mode (WithLazyBlocks) a balanced region is instead captured unparsed as
// a node of kind, to be parsed later by Tree.Expand. Unbalanced regions
// are always parsed eagerly so their errors are reported.
//
// The region ends at the matching close token even when an eager parse of
// malformed input would have recovered past it, so for invalid input the
// expanded tree and its errors may differ from an eager parse.
func Lazy(kind NodeKind, open, close TokenKind, inner Rule) Rule {
	return func(p *Parser) bool {
		if !p.lazy || !p.At(open) {
			return inner(p)
		}
		start := p.cursor()
		end, ok := p.balanced(start, open, close)
		if !ok {
			return inner(p)
		}
		for p.pos < start {
			p.emitToken()
		}
		m := p.Mark()
		for p.pos < end {
			p.emitToken()
		}
		c := m.Done(kind)
		p.events[c.index].lazy = &lazyBlock{rule: inner, flags: p.flags, tokens: p.tokens[start:end]}
		return true
	}
}

// balanced returns the index just past the close token matching the open
// token at start.
func (p *Parser) balanced(start int, open, close TokenKind) (int, bool) {
	depth := 0
	for i := start; i < len(p.tokens); i++ {
		switch p.tokens[i].Kind {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i + 1, true
			}
		case TokenEOF:
			return 0, false
		}
	}
	return 0, false
}
