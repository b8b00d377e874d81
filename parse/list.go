package parse

// List parses items separated by Sep up to (not including) a token in End.
//
// When an item fails, the tokens up to the next token in End, Sep or Sync
// are wrapped in one error node and parsing continues with the next item.
// At least one token is skipped unless the cursor already sits on a
// terminator or separator, so a list always makes progress.
type List struct {
	// Name is shown in expected-variant messages, e.g. "<statement>".
	Name string
	Item Rule
	Sep  TokenSet
	End  TokenSet
	Sync TokenSet
	// Loose lists accept any number of separators anywhere, including
	// none between items on different lines; statement lists are loose.
	Loose bool
	// Trailing allows a separator right before End.
	Trailing bool
}

func (l *List) Rule() Rule {
	return l.Parse
}

// Parse always succeeds.
func (l *List) Parse(p *Parser) bool {
	if l.Loose {
		l.parseLoose(p)
	} else {
		l.parseStrict(p)
	}
	return true
}

func (l *List) atEnd(p *Parser) bool {
	k := p.PeekKind(0)
	return k == TokenEOF || l.End.Has(k)
}

func (l *List) skipSeparators(p *Parser) {
	for l.Sep.Has(p.PeekKind(0)) {
		p.Advance()
	}
}

func (l *List) parseLoose(p *Parser) {
	for {
		l.skipSeparators(p)
		if l.atEnd(p) {
			return
		}
		if !l.item(p) {
			l.recover(p)
			continue
		}
		if l.atEnd(p) || l.Sep.Has(p.PeekKind(0)) || l.Sep.Has(p.Prev().Kind) {
			continue
		}
		for _, k := range l.Sep.Kinds() {
			p.Expect(p.lang.TokenName(k))
		}
		l.recover(p)
	}
}

func (l *List) parseStrict(p *Parser) {
	if l.atEnd(p) {
		return
	}
	for {
		if !l.item(p) {
			l.recover(p)
		} else if !l.atEnd(p) && !l.Sep.Has(p.PeekKind(0)) {
			for _, k := range l.Sep.Union(l.End).Kinds() {
				p.Expect(p.lang.TokenName(k))
			}
			l.recover(p)
		}
		if !l.Sep.Has(p.PeekKind(0)) {
			return
		}
		p.Advance()
		if l.Trailing && l.atEnd(p) {
			return
		}
	}
}

// item runs Item and reports whether it matched and consumed input.
func (l *List) item(p *Parser) bool {
	start := p.pos
	vmark := p.variantMark()
	m := p.Mark()
	if !l.Item(p) {
		m.Rollback()
		if l.Name != "" {
			p.replaceVariants(start, vmark, l.Name)
		}
		return false
	}
	if p.pos == start {
		m.Rollback()
		return false
	}
	m.Drop()
	p.ClearError()
	return true
}

func (l *List) recover(p *Parser) {
	k := p.PeekKind(0)
	forced := !(k == TokenEOF || l.End.Has(k) || l.Sep.Has(k))
	p.recoverTo(l.End.Union(l.Sep).Union(l.Sync), forced)
}

// recoverTo records an error at the cursor and skips tokens until one in
// stop or EOF. With forced set at least one token is skipped. Skipped
// tokens are wrapped in an error node carrying the error.
func (p *Parser) recoverTo(stop TokenSet, forced bool) {
	err := p.newError()
	m := p.Mark()
	skipped := 0
	for !p.AtEOF() {
		if stop.Has(p.PeekKind(0)) && (skipped > 0 || !forced) {
			break
		}
		p.Advance()
		skipped++
	}
	if skipped == 0 {
		m.Drop()
		if err != nil {
			p.events = append(p.events, event{kind: evError, err: err})
		}
		return
	}
	if err == nil {
		m.Done(KindError)
	} else {
		m.doneError(err)
	}
	p.log.Debugf("recovered: skipped %d tokens", skipped)
}

// Recover returns a rule for the last alternative of a construct: it
// records an error at the cursor, skips up to the next token in sync and
// succeeds. Skipped tokens go into an error node.
func Recover(sync TokenSet) Rule {
	return func(p *Parser) bool {
		p.recoverTo(sync, false)
		return true
	}
}

// Braced parses Open Head List Close into a node of Kind.
//
// The empty form Open Close is checked first. Inside the brackets the Set
// flags are set and the Clear flags cleared, so e.g. newlines can be made
// insignificant within parentheses and significant again within a block.
// A Close missing at end of input is reported once, at the opening token.
type Braced struct {
	Name  string
	Kind  NodeKind
	Open  TokenKind
	Close TokenKind
	Set   Flag
	Clear Flag
	// Head, when set, runs right after Open.
	Head Rule
	List List
}

func (b *Braced) Rule() Rule {
	return b.Parse
}

func (b *Braced) Parse(p *Parser) bool {
	if !p.At(b.Open) {
		p.Expect(p.lang.TokenName(b.Open))
		return false
	}
	m := p.Mark()
	open := p.Advance()
	saved := p.flags
	p.flags = (p.flags | b.Set) &^ b.Clear
	defer func() { p.flags = saved }()

	if p.At(b.Close) {
		p.Advance()
		b.done(m)
		return true
	}
	if b.Head != nil {
		b.Head(p)
	}
	list := b.List
	list.End = list.End.With(b.Close)
	list.Parse(p)
	switch {
	case p.At(b.Close):
		p.Advance()
	case p.AtEOF():
		p.unterminated(b.Name, open, b.Close)
	default:
		p.Expect(p.lang.TokenName(b.Close))
		p.Report()
	}
	b.done(m)
	return true
}

func (b *Braced) done(m Marker) {
	if b.Kind == KindNone {
		m.Drop()
		return
	}
	m.Done(b.Kind)
}

// unterminated records an error anchored at the opening token of a
// construct that reached end of input. Only the innermost unclosed
// construct is reported.
func (p *Parser) unterminated(name string, open Token, close TokenKind) {
	if p.suppress > 0 || p.unclosed {
		return
	}
	p.unclosed = true
	p.lastError = p.cursor()
	err := &Error{
		Pos:      open.Span.Start,
		Message:  "unterminated " + name + ": " + p.lang.TokenName(close) + " expected",
		Expected: []string{p.lang.TokenName(close)},
		Got:      "end of file",
	}
	p.events = append(p.events, event{kind: evError, err: err})
}
