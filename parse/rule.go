package parse

// Rule attempts to recognise input at the cursor. A rule that returns false
// must leave the cursor and the tree as it found them.
type Rule func(p *Parser) bool

// Tok matches one token of any of the given kinds.
func Tok(kinds ...TokenKind) Rule {
	return func(p *Parser) bool {
		k := p.PeekKind(0)
		for _, want := range kinds {
			if k == want {
				p.Advance()
				return true
			}
		}
		for _, want := range kinds {
			p.Expect(p.lang.TokenName(want))
		}
		return false
	}
}

// Seq matches every step in order or nothing at all.
func Seq(steps ...Rule) Rule {
	return func(p *Parser) bool {
		m := p.Mark()
		for _, step := range steps {
			if !step(p) {
				m.Rollback()
				return false
			}
		}
		m.Drop()
		return true
	}
}

// Alt tries each alternative in order from the same position and commits
// to the first that succeeds.
func Alt(alts ...Rule) Rule {
	return func(p *Parser) bool {
		for _, alt := range alts {
			m := p.Mark()
			if alt(p) {
				m.Drop()
				return true
			}
			m.Rollback()
		}
		return false
	}
}

func Opt(r Rule) Rule {
	return func(p *Parser) bool {
		r(p)
		return true
	}
}

// Many matches r zero or more times. The loop stops as soon as an
// iteration succeeds without consuming input.
func Many(r Rule) Rule {
	return func(p *Parser) bool {
		for {
			start := p.pos
			if !r(p) || p.pos == start {
				return true
			}
			p.ClearError()
		}
	}
}

func Many1(r Rule) Rule {
	return func(p *Parser) bool {
		start := p.pos
		if !r(p) {
			return false
		}
		if p.pos == start {
			return true
		}
		return Many(r)(p)
	}
}

// And succeeds when r would match, without consuming anything.
func And(r Rule) Rule {
	return func(p *Parser) bool {
		return p.lookahead(r)
	}
}

// Not succeeds when r would not match, without consuming anything.
func Not(r Rule) Rule {
	return func(p *Parser) bool {
		return !p.lookahead(r)
	}
}

func (p *Parser) lookahead(r Rule) bool {
	m := p.Mark()
	p.suppress++
	ok := r(p)
	p.suppress--
	m.Rollback()
	return ok
}

// Ref defers to the rule stored in *r at parse time, which lets mutually
// recursive rules be declared before they are defined.
func Ref(r *Rule) Rule {
	return func(p *Parser) bool {
		return (*r)(p)
	}
}

func Empty(*Parser) bool { return true }

// MaybeNewline consumes pending newline tokens, if any.
func MaybeNewline(p *Parser) bool {
	p.SkipNewlines()
	return true
}

// Production is a named, guarded section of a grammar.
//
// The body is a sequence. When a step fails before Pin steps have
// matched, the production rolls back and fails. When a step fails after
// that, the partial node is kept, one error is recorded at the cursor and
// the production succeeds. Pin 0 never commits.
type Production struct {
	Name string
	// Display replaces the variants recorded at the production's start
	// when it fails without progress, e.g. "<expression>".
	Display string
	// Kind is the node kind produced. KindNone makes the production
	// transparent: its children go to the enclosing node.
	Kind NodeKind
	// Collapse elides the node when it would be empty or wrap one node.
	Collapse bool
	Pin      int
	// First, when not empty, lets the production fail without a
	// checkpoint when the next token cannot start it.
	First TokenSet
	Body  []Rule
}

// Rule returns a Rule running the production.
func (d *Production) Rule() Rule {
	return func(p *Parser) bool {
		return p.production(d)
	}
}

// Define is shorthand for (&Production{...}).Rule().
func Define(d Production) Rule {
	return d.Rule()
}

func (p *Parser) production(d *Production) bool {
	if !d.First.Empty() && !d.First.Has(p.PeekKind(0)) {
		if d.Display != "" {
			p.Expect(d.Display)
		} else {
			for _, k := range d.First.Kinds() {
				p.Expect(p.lang.TokenName(k))
			}
		}
		return false
	}
	return p.guarded(d.Name, func() bool {
		start := p.pos
		vmark := p.variantMark()
		m := p.Mark()
		for i, step := range d.Body {
			if step(p) {
				continue
			}
			if d.Pin > 0 && i >= d.Pin {
				p.Report()
				d.complete(m)
				return true
			}
			m.Rollback()
			p.replaceVariants(start, vmark, d.Display)
			return false
		}
		d.complete(m)
		return true
	})
}

func (d *Production) complete(m Marker) {
	switch {
	case d.Kind == KindNone:
		m.Drop()
	case d.Collapse:
		m.Collapse(d.Kind)
	default:
		m.Done(d.Kind)
	}
}
