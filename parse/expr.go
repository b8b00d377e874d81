package parse

type Shape int

const (
	// Binary operators are left-associative: the right operand is parsed
	// at the operator's own level.
	Binary Shape = iota
	// BinaryRight operators are right-associative.
	BinaryRight
	// Postfix operators have no right operand; Op consumes the whole tail.
	Postfix
	// Ternary operators parse a middle operand at the lowest level, then
	// Tail, then a right operand one level below their own.
	Ternary
)

type Operator struct {
	Level int
	Kind  NodeKind
	Shape Shape
	// First is checked before Op runs, so operators that cannot start here
	// cost nothing and record no variants.
	First TokenSet
	Op    Rule
	Tail  Rule
	// NewlineBefore lets the operator appear at the start of the next line.
	NewlineBefore bool
}

func BinaryOp(level int, kind NodeKind, kinds ...TokenKind) Operator {
	return Operator{Level: level, Kind: kind, Shape: Binary, First: NewTokenSet(kinds...), Op: Tok(kinds...)}
}

func RightOp(level int, kind NodeKind, kinds ...TokenKind) Operator {
	return Operator{Level: level, Kind: kind, Shape: BinaryRight, First: NewTokenSet(kinds...), Op: Tok(kinds...)}
}

func PostfixOp(level int, kind NodeKind, first TokenSet, op Rule) Operator {
	return Operator{Level: level, Kind: kind, Shape: Postfix, First: first, Op: op}
}

func TernaryOp(level int, kind NodeKind, op, sep TokenKind) Operator {
	return Operator{Level: level, Kind: kind, Shape: Ternary, First: NewTokenSet(op), Op: Tok(op), Tail: Tok(sep)}
}

// Expr is a precedence-climbing expression parser over a flat operator
// table. Level 0 binds loosest. An operator is only taken when the level
// passed to Parse is below the operator's level.
type Expr struct {
	Name    string
	Display string
	// Atoms are tried in order to parse the leftmost operand.
	Atoms     []Rule
	Operators []Operator
}

// Rule parses a full expression.
func (e *Expr) Rule() Rule {
	return e.At(-1)
}

// At returns a rule that parses an expression binding tighter than level g.
func (e *Expr) At(g int) Rule {
	return func(p *Parser) bool {
		return e.Parse(p, g)
	}
}

func (e *Expr) Parse(p *Parser, g int) bool {
	return p.guarded(e.Name, func() bool {
		return e.parse(p, g)
	})
}

func (e *Expr) parse(p *Parser, g int) bool {
	start := p.pos
	vmark := p.variantMark()
	m := p.Mark()
	if !e.atom(p) {
		m.Rollback()
		p.replaceVariants(start, vmark, e.Display)
		return false
	}
	for {
		op := e.operator(p, g)
		if op == nil {
			break
		}
		ok := true
		switch op.Shape {
		case Binary:
			p.SkipNewlines()
			ok = e.Parse(p, op.Level)
		case BinaryRight:
			p.SkipNewlines()
			ok = e.Parse(p, op.Level-1)
		case Ternary:
			p.SkipNewlines()
			ok = e.Parse(p, -1)
			if ok {
				p.SkipNewlines()
				ok = op.Tail(p)
			}
			if ok {
				p.SkipNewlines()
				ok = e.Parse(p, op.Level-1)
			}
		}
		if !ok {
			p.Report()
		}
		c := m.Done(op.Kind)
		m = c.Precede()
		if !ok {
			break
		}
	}
	m.Drop()
	return true
}

func (e *Expr) atom(p *Parser) bool {
	for _, atom := range e.Atoms {
		m := p.Mark()
		if atom(p) {
			m.Drop()
			return true
		}
		m.Rollback()
	}
	return false
}

// operator consumes the first operator allowed at level g that matches at
// the cursor and returns it, or returns nil.
func (e *Expr) operator(p *Parser, g int) *Operator {
	for i := range e.Operators {
		op := &e.Operators[i]
		if g >= op.Level {
			continue
		}
		newline := false
		if !op.First.Empty() && !op.First.Has(p.PeekKind(0)) {
			if !op.NewlineBefore || !op.First.Has(p.peekPastNewlines().Kind) {
				continue
			}
			newline = true
		}
		m := p.Mark()
		if newline {
			p.SkipNewlines()
		}
		if op.Op(p) {
			m.Drop()
			return op
		}
		m.Rollback()
	}
	return nil
}

// Prefix returns an atom that matches op and then an operand at level,
// wrapped in a node of kind. Once op has matched, a missing operand is
// reported and the node is kept.
func (e *Expr) Prefix(level int, kind NodeKind, op Rule) Rule {
	return func(p *Parser) bool {
		m := p.Mark()
		if !op(p) {
			m.Rollback()
			return false
		}
		p.SkipNewlines()
		if !e.Parse(p, level) {
			p.Report()
		}
		m.Done(kind)
		return true
	}
}
