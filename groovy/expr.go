package groovy

import "github.com/dhamidi/gparse/parse"

// Binding levels, loosest first. Prefix operators parse their operand at
// levelUnary or levelNot, so "-x ** 2" is the power of (-x).
const (
	levelAssignment = iota
	levelTernary
	levelLor
	levelLand
	levelBor
	levelXor
	levelBand
	levelEquality
	levelRelational
	levelShift
	levelAdditive
	levelMultiplicative
	levelPower
	levelUnary
	levelNot
	levelPostfix
	levelProperty
	levelCall
)

var assignmentKinds = []parse.TokenKind{
	TokenAssign, TokenPlusAssign, TokenMinusAssign, TokenStarAssign,
	TokenSlashAssign, TokenPercentAssign, TokenPowAssign, TokenShlAssign,
	TokenShrAssign, TokenUShrAssign, TokenAndAssign, TokenOrAssign,
	TokenXorAssign, TokenElvisAssign,
}

var literalKinds = []parse.TokenKind{
	TokenIntLiteral, TokenFloatLiteral, TokenStringLiteral,
	TokenTrue, TokenFalse, TokenNull,
}

// propertyNames may follow a dot. Keywords are fine there: "x.class",
// "map.in".
var propertyNames = []parse.TokenKind{
	TokenIdent, TokenStringLiteral, TokenClass, TokenThis, TokenSuper,
	TokenIn, TokenAs, TokenDefault, TokenNew,
}

func (g *grammar) initExpressions() {
	e := g.expr
	e.Atoms = []parse.Rule{
		e.Prefix(levelUnary, KindUnaryExpression, parse.Tok(TokenIncrement, TokenDecrement, TokenMinus, TokenPlus)),
		e.Prefix(levelNot, KindUnaryExpression, parse.Tok(TokenNot, TokenBnot)),
		g.cast,
		g.lazyClosure,
		g.list.Parse,
		g.newExpression,
		g.switchExpression,
		parse.Define(parse.Production{
			Name:  "reference",
			Kind:  KindReferenceExpression,
			First: parse.NewTokenSet(TokenIdent, TokenThis, TokenSuper),
			Body:  []parse.Rule{parse.Tok(TokenIdent, TokenThis, TokenSuper)},
		}),
		parse.Define(parse.Production{
			Name:  "literal",
			Kind:  KindLiteral,
			First: parse.NewTokenSet(literalKinds...),
			Body:  []parse.Rule{parse.Tok(literalKinds...)},
		}),
		parse.Define(parse.Production{
			Name:  "parenthesized expression",
			Kind:  KindParenthesizedExpression,
			First: parse.NewTokenSet(TokenLParen),
			Pin:   1,
			Body:  []parse.Rule{parse.Tok(TokenLParen), parse.With(parse.NewlinesIgnored, true, g.parenTail)},
		}),
	}

	e.Operators = []parse.Operator{
		parse.RightOp(levelAssignment, KindAssignmentExpression, assignmentKinds...),
		parse.TernaryOp(levelTernary, KindTernaryExpression, TokenQuestion, TokenColon),
		parse.RightOp(levelTernary, KindElvisExpression, TokenElvis),
		parse.BinaryOp(levelLor, KindLorExpression, TokenOr),
		parse.BinaryOp(levelLand, KindLandExpression, TokenAnd),
		parse.BinaryOp(levelBor, KindBorExpression, TokenBor),
		parse.BinaryOp(levelXor, KindXorExpression, TokenXor),
		parse.BinaryOp(levelBand, KindBandExpression, TokenBand),
		parse.BinaryOp(levelEquality, KindEqualityExpression, TokenEQ, TokenNE, TokenIdentical, TokenNotIdentical),
		parse.BinaryOp(levelEquality, KindRelationalExpression, TokenCompare),
		parse.BinaryOp(levelEquality, KindRegexFindExpression, TokenRegexFind),
		parse.BinaryOp(levelEquality, KindRegexMatchExpression, TokenRegexMatch),
		{
			Level: levelRelational,
			Kind:  KindRelationalExpression,
			Shape: parse.Binary,
			First: parse.NewTokenSet(TokenLT, TokenLE, TokenGT, TokenGE),
			Op:    parse.Alt(parse.Tok(TokenLT, TokenLE, TokenGE), greater),
		},
		parse.BinaryOp(levelRelational, KindInExpression, TokenIn, TokenNotIn),
		parse.PostfixOp(levelRelational, KindInstanceofExpression, parse.NewTokenSet(TokenInstanceof, TokenNotInstanceof),
			parse.Seq(parse.Tok(TokenInstanceof, TokenNotInstanceof), parse.MaybeNewline, g.typ)),
		parse.PostfixOp(levelRelational, KindAsExpression, parse.NewTokenSet(TokenAs),
			parse.Seq(parse.Tok(TokenAs), parse.MaybeNewline, g.typ)),
		{
			Level: levelShift,
			Kind:  KindShiftExpression,
			Shape: parse.Binary,
			First: parse.NewTokenSet(TokenShl, TokenGT),
			Op:    shift,
		},
		parse.BinaryOp(levelShift, KindRangeExpression, TokenRange, TokenRangeExclusive),
		parse.BinaryOp(levelAdditive, KindAdditiveExpression, TokenPlus, TokenMinus),
		parse.BinaryOp(levelMultiplicative, KindMultiplicativeExpression, TokenStar, TokenSlash, TokenPercent),
		parse.BinaryOp(levelPower, KindPowerExpression, TokenPow),
		parse.PostfixOp(levelPostfix, KindIndexExpression, parse.NewTokenSet(TokenLBracket), g.index.Parse),
		parse.PostfixOp(levelPostfix, KindSafeIndexExpression, parse.NewTokenSet(TokenSafeIndex), g.safeIndex.Parse),
		parse.PostfixOp(levelPostfix, KindUnaryExpression, parse.NewTokenSet(TokenIncrement, TokenDecrement),
			parse.Tok(TokenIncrement, TokenDecrement)),
		{
			Level: levelProperty,
			Kind:  KindReferenceExpression,
			Shape: parse.Postfix,
			First: parse.NewTokenSet(TokenDot, TokenSafeDot, TokenSpreadDot),
			Op: parse.Seq(parse.Tok(TokenDot, TokenSafeDot, TokenSpreadDot), parse.MaybeNewline,
				parse.Tok(propertyNames...)),
			NewlineBefore: true,
		},
		{
			Level: levelProperty,
			Kind:  KindPropertyExpression,
			Shape: parse.Postfix,
			First: parse.NewTokenSet(TokenFieldAccess),
			Op:    parse.Seq(parse.Tok(TokenFieldAccess), parse.MaybeNewline, parse.Tok(TokenIdent)),
			// Chains like "a\n.@b" continue on the next line as well.
			NewlineBefore: true,
		},
		{
			Level:         levelProperty,
			Kind:          KindMethodReferenceExpression,
			Shape:         parse.Postfix,
			First:         parse.NewTokenSet(TokenMethodPointer, TokenColonColon),
			Op:            parse.Seq(parse.Tok(TokenMethodPointer, TokenColonColon), parse.MaybeNewline, parse.Tok(TokenIdent, TokenNew)),
			NewlineBefore: true,
		},
		parse.PostfixOp(levelCall, KindMethodCallExpression, parse.NewTokenSet(TokenLParen, TokenLBrace), g.callTail),
	}
}

// callTail is an argument list followed by closures, or closures alone.
// Closures after an argument list may start on the next line.
func (g *grammar) callTail(p *parse.Parser) bool {
	if p.At(TokenLParen) {
		g.arguments.Parse(p)
		parse.Many(parse.Seq(parse.MaybeNewline, g.lazyClosure))(p)
		return true
	}
	return parse.Many1(g.lazyClosure)(p)
}

func (g *grammar) lazyClosure(p *parse.Parser) bool {
	return g.closureRule(p)
}

// adjacent reports whether the next two tokens touch, as in ">>".
func adjacent(p *parse.Parser) bool {
	return p.Peek(0).Span.End.Offset == p.Peek(1).Span.Start.Offset
}

// greater matches a '>' that does not start a shift.
var greater = parse.Seq(parse.Not(shift), parse.Tok(TokenGT))

// shift matches "<<", or two or three adjacent '>' tokens.
func shift(p *parse.Parser) bool {
	if p.At(TokenShl) {
		p.Advance()
		return true
	}
	if !p.At(TokenGT) || p.PeekKind(1) != TokenGT || !adjacent(p) {
		p.Expect("'>>'")
		return false
	}
	p.Advance()
	if p.PeekKind(1) == TokenGT && adjacent(p) {
		p.Advance()
	}
	p.Advance()
	return true
}

var operandStart = parse.NewTokenSet(append([]parse.TokenKind{
	TokenIdent, TokenThis, TokenSuper, TokenNew, TokenLParen, TokenLBracket,
	TokenNot, TokenBnot,
}, literalKinds...)...)

var signedOperandStart = operandStart.Union(parse.NewTokenSet(TokenMinus, TokenPlus, TokenIncrement, TokenDecrement))

// cast parses "(Type) operand". A parenthesized expression is only read as
// a cast when it holds a primitive or capitalized type and an operand
// follows; signs only count as operand starts after primitive types.
func (g *grammar) cast(p *parse.Parser) bool {
	if !p.At(TokenLParen) {
		return false
	}
	primitive := parse.Seq(parse.Tok(TokenLParen), arrayType(g.primitiveType), parse.Tok(TokenRParen), startsWith(signedOperandStart))
	reference := parse.Seq(parse.Tok(TokenLParen), capitalized, g.typ, parse.Tok(TokenRParen), startsWith(operandStart))
	if !parse.And(parse.Alt(primitive, reference))(p) {
		return false
	}
	m := p.Mark()
	p.Advance()
	g.typ(p)
	p.Advance()
	if !g.expr.Parse(p, levelUnary) {
		p.Report()
	}
	m.Done(KindCastExpression)
	return true
}

func startsWith(set parse.TokenSet) parse.Rule {
	return func(p *parse.Parser) bool {
		return set.Has(p.PeekKind(0))
	}
}
