package parse

import "strings"

// calc is a small newline-separated expression language used to exercise
// the engine without a real grammar.

const (
	tNL TokenKind = FirstTokenKind + iota
	tNum
	tIdent
	tLet
	tPlus
	tMinus
	tStar
	tCaret
	tAssign
	tLParen
	tRParen
	tLBrace
	tRBrace
	tComma
	tSemi
)

const (
	kFile NodeKind = FirstNodeKind + iota
	kLet
	kBlock
	kNum
	kRef
	kParen
	kNeg
	kAdd
	kMul
	kPow
	kAssign
	kCall
	kArgs
)

var calcLang = &Language{
	Name: "calc",
	Tokens: map[TokenKind]string{
		tNL:     "new line",
		tNum:    "number",
		tIdent:  "identifier",
		tLet:    "'let'",
		tPlus:   "'+'",
		tMinus:  "'-'",
		tStar:   "'*'",
		tCaret:  "'^'",
		tAssign: "'='",
		tLParen: "'('",
		tRParen: "')'",
		tLBrace: "'{'",
		tRBrace: "'}'",
		tComma:  "','",
		tSemi:   "';'",
	},
	Nodes: map[NodeKind]string{
		kFile:   "File",
		kLet:    "Let",
		kBlock:  "Block",
		kNum:    "Num",
		kRef:    "Ref",
		kParen:  "Paren",
		kNeg:    "Neg",
		kAdd:    "Add",
		kMul:    "Mul",
		kPow:    "Pow",
		kAssign: "Assign",
		kCall:   "Call",
		kArgs:   "Args",
	},
	Newline: tNL,
	Root:    kFile,
}

var calcPunct = map[byte]TokenKind{
	'+': tPlus, '-': tMinus, '*': tStar, '^': tCaret, '=': tAssign,
	'(': tLParen, ')': tRParen, '{': tLBrace, '}': tRBrace, ',': tComma, ';': tSemi,
}

func lexCalc(src string) []Token {
	var toks []Token
	pos := Position{Line: 1, Column: 1}
	advance := func() {
		if src[pos.Offset] == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
		pos.Offset++
	}
	run := func(ok func(byte) bool) {
		for pos.Offset < len(src) && ok(src[pos.Offset]) {
			advance()
		}
	}
	for pos.Offset < len(src) {
		start := pos
		c := src[pos.Offset]
		var kind TokenKind
		switch {
		case c == ' ' || c == '\t':
			advance()
			continue
		case c == '\n':
			run(func(b byte) bool { return b == '\n' })
			kind = tNL
		case c >= '0' && c <= '9':
			run(func(b byte) bool { return b >= '0' && b <= '9' })
			kind = tNum
		case c >= 'a' && c <= 'z':
			run(func(b byte) bool { return b >= 'a' && b <= 'z' })
			kind = tIdent
			if src[start.Offset:pos.Offset] == "let" {
				kind = tLet
			}
		default:
			advance()
			k, ok := calcPunct[c]
			if !ok {
				k = TokenError
			}
			kind = k
		}
		toks = append(toks, Token{Kind: kind, Span: Span{Start: start, End: pos}, Literal: src[start.Offset:pos.Offset]})
	}
	return append(toks, Token{Kind: TokenEOF, Span: Span{Start: pos, End: pos}})
}

type calc struct {
	expr  *Expr
	block *Braced
	stmt  Rule
	stmts List
}

func newCalc() *calc {
	c := &calc{expr: &Expr{Name: "expression", Display: "<expression>"}}
	e := c.expr
	args := &Braced{
		Name:  "argument list",
		Kind:  kArgs,
		Open:  tLParen,
		Close: tRParen,
		Set:   NewlinesIgnored,
		List:  List{Name: "<expression>", Item: e.Rule(), Sep: NewTokenSet(tComma)},
	}
	e.Atoms = []Rule{
		e.Prefix(4, kNeg, Tok(tMinus)),
		Define(Production{Name: "number", Kind: kNum, First: NewTokenSet(tNum), Body: []Rule{Tok(tNum)}}),
		Define(Production{Name: "reference", Kind: kRef, First: NewTokenSet(tIdent), Body: []Rule{Tok(tIdent)}}),
		Define(Production{
			Name:  "parenthesized",
			Kind:  kParen,
			First: NewTokenSet(tLParen),
			Pin:   1,
			Body:  []Rule{Tok(tLParen), With(NewlinesIgnored, true, e.Rule()), With(NewlinesIgnored, true, Tok(tRParen))},
		}),
	}
	e.Operators = []Operator{
		RightOp(0, kAssign, tAssign),
		BinaryOp(1, kAdd, tPlus, tMinus),
		BinaryOp(2, kMul, tStar),
		RightOp(3, kPow, tCaret),
		PostfixOp(5, kCall, NewTokenSet(tLParen), args.Parse),
	}
	c.block = &Braced{
		Name:  "block",
		Kind:  kBlock,
		Open:  tLBrace,
		Close: tRBrace,
		Clear: NewlinesIgnored,
		List:  c.statements(),
	}
	let := Define(Production{
		Name:  "let statement",
		Kind:  kLet,
		First: NewTokenSet(tLet),
		Pin:   1,
		Body:  []Rule{Tok(tLet), Tok(tIdent), Tok(tAssign), e.Rule()},
	})
	c.stmt = Alt(Lazy(kBlock, tLBrace, tRBrace, c.block.Parse), let, e.Rule())
	c.stmts = c.statements()
	return c
}

func (c *calc) statements() List {
	return List{
		Name:  "<statement>",
		Item:  func(p *Parser) bool { return c.stmt(p) },
		Sep:   NewTokenSet(tNL, tSemi),
		Sync:  NewTokenSet(tLet),
		Loose: true,
	}
}

func parseCalc(src string, opts ...Option) *Tree {
	return Parse(calcLang, lexCalc(src), newCalc().stmts.Rule(), opts...)
}

func shapeOf(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}
