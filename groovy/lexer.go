package groovy

import (
	"github.com/dhamidi/gparse/parse"
)

// Lexer turns Groovy source into tokens. Whitespace and comments are
// dropped; each run of line breaks becomes a single TokenNL because
// newlines separate statements.
type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		line:   1,
		column: 1,
	}
}

// Tokenize returns every token of input, ending with TokenEOF.
func Tokenize(input []byte, file string) []parse.Token {
	l := NewLexer(input, file)
	var tokens []parse.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == parse.TokenEOF {
			return tokens
		}
	}
}

func (l *Lexer) Position() parse.Position {
	return parse.Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) token(kind parse.TokenKind, start parse.Position) parse.Token {
	end := l.Position()
	return parse.Token{
		Kind:    kind,
		Span:    parse.Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func (l *Lexer) NextToken() parse.Token {
	l.skipBlanks()
	start := l.Position()

	if l.pos >= len(l.input) {
		return parse.Token{Kind: parse.TokenEOF, Span: parse.Span{Start: start, End: start}}
	}

	ch := l.peek()
	switch {
	case ch == '\n' || (ch == '\r' && l.peekN(1) == '\n'):
		return l.scanNewlines(start)
	case isLetter(ch):
		return l.scanIdentOrKeyword(start)
	case isDigit(ch):
		return l.scanNumber(start)
	case ch == '\'' || ch == '"':
		return l.scanString(start, ch)
	}
	return l.scanOperator(start)
}

// skipBlanks skips spaces, tabs and comments, but not line breaks.
func (l *Lexer) skipBlanks() {
	for {
		ch := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\f' || (ch == '\r' && l.peekN(1) != '\n'):
			l.advance()
		case ch == '\\' && l.peekN(1) == '\n':
			l.advanceN(2)
		case ch == '/' && l.peekN(1) == '/':
			for l.peek() != 0 && l.peek() != '\n' {
				l.advance()
			}
		case ch == '/' && l.peekN(1) == '*':
			l.advanceN(2)
			for l.pos < len(l.input) && !(l.peek() == '*' && l.peekN(1) == '/') {
				l.advance()
			}
			l.advanceN(2)
		default:
			return
		}
	}
}

func (l *Lexer) scanNewlines(start parse.Position) parse.Token {
	end := start
	for {
		ch := l.peek()
		if ch == '\n' || (ch == '\r' && l.peekN(1) == '\n') {
			if ch == '\r' {
				l.advance()
			}
			l.advance()
			end = l.Position()
			l.skipBlanks()
			continue
		}
		break
	}
	// Trailing blanks after the last line break belong to the next token.
	return parse.Token{
		Kind:    TokenNL,
		Span:    parse.Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func (l *Lexer) scanIdentOrKeyword(start parse.Position) parse.Token {
	for isLetter(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}
	literal := string(l.input[start.Offset:l.pos])
	return l.token(LookupKeyword(literal), start)
}

func (l *Lexer) scanNumber(start parse.Position) parse.Token {
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') {
		l.advanceN(2)
		for isHexDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
		l.scanIntSuffix()
		return l.token(TokenIntLiteral, start)
	}

	isFloat := false
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekN(1)) {
		isFloat = true
		l.advance()
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		isFloat = true
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	switch l.peek() {
	case 'f', 'F', 'd', 'D':
		isFloat = true
		l.advance()
	case 'g', 'G':
		l.advance()
	default:
		l.scanIntSuffix()
	}
	if isFloat {
		return l.token(TokenFloatLiteral, start)
	}
	return l.token(TokenIntLiteral, start)
}

func (l *Lexer) scanIntSuffix() {
	switch l.peek() {
	case 'l', 'L', 'i', 'I', 'g', 'G':
		l.advance()
	}
}

// scanString handles '...', "..." and their triple-quoted forms. An
// unterminated string runs to the end of the line (or input for triple
// quotes) and is returned as TokenError.
func (l *Lexer) scanString(start parse.Position, quote byte) parse.Token {
	triple := l.peekN(1) == quote && l.peekN(2) == quote
	if triple {
		l.advanceN(3)
	} else {
		l.advance()
	}
	for {
		ch := l.peek()
		switch {
		case l.pos >= len(l.input):
			return l.token(parse.TokenError, start)
		case ch == '\\':
			l.advanceN(2)
		case ch == '\n' && !triple:
			return l.token(parse.TokenError, start)
		case ch == quote && !triple:
			l.advance()
			return l.token(TokenStringLiteral, start)
		case ch == quote && l.peekN(1) == quote && l.peekN(2) == quote:
			l.advanceN(3)
			return l.token(TokenStringLiteral, start)
		default:
			l.advance()
		}
	}
}

type operator struct {
	text string
	kind parse.TokenKind
}

// operators is ordered so that longer spellings come before their prefixes.
// ">>" and ">>>" are not listed: they are read as adjacent '>' tokens so
// that nested type arguments close, and the grammar joins them back into
// shift operators.
var operators = []operator{
	{">>>=", TokenUShrAssign},
	{"!instanceof", TokenNotInstanceof},
	{"!in", TokenNotIn},
	{"===", TokenIdentical},
	{"!==", TokenNotIdentical},
	{"<=>", TokenCompare},
	{"==~", TokenRegexMatch},
	{"..<", TokenRangeExclusive},
	{"**=", TokenPowAssign},
	{"<<=", TokenShlAssign},
	{">>=", TokenShrAssign},
	{"?.", TokenSafeDot},
	{"?[", TokenSafeIndex},
	{"*.", TokenSpreadDot},
	{".&", TokenMethodPointer},
	{".@", TokenFieldAccess},
	{"::", TokenColonColon},
	{"?:", TokenElvis},
	{"?=", TokenElvisAssign},
	{"->", TokenArrow},
	{"+=", TokenPlusAssign},
	{"-=", TokenMinusAssign},
	{"*=", TokenStarAssign},
	{"/=", TokenSlashAssign},
	{"%=", TokenPercentAssign},
	{"&=", TokenAndAssign},
	{"|=", TokenOrAssign},
	{"^=", TokenXorAssign},
	{"||", TokenOr},
	{"&&", TokenAnd},
	{"==", TokenEQ},
	{"!=", TokenNE},
	{"=~", TokenRegexFind},
	{"<=", TokenLE},
	{">=", TokenGE},
	{"<<", TokenShl},
	{"..", TokenRange},
	{"**", TokenPow},
	{"++", TokenIncrement},
	{"--", TokenDecrement},
	{"(", TokenLParen},
	{")", TokenRParen},
	{"[", TokenLBracket},
	{"]", TokenRBracket},
	{"{", TokenLBrace},
	{"}", TokenRBrace},
	{",", TokenComma},
	{";", TokenSemicolon},
	{":", TokenColon},
	{".", TokenDot},
	{"?", TokenQuestion},
	{"@", TokenAt},
	{"=", TokenAssign},
	{"|", TokenBor},
	{"^", TokenXor},
	{"&", TokenBand},
	{"<", TokenLT},
	{">", TokenGT},
	{"+", TokenPlus},
	{"-", TokenMinus},
	{"*", TokenStar},
	{"/", TokenSlash},
	{"%", TokenPercent},
	{"!", TokenNot},
	{"~", TokenBnot},
}

func (l *Lexer) scanOperator(start parse.Position) parse.Token {
	rest := l.input[l.pos:]
	for _, op := range operators {
		if len(rest) < len(op.text) || string(rest[:len(op.text)]) != op.text {
			continue
		}
		// "!in" and "!instanceof" are only operators when not followed by
		// more identifier characters, as in "!inside".
		if op.kind == TokenNotIn || op.kind == TokenNotInstanceof {
			if len(rest) > len(op.text) && (isLetter(rest[len(op.text)]) || isDigit(rest[len(op.text)])) {
				continue
			}
		}
		l.advanceN(len(op.text))
		return l.token(op.kind, start)
	}
	l.advance()
	return l.token(parse.TokenError, start)
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '$' || ch >= 0x80
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
