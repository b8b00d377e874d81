package groovy

import (
	"testing"

	"github.com/dhamidi/gparse/parse"
	"github.com/stretchr/testify/assert"
)

func TestLexer(t *testing.T) {
	tests := []struct {
		input    string
		expected []parse.TokenKind
	}{
		{"", nil},
		{"def x = 1", []parse.TokenKind{TokenDef, TokenIdent, TokenAssign, TokenIntLiteral}},
		{"a\n\n  \nb", []parse.TokenKind{TokenIdent, TokenNL, TokenIdent}},
		{"\n\na", []parse.TokenKind{TokenNL, TokenIdent}},
		{"a // note\nb", []parse.TokenKind{TokenIdent, TokenNL, TokenIdent}},
		{"a /* one\ntwo */ b", []parse.TokenKind{TokenIdent, TokenIdent}},
		{"a \\\n b", []parse.TokenKind{TokenIdent, TokenIdent}},
		{"x >> 2", []parse.TokenKind{TokenIdent, TokenGT, TokenGT, TokenIntLiteral}},
		{"x >>= 2", []parse.TokenKind{TokenIdent, TokenShrAssign, TokenIntLiteral}},
		{"x >>>= 2", []parse.TokenKind{TokenIdent, TokenUShrAssign, TokenIntLiteral}},
		{"a << b", []parse.TokenKind{TokenIdent, TokenShl, TokenIdent}},
		{"a !in b", []parse.TokenKind{TokenIdent, TokenNotIn, TokenIdent}},
		{"a !instanceof B", []parse.TokenKind{TokenIdent, TokenNotInstanceof, TokenIdent}},
		{"!inside", []parse.TokenKind{TokenNot, TokenIdent}},
		{"a?.b*.c.&d.@e", []parse.TokenKind{
			TokenIdent, TokenSafeDot, TokenIdent, TokenSpreadDot, TokenIdent,
			TokenMethodPointer, TokenIdent, TokenFieldAccess, TokenIdent,
		}},
		{"a?[0]", []parse.TokenKind{TokenIdent, TokenSafeIndex, TokenIntLiteral, TokenRBracket}},
		{"a ?: b", []parse.TokenKind{TokenIdent, TokenElvis, TokenIdent}},
		{"a ?= b", []parse.TokenKind{TokenIdent, TokenElvisAssign, TokenIdent}},
		{"a === b !== c <=> d", []parse.TokenKind{
			TokenIdent, TokenIdentical, TokenIdent, TokenNotIdentical, TokenIdent, TokenCompare, TokenIdent,
		}},
		{"a =~ b ==~ c", []parse.TokenKind{TokenIdent, TokenRegexFind, TokenIdent, TokenRegexMatch, TokenIdent}},
		{"1..<2", []parse.TokenKind{TokenIntLiteral, TokenRangeExclusive, TokenIntLiteral}},
		{"1..2", []parse.TokenKind{TokenIntLiteral, TokenRange, TokenIntLiteral}},
		{"1.5 2L 0xFF 3e10 1.0f 10G", []parse.TokenKind{
			TokenFloatLiteral, TokenIntLiteral, TokenIntLiteral, TokenFloatLiteral, TokenFloatLiteral, TokenIntLiteral,
		}},
		{`'a' "b" '''c` + "\n" + `d'''`, []parse.TokenKind{TokenStringLiteral, TokenStringLiteral, TokenStringLiteral}},
		{`"say \"hi\""`, []parse.TokenKind{TokenStringLiteral}},
		{"'open\nx", []parse.TokenKind{parse.TokenError, TokenNL, TokenIdent}},
		{"a # b", []parse.TokenKind{TokenIdent, parse.TokenError, TokenIdent}},
		{"{ x -> x }", []parse.TokenKind{TokenLBrace, TokenIdent, TokenArrow, TokenIdent, TokenRBrace}},
		{"String::valueOf", []parse.TokenKind{TokenIdent, TokenColonColon, TokenIdent}},
		{"@Override", []parse.TokenKind{TokenAt, TokenIdent}},
		{"static final int", []parse.TokenKind{TokenStatic, TokenFinal, TokenInt}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := Tokenize([]byte(tt.input), "test.groovy")
			var got []parse.TokenKind
			for _, tok := range tokens {
				if tok.Kind != parse.TokenEOF {
					got = append(got, tok.Kind)
				}
			}
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, parse.TokenEOF, tokens[len(tokens)-1].Kind)
		})
	}
}

func TestLexerPositions(t *testing.T) {
	tokens := Tokenize([]byte("a\n  bb"), "test.groovy")
	assert.Len(t, tokens, 4)

	b := tokens[2]
	assert.Equal(t, "bb", b.Literal)
	assert.Equal(t, parse.Position{File: "test.groovy", Offset: 4, Line: 2, Column: 3}, b.Span.Start)
	assert.Equal(t, parse.Position{File: "test.groovy", Offset: 6, Line: 2, Column: 5}, b.Span.End)

	// A newline token ends at the last line break, not at the next token.
	nl := tokens[1]
	assert.Equal(t, "\n", nl.Literal)
	assert.Equal(t, 2, nl.Span.End.Line)
	assert.Equal(t, 1, nl.Span.End.Column)
}
