// Package groovy is a Groovy-subset grammar built on the parse engine: a
// lexer, token and node kinds, the statement grammar and the expression
// operator table.
package groovy

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/dhamidi/gparse/parse"
	"golang.org/x/exp/ebnf"
)

//go:embed grammar.ebnf
var grammarSource string

// ParseFile parses a whole Groovy file. The tree always spans all of src.
func ParseFile(name string, src []byte, opts ...parse.Option) *parse.Tree {
	tokens := Tokenize(src, name)
	return parse.Parse(Lang, tokens, rules.file.Rule(), append([]parse.Option{parse.WithFile(name)}, opts...)...)
}

// ParseExpression parses src as a single expression. The File root holds
// the expression node, followed by an error node for any trailing input.
func ParseExpression(src string, opts ...parse.Option) *parse.Tree {
	tokens := Tokenize([]byte(src), "")
	root := func(p *parse.Parser) bool {
		p.SkipNewlines()
		if !rules.expression(p) {
			p.Report()
		}
		return true
	}
	return parse.Parse(Lang, tokens, root, opts...)
}

// Grammar returns the reference grammar of the accepted language, checked
// to be complete and reachable from File.
func Grammar() (ebnf.Grammar, error) {
	g, err := ebnf.Parse("grammar.ebnf", strings.NewReader(grammarSource))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if err := ebnf.Verify(g, "File"); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return g, nil
}

// GrammarSource returns the reference grammar text.
func GrammarSource() string {
	return grammarSource
}
