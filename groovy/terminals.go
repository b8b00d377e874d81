package groovy

import (
	"fmt"
	"sort"
	"unicode"

	"github.com/dhamidi/gparse/parse"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/exp/ebnf"
)

// Terminals returns the quoted tokens used by the syntactic productions of
// g, sorted. Productions with a lower-case name are lexical and skipped.
func Terminals(g ebnf.Grammar) []string {
	seen := make(map[string]bool)
	var walk func(ebnf.Expression)
	walk = func(x ebnf.Expression) {
		switch x := x.(type) {
		case ebnf.Alternative:
			for _, e := range x {
				walk(e)
			}
		case ebnf.Sequence:
			for _, e := range x {
				walk(e)
			}
		case *ebnf.Group:
			walk(x.Body)
		case *ebnf.Option:
			walk(x.Body)
		case *ebnf.Repetition:
			walk(x.Body)
		case *ebnf.Token:
			seen[x.String] = true
		}
	}
	for name, prod := range g {
		if name == "" || !unicode.IsUpper(rune(name[0])) {
			continue
		}
		walk(prod.Expr)
	}
	terminals := make([]string, 0, len(seen))
	for t := range seen {
		terminals = append(terminals, t)
	}
	sort.Strings(terminals)
	return terminals
}

// CheckTerminals reports every terminal of g that the lexer does not read
// back as exactly one token with the same text.
func CheckTerminals(g ebnf.Grammar) error {
	var errs *multierror.Error
	for _, term := range Terminals(g) {
		tokens := Tokenize([]byte(term), "")
		tokens = tokens[:len(tokens)-1]
		if len(tokens) != 1 || tokens[0].Kind == parse.TokenError || tokens[0].Literal != term {
			errs = multierror.Append(errs, fmt.Errorf("terminal %q lexes as %s", term, describeTokens(tokens)))
		}
	}
	return errs.ErrorOrNil()
}

func describeTokens(tokens []parse.Token) string {
	if len(tokens) == 0 {
		return "nothing"
	}
	s := ""
	for i, tok := range tokens {
		if i > 0 {
			s += " "
		}
		s += Lang.TokenName(tok.Kind)
	}
	return s
}
