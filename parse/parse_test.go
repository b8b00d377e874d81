package parse

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/commonlog"
	"pgregory.net/rapid"
)

func TestPrecedence(t *testing.T) {
	tests := []struct {
		input string
		shape string
	}{
		{"1 + 2 * 3", shapeOf("File", "  Add", "    Num", "    Mul", "      Num", "      Num")},
		{"1 - 2 - 3", shapeOf("File", "  Add", "    Add", "      Num", "      Num", "    Num")},
		{"2 ^ 3 ^ 4", shapeOf("File", "  Pow", "    Num", "    Pow", "      Num", "      Num")},
		{"-2 ^ 2", shapeOf("File", "  Pow", "    Neg", "      Num", "    Num")},
		{"a = b = 1", shapeOf("File", "  Assign", "    Ref", "    Assign", "      Ref", "      Num")},
		{"(1 + 2) * 3", shapeOf("File", "  Mul", "    Paren", "      Add", "        Num", "        Num", "    Num")},
		{"f(1, 2 + 3)", shapeOf("File", "  Call", "    Ref", "    Args", "      Num", "      Add", "        Num", "        Num")},
		{"f(1)(2)", shapeOf("File", "  Call", "    Call", "      Ref", "      Args", "        Num", "    Args", "      Num")},
		{"1 +\n2", shapeOf("File", "  Add", "    Num", "    Num")},
		{"f(1,\n2)", shapeOf("File", "  Call", "    Ref", "    Args", "      Num", "      Num")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tree := parseCalc(tt.input)
			require.Empty(t, tree.Errors)
			if diff := cmp.Diff(tt.shape, tree.Root.Shape()); diff != "" {
				t.Errorf("shape mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStatements(t *testing.T) {
	tree := parseCalc("let x = 1\nlet y = x * 2; y")
	require.Empty(t, tree.Errors)
	want := shapeOf("File", "  Let", "    Num", "  Let", "    Mul", "      Ref", "      Num", "  Ref")
	assert.Equal(t, want, tree.Root.Shape())
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		message  string
		expected []string
		line     int
		column   int
	}{
		{
			name:     "pinned production",
			input:    "let = 1",
			message:  "identifier expected, got '='",
			expected: []string{"identifier"},
			line:     1,
			column:   5,
		},
		{
			name:     "missing operand",
			input:    "let x = ",
			message:  "<expression> expected, got end of file",
			expected: []string{"<expression>"},
			line:     1,
			column:   9,
		},
		{
			name:     "missing right operand",
			input:    "1 + (2 * )",
			message:  "<expression> expected, got ')'",
			expected: []string{"<expression>"},
			line:     1,
			column:   10,
		},
		{
			name:     "missing separator",
			input:    "f(1 2)",
			message:  "')' or ',' expected, got '2'",
			expected: []string{"')'", "','"},
			line:     1,
			column:   5,
		},
		{
			name:     "missing close",
			input:    "(1",
			message:  "')' expected, got end of file",
			expected: []string{"')'"},
			line:     1,
			column:   3,
		},
		{
			name:     "trailing input",
			input:    "1 )",
			message:  "';' or new line expected, got ')'",
			expected: []string{"';'", "new line"},
			line:     1,
			column:   3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parseCalc(tt.input)
			require.Len(t, tree.Errors, 1)
			err := tree.Errors[0]
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.expected, err.Expected)
			assert.Equal(t, tt.line, err.Pos.Line)
			assert.Equal(t, tt.column, err.Pos.Column)
		})
	}
}

func TestPinKeepsPartialNode(t *testing.T) {
	tree := parseCalc("let = 1")
	want := shapeOf("File", "  Let", "    Error", "  Error")
	assert.Equal(t, want, tree.Root.Shape())
}

func TestRecoveryIsContained(t *testing.T) {
	tree := parseCalc("let a = 1\nlet b = )\nlet c = 3")
	require.Len(t, tree.Errors, 1)
	assert.Equal(t, "<expression> expected, got ')'", tree.Errors[0].Message)
	want := shapeOf(
		"File",
		"  Let",
		"    Num",
		"  Let",
		"    Error",
		"  Error",
		"  Let",
		"    Num",
	)
	assert.Equal(t, want, tree.Root.Shape())
}

func TestConcatenationKeepsFragments(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"let a = 1", "a + 2"},
		{"f(1, 2)", "{ let b = 2 }"},
		{"-2 ^ 2", "(1 + 2) * 3"},
		{"let = 1", "let c = 3"},
		{"let b = )", "f(a)"},
	}
	nodeShapes := func(tree *Tree) []string {
		var shapes []string
		for _, n := range tree.Root.Nodes() {
			shapes = append(shapes, n.Shape())
		}
		return shapes
	}
	for _, tt := range tests {
		for _, sep := range []string{"\n", ";"} {
			t.Run(tt.a+sep+tt.b, func(t *testing.T) {
				a, b := parseCalc(tt.a), parseCalc(tt.b)
				both := parseCalc(tt.a + sep + tt.b)

				want := append(nodeShapes(a), nodeShapes(b)...)
				if diff := cmp.Diff(want, nodeShapes(both)); diff != "" {
					t.Errorf("fragments changed shape when joined (-separate +joined):\n%s", diff)
				}
				assert.Len(t, both.Errors, len(a.Errors)+len(b.Errors))
			})
		}
	}
}

func TestUnterminated(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
		column  int
	}{
		{"argument list", "let a = f(1, 2", "unterminated argument list: ')' expected", 10},
		{"innermost only", "{ let a = f(1", "unterminated argument list: ')' expected", 12},
		{"block", "{ let a = 1", "unterminated block: '}' expected", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parseCalc(tt.input)
			require.Len(t, tree.Errors, 1)
			assert.Equal(t, tt.message, tree.Errors[0].Message)
			assert.Equal(t, tt.column, tree.Errors[0].Pos.Column)
		})
	}
}

func TestLeftRecursionTerminates(t *testing.T) {
	var sum Rule
	sum = Define(Production{
		Name: "sum",
		Kind: kAdd,
		Body: []Rule{Alt(Seq(Ref(&sum), Tok(tPlus), Tok(tNum)), Tok(tNum))},
	})
	tree := Parse(calcLang, lexCalc("1"), sum)
	require.Empty(t, tree.Errors)
	assert.Equal(t, shapeOf("File", "  Add"), tree.Root.Shape())
	assert.Equal(t, 1, tree.Stats.GuardRejections)
}

func TestZeroWidthRecursionTerminates(t *testing.T) {
	var loop Rule
	loop = Define(Production{Name: "loop", Body: []Rule{Opt(Ref(&loop))}})
	tree := Parse(calcLang, lexCalc(""), loop)
	require.Empty(t, tree.Errors)
	assert.Positive(t, tree.Stats.GuardRejections)
}

func TestMaxDepth(t *testing.T) {
	src := strings.Repeat("(", 50) + "1" + strings.Repeat(")", 50)
	tree := parseCalc(src, WithMaxDepth(20))

	var depthErrors int
	for _, err := range tree.Errors {
		if err.Message == "maximum nesting depth exceeded" {
			depthErrors++
		}
	}
	assert.Equal(t, 1, depthErrors)
	assert.Positive(t, tree.Stats.DepthLimitHits)
	assert.LessOrEqual(t, tree.Stats.DeepestNesting, 20)
	assert.Equal(t, len(src), tree.Root.Span.End.Offset)
}

func TestCollapse(t *testing.T) {
	num := Define(Production{Name: "number", Kind: kNum, Body: []Rule{Tok(tNum)}})
	group := Define(Production{Name: "group", Kind: kParen, Collapse: true, Body: []Rule{Many1(num)}})

	tests := []struct {
		input string
		shape string
	}{
		{"1", shapeOf("File", "  Num")},
		{"1 2", shapeOf("File", "  Paren", "    Num", "    Num")},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tree := Parse(calcLang, lexCalc(tt.input), group)
			require.Empty(t, tree.Errors)
			assert.Equal(t, tt.shape, tree.Root.Shape())
		})
	}
}

func TestFlags(t *testing.T) {
	const custom = FirstUserFlag
	p := newParser(calcLang, lexCalc("1"))

	assert.False(t, If(custom, Empty)(p))
	assert.True(t, Unless(custom, Empty)(p))

	var inside Flag
	With(custom, true, func(p *Parser) bool {
		inside = p.Flags()
		return true
	})(p)
	assert.True(t, inside&custom != 0)
	assert.False(t, p.Is(custom), "flag must be restored after With")
}

func TestLookahead(t *testing.T) {
	p := newParser(calcLang, lexCalc("1 +"))

	assert.True(t, And(Tok(tNum))(p))
	assert.False(t, Not(Tok(tNum))(p))
	assert.True(t, Not(Seq(Tok(tNum), Tok(tStar)))(p))
	assert.False(t, And(Tok(tIdent))(p))

	assert.Equal(t, 0, p.Pos(), "lookahead must not consume")
	assert.Empty(t, p.variants, "lookahead must not record variants")
	assert.Equal(t, -1, p.farthest)
}

func TestRecover(t *testing.T) {
	let := Define(Production{
		Name:  "let statement",
		Kind:  kLet,
		First: NewTokenSet(tLet),
		Pin:   1,
		Body: []Rule{
			Tok(tLet),
			Alt(Tok(tIdent), Recover(NewTokenSet(tAssign))),
			Tok(tAssign),
			Tok(tNum),
		},
	})

	tests := []struct {
		input   string
		message string
		column  int
		shape   string
	}{
		{"let 1 2 = 3", "identifier expected, got '1'", 5, shapeOf("File", "  Let", "    Error")},
		{"let = 3", "identifier expected, got '='", 5, shapeOf("File", "  Let", "    Error")},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tree := Parse(calcLang, lexCalc(tt.input), let)
			require.Len(t, tree.Errors, 1)
			assert.Equal(t, tt.message, tree.Errors[0].Message)
			assert.Equal(t, tt.column, tree.Errors[0].Pos.Column)
			assert.Equal(t, tt.shape, tree.Root.Shape())
		})
	}
}

func TestErrorf(t *testing.T) {
	rule := func(p *Parser) bool {
		p.Advance()
		assert.True(t, p.Errorf("%s is reserved", p.Peek(0).Literal))
		assert.False(t, p.Errorf("reported twice"), "one error per position")
		p.Advance()
		return true
	}
	tree := Parse(calcLang, lexCalc("x y"), rule)
	require.Len(t, tree.Errors, 1)
	assert.Equal(t, "y is reserved", tree.Errors[0].Message)
	assert.Empty(t, tree.Errors[0].Expected)
	assert.Equal(t, 3, tree.Errors[0].Pos.Column)
}

func TestWithLogger(t *testing.T) {
	assert.Equal(t, log, newParser(calcLang, nil).log)

	logger := commonlog.GetLogger("gparse.parse.test")
	assert.Equal(t, logger, newParser(calcLang, nil, WithLogger(logger)).log)
	assert.Equal(t, log, newParser(calcLang, nil, WithLogger(nil)).log)
}

func TestNewlinesIgnored(t *testing.T) {
	p := newParser(calcLang, lexCalc("\n\n1"))
	assert.Equal(t, tNL, p.PeekKind(0))

	With(NewlinesIgnored, true, func(p *Parser) bool {
		assert.Equal(t, tNum, p.PeekKind(0))
		tok := p.Advance()
		assert.Equal(t, "1", tok.Literal)
		return true
	})(p)
	assert.True(t, p.AtEOF())
}

func TestLazyBlocks(t *testing.T) {
	src := "let a = 1\n{ let b = 2\nlet c = }\n"
	tree := parseCalc(src, WithLazyBlocks())
	require.Empty(t, tree.Errors)

	block := tree.Root.FirstChildOfKind(kBlock)
	require.NotNil(t, block)
	require.True(t, block.IsLazy())

	errs := tree.Expand(block)
	require.Len(t, errs, 1)
	assert.Equal(t, "<expression> expected, got '}'", errs[0].Message)
	assert.Equal(t, 3, errs[0].Pos.Line)
	assert.Len(t, tree.Errors, 1)
	assert.False(t, block.IsLazy())
	assert.Equal(t, shapeOf("Block", "  Let", "    Num", "  Let", "    Error"), block.Shape())
}

// Only valid input is compared: on malformed input a lazy region still ends
// at its matching brace, where eager recovery may run past it.
func TestLazyBlocksMatchEagerParse(t *testing.T) {
	src := "{ let a = 1\n{ f(a) }\n}\nlet b = 2"
	eager := parseCalc(src)
	lazy := parseCalc(src, WithLazyBlocks())
	lazy.ExpandAll()
	require.Empty(t, eager.Errors)
	assert.Equal(t, eager.Root.Shape(), lazy.Root.Shape())
	assert.Equal(t, eager.Root.Tokens(), lazy.Root.Tokens())
}

func TestLazyRegionEndsAtMatchingBrace(t *testing.T) {
	tree := parseCalc("{ let a = (1 }\nlet b = 2", WithLazyBlocks())
	block := tree.Root.FirstChildOfKind(kBlock)
	require.NotNil(t, block)
	require.True(t, block.IsLazy())
	assert.Equal(t, 14, block.Span.End.Offset)

	tree.ExpandAll()
	require.Len(t, tree.Errors, 1)
	assert.Equal(t, "')' expected, got '}'", tree.Errors[0].Message)
	assert.Equal(t, 1, tree.Errors[0].Pos.Line)
	assert.Len(t, tree.Root.ChildrenOfKind(kBlock), 1)
	assert.Len(t, tree.Root.ChildrenOfKind(kLet), 1)
}

func TestBlockCache(t *testing.T) {
	cache, err := NewBlockCache(16)
	require.NoError(t, err)

	first := parseCalc("{ let a = 1 }", WithLazyBlocks(), WithBlockCache(cache))
	first.ExpandAll()
	assert.Equal(t, 1, cache.Len())

	second := parseCalc("let x = 0\n{ let a = 1 }", WithLazyBlocks(), WithBlockCache(cache))
	second.ExpandAll()
	assert.Equal(t, 1, cache.Len())

	block := second.Root.FirstChildOfKind(kBlock)
	require.NotNil(t, block)
	let := block.FirstChildOfKind(kLet)
	require.NotNil(t, let)
	assert.Equal(t, Position{Offset: 12, Line: 2, Column: 3}, let.Span.Start)

	// The first tree's nodes were not moved along.
	firstLet := first.Root.FirstChildOfKind(kBlock).FirstChildOfKind(kLet)
	assert.Equal(t, Position{Offset: 2, Line: 1, Column: 3}, firstLet.Span.Start)
}

func TestParseBlock(t *testing.T) {
	c := newCalc()
	tree := ParseBlock(calcLang, lexCalc("1 + 2"), c.expr.Rule())
	require.Empty(t, tree.Errors)
	assert.Equal(t, shapeOf("None", "  Add", "    Num", "    Num"), tree.Root.Shape())
}

func TestErrorList(t *testing.T) {
	var empty ErrorList
	assert.NoError(t, empty.Err())

	tree := parseCalc("let = 1\nlet = 2")
	require.Len(t, tree.Errors, 2)
	assert.EqualError(t, tree.Errors.Err(), "1:5: identifier expected, got '=' (and 1 more errors)")
}

// TestParseIsTotal checks that any token sequence yields a tree holding
// every input token exactly once, in order, with errors sorted by offset.
func TestParseIsTotal(t *testing.T) {
	alphabet := []string{"1", "x", "let", "+", "-", "*", "^", "=", "(", ")", "{", "}", ",", ";", "\n", "?"}
	rapid.Check(t, func(t *rapid.T) {
		words := rapid.SliceOfN(rapid.SampledFrom(alphabet), 0, 40).Draw(t, "words")
		lazy := rapid.Bool().Draw(t, "lazy")
		src := strings.Join(words, " ")
		tokens := lexCalc(src)

		var opts []Option
		if lazy {
			opts = append(opts, WithLazyBlocks())
		}
		tree := Parse(calcLang, tokens, newCalc().stmts.Rule(), opts...)
		tree.ExpandAll()

		want := tokens[:len(tokens)-1]
		if diff := cmp.Diff(want, tree.Root.Tokens(), cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("tokens lost or duplicated for %q (-want +got):\n%s", src, diff)
		}
		for i := 1; i < len(tree.Errors); i++ {
			if tree.Errors[i-1].Pos.Offset >= tree.Errors[i].Pos.Offset {
				t.Fatalf("errors out of order for %q: %v", src, tree.Errors)
			}
		}
	})
}
