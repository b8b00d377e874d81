package groovy

import "github.com/dhamidi/gparse/parse"

const (
	// ApplicationArguments is set while parsing the arguments of a call
	// written without parentheses, as in "println x". Such a call cannot
	// start inside another one.
	ApplicationArguments = parse.FirstUserFlag << iota
	// InsideSwitchExpression allows yield statements.
	InsideSwitchExpression
)

// blockFlags are cleared on entry to a closure or class body.
const blockFlags = parse.NewlinesIgnored | ApplicationArguments | InsideSwitchExpression

var modifierKinds = []parse.TokenKind{
	TokenDef, TokenVar, TokenFinal, TokenStatic, TokenPublic, TokenPrivate,
	TokenProtected, TokenAbstract,
}

var primitiveKinds = []parse.TokenKind{
	TokenBoolean, TokenByte, TokenChar, TokenDouble, TokenFloat, TokenInt,
	TokenLong, TokenShort, TokenVoid,
}

var (
	separators = parse.NewTokenSet(TokenNL, TokenSemicolon)
	comma      = parse.NewTokenSet(TokenComma)

	// statementSync are tokens that certainly start a statement; recovery
	// stops in front of them.
	statementSync = parse.NewTokenSet(
		TokenIf, TokenWhile, TokenFor, TokenTry, TokenReturn, TokenBreak,
		TokenContinue, TokenThrow, TokenAssert, TokenClass, TokenDef, TokenVar,
	)
	memberSync = parse.NewTokenSet(append(modifierKinds, TokenClass, TokenAt)...).
			Union(parse.NewTokenSet(primitiveKinds...))
	modifierStart = parse.NewTokenSet(append(modifierKinds, TokenAt)...)
)

type grammar struct {
	expr *parse.Expr

	file        parse.List
	statementOf parse.Rule

	block      *parse.Braced
	closure    *parse.Braced
	classBody  *parse.Braced
	switchBody *parse.Braced
	parameters *parse.Braced
	arguments  *parse.Braced
	index      *parse.Braced
	safeIndex  *parse.Braced
	list       *parse.Braced

	closureRule      parse.Rule
	methodBody       parse.Rule
	primitiveType    parse.Rule
	classType        parse.Rule
	typeRule         parse.Rule
	modifiers        parse.Rule
	parameter        parse.Rule
	variable         parse.Rule
	condition        parse.Rule
	parenTail        parse.Rule
	classDefinition  parse.Rule
	newExpression    parse.Rule
	switchExpression parse.Rule
	application      parse.Rule
}

var rules = newGrammar()

func newGrammar() *grammar {
	g := &grammar{expr: &parse.Expr{Name: "expression", Display: "<expression>"}}
	g.initTypes()
	g.initBlocks()
	g.initStatements()
	g.initExpressions()
	return g
}

func (g *grammar) statement(p *parse.Parser) bool {
	return g.statementOf(p)
}

func (g *grammar) expression(p *parse.Parser) bool {
	return g.expr.Parse(p, -1)
}

func (g *grammar) typ(p *parse.Parser) bool {
	return g.typeRule(p)
}

func statementList(g *grammar, end ...parse.TokenKind) parse.List {
	return parse.List{
		Name:  "<statement>",
		Item:  g.statement,
		Sep:   separators,
		End:   parse.NewTokenSet(end...),
		Sync:  statementSync,
		Loose: true,
	}
}

func (g *grammar) initTypes() {
	g.primitiveType = parse.Define(parse.Production{
		Name:  "primitive type",
		Kind:  KindPrimitiveType,
		First: parse.NewTokenSet(primitiveKinds...),
		Body:  []parse.Rule{parse.Tok(primitiveKinds...)},
	})
	typeArgument := parse.Alt(g.typ, parse.Tok(TokenQuestion))
	typeArguments := parse.Define(parse.Production{
		Name:  "type arguments",
		Kind:  KindTypeArgumentList,
		First: parse.NewTokenSet(TokenLT),
		Body: []parse.Rule{
			parse.Tok(TokenLT),
			parse.Opt(parse.Seq(typeArgument, parse.Many(parse.Seq(parse.Tok(TokenComma), typeArgument)))),
			parse.Tok(TokenGT),
		},
	})
	g.classType = parse.Define(parse.Production{
		Name:  "class type",
		Kind:  KindClassType,
		First: parse.NewTokenSet(TokenIdent),
		Body: []parse.Rule{
			parse.Tok(TokenIdent),
			parse.Many(parse.Seq(parse.Tok(TokenDot), parse.Tok(TokenIdent))),
			parse.Opt(typeArguments),
		},
	})
	g.typeRule = arrayType(parse.Alt(g.primitiveType, g.classType))

	annotation := parse.Define(parse.Production{
		Name:  "annotation",
		Kind:  KindAnnotation,
		First: parse.NewTokenSet(TokenAt),
		// A lone '@' is not an annotation, so a run of them fails as one
		// statement instead of committing once per '@'.
		Pin:  2,
		Body: []parse.Rule{parse.Tok(TokenAt), g.classType, parse.Opt(g.argumentsRule)},
	})
	g.modifiers = parse.Define(parse.Production{
		Name:  "modifiers",
		Kind:  KindModifiers,
		First: modifierStart,
		Body:  []parse.Rule{parse.Many1(parse.Seq(parse.Alt(parse.Tok(modifierKinds...), annotation), parse.MaybeNewline))},
	})
}

// arrayType wraps base in one ArrayType node per trailing "[]".
func arrayType(base parse.Rule) parse.Rule {
	return func(p *parse.Parser) bool {
		m := p.Mark()
		if !base(p) {
			m.Rollback()
			return false
		}
		for p.At(TokenLBracket) && p.PeekKind(1) == TokenRBracket {
			p.Advance()
			p.Advance()
			m = m.Done(KindArrayType).Precede()
		}
		m.Drop()
		return true
	}
}

// capitalized matches nothing but succeeds in front of an identifier
// starting with an upper case letter, which is how a type is told apart
// from a variable without symbol tables.
func capitalized(p *parse.Parser) bool {
	tok := p.Peek(0)
	if tok.Kind != TokenIdent || tok.Literal == "" {
		return false
	}
	c := tok.Literal[0]
	return c >= 'A' && c <= 'Z'
}

func (g *grammar) argumentsRule(p *parse.Parser) bool {
	return g.arguments.Parse(p)
}

func (g *grammar) initBlocks() {
	g.block = &parse.Braced{
		Name:  "block",
		Kind:  KindBlock,
		Open:  TokenLBrace,
		Close: TokenRBrace,
		Clear: parse.NewlinesIgnored | ApplicationArguments,
		List:  statementList(g),
	}
	g.methodBody = parse.Lazy(KindBlock, TokenLBrace, TokenRBrace, g.block.Parse)

	g.parameter = parse.Define(parse.Production{
		Name:    "parameter",
		Display: "<parameter>",
		Kind:    KindParameter,
		Body: []parse.Rule{
			parse.Opt(g.modifiers),
			parse.Opt(parse.Seq(g.typ, parse.And(parse.Tok(TokenIdent)))),
			parse.Tok(TokenIdent),
			parse.Opt(parse.Seq(parse.Tok(TokenAssign), parse.MaybeNewline, g.expression)),
		},
	})
	g.parameters = &parse.Braced{
		Name:  "parameter list",
		Kind:  KindParameterList,
		Open:  TokenLParen,
		Close: TokenRParen,
		Set:   parse.NewlinesIgnored,
		List:  parse.List{Name: "<parameter>", Item: g.parameter, Sep: comma},
	}
	closureParameters := parse.Define(parse.Production{
		Name: "closure parameters",
		Kind: KindParameterList,
		Body: []parse.Rule{
			parse.Opt(parse.Seq(g.parameter, parse.Many(parse.Seq(parse.Tok(TokenComma), parse.MaybeNewline, g.parameter)))),
			parse.Tok(TokenArrow),
		},
	})
	g.closure = &parse.Braced{
		Name:  "closure",
		Kind:  KindClosure,
		Open:  TokenLBrace,
		Close: TokenRBrace,
		Clear: blockFlags,
		Head:  parse.Opt(parse.Seq(parse.MaybeNewline, closureParameters)),
		List:  statementList(g),
	}
	g.closureRule = parse.Lazy(KindClosure, TokenLBrace, TokenRBrace, g.closure.Parse)

	argument := parse.Alt(g.namedArgument(), g.expression)
	g.arguments = &parse.Braced{
		Name:  "argument list",
		Kind:  KindArgumentList,
		Open:  TokenLParen,
		Close: TokenRParen,
		Set:   parse.NewlinesIgnored,
		Clear: ApplicationArguments,
		List:  parse.List{Name: "<argument>", Item: argument, Sep: comma, Trailing: true},
	}
	g.index = &parse.Braced{
		Name:  "index",
		Kind:  KindArgumentList,
		Open:  TokenLBracket,
		Close: TokenRBracket,
		Set:   parse.NewlinesIgnored,
		Clear: ApplicationArguments,
		List:  parse.List{Name: "<expression>", Item: g.expression, Sep: comma},
	}
	g.safeIndex = &parse.Braced{
		Name:  "safe index",
		Kind:  KindArgumentList,
		Open:  TokenSafeIndex,
		Close: TokenRBracket,
		Set:   parse.NewlinesIgnored,
		Clear: ApplicationArguments,
		List:  parse.List{Name: "<expression>", Item: g.expression, Sep: comma},
	}
	g.list = &parse.Braced{
		Name:  "list",
		Kind:  KindListOrMap,
		Open:  TokenLBracket,
		Close: TokenRBracket,
		Set:   parse.NewlinesIgnored,
		Clear: ApplicationArguments,
		// [:] is the empty map.
		Head: parse.Opt(parse.Seq(parse.Tok(TokenColon), parse.And(parse.Tok(TokenRBracket)))),
		List: parse.List{Name: "<argument>", Item: argument, Sep: comma, Trailing: true},
	}

	g.parenTail = parse.Define(parse.Production{
		Name: "parenthesized tail",
		Pin:  1,
		Body: []parse.Rule{g.expression, parse.Tok(TokenRParen)},
	})
	g.condition = parse.Define(parse.Production{
		Name:  "condition",
		First: parse.NewTokenSet(TokenLParen),
		Pin:   1,
		Body:  []parse.Rule{parse.Tok(TokenLParen), parse.With(parse.NewlinesIgnored, true, g.parenTail)},
	})

	member := parse.Alt(g.classDefinitionRule, g.declaration, g.constructor)
	g.classBody = &parse.Braced{
		Name:  "class body",
		Kind:  KindClassBody,
		Open:  TokenLBrace,
		Close: TokenRBrace,
		Clear: blockFlags,
		List: parse.List{
			Name:  "<class member>",
			Item:  member,
			Sep:   separators,
			Sync:  memberSync,
			Loose: true,
		},
	}
}

func (g *grammar) classDefinitionRule(p *parse.Parser) bool {
	return g.classDefinition(p)
}

func (g *grammar) initStatements() {
	// pinned productions commit once their leading keyword matched.
	pinned := func(name string, kind parse.NodeKind, body ...parse.Rule) parse.Rule {
		return parse.Define(parse.Production{Name: name, Kind: kind, Pin: 1, Body: body})
	}

	elseBranch := parse.Opt(parse.Seq(parse.MaybeNewline, parse.Tok(TokenElse), parse.MaybeNewline, g.statement))
	ifStatement := pinned("if statement", KindIfStatement,
		parse.Tok(TokenIf), g.condition, parse.MaybeNewline, g.statement, elseBranch)
	whileStatement := pinned("while statement", KindWhileStatement,
		parse.Tok(TokenWhile), g.condition, parse.MaybeNewline, g.statement)

	expressionList := parse.Seq(g.expression, parse.Many(parse.Seq(parse.Tok(TokenComma), g.expression)))
	forIn := parse.Define(parse.Production{
		Name: "for-in clause",
		Kind: KindForInClause,
		Pin:  4,
		Body: []parse.Rule{
			parse.Opt(g.modifiers),
			parse.Opt(parse.Seq(g.typ, parse.And(parse.Tok(TokenIdent)))),
			parse.Tok(TokenIdent),
			parse.Tok(TokenIn, TokenColon),
			g.expression,
		},
	})
	traditionalFor := parse.Define(parse.Production{
		Name: "for clause",
		Kind: KindTraditionalForClause,
		Pin:  2,
		Body: []parse.Rule{
			parse.Opt(parse.Alt(g.declaration, expressionList)),
			parse.Tok(TokenSemicolon),
			parse.Opt(g.expression),
			parse.Tok(TokenSemicolon),
			parse.Opt(expressionList),
		},
	})
	// An unreadable header is skipped up to ')' so the loop body is still
	// parsed.
	forHead := parse.Define(parse.Production{
		Name: "for header",
		Pin:  1,
		Body: []parse.Rule{
			parse.Alt(forIn, traditionalFor, parse.Recover(parse.NewTokenSet(TokenRParen))),
			parse.Tok(TokenRParen),
		},
	})
	forStatement := pinned("for statement", KindForStatement,
		parse.Tok(TokenFor), parse.Tok(TokenLParen), parse.With(parse.NewlinesIgnored, true, forHead),
		parse.MaybeNewline, g.statement)

	returnStatement := pinned("return statement", KindReturnStatement,
		parse.Tok(TokenReturn), parse.Opt(g.expression))
	breakStatement := pinned("break statement", KindBreakStatement,
		parse.Tok(TokenBreak), parse.Opt(parse.Tok(TokenIdent)))
	continueStatement := pinned("continue statement", KindContinueStatement,
		parse.Tok(TokenContinue), parse.Opt(parse.Tok(TokenIdent)))
	throwStatement := pinned("throw statement", KindThrowStatement,
		parse.Tok(TokenThrow), g.expression)
	yieldStatement := pinned("yield statement", KindYieldStatement,
		parse.Tok(TokenYield), g.expression)
	assertStatement := pinned("assert statement", KindAssertStatement,
		parse.Tok(TokenAssert), g.expression, parse.Opt(parse.Seq(parse.Tok(TokenColon, TokenComma), g.expression)))

	catchClause := pinned("catch clause", KindCatchClause,
		parse.Tok(TokenCatch), parse.Tok(TokenLParen), parse.With(parse.NewlinesIgnored, true, parse.Seq(g.parameter, parse.Tok(TokenRParen))),
		parse.MaybeNewline, g.block.Parse)
	finallyClause := pinned("finally clause", KindFinallyClause,
		parse.Tok(TokenFinally), parse.MaybeNewline, g.block.Parse)
	tryStatement := pinned("try statement", KindTryStatement,
		parse.Tok(TokenTry), parse.MaybeNewline, g.block.Parse,
		parse.Many(parse.Seq(parse.MaybeNewline, catchClause)),
		parse.Opt(parse.Seq(parse.MaybeNewline, finallyClause)))

	labeled := parse.Define(parse.Production{
		Name:  "labeled statement",
		Kind:  KindLabeledStatement,
		First: parse.NewTokenSet(TokenIdent),
		Pin:   2,
		Body:  []parse.Rule{parse.Tok(TokenIdent), parse.Tok(TokenColon), parse.MaybeNewline, g.statement},
	})

	extends := pinned("extends clause", KindExtendsClause, parse.Tok(TokenExtends), g.classType)
	implements := pinned("implements clause", KindImplementsClause,
		parse.Tok(TokenImplements), g.classType, parse.Many(parse.Seq(parse.Tok(TokenComma), parse.MaybeNewline, g.classType)))
	g.classDefinition = parse.Define(parse.Production{
		Name:  "class definition",
		Kind:  KindClassDefinition,
		First: modifierStart.With(TokenClass),
		Pin:   2,
		Body: []parse.Rule{
			parse.Opt(g.modifiers),
			parse.Tok(TokenClass),
			parse.Tok(TokenIdent),
			parse.Opt(extends),
			parse.Opt(implements),
			parse.MaybeNewline,
			g.classBody.Parse,
		},
	})

	g.variable = parse.Define(parse.Production{
		Name: "variable",
		Kind: KindVariable,
		Body: []parse.Rule{parse.Tok(TokenIdent), parse.Opt(parse.Seq(parse.Tok(TokenAssign), parse.MaybeNewline, g.expression))},
	})

	caseLabel := parse.Define(parse.Production{
		Name:  "case label",
		Kind:  KindCaseLabel,
		First: parse.NewTokenSet(TokenCase, TokenDefault),
		Body:  []parse.Rule{parse.Alt(parse.Seq(parse.Tok(TokenCase), expressionList), parse.Tok(TokenDefault))},
	})
	caseStatements := statementList(g, TokenCase, TokenDefault, TokenRBrace)
	arrowArm := parse.Seq(parse.Tok(TokenArrow), parse.MaybeNewline, parse.Alt(g.block.Parse, throwStatement, g.application, g.expression))
	colonArm := parse.Seq(parse.Tok(TokenColon), caseStatements.Rule())
	caseSection := parse.Define(parse.Production{
		Name:  "case section",
		Kind:  KindCaseSection,
		First: parse.NewTokenSet(TokenCase, TokenDefault),
		Pin:   1,
		Body:  []parse.Rule{caseLabel, parse.Alt(arrowArm, colonArm)},
	})
	g.switchBody = &parse.Braced{
		Name:  "switch body",
		Open:  TokenLBrace,
		Close: TokenRBrace,
		Set:   InsideSwitchExpression,
		Clear: parse.NewlinesIgnored | ApplicationArguments,
		List: parse.List{
			Name:  "<case>",
			Item:  caseSection,
			Sep:   separators,
			Sync:  parse.NewTokenSet(TokenCase, TokenDefault),
			Loose: true,
		},
	}
	g.switchExpression = pinned("switch expression", KindSwitchExpression,
		parse.Tok(TokenSwitch), g.condition, parse.MaybeNewline, g.switchBody.Parse)

	dimension := parse.Seq(parse.Tok(TokenLBracket), parse.Opt(g.expression), parse.Tok(TokenRBracket))
	g.newExpression = pinned("new expression", KindNewExpression,
		parse.Tok(TokenNew), parse.Alt(g.primitiveType, g.classType),
		parse.Alt(parse.Seq(g.argumentsRule, parse.Opt(g.classBody.Parse)), parse.Many1(dimension)))

	g.application = parse.Define(parse.Production{
		Name:  "application",
		Kind:  KindApplicationExpression,
		First: parse.NewTokenSet(TokenIdent, TokenThis, TokenSuper),
		Body: []parse.Rule{
			parse.Unless(ApplicationArguments, g.expr.At(levelPostfix)),
			startsWith(applicationStart),
			parse.With(ApplicationArguments, true, parse.Define(parse.Production{
				Name: "application arguments",
				Kind: KindArgumentList,
				Body: []parse.Rule{(&parse.List{
					Name: "<argument>",
					Item: parse.Alt(g.namedArgument(), g.expression),
					Sep:  comma,
					End:  separators.With(TokenRBrace),
				}).Rule()},
			})),
		},
	})

	g.statementOf = parse.Alt(
		g.block.Parse,
		ifStatement,
		whileStatement,
		forStatement,
		tryStatement,
		returnStatement,
		breakStatement,
		continueStatement,
		throwStatement,
		assertStatement,
		parse.If(InsideSwitchExpression, yieldStatement),
		g.classDefinition,
		labeled,
		g.declaration,
		g.application,
		g.expression,
	)
	g.file = statementList(g)
}

// applicationStart are tokens that begin the first argument of a call
// written without parentheses.
var applicationStart = parse.NewTokenSet(append([]parse.TokenKind{
	TokenIdent, TokenThis, TokenSuper, TokenNew, TokenNot, TokenBnot,
}, literalKinds...)...)

func (g *grammar) namedArgument() parse.Rule {
	return parse.Define(parse.Production{
		Name: "named argument",
		Kind: KindNamedArgument,
		Pin:  2,
		Body: []parse.Rule{
			parse.Tok(TokenIdent, TokenStringLiteral, TokenIntLiteral),
			parse.Tok(TokenColon),
			parse.MaybeNewline,
			g.expression,
		},
	})
}

// declaration parses a variable or method declaration. Without modifiers
// a declaration must start with a primitive or capitalized type that is
// followed by a name.
func (g *grammar) declaration(p *parse.Parser) bool {
	m := p.Mark()
	typed := parse.Seq(g.typ, parse.And(parse.Tok(TokenIdent)))
	if g.modifiers(p) {
		parse.Opt(typed)(p)
	} else if !parse.Seq(parse.Alt(startsWith(parse.NewTokenSet(primitiveKinds...)), capitalized), typed)(p) {
		m.Rollback()
		return false
	}
	if !p.At(TokenIdent) {
		parse.Tok(TokenIdent)(p)
		p.Report()
		m.Done(KindVariableDeclaration)
		return true
	}
	if p.PeekKind(1) == TokenLParen {
		p.Advance()
		g.parameters.Parse(p)
		parse.Opt(parse.Seq(parse.MaybeNewline, g.methodBody))(p)
		m.Done(KindMethod)
		return true
	}
	parse.Seq(g.variable, parse.Many(parse.Seq(parse.Tok(TokenComma), parse.MaybeNewline, g.variable)))(p)
	m.Done(KindVariableDeclaration)
	return true
}

// constructor parses "Name(params) { ... }" inside a class body.
func (g *grammar) constructor(p *parse.Parser) bool {
	m := p.Mark()
	parse.Opt(g.modifiers)(p)
	if !capitalized(p) || p.PeekKind(1) != TokenLParen {
		m.Rollback()
		return false
	}
	p.Advance()
	g.parameters.Parse(p)
	parse.MaybeNewline(p)
	if !g.methodBody(p) {
		p.Report()
	}
	m.Done(KindMethod)
	return true
}
