package groovy

import "github.com/dhamidi/gparse/parse"

const (
	TokenNL parse.TokenKind = parse.FirstTokenKind + iota
	TokenIdent
	TokenIntLiteral
	TokenFloatLiteral
	TokenStringLiteral

	// Keywords
	TokenAs
	TokenAssert
	TokenBreak
	TokenCase
	TokenCatch
	TokenClass
	TokenContinue
	TokenDef
	TokenDefault
	TokenElse
	TokenExtends
	TokenFalse
	TokenFinally
	TokenFor
	TokenIf
	TokenImplements
	TokenIn
	TokenInstanceof
	TokenNew
	TokenNull
	TokenReturn
	TokenSuper
	TokenSwitch
	TokenThis
	TokenThrow
	TokenTrue
	TokenTry
	TokenVar
	TokenWhile
	TokenYield

	// Modifiers
	TokenAbstract
	TokenFinal
	TokenPrivate
	TokenProtected
	TokenPublic
	TokenStatic

	// Primitive types
	TokenBoolean
	TokenByte
	TokenChar
	TokenDouble
	TokenFloat
	TokenInt
	TokenLong
	TokenShort
	TokenVoid

	// Punctuation
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenLBrace
	TokenRBrace
	TokenComma
	TokenSemicolon
	TokenColon
	TokenDot
	TokenSafeDot
	TokenSafeIndex
	TokenSpreadDot
	TokenMethodPointer
	TokenFieldAccess
	TokenColonColon
	TokenQuestion
	TokenElvis
	TokenArrow
	TokenAt

	// Assignment
	TokenAssign
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenPowAssign
	TokenShlAssign
	TokenShrAssign
	TokenUShrAssign
	TokenAndAssign
	TokenOrAssign
	TokenXorAssign
	TokenElvisAssign

	// Operators
	TokenOr
	TokenAnd
	TokenBor
	TokenXor
	TokenBand
	TokenEQ
	TokenNE
	TokenIdentical
	TokenNotIdentical
	TokenCompare
	TokenRegexFind
	TokenRegexMatch
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenNotIn
	TokenNotInstanceof
	TokenShl
	TokenRange
	TokenRangeExclusive
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenPow
	TokenIncrement
	TokenDecrement
	TokenNot
	TokenBnot
)

var tokenNames = map[parse.TokenKind]string{
	TokenNL:             "new line",
	TokenIdent:          "identifier",
	TokenIntLiteral:     "integer",
	TokenFloatLiteral:   "number",
	TokenStringLiteral:  "string",
	TokenAs:             "'as'",
	TokenAssert:         "'assert'",
	TokenBreak:          "'break'",
	TokenCase:           "'case'",
	TokenCatch:          "'catch'",
	TokenClass:          "'class'",
	TokenContinue:       "'continue'",
	TokenDef:            "'def'",
	TokenDefault:        "'default'",
	TokenElse:           "'else'",
	TokenExtends:        "'extends'",
	TokenFalse:          "'false'",
	TokenFinally:        "'finally'",
	TokenFor:            "'for'",
	TokenIf:             "'if'",
	TokenImplements:     "'implements'",
	TokenIn:             "'in'",
	TokenInstanceof:     "'instanceof'",
	TokenNew:            "'new'",
	TokenNull:           "'null'",
	TokenReturn:         "'return'",
	TokenSuper:          "'super'",
	TokenSwitch:         "'switch'",
	TokenThis:           "'this'",
	TokenThrow:          "'throw'",
	TokenTrue:           "'true'",
	TokenTry:            "'try'",
	TokenVar:            "'var'",
	TokenWhile:          "'while'",
	TokenYield:          "'yield'",
	TokenAbstract:       "'abstract'",
	TokenFinal:          "'final'",
	TokenPrivate:        "'private'",
	TokenProtected:      "'protected'",
	TokenPublic:         "'public'",
	TokenStatic:         "'static'",
	TokenBoolean:        "'boolean'",
	TokenByte:           "'byte'",
	TokenChar:           "'char'",
	TokenDouble:         "'double'",
	TokenFloat:          "'float'",
	TokenInt:            "'int'",
	TokenLong:           "'long'",
	TokenShort:          "'short'",
	TokenVoid:           "'void'",
	TokenLParen:         "'('",
	TokenRParen:         "')'",
	TokenLBracket:       "'['",
	TokenRBracket:       "']'",
	TokenLBrace:         "'{'",
	TokenRBrace:         "'}'",
	TokenComma:          "','",
	TokenSemicolon:      "';'",
	TokenColon:          "':'",
	TokenDot:            "'.'",
	TokenSafeDot:        "'?.'",
	TokenSafeIndex:      "'?['",
	TokenSpreadDot:      "'*.'",
	TokenMethodPointer:  "'.&'",
	TokenFieldAccess:    "'.@'",
	TokenColonColon:     "'::'",
	TokenQuestion:       "'?'",
	TokenElvis:          "'?:'",
	TokenArrow:          "'->'",
	TokenAt:             "'@'",
	TokenAssign:         "'='",
	TokenPlusAssign:     "'+='",
	TokenMinusAssign:    "'-='",
	TokenStarAssign:     "'*='",
	TokenSlashAssign:    "'/='",
	TokenPercentAssign:  "'%='",
	TokenPowAssign:      "'**='",
	TokenShlAssign:      "'<<='",
	TokenShrAssign:      "'>>='",
	TokenUShrAssign:     "'>>>='",
	TokenAndAssign:      "'&='",
	TokenOrAssign:       "'|='",
	TokenXorAssign:      "'^='",
	TokenElvisAssign:    "'?='",
	TokenOr:             "'||'",
	TokenAnd:            "'&&'",
	TokenBor:            "'|'",
	TokenXor:            "'^'",
	TokenBand:           "'&'",
	TokenEQ:             "'=='",
	TokenNE:             "'!='",
	TokenIdentical:      "'==='",
	TokenNotIdentical:   "'!=='",
	TokenCompare:        "'<=>'",
	TokenRegexFind:      "'=~'",
	TokenRegexMatch:     "'==~'",
	TokenLT:             "'<'",
	TokenLE:             "'<='",
	TokenGT:             "'>'",
	TokenGE:             "'>='",
	TokenNotIn:          "'!in'",
	TokenNotInstanceof:  "'!instanceof'",
	TokenShl:            "'<<'",
	TokenRange:          "'..'",
	TokenRangeExclusive: "'..<'",
	TokenPlus:           "'+'",
	TokenMinus:          "'-'",
	TokenStar:           "'*'",
	TokenSlash:          "'/'",
	TokenPercent:        "'%'",
	TokenPow:            "'**'",
	TokenIncrement:      "'++'",
	TokenDecrement:      "'--'",
	TokenNot:            "'!'",
	TokenBnot:           "'~'",
}

var keywords = map[string]parse.TokenKind{
	"as":         TokenAs,
	"assert":     TokenAssert,
	"break":      TokenBreak,
	"case":       TokenCase,
	"catch":      TokenCatch,
	"class":      TokenClass,
	"continue":   TokenContinue,
	"def":        TokenDef,
	"default":    TokenDefault,
	"else":       TokenElse,
	"extends":    TokenExtends,
	"false":      TokenFalse,
	"finally":    TokenFinally,
	"for":        TokenFor,
	"if":         TokenIf,
	"implements": TokenImplements,
	"in":         TokenIn,
	"instanceof": TokenInstanceof,
	"new":        TokenNew,
	"null":       TokenNull,
	"return":     TokenReturn,
	"super":      TokenSuper,
	"switch":     TokenSwitch,
	"this":       TokenThis,
	"throw":      TokenThrow,
	"true":       TokenTrue,
	"try":        TokenTry,
	"var":        TokenVar,
	"while":      TokenWhile,
	"yield":      TokenYield,
	"abstract":   TokenAbstract,
	"final":      TokenFinal,
	"private":    TokenPrivate,
	"protected":  TokenProtected,
	"public":     TokenPublic,
	"static":     TokenStatic,
	"boolean":    TokenBoolean,
	"byte":       TokenByte,
	"char":       TokenChar,
	"double":     TokenDouble,
	"float":      TokenFloat,
	"int":        TokenInt,
	"long":       TokenLong,
	"short":      TokenShort,
	"void":       TokenVoid,
}

func LookupKeyword(ident string) parse.TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}

const (
	KindFile parse.NodeKind = parse.FirstNodeKind + iota

	// Statements and declarations
	KindBlock
	KindLabeledStatement
	KindIfStatement
	KindWhileStatement
	KindForStatement
	KindForInClause
	KindTraditionalForClause
	KindReturnStatement
	KindBreakStatement
	KindContinueStatement
	KindThrowStatement
	KindYieldStatement
	KindAssertStatement
	KindTryStatement
	KindCatchClause
	KindFinallyClause
	KindVariableDeclaration
	KindVariable
	KindModifiers
	KindAnnotation
	KindMethod
	KindClassDefinition
	KindClassBody
	KindExtendsClause
	KindImplementsClause
	KindParameterList
	KindParameter
	KindApplicationExpression
	KindCaseSection
	KindCaseLabel

	// Types
	KindClassType
	KindPrimitiveType
	KindArrayType
	KindTypeArgumentList

	// Expressions
	KindAssignmentExpression
	KindTernaryExpression
	KindElvisExpression
	KindLorExpression
	KindLandExpression
	KindBorExpression
	KindXorExpression
	KindBandExpression
	KindEqualityExpression
	KindRelationalExpression
	KindRegexFindExpression
	KindRegexMatchExpression
	KindInExpression
	KindInstanceofExpression
	KindAsExpression
	KindShiftExpression
	KindRangeExpression
	KindAdditiveExpression
	KindMultiplicativeExpression
	KindPowerExpression
	KindUnaryExpression
	KindCastExpression
	KindIndexExpression
	KindSafeIndexExpression
	KindMethodReferenceExpression
	KindReferenceExpression
	KindPropertyExpression
	KindMethodCallExpression
	KindNewExpression
	KindListOrMap
	KindNamedArgument
	KindArgumentList
	KindClosure
	KindLiteral
	KindParenthesizedExpression
	KindSwitchExpression
)

var nodeKindNames = map[parse.NodeKind]string{
	KindFile:                      "File",
	KindBlock:                     "Block",
	KindLabeledStatement:          "LabeledStatement",
	KindIfStatement:               "IfStatement",
	KindWhileStatement:            "WhileStatement",
	KindForStatement:              "ForStatement",
	KindForInClause:               "ForInClause",
	KindTraditionalForClause:      "TraditionalForClause",
	KindReturnStatement:           "ReturnStatement",
	KindBreakStatement:            "BreakStatement",
	KindContinueStatement:         "ContinueStatement",
	KindThrowStatement:            "ThrowStatement",
	KindYieldStatement:            "YieldStatement",
	KindAssertStatement:           "AssertStatement",
	KindTryStatement:              "TryStatement",
	KindCatchClause:               "CatchClause",
	KindFinallyClause:             "FinallyClause",
	KindVariableDeclaration:       "VariableDeclaration",
	KindVariable:                  "Variable",
	KindModifiers:                 "Modifiers",
	KindAnnotation:                "Annotation",
	KindMethod:                    "Method",
	KindClassDefinition:           "ClassDefinition",
	KindClassBody:                 "ClassBody",
	KindExtendsClause:             "ExtendsClause",
	KindImplementsClause:          "ImplementsClause",
	KindParameterList:             "ParameterList",
	KindParameter:                 "Parameter",
	KindApplicationExpression:     "ApplicationExpression",
	KindCaseSection:               "CaseSection",
	KindCaseLabel:                 "CaseLabel",
	KindClassType:                 "ClassType",
	KindPrimitiveType:             "PrimitiveType",
	KindArrayType:                 "ArrayType",
	KindTypeArgumentList:          "TypeArgumentList",
	KindAssignmentExpression:      "AssignmentExpression",
	KindTernaryExpression:         "TernaryExpression",
	KindElvisExpression:           "ElvisExpression",
	KindLorExpression:             "LorExpression",
	KindLandExpression:            "LandExpression",
	KindBorExpression:             "BorExpression",
	KindXorExpression:             "XorExpression",
	KindBandExpression:            "BandExpression",
	KindEqualityExpression:        "EqualityExpression",
	KindRelationalExpression:      "RelationalExpression",
	KindRegexFindExpression:       "RegexFindExpression",
	KindRegexMatchExpression:      "RegexMatchExpression",
	KindInExpression:              "InExpression",
	KindInstanceofExpression:      "InstanceofExpression",
	KindAsExpression:              "AsExpression",
	KindShiftExpression:           "ShiftExpression",
	KindRangeExpression:           "RangeExpression",
	KindAdditiveExpression:        "AdditiveExpression",
	KindMultiplicativeExpression:  "MultiplicativeExpression",
	KindPowerExpression:           "PowerExpression",
	KindUnaryExpression:           "UnaryExpression",
	KindCastExpression:            "CastExpression",
	KindIndexExpression:           "IndexExpression",
	KindSafeIndexExpression:       "SafeIndexExpression",
	KindMethodReferenceExpression: "MethodReferenceExpression",
	KindReferenceExpression:       "ReferenceExpression",
	KindPropertyExpression:        "PropertyExpression",
	KindMethodCallExpression:      "MethodCallExpression",
	KindNewExpression:             "NewExpression",
	KindListOrMap:                 "ListOrMap",
	KindNamedArgument:             "NamedArgument",
	KindArgumentList:              "ArgumentList",
	KindClosure:                   "Closure",
	KindLiteral:                   "Literal",
	KindParenthesizedExpression:   "ParenthesizedExpression",
	KindSwitchExpression:          "SwitchExpression",
}

// Lang describes the token and node kinds of the Groovy subset.
var Lang = &parse.Language{
	Name:    "groovy",
	Tokens:  tokenNames,
	Nodes:   nodeKindNames,
	Newline: TokenNL,
	Root:    KindFile,
}
