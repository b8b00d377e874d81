package parse

import (
	"github.com/tliron/commonlog"
)

const DefaultMaxDepth = 1000

var log = commonlog.GetLogger("gparse.parse")

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithMaxDepth bounds how many guarded rules may be active at once.
// Hitting the bound fails the innermost rule and records a single error.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}

// WithLogger replaces the package logger, which is named "gparse.parse".
func WithLogger(logger commonlog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.log = logger
		}
	}
}

// WithLazyBlocks makes rules built with Lazy capture balanced regions
// without parsing them. Use Tree.Expand to parse them on demand.
func WithLazyBlocks() Option {
	return func(p *Parser) {
		p.lazy = true
	}
}

// WithBlockCache shares parsed lazy blocks between trees.
func WithBlockCache(cache *BlockCache) Option {
	return func(p *Parser) {
		p.cache = cache
	}
}

// Language names the token and node kinds of a grammar.
type Language struct {
	Name    string
	Tokens  map[TokenKind]string
	Nodes   map[NodeKind]string
	Newline TokenKind
	Root    NodeKind
}

func (l *Language) TokenName(kind TokenKind) string {
	switch kind {
	case TokenEOF:
		return "end of file"
	case TokenError:
		return "invalid character"
	}
	if name, ok := l.Tokens[kind]; ok {
		return name
	}
	return "Unknown"
}

func (l *Language) NodeName(kind NodeKind) string {
	switch kind {
	case KindNone:
		return "None"
	case KindError:
		return "Error"
	case KindToken:
		return "Token"
	}
	if name, ok := l.Nodes[kind]; ok {
		return name
	}
	return "Unknown"
}

type Stats struct {
	Tokens          int
	Events          int
	Rollbacks       int
	GuardRejections int
	DeepestNesting  int
	DepthLimitHits  int
}

type Parser struct {
	lang     *Language
	file     string
	tokens   []Token
	pos      int
	flags    Flag
	events   []event
	links    []link
	guard    guard
	maxDepth int
	lazy     bool
	cache    *BlockCache
	opts     []Option
	log      commonlog.Logger

	suppress  int
	lastError int
	unclosed  bool
	farthest  int
	variants  []string
	extra     []*Error
	stats     Stats
}

func newParser(lang *Language, tokens []Token, opts ...Option) *Parser {
	p := &Parser{
		lang:      lang,
		tokens:    withEOF(tokens),
		maxDepth:  DefaultMaxDepth,
		log:       log,
		lastError: -1,
		farthest:  -1,
		opts:      opts,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.guard = newGuard()
	p.stats.Tokens = len(p.tokens)
	return p
}

func withEOF(tokens []Token) []Token {
	if n := len(tokens); n > 0 && tokens[n-1].Kind == TokenEOF {
		return tokens
	}
	var end Position
	if n := len(tokens); n > 0 {
		end = tokens[n-1].Span.End
	} else {
		end = Position{Line: 1, Column: 1}
	}
	out := make([]Token, len(tokens), len(tokens)+1)
	copy(out, tokens)
	return append(out, Token{Kind: TokenEOF, Span: Span{Start: end, End: end}})
}

// Parse runs root over tokens and returns a tree spanning the whole input.
// It never fails: syntax problems are reported in Tree.Errors.
func Parse(lang *Language, tokens []Token, root Rule, opts ...Option) *Tree {
	p := newParser(lang, tokens, opts...)
	p.log.Debugf("parsing %s: %d tokens", p.describeFile(), len(p.tokens))
	m := p.Mark()
	root(p)
	p.finishInput()
	m.Done(lang.Root)
	t := p.finish()
	p.log.Debugf("parsed %s: %d errors, %d rollbacks", p.describeFile(), len(t.Errors), t.Stats.Rollbacks)
	return t
}

func (p *Parser) describeFile() string {
	if p.file == "" {
		return "<input>"
	}
	return p.file
}

// finishInput wraps anything root left unconsumed into one error node.
func (p *Parser) finishInput() {
	p.SkipNewlines()
	if p.AtEOF() {
		return
	}
	p.expectNothing()
	p.recoverTo(TokenSet{}, true)
}

// expectNothing clears stale variants so the trailing-input error reads
// as "unexpected" instead of listing alternatives from earlier rules.
func (p *Parser) expectNothing() {
	if p.farthest < p.cursor() {
		p.variants = p.variants[:0]
	}
}

func (p *Parser) finish() *Tree {
	root := p.build()
	p.stats.Events = len(p.events)
	return &Tree{
		Root:   root,
		Errors: collectErrors(root, p.extra),
		Stats:  p.stats,
		lang:   p.lang,
		opts:   p.opts,
		cache:  p.cache,
	}
}

func (p *Parser) Language() *Language {
	return p.lang
}

// cursor is the index of the next significant token.
func (p *Parser) cursor() int {
	return p.skipIndex(p.pos)
}

func (p *Parser) skipIndex(i int) int {
	last := len(p.tokens) - 1
	if i > last {
		return last
	}
	if p.flags&NewlinesIgnored == 0 || p.lang.Newline == TokenEOF {
		return i
	}
	for i < last && p.tokens[i].Kind == p.lang.Newline {
		i++
	}
	return i
}

// Peek returns the significant token offset positions ahead of the cursor
// without consuming anything. Past the end it returns the EOF token.
func (p *Parser) Peek(offset int) Token {
	i := p.cursor()
	for ; offset > 0; offset-- {
		i = p.skipIndex(i + 1)
	}
	return p.tokens[i]
}

func (p *Parser) PeekKind(offset int) TokenKind {
	return p.Peek(offset).Kind
}

// At reports whether the next significant token is one of kinds.
func (p *Parser) At(kinds ...TokenKind) bool {
	k := p.PeekKind(0)
	for _, kind := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func (p *Parser) AtEOF() bool {
	return p.PeekKind(0) == TokenEOF
}

// Pos is the raw token index of the cursor. It only moves forward,
// except on rollback.
func (p *Parser) Pos() int {
	return p.pos
}

// Advance consumes the next significant token and appends it to the tree.
// Newlines skipped on the way are attached as leaves too. At the end of
// input it returns the EOF token and consumes nothing.
func (p *Parser) Advance() Token {
	i := p.cursor()
	for p.pos < i {
		p.emitToken()
	}
	tok := p.tokens[p.pos]
	if tok.Kind == TokenEOF {
		return tok
	}
	p.emitToken()
	return tok
}

// Prev returns the last consumed token, or the EOF token when nothing has
// been consumed yet.
func (p *Parser) Prev() Token {
	if p.pos == 0 {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos-1]
}

func (p *Parser) emitToken() {
	p.events = append(p.events, event{kind: evToken, token: p.pos})
	p.pos++
}

// SkipNewlines consumes pending newline tokens and reports whether any
// were consumed.
func (p *Parser) SkipNewlines() bool {
	nl := p.lang.Newline
	if nl == TokenEOF {
		return false
	}
	start := p.pos
	for p.pos < len(p.tokens)-1 && p.tokens[p.pos].Kind == nl {
		p.emitToken()
	}
	return p.pos > start
}

// peekPastNewlines returns the first token at or after the cursor that is
// not a newline, regardless of flags.
func (p *Parser) peekPastNewlines() Token {
	i := p.pos
	last := len(p.tokens) - 1
	for i < last && p.tokens[i].Kind == p.lang.Newline && p.lang.Newline != TokenEOF {
		i++
	}
	return p.tokens[i]
}

func (p *Parser) Stats() Stats {
	return p.stats
}
