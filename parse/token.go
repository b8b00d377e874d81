package parse

import (
	"fmt"

	"github.com/hashicorp/go-set/v3"
)

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

// TokenKind is opaque to the engine. Languages define their own kinds
// starting at FirstTokenKind.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError

	FirstTokenKind TokenKind = 16
)

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

// TokenSet is an immutable set of token kinds used for first sets,
// list terminators and recovery.
type TokenSet struct {
	kinds *set.Set[TokenKind]
}

func NewTokenSet(kinds ...TokenKind) TokenSet {
	return TokenSet{kinds: set.From(kinds)}
}

func (s TokenSet) Has(kind TokenKind) bool {
	return s.kinds != nil && s.kinds.Contains(kind)
}

func (s TokenSet) Empty() bool {
	return s.kinds == nil || s.kinds.Empty()
}

func (s TokenSet) Kinds() []TokenKind {
	if s.kinds == nil {
		return nil
	}
	return s.kinds.Slice()
}

// Union returns a new set holding the kinds of both sets.
func (s TokenSet) Union(other TokenSet) TokenSet {
	u := set.New[TokenKind](0)
	if s.kinds != nil {
		u.InsertSlice(s.kinds.Slice())
	}
	if other.kinds != nil {
		u.InsertSlice(other.kinds.Slice())
	}
	return TokenSet{kinds: u}
}

// With returns a new set holding the kinds of s plus the given kinds.
func (s TokenSet) With(kinds ...TokenKind) TokenSet {
	return s.Union(NewTokenSet(kinds...))
}
