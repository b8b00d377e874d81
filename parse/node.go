package parse

import "strings"

type NodeKind int

const (
	KindNone NodeKind = iota
	KindError
	KindToken

	FirstNodeKind NodeKind = 16
)

type Node struct {
	Kind     NodeKind
	Span     Span
	Children []*Node
	Token    *Token
	Error    *Error

	lang  *Language
	lazy  *lazyBlock
	empty bool
}

func (n *Node) hasTokens() bool {
	return !n.empty
}

func (n *Node) KindName() string {
	if n.Kind == KindToken && n.Token != nil && n.lang != nil {
		return n.lang.TokenName(n.Token.Kind)
	}
	if n.lang == nil {
		return "Unknown"
	}
	return n.lang.NodeName(n.Kind)
}

func (n *Node) IsError() bool {
	return n.Kind == KindError
}

// IsLazy reports whether n is an unparsed block captured by Lazy.
func (n *Node) IsLazy() bool {
	return n.lazy != nil
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// Nodes returns the children that are not token leaves.
func (n *Node) Nodes() []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind != KindToken {
			result = append(result, child)
		}
	}
	return result
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

// Tokens returns the token leaves below n in source order.
func (n *Node) Tokens() []Token {
	var out []Token
	n.Walk(func(c *Node) bool {
		if c.Token != nil {
			out = append(out, *c.Token)
		}
		return true
	})
	return out
}

// Text joins the literals of the tokens below n with single spaces.
func (n *Node) Text() string {
	toks := n.Tokens()
	parts := make([]string, 0, len(toks))
	for _, t := range toks {
		parts = append(parts, t.Literal)
	}
	return strings.Join(parts, " ")
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb, 0, false)
	return sb.String()
}

func (n *Node) StringWithPositions() string {
	var sb strings.Builder
	n.write(&sb, 0, true)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder, indent int, showPositions bool) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.KindName())
	if showPositions {
		sb.WriteString(" [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]")
	}
	if n.Token != nil {
		sb.WriteString(" " + n.Token.Literal)
	}
	if n.lazy != nil {
		sb.WriteString(" (lazy)")
	}
	if n.Error != nil {
		sb.WriteString(" ERROR: " + n.Error.Message)
	}
	sb.WriteString("\n")
	for _, child := range n.Children {
		child.write(sb, indent+1, showPositions)
	}
}

// Shape renders the node kinds of the tree without tokens, one node per
// line. Two parses of the same input have the same shape.
func (n *Node) Shape() string {
	var sb strings.Builder
	n.writeShape(&sb, 0)
	return sb.String()
}

func (n *Node) writeShape(sb *strings.Builder, indent int) {
	if n.Kind == KindToken {
		return
	}
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.KindName())
	sb.WriteString("\n")
	for _, child := range n.Children {
		child.writeShape(sb, indent+1)
	}
}
