package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/gparse/parse"
)

// LineEncoder writes one tab-separated line per node: the indented kind,
// the span and, for tokens, the literal. Errors follow the tree, one per
// line.
type LineEncoder struct {
	w io.Writer
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(tree *parse.Tree) error {
	text, err := e.MarshalTree(tree)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalTree(tree *parse.Tree) ([]byte, error) {
	var sb strings.Builder
	writeLines(&sb, tree.Root, 0)
	for _, err := range tree.Errors {
		fmt.Fprintf(&sb, "error\t%s\t%s\n", err.Pos, err.Message)
	}
	return []byte(sb.String()), nil
}

func writeLines(sb *strings.Builder, n *parse.Node, depth int) {
	fmt.Fprintf(sb, "%s%s\t%s", strings.Repeat("  ", depth), n.KindName(), spanString(n.Span))
	switch {
	case n.Token != nil:
		fmt.Fprintf(sb, "\t%s", literalString(n.Token.Literal))
	case n.IsLazy():
		sb.WriteString("\tlazy")
	case n.Error != nil:
		fmt.Fprintf(sb, "\t%s", n.Error.Message)
	}
	sb.WriteByte('\n')
	for _, child := range n.Children {
		writeLines(sb, child, depth+1)
	}
}

func spanString(s parse.Span) string {
	return fmt.Sprintf("%d:%d-%d:%d", s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// literalString keeps multi-line tokens such as newlines on one line.
func literalString(lit string) string {
	return strings.NewReplacer("\n", `\n`, "\r", `\r`, "\t", `\t`).Replace(lit)
}
