package format

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/gparse/parse"
	"github.com/rivo/uniseg"
)

// DiagnosticEncoder writes each syntax error with the offending source
// line and a caret under the error column:
//
//	build.groovy:3:12: <argument> expected, got ','
//	   3 | println(1, , 2)
//	     |            ^
type DiagnosticEncoder struct {
	w     io.Writer
	lines [][]byte
}

func NewDiagnosticEncoder(w io.Writer, src []byte) *DiagnosticEncoder {
	return &DiagnosticEncoder{w: w, lines: bytes.Split(src, []byte("\n"))}
}

func (e *DiagnosticEncoder) Encode(tree *parse.Tree) error {
	for _, err := range tree.Errors {
		if _, werr := io.WriteString(e.w, e.Render(err)); werr != nil {
			return werr
		}
	}
	return nil
}

// Render formats a single error. Positions outside the source are
// rendered without a source excerpt.
func (e *DiagnosticEncoder) Render(err *parse.Error) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", err.Pos, err.Message)
	if err.Pos.Line < 1 || err.Pos.Line > len(e.lines) {
		return sb.String()
	}
	line := string(bytes.TrimRight(e.lines[err.Pos.Line-1], "\r"))
	gutter := fmt.Sprintf("%4d", err.Pos.Line)
	fmt.Fprintf(&sb, "%s | %s\n", gutter, line)
	fmt.Fprintf(&sb, "%s | %s^\n", strings.Repeat(" ", len(gutter)), caretIndent(line, err.Pos.Column))
	return sb.String()
}

// caretIndent returns the padding that puts a caret under the byte column
// col of line. Tabs are kept so the caret lines up in a terminal; other
// characters are replaced by as many spaces as they are wide.
func caretIndent(line string, col int) string {
	n := col - 1
	if n < 0 {
		n = 0
	}
	if n > len(line) {
		n = len(line)
	}
	var sb strings.Builder
	g := uniseg.NewGraphemes(line[:n])
	for g.Next() {
		if g.Str() == "\t" {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", g.Width()))
	}
	return sb.String()
}
