package parse

import "encoding/json"

type jsonNode struct {
	Kind     string      `json:"kind"`
	Span     *jsonSpan   `json:"span,omitempty"`
	Token    string      `json:"token,omitempty"`
	Lazy     bool        `json:"lazy,omitempty"`
	Error    *jsonError  `json:"error,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

type jsonError struct {
	Message  string   `json:"message"`
	Expected []string `json:"expected,omitempty"`
	Got      string   `json:"got,omitempty"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON(true))
}

// JSON returns n as a JSON-friendly value. Spans are left out when
// positions is false.
func (n *Node) JSON(positions bool) any {
	return n.toJSON(positions)
}

func (n *Node) toJSON(positions bool) *jsonNode {
	jn := &jsonNode{
		Kind: n.KindName(),
		Lazy: n.lazy != nil,
	}

	if positions && (n.Span.Start.Line != 0 || n.Span.End.Line != 0) {
		jn.Span = &jsonSpan{
			Start: jsonPosition{Offset: n.Span.Start.Offset, Line: n.Span.Start.Line, Column: n.Span.Start.Column},
			End:   jsonPosition{Offset: n.Span.End.Offset, Line: n.Span.End.Line, Column: n.Span.End.Column},
		}
	}

	if n.Token != nil {
		jn.Token = n.Token.Literal
	}

	if n.Error != nil {
		jn.Error = &jsonError{
			Message:  n.Error.Message,
			Expected: n.Error.Expected,
			Got:      n.Error.Got,
		}
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = child.toJSON(positions)
		}
	}

	return jn
}
