package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/gparse/parse"
)

// JSONEncoder writes a tree and its errors as one indented JSON document.
type JSONEncoder struct {
	w         io.Writer
	positions bool
}

func NewJSONEncoder(w io.Writer, positions bool) *JSONEncoder {
	return &JSONEncoder{w: w, positions: positions}
}

func (e *JSONEncoder) Encode(tree *parse.Tree) error {
	text, err := e.MarshalTree(tree)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalTree(tree *parse.Tree) ([]byte, error) {
	return json.MarshalIndent(treeToJSON(tree, e.positions), "", "  ")
}

type jsonTree struct {
	Root   any         `json:"root"`
	Errors []jsonError `json:"errors"`
	Stats  jsonStats   `json:"stats"`
}

type jsonError struct {
	File     string   `json:"file,omitempty"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Message  string   `json:"message"`
	Expected []string `json:"expected,omitempty"`
	Got      string   `json:"got,omitempty"`
}

type jsonStats struct {
	Tokens    int `json:"tokens"`
	Rollbacks int `json:"rollbacks"`
	Depth     int `json:"depth"`
}

func treeToJSON(tree *parse.Tree, positions bool) *jsonTree {
	jt := &jsonTree{
		Root:   tree.Root.JSON(positions),
		Errors: make([]jsonError, 0, len(tree.Errors)),
		Stats: jsonStats{
			Tokens:    tree.Stats.Tokens,
			Rollbacks: tree.Stats.Rollbacks,
			Depth:     tree.Stats.DeepestNesting,
		},
	}
	for _, err := range tree.Errors {
		jt.Errors = append(jt.Errors, jsonError{
			File:     err.Pos.File,
			Line:     err.Pos.Line,
			Column:   err.Pos.Column,
			Message:  err.Message,
			Expected: err.Expected,
			Got:      err.Got,
		})
	}
	return jt
}
