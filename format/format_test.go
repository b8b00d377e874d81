package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/dhamidi/gparse/groovy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticEncoder(t *testing.T) {
	src := []byte("def ok = 1\nprintln(1, , 2)\n")
	tree := groovy.ParseFile("build.groovy", src)
	require.Len(t, tree.Errors, 1)

	var buf bytes.Buffer
	require.NoError(t, NewDiagnosticEncoder(&buf, src).Encode(tree))
	want := "build.groovy:2:12: <argument> expected, got ','\n" +
		"   2 | println(1, , 2)\n" +
		"     |            ^\n"
	assert.Equal(t, want, buf.String())
}

func TestCaretIndent(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		column int
		want   string
	}{
		{"first column", "x", 1, ""},
		{"ascii", "abc", 3, "  "},
		{"wide characters", "日本 x", 8, "     "},
		{"tab", "\tx", 2, "\t"},
		{"past end of line", "ab", 10, "  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, caretIndent(tt.line, tt.column))
		})
	}
}

func TestJSONEncoder(t *testing.T) {
	tree := groovy.ParseFile("test.groovy", []byte("yield 1\nx = 1"))

	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf, false).Encode(tree))

	var doc struct {
		Root struct {
			Kind     string           `json:"kind"`
			Span     *json.RawMessage `json:"span"`
			Children []struct {
				Kind string `json:"kind"`
			} `json:"children"`
		} `json:"root"`
		Errors []struct {
			Line    int    `json:"line"`
			Column  int    `json:"column"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "File", doc.Root.Kind)
	assert.Nil(t, doc.Root.Span)
	var kinds []string
	for _, c := range doc.Root.Children {
		kinds = append(kinds, c.Kind)
	}
	assert.Contains(t, kinds, "AssignmentExpression")
	require.Len(t, doc.Errors, 1)
	assert.Equal(t, 1, doc.Errors[0].Line)
	assert.Equal(t, "<statement> expected, got 'yield'", doc.Errors[0].Message)
}

func TestLineEncoder(t *testing.T) {
	tree := groovy.ParseFile("test.groovy", []byte("yield 1\na"))

	var buf bytes.Buffer
	require.NoError(t, NewLineEncoder(&buf).Encode(tree))
	out := buf.String()

	assert.Contains(t, out, "  ReferenceExpression\t2:1-2:2\n")
	assert.Contains(t, out, "    identifier\t2:1-2:2\ta\n")
	assert.Contains(t, out, "  new line\t1:8-2:1\t\\n\n")
	assert.Contains(t, out, "error\ttest.groovy:1:1\t<statement> expected, got 'yield'\n")
}
