// Package format renders parse trees and syntax errors for people and
// tools.
package format

import "github.com/dhamidi/gparse/parse"

type Encoder interface {
	Encode(tree *parse.Tree) error
}
