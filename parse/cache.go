package parse

import (
	"fmt"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultBlockCacheSize = 512

// BlockCache remembers parsed lazy blocks by their token text, so an
// unchanged block is parsed once even if it moved. It is safe for
// concurrent use by parses running in different goroutines.
type BlockCache struct {
	blocks *lru.Cache[string, cachedBlock]
}

type cachedBlock struct {
	start Position
	tree  *Tree
}

func NewBlockCache(size int) (*BlockCache, error) {
	if size <= 0 {
		size = DefaultBlockCacheSize
	}
	blocks, err := lru.New[string, cachedBlock](size)
	if err != nil {
		return nil, fmt.Errorf("create block cache: %w", err)
	}
	return &BlockCache{blocks: blocks}, nil
}

func (c *BlockCache) Len() int {
	return c.blocks.Len()
}

func (c *BlockCache) Purge() {
	c.blocks.Purge()
}

func blockKey(lb *lazyBlock) string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(uint64(lb.flags), 16))
	for _, tok := range lb.tokens {
		sb.WriteByte(0)
		sb.WriteString(strconv.Itoa(int(tok.Kind)))
		sb.WriteByte(':')
		sb.WriteString(tok.Literal)
	}
	return sb.String()
}

func (c *BlockCache) get(lb *lazyBlock) (*Tree, bool) {
	if len(lb.tokens) == 0 {
		return nil, false
	}
	hit, ok := c.blocks.Get(blockKey(lb))
	if !ok {
		return nil, false
	}
	return hit.tree.moved(hit.start, lb.tokens[0].Span.Start), true
}

func (c *BlockCache) put(lb *lazyBlock, t *Tree) {
	if len(lb.tokens) == 0 {
		return
	}
	c.blocks.Add(blockKey(lb), cachedBlock{start: lb.tokens[0].Span.Start, tree: t})
}

// moved returns a copy of t as if its input had started at to instead of
// from. The receiver is not modified.
func (t *Tree) moved(from, to Position) *Tree {
	out := *t
	out.Root = t.Root.moved(from, to)
	out.Errors = make(ErrorList, len(t.Errors))
	for i, e := range t.Errors {
		out.Errors[i] = e.moved(from, to)
	}
	return &out
}

func (n *Node) moved(from, to Position) *Node {
	out := *n
	out.Span = Span{Start: shift(n.Span.Start, from, to), End: shift(n.Span.End, from, to)}
	if n.Token != nil {
		tok := *n.Token
		tok.Span = out.Span
		out.Token = &tok
	}
	if n.Error != nil {
		out.Error = n.Error.moved(from, to)
	}
	if n.lazy != nil && from != to {
		lb := *n.lazy
		lb.tokens = make([]Token, len(n.lazy.tokens))
		for i, tok := range n.lazy.tokens {
			tok.Span = Span{Start: shift(tok.Span.Start, from, to), End: shift(tok.Span.End, from, to)}
			lb.tokens[i] = tok
		}
		out.lazy = &lb
	}
	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.moved(from, to)
		}
	}
	return &out
}

func (e *Error) moved(from, to Position) *Error {
	out := *e
	out.Pos = shift(e.Pos, from, to)
	return &out
}

func shift(pos, from, to Position) Position {
	out := pos
	out.File = to.File
	out.Offset += to.Offset - from.Offset
	if pos.Line == from.Line {
		out.Column += to.Column - from.Column
	}
	out.Line += to.Line - from.Line
	return out
}
