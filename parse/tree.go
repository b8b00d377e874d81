package parse

// Tree is the result of a parse. Root spans the whole input.
type Tree struct {
	Root   *Node
	Errors ErrorList
	Stats  Stats

	lang  *Language
	opts  []Option
	cache *BlockCache
}

func (t *Tree) Language() *Language {
	return t.lang
}

// Expand parses the lazy block n in place and returns the errors found
// inside it. Those errors are also merged into t.Errors. Nodes that are
// not lazy are left alone.
func (t *Tree) Expand(n *Node) ErrorList {
	if n.lazy == nil {
		return nil
	}
	sub := t.parseBlock(n.lazy)
	n.lazy = nil
	children := sub.Root.Children
	if len(children) == 1 && children[0].Kind == n.Kind {
		children = children[0].Children
	}
	n.Children = children
	if len(sub.Errors) > 0 {
		all := append(append([]*Error{}, t.Errors...), sub.Errors...)
		t.Errors = sortErrors(all)
	}
	return sub.Errors
}

// ExpandAll expands every lazy block, including blocks nested in blocks.
func (t *Tree) ExpandAll() {
	t.Root.Walk(func(n *Node) bool {
		if n.IsLazy() {
			t.Expand(n)
		}
		return true
	})
}

func (t *Tree) parseBlock(lb *lazyBlock) *Tree {
	if t.cache != nil {
		if sub, ok := t.cache.get(lb); ok {
			return sub
		}
	}
	sub := parseRegion(t.lang, lb.tokens, lb.rule, lb.flags, t.opts...)
	if t.cache != nil && len(lb.tokens) > 0 {
		t.cache.put(lb, sub)
		// The cached tree must stay untouched by later expansions.
		start := lb.tokens[0].Span.Start
		return sub.moved(start, start)
	}
	return sub
}

// ParseBlock parses tokens with rule in isolation. It is the entry point
// for re-parsing one block, such as a function body, after an edit that
// did not touch its surroundings. The returned Root has kind KindNone and
// holds whatever rule produced.
func ParseBlock(lang *Language, tokens []Token, rule Rule, opts ...Option) *Tree {
	return parseRegion(lang, tokens, rule, 0, opts...)
}

func parseRegion(lang *Language, tokens []Token, rule Rule, flags Flag, opts ...Option) *Tree {
	p := newParser(lang, tokens, opts...)
	p.flags = flags
	m := p.Mark()
	rule(p)
	p.finishInput()
	m.Done(KindNone)
	return p.finish()
}

func sortErrors(errs []*Error) ErrorList {
	root := &Node{}
	return collectErrors(root, errs)
}
