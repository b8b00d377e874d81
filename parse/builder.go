package parse

type eventKind uint8

const (
	evTombstone eventKind = iota
	evOpen
	evClose
	evToken
	evError
)

type event struct {
	kind     eventKind
	node     NodeKind
	token    int
	forward  int
	preceded bool
	consumed bool
	err      *Error
	lazy     *lazyBlock
}

// link records a Precede so a rollback past the new marker can clear the
// forward pointer it installed.
type link struct {
	from int
	to   int
}

// Marker is an open node. It must be finished exactly once with Done,
// Collapse, Drop or Rollback.
type Marker struct {
	p         *Parser
	index     int
	pos       int
	lastError int
	unclosed  bool
}

// Completed is a finished node that can still be wrapped by a new parent.
type Completed struct {
	p     *Parser
	index int
}

func (p *Parser) Mark() Marker {
	idx := len(p.events)
	p.events = append(p.events, event{kind: evTombstone})
	return Marker{p: p, index: idx, pos: p.pos, lastError: p.lastError, unclosed: p.unclosed}
}

func (m Marker) Done(kind NodeKind) Completed {
	ev := &m.p.events[m.index]
	ev.kind = evOpen
	ev.node = kind
	m.p.events = append(m.p.events, event{kind: evClose})
	return Completed{p: m.p, index: m.index}
}

func (m Marker) doneError(err *Error) Completed {
	c := m.Done(KindError)
	m.p.events[m.index].err = err
	return c
}

// Collapse completes the marker unless the node would be empty or would
// wrap exactly one child node, in which case the marker is dropped.
func (m Marker) Collapse(kind NodeKind) {
	if m.p.directChildren(m.index) {
		m.Done(kind)
		return
	}
	m.Drop()
}

// directChildren reports whether the region after index holds more than a
// single node or any token at its top level.
func (p *Parser) directChildren(index int) bool {
	depth, nodes := 0, 0
	for i := index + 1; i < len(p.events); i++ {
		ev := &p.events[i]
		switch ev.kind {
		case evOpen:
			if depth == 0 && !ev.preceded {
				nodes++
			}
			depth++
		case evClose:
			depth--
		case evToken:
			if depth == 0 {
				return true
			}
		case evError:
			if depth == 0 {
				nodes++
			}
		}
		if nodes > 1 {
			return true
		}
	}
	return false
}

// Drop discards the node but keeps everything parsed inside it; the
// children end up in the enclosing node.
func (m Marker) Drop() {
	ev := &m.p.events[m.index]
	ev.kind = evTombstone
	if m.index == len(m.p.events)-1 && !ev.preceded {
		m.p.truncate(m.index)
	}
}

// Rollback discards the node, the events recorded since Mark and moves
// the cursor back.
func (m Marker) Rollback() {
	m.p.truncate(m.index)
	m.p.pos = m.pos
	m.p.lastError = m.lastError
	m.p.unclosed = m.unclosed
	m.p.stats.Rollbacks++
}

func (m Marker) Pos() int {
	return m.pos
}

// Precede opens a new marker that will become the parent of c.
func (c Completed) Precede() Marker {
	m := c.p.Mark()
	c.p.events[m.index].preceded = true
	c.p.events[c.index].forward = m.index - c.index
	c.p.links = append(c.p.links, link{from: c.index, to: m.index})
	return m
}

func (p *Parser) truncate(n int) {
	p.events = p.events[:n]
	for len(p.links) > 0 {
		l := p.links[len(p.links)-1]
		if l.to < n {
			break
		}
		if l.from < n {
			p.events[l.from].forward = 0
		}
		p.links = p.links[:len(p.links)-1]
	}
}

// build turns the event arena into a node tree.
func (p *Parser) build() *Node {
	var stack []*Node
	var root *Node
	var chain []int

	for i := range p.events {
		ev := &p.events[i]
		switch ev.kind {
		case evOpen:
			if ev.consumed {
				continue
			}
			chain = append(chain[:0], i)
			for j := i; p.events[j].forward != 0; {
				j += p.events[j].forward
				p.events[j].consumed = true
				if p.events[j].kind == evOpen {
					chain = append(chain, j)
				}
			}
			for k := len(chain) - 1; k >= 0; k-- {
				src := &p.events[chain[k]]
				stack = append(stack, &Node{Kind: src.node, Error: src.err, lazy: src.lazy, lang: p.lang})
			}
		case evClose:
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			p.finishSpan(n, i)
			if len(stack) == 0 {
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
		case evToken:
			tok := p.tokens[ev.token]
			leaf := &Node{Kind: KindToken, Span: tok.Span, Token: &tok, lang: p.lang}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, leaf)
			}
		case evError:
			leaf := &Node{Kind: KindError, Span: Span{Start: ev.err.Pos, End: ev.err.Pos}, Error: ev.err, lang: p.lang, empty: true}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, leaf)
			}
		}
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		p.finishSpan(n, len(p.events))
		if len(stack) == 0 {
			root = n
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, n)
		}
	}
	if root == nil {
		eof := p.tokens[len(p.tokens)-1]
		root = &Node{Kind: p.lang.Root, Span: eof.Span, lang: p.lang}
	}
	return root
}

// finishSpan sets n's span from its first and last token-bearing children.
// Nodes without tokens get an empty span at the next token.
func (p *Parser) finishSpan(n *Node, at int) {
	first, last := -1, -1
	for i, c := range n.Children {
		if c.hasTokens() {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	n.empty = first < 0
	if first >= 0 {
		n.Span = Span{Start: n.Children[first].Span.Start, End: n.Children[last].Span.End}
		return
	}
	pos := p.nextTokenStart(at)
	n.Span = Span{Start: pos, End: pos}
}

func (p *Parser) nextTokenStart(event int) Position {
	for i := event; i < len(p.events); i++ {
		if p.events[i].kind == evToken {
			return p.tokens[p.events[i].token].Span.Start
		}
	}
	return p.tokens[len(p.tokens)-1].Span.Start
}
