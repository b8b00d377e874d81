package parse

import (
	"github.com/hashicorp/go-set/v3"
)

type guardKey struct {
	rule  string
	pos   int
	flags Flag
}

// guard tracks the rules that are currently active. A rule may not be
// re-entered at the same position under the same flags: with no input
// consumed in between, the second activation could only repeat the first.
type guard struct {
	active   *set.Set[guardKey]
	depth    int
	exceeded bool
}

func newGuard() guard {
	return guard{active: set.New[guardKey](64)}
}

// enter activates rule at the cursor. It returns false when the rule is
// already active here or the depth bound is reached; the caller must then
// fail without calling leave.
func (p *Parser) enter(rule string) bool {
	if p.guard.depth >= p.maxDepth {
		p.stats.DepthLimitHits++
		if !p.guard.exceeded {
			p.guard.exceeded = true
			tok := p.Peek(0)
			p.log.Warningf("%s: maximum nesting depth %d exceeded in %s", tok.Span.Start, p.maxDepth, rule)
			p.extra = append(p.extra, &Error{
				Pos:     tok.Span.Start,
				Message: "maximum nesting depth exceeded",
				Got:     p.describe(tok),
			})
		}
		return false
	}
	key := guardKey{rule: rule, pos: p.pos, flags: p.flags}
	if !p.guard.active.Insert(key) {
		p.stats.GuardRejections++
		return false
	}
	p.guard.depth++
	if p.guard.depth > p.stats.DeepestNesting {
		p.stats.DeepestNesting = p.guard.depth
	}
	return true
}

// leave deactivates the rule entered at pos under flags.
func (p *Parser) leave(rule string, pos int, flags Flag) {
	p.guard.active.Remove(guardKey{rule: rule, pos: pos, flags: flags})
	p.guard.depth--
}

// guarded runs fn as rule with re-entry and depth protection. The guard is
// released on every exit path, including panics from fn.
func (p *Parser) guarded(rule string, fn func() bool) bool {
	pos, flags := p.pos, p.flags
	if !p.enter(rule) {
		return false
	}
	defer p.leave(rule, pos, flags)
	return fn()
}
