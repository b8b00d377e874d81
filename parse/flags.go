package parse

// Flag is a bit in the parser's context word. Flags are scoped: With sets
// or clears a flag for the duration of one rule and restores the previous
// word afterwards.
type Flag uint32

const (
	// NewlinesIgnored makes the cursor skip the language's newline tokens.
	NewlinesIgnored Flag = 1 << iota

	// FirstUserFlag is the lowest bit a grammar may use for its own flags.
	FirstUserFlag Flag = 1 << 8
)

func (p *Parser) Is(flag Flag) bool {
	return p.flags&flag != 0
}

func (p *Parser) Flags() Flag {
	return p.flags
}

// With runs inner with flag set (on) or cleared (off).
func With(flag Flag, on bool, inner Rule) Rule {
	return func(p *Parser) bool {
		saved := p.flags
		defer func() { p.flags = saved }()
		if on {
			p.flags |= flag
		} else {
			p.flags &^= flag
		}
		return inner(p)
	}
}

// If runs r only when flag is set and fails otherwise.
func If(flag Flag, r Rule) Rule {
	return func(p *Parser) bool {
		return p.Is(flag) && r(p)
	}
}

// Unless runs r only when flag is clear and fails otherwise.
func Unless(flag Flag, r Rule) Rule {
	return func(p *Parser) bool {
		return !p.Is(flag) && r(p)
	}
}
