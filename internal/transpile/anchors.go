package transpile

import "github.com/coregx/vimregex/internal/charclass"

// keywordClassBody compiles the iskeyword option string (§4.B) down to its
// bracketed-class body, for splicing into the \< and \> word-boundary
// assertions: spec §4.C defines the boundary in terms of the iskeyword
// class, not the host's built-in \w.
func (c *compiler) keywordClassBody() (string, *Error) {
	compiled, err := charclass.Compile(c.opts.Iskeyword, charclass.Iskeyword, true)
	if err != nil {
		ce := err.(*charclass.Error)
		return "", invalidOptionString(ce.Source, ce.Offset, ce.Message)
	}
	return compiled[1 : len(compiled)-1], nil
}

// wordBoundaryStart/End build the \< / \> assertions against the iskeyword
// class: "not preceded by a keyword char, followed by one" / the reverse.
func (c *compiler) wordBoundaryStart() (string, *Error) {
	body, err := c.keywordClassBody()
	if err != nil {
		return "", err
	}
	return `(?<![` + body + `])(?=[` + body + `])`, nil
}

func (c *compiler) wordBoundaryEnd() (string, *Error) {
	body, err := c.keywordClassBody()
	if err != nil {
		return "", err
	}
	return `(?<=[` + body + `])(?![` + body + `])`, nil
}

// lineAnchorStart/End implement spec §4.C: under stringMatch the subject is
// a single line, so ^/$ anchor only to the absolute start/end; otherwise
// they also match at embedded newlines.
func (c *compiler) lineAnchorStart() string {
	if c.stringMatch {
		return `^`
	}
	return `(?:^|(?<=\n))`
}

func (c *compiler) lineAnchorEnd() string {
	if c.stringMatch {
		return `$`
	}
	return `(?:(?=\n)|$)`
}

// scanCaret handles both bare ^ and \^ — spec's position rule ("^ is an
// anchor only at the start of a branch") is not gated by magic level, so
// both forms reach here whenever either is encountered as a would-be
// anchor trigger.
func (c *compiler) scanCaret(consumed int) {
	c.beginAtom()
	var piece string
	if c.atBranchStart {
		piece = c.lineAnchorStart()
	} else {
		piece = `\x5e`
	}
	start := c.emit(piece)
	c.pos += consumed
	c.endAtom(start)
}

// scanDollar tentatively emits a $ line anchor and defers the literal/anchor
// decision until we see what follows (spec's "pending end-of-line index").
func (c *compiler) scanDollar(consumed int) {
	c.beginAtom()
	idx := c.emit(c.lineAnchorEnd())
	c.pos += consumed
	c.lastAtomStart = idx
	c.atBranchStart = false
	c.pendingEOLIndex = idx
}

// scanUnderscoreCaret / scanUnderscoreDollar implement \_^ and \_$: the same
// anchors, but valid (and always committed, never literal) at any position.
func (c *compiler) scanUnderscoreCaret(consumed int) {
	c.beginAtom()
	start := c.emit(c.lineAnchorStart())
	c.pos += consumed
	c.endAtom(start)
}

func (c *compiler) scanUnderscoreDollar(consumed int) {
	c.beginAtom()
	start := c.emit(c.lineAnchorEnd())
	c.pos += consumed
	c.endAtom(start)
}

// scanStringAnchorStart / End implement \%^ and \%$: absolute string
// boundaries, unaffected by stringMatch.
func (c *compiler) scanStringAnchorStart(consumed int) {
	c.beginAtom()
	start := c.emit(`^`)
	c.pos += consumed
	c.endAtom(start)
}

func (c *compiler) scanStringAnchorEnd(consumed int) {
	c.beginAtom()
	start := c.emit(`$`)
	c.pos += consumed
	c.endAtom(start)
}
