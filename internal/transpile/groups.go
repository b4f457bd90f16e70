package transpile

import (
	"strconv"
	"strings"
)

// openGroup opens a capturing "(" or non-capturing "(?:" group, consumed
// bytes long in the source ("(" is 1, "\(" is 2, "\%(" is 3).
func (c *compiler) openGroup(capturing bool, consumed int) {
	c.beginAtom()
	frame := groupFrame{
		savedConcatStart:   c.concatStart,
		savedLastAtomStart: c.lastAtomStart,
		savedAtBranchStart: c.atBranchStart,
	}
	piece := "(?:"
	if capturing {
		piece = "("
		c.nextGroup++
	}
	frame.openIdx = c.emit(piece)
	c.pos += consumed
	c.groupStack = append(c.groupStack, frame)
	c.concatStart = len(c.buf)
	c.lastAtomStart = -1
	c.atBranchStart = true
}

// closeGroup closes the innermost open group.
func (c *compiler) closeGroup(consumed int) *Error {
	if len(c.groupStack) == 0 {
		return invalidPattern(c.src, c.pos, "Unmatched closing group")
	}
	c.closeBranch()
	frame := c.groupStack[len(c.groupStack)-1]
	c.groupStack = c.groupStack[:len(c.groupStack)-1]

	c.emit(")")
	c.pos += consumed

	c.concatStart = frame.savedConcatStart
	c.atBranchStart = frame.savedAtBranchStart
	c.lastAtomStart = frame.openIdx
	return nil
}

// quantifierGreedy emits a simple postfix quantifier (*, +, ?) applying to
// the immediately preceding atom. Standard regex grouping rules mean no
// explicit wrapping is needed: the host parses the quantifier against
// whatever single atom (character, class, or group) immediately precedes
// it in the emitted text.
func (c *compiler) quantifierGreedy(token string, consumed int) *Error {
	if c.lastAtomStart == -1 {
		return invalidPattern(c.src, c.pos, "Nothing to repeat")
	}
	c.emit(token)
	c.pos += consumed
	return nil
}

// scanBrace parses a bound quantifier: c.pos is positioned at the opening
// brace token, openLen bytes long ("{" is 1, "\{" is 2).
func (c *compiler) scanBrace(openLen int) *Error {
	if c.lastAtomStart == -1 {
		return invalidPattern(c.src, c.pos, "Nothing to repeat")
	}
	start := c.pos
	c.pos += openLen

	lazy := false
	if c.pos < len(c.src) && c.src[c.pos] == '-' {
		lazy = true
		c.pos++
	}

	minStart := c.pos
	for c.pos < len(c.src) && isDigit(c.src[c.pos]) {
		c.pos++
	}
	minStr := c.src[minStart:c.pos]

	hasComma := false
	maxStr := ""
	if c.pos < len(c.src) && c.src[c.pos] == ',' {
		hasComma = true
		c.pos++
		maxStart := c.pos
		for c.pos < len(c.src) && isDigit(c.src[c.pos]) {
			c.pos++
		}
		maxStr = c.src[maxStart:c.pos]
	}

	closed := false
	if c.pos < len(c.src) {
		if c.src[c.pos] == '}' {
			c.pos++
			closed = true
		} else if c.src[c.pos] == '\\' && c.pos+1 < len(c.src) && c.src[c.pos+1] == '}' {
			c.pos += 2
			closed = true
		}
	}
	if !closed {
		return invalidPattern(c.src, start, "Incomplete quantifier")
	}

	c.emit(renderBrace(minStr, maxStr, hasComma, lazy))
	return nil
}

func renderBrace(minStr, maxStr string, hasComma, lazy bool) string {
	var body string
	switch {
	case minStr == "" && !hasComma:
		body = "0,"
	case !hasComma:
		body = minStr
	default:
		min := minStr
		if min == "" {
			min = "0"
		}
		if min != "" && maxStr != "" {
			minN, _ := strconv.Atoi(min)
			maxN, _ := strconv.Atoi(maxStr)
			if minN > maxN {
				min = maxStr
			}
		}
		if maxStr == "" {
			body = min + ","
		} else {
			body = min + "," + maxStr
		}
	}
	q := "{" + body + "}"
	if lazy {
		q += "?"
	}
	return q
}

// scanAlternation handles \| (consumed==2) and bare | at very-magic
// (consumed==1).
func (c *compiler) scanAlternation(consumed int) {
	c.closeBranch()
	c.emit("|")
	c.pos += consumed
	c.concatStart = len(c.buf)
	c.lastAtomStart = -1
	c.atBranchStart = true
}

// scanConcatAmp handles \& and bare &: it retroactively wraps the segment
// since the current concat-start in a positive lookahead, implementing
// Vim's "both sides must match at the same position" semantics.
func (c *compiler) scanConcatAmp(consumed int) {
	c.closeBranch()
	segment := c.buf[c.concatStart:]
	joined := strings.Join(segment, "")
	c.buf = c.buf[:c.concatStart]
	c.buf = append(c.buf, "(?="+joined+")")
	c.pos += consumed
	c.concatStart = len(c.buf)
	c.lastAtomStart = -1
	c.atBranchStart = true
}

// wrapLookaround rewraps the most recently completed atom in a lookaround
// assertion, for \@= \@! \@<= \@<!.
func (c *compiler) wrapLookaround(prefix string) *Error {
	if c.lastAtomStart == -1 {
		return invalidPattern(c.src, c.pos, "Nothing to repeat")
	}
	segment := c.buf[c.lastAtomStart:]
	joined := strings.Join(segment, "")
	c.buf = c.buf[:c.lastAtomStart]
	idx := c.emit(prefix + joined + ")")
	c.lastAtomStart = idx
	return nil
}
