package transpile

import (
	"fmt"

	"github.com/coregx/vimregex/internal/charclass"
)

// scanEscaped dispatches every backslash-introduced construct: mode and
// ignorecase switches, the magic-toggle set's escaped forms, anchors,
// grouping, quantifiers, alternation/concat, lookaround, backreferences, the
// fixed and option-backed character-class letters, literal control escapes,
// numeric character references (via \%d etc.), and the \_  and \z prefixes.
// c.pos is positioned at the backslash; c.pos+1 is known to be in range.
func (c *compiler) scanEscaped() *Error {
	next := c.src[c.pos+1]

	switch next {
	case 'v', 'm', 'M', 'V':
		level, _ := applyModeSwitch(next)
		c.level = level
		c.pos += 2
		return nil
	case 'c':
		ic := true
		c.icOverride = &ic
		c.pos += 2
		return nil
	case 'C':
		ic := false
		c.icOverride = &ic
		c.pos += 2
		return nil
	case '%':
		return c.scanPercentConstruct()
	case 'z':
		return c.scanZConstruct()
	case '_':
		return c.scanUnderscoreConstruct()
	case '^':
		c.scanCaret(2)
		return nil
	case '$':
		c.scanDollar(2)
		return nil
	case '@':
		return c.scanLookaround()
	case '.', '*', '[', '~', '(', ')', '+', '=', '?', '{', '|', '&', '<', '>':
		if escapedIsMeta(c.level, next) {
			return c.applyMetaToggle(next, 2)
		}
		return c.literalEscapedRune()
	case 'e':
		return c.literalControl('\x1b')
	case 't':
		return c.literalControl('\t')
	case 'r':
		return c.literalControl('\r')
	case 'b':
		return c.literalControl('\b')
	case 'n':
		c.beginAtom()
		start := c.emit(`\n`)
		c.pos += 2
		c.endAtom(start)
		// §4.C lists "immediately after \n" as a branch-start position, so a
		// following ^ must still anchor rather than be treated as literal.
		c.atBranchStart = true
		c.lastAtomStart = -1
		return nil
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return c.scanBackreference()
	case 'i', 'I', 'k', 'K', 'f', 'F', 'p', 'P':
		return c.scanOptionClass(next, false, 2)
	case 's', 'S', 'd', 'D', 'x', 'X', 'o', 'O', 'w', 'W', 'h', 'H', 'a', 'A', 'l', 'L', 'u', 'U':
		return c.scanFixedClass(next, false, 2)
	case 'Z':
		return unsupportedFeature(c.src, c.pos, `\Z`)
	}

	return c.literalEscapedRune()
}

// applyMetaToggle performs the metacharacter action for a toggle-set symbol
// reached via its escaped form (escapedIsMeta already confirmed true),
// consumed bytes long (always 2: backslash plus the symbol).
func (c *compiler) applyMetaToggle(sym byte, consumed int) *Error {
	switch sym {
	case '.':
		c.beginAtom()
		start := c.emit(`[^\n]`)
		c.pos += consumed
		c.endAtom(start)
		return nil
	case '*':
		return c.quantifierGreedy("*", consumed)
	case '[':
		c.pos++
		return c.scanCollection(false)
	case '~':
		return unsupportedFeature(c.src, c.pos, `~`)
	case '(':
		c.openGroup(true, consumed)
		return nil
	case ')':
		return c.closeGroup(consumed)
	case '+':
		return c.quantifierGreedy("+", consumed)
	case '=', '?':
		return c.quantifierGreedy("?", consumed)
	case '{':
		return c.scanBrace(consumed)
	case '|':
		c.scanAlternation(consumed)
		return nil
	case '&':
		c.scanConcatAmp(consumed)
		return nil
	case '<':
		piece, err := c.wordBoundaryStart()
		if err != nil {
			return err
		}
		c.beginAtom()
		start := c.emit(piece)
		c.pos += consumed
		c.endAtom(start)
		return nil
	case '>':
		piece, err := c.wordBoundaryEnd()
		if err != nil {
			return err
		}
		c.beginAtom()
		start := c.emit(piece)
		c.pos += consumed
		c.endAtom(start)
		return nil
	}
	return invalidPattern(c.src, c.pos, "Invalid escape")
}

// literalEscapedRune handles a backslash before a rune with no special
// meaning of its own: Vim treats it as that rune, literally.
func (c *compiler) literalEscapedRune() *Error {
	c.beginAtom()
	r, size := decodeRune(c.src, c.pos+1)
	start := c.emit(escapeLiteralRune(r))
	c.pos += 1 + size
	c.endAtom(start)
	return nil
}

// literalControl emits a literal control character via its \xNN escape.
func (c *compiler) literalControl(r rune) *Error {
	c.beginAtom()
	start := c.emit(fmt.Sprintf(`\x%02x`, r))
	c.pos += 2
	c.endAtom(start)
	return nil
}

// scanBackreference handles \1 through \9. Vim backreferences are always a
// single digit, so "\10" is simply "\1" (this backreference) followed by a
// literal "0" scanned on the next step.
func (c *compiler) scanBackreference() *Error {
	n := int(c.src[c.pos+1] - '0')
	if n == 0 || n >= c.nextGroup {
		return invalidPattern(c.src, c.pos, "Invalid backreference")
	}
	c.beginAtom()
	start := c.emit(fmt.Sprintf(`\%d`, n))
	c.pos += 2
	c.endAtom(start)
	return nil
}

// scanFixedClass handles the \s\S\d\D\x\X\o\O\w\W\h\H\a\A\l\L\u\U table,
// including the \_-prefixed newline-inclusive variants.
func (c *compiler) scanFixedClass(letter byte, withNL bool, consumed int) *Error {
	negated := isUpperClassLetter(letter)
	lower := lowerByte(letter)
	text, ok := lookupFixedClass(lower, negated, withNL)
	if !ok {
		return invalidPattern(c.src, c.pos, "Invalid class escape")
	}
	c.beginAtom()
	start := c.emit(text)
	c.pos += consumed
	c.endAtom(start)
	return nil
}

// scanOptionClass handles \i\I\k\K\f\F\p\P, the option-backed classes, and
// their \_-prefixed newline-inclusive variants. The upper-case letters are
// not a set-complement of their lower-case partner: §4.C defines them as
// the same option class with the digit codes 0x30-0x39 removed.
func (c *compiler) scanOptionClass(letter byte, withNL bool, consumed int) *Error {
	minusDigits := isUpperClassLetter(letter)
	var optString string
	var typ charclass.Type
	switch optionClassLetters[letter] {
	case 'i':
		optString, typ = c.opts.Isident, charclass.Isident
	case 'k':
		optString, typ = c.opts.Iskeyword, charclass.Iskeyword
	case 'f':
		optString, typ = c.opts.Isfname, charclass.Isfname
	case 'p':
		optString, typ = c.opts.Isprint, charclass.Isprint
	}
	var compiled string
	var err error
	if minusDigits {
		compiled, err = charclass.CompileMinusDigits(optString, typ, true)
	} else {
		compiled, err = charclass.Compile(optString, typ, true)
	}
	if err != nil {
		ce := err.(*charclass.Error)
		return invalidOptionString(ce.Source, ce.Offset, ce.Message)
	}
	text := classWithNL(compiled, withNL)
	c.beginAtom()
	start := c.emit(text)
	c.pos += consumed
	c.endAtom(start)
	return nil
}

// classWithNL folds \_-style newline inclusion into an already-compiled
// bracketed class.
func classWithNL(compiled string, withNL bool) string {
	body := compiled[1 : len(compiled)-1]
	switch {
	case withNL:
		return "[" + body + `\n]`
	default:
		return "[" + body + "]"
	}
}

func lowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func isFixedClassLetter(lower byte) bool {
	_, ok := fixedClasses[lower]
	return ok
}

// scanUnderscoreConstruct handles every \_X form: \_^, \_$, \_., \_[...],
// and the \_-prefixed fixed/option character classes.
func (c *compiler) scanUnderscoreConstruct() *Error {
	if c.pos+2 >= len(c.src) {
		return invalidPattern(c.src, c.pos, "Invalid \\_ construct")
	}
	third := c.src[c.pos+2]
	switch third {
	case '^':
		c.scanUnderscoreCaret(3)
		return nil
	case '$':
		c.scanUnderscoreDollar(3)
		return nil
	case '.':
		c.beginAtom()
		start := c.emit(`(?s:.)`)
		c.pos += 3
		c.endAtom(start)
		return nil
	case '[':
		c.pos += 2
		return c.scanCollection(true)
	}
	if isFixedClassLetter(lowerByte(third)) {
		return c.scanFixedClass(third, true, 3)
	}
	if _, ok := optionClassLetters[third]; ok {
		return c.scanOptionClass(third, true, 3)
	}
	return unsupportedFeature(c.src, c.pos, `\_`+string(third))
}

// scanZConstruct rejects the \z family: \zs, \ze, \z(...\), \z1-\z9 — all
// explicitly out of scope (spec's Non-goals list sub-match markers).
func (c *compiler) scanZConstruct() *Error {
	if c.pos+2 >= len(c.src) {
		return invalidPattern(c.src, c.pos, "Invalid \\z construct")
	}
	third := c.src[c.pos+2]
	switch {
	case third == 's':
		return unsupportedFeature(c.src, c.pos, `\zs`)
	case third == 'e':
		return unsupportedFeature(c.src, c.pos, `\ze`)
	case third == '(':
		return unsupportedFeature(c.src, c.pos, `\z(`)
	case third >= '1' && third <= '9':
		return unsupportedFeature(c.src, c.pos, `\z`+string(third))
	}
	return invalidPattern(c.src, c.pos, "Invalid \\z construct")
}

// scanLookaround handles \@= \@! \@<= \@<! (wrapping the preceding atom),
// and the \@123<=/\@123<! limited-lookbehind forms: Vim's byte-count limit on
// how far back the lookbehind may search, which this module ignores per
// spec §4.C/§9 and translates as an ordinary unbounded lookbehind. \@> is
// rejected; it has no RE2-compatible translation.
func (c *compiler) scanLookaround() *Error {
	i := c.pos + 2
	if i >= len(c.src) {
		return invalidPattern(c.src, c.pos, "Invalid lookaround")
	}
	if isDigit(c.src[i]) {
		for i < len(c.src) && isDigit(c.src[i]) {
			i++
		}
		if i >= len(c.src) || c.src[i] != '<' {
			return invalidPattern(c.src, c.pos, "Invalid lookaround")
		}
	}
	switch c.src[i] {
	case '=':
		if err := c.wrapLookaround("(?="); err != nil {
			return err
		}
		c.pos = i + 1
		return nil
	case '!':
		if err := c.wrapLookaround("(?!"); err != nil {
			return err
		}
		c.pos = i + 1
		return nil
	case '>':
		return unsupportedFeature(c.src, c.pos, `\@>`)
	case '<':
		if i+1 < len(c.src) {
			switch c.src[i+1] {
			case '=':
				if err := c.wrapLookaround("(?<="); err != nil {
					return err
				}
				c.pos = i + 2
				return nil
			case '!':
				if err := c.wrapLookaround("(?<!"); err != nil {
					return err
				}
				c.pos = i + 2
				return nil
			}
		}
		return invalidPattern(c.src, c.pos, "Invalid lookaround")
	}
	return invalidPattern(c.src, c.pos, "Invalid lookaround")
}
