// Package charclass compiles Vim's comma-separated character-option strings
// (the format used by 'isfname', 'isident', 'iskeyword' and 'isprint') into
// host regex character-class source.
//
// The compiler builds an intermediate set of code points in [1,255] by
// executing the option string's entries left to right, overlays a
// type-specific forcing pattern, then renders the result as a
// range-compressed \xNN class with an optional fixed Unicode tail spliced in
// by nesting.
package charclass

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Type selects the forcing pattern and Unicode tail applied after the
// user's entries are accumulated.
type Type int

const (
	// None applies no forcing pattern and no Unicode tail. Used for
	// collection named classes like [:alnum:] that have no Vim option
	// string behind them.
	None Type = iota
	// Isfname compiles an 'isfname'-style option string.
	Isfname
	// Isident compiles an 'isident'-style option string.
	Isident
	// Iskeyword compiles an 'iskeyword'-style option string.
	Iskeyword
	// Isprint compiles an 'isprint'-style option string.
	Isprint
)

// Error reports a malformed option string. Offset is the byte index of the
// offending entry within Source.
type Error struct {
	Source  string
	Offset  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d in %q", e.Message, e.Offset, e.Source)
}

func newErr(source string, offset int, message string) *Error {
	return &Error{Source: source, Offset: offset, Message: message}
}

// alphaRanges is the "alpha" set the '@' shorthand expands to.
var alphaRanges = [][2]int{
	{0x41, 0x5a}, {0x61, 0x7a}, {0xb5, 0xb5},
	{0xc0, 0xd6}, {0xd8, 0xf6}, {0xf8, 0xff},
}

// unicodeTails holds the fixed sub-expression spliced in, by nesting, after
// the user-derived class when a Unicode tail is requested.
var unicodeTails = map[Type]string{
	Isfname:   `[\xa0-\u{10ffff}]`,
	Isprint:   `[\xa0-\u{10ffff}]`,
	Iskeyword: `[[\p{L}\p{N}\p{Emoji}]--[\x00-\xff]]`,
	Isident:   "",
}

type codeSet struct {
	present [256]bool
}

func (c *codeSet) add(lo, hi int) {
	for i := lo; i <= hi; i++ {
		c.present[i] = true
	}
}

func (c *codeSet) remove(lo, hi int) {
	for i := lo; i <= hi; i++ {
		c.present[i] = false
	}
}

func (c *codeSet) apply(invert bool, lo, hi int) {
	if invert {
		c.remove(lo, hi)
	} else {
		c.add(lo, hi)
	}
}

// Compile compiles pattern (Vim option-string format) for the given type.
// includeUnicodeTail controls whether the fixed Unicode sub-expression is
// spliced in for Isfname/Iskeyword/Isprint (§4.B step 7); Isident never has
// one. The returned string is a complete, host-ready character class,
// e.g. "[\x30-\x39\x5f[[\p{L}\p{N}\p{Emoji}]--[\x00-\xff]]]".
func Compile(pattern string, typ Type, includeUnicodeTail bool) (string, error) {
	set, err := buildSet(pattern, typ, includeUnicodeTail)
	if err != nil {
		return "", err
	}
	return render(set, typ, includeUnicodeTail), nil
}

// CompileMinusDigits compiles pattern exactly as Compile does, then strips
// the ASCII digit codes 0x30-0x39 from the result. This is §4.C's \I, \K,
// \F and \P: the same option class as \i, \k, \f and \p with digits
// removed, not its set-complement.
func CompileMinusDigits(pattern string, typ Type, includeUnicodeTail bool) (string, error) {
	set, err := buildSet(pattern, typ, includeUnicodeTail)
	if err != nil {
		return "", err
	}
	set.remove(0x30, 0x39)
	return render(set, typ, includeUnicodeTail), nil
}

func buildSet(pattern string, typ Type, includeUnicodeTail bool) (*codeSet, error) {
	set := &codeSet{}

	entries, offsets, err := splitEntries(pattern)
	if err != nil {
		return nil, err
	}
	for i, raw := range entries {
		if raw == "" {
			continue
		}
		isLast := i == len(entries)-1
		if err := applyEntry(set, pattern, offsets[i], raw, isLast); err != nil {
			return nil, err
		}
	}

	applyForcingPattern(set, typ, includeUnicodeTail)
	return set, nil
}

func render(set *codeSet, typ Type, includeUnicodeTail bool) string {
	body := renderRanges(set)
	tail := ""
	if includeUnicodeTail {
		tail = unicodeTails[typ]
	}
	return "[" + body + tail + "]"
}

// applyForcingPattern implements §4.B step 4: the overlay applied after the
// user's own entries.
func applyForcingPattern(set *codeSet, typ Type, includeUnicodeTail bool) {
	switch typ {
	case Isfname:
		if includeUnicodeTail {
			set.remove(160, 255)
		}
	case Isident, Iskeyword:
		set.remove(128, 255)
	case Isprint:
		set.add(32, 126)
		if includeUnicodeTail {
			set.remove(160, 255)
		}
	case None:
	}
}

// renderRanges sorts the set and collapses runs of three or more consecutive
// codes into a \xNN-\xMM range; shorter runs are emitted code by code.
func renderRanges(set *codeSet) string {
	var codes []int
	for i := 1; i <= 255; i++ {
		if set.present[i] {
			codes = append(codes, i)
		}
	}
	sort.Ints(codes)

	var b strings.Builder
	for i := 0; i < len(codes); {
		j := i
		for j+1 < len(codes) && codes[j+1] == codes[j]+1 {
			j++
		}
		runLen := j - i + 1
		if runLen >= 3 {
			fmt.Fprintf(&b, `\x%02x-\x%02x`, codes[i], codes[j])
		} else {
			for k := i; k <= j; k++ {
				fmt.Fprintf(&b, `\x%02x`, codes[k])
			}
		}
		i = j + 1
	}
	return b.String()
}

// splitEntries splits pattern on commas per §4.B: spaces after a comma are
// trimmed, spaces before one are not, and two consecutive empty splits (a
// doubled comma) collapse into one literal-comma entry.
func splitEntries(pattern string) (entries []string, offsets []int, err error) {
	raw := strings.Split(pattern, ",")
	rawOffsets := make([]int, len(raw))
	pos := 0
	for i, r := range raw {
		rawOffsets[i] = pos
		pos += len(r) + 1 // +1 for the consumed comma
	}

	for i := 0; i < len(raw); i++ {
		tok := raw[i]
		if tok == "" && i+1 < len(raw) && raw[i+1] == "" {
			entries = append(entries, ",")
			offsets = append(offsets, rawOffsets[i])
			i++
			continue
		}
		trimmed := strings.TrimLeft(tok, " ")
		if trimmed == "" {
			continue
		}
		entries = append(entries, trimmed)
		offsets = append(offsets, rawOffsets[i]+(len(tok)-len(trimmed)))
	}
	return entries, offsets, nil
}

// applyEntry parses and applies one entry to set.
func applyEntry(set *codeSet, source string, offset int, raw string, isLast bool) error {
	if raw == "," {
		set.apply(false, ',', ',')
		return nil
	}
	if raw == "^-^" {
		set.apply(false, '^', '^')
		return nil
	}
	if raw == "^" {
		if isLast {
			set.apply(false, '^', '^')
			return nil
		}
		return newErr(source, offset, "Invalid keyword")
	}

	invert := false
	body := raw
	if len(body) > 0 && body[0] == '^' {
		invert = true
		body = body[1:]
	}

	if body == "@" {
		for _, r := range alphaRanges {
			set.apply(invert, r[0], r[1])
		}
		return nil
	}
	if body == "-" {
		set.apply(invert, '-', '-')
		return nil
	}

	isRange, loTok, hiTok := splitRange(body)
	if !isRange {
		code, err := resolveOperand(source, offset, loTok)
		if err != nil {
			return err
		}
		set.apply(invert, code, code)
		return nil
	}

	lo, err := resolveOperand(source, offset, loTok)
	if err != nil {
		return err
	}
	hi, err := resolveOperand(source, offset, hiTok)
	if err != nil {
		return err
	}
	if lo < 1 || hi > 255 || lo > hi {
		return newErr(source, offset, "Invalid code range")
	}
	set.apply(invert, lo, hi)
	return nil
}

// splitRange recognises N-N, N-C, C-N, C-C, and the literal-dash-at-an-end
// forms "--X" (left operand is '-') and "X--" (right operand is '-').
func splitRange(body string) (isRange bool, lo, hi string) {
	switch {
	case len(body) >= 2 && body[0] == '-' && body[1] == '-':
		return true, "-", body[2:]
	case len(body) >= 2 && body[len(body)-1] == '-' && body[len(body)-2] == '-':
		return true, body[:len(body)-2], "-"
	}
	if idx := strings.IndexByte(body, '-'); idx > 0 && idx < len(body)-1 {
		return true, body[:idx], body[idx+1:]
	}
	return false, body, ""
}

// resolveOperand turns a decimal-digits token into its integer value, or a
// single non-digit character into its code point, validating it falls in
// [1,255].
func resolveOperand(source string, offset int, tok string) (int, error) {
	if tok == "" {
		return 0, newErr(source, offset, "Invalid keyword")
	}
	if isAllDigits(tok) {
		n, err := strconv.Atoi(tok)
		if err != nil || n < 1 || n > 255 {
			return 0, newErr(source, offset, "Invalid code range")
		}
		return n, nil
	}
	runes := []rune(tok)
	if len(runes) != 1 || runes[0] > 255 {
		return 0, newErr(source, offset, "Invalid keyword")
	}
	return int(runes[0]), nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
