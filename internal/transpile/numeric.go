package transpile

import "fmt"

// impossibleClass is emitted in place of a numeric character reference whose
// value exceeds the Unicode maximum (spec §9: "the emitted class [] is an
// impossible-match sentinel rather than an error").
const impossibleClass = `[]`

// scanNumericRef parses the digits following one of d, o, x, u, U (src[pos]
// is that letter) and returns the resulting code point, the position just
// past the consumed digits, and whether anything was consumed at all.
func scanNumericRef(src string, pos int) (value int64, newPos int, ok bool) {
	letter := src[pos]
	pos++
	start := pos

	switch letter {
	case 'd':
		for pos < len(src) && isDigit(src[pos]) {
			pos++
		}
		if pos == start {
			return 0, pos, false
		}
		return parseBase(src[start:pos], 10), pos, true
	case 'o':
		for pos < len(src) && pos-start < 3 && isOctalDigit(src[pos]) {
			pos++
		}
		if pos == start {
			return 0, pos, false
		}
		return parseBase(src[start:pos], 8), pos, true
	case 'x':
		for pos < len(src) && pos-start < 2 && isHexDigit(src[pos]) {
			pos++
		}
		if pos == start {
			return 0, pos, false
		}
		return parseBase(src[start:pos], 16), pos, true
	case 'u':
		for pos < len(src) && pos-start < 4 && isHexDigit(src[pos]) {
			pos++
		}
		if pos == start {
			return 0, pos, false
		}
		return parseBase(src[start:pos], 16), pos, true
	case 'U':
		for pos < len(src) && pos-start < 8 && isHexDigit(src[pos]) {
			pos++
		}
		if pos == start {
			return 0, pos, false
		}
		return parseBase(src[start:pos], 16), pos, true
	}
	return 0, pos, false
}

// renderCodeRef turns a parsed code point into host source: \xNN for
// codes <=0xFF, \u{HEX} for larger ones, or the impossible-match sentinel
// once the value exceeds the Unicode maximum.
func renderCodeRef(value int64) string {
	if value > 0x10FFFF {
		return impossibleClass
	}
	if value <= 0xFF {
		return fmt.Sprintf(`\x%02x`, value)
	}
	return fmt.Sprintf(`\u{%x}`, value)
}

func isDigit(b byte) bool      { return b >= '0' && b <= '9' }
func isOctalDigit(b byte) bool { return b >= '0' && b <= '7' }
func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func parseBase(digits string, base int64) int64 {
	var v int64
	for i := 0; i < len(digits); i++ {
		v *= base
		v += int64(hexVal(digits[i]))
	}
	return v
}

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	}
	return 0
}
