package transpile

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/coregx/vimregex/internal/charclass"
)

// reservedSetOpChars are host-engine set-operator reserved characters: a
// literal occurrence of any of these inside a collection must be emitted as
// its \xNN escape to stay literal under v-mode (spec §4.C).
const reservedSetOpChars = "!#$%&()*+,./:;<=>?@[]^\\`{|}~-"

func isReservedSetOpChar(b byte) bool {
	return strings.IndexByte(reservedSetOpChars, b) >= 0
}

func escapeIfReserved(r rune) string {
	if r <= 0x7f && isReservedSetOpChar(byte(r)) {
		return fmt.Sprintf(`\x%02x`, r)
	}
	return string(r)
}

func isNumericRefLetter(b byte) bool {
	switch b {
	case 'd', 'o', 'x', 'u', 'U':
		return true
	}
	return false
}

// optionStrings bundles the four Vim option strings a collection's named
// classes may need to resolve via the character-class compiler.
type optionStrings struct {
	Isfname, Isident, Iskeyword, Isprint string
}

// collectionHasClose does the cheap existence check spec §4.C requires
// before committing to parse a collection: "[" is literal unless a real
// closing "]" exists somewhere later.
func collectionHasClose(src string, openPos int) bool {
	i := openPos + 1
	if i < len(src) && src[i] == '^' {
		i++
	}
	if i < len(src) && src[i] == ']' {
		i++
	}
	return strings.IndexByte(src[i:], ']') >= 0
}

// parseCollection parses a "[...]" (src[openPos] == '[') into a host
// character class. Caller has already confirmed collectionHasClose. Returns
// the full bracketed class text (including the outer brackets) and the
// position just past the closing ']'.
func parseCollection(src string, openPos int, opts optionStrings) (string, int, *Error) {
	i := openPos + 1
	invert := false
	if i < len(src) && src[i] == '^' {
		invert = true
		i++
	}

	var b strings.Builder
	if i < len(src) && src[i] == ']' {
		b.WriteString(`\x5d`)
		i++
	}

	for i < len(src) {
		if src[i] == ']' {
			i++
			prefix := "["
			if invert {
				prefix = "[^"
			}
			return prefix + b.String() + "]", i, nil
		}

		if src[i] == '[' && i+1 < len(src) && (src[i+1] == ':' || src[i+1] == '=' || src[i+1] == '.') {
			consumed, text, err := parseBracketConstruct(src, i, opts)
			if err != nil {
				return "", 0, err
			}
			b.WriteString(text)
			i = consumed
			continue
		}

		left, newI := readCollectionOperand(src, i)
		i = newI
		if i < len(src) && src[i] == '-' && i+1 < len(src) && src[i+1] != ']' {
			i++
			right, newI2 := readCollectionOperand(src, i)
			i = newI2
			b.WriteString(left + "-" + right)
			continue
		}
		b.WriteString(left)
	}

	return "", 0, invalidPattern(src, openPos, "Invalid char class")
}

// parseBracketConstruct handles [:name:], [=x=], and [.x.] starting at
// src[i] == '['.
func parseBracketConstruct(src string, i int, opts optionStrings) (newPos int, text string, err *Error) {
	switch src[i+1] {
	case ':':
		end := strings.Index(src[i+2:], ":]")
		if end < 0 {
			return 0, "", invalidPattern(src, i, "Invalid char class")
		}
		name := src[i+2 : i+2+end]
		newPos = i + 2 + end + 2
		text, classErr := namedClass(name, opts)
		if classErr != nil {
			if classErr.Kind == InvalidPattern {
				classErr.Source = src
				classErr.Offset = i
			}
			return 0, "", classErr
		}
		return newPos, text, nil
	case '=':
		end := strings.Index(src[i+2:], "=]")
		if end < 0 {
			return 0, "", invalidPattern(src, i, "Invalid char class")
		}
		token := src[i : i+2+end+2]
		return 0, "", unsupportedFeature(src, i, token)
	case '.':
		end := strings.Index(src[i+2:], ".]")
		if end < 0 {
			return 0, "", invalidPattern(src, i, "Invalid char class")
		}
		token := src[i : i+2+end+2]
		return 0, "", unsupportedFeature(src, i, token)
	}
	return 0, "", invalidPattern(src, i, "Invalid char class")
}

var posixClasses = map[string]string{
	"alnum":  `[0-9A-Za-z]`,
	"alpha":  `[A-Za-z]`,
	"blank":  `[ \t]`,
	"cntrl":  `[\x00-\x1f\x7f]`,
	"digit":  `[0-9]`,
	"graph":  `[\x21-\x7e]`,
	"lower":  `[a-z]`,
	"punct":  `[\x21-\x2f\x3a-\x40\x5b-\x60\x7b-\x7e]`,
	"space":  `[ \t\r\n\v\f]`,
	"upper":  `[A-Z]`,
	"xdigit": `[0-9A-Fa-f]`,
}

// namedClass resolves a [:name:] collection member, either to a fixed POSIX
// equivalent or, for the four Vim-specific names, by invoking the
// character-class compiler on the matching option string.
func namedClass(name string, opts optionStrings) (string, *Error) {
	if fixed, ok := posixClasses[name]; ok {
		return fixed, nil
	}
	var optString string
	var typ charclass.Type
	switch name {
	case "fname":
		optString, typ = opts.Isfname, charclass.Isfname
	case "ident":
		optString, typ = opts.Isident, charclass.Isident
	case "keyword":
		optString, typ = opts.Iskeyword, charclass.Iskeyword
	case "print":
		optString, typ = opts.Isprint, charclass.Isprint
	default:
		return "", invalidPattern("", 0, "Invalid char class")
	}
	compiled, err := charclass.Compile(optString, typ, true)
	if err != nil {
		ce := err.(*charclass.Error)
		return "", invalidOptionString(ce.Source, ce.Offset, ce.Message)
	}
	return compiled, nil
}

// readCollectionOperand reads one range endpoint (or standalone member): a
// numeric reference (\d \o \x \u \U) or a single rune, escaping the rune if
// it is a reserved set-operator character.
func readCollectionOperand(src string, i int) (text string, newPos int) {
	if i+1 < len(src) && src[i] == '\\' && isNumericRefLetter(src[i+1]) {
		value, newPos, ok := scanNumericRef(src, i+1)
		if ok {
			return renderCodeRef(value), newPos
		}
	}
	r, size := utf8.DecodeRuneInString(src[i:])
	return escapeIfReserved(r), i + size
}
