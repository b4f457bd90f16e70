package transpile

// fixedClass is one row of the §4.C single-character-atom table: the
// positive and negative host emissions, each with and without the newline
// inclusion that the \_ prefix requests.
type fixedClass struct {
	pos, neg             string
	posWithNL, negWithNL string
}

// fixedClasses covers every \s\S\d\D\x\X\o\O\w\W\h\H\a\A\l\L\u\U pair.
var fixedClasses = map[byte]fixedClass{
	's': {`[ \t]`, `[^ \t\n]`, `[ \t\n]`, `[^ \t]`},
	'd': {`[0-9]`, `[^0-9\n]`, `[0-9\n]`, `[^0-9]`},
	'x': {`[0-9A-Fa-f]`, `[^0-9A-Fa-f\n]`, `[0-9A-Fa-f\n]`, `[^0-9A-Fa-f]`},
	'o': {`[0-7]`, `[^0-7\n]`, `[0-7\n]`, `[^0-7]`},
	'w': {`[0-9A-Za-z_]`, `[^0-9A-Za-z_\n]`, `[0-9A-Za-z_\n]`, `[^0-9A-Za-z_]`},
	'h': {`[A-Za-z_]`, `[^A-Za-z_\n]`, `[A-Za-z_\n]`, `[^A-Za-z_]`},
	'a': {`[A-Za-z]`, `[^A-Za-z\n]`, `[A-Za-z\n]`, `[^A-Za-z]`},
	'l': {`[[a-z]--[A-Z]]`, `[^a-z\n]`, `[[a-z]--[A-Z]\n]`, `[^a-z]`},
	'u': {`[[A-Z]--[a-z]]`, `[^A-Z\n]`, `[[A-Z]--[a-z]\n]`, `[^A-Z]`},
}

// lookupFixedClass returns the table's positive/negative emission for
// letter (the lower-case form of one of the pairs above), honoring the \_
// newline-inclusion variant and whether the atom was the upper-case
// (negated) member of the pair.
func lookupFixedClass(letter byte, negated, withNL bool) (string, bool) {
	row, ok := fixedClasses[letter]
	if !ok {
		return "", false
	}
	switch {
	case !negated && !withNL:
		return row.pos, true
	case !negated && withNL:
		return row.posWithNL, true
	case negated && !withNL:
		return row.neg, true
	default:
		return row.negWithNL, true
	}
}

// optionClassLetters maps the option-backed atom letters (\i \k \f \p and
// their upper-case, digit-excluding forms) to the option-string field they
// draw from.
var optionClassLetters = map[byte]byte{
	'i': 'i', 'I': 'i',
	'k': 'k', 'K': 'k',
	'f': 'f', 'F': 'f',
	'p': 'p', 'P': 'p',
}

func isUpperClassLetter(letter byte) bool {
	return letter >= 'A' && letter <= 'Z'
}
