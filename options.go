package vimregex

// MagicLevel is the Vim "magicness" level in force at a given point in a
// pattern. It is ordered low to high: a bare metacharacter becomes "more
// magic" (more likely to be a metacharacter without a backslash) as the
// level increases.
type MagicLevel int

const (
	// VeryNoMagic is Vim's \V level: only "\" keeps its special meaning.
	VeryNoMagic MagicLevel = iota
	// NoMagic is Vim's \M level.
	NoMagic
	// Magic is Vim's \m level, and the default when Options.Magic is true.
	Magic
	// VeryMagic is Vim's \v level.
	VeryMagic
)

// Options configures how a Vim pattern is translated. Every field is
// optional; DefaultOptions reports the value used when a field is left at
// its Go zero value and the caller did not explicitly set it (see
// mergeOptions for how a zero value is distinguished from an explicit one).
//
// Example:
//
//	opts := vimregex.DefaultOptions()
//	opts = opts.WithIgnoreCase(true)
//	pat, err := vimregex.Compile(`\k\+`, opts)
type Options struct {
	// Flags is a subset of "dgiy" (host meanings: indices, global,
	// ignore-case, sticky). "s" and "v" are accepted as no-ops — the
	// translator always emits them. "m" and "u" are rejected, as is any
	// other character.
	//
	// Default: "".
	Flags string

	// Isfname is Vim's 'isfname'-format option string, used to compile
	// \f, \F and [[:fname:]].
	//
	// Default: "@,48-57,/,.,-,_,+,,,#,$,%,~,=".
	Isfname string

	// Isident is Vim's 'isident'-format option string, used to compile
	// \i, \I and [[:ident:]].
	//
	// Default: "@,48-57,_,192-255".
	Isident string

	// Iskeyword is Vim's 'iskeyword'-format option string, used to compile
	// \k, \K, [[:keyword:]], and the word-boundary atoms \< and \>.
	//
	// Default: "@,48-57,_,192-255".
	Iskeyword string

	// Isprint is Vim's 'isprint'-format option string, used to compile \p,
	// \P and [[:print:]].
	//
	// Default: "@,161-255".
	Isprint string

	// Magic is the initial magicness level: true selects Magic, false
	// selects NoMagic. A leading \v, \m, \M or \V in the pattern overrides
	// this from that point rightward.
	//
	// Default: true.
	Magic bool

	// IgnoreCase makes the compiled pattern case-insensitive, unless a \c
	// or \C override inside the pattern says otherwise.
	//
	// Default: false.
	IgnoreCase bool

	// SmartCase, when true, disables IgnoreCase if the pattern contains any
	// upper-case letter outside a backslash escape.
	//
	// Default: false.
	SmartCase bool

	// StringMatch, when true, treats the subject as a single line: ^ and $
	// anchor only to the start/end of the whole string, and \n is just a
	// literal newline rather than a line boundary. When false (the Vim
	// buffer-search default) ^ and $ also anchor at embedded newlines.
	//
	// Default: false.
	StringMatch bool

	// explicitFlags records which of the boolean fields above were set by a
	// With* builder, as opposed to left at their Go zero value, so merging
	// previous options (wrapper reconstruction, §4.D) can tell "false" apart
	// from "not specified". Only the With* builders below set these; an
	// Options literal built by hand (e.g. Options{IgnoreCase: true}) leaves
	// them false, so its boolean fields are treated as unset and the merge
	// falls back to base's values for Magic/IgnoreCase/SmartCase/
	// StringMatch — use the With* builders to override a boolean field.
	// The string fields (Isfname, Isident, Iskeyword, Isprint, Flags) have
	// no such caveat: mergeOptions treats any non-empty string as explicit,
	// so a hand-built literal's string fields do take effect.
	explicitMagic       bool
	explicitIgnoreCase  bool
	explicitSmartCase   bool
	explicitStringMatch bool
}

// DefaultOptions returns the baseline Options: magic mode, case-sensitive,
// buffer-style multi-line matching, and Vim's stock isfname/isident/
// iskeyword/isprint strings.
func DefaultOptions() Options {
	return Options{
		Isfname:             "@,48-57,/,.,-,_,+,,,#,$,%,~,=",
		Isident:             "@,48-57,_,192-255",
		Iskeyword:           "@,48-57,_,192-255",
		Isprint:             "@,161-255",
		Magic:               true,
		explicitMagic:       false,
		explicitIgnoreCase:  false,
		explicitSmartCase:   false,
		explicitStringMatch: false,
	}
}

// WithMagic returns a copy of o with Magic explicitly set.
func (o Options) WithMagic(magic bool) Options {
	o.Magic = magic
	o.explicitMagic = true
	return o
}

// WithIgnoreCase returns a copy of o with IgnoreCase explicitly set.
func (o Options) WithIgnoreCase(v bool) Options {
	o.IgnoreCase = v
	o.explicitIgnoreCase = true
	return o
}

// WithSmartCase returns a copy of o with SmartCase explicitly set.
func (o Options) WithSmartCase(v bool) Options {
	o.SmartCase = v
	o.explicitSmartCase = true
	return o
}

// WithStringMatch returns a copy of o with StringMatch explicitly set.
func (o Options) WithStringMatch(v bool) Options {
	o.StringMatch = v
	o.explicitStringMatch = true
	return o
}

const validFlagChars = "dgiysv"
const rejectedFlagChars = "mu"

// validateFlags checks Options.Flags against the accepted set (§6): d, g, i,
// y, s (no-op), v (no-op). Any other character, including m and u, is
// rejected.
func validateFlags(flags string) error {
	for i := 0; i < len(flags); i++ {
		c := flags[i]
		if indexByte(rejectedFlagChars, c) >= 0 {
			return newInvalidPattern(flags, i, "Invalid flags")
		}
		if indexByte(validFlagChars, c) < 0 {
			return newInvalidPattern(flags, i, "Invalid flags")
		}
	}
	return nil
}

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}

// mergeOptions implements the merge order of spec §4.D: type-specific
// defaults, then previous options (when compiling from an existing
// wrapper), then caller options. A field in override wins whenever the
// caller explicitly set it; otherwise base's value is kept.
func mergeOptions(base, override Options) Options {
	merged := base

	if override.Isfname != "" {
		merged.Isfname = override.Isfname
	}
	if override.Isident != "" {
		merged.Isident = override.Isident
	}
	if override.Iskeyword != "" {
		merged.Iskeyword = override.Iskeyword
	}
	if override.Isprint != "" {
		merged.Isprint = override.Isprint
	}
	if override.Flags != "" {
		merged.Flags = override.Flags
	}
	if override.explicitMagic {
		merged.Magic = override.Magic
		merged.explicitMagic = true
	}
	if override.explicitIgnoreCase {
		merged.IgnoreCase = override.IgnoreCase
		merged.explicitIgnoreCase = true
	}
	if override.explicitSmartCase {
		merged.SmartCase = override.SmartCase
		merged.explicitSmartCase = true
	}
	if override.explicitStringMatch {
		merged.StringMatch = override.StringMatch
		merged.explicitStringMatch = true
	}
	return merged
}

func (o Options) initialMagic() MagicLevel {
	if o.Magic {
		return Magic
	}
	return NoMagic
}
