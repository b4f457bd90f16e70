package vimregex

import (
	"github.com/coregx/coregex"

	"github.com/coregx/vimregex/internal/transpile"
)

// HostFlags carries the host-facing subset of Options.Flags through to a
// HostCompiler: "i" as a structured bool (baked into the compiled source by
// the default host, since coregex has no separate case-insensitive switch),
// and "g"/"y"/"d" as the Global/Sticky/Indices bools for a wrapper method
// that wants to know about them (coregex itself has no sticky/indices concept;
// "g" just means Pattern's *All* methods are the ones to call).
type HostFlags struct {
	IgnoreCase bool
	Global     bool
	Sticky     bool
	Indices    bool
}

// HostRegex is the subset of a compiled host regex the wrapper needs.
// *coregex.Regex satisfies it; see coregexAdapter.
type HostRegex interface {
	MatchString(s string) bool
	FindStringIndex(s string) []int
	FindAllStringIndex(s string, n int) [][]int
	String() string
}

// HostCompiler builds a HostRegex from transpiled source. Compile's default
// is CoregexHost, wrapping the pack's own coregex engine; spec §1 places the
// host regex engine itself out of scope for this module, so this seam is
// what keeps it a genuinely swappable dependency rather than a hard-wired
// one — in particular for a future host that supports the v-mode set
// operators this module emits but coregex (RE2 syntax) does not.
type HostCompiler interface {
	CompileHost(source string, flags HostFlags) (HostRegex, error)
}

// CoregexHost is the default HostCompiler, backed by github.com/coregx/coregex.
type CoregexHost struct{}

// CompileHost implements HostCompiler by folding IgnoreCase into an inline
// "(?i)" flag (coregex, like stdlib regexp/syntax, has no separate
// case-insensitive compile option) and delegating everything else to
// coregex.Compile.
func (CoregexHost) CompileHost(source string, flags HostFlags) (HostRegex, error) {
	if flags.IgnoreCase {
		source = "(?i)" + source
	}
	re, err := coregex.Compile(source)
	if err != nil {
		return nil, err
	}
	return coregexAdapter{re}, nil
}

type coregexAdapter struct {
	re *coregex.Regex
}

func (a coregexAdapter) MatchString(s string) bool             { return a.re.MatchString(s) }
func (a coregexAdapter) FindStringIndex(s string) []int        { return a.re.FindStringIndex(s) }
func (a coregexAdapter) FindAllStringIndex(s string, n int) [][]int {
	return a.re.FindAllStringIndex(s, n)
}
func (a coregexAdapter) String() string { return a.re.String() }

// Pattern is a compiled Vim pattern: component D, the public wrapper. It
// holds the original source and the options it was compiled with, and
// delegates matching to a host regex built through a HostCompiler.
type Pattern struct {
	source  string
	options Options
	host    HostCompiler
	flags   HostFlags
	re      HostRegex
}

// Compile translates pattern under options (DefaultOptions merged with any
// options passed, per §4.D's merge order) and builds the default host regex.
//
// Example:
//
//	pat, err := vimregex.Compile(`\<\k\+\>`)
func Compile(pattern string, options ...Options) (*Pattern, error) {
	return compile(pattern, DefaultOptions(), options, CoregexHost{})
}

// CompileWithHost is Compile, but against an explicit HostCompiler instead
// of the default CoregexHost — the seam spec §9 calls for so a caller can
// substitute a host that supports constructs coregex does not.
func CompileWithHost(pattern string, host HostCompiler, options ...Options) (*Pattern, error) {
	return compile(pattern, DefaultOptions(), options, host)
}

// Recompile re-translates a new pattern string, reusing p's options (as the
// "previous options" base in §4.D's merge order) and its HostCompiler.
// Useful for incremental search UIs that hold one set of options fixed
// across many pattern edits.
func (p *Pattern) Recompile(pattern string, options ...Options) (*Pattern, error) {
	return compile(pattern, p.options, options, p.host)
}

func compile(pattern string, base Options, overrides []Options, host HostCompiler) (*Pattern, error) {
	var override Options
	if len(overrides) > 0 {
		override = overrides[0]
	}
	merged := mergeOptions(base, override)

	if err := validateFlags(merged.Flags); err != nil {
		return nil, err
	}

	result, terr := transpile.Compile(pattern, transpile.Input{
		Isfname:       merged.Isfname,
		Isident:       merged.Isident,
		Iskeyword:     merged.Iskeyword,
		Isprint:       merged.Isprint,
		InitialMagic:  transpile.MagicLevel(merged.initialMagic()),
		StringMatch:   merged.StringMatch,
	})
	if terr != nil {
		return nil, convertTranspileError(terr)
	}

	ignoreCase := merged.IgnoreCase
	if merged.SmartCase && result.HasUpper {
		ignoreCase = false
	}
	if result.ForcedIgnoreCase != nil {
		ignoreCase = *result.ForcedIgnoreCase
	}

	flags := HostFlags{
		IgnoreCase: ignoreCase,
		Global:     indexByte(merged.Flags, 'g') >= 0,
		Sticky:     indexByte(merged.Flags, 'y') >= 0,
		Indices:    indexByte(merged.Flags, 'd') >= 0,
	}

	re, herr := host.CompileHost(result.Source, flags)
	if herr != nil {
		return nil, wrapHostError(pattern, herr)
	}

	return &Pattern{source: pattern, options: merged, host: host, flags: flags, re: re}, nil
}

func convertTranspileError(e *transpile.Error) *CompileError {
	switch e.Kind {
	case transpile.UnsupportedFeature:
		return &CompileError{Kind: UnsupportedFeature, Message: e.Message, Source: e.Source, Offset: e.Offset}
	case transpile.InvalidOptionString:
		return &CompileError{Kind: InvalidOptionString, Message: e.Message, Source: e.Source, Offset: e.Offset}
	default:
		return &CompileError{Kind: InvalidPattern, Message: e.Message, Source: e.Source, Offset: e.Offset}
	}
}

// Source returns the original Vim pattern this Pattern was compiled from.
func (p *Pattern) Source() string { return p.source }

// Options returns the fully-merged Options this Pattern was compiled with.
func (p *Pattern) Options() Options { return p.options }

// HostSource returns the translated host-dialect regex source, useful for
// diagnostics or a dry-run CLI mode.
func (p *Pattern) HostSource() string { return p.re.String() }

// Flags returns the resolved HostFlags this Pattern was compiled with.
func (p *Pattern) Flags() HostFlags { return p.flags }

// MatchString reports whether s contains a match.
func (p *Pattern) MatchString(s string) bool { return p.re.MatchString(s) }

// FindStringIndex returns a two-element slice giving the leftmost match's
// byte offsets in s, or nil if there is no match.
func (p *Pattern) FindStringIndex(s string) []int { return p.re.FindStringIndex(s) }

// FindAllStringIndex returns the offsets of up to n matches in s ( n<0 means
// unlimited), honoring the "g" flag's intent of finding every match.
func (p *Pattern) FindAllStringIndex(s string, n int) [][]int {
	return p.re.FindAllStringIndex(s, n)
}
