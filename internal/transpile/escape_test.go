package transpile

import (
	"strings"
	"testing"

	"github.com/coregx/vimregex/internal/charclass"
)

func TestCompileUnderscoreCollection(t *testing.T) {
	got := compileMagic(t, `\_[a-z]`)
	want := "[\n[a-z]]"
	if got.Source != want {
		t.Errorf("Compile = %q, want %q", got.Source, want)
	}
}

func TestCompileOptionBackedClasses(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{"keyword_class", `\k`},
		{"keyword_class_minus_digits", `\K`},
		{"ident_class", `\i`},
		{"fname_class", `\f`},
		{"print_class", `\p`},
		{"underscore_keyword_includes_nl", `\_k`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compileMagic(t, tt.pattern)
			if !strings.HasPrefix(got.Source, "[") || !strings.HasSuffix(got.Source, "]") {
				t.Errorf("Compile(%q) = %q, want a bracketed class", tt.pattern, got.Source)
			}
		})
	}
}

// TestCompileOptionClassMinusDigits asserts §4.C's reading of \I: the same
// option class \i compiles, with the digit codes 0x30-0x39 removed, not its
// set-complement. charclass.CompileMinusDigits is used as an independent
// oracle rather than hand-deriving the stock isident class's expansion.
func TestCompileOptionClassMinusDigits(t *testing.T) {
	stripped := compileMagic(t, `\I`)
	if strings.HasPrefix(stripped.Source, "[^") {
		t.Errorf("Compile(\\I) = %q, want a positive class, not a negation", stripped.Source)
	}
	want, err := charclass.CompileMinusDigits(stockIsident, charclass.Isident, true)
	if err != nil {
		t.Fatalf("charclass.CompileMinusDigits error: %v", err)
	}
	if stripped.Source != want {
		t.Errorf("Compile(\\I) = %q, want %q", stripped.Source, want)
	}
}

func TestCompileInvalidOptionString(t *testing.T) {
	_, err := Compile(`\i`, Input{
		Isident:      "300",
		InitialMagic: Magic,
	})
	if err == nil {
		t.Fatal("expected error for invalid option string")
	}
	if err.Kind != InvalidOptionString {
		t.Errorf("error kind = %v, want InvalidOptionString", err.Kind)
	}
}

// keywordBody independently compiles the stock iskeyword option string the
// same way wordBoundaryStart/End do, so these tests assert the boundary is
// built from the iskeyword class rather than re-deriving its exact expansion
// by hand.
func keywordBody(t *testing.T) string {
	t.Helper()
	compiled, err := charclass.Compile(stockIskeyword, charclass.Iskeyword, true)
	if err != nil {
		t.Fatalf("charclass.Compile(iskeyword) error: %v", err)
	}
	return compiled[1 : len(compiled)-1]
}

func TestCompileWordBoundaryAtoms(t *testing.T) {
	body := keywordBody(t)
	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{"escaped_start_boundary_at_magic", `\<word`, `(?<![` + body + `])(?=[` + body + `])word`},
		{"escaped_end_boundary_at_magic", `word\>`, `word(?<=[` + body + `])(?![` + body + `])`},
		{"bare_start_boundary_at_magic_is_literal", "<word", `\x3cword`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compileMagic(t, tt.pattern)
			if got.Source != tt.want {
				t.Errorf("Compile(%q) = %q, want %q", tt.pattern, got.Source, tt.want)
			}
		})
	}
}

func TestCompileWordBoundaryUsesCustomIskeyword(t *testing.T) {
	in := magicInput()
	in.Iskeyword = "@,48-57,_"
	res, err := Compile(`\<word`, in)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	compiled, cerr := charclass.Compile("@,48-57,_", charclass.Iskeyword, true)
	if cerr != nil {
		t.Fatalf("charclass.Compile error: %v", cerr)
	}
	body := compiled[1 : len(compiled)-1]
	want := `(?<![` + body + `])(?=[` + body + `])word`
	if res.Source != want {
		t.Errorf("Compile = %q, want %q", res.Source, want)
	}
}

func TestCompileStringAnchorsAndNonCapturingGroup(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{"string_start", `\%^abc`, "^abc"},
		{"string_end", `abc\%$`, "abc$"},
		{"non_capturing_group", `\%(a\|b\)`, "(?:a|b)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compileMagic(t, tt.pattern)
			if got.Source != tt.want {
				t.Errorf("Compile(%q) = %q, want %q", tt.pattern, got.Source, tt.want)
			}
		})
	}
}
