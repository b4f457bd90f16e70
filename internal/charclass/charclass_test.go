package charclass

import "testing"

func TestCompileIsfname(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{"stock_isfname", "@,48-57,/,.,-,_,+,,,#,$,%,~,=", `[\x23-\x25\x2b-\x39\x3d\x41-\x5a\x5f\x61-\x7a\x7e[\xa0-\u{10ffff}]]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compile(tt.pattern, Isfname, true)
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", tt.pattern, err)
			}
			if got != tt.want {
				t.Errorf("Compile(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestCompileMinusDigitsStripsDigitsNotComplement(t *testing.T) {
	got, err := CompileMinusDigits("@,48-57,/,.,-,_,+,,,#,$,%,~,=", Isfname, true)
	if err != nil {
		t.Fatalf("CompileMinusDigits error: %v", err)
	}
	want := `[\x23-\x25\x2b-\x2f\x3d\x41-\x5a\x5f\x61-\x7a\x7e[\xa0-\u{10ffff}]]`
	if got != want {
		t.Errorf("CompileMinusDigits(stock isfname) = %q, want %q", got, want)
	}
}

func TestCompileRejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		typ     Type
	}{
		{"multi_char_keyword", "ab", Isident},
		{"out_of_range_code", "300", Isident},
		{"bad_range", "50-10", Isident},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Compile(tt.pattern, tt.typ, true); err == nil {
				t.Fatalf("Compile(%q) expected error, got nil", tt.pattern)
			}
		})
	}
}

func TestCompileDoubledCommaIsLiteral(t *testing.T) {
	got, err := Compile("48-57,,,_", Iskeyword, false)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	want := `[\x2c\x30-\x39\x5f]`
	if got != want {
		t.Errorf("Compile(%q) = %q, want %q", "48-57,,,_", got, want)
	}
}

func TestCompileIsidentHasNoUnicodeTail(t *testing.T) {
	got, err := Compile("@,48-57,_,192-255", Isident, true)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	if got[len(got)-2] == ']' {
		t.Errorf("Compile(isident) = %q, expected no nested Unicode tail", got)
	}
}

func TestCompileIsprintForcesPrintableASCII(t *testing.T) {
	got, err := Compile("", Isprint, true)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	want := `[\x20-\x7e[\xa0-\u{10ffff}]]`
	if got != want {
		t.Errorf("Compile(\"\", Isprint) = %q, want %q", got, want)
	}
}
