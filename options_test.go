package vimregex

import "testing"

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	if !o.Magic {
		t.Error("Magic = false, want true")
	}
	if o.IgnoreCase || o.SmartCase || o.StringMatch {
		t.Error("boolean options should default to false")
	}
	if o.Isfname != "@,48-57,/,.,-,_,+,,,#,$,%,~,=" {
		t.Errorf("Isfname = %q", o.Isfname)
	}
	if o.Isident != "@,48-57,_,192-255" {
		t.Errorf("Isident = %q", o.Isident)
	}
	if o.Iskeyword != "@,48-57,_,192-255" {
		t.Errorf("Iskeyword = %q", o.Iskeyword)
	}
	if o.Isprint != "@,161-255" {
		t.Errorf("Isprint = %q", o.Isprint)
	}
}

func TestOptionsWithBuildersSetExplicitFlags(t *testing.T) {
	base := DefaultOptions()
	o := base.WithMagic(false).WithIgnoreCase(true).WithSmartCase(true).WithStringMatch(true)
	if o.Magic || !o.IgnoreCase || !o.SmartCase || !o.StringMatch {
		t.Errorf("unexpected field values: %+v", o)
	}
	if !o.explicitMagic || !o.explicitIgnoreCase || !o.explicitSmartCase || !o.explicitStringMatch {
		t.Errorf("expected all explicit flags set: %+v", o)
	}
	// base must be unmodified (value receiver).
	if base.explicitMagic || base.Magic != true {
		t.Errorf("base mutated: %+v", base)
	}
}

func TestValidateFlags(t *testing.T) {
	tests := []struct {
		name    string
		flags   string
		wantErr bool
	}{
		{"empty", "", false},
		{"all_valid", "dgiysv", false},
		{"single_valid", "i", false},
		{"rejects_m", "m", true},
		{"rejects_u", "u", true},
		{"rejects_unknown", "z", true},
		{"rejects_mixed_with_valid", "gm", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFlags(tt.flags)
			if tt.wantErr && err == nil {
				t.Fatalf("validateFlags(%q) expected error, got nil", tt.flags)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("validateFlags(%q) unexpected error: %v", tt.flags, err)
			}
		})
	}
}

func TestMergeOptionsCallerWinsOverBase(t *testing.T) {
	base := DefaultOptions().WithIgnoreCase(false)
	override := DefaultOptions().WithIgnoreCase(true)
	merged := mergeOptions(base, override)
	if !merged.IgnoreCase {
		t.Error("merged.IgnoreCase = false, want true (override is explicit)")
	}
}

func TestMergeOptionsUnsetOverrideKeepsBase(t *testing.T) {
	base := DefaultOptions().WithIgnoreCase(true)
	override := Options{} // nothing explicitly set
	merged := mergeOptions(base, override)
	if !merged.IgnoreCase {
		t.Error("merged.IgnoreCase = false, want true (override left unset)")
	}
	if merged.Isfname != base.Isfname {
		t.Errorf("merged.Isfname = %q, want base's %q", merged.Isfname, base.Isfname)
	}
}

func TestMergeOptionsOverrideOptionStrings(t *testing.T) {
	base := DefaultOptions()
	override := Options{Isident: "@,_"}
	merged := mergeOptions(base, override)
	if merged.Isident != "@,_" {
		t.Errorf("merged.Isident = %q, want %q", merged.Isident, "@,_")
	}
	if merged.Iskeyword != base.Iskeyword {
		t.Errorf("merged.Iskeyword = %q, want unchanged base value %q", merged.Iskeyword, base.Iskeyword)
	}
}

func TestInitialMagic(t *testing.T) {
	if DefaultOptions().initialMagic() != Magic {
		t.Error("default Magic=true should map to MagicLevel Magic")
	}
	if DefaultOptions().WithMagic(false).initialMagic() != NoMagic {
		t.Error("Magic=false should map to MagicLevel NoMagic")
	}
}
