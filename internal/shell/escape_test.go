package shell

import "testing"

func TestValidName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"PATH", true},
		{"_private", true},
		{"Var_01", true},
		{"x", true},
		{"", false},
		{"2LEADING", false},
		{"WITH SPACE", false},
		{"WITH-DASH", false},
		{"WITH.DOT", false},
	}

	for _, tt := range tests {
		if got := ValidName(tt.name); got != tt.valid {
			t.Errorf("ValidName(%q) = %v, want %v", tt.name, got, tt.valid)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "'plain'"},
		{"", "''"},
		{"has space", "'has space'"},
		{"$HOME", "'$HOME'"},
		{"back`tick", "'back`tick'"},
		{"it's", `'it'"'"'s'`},
		{"''", `''"'"''"'"''`},
	}

	for _, tt := range tests {
		if got := Quote(tt.in); got != tt.want {
			t.Errorf("Quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestExportLine(t *testing.T) {
	if got, want := ExportLine("KEY", "a value"), "export KEY='a value'"; got != want {
		t.Errorf("ExportLine = %q, want %q", got, want)
	}
}
