package console

import (
	"testing"

	"github.com/bashup/dotenv/internal/testutils"
)

func TestToANSI(t *testing.T) {
	SetTTY(true)
	defer SetTTY(false)

	tests := []struct {
		input    string
		expected string
	}{
		// Plain pass-through
		{"Hello World", "Hello World"},

		// Direct codes
		{"{{|red|}}text{{|-|}}", CodeRed + "text" + CodeReset},
		{"{{|reset|}}", CodeReset},
		{"{{|green::B|}}bold", CodeGreen + CodeBold + "bold"},
		{"{{|blue:yellow|}}", CodeBlue + CodeYellowBg},
		{"{{|:red|}}", CodeRedBg},
		{"{{|-:-:U|}}", CodeUnderline},

		// Semantic tags resolve through the palette
		{"{{_File_}}path{{|-|}}", parseStyleCodeToANSI(Colors.File) + "path" + CodeReset},
		{"{{_Var_}}KEY{{|-|}}", parseStyleCodeToANSI(Colors.Var) + "KEY" + CodeReset},

		// Unknown semantic tags are dropped
		{"{{_NoSuchTag_}}text", "text"},

		// Malformed tags pass through untouched
		{"{{_unclosed", "{{_unclosed"},
		{"plain {{ braces }}", "plain {{ braces }}"},
	}

	var cases []testutils.TestCase
	for _, tt := range tests {
		actual := ToANSI(tt.input)
		cases = append(cases, testutils.TestCase{
			Input:    tt.input,
			Expected: tt.expected,
			Actual:   actual,
			Pass:     actual == tt.expected,
		})
	}
	testutils.PrintTestTable(t, cases)
}

func TestToANSIStripsWithoutTTY(t *testing.T) {
	SetTTY(false)

	tests := []struct {
		input    string
		expected string
	}{
		{"{{|red|}}text{{|-|}}", "text"},
		{"{{_File_}}path{{|-|}}", "path"},
		{"no tags at all", "no tags at all"},
	}

	for _, tt := range tests {
		if got := ToANSI(tt.input); got != tt.expected {
			t.Errorf("ToANSI(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestStrip(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"{{_Var_}}KEY{{|-|}}={{_Value_}}1{{|-|}}", "KEY=1"},
		{"{{|green::B|}}ok{{|-|}}", "ok"},
		{"untagged", "untagged"},
	}

	for _, tt := range tests {
		if got := Strip(tt.input); got != tt.expected {
			t.Errorf("Strip(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
