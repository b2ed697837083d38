package console

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

var (
	// semanticMap stores semantic tag -> style code mappings (e.g., "file" -> "cyan")
	semanticMap map[string]string

	// ansiMap stores color/modifier names -> ANSI code mappings
	ansiMap map[string]string

	// semanticRegex matches {{_content_}} format for semantic tags
	semanticRegex = regexp.MustCompile(`\{\{_([A-Za-z0-9_]+)_\}\}`)

	// directRegex matches {{|content|}} format for direct style codes
	directRegex = regexp.MustCompile(`\{\{\|([A-Za-z0-9_:\-#]+)\|\}\}`)
)

func init() {
	preferredProfile = detectProfile()
	BuildColorMap()
}

// BuildColorMap initializes the ANSI code mappings and semantic tag definitions.
func BuildColorMap() {
	ansiMap = make(map[string]string)
	semanticMap = make(map[string]string)

	// Standard ANSI color/modifier mappings
	ansiMap["-"] = CodeReset
	ansiMap["reset"] = CodeReset
	ansiMap["bold"] = CodeBold
	ansiMap["dim"] = CodeDim
	ansiMap["underline"] = CodeUnderline
	ansiMap["blink"] = CodeBlink
	ansiMap["reverse"] = CodeReverse

	// Foreground colors
	ansiMap["black"] = CodeBlack
	ansiMap["red"] = CodeRed
	ansiMap["green"] = CodeGreen
	ansiMap["yellow"] = CodeYellow
	ansiMap["blue"] = CodeBlue
	ansiMap["magenta"] = CodeMagenta
	ansiMap["cyan"] = CodeCyan
	ansiMap["white"] = CodeWhite

	// Background colors (with "bg" suffix for fg:bg parsing)
	ansiMap["blackbg"] = CodeBlackBg
	ansiMap["redbg"] = CodeRedBg
	ansiMap["greenbg"] = CodeGreenBg
	ansiMap["yellowbg"] = CodeYellowBg
	ansiMap["bluebg"] = CodeBlueBg
	ansiMap["magentabg"] = CodeMagentaBg
	ansiMap["cyanbg"] = CodeCyanBg
	ansiMap["whitebg"] = CodeWhiteBg

	// Flag character mappings
	ansiMap["b"] = CodeBoldOff
	ansiMap["B"] = CodeBold
	ansiMap["d"] = CodeDimOff
	ansiMap["D"] = CodeDim
	ansiMap["u"] = CodeUnderlineOff
	ansiMap["U"] = CodeUnderline
	ansiMap["r"] = CodeReverseOff
	ansiMap["R"] = CodeReverse

	// Build semantic map from the Colors struct
	val := reflect.ValueOf(Colors)
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		semanticMap[strings.ToLower(typ.Field(i).Name)] = val.Field(i).String()
	}
}

// ToANSI converts semantic and direct tags to ANSI escape sequences
//   - {{_Tag_}}  : semantic lookup -> ANSI
//   - {{|code|}} : direct fg:bg:flags style -> ANSI
//
// When output is not a terminal, all tags are stripped instead.
func ToANSI(text string) string {
	if !isTTYGlobal {
		return Strip(text)
	}

	text = semanticRegex.ReplaceAllStringFunc(text, func(match string) string {
		content := strings.ToLower(match[3 : len(match)-3])
		if code, ok := semanticMap[content]; ok {
			return parseStyleCodeToANSI(code)
		}
		// Unknown semantic tag - strip it
		return ""
	})

	text = directRegex.ReplaceAllStringFunc(text, func(match string) string {
		return parseStyleCodeToANSI(match[3 : len(match)-3])
	})

	return text
}

// Strip removes all semantic and direct tags from text, leaving plain text
func Strip(text string) string {
	text = semanticRegex.ReplaceAllString(text, "")
	text = directRegex.ReplaceAllString(text, "")
	return text
}

// parseStyleCodeToANSI parses fg:bg:flags format and returns ANSI codes
func parseStyleCodeToANSI(content string) string {
	if content == "-" {
		return CodeReset
	}

	parts := strings.Split(content, ":")
	var codes strings.Builder

	// Part 0: Foreground color
	if len(parts) > 0 && parts[0] != "" && parts[0] != "-" {
		name := strings.ToLower(parts[0])
		if strings.HasPrefix(name, "#") {
			codes.WriteString(wrapSequence(preferredProfile.Color(name).Sequence(false)))
		} else if code, ok := ansiMap[name]; ok {
			codes.WriteString(code)
		}
	}

	// Part 1: Background color
	if len(parts) > 1 && parts[1] != "" && parts[1] != "-" {
		name := strings.ToLower(parts[1])
		if strings.HasPrefix(name, "#") {
			codes.WriteString(wrapSequence(preferredProfile.Color(name).Sequence(true)))
		} else if code, ok := ansiMap[name+"bg"]; ok {
			codes.WriteString(code)
		}
	}

	// Part 2: Flags (each character is a flag: b=bold off, B=bold, etc.)
	if len(parts) > 2 && parts[2] != "" {
		for _, flag := range parts[2] {
			if code, ok := ansiMap[string(flag)]; ok {
				codes.WriteString(code)
			}
		}
	}

	return codes.String()
}

// wrapSequence ensures a color sequence part is wrapped in CSI delimiters
func wrapSequence(seq string) string {
	if seq == "" {
		return ""
	}
	if strings.HasPrefix(seq, "\x1b[") {
		return seq
	}
	return "\033[" + seq + "m"
}

// Sprintf formats according to a format specifier and returns the string with ANSI codes
func Sprintf(format string, a ...any) string {
	return ToANSI(fmt.Sprintf(format, a...))
}

// Println prints a line with ANSI color codes parsed
func Println(a ...any) {
	fmt.Println(ToANSI(fmt.Sprint(a...)))
}

// Parse is a convenience alias for ToANSI
func Parse(text string) string {
	return ToANSI(text)
}
