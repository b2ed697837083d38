// Package envfile implements the line-oriented parse and patch engine for
// .env style files.
//
// A file is tokenized once into an ordered sequence of line records, each
// either a comment (blank lines, #-lines and anything without an '=') or an
// assignment. The raw text of every line is retained unmodified, so a file
// round-trips byte for byte as long as nothing targets its keys. Values are
// taken verbatim: no quote processing, no escaping, no variable expansion.
package envfile

import "strings"

// LineKind classifies one physical line of an env file.
type LineKind int

const (
	// Comment covers blank lines, #-comments and unparseable lines.
	// Unparseable lines are deliberately inert: they never match a key
	// operation and are preserved verbatim.
	Comment LineKind = iota
	// Assignment is a KEY=VALUE line.
	Assignment
)

// Line is one physical line of an env file.
// Raw is the exact original text (no trailing newline) and is what gets
// written back for lines no operation touches.
type Line struct {
	Raw   string
	Kind  LineKind
	Key   string
	Value string
}

// Pair is one (key, value) lookup result.
type Pair struct {
	Key   string
	Value string
}

// File is the parsed image of one env file: the path it came from plus its
// ordered line records. A File is superseded wholesale by patching or
// reloading, never mutated in place.
type File struct {
	Path  string
	Lines []Line

	// finalNewline records whether the source text ended with a newline,
	// so Text can reproduce the input exactly.
	finalNewline bool
}

// Parse tokenizes text into a File image.
func Parse(path, text string) *File {
	f := &File{Path: path}
	if text == "" {
		return f
	}
	f.finalNewline = strings.HasSuffix(text, "\n")
	body := strings.TrimSuffix(text, "\n")
	for _, raw := range strings.Split(body, "\n") {
		f.Lines = append(f.Lines, parseLine(raw))
	}
	return f
}

// parseLine classifies one raw line.
// The key is the text left of the first '=', trimmed on both ends. The value
// is everything right of it with only trailing whitespace trimmed; leading
// whitespace in the value is significant.
func parseLine(raw string) Line {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Line{Raw: raw, Kind: Comment}
	}
	eq := strings.IndexByte(raw, '=')
	if eq < 0 {
		return Line{Raw: raw, Kind: Comment}
	}
	return Line{
		Raw:   raw,
		Kind:  Assignment,
		Key:   strings.TrimSpace(raw[:eq]),
		Value: strings.TrimRight(raw[eq+1:], " \t"),
	}
}

// Text reassembles the image into file content. For an unpatched image this
// reproduces the parsed input exactly, including the presence or absence of
// a trailing newline.
func (f *File) Text() string {
	if len(f.Lines) == 0 {
		return ""
	}
	raws := make([]string, len(f.Lines))
	for i, line := range f.Lines {
		raws[i] = line.Raw
	}
	s := strings.Join(raws, "\n")
	if f.finalNewline {
		s += "\n"
	}
	return s
}

// Get returns the value of the first assignment matching key.
func (f *File) Get(key string) (string, bool) {
	for _, line := range f.Lines {
		if line.Kind == Assignment && line.Key == key {
			return line.Value, true
		}
	}
	return "", false
}

// Pairs returns the (key, value) pairs of assignment lines in file order.
// An empty key set selects every assignment. Duplicate keys in the file
// produce one pair per line; no shadowing or deduplication is performed.
func (f *File) Pairs(keys []string) []Pair {
	var wanted map[string]bool
	if len(keys) > 0 {
		wanted = make(map[string]bool, len(keys))
		for _, k := range keys {
			wanted[k] = true
		}
	}

	var pairs []Pair
	for _, line := range f.Lines {
		if line.Kind != Assignment {
			continue
		}
		if wanted != nil && !wanted[line.Key] {
			continue
		}
		pairs = append(pairs, Pair{Key: line.Key, Value: line.Value})
	}
	return pairs
}

// WithLine returns a new image with one raw literal line appended.
// The line is parsed like any other, so a KEY=VALUE literal becomes a
// visible assignment in the new image.
func (f *File) WithLine(raw string) *File {
	out := &File{Path: f.Path, finalNewline: true}
	out.Lines = append(out.Lines, f.Lines...)
	out.Lines = append(out.Lines, parseLine(raw))
	return out
}
