package envfile

import "strings"

// OpMode selects what a key operation does.
type OpMode int

const (
	// OpSet rewrites the value of every matching assignment line, or
	// appends KEY=VALUE when the key is absent.
	OpSet OpMode = iota
	// OpDefault appends KEY=VALUE only when the key is absent; existing
	// lines pass through untouched regardless of their current value.
	OpDefault
	// OpDelete removes every matching assignment line. Deleting an absent
	// key is a no-op.
	OpDelete
)

// Op is one requested key mutation.
type Op struct {
	Key   string
	Value string
	Mode  OpMode
}

// Patch applies ops to the image and returns the patched image plus whether
// anything actually changed. The input image is left untouched.
//
// Lines matching no operation are copied raw, so comments, ordering and the
// indentation of untouched lines survive verbatim. A rewrite keeps the
// literal text up to and including the '=' (indentation, key spelling,
// spaces around '=') and swaps only the value. Keys absent from the file are
// appended unindented, in the order the operations were first supplied.
//
// When a key appears on several file lines, every matching line is handled.
// When the same key appears in several ops, the last op wins but the key
// keeps its first-seen position for append ordering.
func (f *File) Patch(ops []Op) (*File, bool) {
	pending := make(map[string]Op, len(ops))
	var order []string
	for _, op := range ops {
		if _, seen := pending[op.Key]; !seen {
			order = append(order, op.Key)
		}
		pending[op.Key] = op
	}

	out := &File{Path: f.Path, finalNewline: f.finalNewline}
	matched := make(map[string]bool)
	changed := false

	for _, line := range f.Lines {
		if line.Kind != Assignment {
			out.Lines = append(out.Lines, line)
			continue
		}
		op, ok := pending[line.Key]
		if !ok {
			out.Lines = append(out.Lines, line)
			continue
		}
		matched[line.Key] = true
		switch op.Mode {
		case OpDelete:
			changed = true
		case OpSet:
			raw := line.Raw[:strings.IndexByte(line.Raw, '=')+1] + op.Value
			if raw != line.Raw {
				changed = true
			}
			out.Lines = append(out.Lines, parseLine(raw))
		case OpDefault:
			out.Lines = append(out.Lines, line)
		}
	}

	for _, key := range order {
		op := pending[key]
		if op.Mode == OpDelete || matched[key] {
			continue
		}
		out.Lines = append(out.Lines, parseLine(key+"="+op.Value))
		changed = true
	}

	// Anything rewritten forces a trailing newline on the persisted output
	if changed {
		out.finalNewline = true
	}
	return out, changed
}
