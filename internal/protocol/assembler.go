package protocol

import "strings"

// MaxLineLength bounds a single accumulated line. A line that would grow
// past this is treated as corrupt and dropped whole, never truncated.
const MaxLineLength = 128

// Assembler accumulates bytes from one transport into a bounded line
// buffer. Each transport owns its own Assembler, so bytes from different
// channels never interleave.
type Assembler struct {
	buf     []byte
	discard bool
}

func NewAssembler() *Assembler {
	return &Assembler{buf: make([]byte, 0, MaxLineLength)}
}

// Feed consumes one byte. When b terminates a line, Feed returns the
// accumulated line with terminator stripped, carriage returns elided and
// surrounding whitespace trimmed, and ok true. An empty line is still
// emitted; the parser rejects it.
func (a *Assembler) Feed(b byte) (line string, ok bool) {
	switch {
	case b == '\n':
		if a.discard {
			a.discard = false
			a.buf = a.buf[:0]
			return "", false
		}
		line = strings.TrimSpace(string(a.buf))
		a.buf = a.buf[:0]
		return line, true
	case b == '\r':
		return "", false
	case a.discard:
		return "", false
	default:
		if len(a.buf) >= MaxLineLength {
			// Oversized line: discard the remainder up to the next
			// terminator so leftover bytes cannot prefix the next record.
			a.buf = a.buf[:0]
			a.discard = true
			return "", false
		}
		a.buf = append(a.buf, b)
		return "", false
	}
}
