package surface

import "strings"

// indentUnit is the fixed indentation per nesting level. Opening and closing
// lines of a container use the same depth.
const indentUnit = "  "

// writer accumulates the per-file output. Indentation depth is passed into
// each call rather than held as writer state, so emission stays reentrant.
// The only flags the writer keeps are the buffer itself and whether the next
// line starts a fresh scope (start of output or just after a container's
// opening line), which suppresses the separating blank line.
type writer struct {
	buf   strings.Builder
	first bool
}

func newWriter() *writer {
	return &writer{first: true}
}

// line appends indentation for depth, the right-trimmed text and a newline.
func (w *writer) line(depth int, text string) {
	text = strings.TrimRight(text, " \t\r")
	if text == "" {
		w.buf.WriteByte('\n')
		w.first = false
		return
	}
	for i := 0; i < depth; i++ {
		w.buf.WriteString(indentUnit)
	}
	w.buf.WriteString(text)
	w.buf.WriteByte('\n')
	w.first = false
}

// text writes a possibly multi-line string. The first line is indented for
// depth; continuation lines keep their original source indentation so that
// multi-line signatures survive unchanged.
func (w *writer) text(depth int, s string) {
	parts := strings.Split(s, "\n")
	w.line(depth, parts[0])
	for _, part := range parts[1:] {
		part = strings.TrimRight(part, " \t\r")
		w.buf.WriteString(part)
		w.buf.WriteByte('\n')
	}
}

// separate inserts exactly one blank line before the next declaration.
// No-op at the start of the output, at the start of a container scope, or
// when the buffer already ends with a blank line. The output therefore never
// starts with a blank line and never contains two consecutive blank lines.
func (w *writer) separate() {
	if w.first || w.buf.Len() == 0 {
		w.first = false
		return
	}
	if !strings.HasSuffix(w.buf.String(), "\n\n") {
		w.buf.WriteByte('\n')
	}
}

// openScope resets the fresh-scope flag when entering a container body, so
// the first member is not preceded by a blank line.
func (w *writer) openScope() {
	w.first = true
}

func (w *writer) String() string {
	return w.buf.String()
}
