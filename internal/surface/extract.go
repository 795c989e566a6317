// Package surface reduces a parsed source file to its public API surface:
// publicly visible declarations with their documentation and annotations,
// signatures preserved, implementation bodies elided.
//
// The transform is a pure function from (syntax tree, source text) to output
// text. It holds no state across files, so callers may fan out per-file
// transforms freely.
package surface

import (
	"strings"

	"github.com/PhilippHGerber/llmifier/internal/lang"
)

// Extract produces the reduced public-surface text for a parsed file.
// Declarations appear in source order; a file without public declarations
// yields the empty string. Every emitted line ends with '\n'.
func Extract(f *lang.File) string {
	w := newWriter()
	for _, d := range f.Decls {
		emitDeclaration(w, f.Source, d, nil, 0)
	}
	return w.String()
}

// emitDeclaration writes one declaration and, for containers, recurses into
// its members at depth+1.
func emitDeclaration(w *writer, src []byte, d *lang.Declaration, parent *lang.Declaration, depth int) {
	if !visible(d) {
		return
	}
	if parent != nil && !allowedIn(parent.Kind, d.Kind) {
		return
	}
	sig := signature(src, d)
	if sig == "" {
		return
	}

	w.separate()
	emitDocAndAnnotations(w, src, d, depth)
	w.text(depth, sig)

	if d.Kind.IsContainer() {
		w.openScope()
		for _, c := range d.Constants {
			emitDeclaration(w, src, c, d, depth+1)
		}
		for _, m := range d.Members {
			emitDeclaration(w, src, m, d, depth+1)
		}
		w.line(depth, "}")
	}
}

// visible applies the name-based visibility filter. Fields and top-level
// variables survive when at least one co-declared name is public; everything
// else is gated on its own name. Members of private containers are never
// reached because the traversal does not descend into them.
func visible(d *lang.Declaration) bool {
	switch d.Kind {
	case lang.KindField, lang.KindTopLevelVariable:
		for _, name := range d.Names {
			if IsPublic(name) {
				return true
			}
		}
		return false
	default:
		return IsPublic(d.Name)
	}
}

// allowedIn reports whether a declaration kind is legal inside the given
// container kind. Providers should not produce illegal nestings; this gate
// keeps a malformed tree from leaking, say, a constructor into a mixin.
func allowedIn(parent, child lang.Kind) bool {
	switch child {
	case lang.KindConstructor:
		return parent == lang.KindClass || parent == lang.KindEnum || parent == lang.KindExtensionType
	case lang.KindEnumConstant:
		return parent == lang.KindEnum
	case lang.KindMethod, lang.KindField:
		return true
	default:
		return false
	}
}

// emitDocAndAnnotations re-emits the attached documentation comment lines
// and annotation spans verbatim (right-trimmed only), directly above the
// declaration with no blank line in between.
func emitDocAndAnnotations(w *writer, src []byte, d *lang.Declaration, depth int) {
	for _, sp := range d.Doc {
		text, ok := spanText(src, sp)
		if !ok {
			continue
		}
		lines := strings.Split(text, "\n")
		w.line(depth, lines[0])
		for _, l := range lines[1:] {
			trimmed := strings.TrimSpace(l)
			if strings.HasPrefix(trimmed, "*") {
				// Block comment continuation lines re-align under the opener.
				w.line(depth, " "+trimmed)
			} else {
				w.line(depth, trimmed)
			}
		}
	}
	for _, sp := range d.Annotations {
		text, ok := spanText(src, sp)
		if !ok {
			continue
		}
		w.text(depth, text)
	}
}
