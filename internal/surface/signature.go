package surface

import (
	"strings"

	"github.com/PhilippHGerber/llmifier/internal/lang"
)

// placeholder replaces a declaration whose computed span is degenerate
// (start past end, or out of source bounds). One malformed node must not
// abort the rest of the file.
const placeholder = "/* unresolved declaration */"

// spanText resolves a span against the source, reporting false when the span
// is degenerate.
func spanText(src []byte, sp lang.Span) (string, bool) {
	if !sp.Valid() || sp.Start >= len(src) || sp.End > len(src) {
		return "", false
	}
	return string(src[sp.Start:sp.End]), true
}

// signature reconstructs the reduced signature text for a declaration: the
// source span that excludes the implementation body, with trailing
// punctuation normalized per kind. An empty result means the declaration
// contributes no output (a field whose every co-declared name is private).
func signature(src []byte, d *lang.Declaration) string {
	switch d.Kind {
	case lang.KindClass, lang.KindMixin, lang.KindExtension, lang.KindExtensionType, lang.KindEnum:
		// Signature runs through the opening delimiter. The matching closing
		// line is written by the traversal after the members.
		if d.OpenBrace < 0 {
			return placeholder
		}
		text, ok := spanText(src, lang.Span{Start: d.Span.Start, End: d.OpenBrace + 1})
		if !ok {
			return placeholder
		}
		return text

	case lang.KindEnumConstant:
		text, ok := spanText(src, d.Span)
		if !ok {
			return placeholder
		}
		text = strings.TrimRight(text, " \t\r\n")
		if !strings.HasSuffix(text, ",") {
			text += ","
		}
		return text

	case lang.KindFunction, lang.KindMethod:
		if d.IsGetter {
			// Getters have no parameter list: the signature runs up to the
			// body token.
			if d.BodyStart < 0 {
				return placeholder
			}
			text, ok := spanText(src, lang.Span{Start: d.Span.Start, End: d.BodyStart})
			if !ok {
				return placeholder
			}
			return terminate(text, ";")
		}
		text, ok := spanText(src, lang.Span{Start: d.Span.Start, End: d.Params.End})
		if !ok || !d.Params.Valid() {
			return placeholder
		}
		return terminate(text, ";")

	case lang.KindConstructor:
		if d.IsExternal {
			// No local body exists: the span already runs through its own
			// terminator with the external keyword retained.
			text, ok := spanText(src, d.Span)
			if !ok {
				return placeholder
			}
			return text
		}
		text, ok := spanText(src, lang.Span{Start: d.Span.Start, End: d.Params.End})
		if !ok || !d.Params.Valid() {
			return placeholder
		}
		return terminate(text, ";")

	case lang.KindField:
		if d.IsConst && d.IsStatic {
			// Compile-time constants keep their raw span, initializer
			// included.
			text, ok := spanText(src, d.Span)
			if !ok {
				return placeholder
			}
			return text
		}
		return fieldSignature(src, d)

	case lang.KindTopLevelVariable, lang.KindTypeAlias:
		// Raw span through the terminator, initializer retained.
		text, ok := spanText(src, d.Span)
		if !ok {
			return placeholder
		}
		return text
	}
	return placeholder
}

// fieldSignature synthesizes an ordinary field signature: modifiers in
// canonical order, the type annotation (or the untyped keyword), then only
// the public co-declared names. Initializers are dropped.
func fieldSignature(src []byte, d *lang.Declaration) string {
	var names []string
	for _, name := range d.Names {
		if IsPublic(name) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return ""
	}

	var parts []string
	if d.IsStatic {
		parts = append(parts, "static")
	}
	if d.IsLate {
		parts = append(parts, "late")
	}
	if d.IsFinal {
		parts = append(parts, "final")
	}
	if typeText, ok := spanText(src, d.Type); ok {
		parts = append(parts, typeText)
	} else if !d.IsFinal && !d.IsConst {
		// "final x" needs no type keyword; a bare declaration does.
		parts = append(parts, "var")
	}
	parts = append(parts, strings.Join(names, ", "))
	return strings.Join(parts, " ") + ";"
}

// terminate right-trims the signature text and appends the terminator unless
// one is already present.
func terminate(text, terminator string) string {
	text = strings.TrimRight(text, " \t\r\n")
	if strings.HasSuffix(text, terminator) {
		return text
	}
	return text + terminator
}
