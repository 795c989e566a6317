// Package lang defines the language-neutral declaration model produced by
// syntax tree providers and consumed by the public-surface extractor.
package lang

import "strings"

// Span is a half-open byte range [Start, End) into the original source.
type Span struct {
	Start int
	End   int
}

// Valid reports whether the span covers at least one byte.
func (s Span) Valid() bool {
	return s.End > s.Start && s.Start >= 0
}

// Text returns the source text covered by the span, clamped to the source
// bounds. An invalid span yields the empty string.
func (s Span) Text(source []byte) string {
	if !s.Valid() || s.Start >= len(source) {
		return ""
	}
	end := s.End
	if end > len(source) {
		end = len(source)
	}
	return string(source[s.Start:end])
}

// Kind identifies a declaration variant. The set is closed: the extractor
// dispatches with a single switch per kind.
type Kind int

const (
	KindClass Kind = iota
	KindMixin
	KindExtension
	KindExtensionType
	KindEnum
	KindEnumConstant
	KindFunction
	KindMethod
	KindConstructor
	KindField
	KindTopLevelVariable
	KindTypeAlias
)

var kindNames = map[Kind]string{
	KindClass:            "class",
	KindMixin:            "mixin",
	KindExtension:        "extension",
	KindExtensionType:    "extension type",
	KindEnum:             "enum",
	KindEnumConstant:     "enum constant",
	KindFunction:         "function",
	KindMethod:           "method",
	KindConstructor:      "constructor",
	KindField:            "field",
	KindTopLevelVariable: "top-level variable",
	KindTypeAlias:        "type alias",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsContainer reports whether the kind owns nested member declarations.
func (k Kind) IsContainer() bool {
	switch k {
	case KindClass, KindMixin, KindExtension, KindExtensionType, KindEnum:
		return true
	}
	return false
}

// Declaration is a read-only view over one node of the syntax tree. Byte
// offsets are valid against the exact source the provider was given. The
// zero value of the kind-specific fields means "absent": OpenBrace and
// BodyStart use -1 for "unknown", spans use the invalid zero Span.
type Declaration struct {
	Kind Kind

	// Name is the declared identifier, or "" for anonymous declarations
	// (unnamed extensions, default constructors). Fields and top-level
	// variables carry their co-declared names in Names instead.
	Name string

	// Span covers the declaration from its first token after any
	// documentation and annotations through its end (closing delimiter or
	// statement terminator).
	Span Span

	// Doc holds one span per documentation comment line (or one span for a
	// block comment). Annotations are metadata spans in source order.
	Doc         []Span
	Annotations []Span

	// Members are the nested declarations of a container. Constants is the
	// ordered enum-constant list, populated for enumerations only.
	Members   []*Declaration
	Constants []*Declaration

	// OpenBrace is the byte offset of a container's opening delimiter,
	// -1 for non-containers.
	OpenBrace int

	// Params covers a parameter list including parentheses. BodyStart is the
	// offset of the token that begins the implementation body ('{', '=>' or
	// the bare ';' of an abstract member), -1 when unknown.
	Params    Span
	BodyStart int

	IsGetter   bool
	IsSetter   bool
	IsAbstract bool
	// IsExternal marks a foreign implementation: no local body exists.
	IsExternal bool

	// Names lists co-declared variable names of a field or top-level
	// variable statement. Type covers the type annotation, invalid when the
	// declaration is untyped.
	Names []string
	Type  Span

	IsStatic bool
	IsFinal  bool
	IsConst  bool
	IsLate   bool
}

// Severity classifies a parse diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is a parse problem reported by a provider. A single
// error-severity diagnostic marks the whole file as failed.
type Diagnostic struct {
	Severity Severity
	Message  string
	Offset   int
}

// File is the parsed representation of one source file: the original bytes,
// the ordered top-level declarations and any parse diagnostics. It holds no
// state beyond the transform of that single file.
type File struct {
	Path        string
	Source      []byte
	Decls       []*Declaration
	Diagnostics []Diagnostic
}

// Failed reports whether parsing produced at least one error-severity
// diagnostic. Callers must not run the extractor on a failed file.
func (f *File) Failed() bool {
	for _, d := range f.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ErrorSummary joins the error diagnostics into one message for logging.
func (f *File) ErrorSummary() string {
	var msgs []string
	for _, d := range f.Diagnostics {
		if d.Severity == SeverityError {
			msgs = append(msgs, d.Message)
		}
	}
	return strings.Join(msgs, "; ")
}

// Provider turns raw source bytes into the declaration model. Implementations
// must be safe for concurrent use across files.
type Provider interface {
	// Language returns the lowercase language name, used as the fence tag in
	// assembled documents.
	Language() string

	// Parse builds the declaration tree for one file. A non-nil error means
	// the provider itself broke (I/O, grammar loading); parse problems in
	// the source are reported through File.Diagnostics instead.
	Parse(path string, source []byte) (*File, error)
}
