package surface

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PhilippHGerber/llmifier/internal/lang"
)

// Test Plan for Extract:
// - Emit public declarations only, in source order
// - Elide implementation bodies from functions, methods and getters
// - Separate sibling declarations with exactly one blank line
// - Never start the output with a blank line, never emit two in a row
// - Keep documentation and annotations attached with no blank in between
// - Close container scopes with a brace line at the container's depth
// - Drop private containers without descending into them
// - Synthesize field signatures with public names only
// - Keep compile-time constant fields verbatim, initializer included
// - Append the comma terminator to enum constants
// - Replace degenerate spans with a placeholder comment
// - Yield the empty string for a file without public declarations

// sp locates substr in src and returns its span. The substring must occur.
func sp(t *testing.T, src, substr string) lang.Span {
	t.Helper()
	i := strings.Index(src, substr)
	require.GreaterOrEqual(t, i, 0, "substring %q not found", substr)
	return lang.Span{Start: i, End: i + len(substr)}
}

func at(t *testing.T, src, substr string) int {
	t.Helper()
	i := strings.Index(src, substr)
	require.GreaterOrEqual(t, i, 0, "substring %q not found", substr)
	return i
}

func newTestDecl(kind lang.Kind) *lang.Declaration {
	return &lang.Declaration{Kind: kind, OpenBrace: -1, BodyStart: -1}
}

func TestExtract_ClassWithMembers(t *testing.T) {
	t.Parallel()

	src := "/// A counter.\nclass Counter {\n  int get value => _count;\n\n  void bump() {}\n}"

	getter := newTestDecl(lang.KindMethod)
	getter.Name = "value"
	getter.IsGetter = true
	getter.Span = sp(t, src, "int get value => _count;")
	getter.BodyStart = at(t, src, "=>")

	bump := newTestDecl(lang.KindMethod)
	bump.Name = "bump"
	bump.Span = sp(t, src, "void bump() {}")
	bump.Params = sp(t, src, "()")

	class := newTestDecl(lang.KindClass)
	class.Name = "Counter"
	class.Doc = []lang.Span{sp(t, src, "/// A counter.")}
	class.Span = lang.Span{Start: at(t, src, "class Counter"), End: len(src)}
	class.OpenBrace = at(t, src, "{")
	class.Members = []*lang.Declaration{getter, bump}

	f := &lang.File{Source: []byte(src), Decls: []*lang.Declaration{class}}
	got := Extract(f)

	want := "/// A counter.\n" +
		"class Counter {\n" +
		"  int get value;\n" +
		"\n" +
		"  void bump();\n" +
		"}\n"
	assert.Equal(t, want, got)
}

func TestExtract_PrivateDeclarationsDropped(t *testing.T) {
	t.Parallel()

	src := "void _hidden() {}\nvoid shown() {}"

	hidden := newTestDecl(lang.KindFunction)
	hidden.Name = "_hidden"
	hidden.Span = sp(t, src, "void _hidden() {}")
	hidden.Params = lang.Span{Start: at(t, src, "_hidden(") + len("_hidden"), End: at(t, src, "_hidden(") + len("_hidden()")}

	shown := newTestDecl(lang.KindFunction)
	shown.Name = "shown"
	shown.Span = sp(t, src, "void shown() {}")
	shown.Params = lang.Span{Start: at(t, src, "shown(") + len("shown"), End: at(t, src, "shown(") + len("shown()")}

	f := &lang.File{Source: []byte(src), Decls: []*lang.Declaration{hidden, shown}}
	assert.Equal(t, "void shown();\n", Extract(f))
}

func TestExtract_PrivateContainerNotDescended(t *testing.T) {
	t.Parallel()

	src := "class _Secret {\n  void leak() {}\n}"

	leak := newTestDecl(lang.KindMethod)
	leak.Name = "leak"
	leak.Span = sp(t, src, "void leak() {}")
	leak.Params = sp(t, src, "()")

	class := newTestDecl(lang.KindClass)
	class.Name = "_Secret"
	class.Span = lang.Span{Start: 0, End: len(src)}
	class.OpenBrace = at(t, src, "{")
	class.Members = []*lang.Declaration{leak}

	f := &lang.File{Source: []byte(src), Decls: []*lang.Declaration{class}}
	assert.Equal(t, "", Extract(f))
}

func TestExtract_DocAndAnnotationsAttached(t *testing.T) {
	t.Parallel()

	src := "/// Greets.\n@deprecated\nString greet() => 'hi';"

	fn := newTestDecl(lang.KindFunction)
	fn.Name = "greet"
	fn.Doc = []lang.Span{sp(t, src, "/// Greets.")}
	fn.Annotations = []lang.Span{sp(t, src, "@deprecated")}
	fn.Span = sp(t, src, "String greet() => 'hi';")
	fn.Params = sp(t, src, "()")
	fn.BodyStart = at(t, src, "=>")

	f := &lang.File{Source: []byte(src), Decls: []*lang.Declaration{fn}}
	assert.Equal(t, "/// Greets.\n@deprecated\nString greet();\n", Extract(f))
}

func TestExtract_BlockDocRealigned(t *testing.T) {
	t.Parallel()

	src := "/** Adds.\n * See also.\n */\nint add(int a, int b) { return a + b; }"

	fn := newTestDecl(lang.KindFunction)
	fn.Name = "add"
	fn.Doc = []lang.Span{sp(t, src, "/** Adds.\n * See also.\n */")}
	fn.Span = sp(t, src, "int add(int a, int b) { return a + b; }")
	fn.Params = sp(t, src, "(int a, int b)")
	fn.BodyStart = at(t, src, "{ return")

	f := &lang.File{Source: []byte(src), Decls: []*lang.Declaration{fn}}
	assert.Equal(t, "/** Adds.\n * See also.\n */\nint add(int a, int b);\n", Extract(f))
}

func TestExtract_FieldSignatureSynthesis(t *testing.T) {
	t.Parallel()

	src := "static int _a = 1, b = 2;"

	field := newTestDecl(lang.KindField)
	field.Names = []string{"_a", "b"}
	field.IsStatic = true
	field.Span = lang.Span{Start: 0, End: len(src)}
	field.Type = sp(t, src, "int")

	f := &lang.File{Source: []byte(src), Decls: []*lang.Declaration{field}}
	assert.Equal(t, "static int b;\n", Extract(f))
}

func TestExtract_FieldModifierOrder(t *testing.T) {
	t.Parallel()

	src := "static late final int cache;"

	field := newTestDecl(lang.KindField)
	field.Names = []string{"cache"}
	field.IsStatic = true
	field.IsLate = true
	field.IsFinal = true
	field.Span = lang.Span{Start: 0, End: len(src)}
	field.Type = sp(t, src, "int")

	f := &lang.File{Source: []byte(src), Decls: []*lang.Declaration{field}}
	assert.Equal(t, "static late final int cache;\n", Extract(f))
}

func TestExtract_UntypedFinalFieldKeepsNoVar(t *testing.T) {
	t.Parallel()

	src := "final answer = 42;"

	field := newTestDecl(lang.KindField)
	field.Names = []string{"answer"}
	field.IsFinal = true
	field.Span = lang.Span{Start: 0, End: len(src)}

	f := &lang.File{Source: []byte(src), Decls: []*lang.Declaration{field}}
	assert.Equal(t, "final answer;\n", Extract(f))
}

func TestExtract_UntypedFieldGetsVar(t *testing.T) {
	t.Parallel()

	src := "var mutable = 1;"

	field := newTestDecl(lang.KindField)
	field.Names = []string{"mutable"}
	field.Span = lang.Span{Start: 0, End: len(src)}

	f := &lang.File{Source: []byte(src), Decls: []*lang.Declaration{field}}
	assert.Equal(t, "var mutable;\n", Extract(f))
}

func TestExtract_ConstantFieldKeptVerbatim(t *testing.T) {
	t.Parallel()

	src := "static const int maxRetries = 10;"

	field := newTestDecl(lang.KindField)
	field.Names = []string{"maxRetries"}
	field.IsStatic = true
	field.IsConst = true
	field.Span = lang.Span{Start: 0, End: len(src)}
	field.Type = sp(t, src, "int")

	f := &lang.File{Source: []byte(src), Decls: []*lang.Declaration{field}}
	assert.Equal(t, "static const int maxRetries = 10;\n", Extract(f))
}

func TestExtract_AllPrivateFieldNamesYieldNothing(t *testing.T) {
	t.Parallel()

	src := "int _a = 1, _b = 2;"

	field := newTestDecl(lang.KindField)
	field.Names = []string{"_a", "_b"}
	field.Span = lang.Span{Start: 0, End: len(src)}
	field.Type = sp(t, src, "int")

	f := &lang.File{Source: []byte(src), Decls: []*lang.Declaration{field}}
	assert.Equal(t, "", Extract(f))
}

func TestExtract_EnumConstantsCommaNormalized(t *testing.T) {
	t.Parallel()

	src := "enum Color { red, green }"

	red := newTestDecl(lang.KindEnumConstant)
	red.Name = "red"
	red.Span = sp(t, src, "red")

	green := newTestDecl(lang.KindEnumConstant)
	green.Name = "green"
	green.Span = sp(t, src, "green")

	enum := newTestDecl(lang.KindEnum)
	enum.Name = "Color"
	enum.Span = lang.Span{Start: 0, End: len(src)}
	enum.OpenBrace = at(t, src, "{")
	enum.Constants = []*lang.Declaration{red, green}

	f := &lang.File{Source: []byte(src), Decls: []*lang.Declaration{enum}}

	want := "enum Color {\n" +
		"  red,\n" +
		"\n" +
		"  green,\n" +
		"}\n"
	assert.Equal(t, want, Extract(f))
}

func TestExtract_PlaceholderForDegenerateSpan(t *testing.T) {
	t.Parallel()

	src := "void broken()"

	fn := newTestDecl(lang.KindFunction)
	fn.Name = "broken"
	fn.Span = lang.Span{Start: 0, End: len(src)}
	// No parameter span resolved: the declaration cannot be reconstructed.

	f := &lang.File{Source: []byte(src), Decls: []*lang.Declaration{fn}}
	assert.Equal(t, "/* unresolved declaration */\n", Extract(f))
}

func TestExtract_ConstructorOnlyInClassLikeContainers(t *testing.T) {
	t.Parallel()

	src := "mixin M {\n  M() {}\n}"

	ctor := newTestDecl(lang.KindConstructor)
	ctor.Span = sp(t, src, "M() {}")
	ctor.Params = sp(t, src, "()")

	mixin := newTestDecl(lang.KindMixin)
	mixin.Name = "M"
	mixin.Span = lang.Span{Start: 0, End: len(src)}
	mixin.OpenBrace = at(t, src, "{")
	mixin.Members = []*lang.Declaration{ctor}

	f := &lang.File{Source: []byte(src), Decls: []*lang.Declaration{mixin}}
	assert.Equal(t, "mixin M {\n}\n", Extract(f))
}

func TestExtract_SeparationInvariants(t *testing.T) {
	t.Parallel()

	src := "void a() {}\nvoid b() {}\nvoid c() {}"

	var decls []*lang.Declaration
	for _, name := range []string{"a", "b", "c"} {
		fn := newTestDecl(lang.KindFunction)
		fn.Name = name
		fn.Span = sp(t, src, "void "+name+"() {}")
		open := at(t, src, name+"(") + len(name)
		fn.Params = lang.Span{Start: open, End: open + 2}
		decls = append(decls, fn)
	}

	f := &lang.File{Source: []byte(src), Decls: decls}
	got := Extract(f)

	assert.Equal(t, "void a();\n\nvoid b();\n\nvoid c();\n", got)
	assert.False(t, strings.HasPrefix(got, "\n"), "output must not start with a blank line")
	assert.NotContains(t, got, "\n\n\n", "output must not contain consecutive blank lines")
}

func TestExtract_EmptyFileYieldsEmptyString(t *testing.T) {
	t.Parallel()

	f := &lang.File{Source: []byte("// nothing here\n")}
	assert.Equal(t, "", Extract(f))
}
