package dart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the scanner:
// - Tokenize identifiers, delimiters, numbers and terminators
// - Emit documentation comments ('///' and '/** */') as tokens
// - Drop plain line and block comments entirely
// - Handle nested block comments
// - Scan strings with escapes and '${...}' interpolation as single tokens
// - Scan raw and triple-quoted strings
// - Report unterminated strings as error diagnostics
// - Distinguish '=>', '==' and '=' tokens

func kinds(toks []token) []tokenKind {
	out := make([]tokenKind, len(toks))
	for i, t := range toks {
		out[i] = t.kind
	}
	return out
}

func TestScanner_TokenKinds(t *testing.T) {
	t.Parallel()

	sc := newScanner([]byte("class A { int x = 0; }"))
	toks := sc.scanAll()

	require.Empty(t, sc.diags)
	assert.Equal(t, []tokenKind{
		tokIdent, tokIdent, tokLBrace,
		tokIdent, tokIdent, tokAssign, tokNumber, tokSemicolon,
		tokRBrace, tokEOF,
	}, kinds(toks))
	assert.Equal(t, "class", toks[0].text)
	assert.Equal(t, "x", toks[4].text)
}

func TestScanner_DocCommentsKept(t *testing.T) {
	t.Parallel()

	src := "/// line doc\n// plain comment\n/* block */\n/** block doc */\nx"
	sc := newScanner([]byte(src))
	toks := sc.scanAll()

	require.Empty(t, sc.diags)
	require.Equal(t, []tokenKind{tokDoc, tokDoc, tokIdent, tokEOF}, kinds(toks))
	assert.Equal(t, "/// line doc", src[toks[0].start:toks[0].end])
	assert.Equal(t, "/** block doc */", src[toks[1].start:toks[1].end])
}

func TestScanner_NestedBlockComment(t *testing.T) {
	t.Parallel()

	sc := newScanner([]byte("/* outer /* inner */ still outer */ x"))
	toks := sc.scanAll()

	require.Empty(t, sc.diags)
	require.Equal(t, []tokenKind{tokIdent, tokEOF}, kinds(toks))
	assert.Equal(t, "x", toks[0].text)
}

func TestScanner_StringInterpolation(t *testing.T) {
	t.Parallel()

	src := "'a ${b + 'c'} d'"
	sc := newScanner([]byte(src))
	toks := sc.scanAll()

	require.Empty(t, sc.diags)
	require.Equal(t, []tokenKind{tokString, tokEOF}, kinds(toks))
	assert.Equal(t, src, src[toks[0].start:toks[0].end])
}

func TestScanner_RawAndTripleStrings(t *testing.T) {
	t.Parallel()

	sc := newScanner([]byte(`r'$noInterp' '''multi
line'''`))
	toks := sc.scanAll()

	require.Empty(t, sc.diags)
	assert.Equal(t, []tokenKind{tokString, tokString, tokEOF}, kinds(toks))
}

func TestScanner_UnterminatedString(t *testing.T) {
	t.Parallel()

	sc := newScanner([]byte("var s = 'oops\n"))
	sc.scanAll()

	require.Len(t, sc.diags, 1)
	assert.Contains(t, sc.diags[0].Message, "unterminated string")
}

func TestScanner_Operators(t *testing.T) {
	t.Parallel()

	sc := newScanner([]byte("=> == = < > <= >="))
	toks := sc.scanAll()

	require.Empty(t, sc.diags)
	assert.Equal(t, []tokenKind{
		tokArrow, tokOp, tokAssign, tokLt, tokGt, tokOp, tokOp, tokEOF,
	}, kinds(toks))
}
