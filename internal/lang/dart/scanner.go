package dart

import (
	"fmt"

	"github.com/PhilippHGerber/llmifier/internal/lang"
)

// tokenKind classifies scanner output. The scanner keeps only what the
// declaration-level parser needs: identifiers, delimiters, terminators and
// documentation comments. Expression detail is deliberately coarse.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokDoc // '///' line or '/** ... */' block
	tokAt
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokLBrace
	tokRBrace
	tokLt
	tokGt
	tokSemicolon
	tokColon
	tokComma
	tokDot
	tokAssign
	tokArrow
	tokOp
)

// token is one lexeme with its byte range in the original source. Text is
// populated for identifiers only; everything else is recovered from the
// source via the span when needed.
type token struct {
	kind  tokenKind
	start int
	end   int
	text  string
}

type scanner struct {
	src   []byte
	pos   int
	diags []lang.Diagnostic
}

func newScanner(src []byte) *scanner {
	return &scanner{src: src}
}

// scanAll tokenizes the whole source. Non-documentation comments are
// discarded here so the parser never sees them.
func (s *scanner) scanAll() []token {
	var toks []token
	for {
		tok := s.next()
		if tok.kind == tokEOF {
			toks = append(toks, tok)
			return toks
		}
		toks = append(toks, tok)
	}
}

func (s *scanner) errorf(offset int, format string, args ...any) {
	s.diags = append(s.diags, lang.Diagnostic{
		Severity: lang.SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Offset:   offset,
	})
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peekAt(off int) byte {
	if s.pos+off >= len(s.src) {
		return 0
	}
	return s.src[s.pos+off]
}

func (s *scanner) next() token {
	s.skipBlanks()
	if s.eof() {
		return token{kind: tokEOF, start: len(s.src), end: len(s.src)}
	}

	start := s.pos
	ch := s.src[s.pos]

	switch {
	case ch == '/' && s.peekAt(1) == '/':
		if s.peekAt(2) == '/' {
			s.skipToLineEnd()
			return token{kind: tokDoc, start: start, end: s.pos}
		}
		s.skipToLineEnd()
		return s.next()

	case ch == '/' && s.peekAt(1) == '*':
		isDoc := s.peekAt(2) == '*' && s.peekAt(3) != '/'
		s.skipBlockComment()
		if isDoc {
			return token{kind: tokDoc, start: start, end: s.pos}
		}
		return s.next()

	case ch == 'r' && (s.peekAt(1) == '\'' || s.peekAt(1) == '"'):
		s.pos++
		s.scanString(true)
		return token{kind: tokString, start: start, end: s.pos}

	case ch == '\'' || ch == '"':
		s.scanString(false)
		return token{kind: tokString, start: start, end: s.pos}

	case isIdentStart(ch):
		s.pos++
		for !s.eof() && isIdentPart(s.src[s.pos]) {
			s.pos++
		}
		return token{kind: tokIdent, start: start, end: s.pos, text: string(s.src[start:s.pos])}

	case isDigit(ch):
		s.scanNumber()
		return token{kind: tokNumber, start: start, end: s.pos}
	}

	s.pos++
	one := func(k tokenKind) token { return token{kind: k, start: start, end: s.pos} }
	switch ch {
	case '(':
		return one(tokLParen)
	case ')':
		return one(tokRParen)
	case '[':
		return one(tokLBracket)
	case ']':
		return one(tokRBracket)
	case '{':
		return one(tokLBrace)
	case '}':
		return one(tokRBrace)
	case ';':
		return one(tokSemicolon)
	case ':':
		return one(tokColon)
	case ',':
		return one(tokComma)
	case '.':
		return one(tokDot)
	case '@':
		return one(tokAt)
	case '<':
		if s.peekAt(0) == '=' {
			s.pos++
			return one(tokOp)
		}
		return one(tokLt)
	case '>':
		if s.peekAt(0) == '=' {
			s.pos++
			return one(tokOp)
		}
		return one(tokGt)
	case '=':
		switch s.peekAt(0) {
		case '>':
			s.pos++
			return one(tokArrow)
		case '=':
			s.pos++
			return one(tokOp)
		}
		return one(tokAssign)
	}
	return one(tokOp)
}

func (s *scanner) skipBlanks() {
	for !s.eof() {
		switch s.src[s.pos] {
		case ' ', '\t', '\r', '\n':
			s.pos++
		default:
			return
		}
	}
}

func (s *scanner) skipToLineEnd() {
	for !s.eof() && s.src[s.pos] != '\n' {
		s.pos++
	}
}

// skipBlockComment consumes a '/* ... */' comment. Dart block comments nest.
func (s *scanner) skipBlockComment() {
	depth := 0
	for !s.eof() {
		if s.src[s.pos] == '/' && s.peekAt(1) == '*' {
			depth++
			s.pos += 2
			continue
		}
		if s.src[s.pos] == '*' && s.peekAt(1) == '/' {
			depth--
			s.pos += 2
			if depth == 0 {
				return
			}
			continue
		}
		s.pos++
	}
	s.errorf(s.pos, "unterminated block comment")
}

// scanNumber consumes a numeric literal, hex and exponent forms included.
func (s *scanner) scanNumber() {
	if s.src[s.pos] == '0' && (s.peekAt(1) == 'x' || s.peekAt(1) == 'X') {
		s.pos += 2
		for !s.eof() && isHexDigit(s.src[s.pos]) {
			s.pos++
		}
		return
	}
	for !s.eof() && isDigit(s.src[s.pos]) {
		s.pos++
	}
	if !s.eof() && s.src[s.pos] == '.' && isDigit(s.peekAt(1)) {
		s.pos++
		for !s.eof() && isDigit(s.src[s.pos]) {
			s.pos++
		}
	}
	if !s.eof() && (s.src[s.pos] == 'e' || s.src[s.pos] == 'E') {
		s.pos++
		if !s.eof() && (s.src[s.pos] == '+' || s.src[s.pos] == '-') {
			s.pos++
		}
		for !s.eof() && isDigit(s.src[s.pos]) {
			s.pos++
		}
	}
}

// scanString consumes a string literal starting at the opening quote.
// Handles single and triple quotes, escapes, and '${...}' interpolation with
// nested strings. Raw strings skip escapes and interpolation.
func (s *scanner) scanString(raw bool) {
	quote := s.src[s.pos]
	start := s.pos
	s.pos++

	triple := false
	if s.peekAt(0) == quote && s.peekAt(1) == quote {
		triple = true
		s.pos += 2
	}

	for !s.eof() {
		ch := s.src[s.pos]
		switch {
		case !raw && ch == '\\':
			s.pos += 2
			continue
		case !raw && ch == '$' && s.peekAt(1) == '{':
			s.pos += 2
			s.skipInterpolation()
			continue
		case ch == quote:
			if !triple {
				s.pos++
				return
			}
			if s.peekAt(1) == quote && s.peekAt(2) == quote {
				s.pos += 3
				return
			}
			s.pos++
		case ch == '\n' && !triple:
			s.errorf(start, "unterminated string literal")
			return
		default:
			s.pos++
		}
	}
	s.errorf(start, "unterminated string literal")
}

// skipInterpolation consumes a '${...}' body after the opening brace,
// tracking nested braces and nested string literals.
func (s *scanner) skipInterpolation() {
	depth := 1
	for !s.eof() {
		ch := s.src[s.pos]
		switch ch {
		case '{':
			depth++
			s.pos++
		case '}':
			depth--
			s.pos++
			if depth == 0 {
				return
			}
		case '\'', '"':
			s.scanString(false)
		case 'r':
			if s.peekAt(1) == '\'' || s.peekAt(1) == '"' {
				s.pos++
				s.scanString(true)
			} else {
				s.pos++
			}
		default:
			s.pos++
		}
	}
	s.errorf(s.pos, "unterminated string interpolation")
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ch == '$' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
