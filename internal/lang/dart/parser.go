// Package dart is a minimal recursive-descent front end for Dart source. It
// produces the declaration shape consumed by the surface extractor: names,
// byte spans, documentation and annotation spans, and the kind-specific
// sub-spans (parameter lists, body starts, opening delimiters). Statement
// bodies are never parsed, only skipped as balanced delimiter spans.
package dart

import (
	"fmt"

	"github.com/PhilippHGerber/llmifier/internal/lang"
)

// Provider parses Dart files. Safe for concurrent use: each Parse call is
// self-contained.
type Provider struct{}

func NewProvider() *Provider {
	return &Provider{}
}

func (*Provider) Language() string {
	return "dart"
}

// Parse tokenizes and parses one Dart file. Structural problems (unbalanced
// delimiters, unterminated strings) surface as error diagnostics; anything
// the parser merely fails to understand is skipped with a warning.
func (*Provider) Parse(path string, source []byte) (*lang.File, error) {
	sc := newScanner(source)
	toks := sc.scanAll()

	p := &parser{src: source, toks: toks, diags: sc.diags}
	decls := p.parseCompilationUnit()

	return &lang.File{
		Path:        path,
		Source:      source,
		Decls:       decls,
		Diagnostics: p.diags,
	}, nil
}

// classModifiers may precede 'class' or 'mixin' without changing what kind
// of declaration follows.
var classModifiers = map[string]bool{
	"abstract":  true,
	"base":      true,
	"final":     true,
	"sealed":    true,
	"interface": true,
}

type parser struct {
	src   []byte
	toks  []token
	pos   int
	diags []lang.Diagnostic
}

// metadata is the pending documentation and annotation spans collected ahead
// of a declaration.
type metadata struct {
	doc []lang.Span
	ann []lang.Span
}

func (p *parser) cur() token {
	return p.at(0)
}

func (p *parser) at(off int) token {
	i := p.pos + off
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF sentinel
	}
	return p.toks[i]
}

func (p *parser) advance() {
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
}

// prevEnd is the end offset of the last consumed token.
func (p *parser) prevEnd() int {
	if p.pos == 0 {
		return 0
	}
	return p.toks[p.pos-1].end
}

func (p *parser) warnf(offset int, format string, args ...any) {
	p.diags = append(p.diags, lang.Diagnostic{
		Severity: lang.SeverityWarning,
		Message:  fmt.Sprintf(format, args...),
		Offset:   offset,
	})
}

func (p *parser) errorf(offset int, format string, args ...any) {
	p.diags = append(p.diags, lang.Diagnostic{
		Severity: lang.SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Offset:   offset,
	})
}

func newDecl(kind lang.Kind) *lang.Declaration {
	return &lang.Declaration{Kind: kind, OpenBrace: -1, BodyStart: -1}
}

// parseCompilationUnit parses the ordered top-level declaration list.
func (p *parser) parseCompilationUnit() []*lang.Declaration {
	var decls []*lang.Declaration
	for p.cur().kind != tokEOF {
		before := p.pos
		if d := p.parseDeclaration(nil); d != nil {
			decls = append(decls, d)
		}
		if p.pos == before {
			p.warnf(p.cur().start, "skipping unexpected token")
			p.advance()
		}
	}
	return decls
}

// parseDeclaration parses one declaration. container is nil at the top
// level. Directives and stray semicolons yield nil.
func (p *parser) parseDeclaration(container *lang.Declaration) *lang.Declaration {
	meta := p.collectMetadata()

	t := p.cur()
	switch {
	case t.kind == tokEOF:
		return nil
	case t.kind == tokSemicolon:
		p.advance()
		return nil
	}

	if container == nil && t.kind == tokIdent {
		switch t.text {
		case "import", "export", "part", "library":
			p.skipToSemicolon()
			return nil
		case "typedef":
			return p.parseTypedef(meta)
		}
	}

	if container == nil && p.atContainerStart() {
		return p.parseContainer(meta)
	}

	return p.parseMemberLike(meta, container)
}

// collectMetadata gathers the documentation comments and '@' annotations
// immediately preceding a declaration.
func (p *parser) collectMetadata() metadata {
	var meta metadata
	for {
		t := p.cur()
		switch t.kind {
		case tokDoc:
			meta.doc = append(meta.doc, lang.Span{Start: t.start, End: t.end})
			p.advance()

		case tokAt:
			start := t.start
			p.advance()
			if p.cur().kind != tokIdent {
				p.warnf(p.cur().start, "malformed annotation")
				continue
			}
			p.advance()
			for p.cur().kind == tokDot && p.at(1).kind == tokIdent {
				p.advance()
				p.advance()
			}
			if p.cur().kind == tokLt {
				p.skipAngles()
			}
			end := p.prevEnd()
			if p.cur().kind == tokLParen {
				sp := p.skipBalanced()
				end = sp.End
			}
			meta.ann = append(meta.ann, lang.Span{Start: start, End: end})

		default:
			return meta
		}
	}
}

// atContainerStart reports whether the upcoming tokens open a class, mixin,
// enum or extension declaration, looking past class modifiers.
func (p *parser) atContainerStart() bool {
	i := 0
	for p.at(i).kind == tokIdent && classModifiers[p.at(i).text] {
		i++
	}
	t := p.at(i)
	if t.kind != tokIdent {
		return false
	}
	switch t.text {
	case "class", "mixin", "enum", "extension":
		return true
	}
	return false
}

// parseContainer parses a class-like declaration including its member list.
func (p *parser) parseContainer(meta metadata) *lang.Declaration {
	start := p.cur().start

	for p.cur().kind == tokIdent && classModifiers[p.cur().text] {
		p.advance()
	}

	var kind lang.Kind
	switch p.cur().text {
	case "class":
		kind = lang.KindClass
		p.advance()
	case "mixin":
		if p.at(1).text == "class" {
			p.advance()
			kind = lang.KindClass
		} else {
			kind = lang.KindMixin
		}
		p.advance()
	case "enum":
		kind = lang.KindEnum
		p.advance()
	case "extension":
		if p.at(1).text == "type" {
			p.advance()
			kind = lang.KindExtensionType
		} else {
			kind = lang.KindExtension
		}
		p.advance()
	}

	d := newDecl(kind)
	d.Doc = meta.doc
	d.Annotations = meta.ann
	d.Span.Start = start

	// Extensions may be anonymous: "extension on String { ... }".
	if t := p.cur(); t.kind == tokIdent && t.text != "on" {
		d.Name = t.text
		p.advance()
	}
	if p.cur().kind == tokLt {
		p.skipAngles()
	}
	// Extension types carry a representation declaration after the name.
	if kind == lang.KindExtensionType && p.cur().kind == tokLParen {
		p.skipBalanced()
	}

	// Header clauses (extends, with, implements, on) run until the body.
	for {
		t := p.cur()
		if t.kind == tokLBrace || t.kind == tokSemicolon || t.kind == tokEOF {
			break
		}
		if t.kind == tokLt {
			p.skipAngles()
			continue
		}
		p.advance()
	}

	if p.cur().kind == tokSemicolon {
		// Mixin application: "class A = B with C;". No body exists, so the
		// whole statement is the signature. Reusing the alias variant keeps
		// the raw span intact.
		d.Kind = lang.KindTypeAlias
		d.Span.End = p.cur().end
		p.advance()
		return d
	}
	if p.cur().kind != tokLBrace {
		p.errorf(p.cur().start, "missing '{' in %s declaration", kind)
		return d
	}

	d.OpenBrace = p.cur().start
	p.advance()

	if kind == lang.KindEnum {
		p.parseEnumConstants(d)
	}
	for p.cur().kind != tokRBrace && p.cur().kind != tokEOF {
		before := p.pos
		if m := p.parseDeclaration(d); m != nil {
			d.Members = append(d.Members, m)
		}
		if p.pos == before {
			p.warnf(p.cur().start, "skipping unexpected token in %s body", kind)
			p.advance()
		}
	}

	if p.cur().kind != tokRBrace {
		p.errorf(p.cur().start, "unterminated %s declaration", kind)
		d.Span.End = p.prevEnd()
		return d
	}
	d.Span.End = p.cur().end
	p.advance()
	return d
}

// parseEnumConstants parses the constant list at the head of an enum body,
// up to the ';' separating constants from other members (or the closing
// brace when no members follow).
func (p *parser) parseEnumConstants(d *lang.Declaration) {
	for {
		meta := p.collectMetadata()

		switch p.cur().kind {
		case tokSemicolon:
			p.advance()
			return
		case tokRBrace, tokEOF:
			return
		case tokComma:
			p.advance()
			continue
		}
		if p.cur().kind != tokIdent {
			p.warnf(p.cur().start, "unexpected token in enum constant list")
			p.advance()
			continue
		}

		c := newDecl(lang.KindEnumConstant)
		c.Doc = meta.doc
		c.Annotations = meta.ann
		c.Name = p.cur().text
		c.Span.Start = p.cur().start
		p.advance()

		if p.cur().kind == tokLt {
			p.skipAngles()
		}
		if p.cur().kind == tokDot && p.at(1).kind == tokIdent {
			p.advance()
			p.advance()
		}
		if p.cur().kind == tokLParen {
			p.skipBalanced()
		}
		c.Span.End = p.prevEnd()
		d.Constants = append(d.Constants, c)
	}
}

// parseTypedef parses both alias forms: the generic "typedef Name = Type;"
// and the legacy function form "typedef Ret Name(params);". The raw span
// through the terminator is the signature.
func (p *parser) parseTypedef(meta metadata) *lang.Declaration {
	d := newDecl(lang.KindTypeAlias)
	d.Doc = meta.doc
	d.Annotations = meta.ann
	d.Span.Start = p.cur().start
	p.advance() // typedef

	if t := p.cur(); t.kind == tokIdent {
		next := p.at(1).kind
		if next == tokAssign || next == tokLt {
			d.Name = t.text
		}
	}

	prevIdent := ""
	for {
		t := p.cur()
		switch t.kind {
		case tokSemicolon:
			d.Span.End = t.end
			p.advance()
			return d
		case tokEOF:
			p.errorf(t.start, "unterminated typedef")
			d.Span.End = p.prevEnd()
			return d
		case tokLt:
			p.skipAngles()
		case tokLParen:
			// Legacy form: the alias name directly precedes the parameters.
			if d.Name == "" {
				d.Name = prevIdent
			}
			p.skipBalanced()
		case tokIdent:
			prevIdent = t.text
			p.advance()
		default:
			p.advance()
		}
	}
}

// headKind classifies what a member-like declaration turned out to be.
type headKind int

const (
	headVariable headKind = iota
	headFunction
	headGetter
	headSetter
	headOperator
)

// memberFlags are the modifier keywords consumed before classification.
type memberFlags struct {
	isExternal bool
	isStatic   bool
	isLate     bool
	isFinal    bool
	isConst    bool
}

// parseMemberLike parses functions, methods, getters, setters, constructors,
// fields and top-level variables.
func (p *parser) parseMemberLike(meta metadata, container *lang.Declaration) *lang.Declaration {
	start := p.cur().start
	flags := p.parseModifiers()

	if container != nil {
		if d := p.tryParseConstructor(meta, container, start, flags); d != nil {
			return d
		}
	}

	switch p.classifyHead() {
	case headGetter:
		return p.parseGetter(meta, container, start, flags)
	case headOperator:
		return p.parseOperator(meta, container, start, flags)
	case headSetter:
		return p.parseFunction(meta, container, start, flags, true)
	case headFunction:
		return p.parseFunction(meta, container, start, flags, false)
	default:
		return p.parseVariable(meta, container, start, flags)
	}
}

func (p *parser) parseModifiers() memberFlags {
	var flags memberFlags
	for p.cur().kind == tokIdent {
		switch p.cur().text {
		case "external":
			flags.isExternal = true
		case "static":
			flags.isStatic = true
		case "late":
			flags.isLate = true
		case "final":
			flags.isFinal = true
		case "const":
			flags.isConst = true
		case "var", "covariant", "abstract":
			// Consumed but not tracked: 'var' is implied by an absent type
			// span, the others do not affect the reduced signature.
		default:
			return flags
		}
		p.advance()
	}
	return flags
}

// tryParseConstructor recognizes "Name(", "Name.named(" and factory forms
// where Name matches the enclosing container, and parses the constructor.
// Returns nil when the head is not a constructor.
func (p *parser) tryParseConstructor(meta metadata, container *lang.Declaration, start int, flags memberFlags) *lang.Declaration {
	t := p.cur()
	isFactory := t.kind == tokIdent && t.text == "factory"
	nameIdx := 0
	if isFactory {
		nameIdx = 1
	}

	nameTok := p.at(nameIdx)
	if nameTok.kind != tokIdent || (!isFactory && nameTok.text != container.Name) {
		return nil
	}
	named := p.at(nameIdx+1).kind == tokDot && p.at(nameIdx+2).kind == tokIdent && p.at(nameIdx+3).kind == tokLParen
	if !named && p.at(nameIdx+1).kind != tokLParen && !isFactory {
		return nil
	}

	d := newDecl(lang.KindConstructor)
	d.Doc = meta.doc
	d.Annotations = meta.ann
	d.Span.Start = start
	d.IsExternal = flags.isExternal
	d.IsConst = flags.isConst

	if isFactory {
		p.advance()
	}
	p.advance() // container name
	if p.cur().kind == tokDot && p.at(1).kind == tokIdent {
		p.advance()
		d.Name = p.cur().text
		p.advance()
	}

	if p.cur().kind != tokLParen {
		p.warnf(p.cur().start, "constructor without parameter list")
		p.skipToSemicolon()
		d.Span.End = p.prevEnd()
		return d
	}
	d.Params = p.skipBalanced()

	// Redirecting factory: "factory Foo() = Bar;".
	if p.cur().kind == tokAssign {
		p.skipToSemicolon()
		d.Span.End = p.prevEnd()
		return d
	}
	// Initializer list runs until the body.
	if p.cur().kind == tokColon {
		p.advance()
		for {
			t := p.cur()
			if t.kind == tokLBrace || t.kind == tokSemicolon || t.kind == tokEOF {
				break
			}
			if isOpenDelim(t.kind) && t.kind != tokLBrace {
				p.skipBalanced()
				continue
			}
			p.advance()
		}
	}
	d.Span.End = p.skipBody(d)
	return d
}

// classifyHead looks ahead (without consuming) to decide whether the
// declaration is a getter, setter, operator, function-like member or a
// variable. The operator check must win before the operator token itself is
// seen: a '<' after "operator" is a name, not a type argument list.
func (p *parser) classifyHead() headKind {
	depth := 0
	angle := 0
	for i := p.pos; i < len(p.toks); i++ {
		t := p.toks[i]
		switch t.kind {
		case tokLParen, tokLBracket, tokLBrace:
			if depth == 0 && angle == 0 && t.kind == tokLParen {
				// A '(' after the 'Function' keyword belongs to a function
				// type, not to a declared member.
				if i > p.pos && p.toks[i-1].kind == tokIdent && p.toks[i-1].text == "Function" {
					depth++
					continue
				}
				return headFunction
			}
			if depth == 0 && angle == 0 && t.kind == tokLBrace {
				return headFunction
			}
			depth++
		case tokRParen, tokRBracket, tokRBrace:
			if depth > 0 {
				depth--
			}
		case tokLt:
			angle++
		case tokGt:
			if angle > 0 {
				angle--
			}
		case tokIdent:
			if depth == 0 && angle == 0 {
				if t.text == "operator" && isOperatorStart(p.toks[min(i+1, len(p.toks)-1)].kind) {
					return headOperator
				}
				if t.text == "get" && p.toks[min(i+1, len(p.toks)-1)].kind == tokIdent && isBodyToken(p.toks[min(i+2, len(p.toks)-1)]) {
					return headGetter
				}
				if t.text == "set" && p.toks[min(i+1, len(p.toks)-1)].kind == tokIdent && p.toks[min(i+2, len(p.toks)-1)].kind == tokLParen {
					return headSetter
				}
			}
		case tokAssign, tokComma, tokSemicolon:
			if depth == 0 && angle == 0 {
				return headVariable
			}
		case tokArrow:
			if depth == 0 && angle == 0 {
				return headFunction
			}
		case tokEOF:
			return headVariable
		}
	}
	return headVariable
}

// isBodyToken reports whether a token can directly follow a getter name.
func isBodyToken(t token) bool {
	switch t.kind {
	case tokLBrace, tokArrow, tokSemicolon:
		return true
	case tokIdent:
		return t.text == "async" || t.text == "sync"
	}
	return false
}

// parseGetter parses "Type get name <body>". The signature runs up to the
// body token.
func (p *parser) parseGetter(meta metadata, container *lang.Declaration, start int, flags memberFlags) *lang.Declaration {
	d := p.newMember(container, meta, start, flags)
	d.IsGetter = true

	for p.cur().kind != tokEOF {
		if p.cur().kind == tokLt {
			p.skipAngles()
			continue
		}
		if p.cur().kind == tokIdent && p.cur().text == "get" {
			p.advance()
			break
		}
		p.advance()
	}
	if p.cur().kind == tokIdent {
		d.Name = p.cur().text
		p.advance()
	}

	d.Span.End = p.skipBody(d)
	return d
}

// parseOperator parses an operator member: "Type operator <op>(params)
// <body>". The operator token run between the keyword and the parameter list
// is the member name, so '<', '<<' and '[]=' never reach the generic or
// variable paths.
func (p *parser) parseOperator(meta metadata, container *lang.Declaration, start int, flags memberFlags) *lang.Declaration {
	d := p.newMember(container, meta, start, flags)

	for p.cur().kind != tokEOF {
		if p.cur().kind == tokLt {
			p.skipAngles()
			continue
		}
		if p.cur().kind == tokIdent && p.cur().text == "operator" {
			p.advance()
			break
		}
		p.advance()
	}

	nameStart := p.cur().start
	for isOperatorPart(p.cur().kind) {
		p.advance()
	}
	if p.prevEnd() > nameStart {
		d.Name = string(p.src[nameStart:p.prevEnd()])
	} else {
		p.warnf(p.cur().start, "operator declaration without a symbol")
	}

	if p.cur().kind == tokLParen {
		d.Params = p.skipBalanced()
	}
	d.Span.End = p.skipBody(d)
	d.IsAbstract = d.BodyStart >= 0 && d.BodyStart < len(p.src) && p.src[d.BodyStart] == ';' && !d.IsExternal
	return d
}

// isOperatorStart reports whether a token can open a declared operator name.
// A bare '=' cannot, which keeps variables named "operator" classified as
// variables.
func isOperatorStart(k tokenKind) bool {
	return k == tokOp || k == tokLt || k == tokGt || k == tokLBracket
}

// isOperatorPart reports whether a token can continue a declared operator
// name, as in '[]=' or '>>'.
func isOperatorPart(k tokenKind) bool {
	return isOperatorStart(k) || k == tokRBracket || k == tokAssign
}

// parseFunction parses functions, methods and setters: everything with a
// parameter list and an elidable body.
func (p *parser) parseFunction(meta metadata, container *lang.Declaration, start int, flags memberFlags, setter bool) *lang.Declaration {
	d := p.newMember(container, meta, start, flags)
	d.IsSetter = setter

	lastIdent := ""
head:
	for {
		t := p.cur()
		switch {
		case t.kind == tokEOF:
			p.errorf(t.start, "unterminated declaration")
			d.Span.End = p.prevEnd()
			return d
		case t.kind == tokLt:
			p.skipAngles()
			continue
		case t.kind == tokIdent && t.text == "Function" && p.at(1).kind == tokLParen:
			p.advance()
			p.skipBalanced()
			continue
		case t.kind == tokLParen:
			d.Name = lastIdent
			break head
		case t.kind == tokLBrace || t.kind == tokArrow || t.kind == tokSemicolon:
			// Malformed head without a parameter list; fall through to the
			// body so recovery stays local.
			break head
		case t.kind == tokIdent:
			lastIdent = t.text
		}
		p.advance()
	}

	if p.cur().kind == tokLParen {
		d.Params = p.skipBalanced()
	}
	d.Span.End = p.skipBody(d)
	d.IsAbstract = d.BodyStart >= 0 && d.BodyStart < len(p.src) && p.src[d.BodyStart] == ';' && !d.IsExternal
	return d
}

// skipBody consumes a declaration body: a braced block, an expression body
// through its ';', or a bare ';'. Records BodyStart and returns the end
// offset of the declaration. Async markers preceding the body count as part
// of it, so reduced signatures do not carry them.
func (p *parser) skipBody(d *lang.Declaration) int {
	bodyStart := -1
	for p.cur().kind == tokIdent && (p.cur().text == "async" || p.cur().text == "sync") {
		if bodyStart < 0 {
			bodyStart = p.cur().start
		}
		p.advance()
		if p.cur().kind == tokOp { // the '*' of sync*/async*
			p.advance()
		}
	}

	t := p.cur()
	switch t.kind {
	case tokLBrace:
		if bodyStart < 0 {
			bodyStart = t.start
		}
		d.BodyStart = bodyStart
		p.skipBalanced()
		return p.prevEnd()
	case tokArrow:
		if bodyStart < 0 {
			bodyStart = t.start
		}
		d.BodyStart = bodyStart
		p.skipToSemicolon()
		return p.prevEnd()
	case tokSemicolon:
		if bodyStart < 0 {
			bodyStart = t.start
		}
		d.BodyStart = bodyStart
		p.advance()
		return t.end
	default:
		p.warnf(t.start, "expected declaration body")
		p.skipToSemicolon()
		return p.prevEnd()
	}
}

// parseVariable parses a field or top-level variable statement with one or
// more co-declared names and optional initializers.
func (p *parser) parseVariable(meta metadata, container *lang.Declaration, start int, flags memberFlags) *lang.Declaration {
	d := p.newMember(container, meta, start, flags)
	if container != nil {
		d.Kind = lang.KindField
	} else {
		d.Kind = lang.KindTopLevelVariable
	}

	headStart := p.pos
	nameIdx := -1
	for {
		t := p.cur()
		if t.kind == tokEOF {
			p.errorf(t.start, "unterminated variable declaration")
			d.Span.End = p.prevEnd()
			return d
		}
		if t.kind == tokLt {
			p.skipAngles()
			continue
		}
		if t.kind == tokIdent && t.text == "Function" && p.at(1).kind == tokLParen {
			p.advance()
			p.skipBalanced()
			continue
		}
		if t.kind == tokAssign || t.kind == tokComma || t.kind == tokSemicolon {
			break
		}
		if t.kind == tokIdent {
			nameIdx = p.pos
		}
		p.advance()
	}

	if nameIdx < 0 {
		p.warnf(p.cur().start, "variable declaration without a name")
		p.skipToSemicolon()
		return nil
	}

	d.Names = append(d.Names, p.toks[nameIdx].text)
	if nameIdx > headStart {
		d.Type = lang.Span{Start: p.toks[headStart].start, End: p.toks[nameIdx-1].end}
	}

	for {
		switch p.cur().kind {
		case tokAssign:
			p.advance()
			p.skipExpression()
		case tokComma:
			p.advance()
			if p.cur().kind == tokIdent {
				d.Names = append(d.Names, p.cur().text)
				p.advance()
			}
		case tokSemicolon:
			d.Span.End = p.cur().end
			p.advance()
			return d
		case tokEOF:
			p.errorf(p.cur().start, "unterminated variable declaration")
			d.Span.End = p.prevEnd()
			return d
		default:
			p.warnf(p.cur().start, "unexpected token in variable declaration")
			p.advance()
		}
	}
}

// newMember builds the common declaration skeleton for member-like kinds.
func (p *parser) newMember(container *lang.Declaration, meta metadata, start int, flags memberFlags) *lang.Declaration {
	kind := lang.KindFunction
	if container != nil {
		kind = lang.KindMethod
	}
	d := newDecl(kind)
	d.Doc = meta.doc
	d.Annotations = meta.ann
	d.Span.Start = start
	d.IsExternal = flags.isExternal
	d.IsStatic = flags.isStatic
	d.IsLate = flags.isLate
	d.IsFinal = flags.isFinal
	d.IsConst = flags.isConst
	return d
}

// skipExpression consumes an initializer expression up to (but excluding)
// the next ',' or ';' at delimiter depth zero.
func (p *parser) skipExpression() {
	for {
		t := p.cur()
		switch {
		case t.kind == tokEOF:
			return
		case t.kind == tokComma || t.kind == tokSemicolon:
			return
		case isOpenDelim(t.kind):
			p.skipBalanced()
		default:
			p.advance()
		}
	}
}

// skipToSemicolon consumes through the next ';' at delimiter depth zero.
func (p *parser) skipToSemicolon() {
	for {
		t := p.cur()
		switch {
		case t.kind == tokEOF:
			p.warnf(t.start, "missing ';'")
			return
		case t.kind == tokSemicolon:
			p.advance()
			return
		case isOpenDelim(t.kind):
			p.skipBalanced()
		default:
			p.advance()
		}
	}
}

// skipBalanced consumes a balanced delimiter group starting at the current
// open token and returns its span. All three delimiter kinds share one depth
// counter, which keeps recovery sane on mismatched input.
func (p *parser) skipBalanced() lang.Span {
	open := p.cur()
	sp := lang.Span{Start: open.start, End: open.end}
	depth := 0
	for {
		t := p.cur()
		switch {
		case t.kind == tokEOF:
			p.errorf(open.start, "unbalanced delimiters")
			sp.End = p.prevEnd()
			return sp
		case isOpenDelim(t.kind):
			depth++
		case isCloseDelim(t.kind):
			depth--
		}
		p.advance()
		if depth == 0 {
			sp.End = t.end
			return sp
		}
	}
}

// skipAngles consumes a generic type argument list. Bails out with a warning
// if the angles turn out not to be generics.
func (p *parser) skipAngles() {
	depth := 0
	for {
		t := p.cur()
		switch t.kind {
		case tokLt:
			depth++
			p.advance()
		case tokGt:
			depth--
			p.advance()
			if depth == 0 {
				return
			}
		case tokLParen:
			p.skipBalanced()
		case tokSemicolon, tokLBrace, tokEOF:
			p.warnf(t.start, "unterminated type argument list")
			return
		default:
			p.advance()
		}
	}
}

func isOpenDelim(k tokenKind) bool {
	return k == tokLParen || k == tokLBracket || k == tokLBrace
}

func isCloseDelim(k tokenKind) bool {
	return k == tokRParen || k == tokRBracket || k == tokRBrace
}
