// Package python maps tree-sitter Python parse trees onto the declaration
// model. Python's leading-underscore convention lines up with the visibility
// filter natively, which makes the mapping mostly mechanical: classes become
// containers, defs become functions or methods, decorators become annotation
// spans. Support is experimental: unknown node kinds are skipped, never
// fatal.
package python

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tspython "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/PhilippHGerber/llmifier/internal/lang"
)

// Provider parses Python files via tree-sitter.
type Provider struct {
	language *sitter.Language
}

func NewProvider() *Provider {
	return &Provider{language: sitter.NewLanguage(tspython.Language())}
}

func (*Provider) Language() string {
	return "python"
}

// Parse builds the declaration tree for one Python file. A tree containing
// ERROR nodes marks the file as failed so the caller falls back to verbatim
// content.
func (p *Provider) Parse(path string, source []byte) (*lang.File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(p.language)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return &lang.File{
			Path:   path,
			Source: source,
			Diagnostics: []lang.Diagnostic{
				{Severity: lang.SeverityError, Message: "tree-sitter returned no parse tree"},
			},
		}, nil
	}
	defer tree.Close()

	root := tree.RootNode()
	f := &lang.File{Path: path, Source: source}
	if root.HasError() {
		f.Diagnostics = append(f.Diagnostics, lang.Diagnostic{
			Severity: lang.SeverityError,
			Message:  "syntax errors in parse tree",
		})
		return f, nil
	}

	f.Decls = p.mapBlock(root, source, false)
	return f, nil
}

// mapBlock converts the statements of a module or class body. Consecutive
// comment lines directly above a declaration travel with it as its
// documentation block.
func (p *Provider) mapBlock(block *sitter.Node, source []byte, inClass bool) []*lang.Declaration {
	var decls []*lang.Declaration
	var pendingDoc []lang.Span
	lastCommentRow := -2

	resetDoc := func() {
		pendingDoc = nil
		lastCommentRow = -2
	}
	takeDoc := func(n *sitter.Node) []lang.Span {
		doc := pendingDoc
		if int(n.StartPosition().Row) != lastCommentRow+1 {
			doc = nil
		}
		resetDoc()
		return doc
	}

	for i := uint(0); i < block.ChildCount(); i++ {
		child := block.Child(i)
		switch child.Kind() {
		case "comment":
			row := int(child.StartPosition().Row)
			if row != lastCommentRow+1 {
				pendingDoc = nil
			}
			pendingDoc = append(pendingDoc, nodeSpan(child))
			lastCommentRow = row

		case "decorated_definition":
			if d := p.mapDecorated(child, source, inClass, takeDoc(child)); d != nil {
				decls = append(decls, d)
			}

		case "function_definition":
			if d := p.mapFunction(child, source, inClass, nil, takeDoc(child)); d != nil {
				decls = append(decls, d)
			}

		case "class_definition":
			if d := p.mapClass(child, source, nil, takeDoc(child)); d != nil {
				decls = append(decls, d)
			}

		case "expression_statement":
			if d := p.mapAssignment(child, source, inClass, takeDoc(child)); d != nil {
				decls = append(decls, d)
			}

		case "type_alias_statement":
			d := newDecl(lang.KindTypeAlias)
			d.Doc = takeDoc(child)
			d.Span = nodeSpan(child)
			if name := child.ChildByFieldName("name"); name != nil {
				d.Name = nodeText(name, source)
			}
			decls = append(decls, d)

		default:
			resetDoc()
		}
	}
	return decls
}

// mapDecorated unwraps a decorated definition, turning the decorators into
// annotation spans on the inner declaration.
func (p *Provider) mapDecorated(node *sitter.Node, source []byte, inClass bool, doc []lang.Span) *lang.Declaration {
	var annotations []lang.Span
	var getter, setter, abstract bool
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() != "decorator" {
			continue
		}
		annotations = append(annotations, nodeSpan(child))
		text := strings.TrimPrefix(nodeText(child, source), "@")
		switch {
		case text == "property":
			getter = true
		case strings.HasSuffix(text, ".setter"):
			setter = true
		case text == "abstractmethod" || strings.HasSuffix(text, ".abstractmethod"):
			abstract = true
		}
	}

	def := node.ChildByFieldName("definition")
	if def == nil {
		return nil
	}
	var d *lang.Declaration
	switch def.Kind() {
	case "function_definition":
		d = p.mapFunction(def, source, inClass, annotations, doc)
	case "class_definition":
		d = p.mapClass(def, source, annotations, doc)
	}
	if d == nil {
		return nil
	}
	d.IsGetter = getter
	d.IsSetter = setter
	d.IsAbstract = abstract
	return d
}

func (p *Provider) mapFunction(node *sitter.Node, source []byte, inClass bool, annotations []lang.Span, doc []lang.Span) *lang.Declaration {
	name := node.ChildByFieldName("name")
	params := node.ChildByFieldName("parameters")
	if name == nil || params == nil {
		return nil
	}

	kind := lang.KindFunction
	if inClass {
		kind = lang.KindMethod
	}
	d := newDecl(kind)
	d.Name = nodeText(name, source)
	d.Doc = doc
	d.Annotations = annotations
	d.Span = nodeSpan(node)
	d.Params = nodeSpan(params)

	// The reduced signature should keep the return annotation, so the
	// parameter span is stretched across it.
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		d.Params.End = int(ret.EndByte())
	}
	// The body "starts" at the def's colon: everything before it is
	// signature.
	if colon := childOfKind(node, ":"); colon != nil {
		d.BodyStart = int(colon.StartByte())
	}
	return d
}

func (p *Provider) mapClass(node *sitter.Node, source []byte, annotations []lang.Span, doc []lang.Span) *lang.Declaration {
	name := node.ChildByFieldName("name")
	body := node.ChildByFieldName("body")
	if name == nil || body == nil {
		return nil
	}

	d := newDecl(lang.KindClass)
	d.Name = nodeText(name, source)
	d.Doc = doc
	d.Annotations = annotations
	d.Span = nodeSpan(node)
	// The colon after the class head plays the opening-delimiter role.
	if colon := childOfKind(node, ":"); colon != nil {
		d.OpenBrace = int(colon.StartByte())
	}
	d.Members = p.mapBlock(body, source, true)
	return d
}

// mapAssignment converts module- and class-level assignments. Class
// attributes are class-scoped and constant-initialized for the surface
// transform, so their raw statement span survives verbatim with the
// initializer, same as module-level variables.
func (p *Provider) mapAssignment(stmt *sitter.Node, source []byte, inClass bool, doc []lang.Span) *lang.Declaration {
	if stmt.ChildCount() == 0 {
		return nil
	}
	assign := stmt.Child(0)
	if assign.Kind() != "assignment" {
		return nil
	}
	left := assign.ChildByFieldName("left")
	if left == nil || left.Kind() != "identifier" {
		return nil
	}

	kind := lang.KindTopLevelVariable
	d := newDecl(kind)
	if inClass {
		d.Kind = lang.KindField
		d.IsStatic = true
		d.IsConst = true
	}
	d.Doc = doc
	d.Names = []string{nodeText(left, source)}
	d.Span = nodeSpan(stmt)
	if typ := assign.ChildByFieldName("type"); typ != nil {
		d.Type = nodeSpan(typ)
	}
	return d
}

func newDecl(kind lang.Kind) *lang.Declaration {
	return &lang.Declaration{Kind: kind, OpenBrace: -1, BodyStart: -1}
}

func nodeSpan(n *sitter.Node) lang.Span {
	return lang.Span{Start: int(n.StartByte()), End: int(n.EndByte())}
}

func nodeText(n *sitter.Node, source []byte) string {
	return string(source[n.StartByte():n.EndByte()])
}

// childOfKind finds the first (anonymous or named) child with the given
// node kind.
func childOfKind(n *sitter.Node, kind string) *sitter.Node {
	for i := uint(0); i < n.ChildCount(); i++ {
		if c := n.Child(i); c.Kind() == kind {
			return c
		}
	}
	return nil
}
