// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package csharp

import (
	"fmt"
	"strings"

	"fillmore-labs.com/autoprop/internal/source"
	"fillmore-labs.com/autoprop/internal/syntax"
)

// parser is a recursive-descent parser over the lexed token stream.
type parser struct {
	fileName string
	content  string
	toks     []token
	pos      int
}

// parse parses one document into the shared syntax tree.
func parse(fileName, content string) (*syntax.File, error) {
	toks, err := lex(fileName, content)
	if err != nil {
		return nil, err
	}

	p := &parser{fileName: fileName, content: content, toks: toks}

	decls, err := p.parseDecls("")
	if err != nil {
		return nil, err
	}

	f := &syntax.File{FileName: fileName, Decls: decls}
	f.SetSpan(source.NewSpan(0, len(content)))
	syntax.SetParents(f)

	return f, nil
}

func (p *parser) cur() token  { return p.toks[p.pos] }
func (p *parser) prev() token { return p.toks[p.pos-1] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}

	return t
}

// at reports whether the current token has exactly the given text.
func (p *parser) at(text string) bool {
	return p.cur().text == text && p.cur().kind != tokEOF
}

func (p *parser) accept(text string) bool {
	if p.at(text) {
		p.pos++

		return true
	}

	return false
}

func (p *parser) expect(text string) (token, error) {
	if !p.at(text) {
		return token{}, p.errorf("expected %q, found %q", text, p.cur().text)
	}

	return p.next(), nil
}

func (p *parser) errorf(format string, args ...any) error {
	f := source.File{Name: p.fileName, Content: p.content}

	return fmt.Errorf("%s: %s", f.FormatPosition(p.cur().span.Start), fmt.Sprintf(format, args...))
}

// spanFrom builds a span from a start offset to the end of the last consumed token.
func (p *parser) spanFrom(start int) source.Span {
	return source.NewSpan(start, p.prev().span.End)
}

func (p *parser) ident() (*syntax.Ident, error) {
	if p.cur().kind != tokIdent {
		return nil, p.errorf("expected identifier, found %q", p.cur().text)
	}

	t := p.next()
	id := &syntax.Ident{Name: t.text}
	id.SetSpan(t.span)

	return id, nil
}

// parseDecls parses top-level declarations until the terminator (or EOF when empty).
func (p *parser) parseDecls(terminator string) ([]syntax.Node, error) {
	var decls []syntax.Node

	for p.cur().kind != tokEOF && !(terminator != "" && p.at(terminator)) {
		switch {
		case p.at("using"):
			for p.cur().kind != tokEOF && !p.accept(";") {
				p.next()
			}

		case p.at("namespace"):
			p.next()

			for p.cur().kind == tokIdent || p.at(".") {
				p.next()
			}

			if p.accept(";") {
				continue // file-scoped namespace
			}

			if _, err := p.expect("{"); err != nil {
				return nil, err
			}

			inner, err := p.parseDecls("}")
			if err != nil {
				return nil, err
			}

			if _, err := p.expect("}"); err != nil {
				return nil, err
			}

			decls = append(decls, inner...)

		default:
			cls, err := p.parseClass()
			if err != nil {
				return nil, err
			}

			decls = append(decls, cls)
		}
	}

	return decls, nil
}

var csharpModifiers = map[string]bool{
	"public": true, "private": true, "protected": true, "internal": true,
	"static": true, "readonly": true, "const": true, "partial": true,
	"sealed": true, "abstract": true, "new": false, "unsafe": true,
	"volatile": true, "virtual": true, "override": true,
}

func (p *parser) parseModifiers() syntax.Modifiers {
	var mods syntax.Modifiers

	for p.cur().kind == tokIdent && csharpModifiers[p.cur().text] {
		t := p.next()
		mods = append(mods, syntax.Modifier{Name: t.text, Span: t.span})
	}

	return mods
}

func (p *parser) parseAttrLists() ([]*syntax.AttributeList, error) {
	var attrs []*syntax.AttributeList

	for p.at("[") {
		start := p.cur().span.Start
		depth := 0

		for {
			t := p.next()
			switch t.text {
			case "[":
				depth++
			case "]":
				depth--
			}

			if depth == 0 {
				break
			}

			if t.kind == tokEOF {
				return nil, p.errorf("unterminated attribute list")
			}
		}

		span := p.spanFrom(start)
		a := &syntax.AttributeList{Text: p.content[span.Start:span.End]}
		a.SetSpan(span)
		attrs = append(attrs, a)
	}

	return attrs, nil
}

func (p *parser) parseClass() (*syntax.ClassDecl, error) {
	start := p.cur().span.Start

	attrs, err := p.parseAttrLists()
	if err != nil {
		return nil, err
	}

	mods := p.parseModifiers()

	if _, err := p.expect("class"); err != nil {
		return nil, err
	}

	name, err := p.ident()
	if err != nil {
		return nil, err
	}

	// skip base type list
	if p.accept(":") {
		for p.cur().kind != tokEOF && !p.at("{") {
			p.next()
		}
	}

	if _, err := p.expect("{"); err != nil {
		return nil, err
	}

	var members []syntax.Node

	for !p.at("}") {
		if p.cur().kind == tokEOF {
			return nil, p.errorf("unterminated class body")
		}

		m, err := p.parseMember(name.Name)
		if err != nil {
			return nil, err
		}

		members = append(members, m)
	}

	if _, err := p.expect("}"); err != nil {
		return nil, err
	}

	cls := &syntax.ClassDecl{
		Attrs:     attrs,
		Modifiers: mods,
		Name:      name,
		Members:   members,
		Partial:   mods.Has("partial"),
	}
	cls.SetSpan(p.spanFrom(start))

	return cls, nil
}

// parseMember dispatches on the tokens following the member's type:
// "(" begins a method, "{" or "=>" a property, anything else a field.
func (p *parser) parseMember(className string) (syntax.Node, error) {
	start := p.cur().span.Start

	attrs, err := p.parseAttrLists()
	if err != nil {
		return nil, err
	}

	mods := p.parseModifiers()

	if p.at("class") {
		p.pos = p.indexAt(start) // rewind over attrs/mods; parseClass reparses them
		return p.parseClass()
	}

	typeRef, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}

	if p.at("(") && typeRef.Name == className {
		// constructor: the "type" was the member name
		name := &syntax.Ident{Name: className}
		name.SetSpan(typeRef.Span())

		return p.parseMethodTail(start, mods, nil, name)
	}

	name, err := p.ident()
	if err != nil {
		return nil, err
	}

	switch {
	case p.at("("):
		return p.parseMethodTail(start, mods, typeRef, name)

	case p.at("{") || p.at("=>"):
		return p.parsePropertyTail(start, attrs, mods, typeRef, name)

	default:
		return p.parseFieldTail(start, attrs, mods, typeRef, name)
	}
}

// indexAt finds the token index whose span starts at the given offset.
func (p *parser) indexAt(offset int) int {
	for i := p.pos; i > 0; i-- {
		if p.toks[i-1].span.Start < offset {
			return i
		}
	}

	return 0
}

func (p *parser) parseTypeRef() (*syntax.TypeRef, error) {
	start := p.cur().span.Start

	if _, err := p.ident(); err != nil {
		return nil, err
	}

	for p.at(".") {
		p.next()
		if _, err := p.ident(); err != nil {
			return nil, err
		}
	}

	for p.at("[") && p.toks[p.pos+1].text == "]" {
		p.next()
		p.next()
	}

	span := p.spanFrom(start)
	t := &syntax.TypeRef{Name: p.content[span.Start:span.End]}
	t.SetSpan(span)

	return t, nil
}

func (p *parser) parseFieldTail(start int, attrs []*syntax.AttributeList, mods syntax.Modifiers, typeRef *syntax.TypeRef, name *syntax.Ident) (syntax.Node, error) {
	var decls []*syntax.Declarator

	d, err := p.parseDeclaratorTail(name)
	if err != nil {
		return nil, err
	}

	decls = append(decls, d)

	for p.accept(",") {
		name, err := p.ident()
		if err != nil {
			return nil, err
		}

		d, err := p.parseDeclaratorTail(name)
		if err != nil {
			return nil, err
		}

		decls = append(decls, d)
	}

	if _, err := p.expect(";"); err != nil {
		return nil, err
	}

	f := &syntax.FieldDecl{Attrs: attrs, Modifiers: mods, Type: typeRef, Declarators: decls}
	f.SetSpan(p.spanFrom(start))

	return f, nil
}

func (p *parser) parseDeclaratorTail(name *syntax.Ident) (*syntax.Declarator, error) {
	d := &syntax.Declarator{Name: name}
	end := name.Span().End

	if p.accept("=") {
		init, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		d.Init = init
		end = init.Span().End
	}

	d.SetSpan(source.NewSpan(name.Span().Start, end))

	return d, nil
}

func (p *parser) parsePropertyTail(start int, attrs []*syntax.AttributeList, mods syntax.Modifiers, typeRef *syntax.TypeRef, name *syntax.Ident) (syntax.Node, error) {
	prop := &syntax.PropertyDecl{Attrs: attrs, Modifiers: mods, Type: typeRef, Name: name}

	if p.at("=>") {
		// expression-bodied getter
		arrow := p.next()

		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		semi, err := p.expect(";")
		if err != nil {
			return nil, err
		}

		acc := &syntax.Accessor{Kind: syntax.GetAccessor, Expr: expr}
		acc.SetSpan(source.NewSpan(arrow.span.Start, semi.span.End))

		prop.Accessors = []*syntax.Accessor{acc}
		prop.AccessorsSpan = acc.Span()
		prop.SetSpan(p.spanFrom(start))

		return prop, nil
	}

	lbrace, err := p.expect("{")
	if err != nil {
		return nil, err
	}

	auto := true

	for !p.at("}") {
		acc, err := p.parseAccessor()
		if err != nil {
			return nil, err
		}

		if acc.Body != nil || acc.Expr != nil {
			auto = false
		}

		prop.Accessors = append(prop.Accessors, acc)
	}

	rbrace, err := p.expect("}")
	if err != nil {
		return nil, err
	}

	prop.AccessorsSpan = source.NewSpan(lbrace.span.Start, rbrace.span.End)
	prop.Auto = auto && len(prop.Accessors) > 0

	// auto-property initializer
	if prop.Auto && p.accept("=") {
		if _, err := p.parseExpr(); err != nil {
			return nil, err
		}

		if _, err := p.expect(";"); err != nil {
			return nil, err
		}
	}

	prop.SetSpan(p.spanFrom(start))

	return prop, nil
}

func (p *parser) parseAccessor() (*syntax.Accessor, error) {
	start := p.cur().span.Start
	mods := p.parseModifiers()

	var kind syntax.AccessorKind

	switch {
	case p.accept("get"):
		kind = syntax.GetAccessor

	case p.accept("set"):
		kind = syntax.SetAccessor

	default:
		return nil, p.errorf("expected accessor, found %q", p.cur().text)
	}

	acc := &syntax.Accessor{Kind: kind, Modifiers: mods, ValueName: "value"}

	switch {
	case p.accept(";"): // auto accessor

	case p.at("=>"):
		p.next()

		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(";"); err != nil {
			return nil, err
		}

		acc.Expr = expr

	default:
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}

		acc.Body = body
	}

	acc.SetSpan(p.spanFrom(start))

	return acc, nil
}

func (p *parser) parseMethodTail(start int, mods syntax.Modifiers, retType *syntax.TypeRef, name *syntax.Ident) (syntax.Node, error) {
	if _, err := p.expect("("); err != nil {
		return nil, err
	}

	var params []*syntax.Param

	for !p.at(")") {
		if len(params) > 0 {
			if _, err := p.expect(","); err != nil {
				return nil, err
			}
		}

		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}

		params = append(params, param)
	}

	if _, err := p.expect(")"); err != nil {
		return nil, err
	}

	m := &syntax.MethodDecl{Modifiers: mods, ReturnType: retType, Name: name, Params: params}

	switch {
	case p.accept(";"): // abstract or extern, no body

	case p.at("=>"):
		arrow := p.next()

		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		semi, err := p.expect(";")
		if err != nil {
			return nil, err
		}

		ret := &syntax.ReturnStmt{Result: expr}
		ret.SetSpan(source.NewSpan(arrow.span.Start, semi.span.End))

		body := &syntax.Block{Stmts: []syntax.Node{ret}}
		body.SetSpan(ret.Span())
		m.Body = body

	default:
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}

		m.Body = body
	}

	m.SetSpan(p.spanFrom(start))

	return m, nil
}

func (p *parser) parseParam() (*syntax.Param, error) {
	start := p.cur().span.Start
	byRef := false

	switch p.cur().text {
	case "ref", "out":
		byRef = true
		p.next()

	case "in", "params":
		p.next()
	}

	typeRef, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}

	name, err := p.ident()
	if err != nil {
		return nil, err
	}

	param := &syntax.Param{Name: name, Type: typeRef, ByRef: byRef}
	param.SetSpan(p.spanFrom(start))

	return param, nil
}

func (p *parser) parseBlock() (*syntax.Block, error) {
	start := p.cur().span.Start

	if _, err := p.expect("{"); err != nil {
		return nil, err
	}

	var stmts []syntax.Node

	for !p.at("}") {
		if p.cur().kind == tokEOF {
			return nil, p.errorf("unterminated block")
		}

		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	if _, err := p.expect("}"); err != nil {
		return nil, err
	}

	b := &syntax.Block{Stmts: stmts}
	b.SetSpan(p.spanFrom(start))

	return b, nil
}

func (p *parser) parseStmt() (syntax.Node, error) {
	switch {
	case p.at("{"):
		return p.parseBlock()

	case p.at("return"):
		start := p.next().span.Start
		ret := &syntax.ReturnStmt{}

		if !p.at(";") {
			expr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			ret.Result = expr
		}

		if _, err := p.expect(";"); err != nil {
			return nil, err
		}

		ret.SetSpan(p.spanFrom(start))

		return ret, nil

	case p.at("if"):
		return p.parseIf()

	case p.at("while"):
		start := p.next().span.Start

		cond, err := p.parseParenExpr()
		if err != nil {
			return nil, err
		}

		body, err := p.parseStmtAsBlock()
		if err != nil {
			return nil, err
		}

		w := &syntax.WhileStmt{Cond: cond, Body: body}
		w.SetSpan(p.spanFrom(start))

		return w, nil

	default:
		if decl, ok, err := p.tryLocalDecl(); err != nil {
			return nil, err
		} else if ok {
			return decl, nil
		}

		start := p.cur().span.Start

		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(";"); err != nil {
			return nil, err
		}

		stmt := &syntax.ExprStmt{X: expr}
		stmt.SetSpan(p.spanFrom(start))

		return stmt, nil
	}
}

func (p *parser) parseIf() (syntax.Node, error) {
	start := p.next().span.Start // "if"

	cond, err := p.parseParenExpr()
	if err != nil {
		return nil, err
	}

	then, err := p.parseStmtAsBlock()
	if err != nil {
		return nil, err
	}

	stmt := &syntax.IfStmt{Cond: cond, Then: then}

	if p.accept("else") {
		if p.at("if") {
			elseIf, err := p.parseIf()
			if err != nil {
				return nil, err
			}

			stmt.Else = elseIf
		} else {
			elseBlock, err := p.parseStmtAsBlock()
			if err != nil {
				return nil, err
			}

			stmt.Else = elseBlock
		}
	}

	stmt.SetSpan(p.spanFrom(start))

	return stmt, nil
}

func (p *parser) parseParenExpr() (syntax.Expr, error) {
	if _, err := p.expect("("); err != nil {
		return nil, err
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(")"); err != nil {
		return nil, err
	}

	return expr, nil
}

// parseStmtAsBlock parses a statement, wrapping non-block statements in a block.
func (p *parser) parseStmtAsBlock() (*syntax.Block, error) {
	if p.at("{") {
		return p.parseBlock()
	}

	stmt, err := p.parseStmt()
	if err != nil {
		return nil, err
	}

	b := &syntax.Block{Stmts: []syntax.Node{stmt}}
	b.SetSpan(stmt.Span())

	return b, nil
}

// tryLocalDecl speculatively parses "Type name (= expr)? (, name (= expr)?)* ;".
// On any mismatch the parser position is restored and no statement is produced.
func (p *parser) tryLocalDecl() (syntax.Node, bool, error) {
	saved := p.pos
	start := p.cur().span.Start

	if p.cur().kind != tokIdent || stmtKeywords[p.cur().text] {
		return nil, false, nil
	}

	typeRef, err := p.parseTypeRef()
	if err != nil {
		p.pos = saved
		return nil, false, nil
	}

	if p.cur().kind != tokIdent {
		p.pos = saved
		return nil, false, nil
	}

	if next := p.toks[p.pos+1].text; next != "=" && next != "," && next != ";" {
		p.pos = saved
		return nil, false, nil
	}

	var decls []*syntax.Declarator

	for {
		name, err := p.ident()
		if err != nil {
			return nil, false, err
		}

		d, err := p.parseDeclaratorTail(name)
		if err != nil {
			return nil, false, err
		}

		decls = append(decls, d)

		if !p.accept(",") {
			break
		}
	}

	if _, err := p.expect(";"); err != nil {
		return nil, false, err
	}

	decl := &syntax.LocalDecl{Type: typeRef, Declarators: decls}
	decl.SetSpan(p.spanFrom(start))

	return decl, true, nil
}

var stmtKeywords = map[string]bool{
	"return": true, "if": true, "else": true, "while": true,
}

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"&=": true, "|=": true,
}

func (p *parser) parseExpr() (syntax.Expr, error) {
	start := p.cur().span.Start

	lhs, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}

	if op := p.cur().text; p.cur().kind == tokPunct && assignOps[op] {
		p.next()

		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		asg := &syntax.AssignExpr{Lhs: lhs, Op: op, Rhs: rhs}
		asg.SetSpan(p.spanFrom(start))

		return asg, nil
	}

	return lhs, nil
}

// binaryOps lists operator precedence levels, loosest first.
var binaryOps = [][]string{
	{"||"},
	{"&&"},
	{"|"},
	{"&"},
	{"==", "!="},
	{"<", ">", "<=", ">="},
	{"+", "-"},
	{"*", "/", "%"},
}

func (p *parser) parseBinary(level int) (syntax.Expr, error) {
	if level >= len(binaryOps) {
		return p.parseUnary()
	}

	start := p.cur().span.Start

	lhs, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}

	for p.cur().kind == tokPunct && contains(binaryOps[level], p.cur().text) {
		op := p.next().text

		rhs, err := p.parseBinary(level + 1)
		if err != nil {
			return nil, err
		}

		bin := &syntax.BinaryExpr{X: lhs, Op: op, Y: rhs}
		bin.SetSpan(p.spanFrom(start))
		lhs = bin
	}

	return lhs, nil
}

func contains(ops []string, op string) bool {
	for _, o := range ops {
		if o == op {
			return true
		}
	}

	return false
}

func (p *parser) parseUnary() (syntax.Expr, error) {
	switch op := p.cur().text; op {
	case "&", "!", "-", "+", "++", "--":
		start := p.next().span.Start

		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		u := &syntax.UnaryExpr{Op: op, X: x}
		u.SetSpan(source.NewSpan(start, x.Span().End))

		return u, nil
	}

	return p.parsePostfix()
}

func (p *parser) parsePostfix() (syntax.Expr, error) {
	start := p.cur().span.Start

	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.at("."):
			p.next()

			name, err := p.ident()
			if err != nil {
				return nil, err
			}

			ma := &syntax.MemberAccess{Target: expr, Name: name}
			ma.SetSpan(p.spanFrom(start))
			expr = ma

		case p.at("("):
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}

			call := &syntax.CallExpr{Fun: expr, Args: args}
			call.SetSpan(p.spanFrom(start))
			expr = call

		case p.at("++") || p.at("--"):
			op := p.next().text

			u := &syntax.UnaryExpr{Op: op, X: expr}
			u.SetSpan(p.spanFrom(start))
			expr = u

		default:
			return expr, nil
		}
	}
}

func (p *parser) parseArgs() ([]*syntax.Argument, error) {
	if _, err := p.expect("("); err != nil {
		return nil, err
	}

	var args []*syntax.Argument

	for !p.at(")") {
		if len(args) > 0 {
			if _, err := p.expect(","); err != nil {
				return nil, err
			}
		}

		start := p.cur().span.Start
		mode := syntax.RefNone

		switch p.cur().text {
		case "ref":
			mode = syntax.RefRef
			p.next()

		case "out":
			mode = syntax.RefOut
			p.next()
		}

		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		arg := &syntax.Argument{Mode: mode, Value: value}
		arg.SetSpan(p.spanFrom(start))
		args = append(args, arg)
	}

	if _, err := p.expect(")"); err != nil {
		return nil, err
	}

	return args, nil
}

func (p *parser) parsePrimary() (syntax.Expr, error) {
	t := p.cur()

	switch {
	case t.kind == tokLiteral:
		p.next()

		lit := &syntax.BasicLit{Text: t.text}
		lit.SetSpan(t.span)

		return lit, nil

	case t.text == "this":
		p.next()

		self := &syntax.SelfExpr{}
		self.SetSpan(t.span)

		return self, nil

	case t.text == "new":
		return p.parseNew()

	case t.kind == tokIdent:
		return p.ident()

	case t.text == "(":
		start := p.next().span.Start

		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(")"); err != nil {
			return nil, err
		}

		paren := &syntax.ParenExpr{X: inner}
		paren.SetSpan(p.spanFrom(start))

		return paren, nil

	default:
		return nil, p.errorf("unexpected token %q in expression", t.text)
	}
}

// parseNew parses "new Type(args)" as a call on the type name.
func (p *parser) parseNew() (syntax.Expr, error) {
	start := p.next().span.Start // "new"

	typeRef, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}

	fun := &syntax.Ident{Name: strings.TrimSpace(typeRef.Name)}
	fun.SetSpan(typeRef.Span())

	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}

	call := &syntax.CallExpr{Fun: fun, Args: args}
	call.SetSpan(p.spanFrom(start))

	return call, nil
}
