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

package vb

import (
	"fmt"
	"strings"

	"fillmore-labs.com/autoprop/internal/source"
	"fillmore-labs.com/autoprop/internal/syntax"
)

// parser is a recursive-descent parser over the lexed token stream.
// Keywords are matched case-insensitively, as the language requires.
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

// atKw reports whether the current token is the given keyword, ignoring case.
func (p *parser) atKw(kw string) bool {
	return p.cur().kind == tokIdent && strings.EqualFold(p.cur().text, kw)
}

func (p *parser) acceptKw(kw string) bool {
	if p.atKw(kw) {
		p.pos++

		return true
	}

	return false
}

func (p *parser) expectKw(kw string) (token, error) {
	if !p.atKw(kw) {
		return token{}, p.errorf("expected %q, found %q", kw, p.cur().text)
	}

	return p.next(), nil
}

func (p *parser) at(text string) bool {
	return p.cur().kind == tokPunct && p.cur().text == text
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

func (p *parser) expectEOL() error {
	if p.cur().kind == tokEOF {
		return nil
	}

	if p.cur().kind != tokEOL {
		return p.errorf("expected end of statement, found %q", p.cur().text)
	}

	p.pos++

	return nil
}

func (p *parser) skipEOL() {
	for p.cur().kind == tokEOL {
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...any) error {
	f := source.File{Name: p.fileName, Content: p.content}

	return fmt.Errorf("%s: %s", f.FormatPosition(p.cur().span.Start), fmt.Sprintf(format, args...))
}

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

// skipLine discards tokens up to and including the line terminator.
func (p *parser) skipLine() {
	for p.cur().kind != tokEOF && p.cur().kind != tokEOL {
		p.pos++
	}
	p.skipEOL()
}

// parseDecls parses declarations until "End <terminator>" (or EOF when empty).
func (p *parser) parseDecls(terminator string) ([]syntax.Node, error) {
	var decls []syntax.Node

	for {
		p.skipEOL()

		if p.cur().kind == tokEOF {
			if terminator != "" {
				return nil, p.errorf("expected %q", "End "+terminator)
			}

			return decls, nil
		}

		if terminator != "" && p.atKw("End") {
			return decls, nil
		}

		switch {
		case p.atKw("Imports") || p.atKw("Option"):
			p.skipLine()

		case p.atKw("Namespace"):
			p.skipLine()

			inner, err := p.parseDecls("Namespace")
			if err != nil {
				return nil, err
			}

			if err := p.expectEnd("Namespace"); err != nil {
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
}

func (p *parser) expectEnd(what string) error {
	if _, err := p.expectKw("End"); err != nil {
		return err
	}

	if _, err := p.expectKw(what); err != nil {
		return err
	}

	return p.expectEOL()
}

var vbModifiers = map[string]bool{
	"public": true, "private": true, "protected": true, "friend": true,
	"shared": true, "shadows": true, "readonly": true, "writeonly": true,
	"const": true, "partial": true, "overridable": true, "overrides": true,
	"mustinherit": true, "notinheritable": true, "dim": true, "static": true,
}

func (p *parser) parseModifiers() syntax.Modifiers {
	var mods syntax.Modifiers

	for p.cur().kind == tokIdent && vbModifiers[strings.ToLower(p.cur().text)] {
		t := p.next()
		mods = append(mods, syntax.Modifier{Name: t.text, Span: t.span})
	}

	return mods
}

// parseAttrLists parses "<...>" attribute lists preceding a declaration.
func (p *parser) parseAttrLists() ([]*syntax.AttributeList, error) {
	var attrs []*syntax.AttributeList

	for p.at("<") {
		start := p.cur().span.Start
		depth := 0

		for {
			t := p.next()
			switch t.text {
			case "<":
				depth++
			case ">":
				depth--
			}

			if depth == 0 {
				break
			}

			if t.kind == tokEOF || t.kind == tokEOL {
				return nil, p.errorf("unterminated attribute list")
			}
		}

		span := p.spanFrom(start)
		a := &syntax.AttributeList{Text: p.content[span.Start:span.End]}
		a.SetSpan(span)
		attrs = append(attrs, a)

		p.skipEOL() // attributes may sit on their own line
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

	return p.parseClassTail(start, attrs, mods)
}

func (p *parser) parseClassTail(start int, attrs []*syntax.AttributeList, mods syntax.Modifiers) (*syntax.ClassDecl, error) {
	if _, err := p.expectKw("Class"); err != nil {
		return nil, err
	}

	name, err := p.ident()
	if err != nil {
		return nil, err
	}

	if err := p.expectEOL(); err != nil {
		return nil, err
	}

	for p.atKw("Inherits") || p.atKw("Implements") {
		p.skipLine()
	}

	var members []syntax.Node

	for {
		p.skipEOL()

		if p.atKw("End") {
			break
		}

		if p.cur().kind == tokEOF {
			return nil, p.errorf("unterminated class body")
		}

		m, err := p.parseMember()
		if err != nil {
			return nil, err
		}

		members = append(members, m)
	}

	if err := p.expectEnd("Class"); err != nil {
		return nil, err
	}

	cls := &syntax.ClassDecl{
		Attrs:     attrs,
		Modifiers: mods,
		Name:      name,
		Members:   members,
		Partial:   mods.Has("Partial"),
	}
	cls.SetSpan(source.NewSpan(start, endKeywordEnd(p)))

	return cls, nil
}

// endKeywordEnd is the end offset of the consumed "End Xxx" pair, skipping
// the line terminator that expectEnd swallowed.
func endKeywordEnd(p *parser) int {
	i := p.pos - 1
	for i > 0 && p.toks[i].kind == tokEOL {
		i--
	}

	return p.toks[i].span.End
}

func (p *parser) parseMember() (syntax.Node, error) {
	start := p.cur().span.Start

	attrs, err := p.parseAttrLists()
	if err != nil {
		return nil, err
	}

	mods := p.parseModifiers()

	switch {
	case p.atKw("Class"):
		return p.parseClassTail(start, attrs, mods)

	case p.atKw("Property"):
		return p.parsePropertyTail(start, attrs, mods)

	case p.atKw("Sub") || p.atKw("Function"):
		return p.parseMethodTail(start, mods)

	default:
		return p.parseFieldTail(start, attrs, mods)
	}
}

// parseFieldTail parses "name (, name)* As Type (= expr)?".
func (p *parser) parseFieldTail(start int, attrs []*syntax.AttributeList, mods syntax.Modifiers) (syntax.Node, error) {
	names, err := p.parseNameList()
	if err != nil {
		return nil, err
	}

	typeRef, init, err := p.parseAsClause(len(names) > 1)
	if err != nil {
		return nil, err
	}

	decls := makeDeclarators(names, init)

	f := &syntax.FieldDecl{Attrs: attrs, Modifiers: mods, Type: typeRef, Declarators: decls}
	f.SetSpan(p.spanFrom(start))

	if err := p.expectEOL(); err != nil {
		return nil, err
	}

	return f, nil
}

func (p *parser) parseNameList() ([]*syntax.Ident, error) {
	var names []*syntax.Ident

	for {
		name, err := p.ident()
		if err != nil {
			return nil, err
		}

		names = append(names, name)

		if !p.accept(",") {
			break
		}
	}

	return names, nil
}

// parseAsClause parses "As Type (= expr)?". The initializer is rejected on
// multi-name declarations, matching the language rule.
func (p *parser) parseAsClause(multi bool) (*syntax.TypeRef, syntax.Expr, error) {
	if _, err := p.expectKw("As"); err != nil {
		return nil, nil, err
	}

	typeRef, err := p.parseTypeRef()
	if err != nil {
		return nil, nil, err
	}

	var init syntax.Expr

	if p.accept("=") {
		if multi {
			return nil, nil, p.errorf("initializer on multi-name declaration")
		}

		init, err = p.parseExpr()
		if err != nil {
			return nil, nil, err
		}
	}

	return typeRef, init, nil
}

func makeDeclarators(names []*syntax.Ident, init syntax.Expr) []*syntax.Declarator {
	decls := make([]*syntax.Declarator, 0, len(names))

	for i, name := range names {
		d := &syntax.Declarator{Name: name}
		end := name.Span().End

		if init != nil && i == len(names)-1 {
			d.Init = init
			end = init.Span().End
		}

		d.SetSpan(source.NewSpan(name.Span().Start, end))
		decls = append(decls, d)
	}

	return decls
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

	// array type: "()" after the name
	if p.at("(") && p.toks[p.pos+1].text == ")" {
		p.next()
		p.next()
	}

	span := p.spanFrom(start)
	t := &syntax.TypeRef{Name: p.content[span.Start:span.End]}
	t.SetSpan(span)

	return t, nil
}

// parsePropertyTail parses a property declaration starting at the
// "Property" keyword. A header without a following accessor block is an
// auto-property.
func (p *parser) parsePropertyTail(start int, attrs []*syntax.AttributeList, mods syntax.Modifiers) (syntax.Node, error) {
	if _, err := p.expectKw("Property"); err != nil {
		return nil, err
	}

	name, err := p.ident()
	if err != nil {
		return nil, err
	}

	typeRef, init, err := p.parseAsClause(false)
	if err != nil {
		return nil, err
	}

	headerEnd := p.prev().span.End

	if err := p.expectEOL(); err != nil {
		return nil, err
	}

	prop := &syntax.PropertyDecl{Attrs: attrs, Modifiers: mods, Type: typeRef, Name: name}
	_ = init // auto-property initializer needs no further analysis

	p.skipEOL()

	if !p.atAccessor() {
		prop.Auto = true
		prop.AccessorsSpan = source.NewSpan(headerEnd, headerEnd)
		prop.SetSpan(source.NewSpan(start, headerEnd))

		return prop, nil
	}

	for p.atAccessor() {
		acc, err := p.parseAccessor()
		if err != nil {
			return nil, err
		}

		prop.Accessors = append(prop.Accessors, acc)
		p.skipEOL()
	}

	if err := p.expectEnd("Property"); err != nil {
		return nil, err
	}

	first := prop.Accessors[0].Span()
	last := prop.Accessors[len(prop.Accessors)-1].Span()
	prop.AccessorsSpan = source.NewSpan(first.Start, last.End)
	prop.SetSpan(source.NewSpan(start, endKeywordEnd(p)))

	return prop, nil
}

// atAccessor reports whether an accessor header starts here, looking past
// accessor-level modifiers.
func (p *parser) atAccessor() bool {
	i := p.pos
	for p.toks[i].kind == tokIdent && vbModifiers[strings.ToLower(p.toks[i].text)] {
		i++
	}

	t := p.toks[i]

	return t.kind == tokIdent && (strings.EqualFold(t.text, "Get") || strings.EqualFold(t.text, "Set"))
}

func (p *parser) parseAccessor() (*syntax.Accessor, error) {
	start := p.cur().span.Start
	mods := p.parseModifiers()

	var (
		kind      syntax.AccessorKind
		valueName string
		what      string
	)

	switch {
	case p.acceptKw("Get"):
		kind, what = syntax.GetAccessor, "Get"

	case p.acceptKw("Set"):
		kind, what, valueName = syntax.SetAccessor, "Set", "value"

		if p.accept("(") {
			value, err := p.ident()
			if err != nil {
				return nil, err
			}

			valueName = value.Name

			if p.atKw("As") {
				if _, _, err := p.parseAsClause(false); err != nil {
					return nil, err
				}
			}

			if _, err := p.expect(")"); err != nil {
				return nil, err
			}
		}

	default:
		return nil, p.errorf("expected accessor, found %q", p.cur().text)
	}

	if err := p.expectEOL(); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	if err := p.expectEnd(what); err != nil {
		return nil, err
	}

	acc := &syntax.Accessor{Kind: kind, Modifiers: mods, Body: body, ValueName: valueName}
	acc.SetSpan(source.NewSpan(start, endKeywordEnd(p)))

	return acc, nil
}

func (p *parser) parseMethodTail(start int, mods syntax.Modifiers) (syntax.Node, error) {
	isFunction := p.atKw("Function")
	what := "Sub"
	if isFunction {
		what = "Function"
	}

	p.next()

	var name *syntax.Ident

	if p.atKw("New") { // constructor
		t := p.next()
		name = &syntax.Ident{Name: t.text}
		name.SetSpan(t.span)
	} else {
		var err error
		if name, err = p.ident(); err != nil {
			return nil, err
		}
	}

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

	m := &syntax.MethodDecl{Modifiers: mods, Name: name, Params: params}

	if isFunction {
		if _, err := p.expectKw("As"); err != nil {
			return nil, err
		}

		retType, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}

		m.ReturnType = retType
	}

	if err := p.expectEOL(); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	if err := p.expectEnd(what); err != nil {
		return nil, err
	}

	m.Body = body
	m.SetSpan(source.NewSpan(start, endKeywordEnd(p)))

	return m, nil
}

func (p *parser) parseParam() (*syntax.Param, error) {
	start := p.cur().span.Start
	byRef := false

	switch {
	case p.acceptKw("ByRef"):
		byRef = true

	case p.acceptKw("ByVal"):
	}

	name, err := p.ident()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectKw("As"); err != nil {
		return nil, err
	}

	typeRef, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}

	param := &syntax.Param{Name: name, Type: typeRef, ByRef: byRef}
	param.SetSpan(p.spanFrom(start))

	return param, nil
}

// parseBlock parses statements up to (not including) a block terminator
// keyword: "End", "Else" or "ElseIf".
func (p *parser) parseBlock() (*syntax.Block, error) {
	p.skipEOL()
	start := p.cur().span.Start
	end := start

	var stmts []syntax.Node

	for {
		p.skipEOL()

		if p.atKw("End") || p.atKw("Else") || p.atKw("ElseIf") {
			break
		}

		if p.cur().kind == tokEOF {
			return nil, p.errorf("unterminated block")
		}

		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
		end = stmt.Span().End
	}

	b := &syntax.Block{Stmts: stmts}
	b.SetSpan(source.NewSpan(start, end))

	return b, nil
}

func (p *parser) parseStmt() (syntax.Node, error) {
	switch {
	case p.atKw("Return"):
		start := p.next().span.Start
		ret := &syntax.ReturnStmt{}

		if p.cur().kind != tokEOL && p.cur().kind != tokEOF {
			expr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			ret.Result = expr
		}

		ret.SetSpan(p.spanFrom(start))

		if err := p.expectEOL(); err != nil {
			return nil, err
		}

		return ret, nil

	case p.atKw("If"):
		return p.parseIf()

	case p.atKw("While"):
		start := p.next().span.Start

		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if err := p.expectEOL(); err != nil {
			return nil, err
		}

		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}

		if err := p.expectEnd("While"); err != nil {
			return nil, err
		}

		w := &syntax.WhileStmt{Cond: cond, Body: body}
		w.SetSpan(source.NewSpan(start, endKeywordEnd(p)))

		return w, nil

	case p.atKw("Dim"):
		return p.parseLocalDecl()

	default:
		return p.parseExprStmt()
	}
}

func (p *parser) parseIf() (syntax.Node, error) {
	start := p.next().span.Start // "If" or "ElseIf"

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectKw("Then"); err != nil {
		return nil, err
	}

	stmt := &syntax.IfStmt{Cond: cond}

	if p.cur().kind != tokEOL { // single-line form
		then, err := p.parseStmt()
		if err != nil {
			return nil, err
		}

		block := &syntax.Block{Stmts: []syntax.Node{then}}
		block.SetSpan(then.Span())
		stmt.Then = block
		stmt.SetSpan(source.NewSpan(start, then.Span().End))

		return stmt, nil
	}

	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	stmt.Then = then

	switch {
	case p.atKw("ElseIf"):
		// parseIf consumes the leading keyword, so the tail parses as a
		// nested If
		elseIf, err := p.parseIf()
		if err != nil {
			return nil, err
		}

		stmt.Else = elseIf
		stmt.SetSpan(source.NewSpan(start, elseIf.Span().End))

		return stmt, nil

	case p.acceptKw("Else"):
		if err := p.expectEOL(); err != nil {
			return nil, err
		}

		elseBlock, err := p.parseBlock()
		if err != nil {
			return nil, err
		}

		stmt.Else = elseBlock
	}

	if err := p.expectEnd("If"); err != nil {
		return nil, err
	}

	stmt.SetSpan(source.NewSpan(start, endKeywordEnd(p)))

	return stmt, nil
}

func (p *parser) parseLocalDecl() (syntax.Node, error) {
	start := p.next().span.Start // "Dim"

	names, err := p.parseNameList()
	if err != nil {
		return nil, err
	}

	var (
		typeRef *syntax.TypeRef
		init    syntax.Expr
	)

	if p.atKw("As") {
		typeRef, init, err = p.parseAsClause(len(names) > 1)
		if err != nil {
			return nil, err
		}
	} else if p.accept("=") { // type-inferred
		init, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}

	decl := &syntax.LocalDecl{Type: typeRef, Declarators: makeDeclarators(names, init)}
	decl.SetSpan(p.spanFrom(start))

	if err := p.expectEOL(); err != nil {
		return nil, err
	}

	return decl, nil
}

// parseExprStmt parses an assignment or call statement. The target is
// parsed as a postfix expression first; a following assignment operator
// decides between the two forms.
func (p *parser) parseExprStmt() (syntax.Node, error) {
	start := p.cur().span.Start

	lhs, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}

	var x syntax.Expr = lhs

	if op := p.cur().text; p.cur().kind == tokPunct && assignOps[op] {
		p.next()

		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		asg := &syntax.AssignExpr{Lhs: lhs, Op: op, Rhs: rhs}
		asg.SetSpan(p.spanFrom(start))
		x = asg
	}

	stmt := &syntax.ExprStmt{X: x}
	stmt.SetSpan(p.spanFrom(start))

	if err := p.expectEOL(); err != nil {
		return nil, err
	}

	return stmt, nil
}

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "&=": true,
}

// binaryOps lists operator precedence levels, loosest first. Word operators
// are matched case-insensitively.
var binaryOps = [][]string{
	{"OrElse", "Or"},
	{"AndAlso", "And"},
	{"=", "<>", "<", ">", "<=", ">="},
	{"&", "+", "-"},
	{"*", "/", "Mod"},
}

func (p *parser) parseExpr() (syntax.Expr, error) {
	return p.parseBinary(0)
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

	for {
		op, ok := p.binaryOp(binaryOps[level])
		if !ok {
			break
		}

		p.next()

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

func (p *parser) binaryOp(ops []string) (string, bool) {
	t := p.cur()

	for _, op := range ops {
		switch t.kind {
		case tokPunct:
			if t.text == op {
				return op, true
			}

		case tokIdent:
			if strings.EqualFold(t.text, op) {
				return op, true
			}
		}
	}

	return "", false
}

func (p *parser) parseUnary() (syntax.Expr, error) {
	switch {
	case p.at("-"), p.atKw("Not"), p.atKw("AddressOf"):
		t := p.next()

		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		u := &syntax.UnaryExpr{Op: t.text, X: x}
		u.SetSpan(source.NewSpan(t.span.Start, x.Span().End))

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

		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		// the language has no call-site by-ref marker; classification
		// falls back to the callee's parameter modes
		arg := &syntax.Argument{Mode: syntax.RefNone, Value: value}
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
	case t.kind == tokLiteral,
		t.kind == tokIdent && (strings.EqualFold(t.text, "True") ||
			strings.EqualFold(t.text, "False") || strings.EqualFold(t.text, "Nothing")):
		p.next()

		lit := &syntax.BasicLit{Text: t.text}
		lit.SetSpan(t.span)

		return lit, nil

	case t.kind == tokIdent && strings.EqualFold(t.text, "Me"):
		p.next()

		self := &syntax.SelfExpr{}
		self.SetSpan(t.span)

		return self, nil

	case t.kind == tokIdent && strings.EqualFold(t.text, "New"):
		return p.parseNew()

	case t.kind == tokIdent:
		return p.ident()

	case p.at("("):
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

// parseNew parses "New Type(args)" as a call on the type name.
func (p *parser) parseNew() (syntax.Expr, error) {
	start := p.next().span.Start // "New"

	typeRef, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}

	fun := &syntax.Ident{Name: typeRef.Name}
	fun.SetSpan(typeRef.Span())

	var args []*syntax.Argument

	if p.at("(") {
		if args, err = p.parseArgs(); err != nil {
			return nil, err
		}
	}

	call := &syntax.CallExpr{Fun: fun, Args: args}
	call.SetSpan(p.spanFrom(start))

	return call, nil
}
