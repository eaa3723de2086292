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

package symbols

import (
	"slices"
	"strings"

	"fillmore-labs.com/autoprop/internal/syntax"
)

// Table holds the merged type symbols and use-site resolutions of a snapshot.
type Table struct {
	types map[string]*Type
	order []string

	// uses maps identifier use sites to their bound symbol.
	uses map[*syntax.Ident]Symbol

	// calls maps invocations to candidate method symbols. More than one
	// candidate means overload resolution was ambiguous.
	calls map[*syntax.CallExpr][]*Method
}

// Bind declares and resolves all files, producing the snapshot's table.
// Unresolvable names stay unbound; binding never fails as a whole.
func Bind(files []*syntax.File) *Table {
	t := &Table{
		types: make(map[string]*Type),
		uses:  make(map[*syntax.Ident]Symbol),
		calls: make(map[*syntax.CallExpr][]*Method),
	}

	for _, f := range files {
		t.declareFile(f)
	}

	for _, f := range files {
		t.resolveFile(f)
	}

	return t
}

// Types returns all type symbols in name order.
func (t *Table) Types() []*Type {
	names := slices.Clone(t.order)
	slices.Sort(names)

	types := make([]*Type, len(names))
	for i, name := range names {
		types[i] = t.types[name]
	}

	return types
}

// Lookup returns the type symbol with the given name.
func (t *Table) Lookup(name string) (*Type, bool) {
	ty, ok := t.types[name]

	return ty, ok
}

// Use returns the symbol bound to an identifier use site.
func (t *Table) Use(id *syntax.Ident) (Symbol, bool) {
	s, ok := t.uses[id]

	return s, ok
}

// CallCandidates returns the candidate methods of an invocation.
// A single candidate means resolution was unambiguous.
func (t *Table) CallCandidates(call *syntax.CallExpr) []*Method {
	return t.calls[call]
}

// declareFile merges each class fragment into its logical type symbol and
// declares the fragment's members.
func (t *Table) declareFile(f *syntax.File) {
	for _, d := range f.Decls {
		cls, ok := d.(*syntax.ClassDecl)
		if !ok {
			continue
		}

		ty := t.types[cls.Name.Name]
		if ty == nil {
			ty = &Type{Name: cls.Name.Name}
			t.types[ty.Name] = ty
			t.order = append(t.order, ty.Name)
		}

		ty.Fragments = append(ty.Fragments, cls)

		for _, m := range cls.Members {
			switch m := m.(type) {
			case *syntax.FieldDecl:
				// constants are implicitly static in both dialects
				isConst := m.Modifiers.Has("const")
				static := isConst || hasAny(m.Modifiers, "static", "shared")

				for _, decl := range m.Declarators {
					ty.Fields = append(ty.Fields, &Field{
						Name:       decl.Name.Name,
						Declaring:  ty,
						Decl:       m,
						Declarator: decl,
						File:       f.FileName,
						Static:     static,
						Const:      isConst,
					})
				}

			case *syntax.PropertyDecl:
				ty.Properties = append(ty.Properties, &Property{
					Name:      m.Name.Name,
					Declaring: ty,
					Decl:      m,
					File:      f.FileName,
					Static:    hasAny(m.Modifiers, "static", "shared"),
				})

			case *syntax.MethodDecl:
				ty.Methods = append(ty.Methods, &Method{
					Name:      m.Name.Name,
					Declaring: ty,
					Decl:      m,
					File:      f.FileName,
					Static:    hasAny(m.Modifiers, "static", "shared"),
				})
			}
		}
	}
}

func hasAny(ms syntax.Modifiers, names ...string) bool {
	for _, n := range names {
		if ms.Has(n) {
			return true
		}
	}

	return false
}

// env is the lexical environment of one member body.
type env struct {
	table *Table
	self  *Type
	vars  map[string]Symbol // params and locals, flat per body
}

// resolveFile resolves expression bodies of every member.
func (t *Table) resolveFile(f *syntax.File) {
	for _, d := range f.Decls {
		cls, ok := d.(*syntax.ClassDecl)
		if !ok {
			continue
		}

		self := t.types[cls.Name.Name]

		for _, m := range cls.Members {
			switch m := m.(type) {
			case *syntax.FieldDecl:
				for _, decl := range m.Declarators {
					if decl.Init != nil {
						e := &env{table: t, self: self, vars: map[string]Symbol{}}
						e.resolveExpr(decl.Init)
					}
				}

			case *syntax.PropertyDecl:
				t.resolveAccessors(self, m)

			case *syntax.MethodDecl:
				t.resolveMethod(self, m)
			}
		}
	}
}

func (t *Table) resolveAccessors(self *Type, p *syntax.PropertyDecl) {
	for _, a := range p.Accessors {
		e := &env{table: t, self: self, vars: map[string]Symbol{}}

		if a.Kind == syntax.SetAccessor {
			name := a.ValueName
			if name == "" {
				name = "value"
			}

			e.vars[name] = &Param{Name: name, TypeName: typeName(p.Type)}
		}

		if a.Body != nil {
			e.resolveBlock(a.Body)
		}

		if a.Expr != nil {
			e.resolveExpr(a.Expr)
		}
	}
}

func (t *Table) resolveMethod(self *Type, m *syntax.MethodDecl) {
	e := &env{table: t, self: self, vars: map[string]Symbol{}}

	for _, p := range m.Params {
		e.vars[p.Name.Name] = &Param{Name: p.Name.Name, TypeName: typeName(p.Type), ByRef: p.ByRef}
	}

	if m.Body != nil {
		e.resolveBlock(m.Body)
	}
}

func (e *env) resolveBlock(b *syntax.Block) {
	for _, stmt := range b.Stmts {
		switch s := stmt.(type) {
		case *syntax.LocalDecl:
			for _, d := range s.Declarators {
				if d.Init != nil {
					e.resolveExpr(d.Init)
				}

				e.vars[d.Name.Name] = &Local{Name: d.Name.Name, TypeName: typeName(s.Type)}
			}

		case *syntax.ExprStmt:
			e.resolveExpr(s.X)

		case *syntax.ReturnStmt:
			if s.Result != nil {
				e.resolveExpr(s.Result)
			}

		case *syntax.IfStmt:
			e.resolveExpr(s.Cond)
			e.resolveBlock(s.Then)

			switch el := s.Else.(type) {
			case *syntax.Block:
				e.resolveBlock(el)
			case *syntax.IfStmt:
				e.resolveBlock(&syntax.Block{Stmts: []syntax.Node{el}})
			}

		case *syntax.WhileStmt:
			e.resolveExpr(s.Cond)
			e.resolveBlock(s.Body)

		case *syntax.Block:
			e.resolveBlock(s)
		}
	}
}

// resolveExpr binds identifier and member-access use sites within an expression.
func (e *env) resolveExpr(x syntax.Expr) {
	switch x := x.(type) {
	case *syntax.Ident:
		if s := e.lookup(x.Name); s != nil {
			e.table.uses[x] = s
		}

	case *syntax.MemberAccess:
		e.resolveMemberAccess(x)

	case *syntax.AssignExpr:
		e.resolveExpr(x.Lhs)
		e.resolveExpr(x.Rhs)

	case *syntax.BinaryExpr:
		e.resolveExpr(x.X)
		e.resolveExpr(x.Y)

	case *syntax.UnaryExpr:
		e.resolveExpr(x.X)

	case *syntax.ParenExpr:
		e.resolveExpr(x.X)

	case *syntax.CallExpr:
		e.resolveCall(x)

	case *syntax.Argument:
		e.resolveExpr(x.Value)
	}
}

// resolveMemberAccess binds the member name of "target.name" accesses.
func (e *env) resolveMemberAccess(ma *syntax.MemberAccess) {
	ty := e.receiverType(ma.Target)
	if ty == nil {
		return
	}

	if s := memberOf(ty, ma.Name.Name); s != nil {
		e.table.uses[ma.Name] = s
	}
}

// receiverType resolves the static type of a member-access target, also
// binding the target expression itself where applicable.
func (e *env) receiverType(target syntax.Expr) *Type {
	switch target := target.(type) {
	case *syntax.SelfExpr:
		return e.self

	case *syntax.Ident:
		if s := e.lookup(target.Name); s != nil {
			e.table.uses[target] = s

			switch s := s.(type) {
			case *Param:
				ty, _ := e.table.Lookup(s.TypeName)
				return ty

			case *Local:
				ty, _ := e.table.Lookup(s.TypeName)
				return ty
			}

			return nil
		}

		// Static access through the bare type name.
		if ty, ok := e.table.Lookup(target.Name); ok {
			e.table.uses[target] = ty

			return ty
		}

		return nil

	case *syntax.ParenExpr:
		return e.receiverType(target.X)

	default:
		return nil
	}
}

// resolveCall binds the callee and records overload candidates, filtered by
// arity when possible. Every same-name overload is kept when no arity matches,
// so by-reference classification can consult all candidates under ambiguity.
func (e *env) resolveCall(call *syntax.CallExpr) {
	for _, a := range call.Args {
		e.resolveExpr(a.Value)
	}

	ty, name, nameIdent := e.calleeTarget(call.Fun)
	if ty == nil {
		return
	}

	var candidates []*Method
	for _, m := range ty.Methods {
		if m.Name == name {
			candidates = append(candidates, m)
		}
	}

	if len(candidates) == 0 {
		return
	}

	byArity := make([]*Method, 0, len(candidates))
	for _, m := range candidates {
		if len(m.Decl.Params) == len(call.Args) {
			byArity = append(byArity, m)
		}
	}

	if len(byArity) > 0 {
		candidates = byArity
	}

	e.table.calls[call] = candidates
	if nameIdent != nil {
		e.table.uses[nameIdent] = candidates[0]
	}
}

// calleeTarget identifies the receiver type and method name of a call.
func (e *env) calleeTarget(fun syntax.Expr) (*Type, string, *syntax.Ident) {
	switch fun := fun.(type) {
	case *syntax.Ident:
		return e.self, fun.Name, fun

	case *syntax.MemberAccess:
		return e.receiverType(fun.Target), fun.Name.Name, fun.Name

	default:
		return nil, "", nil
	}
}

// lookup resolves a bare name: value parameters and locals first, then
// members of the enclosing type.
func (e *env) lookup(name string) Symbol {
	if s, ok := e.vars[name]; ok {
		return s
	}

	if e.self == nil {
		return nil
	}

	return memberOf(e.self, name)
}

// memberOf finds a field, property or method of the merged type.
func memberOf(ty *Type, name string) Symbol {
	for _, f := range ty.Fields {
		if f.Name == name {
			return f
		}
	}

	for _, p := range ty.Properties {
		if p.Name == name {
			return p
		}
	}

	for _, m := range ty.Methods {
		if m.Name == name {
			return m
		}
	}

	return nil
}

func typeName(t *syntax.TypeRef) string {
	if t == nil {
		return ""
	}

	return strings.TrimSpace(t.Name)
}
