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

package usage

import (
	"context"
	"log/slog"
	"runtime/trace"
	"strings"

	"golang.org/x/sync/errgroup"

	"fillmore-labs.com/autoprop/internal/symbols"
	"fillmore-labs.com/autoprop/internal/syntax"
)

// Collector scans parsed files for references to candidate fields.
type Collector struct {
	// Table resolves identifiers and call candidates.
	Table *symbols.Table

	// Parallel bounds the number of files scanned concurrently,
	// 0 for unbounded.
	Parallel int

	// Log receives per-site trace output, nil to disable.
	Log *slog.Logger
}

// Collect scans the files for references to the candidate fields and
// classifies each site. One goroutine handles one file; sets are shared and
// merge commutatively.
func (c *Collector) Collect(ctx context.Context, files []*syntax.File, fields []*symbols.Field) (Result, error) {
	defer trace.StartRegion(ctx, "usage.Collect").End()

	result := make(Result, len(fields))
	candidates := make(map[*symbols.Field]*Set, len(fields))

	for _, f := range fields {
		set := &Set{}
		result[f] = set
		candidates[f] = set
	}

	accessors := propertyAccessors(c.Table)

	g, ctx := errgroup.WithContext(ctx)
	if c.Parallel > 0 {
		g.SetLimit(c.Parallel)
	}

	for _, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			c.scanFile(file, candidates, accessors)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

// propertyAccessors maps each property declaration back to its symbol, so
// sites can record the accessor they sit in.
func propertyAccessors(table *symbols.Table) map[*syntax.PropertyDecl]*symbols.Property {
	accessors := make(map[*syntax.PropertyDecl]*symbols.Property)

	for _, ty := range table.Types() {
		for _, p := range ty.Properties {
			accessors[p.Decl] = p
		}
	}

	return accessors
}

func (c *Collector) scanFile(file *syntax.File, candidates map[*symbols.Field]*Set, accessors map[*syntax.PropertyDecl]*symbols.Property) {
	syntax.Inspect(file, func(n syntax.Node) bool {
		id, ok := n.(*syntax.Ident)
		if !ok {
			return true
		}

		sym, ok := c.Table.Use(id)
		if !ok {
			return true
		}

		field, ok := sym.(*symbols.Field)
		if !ok {
			return true
		}

		set, ok := candidates[field]
		if !ok {
			return true
		}

		site := c.classify(file, id, accessors)
		set.add(site)

		if c.Log != nil {
			c.Log.Debug("field reference",
				"field", field.Name,
				"file", site.File,
				"kind", site.Kind,
				"qualified", site.Qualified)
		}

		return true
	})
}

// classify determines the usage kind of one identifier from the shape of
// its enclosing expression.
func (c *Collector) classify(file *syntax.File, id *syntax.Ident, accessors map[*syntax.PropertyDecl]*symbols.Property) Site {
	ref := syntax.Reference(id)

	site := Site{
		File:      file.FileName,
		Ident:     id,
		Ref:       ref,
		Kind:      c.kindOf(ref),
		Qualified: ref != syntax.Expr(id),
	}

	if prop := syntax.EnclosingProperty(id); prop != nil {
		site.InAccessorOf = accessors[prop]
	}

	return site
}

func (c *Collector) kindOf(ref syntax.Expr) Kind {
	// unwrap parentheses around the reference
	outer := ref
	parent := outer.Parent()

	for {
		paren, ok := parent.(*syntax.ParenExpr)
		if !ok {
			break
		}

		outer = paren
		parent = paren.Parent()
	}

	switch p := parent.(type) {
	case *syntax.Argument:
		return c.argumentKind(p)

	case *syntax.UnaryExpr:
		switch {
		case p.Op == "&" || strings.EqualFold(p.Op, "AddressOf"):
			return AddressOf

		case p.Op == "++" || p.Op == "--":
			return Read | Write
		}

		return Read

	case *syntax.AssignExpr:
		if p.Lhs != outer {
			return Read
		}

		if p.Op == "=" {
			return Write
		}

		return Read | Write // compound assignment

	default:
		return Read
	}
}

// argumentKind resolves whether an argument position is by-reference. An
// explicit call-site marker decides immediately; otherwise any resolvable
// callee with a by-ref parameter at the position taints the site.
func (c *Collector) argumentKind(arg *syntax.Argument) Kind {
	if arg.Mode != syntax.RefNone {
		return RefOrOutArgument
	}

	call, ok := arg.Parent().(*syntax.CallExpr)
	if !ok {
		return Read
	}

	pos := -1

	for i, a := range call.Args {
		if a == arg {
			pos = i

			break
		}
	}

	if pos < 0 {
		return Other
	}

	for _, m := range c.Table.CallCandidates(call) {
		if m.ByRefParam(pos) {
			return RefOrOutArgument
		}
	}

	return Read
}
