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

	"fillmore-labs.com/autoprop/internal/source"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokEOL
	tokIdent
	tokLiteral
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	span source.Span
}

// lex scans the whole input. Statements are line-terminated, so line ends
// become tokens; a trailing "_" joins the next line. Comments start with "'".
func lex(fileName, content string) ([]token, error) {
	var toks []token

	i, n := 0, len(content)
	for i < n {
		c := content[i]

		switch {
		case c == ' ' || c == '\t' || c == '\r':
			i++

		case c == '\n':
			// collapse runs of blank lines into one terminator
			if len(toks) > 0 && toks[len(toks)-1].kind != tokEOL {
				toks = append(toks, token{kind: tokEOL, text: "\n", span: source.NewSpan(i, i + 1)})
			}
			i++

		case c == '\'':
			for i < n && content[i] != '\n' {
				i++
			}

		case c == '_' && isLineJoin(content, i):
			i++
			for i < n && content[i] != '\n' {
				i++
			}
			if i < n {
				i++
			}

		case isIdentStart(c):
			start := i
			for i < n && isIdentPart(content[i]) {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: content[start:i], span: source.NewSpan(start, i)})

		case c >= '0' && c <= '9':
			start := i
			for i < n && (isIdentPart(content[i]) || content[i] == '.') {
				i++
			}
			toks = append(toks, token{kind: tokLiteral, text: content[start:i], span: source.NewSpan(start, i)})

		case c == '"':
			start := i
			i++
			for i < n {
				if content[i] == '"' {
					if i+1 < n && content[i+1] == '"' { // doubled quote escape
						i += 2

						continue
					}

					i++

					break
				}
				if content[i] == '\n' {
					return nil, lexError(fileName, content, start, "unterminated string literal")
				}
				i++
			}
			toks = append(toks, token{kind: tokLiteral, text: content[start:i], span: source.NewSpan(start, i)})

		default:
			op, ok := scanOperator(content[i:])
			if !ok {
				return nil, lexError(fileName, content, i, fmt.Sprintf("unexpected character %q", c))
			}
			start := i
			i += len(op)
			toks = append(toks, token{kind: tokPunct, text: op, span: source.NewSpan(start, i)})
		}
	}

	if len(toks) > 0 && toks[len(toks)-1].kind != tokEOL {
		toks = append(toks, token{kind: tokEOL, text: "\n", span: source.NewSpan(n, n)})
	}
	toks = append(toks, token{kind: tokEOF, span: source.NewSpan(n, n)})

	return toks, nil
}

// isLineJoin reports whether the "_" at offset i is a line continuation:
// standalone before the line end.
func isLineJoin(content string, i int) bool {
	if i+1 < len(content) && isIdentPart(content[i+1]) {
		return false
	}

	for j := i + 1; j < len(content); j++ {
		switch content[j] {
		case ' ', '\t', '\r':
			continue
		case '\n':
			return true
		default:
			return false
		}
	}

	return false
}

var operators = []string{
	"<=", ">=", "<>", "+=", "-=", "*=", "/=", "&=",
	"=", "<", ">", "+", "-", "*", "/", "&", ".", ",", "(", ")",
}

func scanOperator(s string) (string, bool) {
	for _, op := range operators {
		if len(s) >= len(op) && s[:len(op)] == op {
			return op, true
		}
	}

	return "", false
}

func isIdentStart(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}

func lexError(fileName, content string, offset int, msg string) error {
	f := source.File{Name: fileName, Content: content}

	return fmt.Errorf("%s: %s", f.FormatPosition(offset), msg)
}
