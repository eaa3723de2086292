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
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIdent
	tokLiteral
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	span source.Span
}

// lex scans the whole input into a token slice. Comments and whitespace are
// dropped; spans index into the original content.
func lex(fileName, content string) ([]token, error) {
	var toks []token

	i, n := 0, len(content)

	for i < n {
		c := content[i]

		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++

		case c == '/' && i+1 < n && content[i+1] == '/':
			for i < n && content[i] != '\n' {
				i++
			}

		case c == '/' && i+1 < n && content[i+1] == '*':
			end := strings.Index(content[i+2:], "*/")
			if end < 0 {
				return nil, lexError(fileName, content, i, "unterminated block comment")
			}

			i += 2 + end + 2

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

		case c == '"' || c == '\'':
			start, quote := i, c
			i++

			for i < n && content[i] != quote {
				if content[i] == '\\' {
					i++
				}
				i++
			}

			if i >= n {
				return nil, lexError(fileName, content, start, "unterminated literal")
			}

			i++
			toks = append(toks, token{kind: tokLiteral, text: content[start:i], span: source.NewSpan(start, i)})

		default:
			start := i

			op, ok := scanOperator(content[i:])
			if !ok {
				return nil, lexError(fileName, content, i, fmt.Sprintf("unexpected character %q", c))
			}

			i += len(op)
			toks = append(toks, token{kind: tokPunct, text: op, span: source.NewSpan(start, i)})
		}
	}

	toks = append(toks, token{kind: tokEOF, span: source.NewSpan(n, n)})

	return toks, nil
}

// multi-char operators first, longest match wins
var operators = []string{
	"=>", "==", "!=", "<=", ">=", "+=", "-=", "*=", "/=", "%=", "&=", "|=",
	"&&", "||", "++", "--",
	"{", "}", "(", ")", "[", "]", ";", ",", ".", "=", "&", "|", "!", "<", ">",
	"+", "-", "*", "/", "%", "?", ":",
}

func scanOperator(s string) (string, bool) {
	for _, op := range operators {
		if strings.HasPrefix(s, op) {
			return op, true
		}
	}

	return "", false
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '@' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func lexError(fileName, content string, offset int, msg string) error {
	f := source.File{Name: fileName, Content: content}

	return fmt.Errorf("%s: %s", f.FormatPosition(offset), msg)
}
