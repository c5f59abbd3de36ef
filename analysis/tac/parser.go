// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tac

import (
	"errors"
	"regexp"
	"strings"
)

// Parser turns the textual form of statements into Statements. A Parser is immutable once constructed and can be
// used concurrently.
type Parser struct {
	op   *regexp.Regexp
	copy *regexp.Regexp
}

// NewParser returns a parser for the two statement forms `dst = lhs op rhs` and `dst = src`, where operands are
// identifiers or unsigned integer literals. Spaces around `=` and the operator are optional.
func NewParser() *Parser {
	return &Parser{
		op:   regexp.MustCompile(`^(?P<dst>[A-Za-z_]\w*)\s*=\s*(?P<lhs>\w+)\s*(?P<op>[^\w\s])\s*(?P<rhs>\w+)$`),
		copy: regexp.MustCompile(`^(?P<dst>[A-Za-z_]\w*)\s*=\s*(?P<src>\w+)$`),
	}
}

// ParseStmt parses a single statement. Surrounding whitespace is ignored.
// The error is a *ParseError.
func (p *Parser) ParseStmt(line string) (Statement, error) {
	line = strings.TrimSpace(line)

	if m := p.op.FindStringSubmatch(line); m != nil {
		op, err := ParseBinOp(m[p.op.SubexpIndex("op")])
		if err != nil {
			return nil, &ParseError{Kind: InvalidOperator, Text: line}
		}
		return Op{
			Dst: m[p.op.SubexpIndex("dst")],
			Lhs: ParseRValue(m[p.op.SubexpIndex("lhs")]),
			Op:  op,
			Rhs: ParseRValue(m[p.op.SubexpIndex("rhs")]),
		}, nil
	}

	if m := p.copy.FindStringSubmatch(line); m != nil {
		return Copy{
			Dst: m[p.copy.SubexpIndex("dst")],
			Src: ParseRValue(m[p.copy.SubexpIndex("src")]),
		}, nil
	}

	return nil, &ParseError{Kind: InvalidStatementSyntax, Text: line}
}

// ParseBlock parses one statement per line of text into a block starting at id start. Blank lines are ignored,
// and do not consume statement ids.
// Parsing stops at the first malformed line; the error is a *ParseError with the line number set.
func (p *Parser) ParseBlock(start StmtID, text string) (*Block, error) {
	var stmts []Statement
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		stmt, err := p.ParseStmt(line)
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				perr.Line = i + 1
			}
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return &Block{start: start, stmts: stmts}, nil
}
