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
	"fmt"
	"strconv"
)

// RValue is an operand of a statement: either a Var or a Lit
type RValue interface {
	fmt.Stringer
	// Variable returns the variable name and true if the operand is a variable
	Variable() (string, bool)
}

// Var is a variable operand
type Var string

// Lit is an integer literal operand. Literals are never uses of a variable.
type Lit uint32

func (v Var) Variable() (string, bool) { return string(v), true }
func (v Var) String() string           { return string(v) }
func (l Lit) Variable() (string, bool) { return "", false }
func (l Lit) String() string           { return strconv.FormatUint(uint64(l), 10) }

// ParseRValue returns a literal if s is an unsigned 32 bit integer, and a variable otherwise
func ParseRValue(s string) RValue {
	if lit, err := strconv.ParseUint(s, 10, 32); err == nil {
		return Lit(lit)
	}
	return Var(s)
}

// BinOp is a binary operator
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
)

func (op BinOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	default:
		return "?"
	}
}

// ParseBinOp parses one of +, - or *
func ParseBinOp(s string) (BinOp, error) {
	switch s {
	case "+":
		return Add, nil
	case "-":
		return Sub, nil
	case "*":
		return Mul, nil
	}
	return 0, &ParseError{Kind: InvalidOperator, Text: s}
}

// Statement is a single instruction. Every statement defines exactly one variable.
type Statement interface {
	fmt.Stringer

	// Def returns the variable written by the statement
	Def() string

	// Uses returns the variables read by the statement, in left-to-right order. Literal operands are not uses,
	// and a variable appears twice if it is read twice.
	Uses() []string
}

// Op is the statement Dst = Lhs Op Rhs
type Op struct {
	Dst string
	Lhs RValue
	Op  BinOp
	Rhs RValue
}

// Copy is the statement Dst = Src
type Copy struct {
	Dst string
	Src RValue
}

func (s Op) Def() string { return s.Dst }

func (s Op) Uses() []string {
	return appendVars(nil, s.Lhs, s.Rhs)
}

func (s Op) String() string {
	return fmt.Sprintf("%s = %s %s %s", s.Dst, s.Lhs, s.Op, s.Rhs)
}

func (s Copy) Def() string { return s.Dst }

func (s Copy) Uses() []string {
	return appendVars(nil, s.Src)
}

func (s Copy) String() string {
	return fmt.Sprintf("%s = %s", s.Dst, s.Src)
}

func appendVars(vars []string, operands ...RValue) []string {
	for _, o := range operands {
		if v, ok := o.Variable(); ok {
			vars = append(vars, v)
		}
	}
	return vars
}
