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
	"fmt"
)

var (
	// ErrInvalidStatementSyntax is matched by parse errors of kind InvalidStatementSyntax
	ErrInvalidStatementSyntax = errors.New("invalid statement syntax")

	// ErrInvalidOperator is matched by parse errors of kind InvalidOperator
	ErrInvalidOperator = errors.New("invalid operator")

	// ErrInvalidEdge is returned when an edge of the control-flow graph references a block that does not exist
	ErrInvalidEdge = errors.New("edge endpoint is not a block index")

	// ErrOverlappingBlocks is returned when two blocks claim the same statement id
	ErrOverlappingBlocks = errors.New("overlapping statement id ranges")

	// ErrNilBlock is returned when a program is built with a nil block
	ErrNilBlock = errors.New("nil block")
)

// ErrorKind classifies parse errors
type ErrorKind int

const (
	// InvalidStatementSyntax is for text that is neither `dst = lhs op rhs` nor `dst = src`
	InvalidStatementSyntax ErrorKind = iota + 1
	// InvalidOperator is for a binary operation whose operator is not one of + - *
	InvalidOperator
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidStatementSyntax:
		return "InvalidStatementSyntax"
	case InvalidOperator:
		return "InvalidOperator"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError is returned by the Parser on malformed input
type ParseError struct {
	Kind ErrorKind

	// Line is the 1-based line number of the statement in its block, or 0 when parsing a single statement
	Line int

	// Text is the offending statement, or the operator alone when returned by ParseBinOp
	Text string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v: %q", e.Line, e.Unwrap(), e.Text)
	}
	return fmt.Sprintf("%v: %q", e.Unwrap(), e.Text)
}

// Unwrap returns the sentinel error corresponding to the kind of the error
func (e *ParseError) Unwrap() error {
	switch e.Kind {
	case InvalidOperator:
		return ErrInvalidOperator
	default:
		return ErrInvalidStatementSyntax
	}
}
