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
	"strings"

	"github.com/awslabs/argot-dataflow/internal/funcutil"
)

// BlockID is the index of a block in its program
type BlockID = int

// StmtID is the global id of a statement
type StmtID = int

// IndexedStmt is a statement with its global id
type IndexedStmt struct {
	ID   StmtID
	Stmt Statement
}

// Block is a basic block: a straight-line sequence of statements with global ids Start() to End()-1
type Block struct {
	start int
	stmts []Statement
}

// NewBlock returns a block whose first statement has id start. The block keeps a copy of stmts.
func NewBlock(start StmtID, stmts []Statement) *Block {
	b := &Block{start: start, stmts: make([]Statement, len(stmts))}
	copy(b.stmts, stmts)
	return b
}

// Start returns the id of the first statement of the block
func (b *Block) Start() StmtID { return b.start }

// End returns the id one past the last statement of the block
func (b *Block) End() StmtID { return b.start + len(b.stmts) }

// Len returns the number of statements in the block
func (b *Block) Len() int { return len(b.stmts) }

// IsEmpty returns true if the block has no statements. An empty block owns no statement id.
func (b *Block) IsEmpty() bool { return len(b.stmts) == 0 }

// InRange returns true if id is the id of a statement of the block
func (b *Block) InRange(id StmtID) bool {
	return id >= b.start && id < b.End()
}

// Get returns the statement with global id, or none if the id falls outside the block
func (b *Block) Get(id StmtID) funcutil.Optional[Statement] {
	if !b.InRange(id) {
		return funcutil.None[Statement]()
	}
	return funcutil.Some(b.stmts[id-b.start])
}

// Stmts returns the statements of the block with their ids, in order
func (b *Block) Stmts() []IndexedStmt {
	res := make([]IndexedStmt, len(b.stmts))
	for i, s := range b.stmts {
		res[i] = IndexedStmt{ID: b.start + i, Stmt: s}
	}
	return res
}

// String returns the statements of the block, one per line
func (b *Block) String() string {
	return strings.Join(funcutil.Map(b.stmts, Statement.String), "\n")
}
