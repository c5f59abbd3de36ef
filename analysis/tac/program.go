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
	"sort"

	"github.com/awslabs/argot-dataflow/internal/funcutil"
	"github.com/yourbasic/graph"
)

// Edge is a control-flow edge between two blocks, identified by their index in the program
type Edge struct {
	From BlockID
	To   BlockID
}

// Neighbor is a block adjacent to another block in the control-flow graph
type Neighbor struct {
	Index BlockID
	Block *Block
}

// Program is an immutable control-flow graph of blocks
type Program struct {
	blocks []*Block

	// graph has an edge i -> j for every control-flow edge from block i to block j
	graph *graph.Immutable

	// reverse is the transpose of graph
	reverse *graph.Immutable
}

// NewProgram builds a program from blocks and a list of control-flow edges between block indices.
// Duplicate edges are merged. NewProgram returns an error wrapping ErrInvalidEdge if some edge endpoint is not
// the index of a block, and ErrOverlappingBlocks if two non-empty blocks share a statement id. Gaps between the
// id ranges of blocks are allowed, and empty blocks own no id.
func NewProgram(blocks []*Block, edges []Edge) (*Program, error) {
	for i, b := range blocks {
		if b == nil {
			return nil, fmt.Errorf("block %d: %w", i, ErrNilBlock)
		}
	}
	if err := checkRanges(blocks); err != nil {
		return nil, err
	}

	g := graph.New(len(blocks))
	for _, e := range edges {
		if e.From < 0 || e.From >= len(blocks) || e.To < 0 || e.To >= len(blocks) {
			return nil, fmt.Errorf("edge %d -> %d with %d blocks: %w", e.From, e.To, len(blocks), ErrInvalidEdge)
		}
		g.Add(e.From, e.To)
	}

	p := &Program{
		blocks:  make([]*Block, len(blocks)),
		graph:   graph.Sort(g),
		reverse: graph.Sort(graph.Transpose(g)),
	}
	copy(p.blocks, blocks)
	return p, nil
}

func checkRanges(blocks []*Block) error {
	var owners []BlockID
	for i, b := range blocks {
		if !b.IsEmpty() {
			owners = append(owners, i)
		}
	}
	sort.SliceStable(owners, func(i, j int) bool { return blocks[owners[i]].Start() < blocks[owners[j]].Start() })
	for k := 1; k < len(owners); k++ {
		prev, cur := blocks[owners[k-1]], blocks[owners[k]]
		if cur.Start() < prev.End() {
			return fmt.Errorf("blocks %d [%d, %d) and %d [%d, %d): %w",
				owners[k-1], prev.Start(), prev.End(), owners[k], cur.Start(), cur.End(), ErrOverlappingBlocks)
		}
	}
	return nil
}

// Len returns the number of blocks
func (p *Program) Len() int { return len(p.blocks) }

// IsEmpty returns true if the program has no block
func (p *Program) IsEmpty() bool { return len(p.blocks) == 0 }

// Entry returns the index of the conventional ENTRY block
func (p *Program) Entry() BlockID { return 0 }

// Exit returns the index of the conventional EXIT block, or -1 for an empty program
func (p *Program) Exit() BlockID { return len(p.blocks) - 1 }

// Blocks returns the blocks of the program in order. The slice must not be modified.
func (p *Program) Blocks() []*Block { return p.blocks }

// Block returns the block with index i, or false if there is none
func (p *Program) Block(i BlockID) (*Block, bool) {
	if i < 0 || i >= len(p.blocks) {
		return nil, false
	}
	return p.blocks[i], true
}

// Stmts returns all the statements of the program with their ids, in block order
func (p *Program) Stmts() []IndexedStmt {
	var stmts []IndexedStmt
	for _, b := range p.blocks {
		stmts = append(stmts, b.Stmts()...)
	}
	return stmts
}

// GetStmt returns the statement with global id, or none if no block contains it
func (p *Program) GetStmt(id StmtID) funcutil.Optional[Statement] {
	found := funcutil.FindMap(p.blocks,
		func(b *Block) funcutil.Optional[Statement] { return b.Get(id) },
		funcutil.IsSome[Statement])
	return funcutil.BindOption(found, funcutil.Identity[funcutil.Optional[Statement]])
}

// BlockOf returns the index of the block containing the statement with global id, or false
func (p *Program) BlockOf(id StmtID) (BlockID, bool) {
	for i, b := range p.blocks {
		if b.InRange(id) {
			return i, true
		}
	}
	return -1, false
}

// Successors returns the blocks reachable by one edge from block i, in increasing index order
func (p *Program) Successors(i BlockID) []Neighbor {
	return p.neighbors(p.graph, i)
}

// Predecessors returns the blocks that reach block i by one edge, in increasing index order
func (p *Program) Predecessors(i BlockID) []Neighbor {
	return p.neighbors(p.reverse, i)
}

func (p *Program) neighbors(g *graph.Immutable, i BlockID) []Neighbor {
	if i < 0 || i >= len(p.blocks) {
		return nil
	}
	var res []Neighbor
	g.Visit(i, func(j int, _ int64) bool {
		res = append(res, Neighbor{Index: j, Block: p.blocks[j]})
		return false
	})
	return res
}

// SuccessorIDs returns the indices of the successors of block i
func (p *Program) SuccessorIDs(i BlockID) []BlockID {
	return funcutil.Map(p.Successors(i), neighborIndex)
}

// PredecessorIDs returns the indices of the predecessors of block i
func (p *Program) PredecessorIDs(i BlockID) []BlockID {
	return funcutil.Map(p.Predecessors(i), neighborIndex)
}

func neighborIndex(n Neighbor) BlockID { return n.Index }

// Edges returns the edges of the control-flow graph, ordered by source then destination
func (p *Program) Edges() []Edge {
	var edges []Edge
	for i := range p.blocks {
		for _, j := range p.SuccessorIDs(i) {
			edges = append(edges, Edge{From: i, To: j})
		}
	}
	return edges
}

// IsAcyclic returns true if the control-flow graph has no cycle
func (p *Program) IsAcyclic() bool {
	return graph.Acyclic(p.graph)
}

// Definitions returns the ids of the statements that define v, in increasing order
func (p *Program) Definitions(v string) []StmtID {
	var ids []StmtID
	for _, s := range p.Stmts() {
		if s.Stmt.Def() == v {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// Variables returns all the variables defined or used in the program, sorted
func (p *Program) Variables() []string {
	vars := map[string]bool{}
	for _, s := range p.Stmts() {
		vars[s.Stmt.Def()] = true
		for _, u := range s.Stmt.Uses() {
			vars[u] = true
		}
	}
	return funcutil.SetToOrderedSlice(vars)
}
