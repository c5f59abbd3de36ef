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
	"strings"

	"github.com/awslabs/argot-dataflow/internal/funcutil"
	"github.com/awslabs/argot-dataflow/internal/graphutil"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/topo"
)

// Digraph returns the control-flow graph of the program as a digraph whose node ids are block indices and whose
// labels list the statements of each block
func (p *Program) Digraph() graphutil.Digraph {
	return graphutil.NewDigraph(len(p.blocks), p.SuccessorIDs, p.blockLabel)
}

// BlockName returns ENTRY or EXIT for the empty first and last blocks, and B<i> for any other block i
func (p *Program) BlockName(i BlockID) string {
	switch {
	case i < 0 || i >= len(p.blocks):
		return fmt.Sprintf("B%d", i)
	case i == p.Entry() && p.blocks[i].IsEmpty():
		return "ENTRY"
	case i == p.Exit() && p.blocks[i].IsEmpty():
		return "EXIT"
	default:
		return fmt.Sprintf("B%d", i)
	}
}

func (p *Program) blockLabel(i BlockID) string {
	var sb strings.Builder
	sb.WriteString(p.BlockName(i))
	for _, s := range p.blocks[i].Stmts() {
		fmt.Fprintf(&sb, "\nd%d: %s", s.ID, s.Stmt)
	}
	return sb.String()
}

// MarshalDOT renders the control-flow graph in the Graphviz DOT format
func (p *Program) MarshalDOT(name string) ([]byte, error) {
	b, err := dot.Marshal(p.Digraph(), name, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("could not marshal program %q to dot: %w", name, err)
	}
	return b, nil
}

// Loops returns the elementary cycles of the control-flow graph. Each loop is the list of block indices along the
// cycle, starting and ending with its least block index.
func (p *Program) Loops() [][]BlockID {
	cycles := graphutil.FindAllElementaryCycles(p.Digraph())
	return funcutil.Map(cycles, func(c []int64) []BlockID {
		return funcutil.Map(c, func(x int64) BlockID { return BlockID(x) })
	})
}

// Unreachable returns the indices of the blocks that cannot be reached from the ENTRY block
func (p *Program) Unreachable() []BlockID {
	if p.IsEmpty() {
		return nil
	}
	g := p.Digraph()
	entry := g.Node(int64(p.Entry()))
	var res []BlockID
	for i := range p.blocks {
		if i != p.Entry() && !topo.PathExistsIn(g, entry, g.Node(int64(i))) {
			res = append(res, i)
		}
	}
	return res
}
