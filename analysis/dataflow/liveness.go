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

package dataflow

import (
	"github.com/awslabs/argot-dataflow/analysis/tac"
	"github.com/awslabs/argot-dataflow/internal/funcutil"
)

// Liveness is the result of the live variables analysis of a program.
//
// The sets returned by the queries are shared with the result and must not be modified.
type Liveness struct {
	prog *tac.Program

	use []VarSet
	def []VarSet
	in  []VarSet
	out []VarSet

	// transfers[b] is the composition of the transfer functions of the statements of b, last statement first
	transfers []func(VarSet) VarSet

	// Stats of the fixed point computation
	Stats Stats
}

// LiveVariables computes the variables live at the entry and exit of every block of prog. A variable is live at a
// point p if its value may be read along some path starting at p before it is redefined.
// No variable is live at the exit of the EXIT block.
func LiveVariables(prog *tac.Program, opts Options) *Liveness {
	l := &Liveness{
		prog:      prog,
		use:       make([]VarSet, prog.Len()),
		def:       make([]VarSet, prog.Len()),
		transfers: make([]func(VarSet) VarSet, prog.Len()),
	}
	for i, b := range prog.Blocks() {
		l.use[i], l.def[i] = blockUseDef(b)
		stmts := b.Stmts()
		funcutil.Reverse(stmts)
		l.transfers[i] = funcutil.Chain(funcutil.Map(stmts, stmtTransfer)...)
	}

	sol := Solve(prog, Problem[VarSet]{
		Name:      "live variables",
		Direction: Backward,
		Bottom:    func() VarSet { return VarSet{} },
		Join: func(a, b VarSet) VarSet {
			c := a.Copy()
			funcutil.Union(c, b)
			return c
		},
		Transfer: func(b tac.BlockID, out VarSet) VarSet { return l.transfers[b](out) },
		Equal:    VarSet.Equals,
	}, opts)
	l.in, l.out, l.Stats = sol.In, sol.Out, sol.Stats
	return l
}

// stmtTransfer returns the transfer function of a statement: In = USE ∪ (Out - DEF)
func stmtTransfer(is tac.IndexedStmt) func(VarSet) VarSet {
	def, uses := is.Stmt.Def(), is.Stmt.Uses()
	return func(out VarSet) VarSet {
		in := out.Copy()
		delete(in, def)
		for _, u := range uses {
			in[u] = true
		}
		return in
	}
}

// blockUseDef computes the variables used in b before any definition (use) and the variables defined in b before
// any use (def), by walking the statements backwards.
func blockUseDef(b *tac.Block) (use VarSet, def VarSet) {
	use, def = VarSet{}, VarSet{}
	stmts := b.Stmts()
	for i := len(stmts) - 1; i >= 0; i-- {
		d, uses := stmts[i].Stmt.Def(), stmts[i].Stmt.Uses()
		delete(use, d)
		def[d] = true
		for _, u := range uses {
			use[u] = true
			delete(def, u)
		}
	}
	return use, def
}

// Program returns the program that has been analyzed
func (l *Liveness) Program() *tac.Program { return l.prog }

// In returns the variables live at the entry of block b, or nil if there is no such block
func (l *Liveness) In(b tac.BlockID) VarSet { return at(l.in, b) }

// Out returns the variables live at the exit of block b, or nil if there is no such block
func (l *Liveness) Out(b tac.BlockID) VarSet { return at(l.out, b) }

// Use returns the variables that block b may read before defining them
func (l *Liveness) Use(b tac.BlockID) VarSet { return at(l.use, b) }

// Def returns the variables that block b defines before reading them
func (l *Liveness) Def(b tac.BlockID) VarSet { return at(l.def, b) }

// IsLiveOut returns true if variable v is live at the exit of block b
func (l *Liveness) IsLiveOut(b tac.BlockID, v string) bool {
	return l.Out(b).Has(v)
}

// StmtOut returns the variables live after statement id, or nil if there is no such statement.
// It is computed by replaying backwards the transfer functions of the statements of the block that follow id.
func (l *Liveness) StmtOut(id tac.StmtID) VarSet {
	set, _ := l.replay(id)
	return set
}

// StmtIn returns the variables live before statement id, or nil if there is no such statement.
func (l *Liveness) StmtIn(id tac.StmtID) VarSet {
	set, is := l.replay(id)
	if set == nil {
		return nil
	}
	return stmtTransfer(is)(set)
}

func (l *Liveness) replay(id tac.StmtID) (VarSet, tac.IndexedStmt) {
	bid, ok := l.prog.BlockOf(id)
	if !ok {
		return nil, tac.IndexedStmt{}
	}
	b, _ := l.prog.Block(bid)
	set := l.out[bid].Copy()
	stmts := b.Stmts()
	for i := len(stmts) - 1; i >= 0; i-- {
		if stmts[i].ID == id {
			return set, stmts[i]
		}
		set = stmtTransfer(stmts[i])(set)
	}
	return nil, tac.IndexedStmt{}
}
