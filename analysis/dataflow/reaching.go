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
)

// ReachingDefs is the result of the reaching definitions analysis of a program. Definitions are identified by the
// id of the statement that performs them.
//
// The sets returned by the queries are shared with the result and must not be modified.
type ReachingDefs struct {
	prog *tac.Program

	// defs maps each variable to the ids of all the statements that define it
	defs map[string]*IDSet

	gen  []*IDSet
	kill []*IDSet
	in   []*IDSet
	out  []*IDSet

	// Stats of the fixed point computation
	Stats Stats
}

// ReachingDefinitions computes the definitions that may reach the entry and exit of every block of prog.
// A definition d of a variable v reaches a point p if there is a path from d to p along which v is not redefined.
func ReachingDefinitions(prog *tac.Program, opts Options) *ReachingDefs {
	r := &ReachingDefs{
		prog: prog,
		defs: map[string]*IDSet{},
		gen:  make([]*IDSet, prog.Len()),
		kill: make([]*IDSet, prog.Len()),
	}
	for _, v := range prog.Variables() {
		r.defs[v] = NewIDSet(prog.Definitions(v)...)
	}
	for i, b := range prog.Blocks() {
		r.gen[i], r.kill[i] = r.blockGenKill(b)
	}

	sol := Solve(prog, Problem[*IDSet]{
		Name:      "reaching definitions",
		Direction: Forward,
		Bottom:    func() *IDSet { return &IDSet{} },
		Join: func(a, b *IDSet) *IDSet {
			c := a.Copy()
			c.unionWith(b)
			return c
		},
		Transfer: r.transfer,
		Equal:    (*IDSet).Equals,
	}, opts)
	r.in, r.out, r.Stats = sol.In, sol.Out, sol.Stats
	return r
}

// stmtKill returns the definitions killed by statement id: every other definition of the variable it defines
func (r *ReachingDefs) stmtKill(id tac.StmtID, s tac.Statement) *IDSet {
	k := r.defs[s.Def()].Copy()
	k.s.Remove(id)
	return k
}

// blockGenKill composes the GEN and KILL sets of the statements of b, in order
func (r *ReachingDefs) blockGenKill(b *tac.Block) (gen *IDSet, kill *IDSet) {
	gen, kill = &IDSet{}, &IDSet{}
	for _, is := range b.Stmts() {
		k := r.stmtKill(is.ID, is.Stmt)
		kill.unionWith(k)
		gen.differenceWith(k)
		gen.s.Insert(is.ID)
	}
	return gen, kill
}

// transfer computes OUT[b] = GEN[b] ∪ (in - KILL[b])
func (r *ReachingDefs) transfer(b tac.BlockID, in *IDSet) *IDSet {
	out := in.Copy()
	out.differenceWith(r.kill[b])
	out.unionWith(r.gen[b])
	return out
}

// stmtTransfer applies the transfer function of statement id to set, in place
func (r *ReachingDefs) stmtTransfer(id tac.StmtID, s tac.Statement, set *IDSet) {
	set.differenceWith(r.stmtKill(id, s))
	set.s.Insert(id)
}

// Program returns the program that has been analyzed
func (r *ReachingDefs) Program() *tac.Program { return r.prog }

// In returns the definitions reaching the entry of block b, or nil if there is no such block
func (r *ReachingDefs) In(b tac.BlockID) *IDSet { return at(r.in, b) }

// Out returns the definitions reaching the exit of block b, or nil if there is no such block
func (r *ReachingDefs) Out(b tac.BlockID) *IDSet { return at(r.out, b) }

// Gen returns the definitions of block b that reach its exit
func (r *ReachingDefs) Gen(b tac.BlockID) *IDSet { return at(r.gen, b) }

// Kill returns the definitions killed by block b
func (r *ReachingDefs) Kill(b tac.BlockID) *IDSet { return at(r.kill, b) }

// StmtIn returns the definitions reaching the point before statement id, or nil if there is no such statement.
// It is computed by replaying the transfer functions of the statements of the block that precede id.
func (r *ReachingDefs) StmtIn(id tac.StmtID) *IDSet {
	set, _ := r.replay(id)
	return set
}

// StmtOut returns the definitions reaching the point after statement id, or nil if there is no such statement.
func (r *ReachingDefs) StmtOut(id tac.StmtID) *IDSet {
	set, stmt := r.replay(id)
	if set == nil {
		return nil
	}
	r.stmtTransfer(id, stmt, set)
	return set
}

// replay returns a new set holding the definitions reaching the point before id, together with the statement id
func (r *ReachingDefs) replay(id tac.StmtID) (*IDSet, tac.Statement) {
	bid, ok := r.prog.BlockOf(id)
	if !ok {
		return nil, nil
	}
	b, _ := r.prog.Block(bid)
	set := r.in[bid].Copy()
	for _, is := range b.Stmts() {
		if is.ID == id {
			return set, is.Stmt
		}
		r.stmtTransfer(is.ID, is.Stmt, set)
	}
	return nil, nil
}

// Reaching returns the definitions of variable v reaching the entry of block b
func (r *ReachingDefs) Reaching(b tac.BlockID, v string) *IDSet {
	in := r.In(b)
	if in == nil {
		return nil
	}
	set := in.Copy()
	set.intersectionWith(r.defs[v])
	return set
}

func at[S any](a []S, i int) S {
	var zero S
	if i < 0 || i >= len(a) {
		return zero
	}
	return a[i]
}
