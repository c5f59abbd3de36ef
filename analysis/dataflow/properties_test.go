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

package dataflow_test

import (
	"math/rand"
	"testing"

	"github.com/awslabs/argot-dataflow/analysis/dataflow"
	"github.com/awslabs/argot-dataflow/analysis/tac"
	"github.com/awslabs/argot-dataflow/internal/analysistest"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slices"
)

// The fixed points must not depend on the iteration strategy or on the block order
func TestOrderIndependence(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		r := rand.New(rand.NewSource(seed))
		prog := analysistest.RandomProgram(t, r, 3+r.Intn(12), 1+r.Intn(5))
		ref := dataflow.Options{Strategy: dataflow.RoundRobin, Order: dataflow.ProgramOrder}
		reaching := dataflow.ReachingDefinitions(prog, ref)
		live := dataflow.LiveVariables(prog, ref)

		for _, opts := range allOptions() {
			r2 := dataflow.ReachingDefinitions(prog, opts)
			l2 := dataflow.LiveVariables(prog, opts)
			for b := 0; b < prog.Len(); b++ {
				assert.True(t, reaching.In(b).Equals(r2.In(b)), "seed %d, %s: reaching IN[%d]", seed, opts, b)
				assert.True(t, reaching.Out(b).Equals(r2.Out(b)), "seed %d, %s: reaching OUT[%d]", seed, opts, b)
				assert.True(t, live.In(b).Equals(l2.In(b)), "seed %d, %s: live IN[%d]", seed, opts, b)
				assert.True(t, live.Out(b).Equals(l2.Out(b)), "seed %d, %s: live OUT[%d]", seed, opts, b)
			}
		}
	}
}

// The results must satisfy the data-flow equations
func TestEquations(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		r := rand.New(rand.NewSource(seed))
		prog := analysistest.RandomProgram(t, r, 3+r.Intn(12), 1+r.Intn(5))
		reaching := dataflow.ReachingDefinitions(prog, dataflow.DefaultOptions())
		live := dataflow.LiveVariables(prog, dataflow.DefaultOptions())

		for b := 0; b < prog.Len(); b++ {
			var in []int
			if b != prog.Entry() {
				for _, p := range prog.PredecessorIDs(b) {
					in = union(in, reaching.Out(p).Slice())
				}
			}
			assert.Equal(t, in, reaching.In(b).Slice(), "seed %d: reaching IN[%d]", seed, b)
			out := union(reaching.Gen(b).Slice(), minus(reaching.In(b).Slice(), reaching.Kill(b).Slice()))
			assert.Equal(t, out, reaching.Out(b).Slice(), "seed %d: reaching OUT[%d]", seed, b)

			var liveOut []string
			if b != prog.Exit() {
				for _, s := range prog.SuccessorIDs(b) {
					liveOut = union(liveOut, live.In(s).Slice())
				}
			}
			assert.ElementsMatch(t, liveOut, live.Out(b).Slice(), "seed %d: live OUT[%d]", seed, b)
			liveIn := union(live.Use(b).Slice(), minus(live.Out(b).Slice(), live.Def(b).Slice()))
			assert.ElementsMatch(t, liveIn, live.In(b).Slice(), "seed %d: live IN[%d]", seed, b)
		}

		// replaying the statements of a block goes from its entry to its exit
		for b, block := range prog.Blocks() {
			stmts := block.Stmts()
			if len(stmts) == 0 {
				continue
			}
			first, last := stmts[0].ID, stmts[len(stmts)-1].ID
			assert.True(t, reaching.StmtIn(first).Equals(reaching.In(b)))
			assert.True(t, reaching.StmtOut(last).Equals(reaching.Out(b)))
			assert.True(t, live.StmtIn(first).Equals(live.In(b)))
			assert.True(t, live.StmtOut(last).Equals(live.Out(b)))
			for k := 1; k < len(stmts); k++ {
				assert.True(t, reaching.StmtOut(stmts[k-1].ID).Equals(reaching.StmtIn(stmts[k].ID)))
				assert.True(t, live.StmtOut(stmts[k-1].ID).Equals(live.StmtIn(stmts[k].ID)))
			}
		}
	}
}

// Every definition reaching a block is a definition of the program, and every variable live at a block is a
// variable of the program
func TestResultsInUniverse(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	prog := analysistest.RandomProgram(t, r, 20, 6)
	reaching := dataflow.ReachingDefinitions(prog, dataflow.DefaultOptions())
	live := dataflow.LiveVariables(prog, dataflow.DefaultOptions())
	ids := make([]tac.StmtID, 0)
	for _, s := range prog.Stmts() {
		ids = append(ids, s.ID)
	}
	vars := prog.Variables()
	for b := 0; b < prog.Len(); b++ {
		for _, id := range reaching.Out(b).Slice() {
			assert.Contains(t, ids, id)
		}
		for _, v := range live.In(b).Slice() {
			assert.Contains(t, vars, v)
		}
	}
}

func union[T int | string](a, b []T) []T {
	res := append(slices.Clone(a), b...)
	slices.Sort(res)
	res = slices.Compact(res)
	if len(res) == 0 {
		return nil
	}
	return res
}

func minus[T int | string](a, b []T) []T {
	var res []T
	for _, x := range a {
		if !slices.Contains(b, x) {
			res = append(res, x)
		}
	}
	return res
}
