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

package graphutil

import (
	"github.com/yourbasic/graph"
)

// FindAllElementaryCycles finds all elementary cycles in the graph g, self-loops included.
// This uses Donald B. Johnson's algorithm presented in
// "Finding All The Elementary Circuits of a Directed Graph", 1975
//
// Each cycle is returned as the sequence of nodes along it, starting and ending with its least node. Cycles are
// ordered by their least node.
func FindAllElementaryCycles(g Digraph) [][]int64 {
	s := &state{cycles: [][]int64{}}
	for k, start := range g.Keys {
		// restrict to the nodes >= start, then to the component of start
		fg := Subgraph(g, g.Keys[k:])
		var component []int64
		for _, c := range graph.StrongComponents(fg) {
			for _, v := range c {
				if int64(v) == start {
					component = toInt64(c)
				}
			}
		}
		if len(component) < 2 && !g.HasSelfLoop(start) {
			continue
		}
		s.stack = []int64{}
		s.blocked = map[int64]bool{}
		s.blist = map[int64]map[int64]bool{}
		s.circuit(start, start, Subgraph(fg, component))
	}
	return s.cycles
}

func toInt64(a []int) []int64 {
	b := make([]int64, len(a))
	for i, x := range a {
		b[i] = int64(x)
	}
	return b
}

type state struct {
	blocked map[int64]bool
	blist   map[int64]map[int64]bool
	stack   []int64
	cycles  [][]int64
}

func (s *state) unblock(u int64) {
	s.blocked[u] = false
	for w := range s.blist[u] {
		delete(s.blist[u], w)
		if s.blocked[w] {
			s.unblock(w)
		}
	}
}

func (s *state) circuit(v int64, start int64, g Digraph) bool {
	found := false
	s.stack = append(s.stack, v)
	s.blocked[v] = true
	for _, w := range g.Edges[v] {
		if w == start {
			cycle := make([]int64, len(s.stack), len(s.stack)+1)
			copy(cycle, s.stack)
			s.cycles = append(s.cycles, append(cycle, w))
			found = true
		} else if !s.blocked[w] && s.circuit(w, start, g) {
			found = true
		}
	}

	if found {
		s.unblock(v)
	} else {
		for _, w := range g.Edges[v] {
			if s.blist[w] == nil {
				s.blist[w] = map[int64]bool{}
			}
			s.blist[w][v] = true
		}
	}
	s.stack = s.stack[:len(s.stack)-1]
	return found
}
