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
	"sort"

	"github.com/awslabs/argot-dataflow/internal/funcutil"
)

// tarjan holds the state of one run of Tarjan's algorithm
type tarjan[T comparable] struct {
	successors func(T) []T
	stack      []T
	onStack    map[T]bool
	index      map[T]int
	lowlink    map[T]int
	next       int
	sccs       [][]T
}

// StronglyConnectedComponents is an implementation of Tarjan's strongly connected component (SCC) algorithm
// for generic nodes T.
// Successors returns a slice containing the targets of directed edges out from the given node.
// sccs is a slice of slices containing the nodes in each SCC. The order within the SCC is arbitrary.
// The order of SCCs is toposorted so that successors appear first; i.e. if the graph is a tree then
// in order from leaves towards the root.
func StronglyConnectedComponents[T comparable](nodes []T, successors func(T) []T) (sccs [][]T) {
	s := &tarjan[T]{
		successors: successors,
		onStack:    map[T]bool{},
		index:      map[T]int{},
		lowlink:    map[T]int{},
		sccs:       [][]T{},
	}
	for _, v := range nodes {
		if _, ok := s.index[v]; !ok {
			s.visit(v)
		}
	}
	return s.sccs
}

func (s *tarjan[T]) visit(v T) {
	s.index[v] = s.next
	s.lowlink[v] = s.next
	s.next++
	s.stack = append(s.stack, v)
	s.onStack[v] = true

	for _, w := range s.successors(v) {
		if _, seen := s.index[w]; !seen {
			s.visit(w)
			if s.lowlink[w] < s.lowlink[v] {
				s.lowlink[v] = s.lowlink[w]
			}
		} else if s.onStack[w] && s.index[w] < s.lowlink[v] {
			s.lowlink[v] = s.index[w]
		}
	}

	if s.lowlink[v] != s.index[v] {
		return
	}
	// v is the root of a component: pop it
	var scc []T
	for {
		w := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		s.onStack[w] = false
		scc = append(scc, w)
		if w == v {
			break
		}
	}
	s.sccs = append(s.sccs, scc)
}

// TopologicalOrder returns the nodes ordered such that if x reaches y and y does not reach x, then x appears
// before y. Nodes of the same strongly connected component are contiguous and appear in the order of nodes.
// On an acyclic graph, this is a topological sort.
func TopologicalOrder[T comparable](nodes []T, successors func(T) []T) []T {
	sccs := StronglyConnectedComponents(nodes, successors)
	funcutil.Reverse(sccs)

	rank := make(map[T]int, len(nodes))
	for i, v := range nodes {
		rank[v] = i
	}
	order := make([]T, 0, len(nodes))
	for _, scc := range sccs {
		sortByRank(scc, rank)
		order = append(order, scc...)
	}
	return order
}

func sortByRank[T comparable](a []T, rank map[T]int) {
	sort.Slice(a, func(i, j int) bool { return rank[a[i]] < rank[a[j]] })
}
