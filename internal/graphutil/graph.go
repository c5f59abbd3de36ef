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
	"strconv"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/iterator"
)

// Digraph is an abstraction over a directed graph with integer nodes 0..order-1, to work with existing graph
// libraries. It implements the methods to satisfy yourbasic's graph.Iterator and Gonum's graph.Directed
type Digraph struct {
	// The order of the graph
	order int

	// Labels maps from node IDs to a printable label
	Labels map[int64]string

	// Keys are all the node IDs, in increasing order
	Keys []int64

	// Edges is an adjacency list: Edges[x] contains y iff there is a directed edge from x to y.
	// Every adjacency list is sorted in increasing order.
	Edges map[int64][]int64
}

// NewDigraph returns a new digraph of the given order. The successors of a node are given by successors, and
// label returns the label of a node (which can be nil).
func NewDigraph(order int, successors func(int) []int, label func(int) string) Digraph {
	labels := make(map[int64]string, order)
	edges := make(map[int64][]int64, order)
	keys := make([]int64, order)
	for i := 0; i < order; i++ {
		id := int64(i)
		keys[i] = id
		if label != nil {
			labels[id] = label(i)
		}
		var out []int64
		for _, j := range successors(i) {
			if j >= 0 && j < order && !slices.Contains(out, int64(j)) {
				out = append(out, int64(j))
			}
		}
		sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
		edges[id] = out
	}
	return Digraph{
		order:  order,
		Labels: labels,
		Edges:  edges,
		Keys:   keys,
	}
}

// Subgraph returns a new graph that is the original graph with only the nodes in include. Only the edges that have
// both the origin and destination nodes in the include nodes are kept in the resulting graph.
// The subgraph's order and Labels are the same as in origin, meaning that node indices will stay consistent
// across subgraphs.
func Subgraph(original Digraph, include []int64) Digraph {
	in := make(map[int64]bool, len(include))
	keys := make([]int64, 0, len(include))
	for _, i := range include {
		if _, ok := original.Edges[i]; ok && !in[i] {
			in[i] = true
			keys = append(keys, i)
		}
	}
	sort.Slice(keys, func(a, b int) bool { return keys[a] < keys[b] })

	edges := make(map[int64][]int64, len(keys))
	for _, i := range keys {
		out := []int64{}
		for _, e := range original.Edges[i] {
			if in[e] {
				out = append(out, e)
			}
		}
		edges[i] = out
	}

	return Digraph{
		order:  original.Order(),
		Labels: original.Labels,
		Edges:  edges,
		Keys:   keys,
	}
}

// Order implements the order of the graph.Iterator interface for the Digraph
func (c Digraph) Order() int {
	return c.order
}

// Visit implements the graph.Iterator interface for the Digraph. Neighbours are visited in increasing order.
func (c Digraph) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	for _, w := range c.Edges[int64(v)] {
		if do(int(w), 1) {
			return true
		}
	}
	return false
}

// HasSelfLoop returns true if there is an edge from v to itself
func (c Digraph) HasSelfLoop(v int64) bool {
	return slices.Contains(c.Edges[v], v)
}

// *************** Graph interface implementation **********************

// Node implements the Graph interface
func (c Digraph) Node(id int64) graph.Node {
	if _, ok := c.Edges[id]; !ok {
		return nil
	}
	return c.node(id)
}

func (c Digraph) node(id int64) DNode {
	return DNode{id: id, label: c.Labels[id]}
}

// Nodes returns the set of nodes in the graph
func (c Digraph) Nodes() graph.Nodes {
	return c.nodesOf(c.Keys)
}

// From returns the set of nodes reachable from the id by one edge
func (c Digraph) From(id int64) graph.Nodes {
	return c.nodesOf(c.Edges[id])
}

// To returns the set of nodes that can reach id by one edge
func (c Digraph) To(id int64) graph.Nodes {
	var ids []int64
	for _, k := range c.Keys {
		if slices.Contains(c.Edges[k], id) {
			ids = append(ids, k)
		}
	}
	return c.nodesOf(ids)
}

func (c Digraph) nodesOf(ids []int64) graph.Nodes {
	nodes := make([]graph.Node, len(ids))
	for i, id := range ids {
		nodes[i] = c.node(id)
	}
	return iterator.NewOrderedNodes(nodes)
}

// HasEdgeBetween returns a boolean indicating whether an edge exists between the two node identifiers
func (c Digraph) HasEdgeBetween(xid, yid int64) bool {
	return c.HasEdgeFromTo(xid, yid) || c.HasEdgeFromTo(yid, xid)
}

// HasEdgeFromTo returns whether there is an edge from uid to vid
func (c Digraph) HasEdgeFromTo(uid, vid int64) bool {
	return slices.Contains(c.Edges[uid], vid)
}

// Edge returns the edge between the two identifiers (nil if none exists)
func (c Digraph) Edge(uid, vid int64) graph.Edge {
	if c.HasEdgeFromTo(uid, vid) {
		return DEdge{from: c.node(uid), to: c.node(vid)}
	}
	return nil
}

// *************** Nodes implementation **********************

// DNode is a node of a Digraph. It implements the graph.Node interface, and the interfaces used by the DOT encoder.
type DNode struct {
	id    int64
	label string
}

// ID returns the id of the node
func (n DNode) ID() int64 {
	return n.id
}

func (n DNode) String() string {
	return n.label
}

// DOTID returns the name of the node in the DOT format
func (n DNode) DOTID() string {
	return "B" + strconv.FormatInt(n.id, 10)
}

// Attributes returns the DOT attributes of the node
func (n DNode) Attributes() []encoding.Attribute {
	if n.label == "" {
		return []encoding.Attribute{{Key: "shape", Value: "box"}}
	}
	return []encoding.Attribute{
		{Key: "shape", Value: "box"},
		{Key: "label", Value: n.label},
	}
}

// *************** Edge implementation **********************

// DEdge implements the graph.Edge interface
type DEdge struct {
	from DNode
	to   DNode
}

// From returns the origin of the edge
func (e DEdge) From() graph.Node {
	return e.from
}

// To returns the destination of the edge
func (e DEdge) To() graph.Node {
	return e.to
}

// ReversedEdge returns a new value representing the reversed edge
func (e DEdge) ReversedEdge() graph.Edge {
	return DEdge{from: e.to, to: e.from}
}
