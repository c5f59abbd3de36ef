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
	"fmt"

	"github.com/awslabs/argot-dataflow/analysis/config"
	"github.com/awslabs/argot-dataflow/analysis/tac"
	"github.com/awslabs/argot-dataflow/internal/graphutil"
	"github.com/bits-and-blooms/bitset"
)

// Direction is the direction in which information flows in a Problem
type Direction int

const (
	// Forward problems compute the value at the exit of a block from the value at its entry
	Forward Direction = iota
	// Backward problems compute the value at the entry of a block from the value at its exit
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Strategy is the iteration strategy of the fixed point computation
type Strategy int

const (
	// RoundRobin repeatedly sweeps over all the blocks until a sweep changes nothing
	RoundRobin Strategy = iota
	// Worklist only revisits the blocks whose inputs may have changed
	Worklist
)

func (s Strategy) String() string {
	if s == Worklist {
		return config.IterationWorklist
	}
	return config.IterationRoundRobin
}

// BlockOrder is the order in which blocks are visited during a sweep, or initially queued in the worklist
type BlockOrder int

const (
	// ProgramOrder visits blocks by increasing index
	ProgramOrder BlockOrder = iota
	// ReverseOrder visits blocks by decreasing index
	ReverseOrder
	// TopologicalOrder visits the strongly connected components of the control-flow graph in topological order
	// (reverse topological order for backward problems), and blocks within a component by index.
	TopologicalOrder
)

func (o BlockOrder) String() string {
	switch o {
	case ReverseOrder:
		return config.OrderReverse
	case TopologicalOrder:
		return config.OrderTopological
	default:
		return config.OrderProgram
	}
}

// Options control how Solve computes the fixed point
type Options struct {
	Strategy Strategy
	Order    BlockOrder

	// MaxSweeps is the maximum number of sweeps of the RoundRobin strategy. If MaxSweeps <= 0, it is ignored.
	// When the limit stops the iteration, the result may not be a fixed point and Stats.Converged is false.
	MaxSweeps int

	// Logger receives the progress of the computation. If nil, nothing is logged.
	Logger *config.LogGroup
}

// DefaultOptions returns options for a worklist iteration in topological order
func DefaultOptions() Options {
	return Options{
		Strategy:  Worklist,
		Order:     TopologicalOrder,
		MaxSweeps: 0,
		Logger:    nil,
	}
}

// NewOptions returns the options set by the config, logging with logger.
func NewOptions(cfg *config.Config, logger *config.LogGroup) Options {
	opts := DefaultOptions()
	opts.Logger = logger
	if cfg == nil {
		return opts
	}
	if cfg.Iteration == config.IterationRoundRobin {
		opts.Strategy = RoundRobin
	}
	switch cfg.BlockOrder {
	case config.OrderProgram:
		opts.Order = ProgramOrder
	case config.OrderReverse:
		opts.Order = ReverseOrder
	}
	opts.MaxSweeps = cfg.MaxSweeps
	return opts
}

func (o Options) String() string {
	return fmt.Sprintf("%s iteration, %s order", o.Strategy, o.Order)
}

// Problem is a monotone data-flow problem over values of type S.
//
// Join and Transfer must not modify their arguments: values are shared between blocks.
type Problem[S any] struct {
	// Name of the problem, used in logs
	Name string

	Direction Direction

	// Bottom returns the least element of the lattice. It is the initial value of every block, and the input of the
	// boundary block (ENTRY for forward problems, EXIT for backward problems).
	Bottom func() S

	// Join returns the meet of two values flowing into a block
	Join func(a S, b S) S

	// Transfer returns the output of block b given its input
	Transfer func(b tac.BlockID, input S) S

	// Equal returns true if the two values are equal
	Equal func(a S, b S) bool
}

// Stats summarizes the work done by Solve
type Stats struct {
	// Sweeps is the number of sweeps over the blocks. For the Worklist strategy, it is the number of visits
	// divided by the number of blocks, rounded up.
	Sweeps int

	// Visits is the number of evaluations of a block's transfer function
	Visits int

	// Updates is the number of visits that changed the output of a block
	Updates int

	// Converged is false if the iteration was stopped before reaching the fixed point
	Converged bool
}

func (s Stats) String() string {
	return fmt.Sprintf("%d sweeps, %d visits, %d updates, converged: %t", s.Sweeps, s.Visits, s.Updates, s.Converged)
}

// Solution holds the values computed by Solve at the entry (In) and exit (Out) of each block, indexed by block id
type Solution[S any] struct {
	In    []S
	Out   []S
	Stats Stats
}

// solver holds the state of the fixed point computation. The input of a block is In for forward problems and Out
// for backward problems.
type solver[S any] struct {
	prog    *tac.Program
	problem Problem[S]
	logger  *config.LogGroup
	input   []S
	output  []S
	stats   Stats
}

// Solve computes the least fixed point of problem over the control-flow graph of prog
func Solve[S any](prog *tac.Program, problem Problem[S], opts Options) Solution[S] {
	logger := opts.Logger
	if logger == nil {
		logger = config.NewDiscardLogGroup()
	}
	n := prog.Len()
	s := &solver[S]{
		prog:    prog,
		problem: problem,
		logger:  logger,
		input:   make([]S, n),
		output:  make([]S, n),
	}
	for i := 0; i < n; i++ {
		s.input[i] = problem.Bottom()
		s.output[i] = problem.Bottom()
	}

	order := blockOrder(prog, problem.Direction, opts.Order)
	logger.Debugf("Solving %s (%s) on %d blocks with %s", problem.Name, problem.Direction, n, opts)
	if opts.Strategy == Worklist {
		s.worklist(order)
	} else {
		s.roundRobin(order, opts.MaxSweeps)
	}
	if s.stats.Converged {
		logger.Debugf("%s converged: %s", problem.Name, s.stats)
	} else {
		logger.Warnf("%s stopped before convergence: %s", problem.Name, s.stats)
	}

	if problem.Direction == Backward {
		return Solution[S]{In: s.output, Out: s.input, Stats: s.stats}
	}
	return Solution[S]{In: s.input, Out: s.output, Stats: s.stats}
}

// upstream returns the blocks whose output flows into the input of b
func (s *solver[S]) upstream(b tac.BlockID) []tac.BlockID {
	if s.problem.Direction == Backward {
		return s.prog.SuccessorIDs(b)
	}
	return s.prog.PredecessorIDs(b)
}

// downstream returns the blocks whose input depends on the output of b
func (s *solver[S]) downstream(b tac.BlockID) []tac.BlockID {
	if s.problem.Direction == Backward {
		return s.prog.PredecessorIDs(b)
	}
	return s.prog.SuccessorIDs(b)
}

func (s *solver[S]) isBoundary(b tac.BlockID) bool {
	if s.problem.Direction == Backward {
		return b == s.prog.Exit()
	}
	return b == s.prog.Entry()
}

// visit recomputes the input and output of b, and returns true if the output changed
func (s *solver[S]) visit(b tac.BlockID) bool {
	s.stats.Visits++
	in := s.problem.Bottom()
	if !s.isBoundary(b) {
		for _, u := range s.upstream(b) {
			in = s.problem.Join(in, s.output[u])
		}
	}
	s.input[b] = in
	out := s.problem.Transfer(b, in)
	if s.problem.Equal(out, s.output[b]) {
		return false
	}
	s.output[b] = out
	s.stats.Updates++
	return true
}

func (s *solver[S]) roundRobin(order []tac.BlockID, maxSweeps int) {
	for maxSweeps <= 0 || s.stats.Sweeps < maxSweeps {
		s.stats.Sweeps++
		changed := 0
		for _, b := range order {
			if s.visit(b) {
				changed++
			}
		}
		s.logger.Tracef("%s sweep %d: %d blocks changed", s.problem.Name, s.stats.Sweeps, changed)
		if changed == 0 {
			s.stats.Converged = true
			return
		}
	}
}

func (s *solver[S]) worklist(order []tac.BlockID) {
	n := uint(len(order))
	queue := make([]tac.BlockID, len(order))
	copy(queue, order)
	queued := bitset.New(n)
	for _, b := range order {
		queued.Set(uint(b))
	}

	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		queued.Clear(uint(b))
		if !s.visit(b) {
			continue
		}
		for _, d := range s.downstream(b) {
			if !queued.Test(uint(d)) {
				queued.Set(uint(d))
				queue = append(queue, d)
			}
		}
		s.logger.Tracef("%s: block %d changed, %d blocks queued", s.problem.Name, b, queued.Count())
	}
	if n > 0 {
		s.stats.Sweeps = (s.stats.Visits + len(order) - 1) / len(order)
	}
	s.stats.Converged = true
}

// blockOrder returns the blocks of prog in the order o, for a problem in direction dir
func blockOrder(prog *tac.Program, dir Direction, o BlockOrder) []tac.BlockID {
	n := prog.Len()
	forward := make([]tac.BlockID, n)
	backward := make([]tac.BlockID, n)
	for i := 0; i < n; i++ {
		forward[i] = i
		backward[i] = n - 1 - i
	}
	switch o {
	case ReverseOrder:
		return backward
	case TopologicalOrder:
		if dir == Backward {
			return graphutil.TopologicalOrder(backward, prog.PredecessorIDs)
		}
		return graphutil.TopologicalOrder(forward, prog.SuccessorIDs)
	default:
		return forward
	}
}
