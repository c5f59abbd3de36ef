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

package config

const (
	// IterationRoundRobin repeats full sweeps over the blocks until nothing changes
	IterationRoundRobin = "round-robin"
	// IterationWorklist only revisits the blocks whose inputs changed
	IterationWorklist = "worklist"

	// OrderProgram visits blocks by increasing index
	OrderProgram = "program"
	// OrderReverse visits blocks by decreasing index
	OrderReverse = "reverse"
	// OrderTopological visits blocks in a topological order of the strongly connected components of the control-flow
	// graph, reversed for backward analyses
	OrderTopological = "topological"

	// DefaultIteration is the iteration strategy used when none is specified
	DefaultIteration = IterationWorklist
	// DefaultBlockOrder is the block order used when none is specified
	DefaultBlockOrder = OrderTopological
)
