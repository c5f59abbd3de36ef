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

/*
Package dataflow implements the classic intraprocedural data-flow analyses over the three-address code programs of
the tac package.

The analyses are instances of a monotone framework: a Problem describes the direction of the analysis, the bottom
element of its lattice, the meet (join) of values flowing into a block and the transfer function of each block. Solve
computes the least fixed point of the Problem over the control-flow graph, either by repeated sweeps over the blocks
(RoundRobin) or with a worklist (Worklist). The order in which the blocks are visited is controlled by a BlockOrder;
since the lattices are finite and the transfer functions monotone, the fixed point does not depend on the strategy or
the order, only the amount of work does.

Two analyses are provided:

  - ReachingDefinitions is a forward analysis computing, for every block, the ids of the definitions that may reach
    its entry and exit.
  - LiveVariables is a backward analysis computing, for every block, the variables that may be read before being
    redefined along some path from its entry and exit.

Both results can be refined to the statement level by replaying the transfer functions of the statements inside a
block (StmtIn and StmtOut). Analyze runs both analyses concurrently on the same program.
*/
package dataflow
