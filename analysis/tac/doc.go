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
Package tac models intraprocedural programs in a simplified three-address code.

A [Statement] is either a binary operation `dst = lhs op rhs` or a copy `dst = src`, where operands are variables
or unsigned integer literals. Statements are grouped into [Block]s, which are numbered by a global statement id:
the i-th statement of a block that starts at s has id s+i. A [Program] is an immutable list of blocks together with
a directed control-flow graph over block indices; by convention, block 0 is ENTRY and the last block is EXIT.

Programs are built with [NewProgram], usually from blocks parsed by a [Parser]:

	p := tac.NewParser()
	b0, _ := p.ParseBlock(0, "x = 1\ny = 2")
	b1, _ := p.ParseBlock(2, "x = x + y")
	prog, err := tac.NewProgram([]*tac.Block{b0, b1}, []tac.Edge{{From: 0, To: 1}})

Once constructed, a Program is never mutated and can be shared by concurrent analyses.
*/
package tac
