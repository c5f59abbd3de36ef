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

package tac_test

import (
	"strings"
	"testing"

	"github.com/awslabs/argot-dataflow/analysis/tac"
	"github.com/awslabs/argot-dataflow/internal/analysistest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoops(t *testing.T) {
	prog := analysistest.Figure913(t)
	assert.Equal(t, [][]tac.BlockID{{2, 3, 4, 2}, {2, 4, 2}}, prog.Loops())

	line := analysistest.BuildProgram(t, []analysistest.BlockSpec{{Start: 0, Code: ""}, {Start: 0, Code: "x = 1"}, {Start: 1, Code: ""}},
		tac.Edge{From: 0, To: 1}, tac.Edge{From: 1, To: 2})
	assert.Empty(t, line.Loops())
}

func TestUnreachable(t *testing.T) {
	assert.Empty(t, analysistest.Figure913(t).Unreachable())

	prog := analysistest.BuildProgram(t,
		[]analysistest.BlockSpec{{Start: 0, Code: ""}, {Start: 0, Code: "x = 1"}, {Start: 1, Code: "y = 2"}, {Start: 2, Code: ""}},
		tac.Edge{From: 0, To: 1}, tac.Edge{From: 2, To: 1}, tac.Edge{From: 1, To: 3})
	assert.Equal(t, []tac.BlockID{2}, prog.Unreachable())
}

func TestMarshalDOT(t *testing.T) {
	b, err := analysistest.Figure913(t).MarshalDOT("figure_9_13")
	require.NoError(t, err)
	out := string(b)

	// the digraph is not a multigraph, so gonum marks it strict
	assert.True(t, strings.HasPrefix(out, "strict digraph figure_9_13 {"), out)
	for _, edge := range []string{"B0 -> B1", "B2 -> B3", "B2 -> B4", "B4 -> B2", "B4 -> B5"} {
		assert.Contains(t, out, edge)
	}
	assert.Contains(t, out, "ENTRY")
	assert.Contains(t, out, "EXIT")
	assert.Contains(t, out, "d7: i = u3")
}

func TestBlockName(t *testing.T) {
	prog := analysistest.Figure913(t)
	assert.Equal(t, "ENTRY", prog.BlockName(0))
	assert.Equal(t, "B2", prog.BlockName(2))
	assert.Equal(t, "EXIT", prog.BlockName(5))
	assert.Equal(t, "B9", prog.BlockName(9))
}
