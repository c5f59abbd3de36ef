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

// Package analysistest contains helpers to build and load the programs used in the tests of the analyses.
package analysistest

import (
	"fmt"
	"io/fs"
	"math/rand"
	"strings"
	"testing"

	"github.com/awslabs/argot-dataflow/analysis/loader"
	"github.com/awslabs/argot-dataflow/analysis/tac"
	"gopkg.in/yaml.v3"
)

// Expectations are the results expected from the analyses on a test program, per block index. Blocks that are not
// listed are not checked.
type Expectations struct {
	Reaching struct {
		In  map[int][]int `yaml:"in"`
		Out map[int][]int `yaml:"out"`
	} `yaml:"reaching"`
	Live struct {
		In  map[int][]string `yaml:"in"`
		Out map[int][]string `yaml:"out"`
	} `yaml:"live"`
}

type testFile struct {
	Expect Expectations `yaml:"expect"`
}

// LoadTest loads the program description name in fsys, together with the expectations listed in its `expect`
// section.
func LoadTest(t testing.TB, fsys fs.FS, name string) (*tac.Program, Expectations) {
	t.Helper()
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		t.Fatalf("failed to read %s: %v", name, err)
	}
	prog, err := loader.Parse(b, tac.NewParser())
	if err != nil {
		t.Fatalf("failed to load %s: %v", name, err)
	}
	var f testFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		t.Fatalf("failed to read expectations of %s: %v", name, err)
	}
	return prog, f.Expect
}

// BlockSpec is the source of a block: its first statement id and its code
type BlockSpec struct {
	Start int
	Code  string
}

// BuildProgram parses the blocks and builds the program, failing the test on any error
func BuildProgram(t testing.TB, blocks []BlockSpec, edges ...tac.Edge) *tac.Program {
	t.Helper()
	parser := tac.NewParser()
	bs := make([]*tac.Block, len(blocks))
	for i, spec := range blocks {
		b, err := parser.ParseBlock(spec.Start, spec.Code)
		if err != nil {
			t.Fatalf("block %d: %v", i, err)
		}
		bs[i] = b
	}
	prog, err := tac.NewProgram(bs, edges)
	if err != nil {
		t.Fatalf("failed to build program: %v", err)
	}
	return prog
}

// Figure913 returns the program of figure 9.13 of the dragon book (Compilers: Principles, Techniques, and Tools).
// Definitions d1 to d7 have ids 1 to 7, block 0 is ENTRY and block 5 is EXIT.
func Figure913(t testing.TB) *tac.Program {
	t.Helper()
	return BuildProgram(t,
		[]BlockSpec{
			{0, ""}, // ENTRY
			{1, "i = m-1\nj = n\na = u1"},
			{4, "i = i+1\nj = j-1"},
			{6, "a = u2"},
			{7, "i = u3"},
			{7, ""}, // EXIT
		},
		tac.Edge{From: 0, To: 1}, tac.Edge{From: 1, To: 2}, tac.Edge{From: 2, To: 3}, tac.Edge{From: 2, To: 4},
		tac.Edge{From: 3, To: 4}, tac.Edge{From: 4, To: 2}, tac.Edge{From: 4, To: 5})
}

// RandomProgram returns a program with n blocks (n >= 3) whose statements range over nvars variables. Block 0 is
// an empty ENTRY and block n-1 an empty EXIT; every other block has between 0 and 3 statements, and there are
// random forward and backward edges in addition to a path from ENTRY to EXIT through all blocks.
func RandomProgram(t testing.TB, r *rand.Rand, n int, nvars int) *tac.Program {
	t.Helper()
	variable := func() string { return fmt.Sprintf("v%d", r.Intn(nvars)) }
	operand := func() string {
		if r.Intn(4) == 0 {
			return fmt.Sprintf("%d", r.Intn(10))
		}
		return variable()
	}
	ops := []string{"+", "-", "*"}

	blocks := []BlockSpec{{0, ""}}
	id := 0
	for i := 1; i < n-1; i++ {
		var lines []string
		for k := r.Intn(4); k > 0; k-- {
			if r.Intn(3) == 0 {
				lines = append(lines, fmt.Sprintf("%s = %s", variable(), operand()))
			} else {
				lines = append(lines, fmt.Sprintf("%s = %s %s %s", variable(), operand(), ops[r.Intn(3)], operand()))
			}
		}
		// leave gaps between id ranges now and then
		id += r.Intn(2)
		blocks = append(blocks, BlockSpec{id, strings.Join(lines, "\n")})
		id += len(lines)
	}
	blocks = append(blocks, BlockSpec{id, ""})

	var edges []tac.Edge
	for i := 0; i < n-1; i++ {
		edges = append(edges, tac.Edge{From: i, To: i + 1})
	}
	for k := r.Intn(n); k > 0; k-- {
		from := 1 + r.Intn(n-2)
		edges = append(edges, tac.Edge{From: from, To: 1 + r.Intn(n-2)})
	}
	return BuildProgram(t, blocks, edges...)
}
