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

// Package loader reads program descriptions: YAML files listing the blocks of a program, with their first
// statement id and code, and the control-flow edges between them. For example:
//
//	blocks:
//	  - name: ENTRY
//	  - start: 0
//	    code: |
//	      x = 1
//	      y = 2
//	  - start: 2
//	    code: x = x + y
//	  - name: EXIT
//	    start: 3
//	edges: [[0, 1], [1, 2], [2, 3]]
package loader

import (
	"fmt"
	"os"

	"github.com/awslabs/argot-dataflow/analysis/tac"
	"gopkg.in/yaml.v3"
)

// Description is the content of a program description file
type Description struct {
	Blocks []BlockDescription `yaml:"blocks"`

	// Edges are pairs [from, to] of block indices
	Edges [][]int `yaml:"edges"`
}

// BlockDescription describes one block
type BlockDescription struct {
	// Name is only used in error messages
	Name string `yaml:"name"`

	// Start is the id of the first statement of the block
	Start int `yaml:"start"`

	// Code contains one statement per line
	Code string `yaml:"code"`
}

func (b BlockDescription) describe(i int) string {
	if b.Name != "" {
		return fmt.Sprintf("block %d (%s)", i, b.Name)
	}
	return fmt.Sprintf("block %d", i)
}

// Load reads the program description in filename and builds the program, using parser for the code of the blocks
func Load(filename string, parser *tac.Parser) (*tac.Program, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read program file: %w", err)
	}
	prog, err := Parse(b, parser)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return prog, nil
}

// Parse builds the program described by the YAML data
func Parse(data []byte, parser *tac.Parser) (*tac.Program, error) {
	var d Description
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("could not unmarshal program description: %w", err)
	}
	return d.Build(parser)
}

// Build parses the code of every block and builds the program
func (d Description) Build(parser *tac.Parser) (*tac.Program, error) {
	blocks := make([]*tac.Block, len(d.Blocks))
	for i, bd := range d.Blocks {
		if bd.Start < 0 {
			return nil, fmt.Errorf("%s: negative start %d", bd.describe(i), bd.Start)
		}
		b, err := parser.ParseBlock(bd.Start, bd.Code)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", bd.describe(i), err)
		}
		blocks[i] = b
	}

	edges := make([]tac.Edge, len(d.Edges))
	for i, e := range d.Edges {
		if len(e) != 2 {
			return nil, fmt.Errorf("edge %d: expected [from, to], got %v", i, e)
		}
		edges[i] = tac.Edge{From: e[0], To: e[1]}
	}

	return tac.NewProgram(blocks, edges)
}
