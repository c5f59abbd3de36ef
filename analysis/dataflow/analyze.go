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
	"time"

	"github.com/awslabs/argot-dataflow/analysis/tac"
	"github.com/awslabs/argot-dataflow/internal/funcutil"
)

// Results groups the results of the analyses of a program
type Results struct {
	Program  *tac.Program
	Reaching *ReachingDefs
	Live     *Liveness
}

// Analyze runs the reaching definitions and the live variables analyses of prog concurrently. The analyses only
// read the program and each builds its own result.
func Analyze(prog *tac.Program, opts Options) *Results {
	res := &Results{Program: prog}
	start := time.Now()
	funcutil.Do(
		func() { res.Reaching = ReachingDefinitions(prog, opts) },
		func() { res.Live = LiveVariables(prog, opts) },
	)
	if opts.Logger != nil {
		opts.Logger.Infof("Analyzed %d blocks in %3.4f s", prog.Len(), time.Since(start).Seconds())
	}
	return res
}
