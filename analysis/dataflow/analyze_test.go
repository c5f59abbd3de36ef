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

package dataflow_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/awslabs/argot-dataflow/analysis/config"
	"github.com/awslabs/argot-dataflow/analysis/dataflow"
	"github.com/awslabs/argot-dataflow/internal/analysistest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	prog := analysistest.Figure913(t)
	res := dataflow.Analyze(prog, dataflow.DefaultOptions())
	require.NotNil(t, res.Reaching)
	require.NotNil(t, res.Live)
	assert.Same(t, prog, res.Program)

	r := dataflow.ReachingDefinitions(prog, dataflow.DefaultOptions())
	l := dataflow.LiveVariables(prog, dataflow.DefaultOptions())
	for b := 0; b < prog.Len(); b++ {
		assert.True(t, r.Out(b).Equals(res.Reaching.Out(b)))
		assert.True(t, l.In(b).Equals(res.Live.In(b)))
	}
}

func TestNewOptions(t *testing.T) {
	assert.Equal(t, dataflow.DefaultOptions(), dataflow.NewOptions(nil, nil))
	assert.Equal(t, dataflow.DefaultOptions(), dataflow.NewOptions(config.NewDefault(), nil))

	cfg := config.NewDefault()
	cfg.Iteration = config.IterationRoundRobin
	cfg.BlockOrder = config.OrderReverse
	cfg.MaxSweeps = 3
	logger := config.NewDiscardLogGroup()
	opts := dataflow.NewOptions(cfg, logger)
	assert.Equal(t, dataflow.RoundRobin, opts.Strategy)
	assert.Equal(t, dataflow.ReverseOrder, opts.Order)
	assert.Equal(t, 3, opts.MaxSweeps)
	assert.Same(t, logger, opts.Logger)
	assert.Equal(t, "round-robin iteration, reverse order", opts.String())
}

func TestSolverLogs(t *testing.T) {
	cfg := config.NewDefault()
	cfg.LogLevel = int(config.TraceLevel)
	logger := config.NewLogGroup(cfg)
	var buf bytes.Buffer
	logger.SetAllOutput(&buf)

	opts := dataflow.Options{Strategy: dataflow.RoundRobin, Order: dataflow.ProgramOrder, Logger: logger}
	dataflow.LiveVariables(loopProgram(t), opts)
	assert.Contains(t, buf.String(), "live variables sweep 1")
	assert.Contains(t, buf.String(), "live variables converged")

	buf.Reset()
	opts.MaxSweeps = 1
	dataflow.LiveVariables(loopProgram(t), opts)
	assert.Contains(t, buf.String(), "stopped before convergence")
}

func TestWriteReport(t *testing.T) {
	prog := analysistest.Figure913(t)
	res := dataflow.Analyze(prog, dataflow.DefaultOptions())

	var buf bytes.Buffer
	require.NoError(t, res.Reaching.WriteReport(&buf, false))
	out := buf.String()
	assert.Contains(t, out, "Reaching definitions")
	assert.Contains(t, out, "ENTRY")
	assert.Contains(t, out, "IN   {1 2 3 5 6 7}")
	assert.NotContains(t, out, "d7:")

	buf.Reset()
	require.NoError(t, res.Live.WriteReport(&buf, true))
	out = buf.String()
	assert.Contains(t, out, "Live variables")
	assert.Contains(t, out, "USE  {m n u1}")
	assert.Contains(t, out, "d4: i = i + 1")
	assert.Contains(t, out, "{i j u2 u3} -> {j u2 u3}")

	opts := dataflow.Options{Strategy: dataflow.RoundRobin, MaxSweeps: 1}
	buf.Reset()
	require.NoError(t, dataflow.LiveVariables(loopProgram(t), opts).WriteReport(&buf, false))
	assert.Contains(t, buf.String(), "warning: iteration stopped")

	assert.Error(t, res.Live.WriteReport(failingWriter{}, true))
}

func TestWriteReportToFileIsPlain(t *testing.T) {
	res := dataflow.Analyze(analysistest.Figure913(t), dataflow.DefaultOptions())
	f, err := os.Create(filepath.Join(t.TempDir(), "liveness.out"))
	require.NoError(t, err)
	require.NoError(t, res.Live.WriteReport(f, true))
	require.NoError(t, f.Close())

	b, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Contains(t, string(b), "Live variables")
	assert.NotContains(t, string(b), "\033[")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("write failed") }
