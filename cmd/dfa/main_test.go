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

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var figure913 = filepath.Join("..", "..", "analysis", "loader", "testdata", "figure_9_13.yaml")

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestReaching(t *testing.T) {
	out, err := run(t, "reaching", figure913)
	require.NoError(t, err)
	assert.Contains(t, out, "Reaching definitions")
	assert.Contains(t, out, "OUT  {3 5 6 7}")
	assert.NotContains(t, out, "d1:")

	out, err = run(t, "--per-statement", "reaching", figure913)
	require.NoError(t, err)
	assert.Contains(t, out, "d1: i = m - 1")
}

func TestLiveness(t *testing.T) {
	out, err := run(t, "liveness", figure913)
	require.NoError(t, err)
	assert.Contains(t, out, "Live variables")
	assert.Contains(t, out, "IN   {m n u1 u2 u3}")
}

func TestAnalyzeWithConfig(t *testing.T) {
	dir := t.TempDir()
	reports := filepath.Join(dir, "reports")
	cfgFile := filepath.Join(dir, "config.yaml")
	cfg := "iteration: round-robin\nblock-order: reverse\nreport-results: true\nreports-dir: " + reports + "\n"
	require.NoError(t, os.WriteFile(cfgFile, []byte(cfg), 0600))

	out, err := run(t, "--config", cfgFile, "analyze", figure913)
	require.NoError(t, err)
	assert.Contains(t, out, "Reaching definitions")
	assert.Contains(t, out, "Live variables")

	files, err := filepath.Glob(filepath.Join(reports, "analyze-*.out"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	b, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(b), "d7: i = u3")
	assert.NotContains(t, string(b), "\033[")
}

type closer struct{ err error }

func (c closer) Close() error { return c.err }

func TestCloseFile(t *testing.T) {
	var err error
	closeFile(closer{}, &err)
	assert.NoError(t, err)

	closeFile(closer{errors.New("disk full")}, &err)
	assert.ErrorContains(t, err, "could not close report file: disk full")

	first := errors.New("could not write report")
	err = first
	closeFile(closer{errors.New("disk full")}, &err)
	assert.Same(t, first, err)
}

func TestRender(t *testing.T) {
	out, err := run(t, "render", figure913)
	require.NoError(t, err)
	assert.Contains(t, out, "strict digraph figure_9_13 {")

	dot := filepath.Join(t.TempDir(), "cfg.dot")
	_, err = run(t, "render", "-o", dot, figure913)
	require.NoError(t, err)
	b, err := os.ReadFile(dot)
	require.NoError(t, err)
	assert.Contains(t, string(b), "B4 -> B2")
}

func TestLoops(t *testing.T) {
	out, err := run(t, "loops", figure913)
	require.NoError(t, err)
	assert.Contains(t, out, "B2 -> B3 -> B4 -> B2")
	assert.Contains(t, out, "B2 -> B4 -> B2")
}

func TestErrors(t *testing.T) {
	_, err := run(t, "reaching", "missing.yaml")
	assert.Error(t, err)

	_, err = run(t, "reaching")
	assert.Error(t, err)

	_, err = run(t, "--config", "missing.yaml", "liveness", figure913)
	assert.Error(t, err)

	bad := filepath.Join("..", "..", "analysis", "loader", "testdata", "bad_operator.yaml")
	_, err = run(t, "liveness", bad)
	assert.ErrorContains(t, err, "invalid operator")
}

func TestGraphName(t *testing.T) {
	assert.Equal(t, "figure_9_13", graphName("a/b/figure_9_13.yaml"))
	assert.Equal(t, "my_prog", graphName("my-prog.yml"))
}
