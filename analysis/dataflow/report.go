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
	"io"

	"github.com/awslabs/argot-dataflow/analysis/tac"
	"github.com/awslabs/argot-dataflow/internal/formatutil"
)

// WriteReport writes the sets computed for every block of the program to w. If perStatement is true, the sets
// before and after every statement are written too.
func (r *ReachingDefs) WriteReport(w io.Writer, perStatement bool) error {
	return writeReport(w, r.prog, "Reaching definitions", r.Stats, func(b tac.BlockID) []string {
		return []string{
			fmt.Sprintf("GEN  %s", r.Gen(b)),
			fmt.Sprintf("KILL %s", r.Kill(b)),
			fmt.Sprintf("IN   %s", r.In(b)),
			fmt.Sprintf("OUT  %s", r.Out(b)),
		}
	}, func(id tac.StmtID) string {
		if !perStatement {
			return ""
		}
		return fmt.Sprintf("%s -> %s", r.StmtIn(id), r.StmtOut(id))
	})
}

// WriteReport writes the sets computed for every block of the program to w. If perStatement is true, the sets
// before and after every statement are written too.
func (l *Liveness) WriteReport(w io.Writer, perStatement bool) error {
	return writeReport(w, l.prog, "Live variables", l.Stats, func(b tac.BlockID) []string {
		return []string{
			fmt.Sprintf("USE  %s", l.Use(b)),
			fmt.Sprintf("DEF  %s", l.Def(b)),
			fmt.Sprintf("IN   %s", l.In(b)),
			fmt.Sprintf("OUT  %s", l.Out(b)),
		}
	}, func(id tac.StmtID) string {
		if !perStatement {
			return ""
		}
		return fmt.Sprintf("%s -> %s", l.StmtIn(id), l.StmtOut(id))
	})
}

func writeReport(w io.Writer, prog *tac.Program, title string, stats Stats,
	blockSets func(tac.BlockID) []string, stmtSets func(tac.StmtID) string) error {
	ew := &errWriter{w: w}
	style := formatutil.StyleFor(w)
	ew.printf("%s (%s)\n", style.Bold(title), style.Faint(stats))
	if !stats.Converged {
		ew.printf("%s\n", style.Yellow("warning: iteration stopped before reaching a fixed point"))
	}
	for i, b := range prog.Blocks() {
		ew.printf("%s\n", style.Cyan(prog.BlockName(i)))
		for _, s := range blockSets(i) {
			ew.printf("  %s\n", s)
		}
		for _, is := range b.Stmts() {
			if sets := stmtSets(is.ID); sets != "" {
				ew.printf("  d%d: %-20s %s\n", is.ID, is.Stmt, sets)
			}
		}
	}
	return ew.err
}

// errWriter remembers the first write error and ignores subsequent writes
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
