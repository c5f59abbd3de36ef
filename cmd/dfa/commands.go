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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/awslabs/argot-dataflow/analysis/config"
	"github.com/awslabs/argot-dataflow/analysis/dataflow"
	"github.com/awslabs/argot-dataflow/analysis/loader"
	"github.com/awslabs/argot-dataflow/analysis/tac"
	"github.com/awslabs/argot-dataflow/internal/formatutil"
	"github.com/awslabs/argot-dataflow/internal/funcutil"
	"github.com/spf13/cobra"
)

// state is shared by the commands: it holds the configuration and the logger built from the persistent flags
type state struct {
	configPath   string
	verbose      bool
	perStatement bool
	cfg          *config.Config
	logger       *config.LogGroup
}

func newRootCmd() *cobra.Command {
	s := &state{}
	root := &cobra.Command{
		Use:          "dfa",
		Short:        "Data-flow analysis of three-address code programs",
		Long:         "Computes reaching definitions and live variables on programs described in yaml files.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.init(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&s.configPath, "config", "c", "", "config file")
	root.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false, "print debugging information")
	root.PersistentFlags().BoolVar(&s.perStatement, "per-statement", false,
		"report the results for every statement (overrides the config)")

	root.AddCommand(
		s.analysisCmd("reaching", "Compute the definitions reaching every block", reportReaching),
		s.analysisCmd("liveness", "Compute the variables live at every block", reportLiveness),
		s.analysisCmd("analyze", "Run both analyses concurrently", reportAll),
		s.renderCmd(),
		s.loopsCmd(),
	)
	return root
}

func (s *state) init(cmd *cobra.Command) error {
	if s.configPath == "" {
		s.cfg = config.NewDefault()
	} else {
		cfg, err := config.Load(s.configPath)
		if err != nil {
			return err
		}
		s.cfg = cfg
	}
	if s.verbose && !s.cfg.Verbose() {
		s.cfg.LogLevel = int(config.DebugLevel)
	}
	if s.perStatement {
		s.cfg.PerStatement = true
	}
	s.logger = config.NewLogGroup(s.cfg)
	s.logger.SetAllOutput(cmd.ErrOrStderr())
	return nil
}

func (s *state) load(filename string) (*tac.Program, error) {
	s.logger.Debugf("Loading %s", filename)
	prog, err := loader.Load(filename, tac.NewParser())
	if err != nil {
		return nil, err
	}
	s.logger.Infof("Loaded %d blocks, %d statements", prog.Len(), len(prog.Stmts()))
	if unreachable := prog.Unreachable(); len(unreachable) > 0 {
		s.logger.Warnf("Blocks not reachable from ENTRY: %v", unreachable)
	}
	return prog, nil
}

// report writes the results of some analyses of prog to w
type report func(w io.Writer, prog *tac.Program, opts dataflow.Options, perStatement bool) error

func reportReaching(w io.Writer, prog *tac.Program, opts dataflow.Options, perStatement bool) error {
	return dataflow.ReachingDefinitions(prog, opts).WriteReport(w, perStatement)
}

func reportLiveness(w io.Writer, prog *tac.Program, opts dataflow.Options, perStatement bool) error {
	return dataflow.LiveVariables(prog, opts).WriteReport(w, perStatement)
}

func reportAll(w io.Writer, prog *tac.Program, opts dataflow.Options, perStatement bool) error {
	res := dataflow.Analyze(prog, opts)
	if err := res.Reaching.WriteReport(w, perStatement); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w)
	return res.Live.WriteReport(w, perStatement)
}

func (s *state) analysisCmd(name string, short string, run report) *cobra.Command {
	return &cobra.Command{
		Use:   name + " program.yaml",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := s.load(args[0])
			if err != nil {
				return err
			}
			opts := dataflow.NewOptions(s.cfg, s.logger)
			if err := run(cmd.OutOrStdout(), prog, opts, s.cfg.PerStatement); err != nil {
				return err
			}
			if s.cfg.ReportResults {
				return s.writeReportFile(name, prog, opts, run)
			}
			return nil
		},
	}
}

// writeReportFile writes the report in a new file <name>-*.out of the reports directory
func (s *state) writeReportFile(name string, prog *tac.Program, opts dataflow.Options, run report) (err error) {
	f, err := os.CreateTemp(s.cfg.ReportsDir, name+"-*.out")
	if err != nil {
		return fmt.Errorf("could not create report file: %w", err)
	}
	defer closeFile(f, &err)
	if err := run(f, prog, opts, true); err != nil {
		return fmt.Errorf("could not write report: %w", err)
	}
	s.logger.Infof("Report written in %s", f.Name())
	return nil
}

// closeFile closes c, and sets *err to the close error unless *err already holds an error
func closeFile(c io.Closer, err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("could not close report file: %w", cerr)
	}
}

func (s *state) renderCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "render program.yaml",
		Short: "Render the control-flow graph in Graphviz DOT format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := s.load(args[0])
			if err != nil {
				return err
			}
			b, err := prog.MarshalDOT(graphName(args[0]))
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			s.logger.Infof("Writing control-flow graph in %s", output)
			return os.WriteFile(output, b, 0600)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: standard output)")
	return cmd
}

func (s *state) loopsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "loops program.yaml",
		Short: "List the loops of the control-flow graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := s.load(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			loops := prog.Loops()
			if len(loops) == 0 {
				_, err = fmt.Fprintln(w, formatutil.StyleFor(w).Green("no loops"))
				return err
			}
			for _, loop := range loops {
				names := funcutil.Map(loop, prog.BlockName)
				if _, err := fmt.Fprintln(w, strings.Join(names, " -> ")); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// graphName returns a DOT identifier derived from the name of the file
func graphName(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.Map(func(r rune) rune {
		if r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
			return r
		}
		return '_'
	}, base)
}
