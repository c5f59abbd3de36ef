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

package config

import (
	"errors"
	"fmt"
	"os"
	"path"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// ErrInvalidOption is returned when a config file sets an option to an unknown value
var ErrInvalidOption = errors.New("invalid option")

// Config contains the options of the analyses and of the tool frontends.
// If some field is not defined in the config file, it will be empty/zero in the struct.
// private fields are not populated from a yaml file, but computed after initialization
type Config struct {
	Options `yaml:",inline"`

	sourceFile string
}

// Options are the options that can be set in a config file
type Options struct {
	// ReportsDir is the directory where the reports will be stored when ReportResults is set. If the yaml config
	// file does not specify a ReportsDir, a temporary directory is created next to the config file.
	ReportsDir string `yaml:"reports-dir"`

	// ReportResults can be set to true, in which case the results of each analysis are also written to a file named
	// <analysis>-*.out in the reports directory
	ReportResults bool `yaml:"report-results"`

	// Iteration is the iteration strategy of the fixed point computation: round-robin or worklist
	Iteration string `yaml:"iteration"`

	// BlockOrder is the order in which blocks are visited: program, reverse or topological
	BlockOrder string `yaml:"block-order"`

	// MaxSweeps limits the number of round-robin sweeps. If MaxSweeps <= 0, it is ignored.
	MaxSweeps int `yaml:"max-sweeps"`

	// PerStatement specifies whether the results should be reported for every statement in addition to every block
	PerStatement bool `yaml:"per-statement"`

	// Loglevel controls the verbosity of the tool
	LogLevel int `yaml:"log-level"`
}

// NewDefault returns a default config.
func NewDefault() *Config {
	return &Config{
		sourceFile: "",
		Options: Options{
			ReportsDir:    "",
			ReportResults: false,
			Iteration:     DefaultIteration,
			BlockOrder:    DefaultBlockOrder,
			MaxSweeps:     0,
			PerStatement:  false,
			LogLevel:      int(InfoLevel),
		},
	}
}

// Load reads a configuration from a file
func Load(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	return Parse(filename, b)
}

// Parse reads a configuration from the content b of the config file filename
func Parse(filename string, b []byte) (*Config, error) {
	cfg := NewDefault()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config file %s: %w", filename, err)
	}

	cfg.sourceFile = filename

	if cfg.Iteration == "" {
		cfg.Iteration = DefaultIteration
	}
	if !slices.Contains([]string{IterationRoundRobin, IterationWorklist}, cfg.Iteration) {
		return nil, fmt.Errorf("iteration %q: %w", cfg.Iteration, ErrInvalidOption)
	}

	if cfg.BlockOrder == "" {
		cfg.BlockOrder = DefaultBlockOrder
	}
	if !slices.Contains([]string{OrderProgram, OrderReverse, OrderTopological}, cfg.BlockOrder) {
		return nil, fmt.Errorf("block-order %q: %w", cfg.BlockOrder, ErrInvalidOption)
	}

	// If logLevel has not been specified (i.e. it is 0) set the default to Info
	if cfg.LogLevel == 0 {
		cfg.LogLevel = int(InfoLevel)
	}

	if cfg.ReportResults {
		if err := setReportsDir(cfg, filename); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func setReportsDir(c *Config, filename string) error {
	if c.ReportsDir == "" {
		tmpdir, err := os.MkdirTemp(path.Dir(filename), "*-report")
		if err != nil {
			return fmt.Errorf("could not create temp dir for reports: %w", err)
		}
		c.ReportsDir = tmpdir
	} else {
		err := os.Mkdir(c.ReportsDir, 0750)
		if err != nil {
			if !os.IsExist(err) {
				return fmt.Errorf("could not create directory %s: %w", c.ReportsDir, err)
			}
		}
	}
	return nil
}

// SourceFile returns the name of the file the config has been loaded from, or "" for a default config
func (c Config) SourceFile() string {
	return c.sourceFile
}

// Verbose returns true is the configuration verbosity setting is larger than Info (i.e. Debug or Trace)
func (c Config) Verbose() bool {
	return c.LogLevel >= int(DebugLevel)
}
