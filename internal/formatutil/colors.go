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

// Package formatutil manipulates string colors for terminal output.
package formatutil

import (
	"fmt"
	"io"

	"golang.org/x/term"
)

const (
	bold   = "\033[1m%s\033[0m"
	faint  = "\033[2m%s\033[0m"
	red    = "\033[1;31m%s\033[0m"
	green  = "\033[1;32m%s\033[0m"
	yellow = "\033[1;33m%s\033[0m"
	cyan   = "\033[1;36m%s\033[0m"
)

// Style formats strings for one output: with colors if the output is a terminal, plainly otherwise.
type Style struct {
	colored bool
}

// StyleFor returns the style of strings written to w. Only terminals get colors; files, pipes and buffers get
// plain text.
func StyleFor(w io.Writer) Style {
	f, ok := w.(interface{ Fd() uintptr })
	return Style{colored: ok && term.IsTerminal(int(f.Fd()))}
}

// Colored returns true if the style adds escape sequences
func (s Style) Colored() bool { return s.colored }

func (s Style) Bold(args ...any) string   { return s.apply(bold, args) }
func (s Style) Faint(args ...any) string  { return s.apply(faint, args) }
func (s Style) Red(args ...any) string    { return s.apply(red, args) }
func (s Style) Green(args ...any) string  { return s.apply(green, args) }
func (s Style) Yellow(args ...any) string { return s.apply(yellow, args) }
func (s Style) Cyan(args ...any) string   { return s.apply(cyan, args) }

func (s Style) apply(colorString string, args []any) string {
	if s.colored {
		return fmt.Sprintf(colorString, fmt.Sprint(args...))
	}
	return fmt.Sprint(args...)
}
