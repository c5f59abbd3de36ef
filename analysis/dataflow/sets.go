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
	"strings"

	"github.com/awslabs/argot-dataflow/internal/funcutil"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/tools/container/intsets"
)

// IDSet is a set of statement ids. A nil *IDSet is the empty set, and is returned by queries on blocks or statements
// that do not exist.
type IDSet struct {
	s intsets.Sparse
}

// NewIDSet returns a set containing ids
func NewIDSet(ids ...int) *IDSet {
	s := &IDSet{}
	for _, id := range ids {
		s.s.Insert(id)
	}
	return s
}

// Has returns true if id is in the set
func (s *IDSet) Has(id int) bool {
	return s != nil && s.s.Has(id)
}

// Len returns the number of elements in the set
func (s *IDSet) Len() int {
	if s == nil {
		return 0
	}
	return s.s.Len()
}

// IsEmpty returns true if the set has no element
func (s *IDSet) IsEmpty() bool {
	return s.Len() == 0
}

// Slice returns the elements of the set in increasing order
func (s *IDSet) Slice() []int {
	if s == nil {
		return nil
	}
	return s.s.AppendTo(nil)
}

// Equals returns true if s and t contain the same elements
func (s *IDSet) Equals(t *IDSet) bool {
	if s.IsEmpty() || t.IsEmpty() {
		return s.IsEmpty() && t.IsEmpty()
	}
	return s.s.Equals(&t.s)
}

// SubsetOf returns true if every element of s is in t
func (s *IDSet) SubsetOf(t *IDSet) bool {
	if s.IsEmpty() {
		return true
	}
	if t == nil {
		return false
	}
	return s.s.SubsetOf(&t.s)
}

// Copy returns a new set with the same elements
func (s *IDSet) Copy() *IDSet {
	c := &IDSet{}
	if s != nil {
		c.s.Copy(&s.s)
	}
	return c
}

// String returns the set in the form {1 2 3}
func (s *IDSet) String() string {
	if s == nil {
		return "{}"
	}
	return s.s.String()
}

func (s *IDSet) unionWith(t *IDSet) bool {
	if t == nil {
		return false
	}
	return s.s.UnionWith(&t.s)
}

func (s *IDSet) differenceWith(t *IDSet) {
	if t != nil {
		s.s.DifferenceWith(&t.s)
	}
}

func (s *IDSet) intersectionWith(t *IDSet) {
	if t == nil {
		s.s.Clear()
		return
	}
	s.s.IntersectionWith(&t.s)
}

// VarSet is a set of variable names. A nil VarSet is the empty set, and is returned by queries on blocks or
// statements that do not exist.
type VarSet map[string]bool

// NewVarSet returns a set containing vars
func NewVarSet(vars ...string) VarSet {
	s := make(VarSet, len(vars))
	for _, v := range vars {
		s[v] = true
	}
	return s
}

// Has returns true if v is in the set
func (s VarSet) Has(v string) bool {
	return s[v]
}

// Len returns the number of elements in the set
func (s VarSet) Len() int {
	return len(s)
}

// Slice returns the elements of the set in increasing order
func (s VarSet) Slice() []string {
	keys := maps.Keys(s)
	slices.Sort(keys)
	return keys
}

// Equals returns true if s and t contain the same elements
func (s VarSet) Equals(t VarSet) bool {
	return maps.Equal(s, t)
}

// SubsetOf returns true if every element of s is in t
func (s VarSet) SubsetOf(t VarSet) bool {
	return !funcutil.Exists(maps.Keys(s), func(v string) bool { return !t[v] })
}

// Copy returns a new set with the same elements
func (s VarSet) Copy() VarSet {
	c := make(VarSet, len(s))
	for v := range s {
		c[v] = true
	}
	return c
}

// String returns the set in the form {a b c}
func (s VarSet) String() string {
	return fmt.Sprintf("{%s}", strings.Join(s.Slice(), " "))
}
