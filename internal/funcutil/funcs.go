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

package funcutil

// Identity returns its argument
func Identity[T any](x T) T { return x }

// Compose (f,g) returns a function h: x -> g(f(x)), i.e. f is applied first
func Compose[T any, S any, R any](f func(T) S, g func(S) R) func(T) R {
	return func(x T) R { return g(f(x)) }
}

// Chain composes the functions left to right. Chain() is the identity.
func Chain[T any](fs ...func(T) T) func(T) T {
	h := Identity[T]
	for _, f := range fs {
		h = Compose(h, f)
	}
	return h
}
