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

/*
Package config provides a simple way to manage the configuration of the analyses.

Use [Load](filename) to load a configuration from a specific filename, or [NewDefault]() for the default
configuration.

A config file should be in yaml format. The top-level fields are the fields of the [Options] struct. For example,
a valid config file is as follows:

	log-level: 4
	iteration: round-robin
	block-order: topological
	per-statement: true

# Iteration

The analyses compute the least fixed point of their dataflow equations. The result does not depend on the iteration
strategy or on the block order; those only change how many blocks are visited before the fixed point is reached.
Setting max-sweeps stops round-robin iteration early, which is only useful to inspect intermediate results.
*/
package config
