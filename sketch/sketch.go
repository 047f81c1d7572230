/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package sketch is dedicated to streaming algorithms that estimate the
// cardinality of a stream of byte items in sub-linear memory.
//
// Four counters implement the same contract: Exact (ground truth, unbounded
// memory), FM (Flajolet-Martin probabilistic bit counting), Linear
// (linear-probabilistic bitmap counting) and HLL (HyperLogLog with
// bias-corrected estimation and a pure merge).
//
// Every counter is parameterized by a Hasher64 so callers choose the hash
// function and seed; the counters themselves never hardcode one.
package sketch

// Counter is the contract shared by all cardinality estimators.
//
// Add folds one item into the counter's fixed-size state. Estimate is a pure
// read of the current state and returns a non-negative approximation of the
// number of distinct items added so far. Both are total: no input can make
// them fail.
type Counter interface {
	// Add presents the given byte slice as a potential unique item.
	Add(item []byte)

	// Estimate returns the cardinality estimate.
	Estimate() float64
}
