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

package sketch

// Exact counts distinct items by keeping every 64-bit fingerprint it has
// seen. Its memory grows with the input, so it serves as the ground truth the
// probabilistic counters are validated against, not as a production path.
type Exact struct {
	hasher Hasher64
	seen   map[uint64]struct{}
}

// NewExact returns an empty exact counter using the given hasher, or the
// default hasher when nil.
func NewExact(hasher Hasher64) *Exact {
	if hasher == nil {
		hasher = DefaultHasher()
	}
	return &Exact{
		hasher: hasher,
		seen:   make(map[uint64]struct{}),
	}
}

func (c *Exact) Add(item []byte) {
	c.seen[c.hasher.Hash64(item)] = struct{}{}
}

func (c *Exact) Estimate() float64 {
	return float64(len(c.seen))
}
