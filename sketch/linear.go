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

import (
	"math"

	"github.com/bits-and-blooms/bitset"
)

// Linear is a linear-probabilistic counter. Each item sets the bit indexed
// by its hash modulo the bitmap size; the estimate follows from the fraction
// of bits still unset. Accuracy degrades once the bitmap saturates, so size
// should be on the order of the expected cardinality.
type Linear struct {
	size   uint
	bits   *bitset.BitSet
	hasher Hasher64
}

// NewLinear returns a linear counter over a bitset of the given size in
// bits. A size of zero is treated as one slot so that indexing stays total.
func NewLinear(size uint, hasher Hasher64) *Linear {
	if hasher == nil {
		hasher = DefaultHasher()
	}
	if size == 0 {
		size = 1
	}
	return &Linear{
		size:   size,
		bits:   bitset.New(size),
		hasher: hasher,
	}
}

func (c *Linear) Add(item []byte) {
	hash := c.hasher.Hash64(item)
	c.bits.Set(uint(hash % uint64(c.size)))
}

func (c *Linear) Estimate() float64 {
	unset := c.size - c.bits.Count()
	if unset < 1 {
		unset = 1
	}
	size := float64(c.size)
	return size * math.Log(size/float64(unset))
}
