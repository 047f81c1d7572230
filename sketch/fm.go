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

	"github.com/genoscale/seqsketch/internal"
)

// fmPhi is the Flajolet-Martin bias correction constant.
const fmPhi = 0.77351

// FM is a Flajolet-Martin probabilistic bit counter. Each item sets the bit
// indexed by the trailing-zero count of its hash, clamped to the last slot.
// The position of the first unset bit then estimates log2 of the cardinality.
type FM struct {
	size   uint
	bits   *bitset.BitSet
	hasher Hasher64
}

// NewFM returns an FM counter over a bitset of the given size in bits.
// A size of zero degenerates to a single slot; the counter keeps the
// reference index-clamping behavior instead of rejecting it.
func NewFM(size uint, hasher Hasher64) *FM {
	if hasher == nil {
		hasher = DefaultHasher()
	}
	slots := size
	if slots == 0 {
		slots = 1
	}
	return &FM{
		size:   slots,
		bits:   bitset.New(slots),
		hasher: hasher,
	}
}

func (c *FM) Add(item []byte) {
	hash := c.hasher.Hash64(item)
	index := uint(internal.CountTrailingZerosInU64(hash))
	if index > c.size-1 {
		index = c.size - 1
	}
	c.bits.Set(index)
}

func (c *FM) Estimate() float64 {
	firstUnset, found := c.bits.NextClear(0)
	if !found || firstUnset >= c.size {
		firstUnset = c.size - 1
	}
	return math.Ldexp(1, int(firstUnset)) / fmPhi
}
