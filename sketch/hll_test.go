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
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHLLPrecisionBounds(t *testing.T) {
	_, err := NewHLL(-1, nil)
	assert.Error(t, err)

	_, err = NewHLL(MaxPrecision+1, nil)
	assert.Error(t, err)

	h, err := NewHLL(0, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, h.Precision())
	assert.Len(t, h.registers, 1)
}

func TestHLLEmptyEstimateIsZero(t *testing.T) {
	h, err := NewHLL(14, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, h.Estimate())
}

func TestHLLEstimateAccuracy(t *testing.T) {
	h, err := NewHLL(14, nil)
	require.NoError(t, err)

	const n = 10000
	for i := 0; i < n; i++ {
		h.Add([]byte(fmt.Sprintf("item_%d", i)))
	}
	assert.InDelta(t, n, h.Estimate(), n*0.03)
}

func TestHLLDuplicatesDoNotGrow(t *testing.T) {
	h, err := NewHLL(12, nil)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		h.Add([]byte("same item"))
	}
	before := h.Estimate()
	for i := 0; i < 100; i++ {
		h.Add([]byte("same item"))
	}
	assert.Equal(t, before, h.Estimate())
}

func TestHLLMonotonicity(t *testing.T) {
	h, err := NewHLL(10, nil)
	require.NoError(t, err)

	prev := 0.0
	for i := 0; i < 5000; i++ {
		h.Add([]byte(fmt.Sprintf("item_%d", i)))
		if i%500 == 0 {
			est := h.Estimate()
			assert.GreaterOrEqual(t, est, prev)
			prev = est
		}
	}
}

func TestHLLAddUint64MatchesAdd(t *testing.T) {
	a, err := NewHLL(12, nil)
	require.NoError(t, err)
	b, err := NewHLL(12, nil)
	require.NoError(t, err)

	var buf [8]byte
	for i := uint64(0); i < 1000; i++ {
		v := i * 0x9e3779b97f4a7c15
		a.AddUint64(v)
		binary.LittleEndian.PutUint64(buf[:], v)
		b.Add(buf[:])
	}
	assert.Equal(t, a.registers, b.registers)
}

func fillHLL(t *testing.T, precision int, seed, n uint64) *HLL {
	t.Helper()
	h, err := NewHLL(precision, nil)
	require.NoError(t, err)
	for i := uint64(0); i < n; i++ {
		h.AddUint64(i ^ seed)
	}
	return h
}

func TestHLLMergeIdempotent(t *testing.T) {
	a := fillHLL(t, 12, 1, 2000)
	merged := a.Copy()
	require.NoError(t, merged.Merge(a))
	assert.Equal(t, a.registers, merged.registers)
}

func TestHLLMergeCommutative(t *testing.T) {
	a := fillHLL(t, 12, 1, 2000)
	b := fillHLL(t, 12, 2, 3000)

	ab := a.Copy()
	require.NoError(t, ab.Merge(b))
	ba := b.Copy()
	require.NoError(t, ba.Merge(a))
	assert.Equal(t, ab.registers, ba.registers)
}

func TestHLLMergeAssociative(t *testing.T) {
	a := fillHLL(t, 12, 1, 2000)
	b := fillHLL(t, 12, 2, 3000)
	c := fillHLL(t, 12, 3, 4000)

	left := a.Copy()
	require.NoError(t, left.Merge(b))
	require.NoError(t, left.Merge(c))

	bc := b.Copy()
	require.NoError(t, bc.Merge(c))
	right := a.Copy()
	require.NoError(t, right.Merge(bc))

	assert.Equal(t, left.registers, right.registers)
}

func TestHLLMergeEstimatesUnion(t *testing.T) {
	a, err := NewHLL(14, nil)
	require.NoError(t, err)
	b, err := NewHLL(14, nil)
	require.NoError(t, err)

	// Overlapping ranges: union is 15000 distinct values.
	for i := 0; i < 10000; i++ {
		a.Add([]byte(fmt.Sprintf("item_%d", i)))
	}
	for i := 5000; i < 15000; i++ {
		b.Add([]byte(fmt.Sprintf("item_%d", i)))
	}

	require.NoError(t, a.Merge(b))
	assert.InDelta(t, 15000, a.Estimate(), 15000*0.03)
}

func TestHLLMergePrecisionMismatch(t *testing.T) {
	a, err := NewHLL(12, nil)
	require.NoError(t, err)
	b, err := NewHLL(14, nil)
	require.NoError(t, err)

	err = a.Merge(b)
	assert.ErrorIs(t, err, ErrPrecisionMismatch)
}

func TestHLLMergeNilIsNoop(t *testing.T) {
	a := fillHLL(t, 12, 1, 100)
	before := a.Copy()
	require.NoError(t, a.Merge(nil))
	assert.Equal(t, before.registers, a.registers)
}
