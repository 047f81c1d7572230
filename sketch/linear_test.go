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
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinearZeroItems(t *testing.T) {
	// All bits unset: size * ln(size/size) = 0.
	lc := NewLinear(1024, nil)
	assert.Equal(t, 0.0, lc.Estimate())
}

func TestLinearSingleItem(t *testing.T) {
	lc := NewLinear(1024, nil)
	lc.Add([]byte("one"))
	assert.InDelta(t, 1.0, lc.Estimate(), 0.01)
}

func TestLinearAccuracy(t *testing.T) {
	const n = 10000
	lc := NewLinear(1<<18, nil)
	for i := 0; i < n; i++ {
		lc.Add([]byte(fmt.Sprintf("item_%d", i)))
	}
	assert.InDelta(t, n, lc.Estimate(), n*0.02)
}

func TestLinearSaturationFloorsUnsetCount(t *testing.T) {
	// Saturate a tiny bitmap; the unset-bit count floors at 1 instead of
	// dividing by zero.
	lc := NewLinear(8, nil)
	for i := 0; i < 10000; i++ {
		lc.Add([]byte(fmt.Sprintf("item_%d", i)))
	}
	est := lc.Estimate()
	assert.False(t, math.IsNaN(est), "estimate must not be NaN")
	assert.Greater(t, est, 0.0)
}

func TestLinearDegenerateSizeZero(t *testing.T) {
	lc := NewLinear(0, nil)
	lc.Add([]byte("x"))
	assert.Equal(t, 0.0, lc.Estimate())
}
