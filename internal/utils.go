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

package internal

import (
	"math"

	"golang.org/x/exp/constraints"
)

// InvPow2 returns 2^(-e) for e in [0, 1023], building the float directly from
// its exponent bits. Callers sum these over sketch registers, so avoiding
// math.Pow matters.
func InvPow2(e int) float64 {
	if e < 0 || e > 1023 {
		panic("e cannot be negative or greater than 1023")
	}
	return math.Float64frombits((1023 - uint64(e)) << 52)
}

// Clamp returns v limited to the closed interval [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
