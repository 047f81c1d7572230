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
	"errors"
	"fmt"
	"math"

	"github.com/genoscale/seqsketch/internal"
)

// ErrPrecisionMismatch is returned by Merge when the two sketches were built
// with different precisions.
var ErrPrecisionMismatch = errors.New("hll precision mismatch")

// MaxPrecision bounds the register-index bit width. 2^30 one-byte registers
// is already 1 GiB; beyond that the configuration is a mistake, not a sketch.
const MaxPrecision = 30

// Bias correction constants for small register counts, from the HyperLogLog
// paper. Larger counts use the closed-form alpha below.
const (
	alphaM16 = 0.673
	alphaM32 = 0.697
	alphaM64 = 0.709
)

// HLL is a HyperLogLog counter with 2^precision one-byte registers.
//
// Each register holds the maximum "trailing-zero run + 1" observed among the
// hashes routed to it, so registers only ever grow. Two sketches of equal
// precision merge by element-wise maximum, which makes Merge commutative,
// associative and idempotent: the merged sketch estimates the union of the
// two input streams without rescanning either.
type HLL struct {
	precision int
	alpha     float64
	registers []uint8
	hasher    Hasher64
}

// NewHLL returns an empty HyperLogLog sketch with 2^precision registers,
// using the given hasher or the default hasher when nil.
func NewHLL(precision int, hasher Hasher64) (*HLL, error) {
	if precision < 0 || precision > MaxPrecision {
		return nil, fmt.Errorf("precision must be between 0 and %d, got %d", MaxPrecision, precision)
	}
	if hasher == nil {
		hasher = DefaultHasher()
	}
	m := 1 << precision
	var alpha float64
	switch {
	case precision <= 4:
		alpha = alphaM16
	case precision == 5:
		alpha = alphaM32
	case precision == 6:
		alpha = alphaM64
	default:
		alpha = 0.7213 / (1.0 + 1.079/float64(m))
	}
	return &HLL{
		precision: precision,
		alpha:     alpha,
		registers: make([]uint8, m),
		hasher:    hasher,
	}, nil
}

// Precision returns the configured register-index bit width.
func (h *HLL) Precision() int {
	return h.precision
}

func (h *HLL) Add(item []byte) {
	h.addHash(h.hasher.Hash64(item))
}

// AddUint64 presents a 64-bit integer as a potential unique item. The value
// is hashed through the configured hasher over its little-endian encoding,
// so it counts identically to Add of the same eight bytes.
func (h *HLL) AddUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	h.addHash(h.hasher.Hash64(b[:]))
}

// AddHash64 folds an already uniformly distributed 64-bit hash into the
// sketch, bypassing the hasher entirely. The caller is responsible for the
// uniformity; feeding structured integers here skews the estimate.
func (h *HLL) AddHash64(hash uint64) {
	h.addHash(hash)
}

func (h *HLL) addHash(hash uint64) {
	index := hash & (uint64(1)<<h.precision - 1)
	remainder := hash >> h.precision
	rho := internal.CountTrailingZerosInU64(remainder) + 1
	if maxRho := uint8(64 - h.precision); rho > maxRho {
		rho = maxRho
	}
	if rho > h.registers[index] {
		h.registers[index] = rho
	}
}

func (h *HLL) Estimate() float64 {
	m := float64(len(h.registers))

	sum := 0.0
	for _, reg := range h.registers {
		sum += internal.InvPow2(int(reg))
	}
	estimate := h.alpha * m * m / sum

	if estimate <= 2.5*m {
		// Small range correction: fall back to linear counting while any
		// register is still untouched.
		zeros := 0
		for _, reg := range h.registers {
			if reg == 0 {
				zeros++
			}
		}
		if zeros > 0 {
			estimate = m * math.Log(m/float64(zeros))
		}
	} else if estimate > math.Exp2(64)/30.0 {
		// Large range correction for hash saturation near 2^64.
		estimate = -math.Exp2(64) * math.Log(1.0-estimate/math.Exp2(64))
	}

	return estimate
}

// Merge folds other into h by element-wise register maximum. Both sketches
// must have been built with the same precision.
func (h *HLL) Merge(other *HLL) error {
	if other == nil {
		return nil
	}
	if h.precision != other.precision {
		return fmt.Errorf("%w: %d vs %d", ErrPrecisionMismatch, h.precision, other.precision)
	}
	for i, reg := range other.registers {
		if reg > h.registers[i] {
			h.registers[i] = reg
		}
	}
	return nil
}

// Copy returns an independent clone of the sketch.
func (h *HLL) Copy() *HLL {
	registers := make([]uint8, len(h.registers))
	copy(registers, h.registers)
	return &HLL{
		precision: h.precision,
		alpha:     h.alpha,
		registers: registers,
		hasher:    h.hasher,
	}
}
