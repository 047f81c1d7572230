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

// Package kmer packs DNA k-mers into 64-bit integers at two bits per base
// and canonicalizes them without touching individual bases.
package kmer

import (
	"fmt"
	"math/bits"
)

// Word is a packed k-mer: up to MaxK bases at two bits per base, the most
// recent base in the two lowest bits.
type Word uint64

// MaxK is the largest k-mer length a Word can hold while leaving the
// canonicalization bit tricks exact.
const MaxK = 31

// invalidCode marks bytes outside the ACGT alphabet in the encoding table.
const invalidCode = 0xFF

// baseCodes maps A=0, C=1, G=2, T=3 in both cases; everything else is
// invalidCode and resets a rolling window.
var baseCodes = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = invalidCode
	}
	t['A'], t['C'], t['G'], t['T'] = 0, 1, 2, 3
	t['a'], t['c'], t['g'], t['t'] = 0, 1, 2, 3
	return t
}()

// baseLetters decodes a 2-bit code back to its uppercase letter.
var baseLetters = [4]byte{'A', 'C', 'G', 'T'}

// pairSwapMask selects every second bit, used to swap adjacent bit pairs
// when reversing a word back into 2-bit-lane order.
const pairSwapMask = 0x5555555555555555

// Coder packs and canonicalizes k-mers of one fixed length.
type Coder struct {
	k    int
	mask Word
}

// NewCoder returns a Coder for k-mers of length k, 1 to MaxK.
func NewCoder(k int) (Coder, error) {
	if k < 1 || k > MaxK {
		return Coder{}, fmt.Errorf("k must be between 1 and %d, got %d", MaxK, k)
	}
	return Coder{k: k, mask: Word(1)<<(2*k) - 1}, nil
}

// K returns the configured k-mer length.
func (c Coder) K() int {
	return c.k
}

// Append slides the window one base to the left and admits base in the low
// lane. It reports false for a byte outside ACGT, in which case the caller
// must reset its window and valid-length count; the returned Word is zero.
func (c Coder) Append(w Word, base byte) (Word, bool) {
	code := baseCodes[base]
	if code == invalidCode {
		return 0, false
	}
	return ((w << 2) & c.mask) | Word(code), true
}

// ReverseComplement returns the packed reverse complement of w.
//
// Reversing all 64 bits also reverses the two bits within each base lane, so
// after shifting the result back down we swap adjacent bit pairs to restore
// lane order, then complement within the 2k active bits. A=00 pairs with
// T=11 and C=01 with G=10, which makes complement a plain XOR.
func (c Coder) ReverseComplement(w Word) Word {
	r := Word(bits.Reverse64(uint64(w)))
	r >>= 64 - 2*uint(c.k)
	r = ((r >> 1) & pairSwapMask) | ((r & pairSwapMask) << 1)
	return r ^ c.mask
}

// Canonical returns the numerically smaller of w and its reverse complement.
// With the 2-bit encoding this matches the lexicographic minimum of the
// decoded sequences.
func (c Coder) Canonical(w Word) Word {
	r := c.ReverseComplement(w)
	if w < r {
		return w
	}
	return r
}

// Encode packs seq, which must be exactly k valid bases. It reports false if
// the length is wrong or any byte falls outside ACGT.
func (c Coder) Encode(seq []byte) (Word, bool) {
	if len(seq) != c.k {
		return 0, false
	}
	var w Word
	for _, b := range seq {
		var ok bool
		w, ok = c.Append(w, b)
		if !ok {
			return 0, false
		}
	}
	return w, true
}

// Decode unpacks w into its k uppercase base letters.
func (c Coder) Decode(w Word) []byte {
	out := make([]byte, c.k)
	for i := c.k - 1; i >= 0; i-- {
		out[i] = baseLetters[w&3]
		w >>= 2
	}
	return out
}
