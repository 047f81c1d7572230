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

package kmer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genoscale/seqsketch/fasta"
)

func TestNewCoderBounds(t *testing.T) {
	_, err := NewCoder(0)
	assert.Error(t, err)
	_, err = NewCoder(32)
	assert.Error(t, err)

	c, err := NewCoder(31)
	require.NoError(t, err)
	assert.Equal(t, 31, c.K())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c, err := NewCoder(5)
	require.NoError(t, err)

	w, ok := c.Encode([]byte("ACGTA"))
	require.True(t, ok)
	assert.Equal(t, "ACGTA", string(c.Decode(w)))

	// Lowercase packs to the same word, decodes uppercase.
	lw, ok := c.Encode([]byte("acgta"))
	require.True(t, ok)
	assert.Equal(t, w, lw)
}

func TestEncodeRejectsBadInput(t *testing.T) {
	c, err := NewCoder(4)
	require.NoError(t, err)

	_, ok := c.Encode([]byte("ACGN"))
	assert.False(t, ok)
	_, ok = c.Encode([]byte("ACG"))
	assert.False(t, ok)
}

func TestAppendResetsOnInvalidBase(t *testing.T) {
	c, err := NewCoder(3)
	require.NoError(t, err)

	w, ok := c.Append(0, 'A')
	require.True(t, ok)
	w, ok = c.Append(w, 'C')
	require.True(t, ok)

	w, ok = c.Append(w, 'N')
	assert.False(t, ok)
	assert.Equal(t, Word(0), w)
}

func TestAppendWindowsMatchEncode(t *testing.T) {
	c, err := NewCoder(3)
	require.NoError(t, err)

	seq := []byte("ACGTACG")
	var w Word
	valid := 0
	var windows []string
	for _, b := range seq {
		var ok bool
		w, ok = c.Append(w, b)
		require.True(t, ok)
		valid++
		if valid >= c.K() {
			windows = append(windows, string(c.Decode(w)))
		}
	}
	assert.Equal(t, []string{"ACG", "CGT", "GTA", "TAC", "ACG"}, windows)
}

func TestReverseComplement(t *testing.T) {
	c, err := NewCoder(4)
	require.NoError(t, err)

	w, ok := c.Encode([]byte("ATCG"))
	require.True(t, ok)
	assert.Equal(t, "CGAT", string(c.Decode(c.ReverseComplement(w))))

	// Involution: rc(rc(w)) == w.
	assert.Equal(t, w, c.ReverseComplement(c.ReverseComplement(w)))
}

func TestCanonicalParityWithByteForm(t *testing.T) {
	// The packed canonical form must decode to exactly the byte-wise
	// canonical form, for every k up to the 31-base limit.
	rng := rand.New(rand.NewSource(3))
	bases := []byte("ACGT")

	for _, k := range []int{1, 2, 3, 15, 16, 30, 31} {
		c, err := NewCoder(k)
		require.NoError(t, err)

		for trial := 0; trial < 500; trial++ {
			seq := make([]byte, k)
			for i := range seq {
				seq[i] = bases[rng.Intn(4)]
			}

			w, ok := c.Encode(seq)
			require.True(t, ok)

			packed := string(c.Decode(c.Canonical(w)))
			byteWise := string(fasta.Canonical(seq))
			assert.Equal(t, byteWise, packed, "k=%d seq=%s", k, seq)
		}
	}
}

func TestCanonicalIsStrandInvariant(t *testing.T) {
	c, err := NewCoder(31)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(5))
	bases := []byte("ACGT")
	for trial := 0; trial < 300; trial++ {
		seq := make([]byte, 31)
		for i := range seq {
			seq[i] = bases[rng.Intn(4)]
		}
		w, ok := c.Encode(seq)
		require.True(t, ok)
		assert.Equal(t, c.Canonical(w), c.Canonical(c.ReverseComplement(w)))
	}
}

func TestCanonicalPalindrome(t *testing.T) {
	c, err := NewCoder(4)
	require.NoError(t, err)

	w, ok := c.Encode([]byte("GCGC"))
	require.True(t, ok)
	assert.Equal(t, w, c.ReverseComplement(w))
	assert.Equal(t, w, c.Canonical(w))
}
