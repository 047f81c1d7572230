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

package fasta

import "bytes"

// complementTable swaps A<->T and C<->G in both cases and leaves every other
// byte unchanged, so ambiguity codes like N pass through as themselves.
var complementTable = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = byte(i)
	}
	t['A'], t['T'] = 'T', 'A'
	t['C'], t['G'] = 'G', 'C'
	t['a'], t['t'] = 't', 'a'
	t['c'], t['g'] = 'g', 'c'
	return t
}()

// ReverseComplement returns the reverse complement of seq as a new slice.
func ReverseComplement(seq []byte) []byte {
	return AppendReverseComplement(make([]byte, 0, len(seq)), seq)
}

// AppendReverseComplement appends the reverse complement of seq to dst and
// returns the extended slice.
func AppendReverseComplement(dst, seq []byte) []byte {
	for i := len(seq) - 1; i >= 0; i-- {
		dst = append(dst, complementTable[seq[i]])
	}
	return dst
}

// Canonical returns the lexicographically smaller of kmer and its reverse
// complement. Ties, which are exactly the palindromic k-mers, resolve to
// kmer itself.
func Canonical(kmer []byte) []byte {
	rc := ReverseComplement(kmer)
	if bytes.Compare(kmer, rc) <= 0 {
		return kmer
	}
	return rc
}
