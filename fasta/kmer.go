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

// compactThreshold is the consumed-prefix length past which the scanner
// window slides its contents back to the front of the buffer.
const compactThreshold = 1 << 12

// KmerScanner iterates over the length-k windows of the current record's
// sequence, one base at a time, reading further sequence lines on demand.
// Windows span line boundaries.
//
// The scanner borrows the Reader's cursor exclusively. Close releases the
// borrow: whether iteration ran to exhaustion or was abandoned early, Close
// leaves the cursor at the next record header or at end of input, so
// NextRecord can always be called afterwards. Close is idempotent.
//
// Usage follows the bufio.Scanner shape:
//
//	sc := r.Kmers(31)
//	defer sc.Close()
//	for sc.Next() {
//		use(sc.Kmer())
//	}
//	if err := sc.Err(); err != nil { ... }
type KmerScanner struct {
	f      *Reader
	k      int
	window []byte
	start  int
	kmer   []byte
	err    error
	done   bool // record's sequence lines are exhausted
	closed bool
}

// Kmers returns a scanner over the length-k windows of the current record.
// A non-positive k yields no windows.
func (f *Reader) Kmers(k int) *KmerScanner {
	s := &KmerScanner{f: f, k: k}
	if k <= 0 {
		s.done = true
	}
	return s
}

// Next advances to the next window. It returns false at the end of the
// record, after Close, or on error; Err distinguishes the latter.
func (s *KmerScanner) Next() bool {
	if s.closed || s.err != nil {
		return false
	}
	if s.start >= compactThreshold {
		n := copy(s.window, s.window[s.start:])
		s.window = s.window[:n]
		s.start = 0
	}
	if s.done && len(s.window)-s.start < s.k {
		return false
	}
	if err := s.fill(); err != nil {
		s.err = err
		return false
	}
	if len(s.window)-s.start < s.k {
		return false
	}
	s.kmer = s.window[s.start : s.start+s.k]
	s.start++
	return true
}

// Kmer returns the current window. The slice is only valid until the next
// call to Next.
func (s *KmerScanner) Kmer() []byte {
	return s.kmer
}

// Err returns the first error encountered while scanning, nil at a normal
// end of record.
func (s *KmerScanner) Err() error {
	return s.err
}

// Close abandons the iteration and repositions the reader's cursor at the
// next record header or end of input.
func (s *KmerScanner) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.done {
		return nil
	}
	for {
		line, ok, err := s.f.readLine()
		if err != nil {
			s.f.finished = true
			return err
		}
		if !ok {
			s.f.finished = true
			return nil
		}
		if line[0] == '>' {
			s.f.pending, s.f.hasPending = line, true
			return nil
		}
	}
}

// fill reads sequence lines until the window holds at least k bases or the
// record ends.
func (s *KmerScanner) fill() error {
	for len(s.window)-s.start < s.k && !s.done {
		line, ok, err := s.f.readLine()
		if err != nil {
			return err
		}
		if !ok {
			s.done = true
			s.f.finished = true
			break
		}
		if line[0] == '>' {
			s.done = true
			s.f.pending, s.f.hasPending = line, true
			break
		}
		s.window = append(s.window, bytes.TrimSpace(line)...)
	}
	return nil
}

// CanonicalScanner is a KmerScanner that yields each window in its
// reverse-complement-canonical form.
type CanonicalScanner struct {
	inner *KmerScanner
	kmer  []byte
}

// CanonicalKmers returns a scanner over the canonical length-k windows of
// the current record.
func (f *Reader) CanonicalKmers(k int) *CanonicalScanner {
	return &CanonicalScanner{inner: f.Kmers(k)}
}

func (s *CanonicalScanner) Next() bool {
	if !s.inner.Next() {
		return false
	}
	s.kmer = Canonical(s.inner.Kmer())
	return true
}

// Kmer returns the current canonical window, valid until the next call to
// Next.
func (s *CanonicalScanner) Kmer() []byte {
	return s.kmer
}

func (s *CanonicalScanner) Err() error {
	return s.inner.Err()
}

func (s *CanonicalScanner) Close() error {
	return s.inner.Close()
}
