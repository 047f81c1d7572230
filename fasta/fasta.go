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

// Package fasta reads FASTA-formatted sequence data one record at a time and
// exposes sliding-window k-mer iteration over the current record, including
// a reverse-complement-canonical variant.
package fasta

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ErrMalformedRecord reports a line that should have started a record but
// did not carry the '>' marker.
var ErrMalformedRecord = errors.New("malformed fasta record")

// Reader streams FASTA records from an underlying reader. At most one record
// is open at a time: NextRecord consumes the header line, after which either
// ReadSequence or one k-mer scanner may walk the record's sequence lines.
type Reader struct {
	r          *bufio.Reader
	pending    []byte // last line read but not yet consumed
	hasPending bool
	id         []byte
	finished   bool
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// NextRecord advances to the next record header. It returns false once the
// input is exhausted. A pending line that does not start with '>' is a
// format error wrapping ErrMalformedRecord, never silently skipped.
func (f *Reader) NextRecord() (bool, error) {
	if f.finished {
		return false, nil
	}
	if !f.hasPending {
		line, ok, err := f.readLine()
		if err != nil {
			return false, err
		}
		if !ok {
			f.finished = true
			return false, nil
		}
		f.pending, f.hasPending = line, true
	}
	if len(f.pending) == 0 || f.pending[0] != '>' {
		return false, fmt.Errorf("%w: expected '>' at the start of a record", ErrMalformedRecord)
	}
	f.id = bytes.TrimSpace(f.pending[1:])
	f.pending, f.hasPending = nil, false
	return true, nil
}

// ID returns the identifier of the current record: the header bytes after
// the '>' marker, trimmed. Valid until the next call to NextRecord.
func (f *Reader) ID() []byte {
	return f.id
}

// ReadSequence consumes the rest of the current record, concatenating its
// trimmed sequence lines. It stops at the next record header, which stays
// available for the following NextRecord call, or at end of input.
func (f *Reader) ReadSequence() ([]byte, error) {
	f.pending, f.hasPending = nil, false
	var seq []byte
	for {
		line, ok, err := f.readLine()
		if err != nil {
			return nil, err
		}
		if !ok {
			f.finished = true
			break
		}
		if line[0] == '>' {
			f.pending, f.hasPending = line, true
			break
		}
		seq = append(seq, bytes.TrimSpace(line)...)
	}
	return seq, nil
}

// readLine returns the next raw line including its newline byte. ok is false
// at end of input. The final line may lack a trailing newline.
func (f *Reader) readLine() ([]byte, bool, error) {
	line, err := f.r.ReadBytes('\n')
	if len(line) == 0 {
		if err == io.EOF {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}
	if err != nil && err != io.EOF {
		return nil, false, err
	}
	return line, true, nil
}
