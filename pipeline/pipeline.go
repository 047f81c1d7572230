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

// Package pipeline counts distinct canonical k-mers across a FASTA stream
// with a record-parallel map-reduce.
//
// Each record is one unit of work: a worker scans its bytes with a packed
// 2-bit rolling window, canonicalizes every full window and feeds it to a
// worker-local HyperLogLog sketch. Per-worker results reduce by summing
// counts and merging sketches; merge is an element-wise register maximum, so
// the reduction is order-independent and needs no locks.
package pipeline

import (
	"bufio"
	"context"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/genoscale/seqsketch/fasta"
	"github.com/genoscale/seqsketch/internal"
	"github.com/genoscale/seqsketch/kmer"
	"github.com/genoscale/seqsketch/sketch"
)

const (
	// DefaultK is the default k-mer length, the longest that fits a packed
	// 64-bit word.
	DefaultK = 31

	// DefaultPrecision is the default HyperLogLog precision.
	DefaultPrecision = 16
)

// Config parameterizes a counting run. The zero value selects 31-mers, a
// precision-16 sketch, the default hasher and one worker per CPU.
type Config struct {
	// K is the k-mer length, at most kmer.MaxK.
	K int

	// Precision is the HyperLogLog register-index bit width.
	Precision int

	// Workers is the number of record-processing goroutines.
	Workers int

	// Hasher seeds the sketches. It must be safe for concurrent use.
	Hasher sketch.Hasher64
}

func (c Config) withDefaults() Config {
	if c.K == 0 {
		c.K = DefaultK
	}
	if c.Precision == 0 {
		c.Precision = DefaultPrecision
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Hasher == nil {
		c.Hasher = sketch.DefaultHasher()
	}
	return c
}

// Result is the reduced outcome of a counting run.
type Result struct {
	// TotalKmers is the number of valid k-mer windows seen, duplicates
	// included.
	TotalKmers uint64

	// Sketch estimates the number of distinct canonical k-mers.
	Sketch *sketch.HLL
}

// Complexity is the ratio of distinct to total k-mers, clamped to [0,1].
// Low-complexity (repetitive) sequence scores near zero, unique sequence
// near one.
func (r Result) Complexity() float64 {
	if r.TotalKmers == 0 || r.Sketch == nil {
		return 0
	}
	return internal.Clamp(r.Sketch.Estimate()/float64(r.TotalKmers), 0.0, 1.0)
}

// CountFile runs Count over the named FASTA file.
func CountFile(ctx context.Context, path string, cfg Config) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()
	return Count(ctx, bufio.NewReaderSize(f, 1<<20), cfg)
}

// Count reads FASTA records from r and returns the total number of k-mer
// windows plus a sketch of the distinct canonical k-mers.
//
// Any I/O or format error aborts the whole run: the error is returned and no
// partial result leaks out. Cancelling ctx stops the run at record
// granularity.
func Count(ctx context.Context, r io.Reader, cfg Config) (Result, error) {
	cfg = cfg.withDefaults()

	coder, err := kmer.NewCoder(cfg.K)
	if err != nil {
		return Result{}, err
	}
	global, err := sketch.NewHLL(cfg.Precision, cfg.Hasher)
	if err != nil {
		return Result{}, err
	}

	g, ctx := errgroup.WithContext(ctx)
	records := make(chan []byte, cfg.Workers)

	// Producer: the FASTA reader is not safe for concurrent use, so one
	// goroutine walks the records and hands each full sequence off.
	g.Go(func() error {
		defer close(records)
		fr := fasta.NewReader(r)
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			ok, err := fr.NextRecord()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			seq, err := fr.ReadSequence()
			if err != nil {
				return err
			}
			select {
			case records <- seq:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	type partial struct {
		count  uint64
		sketch *sketch.HLL
	}
	partials := make([]partial, cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		i := i
		g.Go(func() error {
			local, err := sketch.NewHLL(cfg.Precision, cfg.Hasher)
			if err != nil {
				return err
			}
			var count uint64
			for seq := range records {
				count += countRecord(coder, seq, local)
			}
			partials[i] = partial{count: count, sketch: local}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	result := Result{Sketch: global}
	for _, p := range partials {
		if p.sketch == nil {
			continue
		}
		result.TotalKmers += p.count
		if err := global.Merge(p.sketch); err != nil {
			return Result{}, err
		}
	}
	return result, nil
}

// countRecord scans one record's sequence with a rolling packed window and
// feeds every full canonical window into local. Any byte outside ACGT
// resets the window; accumulation must reach k valid bases again before the
// next window is emitted.
func countRecord(coder kmer.Coder, seq []byte, local *sketch.HLL) uint64 {
	k := coder.K()
	var (
		w        kmer.Word
		validLen int
		count    uint64
	)
	for _, b := range seq {
		var ok bool
		w, ok = coder.Append(w, b)
		if !ok {
			validLen = 0
			continue
		}
		validLen++
		if validLen >= k {
			local.AddUint64(uint64(coder.Canonical(w)))
			count++
		}
	}
	return count
}

// CountSequential is the single-threaded variant of Count. It walks the
// byte-wise canonical k-mer scanner instead of the packed fast path, which
// also lifts the packed representation's 31-base limit on k. Unlike the
// packed path it does not skip windows containing non-ACGT bytes; such
// windows count as k-mers in their own right.
func CountSequential(r io.Reader, cfg Config) (Result, error) {
	cfg = cfg.withDefaults()

	hll, err := sketch.NewHLL(cfg.Precision, cfg.Hasher)
	if err != nil {
		return Result{}, err
	}

	fr := fasta.NewReader(r)
	var total uint64
	for {
		ok, err := fr.NextRecord()
		if err != nil {
			return Result{}, err
		}
		if !ok {
			break
		}
		sc := fr.CanonicalKmers(cfg.K)
		for sc.Next() {
			hll.Add(sc.Kmer())
			total++
		}
		if err := sc.Err(); err != nil {
			_ = sc.Close()
			return Result{}, err
		}
		if err := sc.Close(); err != nil {
			return Result{}, err
		}
	}
	return Result{TotalKmers: total, Sketch: hll}, nil
}
