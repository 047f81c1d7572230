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

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/genoscale/seqsketch/fasta"
	"github.com/genoscale/seqsketch/sketch"
)

// linearCounterBits sizes the linear counter for the comparison run. It
// must be on the order of the expected distinct k-mer count to stay
// accurate.
const linearCounterBits = 1 << 20

// compareEstimators feeds one FASTA file through every estimator variant in
// a single pass and prints their estimates and relative errors against the
// exact count.
func compareEstimators(out *os.File, path string, cfg config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	hasher := sketch.XXHash64{Seed: cfg.seed}
	exact := sketch.NewExact(hasher)
	linear := sketch.NewLinear(linearCounterBits, hasher)
	fm := sketch.NewFM(32, hasher)
	hll, err := sketch.NewHLL(cfg.precision, hasher)
	if err != nil {
		return err
	}

	var total uint64
	fr := fasta.NewReader(bufio.NewReaderSize(f, 1<<20))
	for {
		ok, err := fr.NextRecord()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		sc := fr.CanonicalKmers(cfg.k)
		for sc.Next() {
			kmer := sc.Kmer()
			exact.Add(kmer)
			linear.Add(kmer)
			fm.Add(kmer)
			hll.Add(kmer)
			total++
		}
		if err := sc.Err(); err != nil {
			_ = sc.Close()
			return err
		}
		if err := sc.Close(); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "%s: %d k-mers\n", path, total)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Counter\tComplexity\tEstimate\tRel Error (%)")
	truth := exact.Estimate()
	printRow(w, "Linear", linear.Estimate(), total, truth)
	printRow(w, "FM", fm.Estimate(), total, truth)
	printRow(w, "HLL", hll.Estimate(), total, truth)
	printRow(w, "Exact", truth, total, truth)
	return w.Flush()
}

func printRow(w io.Writer, name string, estimate float64, total uint64, truth float64) {
	complexity := 0.0
	if total > 0 {
		complexity = estimate / float64(total)
	}
	relErr := 0.0
	if truth > 0 {
		relErr = 100 * (estimate - truth) / truth
	}
	fmt.Fprintf(w, "%s\t%.6f\t%.0f\t%.4f\n", name, complexity, estimate, relErr)
}
