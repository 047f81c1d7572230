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
	"encoding/binary"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/genoscale/seqsketch/sketch"
)

const (
	syntheticSeeds  = 9
	syntheticMaxExp = 20
)

// runSynthetic sweeps each probabilistic counter over streams of 2^0..2^20
// distinct values for several item-mixing seeds and writes one CSV data
// point per (counter, seed, n). Each stream's values are all distinct, so n
// itself is the ground truth; accuracy-curve plotting happens downstream of
// this output.
func runSynthetic(out io.Writer, cfg config) error {
	return sweep(out, cfg, syntheticSeeds, syntheticMaxExp)
}

func sweep(out io.Writer, cfg config, seeds uint64, maxExp int) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"counter", "seed", "n", "estimate"}); err != nil {
		return err
	}

	for seed := uint64(1); seed <= seeds; seed++ {
		hasher := sketch.XXHash64{Seed: cfg.seed}
		linear := sketch.NewLinear(1<<20, hasher)
		fm := sketch.NewFM(32, hasher)
		hll, err := sketch.NewHLL(20, hasher)
		if err != nil {
			return err
		}

		var item [8]byte
		var next uint64
		for exp := 0; exp <= maxExp; exp++ {
			n := uint64(1) << exp
			for ; next < n; next++ {
				binary.LittleEndian.PutUint64(item[:], next^seed)
				linear.Add(item[:])
				fm.Add(item[:])
				hll.Add(item[:])
			}

			points := []struct {
				counter  string
				estimate float64
			}{
				{"linear", linear.Estimate()},
				{"fm", fm.Estimate()},
				{"hll", hll.Estimate()},
			}
			for _, p := range points {
				err := w.Write([]string{
					p.counter,
					strconv.FormatUint(seed, 10),
					strconv.FormatUint(n, 10),
					strconv.FormatFloat(p.estimate, 'f', -1, 64),
				})
				if err != nil {
					return err
				}
			}
		}
	}

	w.Flush()
	return w.Error()
}
