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
	"github.com/cespare/xxhash/v2"
	"github.com/twmb/murmur3"
)

// Hasher64 maps a byte slice to a uniformly distributed 64-bit value.
// Implementations must be safe for concurrent use: the parallel pipeline
// shares one Hasher64 across workers.
type Hasher64 interface {
	Hash64(data []byte) uint64
}

// XXHash64 hashes with xxHash64 under the given seed. This is the default
// hasher used throughout the repository.
type XXHash64 struct {
	Seed uint64
}

func (h XXHash64) Hash64(data []byte) uint64 {
	if h.Seed == 0 {
		return xxhash.Sum64(data)
	}
	d := xxhash.NewWithSeed(h.Seed)
	_, _ = d.Write(data)
	return d.Sum64()
}

// Murmur3 hashes with 64-bit MurmurHash3 under the given seed.
type Murmur3 struct {
	Seed uint64
}

func (h Murmur3) Hash64(data []byte) uint64 {
	return murmur3.SeedSum64(h.Seed, data)
}

// DefaultHasher returns the hasher used when a caller does not supply one.
func DefaultHasher() Hasher64 {
	return XXHash64{}
}
