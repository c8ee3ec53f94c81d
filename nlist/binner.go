// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package nlist

import (
	"math/bits"
	"unsafe"

	"github.com/latticeforge/nlist/nlist/vec3"
)

// sentinel marks "no particle" in LinkedBins' seed/next/last arrays. A
// dedicated negative marker is used rather than reusing the 0 index, since
// 0 is a valid (0-based) particle index in this module's convention (spec
// §9's sentinel-values note).
const sentinel = -1

// LinkedBins is a cell-linked-list: seed[c] is the first particle in bin
// c (or sentinel), next[i] is the next particle in i's bin (or sentinel).
// Traversing seed -> next -> ... through each bin visits every particle
// exactly once (spec §3).
type LinkedBins[I vec3.Index] struct {
	Seed []I // length = bin count
	Next []I // length = N
}

// maxOf returns the maximum value representable by I, derived from its
// storage width. Adapted from the teacher's unsafe.Sizeof-based bounds
// reasoning in hwy/memory.go, here used to detect bin-grid overflow via a
// widened int64 intermediate rather than relying on wrapping arithmetic
// (spec §4.2, §9).
func maxOf[I vec3.Index]() int64 {
	var zero I
	width := int(unsafe.Sizeof(zero)) * 8
	return int64(1)<<(width-1) - 1
}

// widenedBinTotal computes n1*n2*n3 via math/bits.Mul64's 128-bit widened
// multiply, one factor at a time, and reports overflow without ever
// forming a wrapped intermediate (spec §4.2, §9: "check via widened
// multiplication BEFORE allocating; do not rely on wrapping arithmetic").
// n1, n2, n3 are always >= 1 bin counts, so all products are non-negative.
func widenedBinTotal(n1, n2, n3 int64) (total uint64, overflow bool) {
	hi, lo := bits.Mul64(uint64(n1), uint64(n2))
	if hi != 0 {
		return 0, true
	}
	hi, lo = bits.Mul64(lo, uint64(n3))
	if hi != 0 {
		return 0, true
	}
	return lo, false
}

// NewLinkedBins sorts positions into CellGeometry's bins (spec §4.2).
// The index type parameter I is explicit because Go cannot infer a type
// parameter that appears only in the return type.
func NewLinkedBins[I vec3.Index, T vec3.Real](geom *CellGeometry[T], positions []vec3.Vec3[T]) (*LinkedBins[I], error) {
	n1, n2, n3 := int64(geom.N[0]), int64(geom.N[1]), int64(geom.N[2])
	widened, overflow := widenedBinTotal(n1, n2, n3)
	if overflow || widened > uint64(maxOf[I]()) {
		return nil, binGridTooLargeError(n1, n2, n3)
	}
	total := int(widened)

	lb := &LinkedBins[I]{
		Seed: make([]I, total),
		Next: make([]I, len(positions)),
	}
	for c := range lb.Seed {
		lb.Seed[c] = sentinel
	}

	last := make([]I, total)
	for c := range last {
		last[c] = sentinel
	}

	for i, x := range positions {
		ci := geom.BinOf(x)
		c := geom.LinearIndex(ci)
		if lb.Seed[c] == sentinel {
			lb.Seed[c] = I(i)
			last[c] = I(i)
			lb.Next[i] = sentinel
		} else {
			lb.Next[last[c]] = I(i)
			last[c] = I(i)
			lb.Next[i] = sentinel
		}
	}

	return lb, nil
}

// Bin returns the particle indices in bin c, in input order, by walking
// seed -> next.
func (lb *LinkedBins[I]) Bin(c int) []I {
	var out []I
	for i := lb.Seed[c]; i != sentinel; i = lb.Next[i] {
		out = append(out, i)
	}
	return out
}
