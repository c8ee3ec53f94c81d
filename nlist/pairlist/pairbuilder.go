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

// Package pairlist walks a CellGeometry's bins and their neighbour-shell
// bins, emitting the flat pair list (spec §4.3, §4.4).
package pairlist

import (
	"math"

	"github.com/latticeforge/nlist/nlist"
	"github.com/latticeforge/nlist/nlist/vec3"
)

// PairRecord is one (i, j, |r|, r_vec, shift) entry (spec §3).
type PairRecord[T vec3.Real, I vec3.Index] struct {
	I, J  I
	Abs   T
	R     vec3.Vec3[T]
	Shift nlist.Shift[I]
}

// Build walks geom's bins and lb's linked lists and emits every pair
// within geom.Cutoff, including periodic self-images (spec §4.3).
//
// Initial capacity is seeded at 6*N records, the spec's dense-3D-structure
// heuristic; the slice grows on demand beyond that via append.
func Build[T vec3.Real, I vec3.Index](geom *nlist.CellGeometry[T], lb *nlist.LinkedBins[I], positions []vec3.Vec3[T]) []PairRecord[T, I] {
	n := len(positions)
	records := make([]PairRecord[T, I], 0, 6*n)
	rc2 := geom.Cutoff * geom.Cutoff

	for i := 0; i < n; i++ {
		ci0 := geom.BinOfUnwrapped(positions[i])
		ciTrunc := geom.Trunc(ci0)
		dxi := vec3.Sub(positions[i], geom.ApplyBinShape(ciTrunc))
		ciEff := geom.WrapOrTrunc(ci0)

		for ox := -geom.M[0]; ox <= geom.M[0]; ox++ {
			for oy := -geom.M[1]; oy <= geom.M[1]; oy++ {
				for oz := -geom.M[2]; oz <= geom.M[2]; oz++ {
					offset := [3]int{ox, oy, oz}
					candBin, ok := wrapCandidate(geom, ciEff, offset)
					if !ok {
						continue
					}
					off := geom.ApplyBinShape(offset)
					cIdx := geom.LinearIndex(candBin)

					for _, j := range lb.Bin(cIdx) {
						if i == int(j) && offset == ([3]int{0, 0, 0}) {
							continue
						}

						cj0 := geom.BinOfUnwrapped(positions[j])
						cjTrunc := geom.Trunc(cj0)
						dxj := vec3.Sub(positions[j], geom.ApplyBinShape(cjTrunc))

						dr := vec3.Add(vec3.Sub(dxj, dxi), off)
						d2 := vec3.NormSquared(dr)
						if d2 >= rc2 {
							continue
						}

						var shift nlist.Shift[I]
						for k := 0; k < 3; k++ {
							num := ci0[k] - cjTrunc[k] + offset[k]
							shift[k] = I(floorDiv(num, geom.N[k]))
						}

						records = append(records, PairRecord[T, I]{
							I:     I(i),
							J:     j,
							Abs:   T(math.Sqrt(float64(d2))),
							R:     dr,
							Shift: shift,
						})
					}
				}
			}
		}
	}

	return records
}

// wrapCandidate computes the candidate neighbour bin's 0-based coordinates
// from the effective bin ciEff plus a shell offset, applying wrap for
// periodic axes and reporting false when a non-periodic axis would fall
// out of [0, n_k) (spec §4.3 step 4).
func wrapCandidate[T vec3.Real](geom *nlist.CellGeometry[T], ciEff [3]int, offset [3]int) ([3]int, bool) {
	var cand [3]int
	for k := 0; k < 3; k++ {
		n := geom.N[k]
		c := ciEff[k] + offset[k]
		if geom.Pbc[k] {
			c = ((c % n) + n) % n
		} else if c < 0 || c >= n {
			return cand, false
		}
		cand[k] = c
	}
	return cand, true
}

// floorDiv returns floor(a/b) for integer a, b with b > 0, matching the
// shift semantics of spec §4.3 ("÷ component-wise integer division")
// which must round toward -infinity, not toward zero as Go's native "/"
// does for negative numerators.
func floorDiv(a, b int) int {
	q := a / b
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		q--
	}
	return q
}
