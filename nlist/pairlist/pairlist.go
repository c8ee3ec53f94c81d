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

package pairlist

import (
	"math"
	"sort"

	"github.com/latticeforge/nlist/nlist"
	"github.com/latticeforge/nlist/nlist/vec3"
)

// PairList is the materialised output of Build: five parallel arrays of
// equal length M, plus — when sorted — a first-of-site offset array
// giving O(1) access to a site's neighbour slice (spec §3, §4.4).
type PairList[T vec3.Real, I vec3.Index] struct {
	N int // number of sites

	I     []I
	J     []I
	Abs   []T
	R     []vec3.Vec3[T]
	Shift []nlist.Shift[I]

	Sorted      bool
	FirstOfSite []I // length N+1 when Sorted; nil otherwise
}

// FromRecords materialises an unsorted PairList from Build's output.
func FromRecords[T vec3.Real, I vec3.Index](records []PairRecord[T, I], n int) *PairList[T, I] {
	pl := &PairList[T, I]{N: n}
	pl.I = make([]I, len(records))
	pl.J = make([]I, len(records))
	pl.Abs = make([]T, len(records))
	pl.R = make([]vec3.Vec3[T], len(records))
	pl.Shift = make([]nlist.Shift[I], len(records))
	for idx, rec := range records {
		pl.I[idx] = rec.I
		pl.J[idx] = rec.J
		pl.Abs[idx] = rec.Abs
		pl.R[idx] = rec.R
		pl.Shift[idx] = rec.Shift
	}
	return pl
}

// SortBySite reorders the list so pairs with the same first index form a
// contiguous block with j nondecreasing within the block, and builds
// FirstOfSite. The sort is stable with respect to emission order for equal
// (i, j) pairs, preserving shift determinism when the same pair has more
// than one periodic image within cutoff (spec §4.4, §9's Open Question on
// duplicate shifts).
func (pl *PairList[T, I]) SortBySite() {
	order := make([]int, len(pl.I))
	for idx := range order {
		order[idx] = idx
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if pl.I[ia] != pl.I[ib] {
			return pl.I[ia] < pl.I[ib]
		}
		return pl.J[ia] < pl.J[ib]
	})

	newI := make([]I, len(order))
	newJ := make([]I, len(order))
	newAbs := make([]T, len(order))
	newR := make([]vec3.Vec3[T], len(order))
	newShift := make([]nlist.Shift[I], len(order))
	for dst, src := range order {
		newI[dst] = pl.I[src]
		newJ[dst] = pl.J[src]
		newAbs[dst] = pl.Abs[src]
		newR[dst] = pl.R[src]
		newShift[dst] = pl.Shift[src]
	}
	pl.I, pl.J, pl.Abs, pl.R, pl.Shift = newI, newJ, newAbs, newR, newShift

	first := make([]I, pl.N+1)
	r := 0
	for s := 0; s < pl.N; s++ {
		first[s] = I(r)
		for r < len(pl.I) && int(pl.I[r]) == s {
			r++
		}
	}
	first[pl.N] = I(r)

	pl.FirstOfSite = first
	pl.Sorted = true
}

// Len returns the number of pair records (M in spec §3).
func (pl *PairList[T, I]) Len() int {
	return len(pl.I)
}

// Site returns the slice bounds [lo, hi) of site i's neighbour block.
// Requires the list to be sorted.
func (pl *PairList[T, I]) Site(i int) (lo, hi int) {
	return int(pl.FirstOfSite[i]), int(pl.FirstOfSite[i+1])
}

// SiteNeighbors returns the j, |r|, r_vec slices for site i in O(1),
// spec §4.4's `site(i)` accessor.
func (pl *PairList[T, I]) SiteNeighbors(i int) (j []I, abs []T, r []vec3.Vec3[T]) {
	lo, hi := pl.Site(i)
	return pl.J[lo:hi], pl.Abs[lo:hi], pl.R[lo:hi]
}

// PairIter calls fn for every (i, j, |r|, r_vec) record in list order
// (spec §6's pair_iter).
func (pl *PairList[T, I]) PairIter(fn func(i, j I, abs T, r vec3.Vec3[T])) {
	for idx := range pl.I {
		fn(pl.I[idx], pl.J[idx], pl.Abs[idx], pl.R[idx])
	}
}

// SitesIter calls fn for every site i in [0, N) with its neighbour slices
// (spec §6's sites_iter). Requires the list to be sorted.
func (pl *PairList[T, I]) SitesIter(fn func(i int, j []I, abs []T, r []vec3.Vec3[T])) {
	for i := 0; i < pl.N; i++ {
		j, abs, r := pl.SiteNeighbors(i)
		fn(i, j, abs, r)
	}
}

// checkFinite reports whether every component of every position is
// finite. math.IsNaN/IsInf operate on float64, so values are widened for
// the check regardless of T.
func checkFinite[T vec3.Real](positions []vec3.Vec3[T]) bool {
	for _, x := range positions {
		for _, c := range x {
			f := float64(c)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return false
			}
		}
	}
	return true
}

// CheckFinite is the pre-flight helper spec §7 asks callers to run
// themselves before Build ("callers are responsible for filtering
// NaN/Inf positions"); Build never calls it implicitly.
func CheckFinite[T vec3.Real](positions []vec3.Vec3[T]) bool {
	return checkFinite(positions)
}

// UnwrapPosition applies X[j] + C.shift, recovering the unwrapped
// cartesian position of a neighbour from its recorded shift (spec §6).
func UnwrapPosition[T vec3.Real, I vec3.Index](xj vec3.Vec3[T], shift nlist.Shift[I], cell vec3.Mat3[T]) vec3.Vec3[T] {
	var coeffs vec3.Vec3[T]
	for k := 0; k < 3; k++ {
		coeffs[k] = T(shift[k])
	}
	translation := vec3.Add(vec3.Scale(coeffs[0], cell[0]), vec3.Add(vec3.Scale(coeffs[1], cell[1]), vec3.Scale(coeffs[2], cell[2])))
	return vec3.Add(xj, translation)
}
