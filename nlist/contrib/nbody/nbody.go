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

// Package nbody enumerates, for each central site, all n-tuples of its
// neighbours that form an n-simplex, and computes the simplex's edge-length
// vector (spec §4.5).
//
// The combinatorial walk is a generalisation of the teacher's generic
// find/predicate combinators (hwy/contrib/algo/find.go, predicates.go):
// where the teacher searches a flat slice for elements matching a
// predicate, this package searches a site's neighbour slice for
// strictly-increasing index tuples satisfying the "j > i" predicate, using
// a recursive generator over a reused scratch slice so tuple enumeration
// performs no heap allocation per tuple (spec §9).
package nbody

import (
	"fmt"
	"sort"

	"github.com/latticeforge/nlist/nlist"
	"github.com/latticeforge/nlist/nlist/pairlist"
	"github.com/latticeforge/nlist/nlist/vec3"
)

// Validate checks the n-body order against spec §6's InvalidArity rule:
// N must be >= 2, and the list must be sorted when N >= 3.
func Validate(n int, sorted bool) error {
	if n < 2 {
		return nlist.InvalidArityError(fmt.Sprintf("order must be >= 2, got %d", n))
	}
	if n >= 3 && !sorted {
		return nlist.InvalidArityError("pair list must be sorted for n-body order >= 3")
	}
	return nil
}

// FindFirstGreater returns the smallest index m in [lo, hi) with j[m] > i,
// or -1 if none exists (spec §4.5's find_first_greater). j[lo:hi] must be
// nondecreasing, as it is for any site's slice of a sorted PairList;
// binary search applies directly.
func FindFirstGreater[I vec3.Index](j []I, lo, hi int, i I) int {
	m := lo + sort.Search(hi-lo, func(k int) bool {
		return j[lo+k] > i
	})
	if m >= hi {
		return -1
	}
	return m
}

// Tuple is the reused, caller-must-not-retain view of one canonical
// n-tuple: the central site i, the neighbour (global) indices forming the
// simplex, and the simplex's N(N-1)/2 edge lengths in canonical order
// (spec §4.5: first the N-1 edges from i to each neighbour, then the
// C(N-1,2) inter-neighbour edges).
type Tuple[T vec3.Real, I vec3.Index] struct {
	Site      int
	Neighbors []I
	Edges     []T
	// EdgeVecs holds, for each entry in Edges at the same position, the
	// displacement vector the edge length was computed from: r_vec for the
	// first N-1 (site, neighbour) edges, and the neighbour-to-neighbour
	// difference vector for the remaining edges. The n-body gradient
	// kernel (nlist/contrib/assembly) normalises these into the Ŝ_ab unit
	// vectors of spec §4.7 without recomputing them from positions.
	EdgeVecs []vec3.Vec3[T]
}

// Scratch holds the per-worker reused buffers EnumerateSite needs: the
// combination-index workspace, the neighbour-index output, the edge-length
// output, and the edge-vector output. Callers that enumerate from multiple goroutines
// (see nlist/contrib/assembly) must give each goroutine its own Scratch —
// spec §5: "Scratch arrays for simplex edge lengths: per-worker, per-tuple
// reuse; never shared."
type Scratch[T vec3.Real, I vec3.Index] struct {
	local     []int
	neighbors []I
	edges     []T
	edgeVecs  []vec3.Vec3[T]
}

// NewScratch allocates a Scratch sized for n-body order n.
func NewScratch[T vec3.Real, I vec3.Index](n int) *Scratch[T, I] {
	k := n - 1
	return &Scratch[T, I]{
		local:     make([]int, k),
		neighbors: make([]I, k),
		edges:     make([]T, n*(n-1)/2),
		edgeVecs:  make([]vec3.Vec3[T], n*(n-1)/2),
	}
}

// EdgePoints returns, for n-body order n, the canonical (a, b) point-index
// pairs each position in a Tuple's Edges/EdgeVecs corresponds to. Point 0 is
// the tuple's central site; points 1..n-1 are its neighbours in Tuple.
// Neighbors order. The mapping depends only on n, not on any data, so
// callers (spec §4.7's n-body gradient kernel) compute it once per n.
func EdgePoints(n int) [][2]int {
	k := n - 1
	pairs := make([][2]int, 0, n*(n-1)/2)
	for t := 0; t < k; t++ {
		pairs = append(pairs, [2]int{0, t + 1})
	}
	for a := 0; a < k; a++ {
		for b := a + 1; b < k; b++ {
			pairs = append(pairs, [2]int{a + 1, b + 1})
		}
	}
	return pairs
}

// EnumerateSite calls fn once per canonical n-tuple rooted at site i,
// using s as scratch storage (spec §4.5). The Tuple passed to fn is backed
// by s's buffers; fn must not retain it past its own return. Callers must
// have already validated (n, pl.Sorted) via Validate.
func EnumerateSite[T vec3.Real, I vec3.Index](pl *pairlist.PairList[T, I], i int, n int, s *Scratch[T, I], fn func(Tuple[T, I])) {
	k := n - 1
	tuple := Tuple[T, I]{Site: i, Neighbors: s.neighbors, Edges: s.edges, EdgeVecs: s.edgeVecs}

	if n == 2 && !pl.Sorted {
		for idx := 0; idx < pl.Len(); idx++ {
			if int(pl.I[idx]) != i {
				continue
			}
			j := pl.J[idx]
			if int(j) <= i {
				continue
			}
			s.neighbors[0] = j
			s.edges[0] = pl.Abs[idx]
			s.edgeVecs[0] = pl.R[idx]
			fn(tuple)
		}
		return
	}

	lo, hi := pl.Site(i)
	m0 := FindFirstGreater(pl.J, lo, hi, I(i))
	if m0 < 0 || hi-m0 < k {
		return
	}

	enumerateCombinations(m0, hi, k, s.local, func(idx []int) {
		for t, p := range idx {
			s.neighbors[t] = pl.J[p]
			s.edges[t] = pl.Abs[p]
			s.edgeVecs[t] = pl.R[p]
		}
		pos := k
		for a := 0; a < k; a++ {
			for b := a + 1; b < k; b++ {
				d := vec3.Sub(pl.R[idx[a]], pl.R[idx[b]])
				s.edges[pos] = vec3.Norm(d)
				s.edgeVecs[pos] = d
				pos++
			}
		}
		fn(tuple)
	})
}

// Enumerate calls fn once per canonical n-tuple rooted at each site, for
// n-body order n (spec §4.5, §6's nbodies iterator). Neighbors and Edges
// in the Tuple passed to fn are backed by scratch buffers reused across
// calls; fn must not retain them past its own return.
func Enumerate[T vec3.Real, I vec3.Index](pl *pairlist.PairList[T, I], n int, fn func(Tuple[T, I])) error {
	if err := Validate(n, pl.Sorted); err != nil {
		return err
	}

	s := NewScratch[T, I](n)
	for i := 0; i < pl.N; i++ {
		EnumerateSite(pl, i, n, s, fn)
	}
	return nil
}

// enumerateCombinations walks every strictly increasing k-combination of
// [lo, hi) in lexicographic order, reusing scratch as the output buffer
// for each combination (no allocation per combination).
func enumerateCombinations(lo, hi, k int, scratch []int, callback func([]int)) {
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == k {
			callback(scratch)
			return
		}
		remaining := k - depth
		for idx := start; idx <= hi-remaining; idx++ {
			scratch[depth] = idx
			rec(idx+1, depth+1)
		}
	}
	rec(lo, 0)
}
