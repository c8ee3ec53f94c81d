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

// Package assembly is the AssemblyAPI façade (spec §4.7): the four kernel
// shapes — pair-symmetric value, pair-antisymmetric gradient, n-body value,
// n-body gradient — built on nlist/contrib/reduce's ParallelReducer and
// nlist/contrib/nbody's tuple enumerator.
//
// The value kernels are generic over an accumulator type A (a per-site
// energy contribution might be a scalar T, a stress tensor, or anything
// else additive); Go generics have no arithmetic operators for type
// parameters, so callers supply a Combiner describing how to zero, add and
// scale their A. The pair-antisymmetric kernel takes a Combiner in the same
// way. The n-body gradient kernel is fixed to vec3.Vec3[T] because spec
// §4.7 defines it in terms of forces along a unit edge vector, which is
// inherently a 3-vector in this domain.
package assembly

import (
	"github.com/latticeforge/nlist/nlist/contrib/nbody"
	"github.com/latticeforge/nlist/nlist/contrib/reduce"
	"github.com/latticeforge/nlist/nlist/pairlist"
	"github.com/latticeforge/nlist/nlist/vec3"
)

// Combiner tells the generic value kernels how to combine accumulator
// values of type A: Zero is the additive identity, Add is commutative and
// associative, and Scale applies a real-valued weight.
type Combiner[A any] struct {
	Zero  func() A
	Add   func(a, b A) A
	Scale func(a A, s float64) A
}

// ScalarCombiner returns the Combiner for a plain scalar accumulator.
func ScalarCombiner[T vec3.Real]() Combiner[T] {
	return Combiner[T]{
		Zero:  func() T { return 0 },
		Add:   func(a, b T) T { return a + b },
		Scale: func(a T, s float64) T { return T(float64(a) * s) },
	}
}

// Vec3Combiner returns the Combiner for a vec3.Vec3[T] accumulator, e.g. a
// per-site force or dipole contribution from a value-form kernel.
func Vec3Combiner[T vec3.Real]() Combiner[vec3.Vec3[T]] {
	return Combiner[vec3.Vec3[T]]{
		Zero:  func() vec3.Vec3[T] { return vec3.Vec3[T]{} },
		Add:   vec3.Add[T],
		Scale: func(a vec3.Vec3[T], s float64) vec3.Vec3[T] { return vec3.Scale(T(s), a) },
	}
}

func newAccumBuffer[A any](n int, comb Combiner[A]) ([]A, error) {
	buf := make([]A, n)
	for i := range buf {
		buf[i] = comb.Zero()
	}
	return buf, nil
}

func combineAccum[A any](comb Combiner[A]) func(dst, src []A) {
	return func(dst, src []A) {
		for i := range dst {
			dst[i] = comb.Add(dst[i], src[i])
		}
	}
}

// PairValueFunc computes a pair's contribution from its separation.
type PairValueFunc[T vec3.Real, A any] func(abs T, r vec3.Vec3[T]) A

// MapPairsSymmetric implements spec §4.7's pair-symmetric value kernel: for
// every pair record with i < j, add f(|r|, r_vec)/2 to both out[i] and
// out[j]. out must have length N and starts as the zero value for every
// site; MapPairsSymmetric overwrites it via in-place accumulation, it does
// not reset it first.
func MapPairsSymmetric[T vec3.Real, I vec3.Index, A any](pl *pairlist.PairList[T, I], comb Combiner[A], f PairValueFunc[T, A], out []A) error {
	kernel := func(buf []A, idx int) {
		i, j := pl.I[idx], pl.J[idx]
		if i >= j {
			return
		}
		half := comb.Scale(f(pl.Abs[idx], pl.R[idx]), 0.5)
		buf[i] = comb.Add(buf[i], half)
		buf[j] = comb.Add(buf[j], half)
	}
	return reduce.MapToSites(pl.Len(), out, func() ([]A, error) { return newAccumBuffer(pl.N, comb) }, combineAccum(comb), kernel)
}

// MapPairsAntisymmetric implements spec §4.7's pair-antisymmetric gradient
// kernel: for every pair record with i < j, add f(|r|, r_vec) to out[j] and
// subtract it from out[i].
func MapPairsAntisymmetric[T vec3.Real, I vec3.Index, A any](pl *pairlist.PairList[T, I], comb Combiner[A], f PairValueFunc[T, A], out []A) error {
	kernel := func(buf []A, idx int) {
		i, j := pl.I[idx], pl.J[idx]
		if i >= j {
			return
		}
		val := f(pl.Abs[idx], pl.R[idx])
		buf[j] = comb.Add(buf[j], val)
		buf[i] = comb.Add(buf[i], comb.Scale(val, -1))
	}
	return reduce.MapToSites(pl.Len(), out, func() ([]A, error) { return newAccumBuffer(pl.N, comb) }, combineAccum(comb), kernel)
}

// NBodyValueFunc computes an n-tuple's contribution from its canonical
// edge-length vector (spec §4.5's simplex edge lengths).
type NBodyValueFunc[T vec3.Real, A any] func(edges []T) A

type nbodyValueBuf[T vec3.Real, I vec3.Index, A any] struct {
	out     []A
	scratch *nbody.Scratch[T, I]
}

// MapNBodyValue implements spec §4.7's n-body value kernel: for every
// canonical n-tuple rooted at site i, add f(s)/n to out[i] and to each
// out[j_k]. n must already satisfy nbody.Validate against pl.Sorted.
func MapNBodyValue[T vec3.Real, I vec3.Index, A any](pl *pairlist.PairList[T, I], n int, comb Combiner[A], f NBodyValueFunc[T, A], out []A) error {
	if err := nbody.Validate(n, pl.Sorted); err != nil {
		return err
	}

	newBuffer := func() (nbodyValueBuf[T, I, A], error) {
		buf, _ := newAccumBuffer(pl.N, comb)
		return nbodyValueBuf[T, I, A]{out: buf, scratch: nbody.NewScratch[T, I](n)}, nil
	}
	combine := func(dst, src nbodyValueBuf[T, I, A]) { combineAccum(comb)(dst.out, src.out) }

	kernel := func(buf nbodyValueBuf[T, I, A], site int) {
		nbody.EnumerateSite(pl, site, n, buf.scratch, func(t nbody.Tuple[T, I]) {
			share := comb.Scale(f(t.Edges), 1.0/float64(n))
			buf.out[site] = comb.Add(buf.out[site], share)
			for _, j := range t.Neighbors {
				buf.out[j] = comb.Add(buf.out[j], share)
			}
		})
	}

	// Pre-populate scratch on the directly-passed buffer too: when
	// nlist.MaxThreads() resolves to 1, reduce.MapToSites calls kernel on
	// this exact value without ever calling newBuffer.
	outBuf := nbodyValueBuf[T, I, A]{out: out, scratch: nbody.NewScratch[T, I](n)}
	return reduce.MapToSites(pl.N, outBuf, newBuffer, combine, kernel)
}

// NBodyGradFunc computes the derivative of an n-tuple's potential with
// respect to each of its N(N-1)/2 edge lengths, in the same canonical order
// as the edges themselves.
type NBodyGradFunc[T vec3.Real] func(edges []T) []T

type nbodyGradBuf[T vec3.Real, I vec3.Index] struct {
	out     []vec3.Vec3[T]
	scratch *nbody.Scratch[T, I]
}

// MapNBodyGradient implements spec §4.7's n-body gradient kernel: for every
// canonical n-tuple rooted at site i, compute df(s) and, for each edge
// (a, b) with unit vector Ŝ_ab = (X_a - X_b)/‖X_a - X_b‖, add df_l·Ŝ_ab to
// out[a] and subtract it from out[b]. n must already satisfy
// nbody.Validate against pl.Sorted.
func MapNBodyGradient[T vec3.Real, I vec3.Index](pl *pairlist.PairList[T, I], n int, f NBodyGradFunc[T], out []vec3.Vec3[T]) error {
	if err := nbody.Validate(n, pl.Sorted); err != nil {
		return err
	}
	comb := Vec3Combiner[T]()
	points := nbody.EdgePoints(n)

	newBuffer := func() (nbodyGradBuf[T, I], error) {
		buf, _ := newAccumBuffer(pl.N, comb)
		return nbodyGradBuf[T, I]{out: buf, scratch: nbody.NewScratch[T, I](n)}, nil
	}
	combine := func(dst, src nbodyGradBuf[T, I]) { combineAccum(comb)(dst.out, src.out) }

	kernel := func(buf nbodyGradBuf[T, I], site int) {
		nbody.EnumerateSite(pl, site, n, buf.scratch, func(t nbody.Tuple[T, I]) {
			df := f(t.Edges)
			pointIndex := func(p int) int {
				if p == 0 {
					return t.Site
				}
				return int(t.Neighbors[p-1])
			}
			numSiteEdges := len(t.Neighbors)
			for l, pair := range points {
				a, b := pointIndex(pair[0]), pointIndex(pair[1])
				// EdgeVecs[l] for the first numSiteEdges entries holds r_vec
				// = X_b - X_a (pairbuilder's i->j displacement convention),
				// but Ŝ_ab = (X_a - X_b)/‖·‖ points the other way; the
				// remaining inter-neighbour entries already hold X_a - X_b.
				edge := t.EdgeVecs[l]
				if l < numSiteEdges {
					edge = vec3.Scale(-1, edge)
				}
				s := vec3.Normalize(edge)
				contrib := vec3.Scale(df[l], s)
				buf.out[a] = vec3.Add(buf.out[a], contrib)
				buf.out[b] = vec3.Sub(buf.out[b], contrib)
			}
		})
	}

	outBuf := nbodyGradBuf[T, I]{out: out, scratch: nbody.NewScratch[T, I](n)}
	return reduce.MapToSites(pl.N, outBuf, newBuffer, combine, kernel)
}
