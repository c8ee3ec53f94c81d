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
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/latticeforge/nlist/nlist/vec3"
)

// volumeEpsilon is the minimum admissible |det(cell)| (spec §3, §4.1).
const volumeEpsilon = 1e-12

// CellGeometry is the immutable derived view of a cell matrix, periodicity
// flags and cutoff: inverse cell, face distances, bin counts per axis,
// neighbour-shell extents, and the per-bin shape vectors (spec §4.1).
//
// Determinant and inverse are computed in float64 via gonum/mat regardless
// of T, since a 3x3 cofactor expansion hand-rolled per T would duplicate
// exactly what gonum.org/v1/gonum/mat already provides (and the rest of
// the retrieved example pack pulls gonum directly for linear algebra); the
// result is narrowed back to T for storage.
//
// The integer shifts PairBuilder records are derived from these bin
// coordinates (bin-relative), not from a minimum-image search; for very
// skewed cells or extreme cutoff-to-cell ratios a recorded shift can differ
// by ±1 from the minimum-image shift.
type CellGeometry[T vec3.Real] struct {
	Cell   vec3.Mat3[T] // rows a1, a2, a3 (spec §6)
	Inv    vec3.Mat3[T] // C^-1, applied as C^-1 . x by BinOfUnwrapped
	Pbc    Pbc
	Cutoff T

	Volume   T
	FaceDist vec3.Vec3[T] // len_1, len_2, len_3

	N [3]int // bin counts n_1, n_2, n_3
	M [3]int // neighbour shell extents m_1, m_2, m_3

	// BinShape[k] is the k-th bin-shape column vector cell_k/n_k (spec
	// §4.1's "bin shape matrix B has columns cell_k/n_k"). It is kept as
	// a per-axis vector rather than a vec3.Mat3 because B is applied by
	// linear combination of its columns (see ApplyBinShape), not by the
	// row-dot-product convention vec3.MatVec implements for Inv.
	BinShape [3]vec3.Vec3[T]
}

// NewCellGeometry validates the cell and cutoff and derives the rest of
// CellGeometry's fields per spec §4.1.
func NewCellGeometry[T vec3.Real](cell vec3.Mat3[T], pbc Pbc, cutoff T) (*CellGeometry[T], error) {
	if cutoff <= 0 {
		return nil, invalidCutoffError(float64(cutoff))
	}

	flat := make([]float64, 9)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			flat[r*3+c] = float64(cell[r][c])
		}
	}
	dense := mat.NewDense(3, 3, flat)

	det := mat.Det(dense)
	if math.Abs(det) < volumeEpsilon {
		return nil, zeroVolumeError(det)
	}

	var invDense mat.Dense
	if err := invDense.Inverse(dense); err != nil {
		return nil, zeroVolumeError(det)
	}

	var inv vec3.Mat3[T]
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			inv[r][c] = T(invDense.At(r, c))
		}
	}

	g := &CellGeometry[T]{
		Cell:   cell,
		Inv:    inv,
		Pbc:    pbc,
		Cutoff: cutoff,
		Volume: T(math.Abs(det)),
	}

	// Face distances: len_k = |V| / ||C_a x C_b|| for (k,a,b) cycling
	// (1,2,3), 0-indexed as (0,1,2), (1,2,0), (2,0,1).
	for k := 0; k < 3; k++ {
		a := (k + 1) % 3
		b := (k + 2) % 3
		crossNorm := vec3.Norm(vec3.Cross(cell[a], cell[b]))
		g.FaceDist[k] = g.Volume / crossNorm
	}

	for k := 0; k < 3; k++ {
		n := int(math.Floor(float64(g.FaceDist[k]) / float64(cutoff)))
		if n < 1 {
			n = 1
		}
		g.N[k] = n

		m := int(math.Ceil(float64(cutoff) * float64(n) / float64(g.FaceDist[k])))
		if m < 0 {
			m = 0
		}
		g.M[k] = m

		g.BinShape[k] = vec3.Scale(T(1)/T(n), cell[k])
	}

	return g, nil
}

// ApplyBinShape returns the cartesian vector B.coeffs, the linear
// combination of the bin-shape columns weighted by coeffs (spec §4.1,
// §4.3's "off = B . (x, y, z)").
func (g *CellGeometry[T]) ApplyBinShape(coeffs [3]int) vec3.Vec3[T] {
	out := vec3.Scale(T(coeffs[0]), g.BinShape[0])
	out = vec3.Add(out, vec3.Scale(T(coeffs[1]), g.BinShape[1]))
	out = vec3.Add(out, vec3.Scale(T(coeffs[2]), g.BinShape[2]))
	return out
}

// BinOfUnwrapped maps a world position to its (possibly out-of-range,
// 0-based) integer bin coordinates, without applying the wrap/trunc
// boundary policy (spec §4.1's bin_of, pre-wrap).
func (g *CellGeometry[T]) BinOfUnwrapped(x vec3.Vec3[T]) [3]int {
	y := vec3.MatVec(g.Inv, x)
	var ci [3]int
	for k := 0; k < 3; k++ {
		ci[k] = int(math.Floor(float64(y[k]) * float64(g.N[k])))
	}
	return ci
}

// WrapOrTrunc applies the per-axis boundary policy: wrap modulo n_k when
// periodic, clamp to [0, n_k) otherwise (spec §4.1).
func (g *CellGeometry[T]) WrapOrTrunc(ci [3]int) [3]int {
	var out [3]int
	for k := 0; k < 3; k++ {
		n := g.N[k]
		c := ci[k]
		if g.Pbc[k] {
			c = ((c % n) + n) % n
		} else {
			if c < 0 {
				c = 0
			} else if c >= n {
				c = n - 1
			}
		}
		out[k] = c
	}
	return out
}

// Trunc clamps ci to [0, n_k) on every axis regardless of periodicity.
// PairBuilder uses this (spec §4.3 step 2) to find the bin-relative origin
// of a position even along periodic axes.
func (g *CellGeometry[T]) Trunc(ci [3]int) [3]int {
	var out [3]int
	for k := 0; k < 3; k++ {
		n := g.N[k]
		c := ci[k]
		if c < 0 {
			c = 0
		} else if c >= n {
			c = n - 1
		}
		out[k] = c
	}
	return out
}

// BinOf returns bin_of(x) per spec §4.1's contract: a tuple in [0, n_k)
// for every finite x, for any Pbc.
func (g *CellGeometry[T]) BinOf(x vec3.Vec3[T]) [3]int {
	return g.WrapOrTrunc(g.BinOfUnwrapped(x))
}

// LinearIndex flattens 0-based bin coordinates into a flat bin index.
func (g *CellGeometry[T]) LinearIndex(ci [3]int) int {
	return ci[0] + g.N[0]*(ci[1]+g.N[1]*ci[2])
}

// BinCount returns the total number of bins n1*n2*n3.
func (g *CellGeometry[T]) BinCount() int {
	return g.N[0] * g.N[1] * g.N[2]
}
