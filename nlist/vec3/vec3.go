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

// Package vec3 provides generic, fixed-3-component vector and 3x3 matrix
// arithmetic for the cartesian geometry this module works in.
//
// It is the dispatch-free, fixed-width descendant of the teacher's
// lane-width-agnostic Vec[T]/matvec kernels: spec §1 fixes every
// computation to exactly 3 spatial dimensions and spec §9 explicitly
// rejects runtime SIMD dispatch, so there is no lane count to detect and
// no architecture branch to take — every operation here monomorphises at
// compile time over T alone.
package vec3

import "math"

// Real is the scalar floating-point type particle positions, cell vectors
// and pair distances are stored in. Adapted from the teacher's
// hwy.FloatsNative constraint (hwy/types.go), dropping the half-precision
// Float16/BFloat16 arms since spec §3 fixes T to f32 or f64.
type Real interface {
	~float32 | ~float64
}

// Index is the signed integer type used for particle and bin indices. It
// must be wide enough to hold the total bin count; nlist.NewLinkedBins
// verifies this and returns ErrBinGridTooLarge if it is not. Adapted from the teacher's
// hwy.SignedInts constraint, dropping the unsigned arm since spec §3 fixes
// I to a signed type.
type Index interface {
	~int32 | ~int64
}

// Vec3 is a 3-dimensional cartesian vector.
type Vec3[T Real] [3]T

// Mat3 is a 3x3 matrix whose rows are m[0], m[1], m[2]. CellGeometry (see
// nlist/cell.go) uses this with rows a1, a2, a3 being the lattice vectors,
// per spec §6's row convention.
type Mat3[T Real] [3]Vec3[T]

// Add returns a + b.
func Add[T Real](a, b Vec3[T]) Vec3[T] {
	return Vec3[T]{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub returns a - b.
func Sub[T Real](a, b Vec3[T]) Vec3[T] {
	return Vec3[T]{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Scale returns s*a.
func Scale[T Real](s T, a Vec3[T]) Vec3[T] {
	return Vec3[T]{s * a[0], s * a[1], s * a[2]}
}

// Dot returns the dot product of a and b. Adapted from the teacher's
// BaseL2SquaredDistance accumulation idiom (hwy/contrib/vec/distance_base.go),
// collapsed from a lane loop to the 3 fixed components this domain always
// has.
func Dot[T Real](a, b Vec3[T]) T {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross returns the cross product a x b.
func Cross[T Real](a, b Vec3[T]) Vec3[T] {
	return Vec3[T]{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// NormSquared returns ||a||^2.
func NormSquared[T Real](a Vec3[T]) T {
	return Dot(a, a)
}

// Norm returns the Euclidean length of a.
func Norm[T Real](a Vec3[T]) T {
	return T(math.Sqrt(float64(NormSquared(a))))
}

// Normalize returns a scaled to unit length. The zero vector is returned
// unchanged, matching the teacher's BaseNormalize zero-guard
// (hwy/contrib/vec/normalize_base.go) — used by the n-body gradient kernel
// to build the unit edge vectors Ŝ_ab (spec §4.7).
func Normalize[T Real](a Vec3[T]) Vec3[T] {
	n := Norm(a)
	if n == 0 {
		return a
	}
	return Scale(1/n, a)
}

// MatVec returns m*v, the matrix-vector product of a 3x3 matrix with a
// 3-vector. Adapted from the teacher's BaseMatVec row-dot-product loop
// (hwy/contrib/matvec/matvec_base.go), narrowed from an arbitrary
// rows x cols shape to the fixed 3x3 case this domain always uses (the
// inverse cell matrix; the bin shape is applied column-wise by
// CellGeometry.ApplyBinShape instead).
func MatVec[T Real](m Mat3[T], v Vec3[T]) Vec3[T] {
	return Vec3[T]{
		Dot(m[0], v),
		Dot(m[1], v),
		Dot(m[2], v),
	}
}

// Det returns the determinant of m via the scalar triple product.
func Det[T Real](m Mat3[T]) T {
	return Dot(m[0], Cross(m[1], m[2]))
}
