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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/latticeforge/nlist/nlist"
	"github.com/latticeforge/nlist/nlist/vec3"
)

func buildList(t *testing.T, cell vec3.Mat3[float64], pbc nlist.Pbc, cutoff float64, positions []vec3.Vec3[float64]) *PairList[float64, int32] {
	t.Helper()
	geom, err := nlist.NewCellGeometry(cell, pbc, cutoff)
	require.NoError(t, err)
	lb, err := nlist.NewLinkedBins[int32](geom, positions)
	require.NoError(t, err)
	records := Build[float64, int32](geom, lb, positions)
	return FromRecords(records, len(positions))
}

var floatCmp = cmp.Comparer(func(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
})

// spec §8 scenario 1: two particles, non-periodic, expects exactly the
// (0,1) and (1,0) records with r_vec = ±(1,0,0) and zero shift.
func TestScenarioTwoParticles(t *testing.T) {
	cell := vec3.Mat3[float64]{{10, 0, 0}, {0, 10, 0}, {0, 0, 10}}
	positions := []vec3.Vec3[float64]{{0, 0, 0}, {1, 0, 0}}

	pl := buildList(t, cell, nlist.Pbc{false, false, false}, 1.5, positions)
	require.Equal(t, 2, pl.Len())

	type rec struct {
		I, J  int32
		Abs   float64
		R     vec3.Vec3[float64]
		Shift nlist.Shift[int32]
	}
	var got []rec
	for i := range pl.I {
		got = append(got, rec{pl.I[i], pl.J[i], pl.Abs[i], pl.R[i], pl.Shift[i]})
	}
	sort.Slice(got, func(a, b int) bool { return got[a].I < got[b].I })

	want := []rec{
		{0, 1, 1.0, vec3.Vec3[float64]{1, 0, 0}, nlist.Shift[int32]{0, 0, 0}},
		{1, 0, 1.0, vec3.Vec3[float64]{-1, 0, 0}, nlist.Shift[int32]{0, 0, 0}},
	}

	if diff := cmp.Diff(want, got, floatCmp); diff != "" {
		t.Errorf("pair list mismatch (-want +got):\n%s", diff)
	}
}

// spec §8 scenario 2: single particle, fully periodic, expects exactly 6
// self-images along ±x, ±y, ±z at distance = cell edge length.
func TestScenarioSingleParticlePeriodicSelfImages(t *testing.T) {
	cell := vec3.Mat3[float64]{{2, 0, 0}, {0, 2, 0}, {0, 0, 2}}
	positions := []vec3.Vec3[float64]{{0, 0, 0}}

	pl := buildList(t, cell, nlist.Pbc{true, true, true}, 2.1, positions)
	require.Equal(t, 6, pl.Len())

	var got []vec3.Vec3[float64]
	for i := range pl.I {
		require.Equal(t, int32(0), pl.I[i])
		require.Equal(t, int32(0), pl.J[i])
		require.InDelta(t, 2.0, pl.Abs[i], 1e-9)
		got = append(got, pl.R[i])
	}
	sort.Slice(got, func(a, b int) bool {
		if got[a][0] != got[b][0] {
			return got[a][0] < got[b][0]
		}
		if got[a][1] != got[b][1] {
			return got[a][1] < got[b][1]
		}
		return got[a][2] < got[b][2]
	})

	want := []vec3.Vec3[float64]{
		{-2, 0, 0}, {0, -2, 0}, {0, 0, -2}, {0, 0, 2}, {0, 2, 0}, {2, 0, 0},
	}
	if diff := cmp.Diff(want, got, floatCmp); diff != "" {
		t.Errorf("self-image set mismatch (-want +got):\n%s", diff)
	}
}

// spec §8 invariant 4 (symmetry): every record (i, j, s) has a matching
// (j, i, -s) record with r_vec negated.
func TestSymmetry(t *testing.T) {
	cell := vec3.Mat3[float64]{{8, 0, 0}, {0, 8, 0}, {0, 0, 8}}
	positions := []vec3.Vec3[float64]{
		{0.5, 0.5, 0.5}, {1.5, 0.5, 0.5}, {0.5, 1.7, 0.5}, {7.9, 0.5, 0.5},
	}
	pl := buildList(t, cell, nlist.Pbc{true, true, true}, 1.2, positions)
	require.Greater(t, pl.Len(), 0)

	type key struct {
		i, j       int32
		sx, sy, sz int32
	}
	present := make(map[key]vec3.Vec3[float64])
	for idx := range pl.I {
		present[key{pl.I[idx], pl.J[idx], pl.Shift[idx][0], pl.Shift[idx][1], pl.Shift[idx][2]}] = pl.R[idx]
	}

	for k, r := range present {
		mirror := key{k.j, k.i, -k.sx, -k.sy, -k.sz}
		mr, ok := present[mirror]
		require.Truef(t, ok, "missing mirror record for (i=%d,j=%d,shift=%v)", k.i, k.j, [3]int32{k.sx, k.sy, k.sz})
		require.InDelta(t, r[0], -mr[0], 1e-9)
		require.InDelta(t, r[1], -mr[1], 1e-9)
		require.InDelta(t, r[2], -mr[2], 1e-9)
	}
}

// spec §8 invariant 6: (i, i, 0) never appears.
func TestNoZeroShiftSelfImage(t *testing.T) {
	cell := vec3.Mat3[float64]{{2, 0, 0}, {0, 2, 0}, {0, 0, 2}}
	positions := []vec3.Vec3[float64]{{0, 0, 0}}
	pl := buildList(t, cell, nlist.Pbc{true, true, true}, 2.1, positions)

	for idx := range pl.I {
		if pl.I[idx] == pl.J[idx] {
			require.NotEqual(t, nlist.Shift[int32]{0, 0, 0}, pl.Shift[idx])
		}
	}
}

// spec §8 invariant 2: |record.|r| - ||record.r_vec||| < 10*eps*|r|.
func TestDistanceConsistency(t *testing.T) {
	cell := vec3.Mat3[float64]{{12, 0, 0}, {0, 12, 0}, {0, 0, 12}}
	positions := []vec3.Vec3[float64]{
		{1, 1, 1}, {2, 1.3, 1}, {1, 2.5, 1.2}, {3.2, 3.1, 1},
	}
	pl := buildList(t, cell, nlist.Pbc{true, true, true}, 2.0, positions)
	require.Greater(t, pl.Len(), 0)

	for idx := range pl.I {
		n := vec3.Norm(pl.R[idx])
		diff := math.Abs(pl.Abs[idx] - n)
		require.Less(t, diff, 10*(math.Nextafter(1, 2)-1)*pl.Abs[idx]+1e-12)
	}
}

func TestBinGridTooLargeEndToEnd(t *testing.T) {
	cell := vec3.Mat3[float64]{{1e6, 0, 0}, {0, 1e6, 0}, {0, 0, 1e6}}
	geom, err := nlist.NewCellGeometry(cell, nlist.Pbc{true, true, true}, 1e-3)
	require.NoError(t, err)

	positions := []vec3.Vec3[float64]{{0, 0, 0}}
	_, err = nlist.NewLinkedBins[int32](geom, positions)
	require.ErrorIs(t, err, nlist.ErrBinGridTooLarge)
}
