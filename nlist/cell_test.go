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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticeforge/nlist/nlist/vec3"
)

func cubicCell(side float64) vec3.Mat3[float64] {
	return vec3.Mat3[float64]{
		{side, 0, 0},
		{0, side, 0},
		{0, 0, side},
	}
}

func TestNewCellGeometryZeroVolume(t *testing.T) {
	degenerate := vec3.Mat3[float64]{
		{1, 0, 0},
		{2, 0, 0},
		{0, 0, 1},
	}
	_, err := NewCellGeometry(degenerate, Pbc{true, true, true}, 1.0)
	require.ErrorIs(t, err, ErrZeroVolume)
}

func TestNewCellGeometryInvalidCutoff(t *testing.T) {
	_, err := NewCellGeometry(cubicCell(10), Pbc{}, 0)
	require.ErrorIs(t, err, ErrInvalidCutoff)
}

func TestNewCellGeometryCubicBinCounts(t *testing.T) {
	geom, err := NewCellGeometry(cubicCell(10), Pbc{true, true, true}, 2.5)
	require.NoError(t, err)

	require.Equal(t, [3]int{4, 4, 4}, geom.N)
	require.InDelta(t, 1000.0, float64(geom.Volume), 1e-9)
	for k := 0; k < 3; k++ {
		require.InDelta(t, 10.0, float64(geom.FaceDist[k]), 1e-9)
	}
}

func TestBinOfWrapsPeriodicAxes(t *testing.T) {
	geom, err := NewCellGeometry(cubicCell(10), Pbc{true, false, false}, 2.5)
	require.NoError(t, err)

	ci := geom.BinOf(vec3.Vec3[float64]{-1, -1, 11})
	require.GreaterOrEqual(t, ci[0], 0)
	require.Less(t, ci[0], geom.N[0])
	require.Equal(t, 0, ci[1]) // clamped, non-periodic
	require.Equal(t, geom.N[2]-1, ci[2])
}

func TestBinGridTooLarge(t *testing.T) {
	geom, err := NewCellGeometry(cubicCell(1e6), Pbc{true, true, true}, 1e-3)
	require.NoError(t, err)

	positions := []vec3.Vec3[float64]{{0, 0, 0}}
	_, err = NewLinkedBins[int32](geom, positions)
	require.ErrorIs(t, err, ErrBinGridTooLarge)
}
