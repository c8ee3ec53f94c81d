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

package reduce

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticeforge/nlist/nlist"
)

func TestMapToSitesSequential(t *testing.T) {
	nlist.SetMaxThreads(1)
	defer nlist.SetMaxThreads(0)

	out := make([]int, 5)
	err := MapToSites(5, out,
		func() ([]int, error) { return make([]int, 5), nil },
		func(dst, src []int) { for i := range dst { dst[i] += src[i] } },
		func(buf []int, idx int) { buf[idx] = idx * idx },
	)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 4, 9, 16}, out)
}

func TestMapToSitesParallelMatchesSequential(t *testing.T) {
	const k = 97
	kernel := func(buf []int, idx int) { buf[idx] += idx * 3 }
	combine := func(dst, src []int) {
		for i := range dst {
			dst[i] += src[i]
		}
	}

	nlist.SetMaxThreads(1)
	seq := make([]int, k)
	require.NoError(t, MapToSites(k, seq, func() ([]int, error) { return make([]int, k), nil }, combine, kernel))

	nlist.SetMaxThreads(8)
	defer nlist.SetMaxThreads(0)
	par := make([]int, k)
	require.NoError(t, MapToSites(k, par, func() ([]int, error) { return make([]int, k), nil }, combine, kernel))

	require.Equal(t, seq, par)
}

func TestMapToSitesZeroRangeNoop(t *testing.T) {
	out := []int{1, 2, 3}
	err := MapToSites(0, out,
		func() ([]int, error) { return nil, nil },
		func(dst, src []int) {},
		func(buf []int, idx int) { t.Fatal("kernel must not run for k<=0") },
	)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, out)
}
