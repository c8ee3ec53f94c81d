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

// Package nlist builds cell-linked-list neighbour lists for particles in a
// (possibly periodic) triclinic simulation cell, and exposes the geometry
// and binning primitives the rest of the module is built on. The fixed-3
// vector/matrix arithmetic and the Real/Index scalar constraints live in
// the leaf package nlist/vec3.
package nlist

import "github.com/latticeforge/nlist/nlist/vec3"

// Pbc carries one periodicity flag per lattice direction.
type Pbc [3]bool

// Shift is the integer lattice-translation count recorded on a PairRecord:
// the cartesian displacement equals r_vec, and X[j] + C*shift lies in the
// primary image relative to X[i] under the boundary policy (spec §6).
type Shift[I vec3.Index] [3]I
