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
	"runtime"
	"sync/atomic"
)

// maxThreads is the process-wide worker cap. Zero means unset: MaxThreads
// then resolves it to runtime.GOMAXPROCS(0) on each call, without storing
// the result. Callers read it once per reducer entry, never inside a hot
// loop (spec §9).
var maxThreads atomic.Int64

// SetMaxThreads caps the number of workers ParallelReducer may spawn. A
// value <= 0 resets the cap to hardware parallelism; 1 forces sequential
// mode.
func SetMaxThreads(n int) {
	if n <= 0 {
		maxThreads.Store(0)
		return
	}
	maxThreads.Store(int64(n))
}

// MaxThreads returns the current worker cap, resolving an unset cap to
// runtime.GOMAXPROCS(0). Call once per reducer entry and pass the snapshot
// down; never call this inside a worker loop.
func MaxThreads() int {
	n := maxThreads.Load()
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return int(n)
}
