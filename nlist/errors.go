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
	"errors"
	"fmt"
)

// Sentinel errors forming the taxonomy from spec §7. Callers match with
// errors.Is; the wrapping constructors below attach the offending values.
var (
	ErrZeroVolume        = errors.New("nlist: cell volume below minimum (zero or near-singular cell)")
	ErrBinGridTooLarge   = errors.New("nlist: bin grid exceeds index type capacity")
	ErrInvalidCutoff     = errors.New("nlist: cutoff must be positive")
	ErrInvalidArity      = errors.New("nlist: invalid n-body arity")
	ErrAllocationFailure = errors.New("nlist: allocation failure")
)

// zeroVolumeError reports the offending determinant alongside ErrZeroVolume.
func zeroVolumeError(det float64) error {
	return fmt.Errorf("%w: |det(cell)| = %g, want >= %g", ErrZeroVolume, absF(det), volumeEpsilon)
}

// binGridTooLargeError reports the offending bin counts and suggests remediation.
func binGridTooLargeError(n1, n2, n3 int64) error {
	return fmt.Errorf(
		"%w: n1*n2*n3 = %d*%d*%d overflows the chosen index type; "+
			"use a wider index type, a larger cutoff, or a smaller cell",
		ErrBinGridTooLarge, n1, n2, n3,
	)
}

// invalidCutoffError reports the offending cutoff alongside ErrInvalidCutoff.
func invalidCutoffError(cutoff float64) error {
	return fmt.Errorf("%w: cutoff = %g", ErrInvalidCutoff, cutoff)
}

// InvalidArityError reports the offending n-body order or sortedness
// violation alongside ErrInvalidArity. Exported so assembly/nbody callers
// can construct it without importing an internal helper.
func InvalidArityError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArity, reason)
}

// AllocationFailureError wraps an underlying allocation error raised inside
// a worker (see nlist/contrib/reduce).
func AllocationFailureError(err error) error {
	return fmt.Errorf("%w: %v", ErrAllocationFailure, err)
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
