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

package vec3

import "testing"

func TestAddSub(t *testing.T) {
	a := Vec3[float64]{1, 2, 3}
	b := Vec3[float64]{4, 5, 6}

	got := Add(a, b)
	want := Vec3[float64]{5, 7, 9}
	if got != want {
		t.Errorf("Add: got %v, want %v", got, want)
	}

	gotSub := Sub(got, b)
	if gotSub != a {
		t.Errorf("Sub: got %v, want %v", gotSub, a)
	}
}

func TestDotCross(t *testing.T) {
	x := Vec3[float64]{1, 0, 0}
	y := Vec3[float64]{0, 1, 0}

	if d := Dot(x, y); d != 0 {
		t.Errorf("Dot(x,y): got %v, want 0", d)
	}

	z := Cross(x, y)
	want := Vec3[float64]{0, 0, 1}
	if z != want {
		t.Errorf("Cross(x,y): got %v, want %v", z, want)
	}
}

func TestNorm(t *testing.T) {
	v := Vec3[float64]{3, 4, 0}
	if n := Norm(v); n != 5 {
		t.Errorf("Norm: got %v, want 5", n)
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	var zero Vec3[float32]
	got := Normalize(zero)
	if got != zero {
		t.Errorf("Normalize(zero): got %v, want zero vector unchanged", got)
	}
}

func TestMatVecIdentity(t *testing.T) {
	id := Mat3[float64]{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
	v := Vec3[float64]{7, -2, 5}
	if got := MatVec(id, v); got != v {
		t.Errorf("MatVec(identity, v): got %v, want %v", got, v)
	}
}

func TestDet(t *testing.T) {
	m := Mat3[float64]{
		{2, 0, 0},
		{0, 3, 0},
		{0, 0, 4},
	}
	if d := Det(m); d != 24 {
		t.Errorf("Det: got %v, want 24", d)
	}
}
