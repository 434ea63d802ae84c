// SPDX-License-Identifier: GPL-2.0-or-later

package vec

import (
	"testing"
)

var (
	NULL = Vec3{}
)

func TestIdx(t *testing.T) {
	v := Vec3{1, 2, 3}
	if v.Idx(X) != 1 || v.Idx(Y) != 2 || v.Idx(Z) != 3 {
		t.Errorf("Idx(%v) does not map axes to components", v)
	}
}

func TestLength(t *testing.T) {
	if NULL.Length() != 0 {
		t.Errorf("Null vector has not 0 length")
	}
	for _, v := range []Vec3{{2, 2, 1}, {2, 1, 2}, {1, 2, 2}} {
		if v.Length() != 3 {
			t.Errorf("%v Length is not 3", v)
		}
		if v.LengthSq() != 9 {
			t.Errorf("%v LengthSq is not 9", v)
		}
	}
}

func TestAddSub(t *testing.T) {
	v := Vec3{1, 2, 3}
	if got := Add(NULL, v); got != v {
		t.Errorf("Adding a null vector changed the vector")
	}
	if got, want := Add(v, v), (Vec3{2, 4, 6}); got != want {
		t.Errorf("Add(%v,%v) = %v want %v", v, v, got, want)
	}
	v2 := Vec3{9, 7, 5}
	if got, want := Sub(v2, v), (Vec3{8, 5, 2}); got != want {
		t.Errorf("Sub(%v,%v) = %v want %v", v2, v, got, want)
	}
}

func TestCross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	if got, want := Cross(x, y), (Vec3{0, 0, 1}); got != want {
		t.Errorf("Cross(%v,%v) = %v want %v", x, y, got, want)
	}
	if got := Dot(Cross(x, y), x); got != 0 {
		t.Errorf("Cross product is not orthogonal, dot = %v", got)
	}
}

func TestNormalize(t *testing.T) {
	if got := NULL.Normalize(); got != NULL {
		t.Errorf("Normalize(%v) = %v want %v", NULL, got, NULL)
	}
	v := Vec3{0, 0, 4}
	if got, want := v.Normalize(), (Vec3{0, 0, 1}); got != want {
		t.Errorf("Normalize(%v) = %v want %v", v, got, want)
	}
}

func TestMinMax(t *testing.T) {
	a := Vec3{1, 5, -2}
	b := Vec3{3, -1, 0}
	if got, want := Min(a, b), (Vec3{1, -1, -2}); got != want {
		t.Errorf("Min(%v,%v) = %v want %v", a, b, got, want)
	}
	if got, want := Max(a, b), (Vec3{3, 5, 0}); got != want {
		t.Errorf("Max(%v,%v) = %v want %v", a, b, got, want)
	}
	if got := DistanceSq(a, b); got != 4+36+4 {
		t.Errorf("DistanceSq(%v,%v) = %v want 44", a, b, got)
	}
}
