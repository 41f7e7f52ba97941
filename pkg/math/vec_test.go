package math

import (
	"math"
	"testing"
)

func TestVec3Add(t *testing.T) {
	got := V3(1, 2, 3).Add(V3(3, 4, 5))
	want := V3(4, 6, 8)
	if got != want {
		t.Errorf("Vec3.Add() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	got := V3(2, 3, 6).Length()
	if got != 7 {
		t.Errorf("Vec3.Length() = %v, want 7", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	l := V3(3, 4, 12).Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("zero vector should normalize to zero")
	}
}

func TestVec3Cross(t *testing.T) {
	got := V3(1, 0, 0).Cross(V3(0, 1, 0))
	want := V3(0, 0, 1)
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestLerpEndpointsAreExact(t *testing.T) {
	a := V3(0.1, -7.3, 1e4)
	b := V3(1234.567, 0.3, -99.9)

	if got := Lerp(a, b, 0); got != a {
		t.Errorf("Lerp(t=0) = %v, want %v", got, a)
	}
	if got := Lerp(a, b, 1); got != b {
		t.Errorf("Lerp(t=1) = %v, want %v", got, b)
	}
	mid := Lerp(V3(0, 0, 0), V3(2, 4, 6), 0.5)
	if mid != V3(1, 2, 3) {
		t.Errorf("Lerp(t=0.5) = %v, want (1, 2, 3)", mid)
	}
}

func TestOnOrbit(t *testing.T) {
	sun := V3(0, 0, -200)
	tests := []struct {
		name     string
		distance float32
		angle    float32
		want     Vec3
	}{
		{"zero angle", 1500, 0, V3(1500, 0, -200)},
		{"quarter turn", 3500, float32(math.Pi / 2), V3(0, 0, 3300)},
		{"half turn", 6000, float32(math.Pi), V3(-6000, 0, -200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OnOrbit(sun, tt.distance, tt.angle)
			if got.Distance(tt.want) > 0.01 {
				t.Errorf("OnOrbit() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClamp01(t *testing.T) {
	for in, want := range map[float32]float32{-1: 0, 0: 0, 0.25: 0.25, 1: 1, 3: 1} {
		if got := Clamp01(in); got != want {
			t.Errorf("Clamp01(%v) = %v, want %v", in, got, want)
		}
	}
}
