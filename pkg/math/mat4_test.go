package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(V3(1, 2, 3))
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(V3(5, 10, 15))

	// Translation lives in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"translate", Translate(V3(10, 20, 30)), V3(1, 2, 3), V3(11, 22, 33)},
		{"scale", Scale(2), V3(1, 2, 3), V3(2, 4, 6)},
		{"scale then translate", Translate(V3(1, 1, 1)).Mul(Scale(4)), V3(1, 0, -1), V3(5, 1, -3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.TransformPoint(tt.in); got != tt.want {
				t.Errorf("TransformPoint: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2))
	result := m.TransformPoint(V3(1, 0, 0))

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if abs(result.X) > 0.001 || abs(result.Y) > 0.001 || abs(result.Z+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestRotateXZ90(t *testing.T) {
	if got := RotateX(float32(math.Pi / 2)).TransformPoint(V3(0, 1, 0)); abs(got.Y) > 0.001 || abs(got.Z-1) > 0.001 {
		t.Errorf("RotateX 90: got %v, want (0, 0, 1)", got)
	}
	if got := RotateZ(float32(math.Pi / 2)).TransformPoint(V3(1, 0, 0)); abs(got.X) > 0.001 || abs(got.Y-1) > 0.001 {
		t.Errorf("RotateZ 90: got %v, want (0, 1, 0)", got)
	}
	if got := Euler(Vec3{}); got != Identity() {
		t.Errorf("Euler of zero rotation should be identity, got %v", got)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1, 0.1, 100)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := V3(0, 0, 5)
	m := LookAt(eye, V3(0, 0, 0), V3(0, 1, 0))

	got := m.TransformPoint(eye)
	if got.Length() > 1e-5 {
		t.Errorf("LookAt should map the eye to the origin, got %v", got)
	}
	if m[15] != 1 {
		t.Errorf("LookAt [15] should be 1, got %f", m[15])
	}
}

func TestProject(t *testing.T) {
	view := LookAt(V3(0, 0, 10), V3(0, 0, 0), V3(0, 1, 0))
	proj := Perspective(float32(math.Pi/2), 1, 0.1, 100)
	vp := proj.Mul(view)

	x, y, depth, ok := Project(vp, V3(0, 0, 0), 800, 800)
	if !ok {
		t.Fatal("point in front of the camera should project")
	}
	if abs(x-400) > 0.01 || abs(y-400) > 0.01 {
		t.Errorf("center should project to screen center, got (%f, %f)", x, y)
	}
	if depth >= 1 {
		t.Errorf("depth should be inside the frustum, got %f", depth)
	}

	if _, _, _, ok := Project(vp, V3(0, 0, 20), 800, 800); ok {
		t.Error("point behind the camera should not project")
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
