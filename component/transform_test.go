package component

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// closeTo compares by absolute distance; mgl32's ApproxEqual is relative and
// rejects float noise around zero components
func closeTo(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() < eps
}

func TestTransform_IdentityAxes(t *testing.T) {
	tr := NewTransform()

	if !closeTo(tr.LocalX(), AxisX, 1e-5) {
		t.Errorf("Expected LocalX %v, got %v", AxisX, tr.LocalX())
	}
	if !closeTo(tr.Forward(), mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("Expected forward -Z, got %v", tr.Forward())
	}
}

func TestTransform_LookingAt(t *testing.T) {
	tests := []struct {
		name   string
		from   mgl32.Vec3
		target mgl32.Vec3
	}{
		{"scene camera", mgl32.Vec3{0, 2, 5}, mgl32.Vec3{}},
		{"from the side", mgl32.Vec3{10, 0, 0}, mgl32.Vec3{}},
		{"looking behind", mgl32.Vec3{0, 0, -3}, mgl32.Vec3{0, 1, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := FromXYZ(tt.from[0], tt.from[1], tt.from[2]).LookingAt(tt.target, AxisY)

			want := tt.target.Sub(tt.from).Normalize()
			if !closeTo(tr.Forward(), want, 1e-4) {
				t.Errorf("Expected forward %v, got %v", want, tr.Forward())
			}
			// Right stays horizontal
			if r := tr.LocalX(); math.Abs(float64(r[1])) > 1e-4 {
				t.Errorf("Expected horizontal right vector, got %v", r)
			}
			if up := tr.LocalY(); up[1] <= 0 {
				t.Errorf("Expected upright camera, got up %v", up)
			}
		})
	}
}

func TestTransform_LookingAtDegenerateKeepsRotation(t *testing.T) {
	tr := FromXYZ(0, 5, 0)
	before := tr.Rotation

	tr.LookAt(mgl32.Vec3{0, 0, 0}, AxisY)
	if tr.Rotation != before {
		t.Errorf("Expected rotation unchanged when looking along up, got %v", tr.Rotation)
	}
}

func TestTransform_MatrixMatchesTransformPoint(t *testing.T) {
	tr := FromXYZ(1, 2, 3)
	tr.Rotation = mgl32.QuatRotate(0.7, mgl32.Vec3{0.3, 1, 0.2}.Normalize())
	tr.Scale = mgl32.Vec3{2, 0.5, 1}

	p := mgl32.Vec3{0.4, -1, 2}
	viaMatrix := tr.Matrix().Mul4x1(p.Vec4(1)).Vec3()
	direct := tr.TransformPoint(p)

	if !closeTo(viaMatrix, direct, 1e-4) {
		t.Errorf("Expected %v, got %v", direct, viaMatrix)
	}
}

func TestCloseTo_NoiseAroundZero(t *testing.T) {
	tests := []struct {
		a, b mgl32.Vec3
		want bool
	}{
		{mgl32.Vec3{-1, 0, 1.19209275e-07}, mgl32.Vec3{-1, 0, 0}, true},
		{mgl32.Vec3{0.990216, -3.7252903e-09, 0.13954312}, mgl32.Vec3{0.990216, 3.7252903e-09, 0.13954315}, true},
		{mgl32.Vec3{0, 0.99999994, 5.9604645e-08}, AxisY, true},
		{mgl32.Vec3{0, 1, 0.001}, AxisY, false},
	}
	for _, tt := range tests {
		if got := closeTo(tt.a, tt.b, 1e-5); got != tt.want {
			t.Errorf("closeTo(%v, %v): expected %v, got %v", tt.a, tt.b, tt.want, got)
		}
	}
}
