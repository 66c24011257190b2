package component

import (
	"github.com/go-gl/mathgl/mgl32"
)

var (
	AxisX = mgl32.Vec3{1, 0, 0}
	AxisY = mgl32.Vec3{0, 1, 0}
	AxisZ = mgl32.Vec3{0, 0, 1}
)

// Transform places an entity in world space
// Rotation is applied after Scale, Translation last
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// NewTransform returns the identity transform
func NewTransform() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// FromXYZ returns an identity transform moved to (x, y, z)
func FromXYZ(x, y, z float32) Transform {
	t := NewTransform()
	t.Translation = mgl32.Vec3{x, y, z}
	return t
}

// FromRotation returns an identity transform with rotation q
func FromRotation(q mgl32.Quat) Transform {
	t := NewTransform()
	t.Rotation = q
	return t
}

// WithTranslation returns a copy moved to v
func (t Transform) WithTranslation(v mgl32.Vec3) Transform {
	t.Translation = v
	return t
}

// LocalX returns the unit right vector
func (t Transform) LocalX() mgl32.Vec3 {
	return t.Rotation.Rotate(AxisX).Normalize()
}

// LocalY returns the unit up vector
func (t Transform) LocalY() mgl32.Vec3 {
	return t.Rotation.Rotate(AxisY).Normalize()
}

// LocalZ returns the unit back vector
func (t Transform) LocalZ() mgl32.Vec3 {
	return t.Rotation.Rotate(AxisZ).Normalize()
}

// Forward returns the unit view direction, -LocalZ
func (t Transform) Forward() mgl32.Vec3 {
	return t.LocalZ().Mul(-1)
}

// LookingAt returns a copy rotated so Forward points at target with up as the up hint
// The rotation is unchanged when target coincides with the translation or lies along up
func (t Transform) LookingAt(target, up mgl32.Vec3) Transform {
	t.LookAt(target, up)
	return t
}

// LookAt rotates t in place; see LookingAt
func (t *Transform) LookAt(target, up mgl32.Vec3) {
	dir := target.Sub(t.Translation)
	if dir.Len() < 1e-6 {
		return
	}
	back := dir.Normalize().Mul(-1)

	right := up.Cross(back)
	if right.Len() < 1e-6 {
		return
	}
	right = right.Normalize()
	trueUp := back.Cross(right)

	basis := mgl32.Mat3FromCols(right, trueUp, back)
	t.Rotation = mgl32.Mat4ToQuat(basis.Mat4()).Normalize()
}

// Matrix returns the local-to-world matrix
func (t Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2]).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
}

// TransformPoint maps a local point into world space
func (t Transform) TransformPoint(p mgl32.Vec3) mgl32.Vec3 {
	scaled := mgl32.Vec3{p[0] * t.Scale[0], p[1] * t.Scale[1], p[2] * t.Scale[2]}
	return t.Rotation.Rotate(scaled).Add(t.Translation)
}
