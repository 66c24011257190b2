package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Circle builds a flat disc in the XY plane facing +Z
func Circle(radius float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	m := &Mesh{}
	normal := mgl32.Vec3{0, 0, 1}

	m.Positions = append(m.Positions, mgl32.Vec3{})
	m.Normals = append(m.Normals, normal)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		m.Positions = append(m.Positions, mgl32.Vec3{
			radius * float32(math.Cos(a)),
			radius * float32(math.Sin(a)),
			0,
		})
		m.Normals = append(m.Normals, normal)
	}
	for i := 0; i < segments; i++ {
		next := (i+1)%segments + 1
		m.Indices = append(m.Indices, 0, uint32(i+1), uint32(next))
	}
	return m
}

// Cube builds an axis-aligned cube of edge length size centered on the origin
// Faces do not share vertices so each keeps a flat normal
func Cube(size float32) *Mesh {
	h := size / 2
	m := &Mesh{}

	// +X
	m.quad([4]mgl32.Vec3{{h, -h, h}, {h, -h, -h}, {h, h, -h}, {h, h, h}}, mgl32.Vec3{1, 0, 0}, nil)
	// -X
	m.quad([4]mgl32.Vec3{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}}, mgl32.Vec3{-1, 0, 0}, nil)
	// +Y
	m.quad([4]mgl32.Vec3{{-h, h, h}, {h, h, h}, {h, h, -h}, {-h, h, -h}}, mgl32.Vec3{0, 1, 0}, nil)
	// -Y
	m.quad([4]mgl32.Vec3{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}}, mgl32.Vec3{0, -1, 0}, nil)
	// +Z
	m.quad([4]mgl32.Vec3{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}}, mgl32.Vec3{0, 0, 1}, nil)
	// -Z
	m.quad([4]mgl32.Vec3{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}}, mgl32.Vec3{0, 0, -1}, nil)

	return m
}

// Plane builds a square in the XZ plane facing +Y
func Plane(size float32) *Mesh {
	h := size / 2
	m := &Mesh{}
	m.quad([4]mgl32.Vec3{{-h, 0, h}, {h, 0, h}, {h, 0, -h}, {-h, 0, -h}}, mgl32.Vec3{0, 1, 0}, nil)
	return m
}
