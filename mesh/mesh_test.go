package mesh

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// closeTo compares by absolute distance; mgl32's ApproxEqual is relative and
// rejects float noise around zero components
func closeTo(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() < eps
}

func TestCube_OutwardNormals(t *testing.T) {
	m := Cube(1.0)

	if got := m.TriangleCount(); got != 12 {
		t.Fatalf("Expected 12 triangles, got %d", got)
	}

	for i, tri := range m.Triangles() {
		geometric := tri.V[1].Sub(tri.V[0]).Cross(tri.V[2].Sub(tri.V[0])).Normalize()
		if geometric.Dot(tri.Normal) < 0.99 {
			t.Errorf("Triangle %d: winding normal %v disagrees with %v", i, geometric, tri.Normal)
		}
		center := tri.V[0].Add(tri.V[1]).Add(tri.V[2]).Mul(1.0 / 3.0)
		if center.Dot(tri.Normal) <= 0 {
			t.Errorf("Triangle %d: normal %v points inward", i, tri.Normal)
		}
	}
}

func TestCube_Edges(t *testing.T) {
	m := Cube(2.0)
	// Faces keep their own vertices: 4 sides and 1 diagonal each
	if got := len(m.Edges()); got != 30 {
		t.Errorf("Expected 30 unique edges, got %d", got)
	}
}

func TestCircle(t *testing.T) {
	m := Circle(4, 32)

	if got := m.TriangleCount(); got != 32 {
		t.Errorf("Expected 32 triangles, got %d", got)
	}
	for i, p := range m.Positions[1:] {
		if l := p.Len(); l < 3.999 || l > 4.001 {
			t.Errorf("Rim vertex %d at distance %f, expected 4", i, l)
		}
	}
	for _, tri := range m.Triangles() {
		if !closeTo(tri.Normal, mgl32.Vec3{0, 0, 1}, 1e-5) {
			t.Errorf("Expected +Z normal, got %v", tri.Normal)
		}
	}
}

func TestPlane_FacesUp(t *testing.T) {
	m := Plane(2)
	if got := m.TriangleCount(); got != 2 {
		t.Fatalf("Expected 2 triangles, got %d", got)
	}
	for _, tri := range m.Triangles() {
		geometric := tri.V[1].Sub(tri.V[0]).Cross(tri.V[2].Sub(tri.V[0])).Normalize()
		if !closeTo(geometric, mgl32.Vec3{0, 1, 0}, 1e-5) {
			t.Errorf("Expected +Y winding, got %v", geometric)
		}
	}
}

func TestCircle_MinimumSegments(t *testing.T) {
	if got := Circle(1, 1).TriangleCount(); got != 3 {
		t.Errorf("Expected segments clamped to 3, got %d triangles", got)
	}
}

func TestChunk_SingleVoxelEmitsSixFaces(t *testing.T) {
	c := NewChunk(0, 0, 0, 4)
	c.Set(1, 1, 1, Stone)

	m := c.GenerateMesh()
	if got := m.TriangleCount(); got != 12 {
		t.Errorf("Expected 12 triangles, got %d", got)
	}
	if len(m.Colors) != len(m.Positions) {
		t.Errorf("Expected per-vertex colors, got %d colors for %d vertices", len(m.Colors), len(m.Positions))
	}
	for _, tri := range m.Triangles() {
		if tri.Color != Stone.Color() {
			t.Errorf("Expected stone color, got %v", tri.Color)
		}
	}
}

func TestChunk_SharedFacesCulled(t *testing.T) {
	c := NewChunk(0, 0, 0, 4)
	c.Set(0, 0, 0, Dirt)
	c.Set(1, 0, 0, Dirt)

	// Two adjacent voxels hide the pair of touching faces
	if got := c.FaceCount(); got != 10 {
		t.Errorf("Expected 10 faces, got %d", got)
	}
	if got := c.GenerateMesh().TriangleCount(); got != 20 {
		t.Errorf("Expected 20 triangles, got %d", got)
	}
}

func TestChunk_EnclosedVoxelEmitsNothing(t *testing.T) {
	c := NewChunk(0, 0, 0, 3)
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			for z := 0; z < 3; z++ {
				c.Set(x, y, z, Stone)
			}
		}
	}

	// Only the outer shell is visible: 6 sides of 3x3
	if got := c.FaceCount(); got != 54 {
		t.Errorf("Expected 54 faces, got %d", got)
	}

	m := c.GenerateMesh()
	center := mgl32.Vec3{1.5, 1.5, 1.5}
	for _, p := range m.Positions {
		inner := p.Sub(center)
		if abs(inner[0]) < 1.5 && abs(inner[1]) < 1.5 && abs(inner[2]) < 1.5 {
			t.Fatalf("Vertex %v belongs to an enclosed face", p)
		}
	}
}

func TestChunk_OutOfBounds(t *testing.T) {
	c := NewChunk(0, 0, 0, 2)
	c.Set(5, 0, 0, Stone)
	c.Set(-1, 0, 0, Stone)

	if got := c.Get(5, 0, 0); got != Air {
		t.Errorf("Expected Air outside chunk, got %d", got)
	}
	if got := c.FaceCount(); got != 0 {
		t.Errorf("Expected out-of-bounds writes ignored, got %d faces", got)
	}
}

func TestChunk_FillHeightmap(t *testing.T) {
	c := NewChunk(0, 0, 0, 16)
	c.FillHeightmap(func(x, z int) int {
		if x == 0 {
			return 2
		}
		return 8
	})

	tests := []struct {
		name    string
		x, y, z int
		want    BlockType
	}{
		{"top grass", 3, 7, 3, Grass},
		{"dirt below top", 3, 6, 3, Dirt},
		{"dirt third", 3, 5, 3, Dirt},
		{"stone deep", 3, 4, 3, Stone},
		{"air above", 3, 8, 3, Air},
		{"low column water", 0, 3, 0, Water},
		{"low column water at level", 0, WaterLevel - 1, 0, Water},
		{"air above water", 0, WaterLevel, 0, Air},
		{"low column grass", 0, 1, 0, Grass},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Get(tt.x, tt.y, tt.z); got != tt.want {
				t.Errorf("Expected %d at (%d,%d,%d), got %d", tt.want, tt.x, tt.y, tt.z, got)
			}
		})
	}
}

func TestChunk_ScatterGoldOnlyReplacesSurfaceGrass(t *testing.T) {
	c := NewChunk(0, 0, 0, 8)
	c.FillHeightmap(func(x, z int) int { return 6 })
	c.ScatterGold(rand.New(rand.NewPCG(1, 2)), 1.0)

	for x := 0; x < 8; x++ {
		for z := 0; z < 8; z++ {
			if got := c.Get(x, 5, z); got != Gold {
				t.Fatalf("Expected gold at surface (%d,5,%d), got %d", x, z, got)
			}
			if got := c.Get(x, 4, z); got != Dirt {
				t.Fatalf("Expected dirt below surface, got %d", got)
			}
		}
	}
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
