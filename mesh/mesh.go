package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// Mesh is an indexed triangle list
// Colors is optional; when empty the entity material color is used
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Colors    []colorful.Color
	Indices   []uint32
}

// Triangle is one resolved face of a mesh
type Triangle struct {
	V      [3]mgl32.Vec3
	Normal mgl32.Vec3
	Color  colorful.Color
	Tinted bool // Color came from vertex colors
}

// Edge is an undirected pair of vertex indices, A < B
type Edge struct {
	A, B uint32
}

// TriangleCount returns the number of indexed triangles
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangles resolves every indexed triangle
// Face normal is the first vertex normal when present, otherwise the geometric normal
func (m *Mesh) Triangles() []Triangle {
	tris := make([]Triangle, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		t := Triangle{V: [3]mgl32.Vec3{m.Positions[i0], m.Positions[i1], m.Positions[i2]}}

		if len(m.Normals) == len(m.Positions) {
			t.Normal = m.Normals[i0]
		} else {
			t.Normal = t.V[1].Sub(t.V[0]).Cross(t.V[2].Sub(t.V[0]))
			if t.Normal.Len() > 0 {
				t.Normal = t.Normal.Normalize()
			}
		}

		if len(m.Colors) == len(m.Positions) {
			t.Color = m.Colors[i0]
			t.Tinted = true
		}
		tris = append(tris, t)
	}
	return tris
}

// Edges returns unique undirected edges in first-seen order
func (m *Mesh) Edges() []Edge {
	seen := make(map[Edge]struct{}, len(m.Indices))
	edges := make([]Edge, 0, len(m.Indices))

	add := func(a, b uint32) {
		if a > b {
			a, b = b, a
		}
		e := Edge{A: a, B: b}
		if _, ok := seen[e]; ok {
			return
		}
		seen[e] = struct{}{}
		edges = append(edges, e)
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		add(i0, i1)
		add(i1, i2)
		add(i2, i0)
	}
	return edges
}

// quad appends two triangles for corners given counter-clockwise seen from the front
func (m *Mesh) quad(corners [4]mgl32.Vec3, normal mgl32.Vec3, color *colorful.Color) {
	base := uint32(len(m.Positions))
	for _, c := range corners {
		m.Positions = append(m.Positions, c)
		m.Normals = append(m.Normals, normal)
		if color != nil {
			m.Colors = append(m.Colors, *color)
		}
	}
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}
