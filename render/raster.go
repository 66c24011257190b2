package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// LineDepthBias lets wireframe edges win against the faces they lie on
const LineDepthBias = 0.01

// lumenScale converts point light lumens into a unitless irradiance factor
const lumenScale = 0.5

type screenVertex struct {
	x, y float32
	invW float32
}

type light struct {
	pos       mgl32.Vec3
	intensity float32
	color     colorful.Color
}

// Rasterizer draws world-space primitives into a framebuffer
type Rasterizer struct {
	fb       *Framebuffer
	viewProj mgl32.Mat4
}

// NewRasterizer binds a framebuffer and a combined view-projection matrix
func NewRasterizer(fb *Framebuffer, viewProj mgl32.Mat4) *Rasterizer {
	return &Rasterizer{fb: fb, viewProj: viewProj}
}

func (r *Rasterizer) toClip(p mgl32.Vec3) mgl32.Vec4 {
	return r.viewProj.Mul4x1(p.Vec4(1))
}

func (r *Rasterizer) toScreen(c mgl32.Vec4) screenVertex {
	invW := 1 / c[3]
	return screenVertex{
		x:    (c[0]*invW + 1) * 0.5 * float32(r.fb.Width),
		y:    (1 - c[1]*invW) * 0.5 * float32(r.fb.Height),
		invW: invW,
	}
}

// nearDistance is the signed distance to the near clip plane, z >= -w
func nearDistance(c mgl32.Vec4) float32 {
	return c[2] + c[3]
}

func lerp4(a, b mgl32.Vec4, t float32) mgl32.Vec4 {
	return a.Add(b.Sub(a).Mul(t))
}

// clipNear cuts a convex polygon against the near plane
func clipNear(in []mgl32.Vec4) []mgl32.Vec4 {
	out := make([]mgl32.Vec4, 0, len(in)+1)
	for i := range in {
		a, b := in[i], in[(i+1)%len(in)]
		da, db := nearDistance(a), nearDistance(b)
		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			out = append(out, lerp4(a, b, da/(da-db)))
		}
	}
	return out
}

// FillTriangle draws a flat-colored triangle with depth testing
func (r *Rasterizer) FillTriangle(v0, v1, v2 mgl32.Vec3, c colorful.Color) {
	poly := clipNear([]mgl32.Vec4{r.toClip(v0), r.toClip(v1), r.toClip(v2)})
	if len(poly) < 3 {
		return
	}
	s0 := r.toScreen(poly[0])
	for i := 1; i+1 < len(poly); i++ {
		r.fillScreenTriangle(s0, r.toScreen(poly[i]), r.toScreen(poly[i+1]), c)
	}
}

func edge(a, b screenVertex, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

func (r *Rasterizer) fillScreenTriangle(a, b, c screenVertex, col colorful.Color) {
	area := edge(a, b, c.x, c.y)
	if area > -1e-6 && area < 1e-6 {
		return
	}

	minX := max(0, int(math.Floor(float64(min(a.x, b.x, c.x)))))
	maxX := min(r.fb.Width-1, int(math.Ceil(float64(max(a.x, b.x, c.x)))))
	minY := max(0, int(math.Floor(float64(min(a.y, b.y, c.y)))))
	maxY := min(r.fb.Height-1, int(math.Ceil(float64(max(a.y, b.y, c.y)))))

	for py := minY; py <= maxY; py++ {
		fy := float32(py) + 0.5
		for px := minX; px <= maxX; px++ {
			fx := float32(px) + 0.5
			w0 := edge(b, c, fx, fy) / area
			w1 := edge(c, a, fx, fy) / area
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			invW := w0*a.invW + w1*b.invW + w2*c.invW
			r.fb.plot(px, py, invW, 0, col)
		}
	}
}

// DrawLine draws a depth-tested segment that wins ties against coplanar faces
func (r *Rasterizer) DrawLine(p0, p1 mgl32.Vec3, c colorful.Color) {
	a, b := r.toClip(p0), r.toClip(p1)
	da, db := nearDistance(a), nearDistance(b)
	switch {
	case da < 0 && db < 0:
		return
	case da < 0:
		a = lerp4(a, b, da/(da-db))
	case db < 0:
		b = lerp4(b, a, db/(db-da))
	}

	sa, sb, ok := clipRect(r.toScreen(a), r.toScreen(b), float32(r.fb.Width), float32(r.fb.Height))
	if !ok {
		return
	}
	dx, dy := sb.x-sa.x, sb.y-sa.y
	steps := int(math.Ceil(math.Max(math.Abs(float64(dx)), math.Abs(float64(dy)))))
	if steps < 1 {
		steps = 1
	}

	for i := 0; i <= steps; i++ {
		t := float32(i) / float32(steps)
		x := sa.x + dx*t
		y := sa.y + dy*t
		invW := sa.invW + (sb.invW-sa.invW)*t
		r.fb.plot(int(math.Floor(float64(x))), int(math.Floor(float64(y))), invW, LineDepthBias, c)
	}
}

// clipRect trims a screen segment to [0,w]x[0,h] with Liang-Barsky; 1/w is affine in
// screen space so it interpolates with the endpoints
func clipRect(a, b screenVertex, w, h float32) (screenVertex, screenVertex, bool) {
	dx, dy := b.x-a.x, b.y-a.y
	t0, t1 := float32(0), float32(1)
	for _, e := range [4][2]float32{{-dx, a.x}, {dx, w - a.x}, {-dy, a.y}, {dy, h - a.y}} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = max(t0, t)
		} else {
			t1 = min(t1, t)
		}
		if t0 > t1 {
			return a, b, false
		}
	}
	at := func(t float32) screenVertex {
		return screenVertex{x: a.x + dx*t, y: a.y + dy*t, invW: a.invW + (b.invW-a.invW)*t}
	}
	return at(t0), at(t1), true
}

// shade applies ambient plus Lambert lighting from point lights
func shade(base colorful.Color, pos, normal mgl32.Vec3, lights []light, ambient float64) colorful.Color {
	r, g, b := base.R*ambient, base.G*ambient, base.B*ambient
	for _, l := range lights {
		toLight := l.pos.Sub(pos)
		d2 := toLight.Dot(toLight)
		if d2 < 1e-6 {
			continue
		}
		ndl := normal.Dot(toLight.Normalize())
		if ndl <= 0 {
			continue
		}
		e := float64(l.intensity) / (4 * math.Pi * float64(d2)) * lumenScale * float64(ndl)
		r += base.R * l.color.R * e
		g += base.G * l.color.G * e
		b += base.B * l.color.B * e
	}
	return colorful.Color{R: r, G: g, B: b}.Clamped()
}
