package render

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/cellscene/asset"
	"github.com/lixenwraith/cellscene/component"
	"github.com/lixenwraith/cellscene/core"
	"github.com/lixenwraith/cellscene/engine"
	"github.com/lixenwraith/cellscene/mesh"
)

// Config holds renderer tunables
type Config struct {
	ClearColor colorful.Color
	// Ambient is the unlit fraction of every surface color
	Ambient float64
	// PixelAspect is pixel width over pixel height; half-block pixels are roughly square
	PixelAspect float32
}

// DefaultConfig returns a dark blue clear color and 30% ambient light
func DefaultConfig() Config {
	return Config{
		ClearColor:  colorful.Color{R: 0.05, G: 0.05, B: 0.09},
		Ambient:     0.3,
		PixelAspect: 1,
	}
}

// RendererSystem rasterizes the first camera's view and flushes it to the screen
type RendererSystem struct {
	engine.SystemBase

	screen Screen
	cfg    Config
	logger *slog.Logger

	fb     *Framebuffer
	device *Device
	wire   *WireframeConfig

	edges       map[*mesh.Mesh][]mesh.Edge
	warnedLines bool
	cols, rows  int
}

// NewRendererSystem creates the renderer; Device and WireframeConfig are read
// from resources when present
func NewRendererSystem(world *engine.World, screen Screen, cfg Config, logger *slog.Logger) *RendererSystem {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PixelAspect <= 0 {
		cfg.PixelAspect = 1
	}
	s := &RendererSystem{
		SystemBase: engine.NewSystemBase(world),
		screen:     screen,
		cfg:        cfg,
		logger:     logger,
		fb:         &Framebuffer{},
		edges:      make(map[*mesh.Mesh][]mesh.Edge),
	}
	s.bindResources()
	return s
}

// bindResources picks up Device and WireframeConfig inserted after construction
func (s *RendererSystem) bindResources() {
	if s.device == nil {
		s.device, _ = engine.GetResource[*Device](s.World.Resources)
	}
	if s.wire == nil {
		s.wire, _ = engine.GetResource[*WireframeConfig](s.World.Resources)
	}
}

func (s *RendererSystem) Name() string { return "render" }

// Framebuffer exposes the last rendered frame
func (s *RendererSystem) Framebuffer() *Framebuffer { return s.fb }

func (s *RendererSystem) Update() {
	s.bindResources()

	cols, rows := s.screen.Size()
	if cols != s.cols || rows != s.rows {
		s.cols, s.rows = cols, rows
		s.Resource.Window.Width, s.Resource.Window.Height = cols, rows
		s.screen.Sync()
	}

	s.fb.Resize(cols, rows)
	s.fb.Clear(s.cfg.ClearColor)
	if s.fb.Width > 0 && s.fb.Height > 0 {
		if cam, ok := s.activeCamera(); ok {
			s.drawScene(cam)
		}
	}

	flush(s.screen, s.fb)
	s.drawLabels()
	s.screen.Show()
}

type cameraView struct {
	entity    core.Entity
	camera    component.Camera3DComponent
	transform component.Transform
}

// activeCamera picks the lowest entity carrying Camera3D and Transform
func (s *RendererSystem) activeCamera() (cameraView, bool) {
	entities := s.Entities(s.Component.Camera, s.Component.Transform)

	var best cameraView
	found := false
	for _, e := range entities {
		if found && e > best.entity {
			continue
		}
		cam, _ := s.Component.Camera.Get(e)
		tf, _ := s.Component.Transform.Get(e)
		best = cameraView{entity: e, camera: cam, transform: tf}
		found = true
	}
	return best, found
}

func (s *RendererSystem) drawScene(cv cameraView) {
	aspect := float32(s.fb.Width) / float32(s.fb.Height) * s.cfg.PixelAspect
	proj := mgl32.Perspective(cv.camera.FovY, aspect, cv.camera.Near, cv.camera.Far)
	eyeTf := cv.transform
	eyeTf.Scale = mgl32.Vec3{1, 1, 1}
	view := eyeTf.Matrix().Inv()
	r := NewRasterizer(s.fb, proj.Mul4(view))

	lights := s.collectLights()
	meshes := s.Entities(s.Component.Mesh, s.Component.Transform)

	for _, e := range meshes {
		s.drawMesh(r, e, cv.transform.Translation, lights)
	}
	s.drawWireframes(r, meshes)

	if sky, ok := s.Component.Skybox.Get(cv.entity); ok {
		drawSkybox(s.fb, s.skyboxImage(sky.Image), cv.transform.Rotation, cv.camera.FovY, aspect)
	}
}

func (s *RendererSystem) collectLights() []light {
	var lights []light
	for _, e := range s.Entities(s.Component.PointLight, s.Component.Transform) {
		pl, _ := s.Component.PointLight.Get(e)
		tf, _ := s.Component.Transform.Get(e)
		lights = append(lights, light{pos: tf.Translation, intensity: pl.Intensity, color: pl.Color})
	}
	return lights
}

func (s *RendererSystem) drawMesh(r *Rasterizer, e core.Entity, eye mgl32.Vec3, lights []light) {
	mc, _ := s.Component.Mesh.Get(e)
	if mc.Mesh == nil {
		return
	}
	tf, _ := s.Component.Transform.Get(e)
	model := tf.Matrix()
	normalMat := model.Mat3().Inv().Transpose()

	base := component.White
	if mat, ok := s.Component.Material.Get(e); ok {
		base = mat.Color
	}

	for _, tri := range mc.Mesh.Triangles() {
		v0 := model.Mul4x1(tri.V[0].Vec4(1)).Vec3()
		v1 := model.Mul4x1(tri.V[1].Vec4(1)).Vec3()
		v2 := model.Mul4x1(tri.V[2].Vec4(1)).Vec3()

		n := normalMat.Mul3x1(tri.Normal)
		if n.Len() == 0 {
			continue
		}
		n = n.Normalize()
		// Back faces
		if n.Dot(eye.Sub(v0)) <= 0 {
			continue
		}

		col := base
		if tri.Tinted {
			col = tri.Color
		}
		center := v0.Add(v1).Add(v2).Mul(1.0 / 3)
		r.FillTriangle(v0, v1, v2, shade(col, center, n, lights, s.cfg.Ambient))
	}
}

func (s *RendererSystem) drawWireframes(r *Rasterizer, meshes []core.Entity) {
	if s.device == nil || !s.device.Features.Contains(FeaturePolygonModeLine) {
		if !s.warnedLines {
			s.warnedLines = true
			s.logger.Warn("Device lacks polygon line mode, wireframes disabled")
		}
		return
	}

	for _, e := range meshes {
		if !wantsWireframe(s.wire, s.Component.Wireframe.Has(e), s.Component.NoWireframe.Has(e)) {
			continue
		}
		mc, _ := s.Component.Mesh.Get(e)
		if mc.Mesh == nil {
			continue
		}

		col := component.White
		if s.wire != nil {
			col = s.wire.DefaultColor
		}
		if wc, ok := s.Component.WireframeColor.Get(e); ok {
			col = wc.Color
		}

		tf, _ := s.Component.Transform.Get(e)
		model := tf.Matrix()
		pos := mc.Mesh.Positions
		for _, edge := range s.meshEdges(mc.Mesh) {
			a := model.Mul4x1(pos[edge.A].Vec4(1)).Vec3()
			b := model.Mul4x1(pos[edge.B].Vec4(1)).Vec3()
			r.DrawLine(a, b, col)
		}
	}
}

// meshEdges caches edge lists; meshes are not mutated after spawn
func (s *RendererSystem) meshEdges(m *mesh.Mesh) []mesh.Edge {
	edges, ok := s.edges[m]
	if !ok {
		edges = m.Edges()
		s.edges[m] = edges
	}
	return edges
}

func (s *RendererSystem) skyboxImage(h asset.Handle) *asset.Image {
	images, ok := engine.GetResource[*asset.Assets[asset.Image]](s.World.Resources)
	if !ok || !h.Valid() {
		return nil
	}
	img, _ := images.GetMut(h)
	return img
}

func (s *RendererSystem) drawLabels() {
	for _, e := range s.Component.Text.All() {
		txt, _ := s.Component.Text.Get(e)
		fg := txt.Style.Color
		if fg == (colorful.Color{}) {
			fg = component.White
		}
		drawText(s.screen, s.fb, txt.Style.Left, txt.Style.Top, txt.Value, fg)
	}
}
