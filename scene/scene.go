// Package scene spawns the entities of the demo scenes
package scene

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/cellscene/component"
	"github.com/lixenwraith/cellscene/core"
	"github.com/lixenwraith/cellscene/engine"
	"github.com/lixenwraith/cellscene/mesh"
	"github.com/lixenwraith/cellscene/system"
)

const (
	// CameraSpeed is the free-fly speed of every demo camera
	CameraSpeed = 5
	// ChunkSize is the voxel edge length of one terrain chunk
	ChunkSize = 16
	// GridChunks is the terrain width and depth in chunks
	GridChunks = 3
)

// CubeColor is the showcase cube material, rgb(124, 100, 255)
var CubeColor = colorful.Color{R: 124.0 / 255, G: 100.0 / 255, B: 1}

// Showcase holds the entities SpawnShowcase created
type Showcase struct {
	Base   core.Entity
	Cube   core.Entity
	Light  core.Entity
	Camera core.Entity
}

// SpawnShowcase creates a white disc floor, a cube with a green wireframe,
// a point light and a controllable camera looking at the origin
func SpawnShowcase(world *engine.World) Showcase {
	cs := engine.GetComponentStore(world)
	var s Showcase

	s.Base = world.CreateEntity()
	cs.Mesh.Set(s.Base, component.MeshComponent{Mesh: mesh.Circle(4, 48)})
	cs.Material.Set(s.Base, component.MaterialComponent{Color: component.White})
	cs.Transform.Set(s.Base, component.FromRotation(mgl32.QuatRotate(-math.Pi/2, component.AxisX)))

	s.Cube = world.CreateEntity()
	cs.Mesh.Set(s.Cube, component.MeshComponent{Mesh: mesh.Cube(1)})
	cs.Material.Set(s.Cube, component.MaterialComponent{Color: CubeColor})
	cs.Transform.Set(s.Cube, component.FromXYZ(0, 0.5, 0))
	cs.WireframeColor.Set(s.Cube, component.WireframeColorComponent{Color: component.Green})

	s.Light = world.CreateEntity()
	cs.PointLight.Set(s.Light, component.PointLightComponent{
		Intensity:      1500,
		Color:          component.White,
		ShadowsEnabled: true,
	})
	cs.Transform.Set(s.Light, component.FromXYZ(4, 8, 4))

	s.Camera = spawnCamera(cs, world, component.FromXYZ(0, 2, 5).LookingAt(mgl32.Vec3{}, component.AxisY))
	return s
}

// SkyboxShowcase extends Showcase with the status label
type SkyboxShowcase struct {
	Showcase
	Label core.Entity
}

// SpawnSkyboxShowcase creates the showcase, attaches a skybox to its camera,
// starts loading the first cubemap and adds the wireframe status label
func SpawnSkyboxShowcase(world *engine.World, loader system.AssetLoader, cubemaps []system.CubemapEntry) SkyboxShowcase {
	if len(cubemaps) == 0 {
		cubemaps = system.DefaultCubemaps
	}
	s := SkyboxShowcase{Showcase: SpawnShowcase(world)}
	cs := engine.GetComponentStore(world)

	handle := loader.Load(cubemaps[0].Path)
	engine.AddResource(world.Resources, &system.Cubemap{
		Index:       0,
		IsLoaded:    false,
		ImageHandle: handle,
	})
	cs.Skybox.Set(s.Camera, component.SkyboxComponent{Image: handle})

	s.Label = SpawnPanelLabel(world)
	return s
}

// SpawnPanelLabel creates the text entity the wireframe panel writes to
func SpawnPanelLabel(world *engine.World) core.Entity {
	cs := engine.GetComponentStore(world)
	e := world.CreateEntity()
	cs.Text.Set(e, component.TextComponent{
		Style: component.TextStyle{Top: 1, Left: 2, Color: component.White},
	})
	cs.WireframeButton.Set(e, component.WireframeButtonComponent{})
	return e
}

// VoxelWorld holds the entities SpawnVoxelWorld created
type VoxelWorld struct {
	Chunks []core.Entity
	Light  core.Entity
	Camera core.Entity
}

// SpawnVoxelWorld creates a GridChunks x GridChunks terrain of voxel chunks
// shaped by WaveHeight, with gold scattered on the grass from seed
func SpawnVoxelWorld(world *engine.World, seed uint64) VoxelWorld {
	cs := engine.GetComponentStore(world)
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	var v VoxelWorld

	for cx := int32(0); cx < GridChunks; cx++ {
		for cz := int32(0); cz < GridChunks; cz++ {
			chunk := BuildChunk(cx, cz, r)
			e := world.CreateEntity()
			cs.Mesh.Set(e, component.MeshComponent{Mesh: chunk.GenerateMesh()})
			cs.Transform.Set(e, component.NewTransform().WithTranslation(chunk.Origin()))
			v.Chunks = append(v.Chunks, e)
		}
	}

	span := float32(GridChunks * ChunkSize)
	center := mgl32.Vec3{span / 2, 8, span / 2}

	v.Light = world.CreateEntity()
	cs.PointLight.Set(v.Light, component.PointLightComponent{
		Intensity: 60000,
		Color:     component.White,
	})
	cs.Transform.Set(v.Light, component.FromXYZ(center.X(), 40, center.Z()))

	eye := mgl32.Vec3{center.X(), 28, span + 12}
	v.Camera = spawnCamera(cs, world, component.NewTransform().WithTranslation(eye).LookingAt(center, component.AxisY))
	return v
}

// BuildChunk fills the chunk at grid cell (cx, cz) from the world-space heightmap
func BuildChunk(cx, cz int32, r *rand.Rand) *mesh.Chunk {
	chunk := mesh.NewChunk(cx, 0, cz, ChunkSize)
	ox, oz := int(cx)*ChunkSize, int(cz)*ChunkSize
	chunk.FillHeightmap(func(x, z int) int {
		return mesh.WaveHeight(ox+x, oz+z)
	})
	if r != nil {
		chunk.ScatterGold(r, 0.02)
	}
	return chunk
}

func spawnCamera(cs engine.ComponentStore, world *engine.World, tf component.Transform) core.Entity {
	e := world.CreateEntity()
	cs.Camera.Set(e, component.DefaultCamera3D())
	cs.CameraControl.Set(e, component.CameraControlComponent{Speed: CameraSpeed})
	cs.Transform.Set(e, tf)
	return e
}
