package component

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/cellscene/asset"
	"github.com/lixenwraith/cellscene/mesh"
)

// MeshComponent attaches shared geometry to an entity
type MeshComponent struct {
	Mesh *mesh.Mesh
}

// MaterialComponent is a flat base color; vertex colors take precedence
type MaterialComponent struct {
	Color colorful.Color
}

// PointLightComponent emits light in all directions from the entity position
type PointLightComponent struct {
	// Intensity in lumens; 1500 lights a few meters around the source
	Intensity float32
	Color     colorful.Color
	// ShadowsEnabled is accepted for scene parity; the rasterizer casts no shadows
	ShadowsEnabled bool
}

// SkyboxComponent renders a cube image behind all geometry of a camera
type SkyboxComponent struct {
	Image asset.Handle
}
