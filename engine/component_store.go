package engine

import (
	"github.com/lixenwraith/cellscene/component"
)

// ComponentStore provides cached pointer to typed component store
// Initialized once per system to eliminate runtime map lookup
type ComponentStore struct {
	// Spatial
	Transform *Store[component.Transform]

	// Camera
	Camera        *Store[component.Camera3DComponent]
	CameraControl *Store[component.CameraControlComponent]

	// Rendering
	Mesh       *Store[component.MeshComponent]
	Material   *Store[component.MaterialComponent]
	PointLight *Store[component.PointLightComponent]
	Skybox     *Store[component.SkyboxComponent]
	Text       *Store[component.TextComponent]

	// Wireframe
	Wireframe       *Store[component.WireframeComponent]
	NoWireframe     *Store[component.NoWireframeComponent]
	WireframeColor  *Store[component.WireframeColorComponent]
	WireframeButton *Store[component.WireframeButtonComponent]
}

// GetComponentStore populates ComponentStore from world
// Call once during system construction; pointer remain valid for application lifetime
func GetComponentStore(w *World) ComponentStore {
	return ComponentStore{
		Transform: GetStore[component.Transform](w),

		Camera:        GetStore[component.Camera3DComponent](w),
		CameraControl: GetStore[component.CameraControlComponent](w),

		Mesh:       GetStore[component.MeshComponent](w),
		Material:   GetStore[component.MaterialComponent](w),
		PointLight: GetStore[component.PointLightComponent](w),
		Skybox:     GetStore[component.SkyboxComponent](w),
		Text:       GetStore[component.TextComponent](w),

		Wireframe:       GetStore[component.WireframeComponent](w),
		NoWireframe:     GetStore[component.NoWireframeComponent](w),
		WireframeColor:  GetStore[component.WireframeColorComponent](w),
		WireframeButton: GetStore[component.WireframeButtonComponent](w),
	}
}
