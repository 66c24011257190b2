package component

import "math"

// Camera3DComponent is a perspective camera; the entity Transform is its eye
type Camera3DComponent struct {
	FovY float32 // Vertical field of view in radians
	Near float32
	Far  float32
}

// DefaultCamera3D returns a 45 degree camera with a 0.1..1000 depth range
func DefaultCamera3D() Camera3DComponent {
	return Camera3DComponent{
		FovY: math.Pi / 4,
		Near: 0.1,
		Far:  1000,
	}
}

// CameraControlComponent enables free-fly keyboard and mouse control
type CameraControlComponent struct {
	// Speed is world units per second; fixed after spawn
	Speed float32
}
