package system

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/cellscene/component"
	"github.com/lixenwraith/cellscene/engine"
	"github.com/lixenwraith/cellscene/input"
)

// DefaultMouseSensitivity is radians per pixel of mouse motion
const DefaultMouseSensitivity float32 = 0.002

// CameraMovementSystem flies controlled cameras along their local axes with WASD
type CameraMovementSystem struct {
	engine.SystemBase
	keyboard *input.Keyboard
}

// NewCameraMovementSystem creates the movement system; requires the input plugin
func NewCameraMovementSystem(world *engine.World) *CameraMovementSystem {
	return &CameraMovementSystem{
		SystemBase: engine.NewSystemBase(world),
		keyboard:   engine.MustGetResource[*input.Keyboard](world.Resources),
	}
}

func (s *CameraMovementSystem) Name() string {
	return "camera_movement"
}

func (s *CameraMovementSystem) Update() {
	dt := s.Resource.Time.DeltaSeconds()

	entities := s.Entities(s.Component.CameraControl, s.Component.Transform)

	for _, e := range entities {
		ctrl, _ := s.Component.CameraControl.Get(e)
		s.Component.Transform.Update(e, func(tf *component.Transform) {
			dir := movementDirection(s.keyboard, *tf)
			tf.Translation = tf.Translation.Add(dir.Mul(ctrl.Speed * dt))
		})
	}
}

// movementDirection sums the unit local axes of every held movement key
func movementDirection(kb *input.Keyboard, tf component.Transform) mgl32.Vec3 {
	var dir mgl32.Vec3
	localZ := tf.LocalZ().Normalize()
	localX := tf.LocalX().Normalize()

	if kb.Pressed(input.KeyW) {
		dir = dir.Sub(localZ)
	}
	if kb.Pressed(input.KeyS) {
		dir = dir.Add(localZ)
	}
	if kb.Pressed(input.KeyA) {
		dir = dir.Sub(localX)
	}
	if kb.Pressed(input.KeyD) {
		dir = dir.Add(localX)
	}
	return dir
}

// CameraRotationSystem turns controlled cameras from accumulated mouse motion
// Yaw is about world Y, pitch about the camera's local X; there is no pitch clamp
type CameraRotationSystem struct {
	engine.SystemBase
	reader      *engine.EventReader[input.MouseMotion]
	sensitivity float32
}

// NewCameraRotationSystem creates the rotation system; requires the input plugin
func NewCameraRotationSystem(world *engine.World, sensitivity float32) *CameraRotationSystem {
	if sensitivity <= 0 {
		sensitivity = DefaultMouseSensitivity
	}
	motion := engine.MustGetResource[*engine.Events[input.MouseMotion]](world.Resources)
	return &CameraRotationSystem{
		SystemBase:  engine.NewSystemBase(world),
		reader:      motion.Reader(),
		sensitivity: sensitivity,
	}
}

func (s *CameraRotationSystem) Name() string {
	return "camera_rotation"
}

func (s *CameraRotationSystem) Update() {
	var delta mgl32.Vec2
	for _, ev := range s.reader.Read() {
		delta = delta.Add(ev.Delta)
	}
	if delta[0] == 0 && delta[1] == 0 {
		return
	}

	yaw := mgl32.QuatRotate(-delta[0]*s.sensitivity, mgl32.Vec3{0, 1, 0})
	pitch := mgl32.QuatRotate(-delta[1]*s.sensitivity, mgl32.Vec3{1, 0, 0})

	entities := s.Entities(s.Component.CameraControl, s.Component.Transform)

	for _, e := range entities {
		s.Component.Transform.Update(e, func(tf *component.Transform) {
			tf.Rotation = yaw.Mul(tf.Rotation).Mul(pitch).Normalize()
		})
	}
}

// CameraControllerPlugin adds free-fly movement and mouse look
type CameraControllerPlugin struct {
	Sensitivity float32
}

func (p CameraControllerPlugin) Build(app *engine.App) {
	app.AddSystems(engine.Update,
		NewCameraMovementSystem(app.World),
		NewCameraRotationSystem(app.World, p.Sensitivity),
	)
}
