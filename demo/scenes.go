package demo

import (
	"os"

	"github.com/lixenwraith/cellscene/asset"
	"github.com/lixenwraith/cellscene/component"
	"github.com/lixenwraith/cellscene/engine"
	"github.com/lixenwraith/cellscene/render"
	"github.com/lixenwraith/cellscene/scene"
	"github.com/lixenwraith/cellscene/system"
)

// VoxelSeed seeds gold placement in the voxel sandbox
const VoxelSeed = 42

// Showcase is the full demo: free-fly camera, cycling skybox and wireframe panel
// with wireframes initially on for every mesh
func Showcase(env *Env) error {
	app, cfg := env.App, env.Config

	wire := engine.MustGetResource[*render.WireframeConfig](app.World.Resources)
	wire.Global = true
	wire.DefaultColor = component.White

	entries := cfg.CubemapEntries()
	app.AddPlugins(
		system.CameraControllerPlugin{Sensitivity: cfg.Camera.Sensitivity},
		system.AssetPlugin{Root: os.DirFS(cfg.Skybox.AssetsDir), Logger: env.Logger},
		system.SkyboxPlugin{Cubemaps: entries, SwapDelay: cfg.Skybox.SwapDelay.Duration, Logger: env.Logger},
		system.WireframePanelPlugin{Player: env.Player},
	)

	server := engine.MustGetResource[*asset.Server](app.World.Resources)
	scene.SpawnSkyboxShowcase(app.World, server, entries)
	return nil
}

// FreeFly is the minimal demo: the showcase scene and a controllable camera
func FreeFly(env *Env) error {
	env.App.AddPlugins(system.CameraControllerPlugin{Sensitivity: env.Config.Camera.Sensitivity})
	scene.SpawnShowcase(env.App.World)
	return nil
}

// VoxelSandbox shows generated voxel terrain with the wireframe panel
func VoxelSandbox(env *Env) error {
	env.App.AddPlugins(
		system.CameraControllerPlugin{Sensitivity: env.Config.Camera.Sensitivity},
		system.WireframePanelPlugin{Player: env.Player},
	)
	scene.SpawnVoxelWorld(env.App.World, VoxelSeed)
	scene.SpawnPanelLabel(env.App.World)
	return nil
}
