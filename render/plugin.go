package render

import (
	"log/slog"

	"github.com/lixenwraith/cellscene/engine"
)

// Plugin installs the software Device, the wireframe config and the renderer
type Plugin struct {
	Screen   Screen
	Config   Config
	Features Features
	Logger   *slog.Logger
}

func (p Plugin) Build(app *engine.App) {
	if _, ok := engine.GetResource[*Device](app.World.Resources); !ok {
		engine.InsertResource(app, NewSoftwareDevice(p.Features))
	}
	WireframePlugin{}.Build(app)

	rs := NewRendererSystem(app.World, p.Screen, p.Config, p.Logger)
	engine.InsertResource(app, rs)
	app.AddSystems(engine.Render, rs)
}
