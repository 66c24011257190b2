package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/cellscene/component"
	"github.com/lixenwraith/cellscene/engine"
)

// WireframeConfig controls debug edge drawing for every mesh
type WireframeConfig struct {
	// Global draws edges on all meshes except those marked NoWireframe
	Global bool
	// DefaultColor is used for entities without a WireframeColor
	DefaultColor colorful.Color
}

// WireframePlugin installs a WireframeConfig unless the app already has one
type WireframePlugin struct{}

func (WireframePlugin) Build(app *engine.App) {
	if _, ok := engine.GetResource[*WireframeConfig](app.World.Resources); ok {
		return
	}
	engine.InsertResource(app, &WireframeConfig{DefaultColor: component.White})
}

// wantsWireframe resolves the global flag against the per-entity markers
func wantsWireframe(cfg *WireframeConfig, forced, suppressed bool) bool {
	if forced {
		return true
	}
	return cfg != nil && cfg.Global && !suppressed
}
