package input

import (
	"time"

	"github.com/lixenwraith/cellscene/engine"
)

// Plugin installs the keyboard resource, MouseMotion events and the tcell translator
type Plugin struct {
	Config Config
}

func (p Plugin) Build(app *engine.App) {
	cfg := p.Config
	if cfg.CellWidthPx <= 0 || cfg.CellHeightPx <= 0 {
		def := DefaultConfig()
		cfg.CellWidthPx, cfg.CellHeightPx = def.CellWidthPx, def.CellHeightPx
	}

	kb := NewKeyboard(time.Duration(cfg.InitialHoldMs)*time.Millisecond, time.Duration(cfg.HoldTimeoutMs)*time.Millisecond)
	engine.InsertResource(app, kb)
	motion := engine.AddEvent[MouseMotion](app)

	res := engine.GetResourceStore(app.World)
	tr := NewTranslator(kb, motion, res.Window, app.Clock, cfg)
	engine.InsertResource(app, tr)
	app.AddEventHandler(tr.Handle)

	app.AddSystems(engine.PreUpdate, engine.SystemFunc("keyboard_expire", func() {
		kb.Expire(app.Clock.RealTime())
	}))
	app.AddSystems(engine.Last, engine.SystemFunc("keyboard_end_frame", kb.EndFrame))
}
